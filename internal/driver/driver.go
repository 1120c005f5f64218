//go:build linux

package driver

import (
	"fmt"

	"github.com/scottlamb/page-primer/internal/enum"
	"github.com/scottlamb/page-primer/internal/lock"
	"github.com/scottlamb/page-primer/internal/platform"
	"github.com/scottlamb/page-primer/internal/remap"
	"github.com/scottlamb/page-primer/internal/segment"
)

// Run checks that the process is single-threaded, probes for huge-page
// support if remapping was requested, enumerates the process's loaded
// segments, and walks them in order attempting a remap and/or an mlock on
// each. The whole pass is bracketed by before/after address-space
// snapshots so the effect can be inspected afterward.
func Run(wantMlock, wantRemap bool) *Output {
	var records []Record
	records = append(records, addressSpaceSnapshot("address space before"))

	n, ok := platform.NumThreads()
	if !ok || n != 1 {
		records = append(records, Record{
			Severity: Warn,
			Message:  fmt.Sprintf("refusing to run: process has %d threads (ok=%v), not exactly 1", n, ok),
		})
		return newOutput(records)
	}

	basePageMask := platform.Mask(platform.BasePageSize())

	var hugePageMask *uintptr
	if wantRemap {
		hugeSize, err := platform.HugePageSize()
		if err != nil {
			records = append(records, Record{
				Severity: Warn,
				Message:  fmt.Sprintf("huge page probe failed, disabling remap: %s", err),
			})
		} else if hugeSize == nil {
			records = append(records, Record{
				Severity: Warn,
				Message:  "transparent huge pages not supported by this kernel, disabling remap",
			})
		} else {
			mask := platform.Mask(*hugeSize)
			hugePageMask = &mask
		}
	}

	if hugePageMask == nil && !wantMlock {
		records = append(records, Record{
			Severity: Warn,
			Message:  "no page priming operations requested or available; nothing to do",
		})
		return newOutput(records)
	}

	segments := enum.Enumerate()

	engine := remap.NewEngine()
	for i := range segments {
		s := &segments[i]
		if hugePageMask != nil {
			achieved, rerr := engine.Remap(s.Path, s.Addrs, s.Flags, basePageMask, *hugePageMask)
			if rerr != nil {
				s.Remap = &segment.RemapOutcome{Err: rerr}
			} else {
				s.Remap = &segment.RemapOutcome{Range: achieved}
			}
		}
		if wantMlock {
			// Lock acts on the segment's original virtual range, which
			// after a successful remap is backed by the new mapping.
			lerr := lock.Lock(s.Addrs)
			s.Mlock = &segment.MlockOutcome{Err: lerr}
		}
	}

	records = append(records, buildSummary(segments))
	records = append(records, addressSpaceSnapshot("address space after"))
	return newOutput(records)
}
