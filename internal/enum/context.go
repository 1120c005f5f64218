// Package enum implements the object/segment enumerator: it walks the
// dynamic linker's view of loaded objects via dl_iterate_phdr(3) and
// collects each object's loadable ELF segments.
package enum

import (
	"github.com/scottlamb/page-primer/internal/segment"
)

// maxSegments bounds the enumeration buffer. The callback runs across a
// foreign (C) stack frame on every loaded object; growing a Go slice from
// inside it would be safe but wasteful, so the buffer is sized generously
// up front and overflow is simply dropped.
const maxSegments = 1024

// context accumulates enumeration results across the lifetime of one
// dl_iterate_phdr call. It is only ever touched from the callback, which
// dl_iterate_phdr invokes synchronously on the calling goroutine's thread,
// so it needs no locking.
type context struct {
	programName     string
	nextObjectIndex int
	segments        []segment.Segment
}

// addObject advances the per-object counter, returning the path to report
// for the object currently being visited. The first object enumerated is
// always the main program, whose name the dynamic linker reports as
// empty; programName (normally the current executable's path) is
// substituted for it.
func (c *context) addObject(dlName string) (path string, index int) {
	index = c.nextObjectIndex
	c.nextObjectIndex++
	if index == 0 {
		return c.programName, index
	}
	return dlName, index
}

// addSegment appends seg to the buffer, silently dropping it if the
// buffer is already full.
func (c *context) addSegment(seg segment.Segment) {
	if len(c.segments) >= maxSegments {
		return
	}
	c.segments = append(c.segments, seg)
}
