//go:build !linux

package enum

import "github.com/scottlamb/page-primer/internal/segment"

// Enumerate returns no segments on platforms without dl_iterate_phdr-style
// introspection. Nothing calls it on such platforms: the root package's
// run_other.go and internal/driver's NoopRun do not enumerate.
func Enumerate() []segment.Segment {
	return nil
}
