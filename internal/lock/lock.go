// Package lock implements the Locker component: a single operation that
// pins a virtual address range resident.
package lock

import (
	"github.com/scottlamb/page-primer/internal/mmapsys"
	"github.com/scottlamb/page-primer/internal/segment"
)

// Lock pins addrs resident via mlock(2), returning the raw OS error on
// failure. Callers invoke this after any remap of the same segment, using
// the segment's original virtual range — mlock acts on that range
// regardless of which mapping currently backs it, so a successful remap
// just means the new mapping is what ends up pinned.
func Lock(addrs segment.AddrRange) error {
	if addrs.Empty() {
		return nil
	}
	return mmapsys.Mlock(addrs.Start, addrs.Len())
}
