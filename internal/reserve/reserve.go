// Package reserve implements the reservation primitive: a no-access
// placeholder mapping used to keep another mapper from claiming a range
// this process intends to consume.
package reserve

import (
	"golang.org/x/sys/unix"

	"github.com/scottlamb/page-primer/internal/mmapsys"
	"github.com/scottlamb/page-primer/internal/segment"
)

// Reservation is an owned virtual address range mapped with no access
// rights. Go has no scope-exit destructor, so callers that might fail
// after a successful Reserve must call r.Release() on their failure
// paths themselves; the successful remap path calls Forget instead, once
// the range has been consumed by the replacing mapping.
type Reservation struct {
	addrs segment.AddrRange
	live  bool
}

// Reserve attempts to claim addrs with a non-replacing, fixed-placement,
// no-access anonymous mapping. It returns nil on any failure to claim
// exactly that range.
func Reserve(addrs segment.AddrRange) *Reservation {
	if addrs.Empty() {
		return nil
	}
	got, err := mmapsys.Mmap(addrs.Start, addrs.Len(), unix.PROT_NONE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS|unix.MAP_FIXED_NOREPLACE, -1, 0)
	if err != nil {
		return nil
	}
	if got != addrs.Start {
		// Older kernels that don't recognize MAP_FIXED_NOREPLACE fall back
		// to a non-fixed placement on collision instead of failing
		// outright: mmap(2) documents this explicitly and tells
		// backward-compatible callers to check the returned address
		// against the one requested. Undo the stray mapping and report
		// failure just as if the flag had been honored.
		_ = mmapsys.Munmap(got, addrs.Len())
		return nil
	}
	return &Reservation{addrs: addrs, live: true}
}

// Release unmaps the reserved range. It is safe to call on a nil
// receiver or a reservation that has already been released or forgotten.
func (r *Reservation) Release() {
	if r == nil || !r.live {
		return
	}
	_ = mmapsys.Munmap(r.addrs.Start, r.addrs.Len())
	r.live = false
}

// Forget gives up ownership without unmapping, because a later mapping
// (e.g. a MAP_FIXED replacement) has already consumed the range.
func (r *Reservation) Forget() {
	if r == nil {
		return
	}
	r.live = false
}

// Addrs returns the reserved range.
func (r *Reservation) Addrs() segment.AddrRange {
	if r == nil {
		return segment.AddrRange{}
	}
	return r.addrs
}
