package remap

import (
	"github.com/scottlamb/page-primer/internal/platform"
	"github.com/scottlamb/page-primer/internal/reserve"
	"github.com/scottlamb/page-primer/internal/segment"
)

// plan is the planned huge-page-aligned replacement window for one
// segment, along with the reservations (if any) that claimed its
// padding and the sub-range of bytes that must actually be copied.
//
// Given virtual memory pages as follows:
//
//	huge page: 00001111222233334444
//	data:      ......ssssssssssss.x
//
// it's possible to create a mapping for huge pages 1-3 that includes a
// bit of padding at the start and most of the segment. The portion of
// the segment in huge page 4 can't be remapped because something else
// is occupying space in that huge page:
//
//	huge page: 00001111222233334444
//	data:      ....PPSSSSSSSSSSss.x
//
// s = this segment (not remapped), S = this segment (within a remapped
// page), P = padding (within a remapped page), . = unmapped.
type plan struct {
	window segment.AddrRange
	copy   segment.AddrRange

	startReservation reservation
	endReservation   reservation
}

// reservation is the subset of *reserve.Reservation this package needs;
// it exists so tests can substitute a mock that claims/releases fake
// padding ranges without issuing real mmap syscalls against arbitrary
// addresses.
type reservation interface {
	Release()
	Forget()
}

// reserveFunc claims a padding range, or returns nil on failure to claim
// it.
type reserveFunc func(segment.AddrRange) reservation

// wrapReserve adapts reserve.Reserve to reserveFunc, taking care not to
// box a nil *reserve.Reservation into a non-nil reservation interface
// value.
func wrapReserve(addrs segment.AddrRange) reservation {
	r := reserve.Reserve(addrs)
	if r == nil {
		return nil
	}
	return r
}

// planGeometry computes the largest huge-page-aligned window addrs can
// safely expand into, attempting to reserve the padding regions outside
// the segment's base-page closure. It returns an error only when the
// resulting window is empty or inverted.
func planGeometry(addrs segment.AddrRange, basePageMask, hugePageMask uintptr, reserveFn reserveFunc) (*plan, *Error) {
	pageRange := segment.AddrRange{
		Start: platform.RoundDown(addrs.Start, basePageMask),
		End:   platform.RoundUp(addrs.End, basePageMask),
	}
	hugeOuter := segment.AddrRange{
		Start: platform.RoundDown(addrs.Start, hugePageMask),
		End:   platform.RoundUp(addrs.End, hugePageMask),
	}
	hugeInner := segment.AddrRange{
		Start: platform.RoundUp(pageRange.Start, hugePageMask),
		End:   platform.RoundDown(pageRange.End, hugePageMask),
	}

	p := &plan{}
	start := hugeInner.Start
	if hugeOuter.Start < pageRange.Start {
		if r := reserveFn(segment.AddrRange{Start: hugeOuter.Start, End: pageRange.Start}); r != nil {
			p.startReservation = r
			start = hugeOuter.Start
		} else {
			start = hugeInner.Start
		}
	}

	end := hugeInner.End
	if hugeOuter.End > pageRange.End {
		if r := reserveFn(segment.AddrRange{Start: pageRange.End, End: hugeOuter.End}); r != nil {
			p.endReservation = r
			end = hugeOuter.End
		} else {
			end = hugeInner.End
		}
	}

	if start >= end {
		p.releasePadding()
		return nil, &Error{Kind: Conflict}
	}

	p.window = segment.AddrRange{Start: start, End: end}
	p.copy = segment.AddrRange{
		Start: maxAddr(start, pageRange.Start),
		End:   minAddr(end, pageRange.End),
	}
	return p, nil
}

// releasePadding releases both padding reservations, for use on any
// failure path after planning but before the replacing mapping commits.
func (p *plan) releasePadding() {
	if p.startReservation != nil {
		p.startReservation.Release()
	}
	if p.endReservation != nil {
		p.endReservation.Release()
	}
}

// forgetPadding forfeits both padding reservations because the replacing
// mapping has already consumed their ranges.
func (p *plan) forgetPadding() {
	if p.startReservation != nil {
		p.startReservation.Forget()
	}
	if p.endReservation != nil {
		p.endReservation.Forget()
	}
}

func maxAddr(a, b uintptr) uintptr {
	if a > b {
		return a
	}
	return b
}

func minAddr(a, b uintptr) uintptr {
	if a < b {
		return a
	}
	return b
}
