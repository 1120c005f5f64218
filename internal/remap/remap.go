// Package remap implements the huge-page remap engine: for one read-only
// executable segment, plan the largest huge-page-aligned window that can
// be safely claimed, copy the segment's bytes into a huge-page-backed
// anonymous file, and atomically substitute the original mapping with it.
package remap

import (
	"github.com/scottlamb/page-primer/internal/segment"
)

// replaceFunc performs the memfd/copy/remap sequence. Engine holds it as
// a field so tests can substitute a mock mmap layer.
type replaceFunc func(path string, window, toCopy segment.AddrRange, flags segment.ProtFlags) *Error

// Engine remaps individual segments into huge-page-backed anonymous
// mappings. The zero value is not usable; construct with NewEngine.
type Engine struct {
	reserve reserveFunc
	replace replaceFunc
}

// NewEngine returns an Engine that issues real mmap/memfd syscalls.
func NewEngine() *Engine {
	return &Engine{reserve: wrapReserve, replace: replace}
}

// Remap attempts to remap addrs (with the given ELF protection flags and
// owning-object path) into a huge-page-eligible anonymous mapping,
// returning the achieved range on success.
func (e *Engine) Remap(path string, addrs segment.AddrRange, flags segment.ProtFlags,
	basePageMask, hugePageMask uintptr) (segment.AddrRange, *Error) {

	if !flags.Readable() {
		// Unreadable segments can't be copied, and remapping one would
		// serve no purpose even if it could be.
		return segment.AddrRange{}, &Error{Kind: Unreadable}
	}
	if flags.Writable() {
		// The process could mutate it mid-copy, producing an incoherent
		// target; we can't trust it to hold still.
		return segment.AddrRange{}, &Error{Kind: Writable}
	}

	p, err := planGeometry(addrs, basePageMask, hugePageMask, e.reserve)
	if err != nil {
		return segment.AddrRange{}, err
	}

	if rerr := e.replace(path, p.window, p.copy, flags); rerr != nil {
		p.releasePadding()
		return segment.AddrRange{}, rerr
	}
	p.forgetPadding()
	return p.window, nil
}
