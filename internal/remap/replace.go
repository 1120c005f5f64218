package remap

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/scottlamb/page-primer/internal/mmapsys"
	"github.com/scottlamb/page-primer/internal/segment"
)

// transformProt converts ELF PF_* protection bits into mmap PROT_*
// flags. It is a bit-preserving permutation: R->READ, W->WRITE, X->EXEC,
// and any union thereof.
func transformProt(flags segment.ProtFlags) int {
	var prot int
	if flags.Readable() {
		prot |= unix.PROT_READ
	}
	if flags.Writable() {
		prot |= unix.PROT_WRITE
	}
	if flags.Executable() {
		prot |= unix.PROT_EXEC
	}
	return prot
}

// addrBytes views length bytes starting at addr as a byte slice, without
// copying. The caller is responsible for addr/length being valid and
// live for as long as the slice is used.
func addrBytes(addr, length uintptr) []byte {
	if length == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), int(length))
}

// replace substitutes window with a huge-page-backed anonymous mapping
// containing a byte-identical copy of the bytes in toCopy (a sub-range
// of window), mapped with the protection flags translated from the
// segment's own ELF flags.
//
// Safety obligations on the caller, not checked here: window must not be
// written to concurrently, no other thread may exist, and nothing else
// in this call sequence may create a mapping that collides with window
// (which is why the padding outside the segment's base-page closure is
// reserved before this runs).
func replace(path string, window, toCopy segment.AddrRange, flags segment.ProtFlags) *Error {
	fd, err := mmapsys.MemfdCreate(path)
	if err != nil {
		return &Error{Kind: MemfdCreateFailed, Err: err}
	}
	defer mmapsys.Close(fd)

	if err := mmapsys.Ftruncate(fd, int64(window.Len())); err != nil {
		return &Error{Kind: FtruncateFailed, Err: err}
	}

	tmpAddr, err := mmapsys.Mmap(0, window.Len(), unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED, fd, 0)
	if err != nil {
		return &Error{Kind: InitialMmapFailed, Err: err}
	}

	dst := tmpAddr + (toCopy.Start - window.Start)
	copy(addrBytes(dst, toCopy.Len()), addrBytes(toCopy.Start, toCopy.Len()))

	_ = mmapsys.Munmap(tmpAddr, window.Len())

	if _, err := mmapsys.Mmap(window.Start, window.Len(), transformProt(flags),
		unix.MAP_PRIVATE|unix.MAP_FIXED, fd, 0); err != nil {
		return &Error{Kind: RemapFailed, Err: err}
	}
	return nil
}
