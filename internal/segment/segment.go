// Package segment describes the unit of work the rest of page-primer
// operates on: one PT_LOAD program header of one loaded object.
package segment

import "fmt"

// ProtFlags models the ELF PF_* read/write/execute triad with its own bit
// assignment, independent of both the ELF encoding and any particular
// mmap constant space.
type ProtFlags uint32

const (
	// Read marks the segment readable.
	Read ProtFlags = 1 << iota
	// Write marks the segment writable.
	Write
	// Exec marks the segment executable.
	Exec
)

// Readable reports whether the read bit is set.
func (f ProtFlags) Readable() bool { return f&Read != 0 }

// Writable reports whether the write bit is set.
func (f ProtFlags) Writable() bool { return f&Write != 0 }

// Executable reports whether the execute bit is set.
func (f ProtFlags) Executable() bool { return f&Exec != 0 }

// String renders the triad as r?w?x?, testing each bit independently.
//
// An earlier revision of this formatter tested the read bit three times,
// so every segment printed as "r--" or "---" regardless of its real
// write/execute bits. Each bit is now tested on its own.
func (f ProtFlags) String() string {
	r, w, x := byte('-'), byte('-'), byte('-')
	if f.Readable() {
		r = 'r'
	}
	if f.Writable() {
		w = 'w'
	}
	if f.Executable() {
		x = 'x'
	}
	return string([]byte{r, w, x})
}

// AddrRange is a half-open virtual address range [Start, End).
type AddrRange struct {
	Start uintptr
	End   uintptr
}

// Len returns the number of bytes the range spans.
func (r AddrRange) Len() uintptr {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Empty reports whether the range contains no addresses.
func (r AddrRange) Empty() bool {
	return r.End <= r.Start
}

// String renders the range as "start-end" in the hex form used by
// /proc/*/maps and this package's own report lines.
func (r AddrRange) String() string {
	return fmt.Sprintf("%012x-%012x", r.Start, r.End)
}

// RemapOutcome is the result of attempting to remap one segment into a
// huge-page-backed anonymous mapping.
type RemapOutcome struct {
	// Range is the achieved remapped address range, valid only when Err
	// is nil.
	Range AddrRange
	// Err classifies why the remap did not happen.
	Err error
}

// MlockOutcome is the result of attempting to lock one segment resident.
type MlockOutcome struct {
	// Err is the raw mlock failure, or nil on success.
	Err error
}

// Segment is one PT_LOAD program header as currently mapped into the
// process.
type Segment struct {
	// ObjectIndex identifies the owning loaded object, assigned in
	// enumeration order starting at 0 for the main program.
	ObjectIndex int
	// Path names the owning object: the executable's own path for
	// ObjectIndex 0, otherwise the dynamic linker's reported name.
	Path string
	// Flags are the segment's ELF protection bits.
	Flags ProtFlags
	// Addrs is the segment's virtual address range as currently mapped.
	Addrs AddrRange

	// Remap is nil unless huge-page remapping was attempted for this
	// segment.
	Remap *RemapOutcome
	// Mlock is nil unless mlock was attempted for this segment.
	Mlock *MlockOutcome
}
