//go:build linux

package enum

/*
#include <link.h>
*/
import "C"

import (
	"os"
	"runtime/cgo"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/scottlamb/page-primer/internal/segment"
)

// elfProtFlags converts the raw PF_* bits from an ELF program header into
// this module's ProtFlags, which uses a different bit assignment so it
// doesn't leak an ELF-specific encoding into the rest of the module.
func elfProtFlags(raw C.Elf64_Word) segment.ProtFlags {
	var f segment.ProtFlags
	if raw&C.PF_R != 0 {
		f |= segment.Read
	}
	if raw&C.PF_W != 0 {
		f |= segment.Write
	}
	if raw&C.PF_X != 0 {
		f |= segment.Exec
	}
	return f
}

// goPhdrCallback is invoked synchronously by dl_iterate_phdr once per
// loaded object. It must not let a panic propagate back across the call
// into C: that would unwind through a foreign frame, which is undefined
// behavior. Any panic here is treated as fatal and aborts the process
// immediately instead.
//
//export goPhdrCallback
func goPhdrCallback(info *C.struct_dl_phdr_info, _ C.size_t, data unsafe.Pointer) C.int {
	defer func() {
		if r := recover(); r != nil {
			os.Stderr.WriteString("page-primer: aborting, panic in segment enumeration callback\n")
			// Actually abort (SIGABRT) rather than a clean os.Exit: a
			// panic here means we're in an unknown state mid-callback,
			// on the other side of a foreign (C) stack frame, and
			// unwinding any further is undefined behavior.
			unix.Kill(os.Getpid(), unix.SIGABRT)
			os.Exit(2) // unreachable unless the signal is somehow blocked
		}
	}()

	h := cgo.Handle(uintptr(data))
	ctx := h.Value().(*context)

	dlName := C.GoString(info.dlpi_name)
	path, objectIndex := ctx.addObject(dlName)

	base := uintptr(info.dlpi_addr)
	n := int(info.dlpi_phnum)
	if n == 0 {
		return 0
	}
	phdrs := unsafe.Slice(info.dlpi_phdr, n)
	for _, ph := range phdrs {
		if ph.p_type != C.PT_LOAD {
			continue
		}
		start := base + uintptr(ph.p_vaddr)
		end := start + uintptr(ph.p_memsz)
		ctx.addSegment(segment.Segment{
			ObjectIndex: objectIndex,
			Path:        path,
			Flags:       elfProtFlags(ph.p_flags),
			Addrs:       segment.AddrRange{Start: start, End: end},
		})
	}
	return 0
}
