//go:build linux

package enum

/*
#include <link.h>

extern int goPhdrCallback(struct dl_phdr_info *info, size_t size, void *data);

static int page_primer_enumerate(void *data) {
	return dl_iterate_phdr(goPhdrCallback, data);
}
*/
import "C"

import (
	"os"
	"runtime/cgo"
	"unsafe"

	"github.com/scottlamb/page-primer/internal/segment"
)

// programName returns the current executable's path, falling back to the
// literal "main" when even that can't be determined.
func programName() string {
	exe, err := os.Executable()
	if err != nil {
		return "main"
	}
	return exe
}

// Enumerate walks every loaded object's program headers via
// dl_iterate_phdr(3) and returns the loadable segments found, in
// enumeration order, capped at maxSegments entries.
func Enumerate() []segment.Segment {
	ctx := &context{programName: programName(), segments: make([]segment.Segment, 0, maxSegments)}
	h := cgo.NewHandle(ctx)
	defer h.Delete()

	C.page_primer_enumerate(unsafe.Pointer(uintptr(h)))

	return ctx.segments
}
