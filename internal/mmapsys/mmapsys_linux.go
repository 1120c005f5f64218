// Package mmapsys wraps the raw mmap/munmap syscalls this module needs
// with an explicit target address, which golang.org/x/sys/unix.Mmap does
// not expose (it always lets the kernel choose).
package mmapsys

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Mmap issues mmap(2) with addr as the requested address (0 lets the
// kernel choose) and returns the resulting address. Whether addr is
// honored exactly depends on the MAP_FIXED* bits in flags.
func Mmap(addr, length uintptr, prot, flags, fd int, offset int64) (uintptr, error) {
	got, _, errno := unix.Syscall6(unix.SYS_MMAP, addr, length,
		uintptr(prot), uintptr(flags), uintptr(fd), uintptr(offset))
	if errno != 0 {
		return 0, errno
	}
	return got, nil
}

// Munmap issues munmap(2) for the given range.
func Munmap(addr, length uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_MUNMAP, addr, length, 0)
	if errno != 0 {
		return errno
	}
	return nil
}

// Mlock pins the given range resident.
func Mlock(addr, length uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_MLOCK, addr, length, 0)
	if errno != 0 {
		return errno
	}
	return nil
}

// MemfdCreate creates an anonymous in-memory file tagged for huge-page
// backing, close-on-exec, named after path for debuggability.
func MemfdCreate(name string) (int, error) {
	fd, err := unix.MemfdCreate(name, unix.MFD_CLOEXEC|unix.MFD_HUGETLB)
	if err != nil {
		return -1, fmt.Errorf("memfd_create: %w", err)
	}
	return fd, nil
}

// Ftruncate sizes fd to length bytes.
func Ftruncate(fd int, length int64) error {
	return unix.Ftruncate(fd, length)
}

// Close closes fd.
func Close(fd int) error {
	return unix.Close(fd)
}
