// Package platform answers the questions page-primer needs about the
// host: the base page size, whether transparent huge pages are available,
// and how many OS threads the current process has.
package platform

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/sys/unix"
)

// hpagePMDSizePath is the kernel-exposed transparent huge page PMD size.
const hpagePMDSizePath = "/sys/kernel/mm/transparent_hugepage/hpage_pmd_size"

// BasePageSize returns the platform's base page size, asserted to be a
// power of two.
func BasePageSize() uintptr {
	size := uintptr(unix.Getpagesize())
	if size == 0 || size&(size-1) != 0 {
		panic(fmt.Sprintf("base page size %d is not a power of two", size))
	}
	return size
}

// HugePageSize returns the transparent huge page size, or nil if the
// kernel doesn't support them. An I/O or parse failure reading the sysfs
// file is returned as an error.
func HugePageSize() (*uintptr, error) {
	data, err := os.ReadFile(hpagePMDSizePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	size, err := parsePMDSize(data)
	if err != nil {
		return nil, err
	}
	return &size, nil
}

// parsePMDSize parses the trailing-newline-terminated decimal integer
// the kernel writes to hpagePMDSizePath.
func parsePMDSize(data []byte) (uintptr, error) {
	trimmed := bytes.TrimSpace(data)
	size, err := strconv.ParseUint(string(trimmed), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid data: unable to parse %s contents %q as a size: %w",
			hpagePMDSizePath, data, err)
	}
	return uintptr(size), nil
}

// Mask asserts that size is a power of two greater than one and returns
// size-1, suitable for bitwise alignment arithmetic.
func Mask(size uintptr) uintptr {
	if size <= 1 || size&(size-1) != 0 {
		panic(fmt.Sprintf("%d is not a power of two greater than one", size))
	}
	return size - 1
}

// RoundUp aligns addr up to the next multiple of mask+1, or returns addr
// unchanged if it is already aligned.
func RoundUp(addr uintptr, mask uintptr) uintptr {
	if addr&mask == 0 {
		return addr
	}
	return (addr &^ mask) + mask + 1
}

// RoundDown aligns addr down to a multiple of mask+1.
func RoundDown(addr uintptr, mask uintptr) uintptr {
	return addr &^ mask
}
