//go:build !linux

package pageprimer

import "github.com/scottlamb/page-primer/internal/driver"

// runCore is a no-op on non-Linux platforms: the core's mmap/mlock/ELF
// machinery is Linux-specific, so Run here only reports that nothing
// happened.
func runCore(bool, bool) *Output {
	return driver.NoopRun()
}
