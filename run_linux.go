//go:build linux

package pageprimer

import "github.com/scottlamb/page-primer/internal/driver"

// runCore dispatches to the real driver on Linux, the only platform the
// core is implemented for.
func runCore(mlock, remap bool) *Output {
	return driver.Run(mlock, remap)
}
