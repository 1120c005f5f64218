//go:build !linux

package driver

// NoopRun reports that the core did nothing, for platforms where it
// isn't implemented at all. It still returns a well-formed Output so
// callers never need a platform-specific code path of their own.
func NoopRun() *Output {
	return newOutput([]Record{{
		Severity: Warn,
		Message:  "page priming is not implemented on this platform; no operations performed",
	}})
}
