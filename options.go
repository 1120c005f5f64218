// Package pageprimer reduces steady-state performance jitter in
// long-running native executables by locking loaded program segments
// resident and, on Linux, replacing their read-only executable text with
// huge-page-backed anonymous mappings.
//
// The core (the huge-page remap subsystem) is Linux-only; on other
// platforms Run only ever returns a single warning record and never
// touches any mapping.
package pageprimer

// Options is a builder for one priming run. The zero value has both
// toggles false, which is a legal no-op. Constructing an Options and
// never calling Run is legal but almost certainly a mistake.
type Options struct {
	mlock bool
	remap bool
}

// Prime returns a new Options with both toggles false.
func Prime() *Options {
	return &Options{}
}

// MLock toggles whether Run locks each enumerated segment's original
// address range resident.
func (o *Options) MLock(enabled bool) *Options {
	o.mlock = enabled
	return o
}

// Remap toggles whether Run attempts to replace eligible segments with
// huge-page-backed anonymous mappings.
func (o *Options) Remap(enabled bool) *Options {
	o.remap = enabled
	return o
}

// Run executes the priming sequence described in the package doc and
// returns the resulting record buffer. Run never returns an error: every
// precondition failure or per-segment failure is instead recorded as a
// Record, per this package's advisory/terminal error model. The only
// other outcome is a process abort, which can happen only if the
// platform's segment enumeration callback hits a bug deep enough to
// panic across the foreign-function boundary.
func (o *Options) Run() *Output {
	return runCore(o.mlock, o.remap)
}
