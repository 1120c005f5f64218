//go:build linux

package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRunRefusesWhenNotSingleThreaded exercises the precondition gate
// from the test binary itself, which the Go runtime keeps multi-threaded
// (GC workers, sysmon, ...) well before any test body runs. That makes
// this process a reliable stand-in for a multi-threaded caller, without
// needing to spawn anything extra.
func TestRunRefusesWhenNotSingleThreaded(t *testing.T) {
	out := Run(true, true)
	records := out.Records()
	assert := assert.New(t)
	if assert.GreaterOrEqual(len(records), 2) {
		assert.Equal(Trace, records[0].Severity)
		last := records[len(records)-1]
		assert.Equal(Warn, last.Severity)
		assert.Contains(last.Message, "threads")
	}
}
