// Package driver orchestrates the platform probe, enumerator, remap
// engine, and locker under the single-thread precondition, and builds the
// deferred record stream describing what happened.
package driver

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/scottlamb/page-primer/internal/segment"
)

// Severity classifies a Record the way the builder's consumer chooses to
// act on it: trace records are diagnostic snapshots, info records are the
// normal per-run summary, warn records flag a precondition that wasn't
// met.
type Severity int

const (
	Trace Severity = iota
	Info
	Warn
)

func (s Severity) String() string {
	switch s {
	case Trace:
		return "trace"
	case Info:
		return "info"
	case Warn:
		return "warn"
	default:
		return "unknown"
	}
}

// Record is one entry in the opaque output buffer run() returns.
type Record struct {
	Severity Severity
	Message  string
}

// Output is the ordered, immutable sequence of records one run produces.
// The zero value is a legal empty Output.
type Output struct {
	records []Record
}

// newOutput wraps a freshly built record slice.
func newOutput(records []Record) *Output {
	return &Output{records: records}
}

// Records returns the accumulated records in emission order.
func (o *Output) Records() []Record {
	return o.records
}

// Log emits every record to logger at the matching zerolog level. Output
// is otherwise an inert data holder: nothing is emitted unless the caller
// calls Log or Eprint.
func (o *Output) Log(logger zerolog.Logger) {
	for _, r := range o.records {
		var event *zerolog.Event
		switch r.Severity {
		case Trace:
			event = logger.Trace()
		case Warn:
			event = logger.Warn()
		default:
			event = logger.Info()
		}
		event.Msg(r.Message)
	}
}

// Eprint emits every record to standard error as "severity: message",
// with no logging library dependency, for callers that have none wired
// up.
func (o *Output) Eprint() {
	for _, r := range o.records {
		fmt.Fprintf(os.Stderr, "%s: %s\n", r.Severity, r.Message)
	}
}

// addressSpaceSnapshot best-effort reads /proc/self/maps for a diagnostic
// trace record. A read failure yields a record saying so rather than
// aborting the run; this snapshot is purely advisory.
func addressSpaceSnapshot(label string) Record {
	f, err := os.Open("/proc/self/maps")
	if err != nil {
		return Record{Severity: Trace, Message: fmt.Sprintf("%s: /proc/self/maps unavailable: %s", label, err)}
	}
	defer f.Close()

	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", label)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		b.WriteString(sc.Text())
		b.WriteByte('\n')
	}
	return Record{Severity: Trace, Message: strings.TrimRight(b.String(), "\n")}
}

// buildSummary renders the one info record summarizing per-object,
// per-segment outcomes: an object path header whenever the object
// changes, then one line per segment with its original range, protection
// triad, remap outcome (or nothing, if remap wasn't attempted), and lock
// outcome (or nothing, if lock wasn't attempted).
func buildSummary(segments []segment.Segment) Record {
	var b strings.Builder
	lastObject := -1
	for _, s := range segments {
		if s.ObjectIndex != lastObject {
			fmt.Fprintf(&b, "%s:\n", s.Path)
			lastObject = s.ObjectIndex
		}
		fmt.Fprintf(&b, "  %s %s", s.Addrs, s.Flags)
		if s.Remap != nil {
			if s.Remap.Err != nil {
				fmt.Fprintf(&b, " remap=%s", s.Remap.Err)
			} else {
				fmt.Fprintf(&b, " remap=%s", s.Remap.Range)
			}
		}
		if s.Mlock != nil {
			if s.Mlock.Err != nil {
				fmt.Fprintf(&b, " mlock=%s", s.Mlock.Err)
			} else {
				fmt.Fprintf(&b, " mlock=success")
			}
		}
		b.WriteByte('\n')
	}
	return Record{Severity: Info, Message: strings.TrimRight(b.String(), "\n")}
}
