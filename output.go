package pageprimer

import "github.com/scottlamb/page-primer/internal/driver"

// Severity classifies a Record.
type Severity = driver.Severity

const (
	Trace = driver.Trace
	Info  = driver.Info
	Warn  = driver.Warn
)

// Record is one entry in the opaque output buffer Run returns.
type Record = driver.Record

// Output is the ordered, immutable sequence of records one Run produces.
// Per spec, it is treated as an opaque record buffer: the fields are
// private, and the only ways to act on it are Records, Log and Eprint.
// Obtaining an Output without ever calling one of those is legal but is almost
// certainly a mistake — nothing is ever emitted on its own.
type Output = driver.Output
