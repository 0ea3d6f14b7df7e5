package dataset

import "fmt"

// ErrParse is returned when a line is not a valid hexadecimal integer.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrParse struct {
	Line  int
	// Text is the offending line. It is empty when the line exceeded the
	// read buffer.
	Text  string
	cause error
}

func (e *ErrParse) Error() string {
	if e.Text == "" && e.cause != nil {
		return fmt.Sprintf("line %d: invalid hexadecimal value: %v", e.Line, e.cause)
	}
	return fmt.Sprintf("line %d: invalid hexadecimal value %q", e.Line, e.Text)
}

func (e *ErrParse) Unwrap() error { return e.cause }

// RoundTripWarning describes a line whose parsed value does not re-encode to
// the same hexadecimal text.
type RoundTripWarning struct {
	Line       int
	Text       string
	Normalized string
	Encoded    string
}

func (w RoundTripWarning) String() string {
	return fmt.Sprintf("line %d: %q re-encodes as %q", w.Line, w.Normalized, w.Encoded)
}

// ErrRoundTrip is returned instead of a warning in strict mode.
type ErrRoundTrip struct {
	Warning RoundTripWarning
}

func (e *ErrRoundTrip) Error() string {
	return "round-trip mismatch: " + e.Warning.String()
}
