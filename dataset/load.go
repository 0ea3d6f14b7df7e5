package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// minGrow is the smallest capacity step of a loading DataSet.
const minGrow = 16

// Report summarizes a load.
type Report struct {
	// Lines is the number of lines read, including blank ones.
	Lines int
	// Blank is the number of skipped blank lines.
	Blank int
	// Warnings is the number of round-trip mismatches.
	Warnings int
	// Compression is the detected input encoding.
	Compression Compression
}

type options struct {
	strict      bool
	compression Compression
	onWarning   func(RoundTripWarning)
	reserve     func(elements int) error
}

// Option configures Load.
type Option func(*options)

// WithStrict makes round-trip mismatches fatal.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithCompression forces the input encoding instead of sniffing it.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithWarningHandler registers a callback for round-trip mismatches.
// It is not called in strict mode.
func WithWarningHandler(fn func(RoundTripWarning)) Option {
	return func(o *options) {
		o.onWarning = fn
	}
}

// WithReserve registers a callback invoked before the DataSet grows its
// capacity by elements. A non-nil error aborts the load and is returned
// unchanged.
func WithReserve(fn func(elements int) error) Option {
	return func(o *options) {
		o.reserve = fn
	}
}

// Normalize trims s, lower-cases it and removes an optional "0x" prefix.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.TrimPrefix(s, "0x")
}

// ParseLine parses one line. It returns the value and the normalized text
// the value was parsed from.
func ParseLine(s string) (Fingerprint, string, error) {
	norm := Normalize(s)
	v, err := strconv.ParseUint(norm, 16, 64)
	if err != nil {
		return 0, norm, err
	}
	return Fingerprint(v), norm, nil
}

// Load reads one fingerprint per line from r.
//
// Empty input yields an empty DataSet and no error. On any error the partial
// data set is discarded.
func Load(r io.Reader, optFns ...Option) (DataSet, *Report, error) {
	o := options{compression: CompressionAuto}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	rc, c, err := decompress(r, o.compression)
	if err != nil {
		return nil, nil, err
	}
	defer rc.Close()

	report := &Report{Compression: c}

	var ds DataSet
	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for sc.Scan() {
		report.Lines++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			report.Blank++
			continue
		}

		v, norm, err := ParseLine(text)
		if err != nil {
			return nil, report, &ErrParse{Line: report.Lines, Text: text, cause: err}
		}

		if enc := v.String(); enc != norm {
			w := RoundTripWarning{Line: report.Lines, Text: text, Normalized: norm, Encoded: enc}
			if o.strict {
				return nil, report, &ErrRoundTrip{Warning: w}
			}
			report.Warnings++
			if o.onWarning != nil {
				o.onWarning(w)
			}
		}

		if len(ds) == cap(ds) {
			grow := max(cap(ds), minGrow)
			if o.reserve != nil {
				if err := o.reserve(grow); err != nil {
					return nil, report, err
				}
			}
			next := make(DataSet, len(ds), cap(ds)+grow)
			copy(next, ds)
			ds = next
		}
		ds = append(ds, v)
	}

	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, report, &ErrParse{Line: report.Lines + 1, cause: err}
		}
		return nil, report, fmt.Errorf("read data set: %w", err)
	}

	return ds, report, nil
}
