// Package dataset loads fingerprint data sets from newline-delimited
// hexadecimal text.
//
// Every line is trimmed, lower-cased and stripped of an optional "0x"
// prefix before being parsed as a base-16 unsigned 64-bit integer. The
// parsed value is re-encoded and compared with the normalized text; a
// mismatch (for example a leading zero) is reported as a RoundTripWarning
// and the load continues, unless strict mode turns it into an error. A line
// that is not valid hexadecimal aborts the load with an ErrParse.
//
// Input compressed with gzip, zstd or LZ4 (frame format) is detected from
// its magic bytes and decompressed transparently.
//
// # Usage
//
//	ds, report, err := dataset.Load(f, dataset.WithWarningHandler(func(w dataset.RoundTripWarning) {
//	    log.Println(w)
//	}))
package dataset
