package hamscan

import (
	"errors"
	"fmt"

	"github.com/hupe1980/hamscan/partition"
)

var (
	// ErrInvalidMaxDistance is returned when the distance threshold is negative.
	ErrInvalidMaxDistance = errors.New("max distance must not be negative")

	// ErrInvalidBucketWidth is returned when the progress bucket width is not
	// positive.
	ErrInvalidBucketWidth = errors.New("bucket width must be positive")

	// ErrInvalidWorkers is returned when the worker count is not positive.
	ErrInvalidWorkers = partition.ErrInvalidWorkers
)

// ErrIO indicates that an input source could not be opened or read.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrIO struct {
	Source string
	cause  error
}

func (e *ErrIO) Error() string {
	return fmt.Sprintf("read %s: %v", e.Source, e.cause)
}

func (e *ErrIO) Unwrap() error { return e.cause }
