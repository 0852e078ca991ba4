package recsplit

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrInvalidLength indicates a record kind whose encoded length is zero or negative,
	// or whose sample instance could not be encoded. It is a programming error in the kind.
	ErrInvalidLength = errors.New("recsplit: record kind has no positive encoded length")

	// ErrLengthMismatch indicates a record encoded to a different number of bytes
	// than its kind's encoded length.
	ErrLengthMismatch = errors.New("recsplit: record encoding length mismatch")

	// ErrNilRegistry indicates an operation was called without a Registry.
	ErrNilRegistry = errors.New("recsplit: nil registry")

	// ErrTruncatedData indicates that a decode could not complete because the
	// buffer ended before all expected bytes were read.
	ErrTruncatedData = errors.New("recsplit: truncated data")
)

// DecodeError reports a record slice the codec refused to decode.
// It wraps the codec's error unchanged.
type DecodeError struct {
	Kind   reflect.Type
	Index  int // record index within the split
	Offset int // byte offset of the record within the input buffer
	Data   []byte
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("recsplit: decode %v record %d at offset %d: %v (%s)", e.Kind, e.Index, e.Offset, e.Err, Preview(e.Data))
}

func (e *DecodeError) Unwrap() error { return e.Err }
