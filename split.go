package recsplit

import (
	"fmt"
	"reflect"
)

// Result is the outcome of splitting one buffer.
//
// len(Remainder) + len(Records)*EncodedLength always equals the input length.
// The remainder is the head of the input: leftover bytes belong to a record
// whose start was consumed by an earlier call, and whole records fill the tail.
type Result[T any] struct {
	Remainder     []byte // first len(input) % EncodedLength bytes, copied
	Records       []T    // decoded records in input order
	EncodedLength int    // bytes per record
}

// Split partitions buf into a leading remainder and the whole T records that follow it.
//
// An empty or short buffer is not an error: it is returned entirely as remainder.
// A record the codec refuses to decode fails the whole split with a *DecodeError.
func Split[T any, PT Record[T]](r *Registry, buf []byte) (Result[T], error) {
	n, err := EncodedLength[T, PT](r)
	if err != nil {
		return Result[T]{}, err
	}
	remainder, records, err := splitInto[T, PT](r, n, buf, make([]T, 0, len(buf)/n))
	if err != nil {
		return Result[T]{}, err
	}
	return Result[T]{Remainder: remainder, Records: records, EncodedLength: n}, nil
}

// SplitInto is Split appending the decoded records to dst, so a streaming
// consumer can reuse record storage between buffers.
// On error dst is returned with its original length.
func SplitInto[T any, PT Record[T]](r *Registry, buf []byte, dst []T) ([]byte, []T, error) {
	n, err := EncodedLength[T, PT](r)
	if err != nil {
		return nil, dst, err
	}
	return splitInto[T, PT](r, n, buf, dst)
}

func splitInto[T any, PT Record[T]](r *Registry, n int, buf []byte, dst []T) ([]byte, []T, error) {
	count := len(buf) / n
	padding := len(buf) - count*n

	remainder := make([]byte, padding)
	copy(remainder, buf)

	start := len(dst)
	if cap(dst)-start < count {
		grown := make([]T, start, start+count)
		copy(grown, dst)
		dst = grown
	}
	dst = dst[:start+count]
	clear(dst[start:])

	for i, cursor := 0, padding; i < count; i, cursor = i+1, cursor+n {
		entry := buf[cursor : cursor+n : cursor+n]
		if err := PT(&dst[start+i]).UnmarshalBinary(entry); err != nil {
			kind := reflect.TypeFor[T]()
			r.metrics.decodeErrors.WithLabelValues(kind.String()).Inc()
			return nil, dst[:start], &DecodeError{Kind: kind, Index: i, Offset: cursor, Data: entry, Err: err}
		}
	}

	label := reflect.TypeFor[T]().String()
	r.metrics.records.WithLabelValues(label).Add(float64(count))
	r.metrics.remainderBytes.WithLabelValues(label).Add(float64(padding))
	return remainder, dst, nil
}

// Join encodes records back to back. Splitting the result yields an empty
// remainder and the same records.
func Join[T any, PT Record[T]](r *Registry, records []T) ([]byte, error) {
	n, err := EncodedLength[T, PT](r)
	if err != nil {
		return nil, err
	}

	w := NewBytesWriter(make([]byte, len(records)*n))
	for i := range records {
		rec := PT(&records[i])

		// Encode in place when the record supports it.
		if m, ok := any(rec).(MarshalerTo); ok {
			dst, err := w.Reserve(n)
			if err != nil {
				return nil, err
			}
			written, err := m.MarshalTo(dst)
			if err != nil {
				return nil, fmt.Errorf("recsplit: encode %v record %d: %w", reflect.TypeFor[T](), i, err)
			}
			if written != n {
				return nil, fmt.Errorf("%w: %v record %d wrote %d of %d bytes", ErrLengthMismatch, reflect.TypeFor[T](), i, written, n)
			}
			continue
		}

		b, err := rec.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("recsplit: encode %v record %d: %w", reflect.TypeFor[T](), i, err)
		}
		if len(b) != n {
			return nil, fmt.Errorf("%w: %v record %d encoded to %d of %d bytes", ErrLengthMismatch, reflect.TypeFor[T](), i, len(b), n)
		}
		if _, err := w.Write(b); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}
