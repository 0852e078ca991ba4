package recsplit

import (
	"encoding/binary"
	"io"
)

// Fixed provides a generic record kind for any struct `Payload`
// composed of fixed-size fields, eliminating boilerplate for simple records.
//
// Constraint: The `Payload` type MUST NOT contain variable-size fields like slices,
// maps, or strings. Such a payload reports a negative size, which EncodedLength
// rejects with ErrInvalidLength.
type Fixed[Payload any] struct {
	Payload Payload
}

// Statically assert that Fixed declares its size and encodes in place.
var (
	_ FixedSizer  = (*Fixed[struct{}])(nil)
	_ MarshalerTo = (*Fixed[struct{}])(nil)
)

// FixedSize returns the encoded size of Payload in bytes.
// It never reads the receiver, so it is safe on a nil *Fixed.
func (*Fixed[Payload]) FixedSize() int {
	var zero Payload
	return binary.Size(&zero)
}

// MarshalBinary implements the standard `encoding.BinaryMarshaler` interface.
// Note: This method allocates a new byte slice. For performance-critical paths,
// use `MarshalTo` instead.
func (c *Fixed[Payload]) MarshalBinary() ([]byte, error) {
	size := c.FixedSize()
	if size < 0 {
		return nil, ErrInvalidLength
	}
	buf := make([]byte, size)
	if _, err := binary.Encode(buf, Order, &c.Payload); err != nil {
		return nil, io.ErrShortWrite // binary.Encode only returns unexported buffer too small error, it means fewer bytes were written than expected
	}
	return buf, nil
}

// MarshalTo marshals the record into the provided slice `p`.
// This is the most performant marshalling option as it avoids memory allocation.
func (c *Fixed[Payload]) MarshalTo(p []byte) (int, error) {
	n, err := binary.Encode(p, Order, &c.Payload)
	if err != nil {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// UnmarshalBinary implements the standard `encoding.BinaryUnmarshaler` interface.
// Split always hands it exactly FixedSize bytes.
func (c *Fixed[Payload]) UnmarshalBinary(data []byte) error {
	if _, err := binary.Decode(data, Order, &c.Payload); err != nil {
		return ErrTruncatedData // binary.Decode always returns unexported buffer too small error, it means the data is truncated
	}
	return nil
}
