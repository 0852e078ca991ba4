package recsplit

import (
	"encoding"
	"encoding/binary"
)

var (
	BE = binary.BigEndian
	LE = binary.LittleEndian
	// Order is default binary order
	Order = BE
)

// Record constrains a record kind T to a pointer type that can encode itself
// into, and decode itself from, exactly EncodedLength bytes.
type Record[T any] interface {
	*T
	// encoding.BinaryMarshaler produces the fixed-size encoding of one record.
	encoding.BinaryMarshaler // Method: MarshalBinary() ([]byte, error)
	// encoding.BinaryUnmarshaler fills the record from exactly one encoding.
	encoding.BinaryUnmarshaler // Method: UnmarshalBinary(data []byte) error
}

// FixedSizer declares the encoded length of a record kind statically.
//
// The result must not depend on the receiver's state: a value receiver is
// called on the zero value, a pointer receiver is called on a nil pointer.
// Kinds without it fall back to marshalling a zero sample once per Registry.
type FixedSizer interface {
	FixedSize() int
}

// MarshalerTo is an optional zero-allocation encoding path used by Join.
// It encodes the record into buf, returning an error (e.g., io.ErrShortWrite)
// if the buffer is too small.
type MarshalerTo interface {
	MarshalTo(buf []byte) (int, error)
}
