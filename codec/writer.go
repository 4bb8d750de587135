package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// MaxUint24 is the largest value that fits a 3-byte field.
const MaxUint24 = (1 << 24) - 1

// WriteBytes appends the given bytes to the provided buffer.
func WriteBytes(buf *bytes.Buffer, b []byte) error {
	_, err := buf.Write(b)
	return err
}

// WriteUint8 appends the uint8 to the provided buffer.
func WriteUint8(buf *bytes.Buffer, n uint8) error {
	return buf.WriteByte(n)
}

// WriteUint16 appends the uint16 to the provided buffer. It encodes the
// integer using big endian byte order.
func WriteUint16(buf *bytes.Buffer, n uint16) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], n)
	_, err := buf.Write(b[:])
	return err
}

// WriteUint24 appends the lower 3 bytes of n to the provided buffer using big
// endian byte order. Values that don't fit in 3 bytes are rejected.
func WriteUint24(buf *bytes.Buffer, n uint32) error {
	if n > MaxUint24 {
		return fmt.Errorf("%w: %d does not fit in 3 bytes",
			ErrValueOutOfRange, n)
	}

	var b [4]byte
	binary.BigEndian.PutUint32(b[:], n)
	_, err := buf.Write(b[1:])
	return err
}

// WriteUint32 appends the uint32 to the provided buffer. It encodes the
// integer using big endian byte order.
func WriteUint32(buf *bytes.Buffer, n uint32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], n)
	_, err := buf.Write(b[:])
	return err
}

// WriteUint64 appends the uint64 to the provided buffer. It encodes the
// integer using big endian byte order.
func WriteUint64(buf *bytes.Buffer, n uint64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], n)
	_, err := buf.Write(b[:])
	return err
}

// WriteCount appends a 2-byte big endian element count. Counts that don't fit
// in 16 bits are rejected.
func WriteCount(buf *bytes.Buffer, n int) error {
	if n < 0 || n > math.MaxUint16 {
		return fmt.Errorf("%w: %d elements exceed the 2-byte count",
			ErrValueOutOfRange, n)
	}

	return WriteUint16(buf, uint16(n))
}

// WriteUint16LE appends the uint16 to the provided buffer using little endian
// byte order, as used by the structural dialect.
func WriteUint16LE(buf *bytes.Buffer, n uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], n)
	_, err := buf.Write(b[:])
	return err
}

// WriteUint32LE appends the uint32 to the provided buffer using little endian
// byte order.
func WriteUint32LE(buf *bytes.Buffer, n uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], n)
	_, err := buf.Write(b[:])
	return err
}

// WriteUint64LE appends the uint64 to the provided buffer using little endian
// byte order.
func WriteUint64LE(buf *bytes.Buffer, n uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], n)
	_, err := buf.Write(b[:])
	return err
}

// WriteCountLE appends a 2-byte little endian element count, the collection
// prefix of the structural dialect.
func WriteCountLE(buf *bytes.Buffer, n int) error {
	if n < 0 || n > math.MaxUint16 {
		return fmt.Errorf("%w: %d elements exceed the 2-byte count",
			ErrValueOutOfRange, n)
	}

	return WriteUint16LE(buf, uint16(n))
}
