package codec

import (
	"encoding/binary"
	"io"
)

// ReadFull reads exactly len(b) bytes from r. A stream that ends early yields
// an error matching ErrInsufficientData; what names the field being read.
func ReadFull(r io.Reader, b []byte, what string) error {
	if _, err := io.ReadFull(r, b); err != nil {
		if isShortRead(err) {
			return InsufficientData(err, what)
		}

		return err
	}

	return nil
}

// ReadUint8 reads a single byte from r.
func ReadUint8(r io.Reader, what string) (uint8, error) {
	var b [1]byte
	if err := ReadFull(r, b[:], what); err != nil {
		return 0, err
	}

	return b[0], nil
}

// ReadUint16 reads a big endian uint16 from r.
func ReadUint16(r io.Reader, what string) (uint16, error) {
	var b [2]byte
	if err := ReadFull(r, b[:], what); err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint16(b[:]), nil
}

// ReadUint24 reads a 3-byte big endian integer from r.
func ReadUint24(r io.Reader, what string) (uint32, error) {
	var b [4]byte
	if err := ReadFull(r, b[1:], what); err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint32(b[:]), nil
}

// ReadUint32 reads a big endian uint32 from r.
func ReadUint32(r io.Reader, what string) (uint32, error) {
	var b [4]byte
	if err := ReadFull(r, b[:], what); err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint32(b[:]), nil
}

// ReadUint64 reads a big endian uint64 from r.
func ReadUint64(r io.Reader, what string) (uint64, error) {
	var b [8]byte
	if err := ReadFull(r, b[:], what); err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint64(b[:]), nil
}

// ReadUint16LE reads a little endian uint16 from r.
func ReadUint16LE(r io.Reader, what string) (uint16, error) {
	var b [2]byte
	if err := ReadFull(r, b[:], what); err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint16(b[:]), nil
}

// ReadUint32LE reads a little endian uint32 from r.
func ReadUint32LE(r io.Reader, what string) (uint32, error) {
	var b [4]byte
	if err := ReadFull(r, b[:], what); err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(b[:]), nil
}

// ReadUint64LE reads a little endian uint64 from r.
func ReadUint64LE(r io.Reader, what string) (uint64, error) {
	var b [8]byte
	if err := ReadFull(r, b[:], what); err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint64(b[:]), nil
}
