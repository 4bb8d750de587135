// Package codec defines the two canonical binary dialects used by every
// protocol type in lnpcore, together with the fixed-width field packers they
// are built from.
//
// The structural dialect is a deterministic little-endian serialization used
// for hashing, storage and content addressing. The wire dialect is the exact
// big-endian layout mandated by the BOLT specifications for peer messages.
// A type may implement either or both. The two dialects are independent: a
// value encoded in one must never be decoded with the other.
package codec

import (
	"bytes"
	"fmt"
	"io"
)

// StructuralEncoder is implemented by values that have a canonical structural
// encoding.
type StructuralEncoder interface {
	// EncodeStructural appends the structural encoding of the value to w.
	EncodeStructural(w *bytes.Buffer) error
}

// StructuralDecoder is implemented by values that can be populated from their
// structural encoding.
type StructuralDecoder interface {
	// DecodeStructural reads exactly the bytes of one structural encoding
	// from r.
	DecodeStructural(r io.Reader) error
}

// WireEncoder is implemented by values that have a BOLT wire encoding.
type WireEncoder interface {
	// EncodeWire appends the wire encoding of the value to w.
	EncodeWire(w *bytes.Buffer) error
}

// WireDecoder is implemented by values that can be populated from their BOLT
// wire encoding.
type WireDecoder interface {
	// DecodeWire reads exactly the bytes of one wire encoding from r.
	DecodeWire(r io.Reader) error
}

// StructuralCodec is a value that supports both halves of the structural
// dialect.
type StructuralCodec interface {
	StructuralEncoder
	StructuralDecoder
}

// WireCodec is a value that supports both halves of the wire dialect.
type WireCodec interface {
	WireEncoder
	WireDecoder
}

// SerializeStructural returns the structural encoding of v.
func SerializeStructural(v StructuralEncoder) ([]byte, error) {
	var b bytes.Buffer
	if err := v.EncodeStructural(&b); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// DeserializeStructural decodes v from b. All of b must be consumed, otherwise
// ErrTrailingData is returned.
func DeserializeStructural(b []byte, v StructuralDecoder) error {
	r := bytes.NewReader(b)
	if err := v.DecodeStructural(r); err != nil {
		return err
	}

	return ensureConsumed(r)
}

// SerializeWire returns the wire encoding of v.
func SerializeWire(v WireEncoder) ([]byte, error) {
	var b bytes.Buffer
	if err := v.EncodeWire(&b); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// DeserializeWire decodes v from b. All of b must be consumed, otherwise
// ErrTrailingData is returned.
func DeserializeWire(b []byte, v WireDecoder) error {
	r := bytes.NewReader(b)
	if err := v.DecodeWire(r); err != nil {
		return err
	}

	return ensureConsumed(r)
}

func ensureConsumed(r *bytes.Reader) error {
	if r.Len() != 0 {
		log.Tracef("Rejecting encoding with %d trailing bytes", r.Len())

		return fmt.Errorf("%w: %d bytes", ErrTrailingData, r.Len())
	}

	return nil
}
