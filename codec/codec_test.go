package codec

import (
	"bytes"
	"encoding/hex"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// pair is a minimal type with intentionally different layouts in the two
// dialects.
type pair struct {
	a uint16
	b uint32
}

func (p *pair) EncodeStructural(w *bytes.Buffer) error {
	if err := WriteUint16LE(w, p.a); err != nil {
		return err
	}

	return WriteUint32LE(w, p.b)
}

func (p *pair) DecodeStructural(r io.Reader) error {
	var err error
	if p.a, err = ReadUint16LE(r, "a"); err != nil {
		return err
	}
	p.b, err = ReadUint32LE(r, "b")

	return err
}

func (p *pair) EncodeWire(w *bytes.Buffer) error {
	if err := WriteUint32(w, p.b); err != nil {
		return err
	}

	return WriteUint16(w, p.a)
}

func (p *pair) DecodeWire(r io.Reader) error {
	var err error
	if p.b, err = ReadUint32(r, "b"); err != nil {
		return err
	}
	p.a, err = ReadUint16(r, "a")

	return err
}

// TestDialectsAreIndependent asserts that both dialects round trip while
// producing different bytes for the same value.
func TestDialectsAreIndependent(t *testing.T) {
	t.Parallel()

	v := &pair{a: 0x0102, b: 0x03040506}

	structural, err := SerializeStructural(v)
	require.NoError(t, err)
	require.Equal(t, "020106050403", hex.EncodeToString(structural))

	wireBytes, err := SerializeWire(v)
	require.NoError(t, err)
	require.Equal(t, "030405060102", hex.EncodeToString(wireBytes))

	var fromStructural, fromWire pair
	require.NoError(t, DeserializeStructural(structural, &fromStructural))
	require.NoError(t, DeserializeWire(wireBytes, &fromWire))
	require.Equal(t, *v, fromStructural)
	require.Equal(t, *v, fromWire)
}

// TestTrailingDataRejected ensures exact deserialization refuses leftover
// bytes.
func TestTrailingDataRejected(t *testing.T) {
	t.Parallel()

	var p pair
	err := DeserializeWire(make([]byte, 7), &p)
	require.ErrorIs(t, err, ErrTrailingData)

	err = DeserializeStructural(make([]byte, 9), &p)
	require.ErrorIs(t, err, ErrTrailingData)
}

// TestShortReads checks that every reader reports ErrInsufficientData rather
// than returning a default value.
func TestShortReads(t *testing.T) {
	t.Parallel()

	readers := map[string]func(io.Reader) error{
		"uint8": func(r io.Reader) error {
			_, err := ReadUint8(r, "uint8")
			return err
		},
		"uint16": func(r io.Reader) error {
			_, err := ReadUint16(r, "uint16")
			return err
		},
		"uint24": func(r io.Reader) error {
			_, err := ReadUint24(r, "uint24")
			return err
		},
		"uint32": func(r io.Reader) error {
			_, err := ReadUint32(r, "uint32")
			return err
		},
		"uint64": func(r io.Reader) error {
			_, err := ReadUint64(r, "uint64")
			return err
		},
		"uint16le": func(r io.Reader) error {
			_, err := ReadUint16LE(r, "uint16le")
			return err
		},
		"uint64le": func(r io.Reader) error {
			_, err := ReadUint64LE(r, "uint64le")
			return err
		},
	}

	for name, read := range readers {
		read := read
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := read(bytes.NewReader(nil))
			require.ErrorIs(t, err, ErrInsufficientData)
			require.ErrorIs(t, err, io.EOF)
		})
	}

	// A read that starts but can't finish also maps to insufficient data.
	_, err := ReadUint64(bytes.NewReader([]byte{1, 2, 3}), "partial")
	require.ErrorIs(t, err, ErrInsufficientData)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

// TestWriteUint24Bounds checks the 3-byte writer accepts exactly the 24-bit
// domain.
func TestWriteUint24Bounds(t *testing.T) {
	t.Parallel()

	var b bytes.Buffer
	require.NoError(t, WriteUint24(&b, MaxUint24))
	require.Equal(t, []byte{0xff, 0xff, 0xff}, b.Bytes())

	b.Reset()
	err := WriteUint24(&b, MaxUint24+1)
	require.ErrorIs(t, err, ErrValueOutOfRange)
	require.Zero(t, b.Len())
}

// TestWriteCountBounds checks the collection prefix refuses oversized lists.
func TestWriteCountBounds(t *testing.T) {
	t.Parallel()

	var b bytes.Buffer
	require.NoError(t, WriteCount(&b, 0xffff))
	require.NoError(t, WriteCountLE(&b, 0x0102))
	require.Equal(t, []byte{0xff, 0xff, 0x02, 0x01}, b.Bytes())

	require.ErrorIs(t, WriteCount(&b, 0x10000), ErrValueOutOfRange)
	require.ErrorIs(t, WriteCountLE(&b, -1), ErrValueOutOfRange)
}

// TestUint24RoundTrip is a property test over the whole 24-bit domain.
func TestUint24RoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.Uint32Range(0, MaxUint24).Draw(t, "n")

		var b bytes.Buffer
		require.NoError(t, WriteUint24(&b, n))
		require.Equal(t, 3, b.Len())

		got, err := ReadUint24(&b, "n")
		require.NoError(t, err)
		require.Equal(t, n, got)
	})
}
