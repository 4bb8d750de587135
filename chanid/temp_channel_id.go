package chanid

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/lnpbp/lnpcore/codec"
)

// TempChannelID identifies a channel during the funding handshake, before
// the funding output is known. It has the same shape as a ChannelID and
// converts to and from one by byte identity; the conversion carries no
// derivation.
type TempChannelID [ChannelIDLen]byte

// A compile time check to ensure TempChannelID implements both codec
// dialects.
var (
	_ codec.StructuralCodec = (*TempChannelID)(nil)
	_ codec.WireCodec       = (*TempChannelID)(nil)
)

// NewTempChannelID draws a fresh TempChannelID from the given random source.
// Passing a deterministic reader makes the result reproducible in tests.
func NewTempChannelID(rng io.Reader) (TempChannelID, error) {
	var id TempChannelID
	if _, err := io.ReadFull(rng, id[:]); err != nil {
		return TempChannelID{}, fmt.Errorf("unable to generate temp "+
			"channel id: %w", err)
	}

	log.Tracef("Generated temp channel id %v", id)

	return id, nil
}

// RandomTempChannelID generates a TempChannelID from the operating system's
// cryptographically secure random source. It is safe for concurrent use.
func RandomTempChannelID() (TempChannelID, error) {
	return NewTempChannelID(rand.Reader)
}

// NewTempChannelIDFromHex parses the hex form of a TempChannelID.
func NewTempChannelIDFromHex(s string) (TempChannelID, error) {
	b, err := codec.DecodeHex32(s)
	if err != nil {
		return TempChannelID{}, fmt.Errorf("invalid temp channel id: %w",
			err)
	}

	return TempChannelID(b), nil
}

// ChannelID reinterprets the bytes of the TempChannelID as a ChannelID.
func (t TempChannelID) ChannelID() ChannelID {
	return ChannelID(t)
}

// String returns the lowercase hex encoding of the TempChannelID.
func (t TempChannelID) String() string {
	return fmt.Sprintf("%x", t[:])
}

// Format implements fmt.Formatter, printing lowercase hex for %s, %v and %x
// and uppercase hex for %X.
func (t TempChannelID) Format(f fmt.State, verb rune) {
	codec.FormatHex(f, verb, t[:])
}

// EncodeStructural writes the 32 raw bytes of the TempChannelID.
func (t *TempChannelID) EncodeStructural(w *bytes.Buffer) error {
	return codec.WriteBytes(w, t[:])
}

// DecodeStructural reads 32 raw bytes into the TempChannelID.
func (t *TempChannelID) DecodeStructural(r io.Reader) error {
	return codec.ReadFull(r, t[:], "temp channel id")
}

// EncodeWire writes the 32 raw bytes of the TempChannelID.
func (t *TempChannelID) EncodeWire(w *bytes.Buffer) error {
	return codec.WriteBytes(w, t[:])
}

// DecodeWire reads 32 raw bytes into the TempChannelID.
func (t *TempChannelID) DecodeWire(r io.Reader) error {
	return codec.ReadFull(r, t[:], "temp channel id")
}
