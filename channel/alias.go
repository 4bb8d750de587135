package channel

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/lnpbp/lnpcore/codec"
)

// AliasLen is the length of an Alias in both dialects.
const AliasLen = 32

// Alias is an opaque 32-byte value a node may use as a display name. It is
// displayed as hex; Text recovers a UTF-8 alias stored with NewAlias.
type Alias [AliasLen]byte

// A compile time check to ensure Alias implements both dialects.
var (
	_ codec.WireCodec       = (*Alias)(nil)
	_ codec.StructuralCodec = (*Alias)(nil)
)

// NewAlias creates an Alias holding the UTF-8 string s, zero padded.
func NewAlias(s string) (Alias, error) {
	var a Alias

	if len(s) > AliasLen {
		return a, codec.InvalidFormat("alias too large: max is %v, "+
			"got %v", AliasLen, len(s))
	}

	if !utf8.ValidString(s) {
		return a, codec.InvalidFormat("invalid utf8 string")
	}

	copy(a[:], s)

	return a, nil
}

// ParseAlias parses the 64 character hex form of an alias.
func ParseAlias(s string) (Alias, error) {
	b, err := codec.DecodeHex32(s)
	if err != nil {
		return Alias{}, err
	}

	return Alias(b), nil
}

// Text returns the alias bytes as a string with trailing zero bytes removed.
func (a Alias) Text() string {
	return string(bytes.TrimRight(a[:], "\x00"))
}

// String returns the lowercase hex encoding of the alias.
func (a Alias) String() string {
	return fmt.Sprintf("%x", a[:])
}

// Format implements fmt.Formatter, printing lowercase hex for %s, %v and %x
// and uppercase hex for %X.
func (a Alias) Format(f fmt.State, verb rune) {
	codec.FormatHex(f, verb, a[:])
}

// EncodeWire writes the 32 raw bytes of the alias.
func (a *Alias) EncodeWire(w *bytes.Buffer) error {
	return codec.WriteBytes(w, a[:])
}

// DecodeWire reads 32 raw bytes into the alias.
func (a *Alias) DecodeWire(r io.Reader) error {
	return codec.ReadFull(r, a[:], "alias")
}

// EncodeStructural writes the 32 raw bytes of the alias.
func (a *Alias) EncodeStructural(w *bytes.Buffer) error {
	return a.EncodeWire(w)
}

// DecodeStructural reads 32 raw bytes into the alias.
func (a *Alias) DecodeStructural(r io.Reader) error {
	return a.DecodeWire(r)
}
