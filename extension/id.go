package extension

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/lightningnetwork/lnd/tlv"
	"github.com/lnpbp/lnpcore/codec"
)

// Nomenclature is implemented by any enumeration of protocol extensions that
// a dispatcher routes messages by. The numeric code is the stable tag sent
// between peers.
type Nomenclature interface {
	fmt.Stringer

	// Code returns the wire-stable numeric tag of the extension.
	Code() uint16
}

// ID names a protocol extension of a channel. The zero value is Channel, the
// core channel itself.
type ID uint8

const (
	// Channel is the channel core.
	Channel ID = iota

	// Bolt3 is the BOLT3 commitment transaction construction.
	Bolt3

	// Eltoo is the eltoo update mechanism.
	Eltoo

	// Taproot is the taproot channel construction.
	Taproot

	// Htlc enables hash time locked contracts.
	Htlc

	// Ptlc enables point time locked contracts.
	Ptlc

	// ShutdownScript is the upfront shutdown script feature.
	ShutdownScript

	// AnchorOut adds anchor outputs to commitment transactions.
	AnchorOut

	// Dlc enables discreet log contracts.
	Dlc

	// Lightspeed is the lightspeed payment protocol.
	Lightspeed

	// Bip96 is the BIP-96 style lightning payment extension.
	Bip96

	// Rgb enables RGB asset transfers over the channel.
	Rgb
)

// A compile time check to ensure ID implements Nomenclature and both codec
// dialects.
var (
	_ Nomenclature          = ID(0)
	_ codec.WireCodec       = (*ID)(nil)
	_ codec.StructuralCodec = (*ID)(nil)
)

// ErrUnknownCode is returned when a numeric code has no matching extension.
type ErrUnknownCode struct {
	code uint16
}

// Error returns a human readable string describing the error.
func (e ErrUnknownCode) Error() string {
	return fmt.Sprintf("unknown extension code %#04x", e.code)
}

// Unwrap makes the error match codec.ErrInvalidFormat.
func (e ErrUnknownCode) Unwrap() error {
	return codec.ErrInvalidFormat
}

// extensionCodes is the explicit mapping from extension to its numeric code.
// New entries must only ever be appended.
var extensionCodes = map[ID]uint16{
	Channel:        0x0000,
	Bolt3:          0x0001,
	Eltoo:          0x0002,
	Taproot:        0x0003,
	Htlc:           0x0004,
	Ptlc:           0x0005,
	ShutdownScript: 0x0006,
	AnchorOut:      0x0007,
	Dlc:            0x0008,
	Lightspeed:     0x0009,
	Bip96:          0x000a,
	Rgb:            0x000b,
}

// extensionNames holds the display name of each extension.
var extensionNames = map[ID]string{
	Channel:        "channel",
	Bolt3:          "bolt3",
	Eltoo:          "eltoo",
	Taproot:        "taproot",
	Htlc:           "htlc",
	Ptlc:           "ptlc",
	ShutdownScript: "shutdown-script",
	AnchorOut:      "anchor-out",
	Dlc:            "dlc",
	Lightspeed:     "lightspeed",
	Bip96:          "bip96",
	Rgb:            "rgb",
}

// codeExtensions is the inverse of extensionCodes.
var codeExtensions = func() map[uint16]ID {
	m := make(map[uint16]ID, len(extensionCodes))
	for id, code := range extensionCodes {
		m[code] = id
	}

	return m
}()

// All returns every known extension in code order.
func All() []ID {
	ids := make([]ID, 0, len(extensionCodes))
	for id := Channel; id <= Rgb; id++ {
		ids = append(ids, id)
	}

	return ids
}

// IsKnown returns true if the value is one of the defined extensions.
func (id ID) IsKnown() bool {
	_, ok := extensionCodes[id]
	return ok
}

// Code returns the 16-bit code of the extension. An undefined value, which
// can only be built by an explicit conversion, maps to 0xffff.
func (id ID) Code() uint16 {
	code, ok := extensionCodes[id]
	if !ok {
		return 0xffff
	}

	return code
}

// FromCode returns the extension with the given code. Codes outside the
// defined set fail with ErrUnknownCode.
func FromCode(code uint16) (ID, error) {
	id, ok := codeExtensions[code]
	if !ok {
		log.Debugf("Rejecting unknown extension code %d", code)

		return 0, ErrUnknownCode{code: code}
	}

	return id, nil
}

// String returns the name of the extension.
func (id ID) String() string {
	name, ok := extensionNames[id]
	if !ok {
		return fmt.Sprintf("unknown(%d)", uint8(id))
	}

	return name
}

// ParseID returns the extension with the given name, ignoring case.
func ParseID(name string) (ID, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for id, n := range extensionNames {
		if n == name {
			return id, nil
		}
	}

	return 0, codec.InvalidFormat("unknown extension name %q", name)
}

// EncodeWire writes the 2-byte big endian code.
func (id *ID) EncodeWire(w *bytes.Buffer) error {
	if !id.IsKnown() {
		return codec.DataIntegrity("extension %v has no code", *id)
	}

	return codec.WriteUint16(w, id.Code())
}

// DecodeWire reads a 2-byte big endian code.
func (id *ID) DecodeWire(r io.Reader) error {
	code, err := codec.ReadUint16(r, "extension code")
	if err != nil {
		return err
	}

	decoded, err := FromCode(code)
	if err != nil {
		return err
	}
	*id = decoded

	return nil
}

// EncodeStructural writes the 1-byte discriminant.
func (id *ID) EncodeStructural(w *bytes.Buffer) error {
	if !id.IsKnown() {
		return codec.DataIntegrity("extension %v has no discriminant",
			*id)
	}

	return codec.WriteUint8(w, uint8(*id))
}

// DecodeStructural reads a 1-byte discriminant.
func (id *ID) DecodeStructural(r io.Reader) error {
	b, err := codec.ReadUint8(r, "extension discriminant")
	if err != nil {
		return err
	}

	decoded := ID(b)
	if !decoded.IsKnown() {
		return codec.InvalidFormat("extension discriminant %d", b)
	}
	*id = decoded

	return nil
}

// Record returns a TLV record of the given type carrying the 2-byte code of
// the extension.
func (id *ID) Record(typ tlv.Type) tlv.Record {
	return tlv.MakeStaticRecord(typ, id, 2, eID, dID)
}

func eID(w io.Writer, val interface{}, buf *[8]byte) error {
	if v, ok := val.(*ID); ok {
		if !v.IsKnown() {
			return codec.DataIntegrity("extension %v has no code", *v)
		}

		return tlv.EUint16T(w, v.Code(), buf)
	}

	return tlv.NewTypeForEncodingErr(val, "extension.ID")
}

func dID(r io.Reader, val interface{}, buf *[8]byte, l uint64) error {
	if v, ok := val.(*ID); ok && l == 2 {
		var code uint16
		if err := tlv.DUint16(r, &code, buf, 2); err != nil {
			return err
		}

		id, err := FromCode(code)
		if err != nil {
			return err
		}
		*v = id

		return nil
	}

	return tlv.NewTypeForDecodingErr(val, "extension.ID", l, 2)
}
