package channel

import (
	"bytes"
	"fmt"
	"io"

	"github.com/lnpbp/lnpcore/codec"
)

// TxType tags the role of a transaction spending a channel output. Values
// other than the two well-known ones are carried unchanged.
type TxType uint16

const (
	// TxTypeHtlcSuccess is the HTLC-success second level transaction.
	TxTypeHtlcSuccess TxType = 0x0000

	// TxTypeHtlcTimeout is the HTLC-timeout second level transaction.
	TxTypeHtlcTimeout TxType = 0x0001
)

// A compile time check to ensure TxType implements both dialects.
var (
	_ codec.WireCodec       = (*TxType)(nil)
	_ codec.StructuralCodec = (*TxType)(nil)
)

// IsKnown returns true for the well-known transaction types.
func (t TxType) IsKnown() bool {
	return t == TxTypeHtlcSuccess || t == TxTypeHtlcTimeout
}

// String returns the name of the type, or Unknown with its numeric tag.
func (t TxType) String() string {
	switch t {
	case TxTypeHtlcSuccess:
		return "HtlcSuccess"
	case TxTypeHtlcTimeout:
		return "HtlcTimeout"
	default:
		return fmt.Sprintf("Unknown(%d)", uint16(t))
	}
}

// EncodeWire writes the 2-byte big endian tag.
func (t *TxType) EncodeWire(w *bytes.Buffer) error {
	return codec.WriteUint16(w, uint16(*t))
}

// DecodeWire reads a 2-byte big endian tag. Every value is accepted.
func (t *TxType) DecodeWire(r io.Reader) error {
	v, err := codec.ReadUint16(r, "tx type")
	if err != nil {
		return err
	}
	*t = TxType(v)

	return nil
}

// EncodeStructural writes the 2-byte little endian tag.
func (t *TxType) EncodeStructural(w *bytes.Buffer) error {
	return codec.WriteUint16LE(w, uint16(*t))
}

// DecodeStructural reads a 2-byte little endian tag.
func (t *TxType) DecodeStructural(r io.Reader) error {
	v, err := codec.ReadUint16LE(r, "tx type")
	if err != nil {
		return err
	}
	*t = TxType(v)

	return nil
}
