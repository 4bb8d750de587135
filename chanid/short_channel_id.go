package chanid

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/lightningnetwork/lnd/tlv"
	"github.com/lnpbp/lnpcore/codec"
)

// ShortChannelIDLen is the length of an encoded ShortChannelID: 3 bytes for
// the block height, 3 bytes for the transaction index and 2 bytes for the
// output index.
const ShortChannelIDLen = 8

// ShortChannelID locates the funding output of a channel on chain as per
// BOLT7. The fields are private so that a value can only be obtained through
// NewShortChannelID or a decoder, both of which keep the heights and indexes
// in their 24-bit domain.
type ShortChannelID struct {
	// blockHeight is the height of the block where funding transaction
	// located.
	blockHeight uint32

	// txIndex is a position of funding transaction within a block.
	txIndex uint32

	// outputIndex indicating transaction output which pays to the channel.
	outputIndex uint16
}

// A compile time check to ensure ShortChannelID implements both codec
// dialects.
var (
	_ codec.StructuralCodec = (*ShortChannelID)(nil)
	_ codec.WireCodec       = (*ShortChannelID)(nil)
)

// NewShortChannelID packs the given locator. None is returned if the block
// height or the transaction index doesn't fit in 3 bytes; such a locator is
// invalid and must be rejected by the caller.
func NewShortChannelID(blockHeight, txIndex uint32,
	outputIndex uint16) fn.Option[ShortChannelID] {

	if blockHeight > codec.MaxUint24 || txIndex > codec.MaxUint24 {
		log.Debugf("Rejecting short channel id %dx%dx%d: field "+
			"exceeds 3 bytes", blockHeight, txIndex, outputIndex)

		return fn.None[ShortChannelID]()
	}

	return fn.Some(ShortChannelID{
		blockHeight: blockHeight,
		txIndex:     txIndex,
		outputIndex: outputIndex,
	})
}

// NewShortChanIDFromInt returns a new ShortChannelID which is the decoded
// version of the compact channel ID encoded within the uint64. The format of
// the compact channel ID is as follows: 3 bytes for the block height, 3 bytes
// for the transaction index, and 2 bytes for the output index.
func NewShortChanIDFromInt(chanID uint64) ShortChannelID {
	return ShortChannelID{
		blockHeight: uint32(chanID >> 40),
		txIndex:     uint32(chanID>>16) & codec.MaxUint24,
		outputIndex: uint16(chanID),
	}
}

// ParseShortChannelID parses the human-readable forms "HxTxO" and "H:T:O".
func ParseShortChannelID(s string) (ShortChannelID, error) {
	sep := "x"
	if strings.Contains(s, ":") {
		sep = ":"
	}

	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return ShortChannelID{}, codec.InvalidFormat("short channel "+
			"id %q must have 3 components", s)
	}

	height, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return ShortChannelID{}, codec.InvalidFormat("block height "+
			"%q: %v", parts[0], err)
	}
	txIndex, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return ShortChannelID{}, codec.InvalidFormat("tx index %q: %v",
			parts[1], err)
	}
	outputIndex, err := strconv.ParseUint(parts[2], 10, 16)
	if err != nil {
		return ShortChannelID{}, codec.InvalidFormat("output index "+
			"%q: %v", parts[2], err)
	}

	return NewShortChannelID(
		uint32(height), uint32(txIndex), uint16(outputIndex),
	).UnwrapOrErr(codec.InvalidFormat("short channel id %q out of "+
		"range", s))
}

// BlockHeight is the height of the block containing the funding transaction.
func (c ShortChannelID) BlockHeight() uint32 {
	return c.blockHeight
}

// TxIndex is the position of the funding transaction within its block.
func (c ShortChannelID) TxIndex() uint32 {
	return c.txIndex
}

// OutputIndex is the index of the funding output within the transaction.
func (c ShortChannelID) OutputIndex() uint16 {
	return c.outputIndex
}

// ToUint64 converts the ShortChannelID into a compact format encoded within a
// uint64 (8 bytes).
func (c ShortChannelID) ToUint64() uint64 {
	return (uint64(c.blockHeight) << 40) | (uint64(c.txIndex) << 16) |
		uint64(c.outputIndex)
}

// IsDefault returns true if the ShortChannelID represents the zero value for
// its type.
func (c ShortChannelID) IsDefault() bool {
	return c == ShortChannelID{}
}

// String generates a human-readable representation of the channel ID with
// 'x' as a separator.
func (c ShortChannelID) String() string {
	return fmt.Sprintf("%dx%dx%d", c.blockHeight, c.txIndex, c.outputIndex)
}

// EncodeWire writes the ShortChannelID as required by BOLT7: the block height
// and the tx index each using 3 bytes, and the output index using 2 bytes, all
// big endian.
func (c *ShortChannelID) EncodeWire(w *bytes.Buffer) error {
	if err := codec.WriteUint24(w, c.blockHeight); err != nil {
		return fmt.Errorf("block height: %w", err)
	}
	if err := codec.WriteUint24(w, c.txIndex); err != nil {
		return fmt.Errorf("tx index: %w", err)
	}

	return codec.WriteUint16(w, c.outputIndex)
}

// DecodeWire reads a BOLT7 encoded ShortChannelID.
func (c *ShortChannelID) DecodeWire(r io.Reader) error {
	blockHeight, err := codec.ReadUint24(r, "block height")
	if err != nil {
		return err
	}
	txIndex, err := codec.ReadUint24(r, "tx index")
	if err != nil {
		return err
	}
	outputIndex, err := codec.ReadUint16(r, "output index")
	if err != nil {
		return err
	}

	*c = ShortChannelID{
		blockHeight: blockHeight,
		txIndex:     txIndex,
		outputIndex: outputIndex,
	}

	return nil
}

// EncodeStructural writes the ShortChannelID using the same packed 8-byte
// layout as the wire dialect.
func (c *ShortChannelID) EncodeStructural(w *bytes.Buffer) error {
	return c.EncodeWire(w)
}

// DecodeStructural reads the packed 8-byte layout.
func (c *ShortChannelID) DecodeStructural(r io.Reader) error {
	return c.DecodeWire(r)
}

// Record returns a TLV record of the given type that can be used to
// encode/decode a ShortChannelID to/from a TLV stream.
func (c *ShortChannelID) Record(typ tlv.Type) tlv.Record {
	return tlv.MakeStaticRecord(
		typ, c, ShortChannelIDLen, EShortChannelID, DShortChannelID,
	)
}

// EShortChannelID is an encoder for ShortChannelID. It is exported so other
// packages can use the encoding scheme.
func EShortChannelID(w io.Writer, val interface{}, buf *[8]byte) error {
	if v, ok := val.(*ShortChannelID); ok {
		return tlv.EUint64T(w, v.ToUint64(), buf)
	}

	return tlv.NewTypeForEncodingErr(val, "chanid.ShortChannelID")
}

// DShortChannelID is a decoder for ShortChannelID. It is exported so other
// packages can use the decoding scheme.
func DShortChannelID(r io.Reader, val interface{}, buf *[8]byte,
	l uint64) error {

	if v, ok := val.(*ShortChannelID); ok && l == ShortChannelIDLen {
		var scid uint64
		err := tlv.DUint64(r, &scid, buf, ShortChannelIDLen)
		if err != nil {
			return err
		}

		*v = NewShortChanIDFromInt(scid)

		return nil
	}

	return tlv.NewTypeForDecodingErr(
		val, "chanid.ShortChannelID", l, ShortChannelIDLen,
	)
}
