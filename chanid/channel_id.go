package chanid

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/lnd/tlv"
	"github.com/lnpbp/lnpcore/codec"
)

const (
	// MaxFundingTxOutputs is the maximum number of allowed outputs on a
	// funding transaction within the protocol. This is due to the fact
	// that we use 2-bytes to encode the index within the funding output
	// during the funding workflow. Funding transaction with more outputs
	// than this are considered invalid within the protocol.
	MaxFundingTxOutputs = math.MaxUint16

	// ChannelIDLen is the length of a channel ID in both dialects.
	ChannelIDLen = 32
)

// ChannelID is a series of 32-bytes that uniquely identifies all channels
// within the network. The ChannelID is computed using the outpoint of the
// funding transaction (the txid, and output index). Given a funding output the
// ChannelID can be calculated by XOR'ing the big-endian serialization of the
// txid and the big-endian serialization of the output index, truncated to
// 2 bytes.
type ChannelID [ChannelIDLen]byte

// WildcardChannelID is the all-zero ChannelID. Messages that carry it apply
// to all open channels with the peer. It is never the result of a derivation
// and callers must test for it with IsWildcard.
var WildcardChannelID = ChannelID{}

// A compile time check to ensure ChannelID implements both codec dialects.
var (
	_ codec.StructuralCodec = (*ChannelID)(nil)
	_ codec.WireCodec       = (*ChannelID)(nil)
)

// NewChannelID derives the ChannelID of the funding output identified by the
// txid and outputIndex. We XOR the lower 2-bytes of the txid with the
// big-endian serialization of the output index.
func NewChannelID(txid chainhash.Hash, outputIndex uint16) ChannelID {
	// First we'll copy the txid into our channel ID slice.
	var cid ChannelID
	copy(cid[:], txid[:])

	// With the txid copied over, we'll now XOR the lower 2-bytes of the
	// partial channelID with big-endian serialization of output index.
	xorTxid(&cid, outputIndex)

	return cid
}

// NewChanIDFromOutPoint converts a target OutPoint into a ChannelID that is
// usable within the network. An outpoint whose index doesn't fit in 2 bytes
// can't be a funding output and is rejected.
func NewChanIDFromOutPoint(op wire.OutPoint) (ChannelID, error) {
	if op.Index > MaxFundingTxOutputs {
		return ChannelID{}, fmt.Errorf("%w: index for outpoint (%v) "+
			"is greater than max index of %v",
			codec.ErrValueOutOfRange, op.Index, MaxFundingTxOutputs)
	}

	return NewChannelID(op.Hash, uint16(op.Index)), nil
}

// NewChannelIDFromHex parses the hex form of a ChannelID. Both lowercase and
// uppercase digits are accepted.
func NewChannelIDFromHex(s string) (ChannelID, error) {
	b, err := codec.DecodeHex32(s)
	if err != nil {
		return ChannelID{}, fmt.Errorf("invalid channel id: %w", err)
	}

	return ChannelID(b), nil
}

// xorTxid performs the transformation needed to transform an OutPoint into a
// ChannelID. To do this, we expect the cid parameter to contain the txid
// unaltered and the outputIndex to be the output index.
func xorTxid(cid *ChannelID, outputIndex uint16) {
	cid[30] ^= byte(outputIndex >> 8)
	cid[31] ^= byte(outputIndex)
}

// IsWildcard returns true if the ChannelID is the all-zero value which is
// applicable to all open channels.
func (c ChannelID) IsWildcard() bool {
	return c == WildcardChannelID
}

// PossibleOutPoint reverses the derivation for a candidate output index,
// returning the outpoint that would have produced this ChannelID.
func (c ChannelID) PossibleOutPoint(outputIndex uint16) wire.OutPoint {
	cidCopy := c
	xorTxid(&cidCopy, outputIndex)

	return wire.OutPoint{
		Hash:  chainhash.Hash(cidCopy),
		Index: uint32(outputIndex),
	}
}

// IsChanPoint returns true if the OutPoint passed corresponds to the target
// ChannelID.
func (c ChannelID) IsChanPoint(op wire.OutPoint) bool {
	candidateCid, err := NewChanIDFromOutPoint(op)
	if err != nil {
		return false
	}

	return candidateCid == c
}

// TempChannelID reinterprets the bytes of the ChannelID as a TempChannelID.
func (c ChannelID) TempChannelID() TempChannelID {
	return TempChannelID(c)
}

// String returns the string representation of the ChannelID. This is just the
// hex string encoding of the ChannelID itself.
func (c ChannelID) String() string {
	return fmt.Sprintf("%x", c[:])
}

// Format implements fmt.Formatter, printing lowercase hex for %s, %v and %x
// and uppercase hex for %X.
func (c ChannelID) Format(f fmt.State, verb rune) {
	codec.FormatHex(f, verb, c[:])
}

// EncodeStructural writes the 32 raw bytes of the ChannelID.
func (c *ChannelID) EncodeStructural(w *bytes.Buffer) error {
	return codec.WriteBytes(w, c[:])
}

// DecodeStructural reads 32 raw bytes into the ChannelID.
func (c *ChannelID) DecodeStructural(r io.Reader) error {
	return codec.ReadFull(r, c[:], "channel id")
}

// EncodeWire writes the 32 raw bytes of the ChannelID.
func (c *ChannelID) EncodeWire(w *bytes.Buffer) error {
	return codec.WriteBytes(w, c[:])
}

// DecodeWire reads 32 raw bytes into the ChannelID.
func (c *ChannelID) DecodeWire(r io.Reader) error {
	return codec.ReadFull(r, c[:], "channel id")
}

// Record returns a TLV record of the given type that encodes or decodes the
// ChannelID.
func (c *ChannelID) Record(typ tlv.Type) tlv.Record {
	return tlv.MakePrimitiveRecord(typ, (*[ChannelIDLen]byte)(c))
}
