package channel

import (
	"bytes"
	"io"
	"slices"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lnpbp/lnpcore/codec"
)

// AssetID identifies an asset carried by a channel.
type AssetID = chainhash.Hash

// AssetsBalance maps each asset to the amount held of it.
type AssetsBalance map[AssetID]uint64

// A compile time check to ensure AssetsBalance implements the structural
// dialect.
var _ codec.StructuralCodec = (*AssetsBalance)(nil)

// entryLen is the encoded size of one asset/amount pair.
const entryLen = chainhash.HashSize + 8

// SortedAssets returns the asset ids of the balance in ascending byte order.
func (b AssetsBalance) SortedAssets() []AssetID {
	ids := make([]AssetID, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(x, y AssetID) int {
		return bytes.Compare(x[:], y[:])
	})

	return ids
}

// EncodeStructural writes a 2-byte little endian count followed by each
// 32-byte asset id and 8-byte little endian amount, sorted by asset id.
func (b *AssetsBalance) EncodeStructural(w *bytes.Buffer) error {
	if err := codec.WriteCountLE(w, len(*b)); err != nil {
		return err
	}

	for _, id := range b.SortedAssets() {
		if err := codec.WriteBytes(w, id[:]); err != nil {
			return err
		}
		if err := codec.WriteUint64LE(w, (*b)[id]); err != nil {
			return err
		}
	}

	return nil
}

// DecodeStructural reads a balance written by EncodeStructural. Entries that
// are not in strictly ascending asset order are rejected, so every balance
// has exactly one encoding.
func (b *AssetsBalance) DecodeStructural(r io.Reader) error {
	count, err := codec.ReadUint16LE(r, "asset count")
	if err != nil {
		return err
	}

	balance := make(AssetsBalance, min(int(count), 1024/entryLen))

	var prev *AssetID
	for i := 0; i < int(count); i++ {
		var id AssetID
		if err := codec.ReadFull(r, id[:], "asset id"); err != nil {
			return err
		}

		if prev != nil && bytes.Compare(prev[:], id[:]) >= 0 {
			log.Debugf("Asset %v out of order after %v", id, prev)

			return codec.InvalidFormat("asset ids not strictly " +
				"ascending")
		}

		amount, err := codec.ReadUint64LE(r, "asset amount")
		if err != nil {
			return err
		}

		balance[id] = amount
		prev = &id
	}

	*b = balance

	return nil
}
