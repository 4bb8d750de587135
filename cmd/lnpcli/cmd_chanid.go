package main

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/lnpbp/lnpcore/chanid"
	"github.com/lnpbp/lnpcore/codec"
	"github.com/urfave/cli"
)

type channelIDResp struct {
	ChannelID    string `json:"channel_id"`
	FundingTxid  string `json:"funding_txid,omitempty"`
	OutputIndex  uint16 `json:"output_index"`
	IsWildcard   bool   `json:"is_wildcard"`
	WireEncoding string `json:"wire_encoding"`
}

var deriveChanIDCommand = cli.Command{
	Name:      "derivechanid",
	Category:  "Channel identity",
	Usage:     "Derive the channel id of a funding outpoint.",
	ArgsUsage: "[txid:index]",
	Description: `
	Derive the 32-byte channel id of a funding output by XOR-ing the big
	endian output index into the last two bytes of the funding txid.

	The outpoint can be given either as a positional txid:index argument or
	with the --txid and --index flags.`,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "txid",
			Usage: "the funding transaction id",
		},
		cli.UintFlag{
			Name:  "index",
			Usage: "the index of the funding output",
		},
	},
	Action: deriveChanID,
}

func deriveChanID(ctx *cli.Context) error {
	var op *wire.OutPoint

	switch {
	case ctx.NArg() > 0:
		var err error
		op, err = wire.NewOutPointFromString(ctx.Args().First())
		if err != nil {
			return fmt.Errorf("unable to parse outpoint: %w", err)
		}

	case ctx.IsSet("txid"):
		txid, err := chainhash.NewHashFromStr(ctx.String("txid"))
		if err != nil {
			return fmt.Errorf("unable to parse txid: %w", err)
		}
		op = wire.NewOutPoint(txid, uint32(ctx.Uint("index")))

	default:
		return cli.ShowCommandHelp(ctx, "derivechanid")
	}

	cid, err := chanid.NewChanIDFromOutPoint(*op)
	if err != nil {
		return err
	}

	wireBytes, err := codec.SerializeWire(&cid)
	if err != nil {
		return err
	}

	return printJSON(ctx, &channelIDResp{
		ChannelID:    cid.String(),
		FundingTxid:  op.Hash.String(),
		OutputIndex:  uint16(op.Index),
		IsWildcard:   cid.IsWildcard(),
		WireEncoding: hex.EncodeToString(wireBytes),
	})
}

type tempChanIDResp struct {
	TempChannelID string `json:"temp_channel_id"`
}

var tempChanIDCommand = cli.Command{
	Name:     "tempchanid",
	Category: "Channel identity",
	Usage:    "Generate a random temporary channel id.",
	Flags: []cli.Flag{
		cli.UintFlag{
			Name:  "count",
			Usage: "the number of ids to generate",
			Value: 1,
		},
	},
	Action: tempChanID,
}

func tempChanID(ctx *cli.Context) error {
	count := ctx.Uint("count")
	resp := make([]tempChanIDResp, 0, count)
	for i := uint(0); i < count; i++ {
		id, err := chanid.RandomTempChannelID()
		if err != nil {
			return err
		}
		resp = append(resp, tempChanIDResp{TempChannelID: id.String()})
	}

	return printJSON(ctx, resp)
}

type scidResp struct {
	ShortChannelID string `json:"short_channel_id"`
	ChanID         uint64 `json:"chan_id"`
	BlockHeight    uint32 `json:"block_height"`
	TxIndex        uint32 `json:"tx_index"`
	OutputIndex    uint16 `json:"output_index"`
	WireEncoding   string `json:"wire_encoding"`
}

func newScidResp(scid chanid.ShortChannelID) (*scidResp, error) {
	wireBytes, err := codec.SerializeWire(&scid)
	if err != nil {
		return nil, err
	}

	return &scidResp{
		ShortChannelID: scid.String(),
		ChanID:         scid.ToUint64(),
		BlockHeight:    scid.BlockHeight(),
		TxIndex:        scid.TxIndex(),
		OutputIndex:    scid.OutputIndex(),
		WireEncoding:   hex.EncodeToString(wireBytes),
	}, nil
}

var packScidCommand = cli.Command{
	Name:     "packscid",
	Category: "Channel identity",
	Usage:    "Pack a block height, tx index and output index into a scid.",
	Flags: []cli.Flag{
		cli.Uint64Flag{
			Name:  "height",
			Usage: "the height of the block holding the funding tx",
		},
		cli.Uint64Flag{
			Name:  "txindex",
			Usage: "the index of the funding tx within its block",
		},
		cli.UintFlag{
			Name:  "output",
			Usage: "the index of the funding output",
		},
	},
	Action: packScid,
}

func packScid(ctx *cli.Context) error {
	if !ctx.IsSet("height") || !ctx.IsSet("txindex") {
		return cli.ShowCommandHelp(ctx, "packscid")
	}

	height, txIndex := ctx.Uint64("height"), ctx.Uint64("txindex")
	output := ctx.Uint("output")
	if height > codec.MaxUint24 || txIndex > codec.MaxUint24 ||
		output > 0xffff {

		return fmt.Errorf("%w: height and tx index must fit in 24 "+
			"bits, output in 16 bits", codec.ErrValueOutOfRange)
	}

	scid, err := chanid.NewShortChannelID(
		uint32(height), uint32(txIndex), uint16(output),
	).UnwrapOrErr(codec.ErrValueOutOfRange)
	if err != nil {
		return err
	}

	resp, err := newScidResp(scid)
	if err != nil {
		return err
	}

	return printJSON(ctx, resp)
}

var decodeScidCommand = cli.Command{
	Name:      "decodescid",
	Category:  "Channel identity",
	Usage:     "Decode a short channel id.",
	ArgsUsage: "scid",
	Description: `
	Decode a short channel id given in HxTxO or H:T:O form, as its compact
	integer form, or as the 16 character hex of its wire encoding.`,
	Action: decodeScid,
}

func decodeScid(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "decodescid")
	}

	scid, err := parseScidArg(ctx.Args().First())
	if err != nil {
		return err
	}

	resp, err := newScidResp(scid)
	if err != nil {
		return err
	}

	return printJSON(ctx, resp)
}

// parseScidArg accepts the display, compact integer and wire hex forms of a
// short channel id.
func parseScidArg(arg string) (chanid.ShortChannelID, error) {
	if scid, err := chanid.ParseShortChannelID(arg); err == nil {
		return scid, nil
	}

	if len(arg) == hex.EncodedLen(chanid.ShortChannelIDLen) {
		raw, err := hex.DecodeString(arg)
		if err == nil {
			var scid chanid.ShortChannelID
			err := codec.DeserializeWire(raw, &scid)

			return scid, err
		}
	}

	n, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return chanid.ShortChannelID{}, fmt.Errorf("%w: %q is not a "+
			"short channel id", codec.ErrInvalidFormat, arg)
	}

	return chanid.NewShortChanIDFromInt(n), nil
}
