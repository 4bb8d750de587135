package main

import (
	"encoding/hex"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/lnpbp/lnpcore/channel"
	"github.com/lnpbp/lnpcore/codec"
	"github.com/lnpbp/lnpcore/extension"
	"github.com/urfave/cli"
)

type extensionResp struct {
	Name string `json:"name"`
	Code uint16 `json:"code"`
	Wire string `json:"wire_encoding"`
}

var extensionCommand = cli.Command{
	Name:      "extension",
	Category:  "Vocabulary",
	Usage:     "Look up protocol extension codes.",
	ArgsUsage: "[name | code]",
	Description: `
	Without an argument every known protocol extension is listed with its
	numeric code. With a name or a numeric code only that extension is
	shown; unknown names and codes are an error.`,
	Action: extensionInfo,
}

func extensionInfo(ctx *cli.Context) error {
	ids := extension.All()

	if ctx.NArg() > 0 {
		arg := ctx.Args().First()

		var (
			id  extension.ID
			err error
		)
		if code, parseErr := strconv.ParseUint(arg, 0, 16); parseErr == nil {
			id, err = extension.FromCode(uint16(code))
		} else {
			id, err = extension.ParseID(arg)
		}
		if err != nil {
			return err
		}
		ids = []extension.ID{id}
	}

	resp := make([]extensionResp, 0, len(ids))
	for _, id := range ids {
		wireBytes, err := codec.SerializeWire(&id)
		if err != nil {
			return err
		}
		resp = append(resp, extensionResp{
			Name: id.String(),
			Code: id.Code(),
			Wire: hex.EncodeToString(wireBytes),
		})
	}

	if !ctx.GlobalBool("table") {
		return printJSON(ctx, resp)
	}

	t := table.NewWriter()
	t.SetOutputMirror(ctx.App.Writer)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Extension", "Code", "Wire"})
	for _, r := range resp {
		t.AppendRow(table.Row{r.Name, r.Code, r.Wire})
	}
	t.Render()

	return nil
}

type colorResp struct {
	Color string `json:"color"`
	Red   uint8  `json:"red"`
	Green uint8  `json:"green"`
	Blue  uint8  `json:"blue"`
	Wire  string `json:"wire_encoding"`
}

var colorCommand = cli.Command{
	Name:      "color",
	Category:  "Vocabulary",
	Usage:     "Convert a node color between #rrggbb and its encoding.",
	ArgsUsage: "#rrggbb | hex",
	Action:    nodeColor,
}

func nodeColor(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "color")
	}
	arg := ctx.Args().First()

	var c channel.NodeColor
	if len(arg) == 6 {
		raw, err := hex.DecodeString(arg)
		if err != nil {
			return codec.InvalidFormat("invalid color %q: %v", arg, err)
		}
		if err := codec.DeserializeWire(raw, &c); err != nil {
			return err
		}
	} else {
		var err error
		c, err = channel.ParseNodeColor(arg)
		if err != nil {
			return err
		}
	}

	wireBytes, err := codec.SerializeWire(&c)
	if err != nil {
		return err
	}

	rgba := c.RGBA()

	return printJSON(ctx, &colorResp{
		Color: c.String(),
		Red:   rgba.R,
		Green: rgba.G,
		Blue:  rgba.B,
		Wire:  hex.EncodeToString(wireBytes),
	})
}

type lifecycleResp struct {
	State      string `json:"state"`
	IsFinal    bool   `json:"is_final"`
	Structural string `json:"structural_encoding"`
}

var lifecycleCommand = cli.Command{
	Name:      "lifecycle",
	Category:  "Vocabulary",
	Usage:     "Decode the structural encoding of a channel lifecycle.",
	ArgsUsage: "hex",
	Action:    lifecycle,
}

func lifecycle(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "lifecycle")
	}

	raw, err := hex.DecodeString(ctx.Args().First())
	if err != nil {
		return codec.InvalidFormat("invalid hex: %v", err)
	}

	var l channel.Lifecycle
	if err := codec.DeserializeStructural(raw, &l); err != nil {
		return err
	}

	return printJSON(ctx, &lifecycleResp{
		State:      l.String(),
		IsFinal:    l.IsFinal(),
		Structural: hex.EncodeToString(raw),
	})
}
