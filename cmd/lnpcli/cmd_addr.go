package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/lnpbp/lnpcore/codec"
	"github.com/lnpbp/lnpcore/netaddr"
	"github.com/urfave/cli"
)

type addrResp struct {
	Type                 string `json:"type"`
	Address              string `json:"address"`
	WireEncoding         string `json:"wire_encoding,omitempty"`
	StructuralEncoding   string `json:"structural_encoding"`
	UniformEncoding      string `json:"uniform_encoding"`
	OnionChecksumMatches *bool  `json:"onion_checksum_matches,omitempty"`
}

func newAddrResp(addr netaddr.AnnouncedNodeAddr) (*addrResp, error) {
	resp := &addrResp{
		Type:    addr.AddrType().String(),
		Address: addr.String(),
	}

	// An onion v3 address decoded from its uniform form has no checksum,
	// in which case there is no wire encoding to show.
	wireBytes, err := codec.SerializeWire(addr)
	switch {
	case err == nil:
		resp.WireEncoding = hex.EncodeToString(wireBytes)

	case !errors.Is(err, codec.ErrDataIntegrity):
		return nil, err
	}

	structBytes, err := codec.SerializeStructural(addr)
	if err != nil {
		return nil, err
	}
	resp.StructuralEncoding = hex.EncodeToString(structBytes)

	uniform := netaddr.ToUniform(addr)
	uniformBytes, err := codec.SerializeStructural(&uniform)
	if err != nil {
		return nil, err
	}
	resp.UniformEncoding = hex.EncodeToString(uniformBytes)

	if v3, ok := addr.(netaddr.OnionV3Addr); ok {
		valid := v3.ValidChecksum()
		resp.OnionChecksumMatches = &valid
	}

	return resp, nil
}

var encodeAddrCommand = cli.Command{
	Name:      "encodeaddr",
	Category:  "Node addresses",
	Usage:     "Encode a host:port node address.",
	ArgsUsage: "host:port",
	Description: `
	Encode an IPv4, IPv6 or onion host:port address in its BOLT7 wire form,
	its structural form and its uniform form.`,
	Action: encodeAddr,
}

func encodeAddr(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "encodeaddr")
	}

	addr, err := netaddr.ParseAddr(ctx.Args().First())
	if err != nil {
		return err
	}

	resp, err := newAddrResp(addr)
	if err != nil {
		return err
	}

	return printJSON(ctx, resp)
}

var decodeAddrCommand = cli.Command{
	Name:      "decodeaddr",
	Category:  "Node addresses",
	Usage:     "Decode a single BOLT7 wire encoded address.",
	ArgsUsage: "hex",
	Action:    decodeAddr,
}

func decodeAddr(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "decodeaddr")
	}

	raw, err := hex.DecodeString(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("unable to decode hex: %w", err)
	}

	r := bytes.NewReader(raw)
	addr, err := netaddr.ReadAddr(r)
	if err != nil {
		return err
	}
	if r.Len() != 0 {
		return fmt.Errorf("%w: %d bytes", codec.ErrTrailingData, r.Len())
	}

	resp, err := newAddrResp(addr)
	if err != nil {
		return err
	}

	return printJSON(ctx, resp)
}

var decodeAddrsCommand = cli.Command{
	Name:      "decodeaddrs",
	Category:  "Node addresses",
	Usage:     "Decode a count prefixed list of BOLT7 addresses.",
	ArgsUsage: "hex",
	Description: `
	Decode the address list of a node_announcement: a 2-byte big endian
	count followed by that many wire encoded addresses. With the global
	--table flag the result is rendered as a table.`,
	Action: decodeAddrs,
}

func decodeAddrs(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "decodeaddrs")
	}

	raw, err := hex.DecodeString(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("unable to decode hex: %w", err)
	}

	var list netaddr.AddressList
	if err := codec.DeserializeWire(raw, &list); err != nil {
		return err
	}

	resp := make([]*addrResp, 0, len(list))
	for _, addr := range list {
		r, err := newAddrResp(addr)
		if err != nil {
			return err
		}
		resp = append(resp, r)
	}

	if !ctx.GlobalBool("table") {
		return printJSON(ctx, resp)
	}

	t := table.NewWriter()
	t.SetOutputMirror(ctx.App.Writer)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Type", "Address", "Wire"})
	for i, r := range resp {
		t.AppendRow(table.Row{i, r.Type, r.Address, r.WireEncoding})
	}
	t.Render()

	return nil
}

type uniformResp struct {
	Format  string  `json:"format"`
	Addr    string  `json:"addr"`
	Port    *uint16 `json:"port,omitempty"`
	Encoded string  `json:"encoded"`
	Back    string  `json:"round_trip"`
}

var toUniformCommand = cli.Command{
	Name:      "touniform",
	Category:  "Node addresses",
	Usage:     "Show the uniform form of an address.",
	ArgsUsage: "host:port | uniform-hex",
	Description: `
	Convert a host:port address to its fixed width uniform form, or decode
	the 74 character hex of a uniform address back to an address. Onion v3
	addresses lose their checksum and version in the uniform form.`,
	Action: toUniform,
}

func toUniform(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "touniform")
	}
	arg := ctx.Args().First()

	var uniform netaddr.UniformAddr
	if len(arg) == hex.EncodedLen(netaddr.UniformAddrLen) &&
		!strings.Contains(arg, ":") {

		raw, err := hex.DecodeString(arg)
		if err != nil {
			return fmt.Errorf("unable to decode hex: %w", err)
		}
		if err := codec.DeserializeStructural(raw, &uniform); err != nil {
			return err
		}
	} else {
		addr, err := netaddr.ParseAddr(arg)
		if err != nil {
			return err
		}
		uniform = netaddr.ToUniform(addr)
	}

	encoded, err := codec.SerializeStructural(&uniform)
	if err != nil {
		return err
	}

	resp := &uniformResp{
		Format:  uniform.Format.String(),
		Addr:    hex.EncodeToString(uniform.Addr[:]),
		Encoded: hex.EncodeToString(encoded),
	}
	uniform.Port.WhenSome(func(p uint16) {
		resp.Port = &p
	})

	back, err := netaddr.FromUniform(uniform)
	if err != nil {
		resp.Back = err.Error()
	} else {
		resp.Back = back.String()
	}

	return printJSON(ctx, resp)
}
