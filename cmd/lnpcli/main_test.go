package main

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/lnpbp/lnpcore/codec"
	"github.com/stretchr/testify/require"
)

// runApp runs the application with args and returns what it printed. Each
// run replaces the package loggers, so these tests don't run in parallel.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := newApp(&out, io.Discard)
	err := app.Run(append([]string{"lnpcli"}, args...))

	return out.String(), err
}

// decodeResp runs the application and unmarshals its JSON output.
func decodeResp(t *testing.T, v interface{}, args ...string) {
	t.Helper()

	out, err := runApp(t, args...)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), v), out)
}

func TestDeriveChanID(t *testing.T) {
	const txid = "0102030405060708090a0b0c0d0e0f10" +
		"1112131415161718191a1b1c1d1e1f20"

	var resp channelIDResp
	decodeResp(t, &resp, "derivechanid", txid+":2")
	require.Equal(t, txid, resp.FundingTxid)
	require.Equal(t, uint16(2), resp.OutputIndex)
	require.False(t, resp.IsWildcard)
	require.Len(t, resp.ChannelID, 64)
	require.Equal(t, resp.ChannelID, resp.WireEncoding)

	var flagResp channelIDResp
	decodeResp(
		t, &flagResp, "derivechanid", "--txid", txid, "--index", "2",
	)
	require.Equal(t, resp, flagResp)

	_, err := runApp(t, "derivechanid", txid+":70000")
	require.ErrorIs(t, err, codec.ErrValueOutOfRange)
}

func TestTempChanID(t *testing.T) {
	var resp []tempChanIDResp
	decodeResp(t, &resp, "tempchanid", "--count", "3")
	require.Len(t, resp, 3)
	require.NotEqual(t, resp[0], resp[1])
}

func TestPackAndDecodeScid(t *testing.T) {
	var packed scidResp
	decodeResp(t, &packed, "packscid", "--height", "2304934",
		"--txindex", "2345", "--output", "5")
	require.Equal(t, "2304934x2345x5", packed.ShortChannelID)
	require.Equal(t, "232ba60009290005", packed.WireEncoding)

	for _, arg := range []string{
		"2304934x2345x5", "2304934:2345:5", "232ba60009290005",
	} {
		var decoded scidResp
		decodeResp(t, &decoded, "decodescid", arg)
		require.Equal(t, packed, decoded, arg)
	}

	_, err := runApp(t, "packscid", "--height", "16777216",
		"--txindex", "0")
	require.ErrorIs(t, err, codec.ErrValueOutOfRange)

	_, err = runApp(t, "decodescid", "nope")
	require.ErrorIs(t, err, codec.ErrInvalidFormat)
}

func TestAddrCommands(t *testing.T) {
	var encoded addrResp
	decodeResp(t, &encoded, "encodeaddr", "255.254.253.252:9735")
	require.Equal(t, "ipv4", encoded.Type)
	require.Equal(t, "01fffefdfc2607", encoded.WireEncoding)
	require.Len(t, encoded.UniformEncoding, 2*37)

	var decoded addrResp
	decodeResp(t, &decoded, "decodeaddr", "01fffefdfc2607")
	require.Equal(t, encoded, decoded)

	_, err := runApp(t, "decodeaddr", "05fffefdfc2607")
	require.ErrorIs(t, err, codec.ErrInvalidFormat)

	_, err = runApp(t, "decodeaddr", "01fffefdfc260700")
	require.ErrorIs(t, err, codec.ErrTrailingData)

	const list = "000401fffefdfc260702fffefdfcfbfaf9f8f7f6f5f4f3f2f1f0" +
		"260703fffefdfcfbfaf9f8f7f6260704fffefdfcfbfaf9f8f7f6f5f4" +
		"f3f2f1f0efeeedecebeae9e8e7e6e5e4e3e2e1e00020102607"

	var addrs []addrResp
	decodeResp(t, &addrs, "decodeaddrs", list)
	require.Len(t, addrs, 4)
	require.Equal(t, []string{"ipv4", "ipv6", "torv2", "torv3"}, []string{
		addrs[0].Type, addrs[1].Type, addrs[2].Type, addrs[3].Type,
	})
	require.NotNil(t, addrs[3].OnionChecksumMatches)
	require.False(t, *addrs[3].OnionChecksumMatches)

	out, err := runApp(t, "--table", "decodeaddrs", list)
	require.NoError(t, err)
	require.Contains(t, out, "255.254.253.252:9735")
	require.Equal(t, 1, strings.Count(out, "torv3"))
}

func TestToUniform(t *testing.T) {
	var resp uniformResp
	decodeResp(t, &resp, "touniform", "255.254.253.252:9735")
	require.Equal(t, "ipv4", resp.Format)
	require.NotNil(t, resp.Port)
	require.Equal(t, uint16(9735), *resp.Port)
	require.Equal(t, "255.254.253.252:9735", resp.Back)

	var back uniformResp
	decodeResp(t, &back, "touniform", resp.Encoded)
	require.Equal(t, resp, back)
}

func TestExtensionCommand(t *testing.T) {
	var all []extensionResp
	decodeResp(t, &all, "extension")
	require.Len(t, all, 12)
	require.Equal(t, "channel", all[0].Name)
	require.Equal(t, "rgb", all[11].Name)

	var byName []extensionResp
	decodeResp(t, &byName, "extension", "taproot")
	require.Equal(t, []extensionResp{{"taproot", 3, "0003"}}, byName)

	var byCode []extensionResp
	decodeResp(t, &byCode, "extension", "0x0b")
	require.Equal(t, "rgb", byCode[0].Name)

	_, err := runApp(t, "extension", "12")
	require.ErrorIs(t, err, codec.ErrInvalidFormat)
}

func TestColorAndLifecycle(t *testing.T) {
	var c colorResp
	decodeResp(t, &c, "color", "#3399ff")
	require.Equal(t, colorResp{"#3399ff", 0x33, 0x99, 0xff, "3399ff"}, c)

	var fromWire colorResp
	decodeResp(t, &fromWire, "color", "3399ff")
	require.Equal(t, c, fromWire)

	var l lifecycleResp
	decodeResp(t, &l, "lifecycle", "0a0200000000000000")
	require.Equal(t, "Closing{round: 2}", l.State)
	require.False(t, l.IsFinal)

	_, err := runApp(t, "lifecycle", "0d")
	require.ErrorIs(t, err, codec.ErrInvalidFormat)
}

func TestDebugLevel(t *testing.T) {
	_, err := runApp(t, "--debuglevel", "debug,NADR=trace", "extension")
	require.NoError(t, err)

	_, err = runApp(t, "--debuglevel", "nope", "extension")
	require.Error(t, err)

	_, err = runApp(t, "--debuglevel", "XXXX=debug", "extension")
	require.Error(t, err)
}

func TestVersionFlag(t *testing.T) {
	out, err := runApp(t, "--version")
	require.NoError(t, err)
	require.Contains(t, out, "0.3.0-beta")
	require.Contains(t, out, "deployment=")
}
