package netaddr

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/lnpbp/lnpcore/codec"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const testListHex = "0004" +
	"01fffefdfc2607" +
	"02fffefdfcfbfaf9f8f7f6f5f4f3f2f1f02607" +
	"03fffefdfcfbfaf9f8f7f62607" +
	"04fffefdfcfbfaf9f8f7f6f5f4f3f2f1f0efeeedecebeae9e8e7e6e5e4e3e2e1e0" +
	"0020102607"

// TestAddressListWireVector checks the four-address list byte for byte.
func TestAddressListWireVector(t *testing.T) {
	t.Parallel()

	list := AddressList{testIPv4, testIPv6, testOnionV2, testOnionV3}

	raw, err := codec.SerializeWire(&list)
	require.NoError(t, err)
	require.Equal(t, testListHex, hex.EncodeToString(raw))

	var decoded AddressList
	require.NoError(t, codec.DeserializeWire(raw, &decoded))
	require.Equal(t, list, decoded)
}

// TestAddressListEmpty checks the empty list in both dialects.
func TestAddressListEmpty(t *testing.T) {
	t.Parallel()

	var list AddressList

	raw, err := codec.SerializeWire(&list)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0}, raw)

	raw, err = codec.SerializeStructural(&list)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0}, raw)

	var decoded AddressList
	require.NoError(t, codec.DeserializeStructural(raw, &decoded))
	require.Empty(t, decoded)
}

// TestAddressListTruncated checks a count larger than the payload fails
// with ErrInsufficientData in both dialects.
func TestAddressListTruncated(t *testing.T) {
	t.Parallel()

	var decoded AddressList
	err := codec.DeserializeWire([]byte{0x00, 0x02, 0x01, 1, 2, 3, 4, 0x26,
		0x07}, &decoded)
	require.ErrorIs(t, err, codec.ErrInsufficientData)

	err = codec.DeserializeWire([]byte{0xff, 0xff}, &decoded)
	require.ErrorIs(t, err, codec.ErrInsufficientData)

	err = codec.DeserializeStructural([]byte{0x01, 0x00}, &decoded)
	require.ErrorIs(t, err, codec.ErrInsufficientData)

	err = codec.DeserializeWire([]byte{0x00}, &decoded)
	require.ErrorIs(t, err, codec.ErrInsufficientData)
}

// TestAddressListUnknownTag checks an unknown descriptor inside a list.
func TestAddressListUnknownTag(t *testing.T) {
	t.Parallel()

	var decoded AddressList
	err := codec.DeserializeWire([]byte{0x00, 0x01, 0x05, 0, 0}, &decoded)
	require.ErrorIs(t, err, codec.ErrInvalidFormat)
}

// TestAddressListRoundTrip checks order preserving round trips.
func TestAddressListRoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		list := AddressList(rapid.SliceOfN(genAddr(), 0, 16).Draw(
			t, "addrs",
		))

		wireBytes, err := codec.SerializeWire(&list)
		require.NoError(t, err)

		var fromWire AddressList
		require.NoError(t, codec.DeserializeWire(wireBytes, &fromWire))
		require.Len(t, fromWire, len(list))
		for i := range list {
			require.Equal(t, list[i], fromWire[i])
		}

		structBytes, err := codec.SerializeStructural(&list)
		require.NoError(t, err)

		var fromStruct AddressList
		require.NoError(t, codec.DeserializeStructural(
			structBytes, &fromStruct,
		))
		require.Len(t, fromStruct, len(list))
		for i := range list {
			require.Equal(t, list[i], fromStruct[i])
		}

		require.Len(t, list.NetAddrs(), len(list))
	})
}

// TestAddressListNilEntry checks a nil element is reported, not panicked on.
func TestAddressListNilEntry(t *testing.T) {
	t.Parallel()

	list := AddressList{testIPv4, nil}

	var b bytes.Buffer
	require.ErrorIs(t, list.EncodeWire(&b), codec.ErrDataIntegrity)

	b.Reset()
	require.ErrorIs(t, list.EncodeStructural(&b), codec.ErrDataIntegrity)
}
