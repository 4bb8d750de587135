package netaddr

import (
	"bytes"
	"testing"

	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/lnpbp/lnpcore/codec"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestUniformOffsets checks each family lands right-aligned in the buffer.
func TestUniformOffsets(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		addr   AnnouncedNodeAddr
		format AddrFormat
		offset int
		raw    []byte
	}{
		{testIPv4, AddrFormatIPv4, 29, testIPv4.IP[:]},
		{testIPv6, AddrFormatIPv6, 17, testIPv6.IP[:]},
		{testOnionV2, AddrFormatOnionV2, 23, testOnionV2.Addr[:]},
		{testOnionV3, AddrFormatOnionV3, 1, testOnionV3.PubKey[:]},
	}

	for _, tc := range testCases {
		u := ToUniform(tc.addr)
		require.Equal(t, tc.format, u.Format)
		require.Equal(t, fn.Some[uint16](9735), u.Port)
		require.Equal(t, tc.raw, u.Addr[tc.offset:])
		require.Equal(t, make([]byte, tc.offset), u.Addr[:tc.offset])
	}
}

// TestUniformRoundTrip checks FromUniform(ToUniform(a)) for every family,
// including the documented loss of the onion v3 checksum and version.
func TestUniformRoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		addr := genAddr().Draw(t, "addr")

		u := ToUniform(addr)
		back, err := FromUniform(u)
		require.NoError(t, err)

		expected := addr
		if v3, ok := addr.(OnionV3Addr); ok {
			v3.Checksum = fn.None[uint16]()
			v3.Version = fn.None[uint8]()
			expected = v3
		}
		require.Equal(t, expected, back)

		raw, err := codec.SerializeStructural(&u)
		require.NoError(t, err)
		require.Len(t, raw, UniformAddrLen)

		var decoded UniformAddr
		require.NoError(t, codec.DeserializeStructural(raw, &decoded))
		require.Equal(t, u, decoded)
	})
}

// TestFromUniformErrors checks the missing port and unknown format cases.
func TestFromUniformErrors(t *testing.T) {
	t.Parallel()

	u := ToUniform(testIPv4)
	u.Port = fn.None[uint16]()

	_, err := FromUniform(u)
	require.ErrorIs(t, err, codec.ErrInsufficientData)

	// A port-less value still has a fixed width structural form.
	raw, err := codec.SerializeStructural(&u)
	require.NoError(t, err)
	require.Len(t, raw, UniformAddrLen)

	var decoded UniformAddr
	require.NoError(t, codec.DeserializeStructural(raw, &decoded))
	require.Equal(t, u, decoded)

	u = ToUniform(testIPv4)
	u.Format = 4

	_, err = FromUniform(u)
	require.ErrorIs(t, err, ErrInvalidAddr)
	require.ErrorIs(t, err, codec.ErrInvalidFormat)
}

// TestUniformDecodeRejects checks malformed structural uniform encodings.
func TestUniformDecodeRejects(t *testing.T) {
	t.Parallel()

	u := ToUniform(testIPv6)
	raw, err := codec.SerializeStructural(&u)
	require.NoError(t, err)

	badFormat := bytes.Clone(raw)
	badFormat[0] = 7

	badFlag := bytes.Clone(raw)
	badFlag[1+AddrLen] = 2

	strayPort := bytes.Clone(raw)
	strayPort[1+AddrLen] = 0

	// IPv6 bytes start at 17, so byte 1 of the buffer is padding.
	strayPad := bytes.Clone(raw)
	strayPad[1+1] = 0x01

	for _, b := range [][]byte{badFormat, badFlag, strayPort, strayPad} {
		var decoded UniformAddr
		err := codec.DeserializeStructural(b, &decoded)
		require.ErrorIs(t, err, codec.ErrInvalidFormat)
	}

	var decoded UniformAddr
	err = codec.DeserializeStructural(raw[:UniformAddrLen-1], &decoded)
	require.ErrorIs(t, err, codec.ErrInsufficientData)
}

// TestUniformPaddingCanonical checks a uniform encoding with any padding byte
// set is refused for every family.
func TestUniformPaddingCanonical(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		u := ToUniform(genAddr().Draw(t, "addr"))
		raw, err := codec.SerializeStructural(&u)
		require.NoError(t, err)

		offset := u.Format.offset()
		if offset == 0 {
			return
		}
		idx := rapid.IntRange(0, offset-1).Draw(t, "idx")
		raw[1+idx] = rapid.ByteMin(1).Draw(t, "pad")

		var decoded UniformAddr
		err = codec.DeserializeStructural(raw, &decoded)
		require.ErrorIs(t, err, codec.ErrInvalidFormat)
	})
}
