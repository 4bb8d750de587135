package netaddr

import (
	"encoding/hex"
	"testing"

	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/lnpbp/lnpcore/codec"
	"github.com/stretchr/testify/require"
)

const (
	ddgOnionHost   = "duckduckgogg42xjoc72x3sjasowoarfbgcmvfimaftt6twagswzczad.onion"
	ddgOnionPubKey = "1d04a1d04a338c6e6ae970bfabee49049d6702250984ca950c01673f4ec034ad"
)

// TestOnionV3Checksum checks the checksum against a published v3 address.
func TestOnionV3Checksum(t *testing.T) {
	t.Parallel()

	rawKey, err := hex.DecodeString(ddgOnionPubKey)
	require.NoError(t, err)

	var pubKey [onionV3PubKeyLen]byte
	copy(pubKey[:], rawKey)

	require.Equal(t, uint16(0x9164), OnionV3Checksum(pubKey, OnionV3Version))

	addr := OnionV3Addr{PubKey: pubKey, Port: 443}
	require.False(t, addr.ValidChecksum())

	complete := addr.Complete()
	require.True(t, complete.ValidChecksum())
	require.Equal(t, fn.Some[uint16](0x9164), complete.Checksum)
	require.Equal(t, fn.Some(OnionV3Version), complete.Version)
	require.Equal(t, ddgOnionHost, complete.Hostname())
	require.Equal(t, ddgOnionHost+":443", addr.String())

	parsed, err := ParseAddr(ddgOnionHost + ":443")
	require.NoError(t, err)
	require.Equal(t, AnnouncedNodeAddr(complete), parsed)
}

// TestOnionV3CompleteKeepsFields checks present fields aren't recomputed.
func TestOnionV3CompleteKeepsFields(t *testing.T) {
	t.Parallel()

	complete := testOnionV3.Complete()
	require.Equal(t, testOnionV3, complete)
	require.False(t, complete.ValidChecksum())

	sample := testOnionV3
	sample.Checksum = fn.None[uint16]()
	sample = sample.Complete()
	require.Equal(t, fn.Some[uint8](16), sample.Version)
	require.True(t, sample.ValidChecksum())
}

// TestParseOnionHostBadChecksum checks a tampered v3 hostname is rejected.
func TestParseOnionHostBadChecksum(t *testing.T) {
	t.Parallel()

	// Flip the first character so the public key no longer matches the
	// embedded checksum.
	tampered := "e" + ddgOnionHost[1:]

	_, err := ParseAddr(tampered + ":9735")
	require.ErrorIs(t, err, codec.ErrInvalidFormat)
}
