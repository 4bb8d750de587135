package netaddr

import (
	"net"
	"testing"

	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/lightningnetwork/lnd/tor"
	"github.com/lnpbp/lnpcore/codec"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestNetAddrConversion checks ToNetAddr and FromNetAddr are inverses for
// every family with complete fields.
func TestNetAddrConversion(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		addr := genAddr().Draw(t, "addr")
		switch a := addr.(type) {
		// IPv4-mapped IPv6 addresses come back as IPv4.
		case IPv6Addr:
			a.IP[0] = 0x20
			addr = a

		// Onion hostnames are validated, so only addresses with a
		// correct checksum survive the conversion.
		case OnionV3Addr:
			a.Checksum = fn.Some(OnionV3Checksum(
				a.PubKey, a.Version.UnwrapOr(OnionV3Version),
			))
			addr = a
		}

		netAddr := ToNetAddr(addr)
		require.Equal(t, addr.String(), netAddr.String())

		back, err := FromNetAddr(netAddr)
		require.NoError(t, err)
		require.Equal(t, addr, back)
	})
}

// TestToNetAddrTypes checks the concrete standard library and tor types.
func TestToNetAddrTypes(t *testing.T) {
	t.Parallel()

	tcp, ok := ToNetAddr(testIPv4).(*net.TCPAddr)
	require.True(t, ok)
	require.Equal(t, "255.254.253.252", tcp.IP.String())
	require.Equal(t, 9735, tcp.Port)

	_, ok = ToNetAddr(testIPv6).(*net.TCPAddr)
	require.True(t, ok)

	onion, ok := ToNetAddr(testOnionV2).(*tor.OnionAddr)
	require.True(t, ok)
	require.Equal(t, testOnionV2.Hostname(), onion.OnionService)
	require.Equal(t, 9735, onion.Port)
}

// TestFromNetAddrRejects checks unsupported inputs.
func TestFromNetAddrRejects(t *testing.T) {
	t.Parallel()

	testCases := []net.Addr{
		&net.UDPAddr{IP: net.IPv4(1, 2, 3, 4), Port: 1},
		&net.TCPAddr{IP: net.IPv4(1, 2, 3, 4), Port: 70000},
		&net.TCPAddr{IP: net.IP{1, 2, 3}, Port: 1},
		&tor.OnionAddr{OnionService: "example.com", Port: 1},
	}

	for _, addr := range testCases {
		_, err := FromNetAddr(addr)
		require.ErrorIs(t, err, codec.ErrInvalidFormat, addr.String())
	}
}

// TestParseAddr checks host:port parsing of each family.
func TestParseAddr(t *testing.T) {
	t.Parallel()

	addr, err := ParseAddr("255.254.253.252:9735")
	require.NoError(t, err)
	require.Equal(t, AnnouncedNodeAddr(testIPv4), addr)

	addr, err = ParseAddr(testIPv6.String())
	require.NoError(t, err)
	require.Equal(t, AnnouncedNodeAddr(testIPv6), addr)

	addr, err = ParseAddr(testOnionV2.String())
	require.NoError(t, err)
	require.Equal(t, AnnouncedNodeAddr(testOnionV2), addr)

	for _, bad := range []string{
		"", "1.2.3.4", "1.2.3.4:65536", "1.2.3.4:x", "localhost:9735",
		"[::1]:-1",
	} {
		_, err := ParseAddr(bad)
		require.ErrorIs(t, err, codec.ErrInvalidFormat, bad)
	}
}
