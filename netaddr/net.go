package netaddr

import (
	"fmt"
	"net"
	"strconv"

	"github.com/lightningnetwork/lnd/tor"
	"github.com/lnpbp/lnpcore/codec"
)

// ToNetAddr converts an announced address into the standard library or tor
// representation used when dialing: *net.TCPAddr for IP families and
// *tor.OnionAddr for onion services.
func ToNetAddr(addr AnnouncedNodeAddr) net.Addr {
	switch a := addr.(type) {
	case IPv4Addr:
		return &net.TCPAddr{
			IP:   net.IP(a.IP[:]).To16(),
			Port: int(a.Port),
		}

	case IPv6Addr:
		return &net.TCPAddr{
			IP:   net.IP(a.IP[:]),
			Port: int(a.Port),
		}

	case OnionV2Addr:
		return a.onionAddr()

	case OnionV3Addr:
		return a.onionAddr()

	default:
		return addr
	}
}

// FromNetAddr converts a *net.TCPAddr or *tor.OnionAddr into the matching
// announced address. Any other net.Addr, or a port outside 16 bits, is
// rejected with an error matching codec.ErrInvalidFormat.
func FromNetAddr(addr net.Addr) (AnnouncedNodeAddr, error) {
	switch a := addr.(type) {
	case AnnouncedNodeAddr:
		return a, nil

	case *net.TCPAddr:
		port, err := checkPort(a.Port)
		if err != nil {
			return nil, err
		}

		if ip4 := a.IP.To4(); ip4 != nil {
			var v4 IPv4Addr
			copy(v4.IP[:], ip4)
			v4.Port = port

			return v4, nil
		}

		if len(a.IP) != net.IPv6len {
			return nil, codec.InvalidFormat("tcp address has %d "+
				"byte IP", len(a.IP))
		}

		var v6 IPv6Addr
		copy(v6.IP[:], a.IP)
		v6.Port = port

		return v6, nil

	case *tor.OnionAddr:
		port, err := checkPort(a.Port)
		if err != nil {
			return nil, err
		}

		onion, err := parseOnionHost(a.OnionService)
		if err != nil {
			return nil, err
		}

		return withPort(onion, port), nil

	default:
		return nil, codec.InvalidFormat("unsupported address type %T",
			addr)
	}
}

// ParseAddr parses a host:port string into an announced address. The host
// may be an IPv4 literal, a bracketed IPv6 literal or an onion hostname.
// Names that would require resolution are rejected.
func ParseAddr(s string) (AnnouncedNodeAddr, error) {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", codec.ErrInvalidFormat, err)
	}

	portNum, err := strconv.ParseUint(rawPort, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("%w: port %q: %w", codec.ErrInvalidFormat,
			rawPort, err)
	}
	port := uint16(portNum)

	if tor.IsOnionHost(host) {
		onion, err := parseOnionHost(host)
		if err != nil {
			return nil, err
		}

		return withPort(onion, port), nil
	}

	ip := net.ParseIP(host)
	if ip == nil {
		return nil, codec.InvalidFormat("%q is not an IP or onion host",
			host)
	}

	return FromNetAddr(&net.TCPAddr{IP: ip, Port: int(port)})
}

func checkPort(port int) (uint16, error) {
	if port < 0 || port > 0xffff {
		return 0, codec.InvalidFormat("port %d out of range", port)
	}

	return uint16(port), nil
}

func withPort(addr AnnouncedNodeAddr, port uint16) AnnouncedNodeAddr {
	switch a := addr.(type) {
	case IPv4Addr:
		a.Port = port
		return a

	case IPv6Addr:
		a.Port = port
		return a

	case OnionV2Addr:
		a.Port = port
		return a

	case OnionV3Addr:
		a.Port = port
		return a

	default:
		return addr
	}
}
