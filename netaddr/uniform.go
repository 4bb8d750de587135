package netaddr

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/lnpbp/lnpcore/codec"
)

// AddrLen is the width of the address buffer of a UniformAddr. It is wide
// enough for the largest family, a 32-byte onion v3 public key, plus one
// leading byte.
const AddrLen = 33

// UniformAddrLen is the length of the structural encoding of a UniformAddr:
// format(1) || addr(AddrLen) || port flag(1) || port(2).
const UniformAddrLen = 1 + AddrLen + 1 + 2

// Offsets of each family's address bytes inside the uniform buffer. Every
// family ends at the last byte of the buffer.
const (
	ipv4Offset    = AddrLen - ipv4Len
	ipv6Offset    = AddrLen - ipv6Len
	onionV2Offset = AddrLen - onionV2Len
	onionV3Offset = AddrLen - onionV3PubKeyLen
)

var (
	// ErrInvalidAddr is returned when a uniform address carries a format
	// tag that no AnnouncedNodeAddr variant maps to.
	ErrInvalidAddr = fmt.Errorf("%w: unsupported uniform address format",
		codec.ErrInvalidFormat)

	// errMissingPort is wrapped when a uniform address has no port.
	errMissingPort = errors.New("uniform address has no port")
)

// AddrFormat is the tag of a UniformAddr naming which address family occupies
// its buffer.
type AddrFormat uint8

const (
	// AddrFormatIPv4 is an IPv4 address.
	AddrFormatIPv4 AddrFormat = 0

	// AddrFormatIPv6 is an IPv6 address.
	AddrFormatIPv6 AddrFormat = 1

	// AddrFormatOnionV2 is a legacy Tor onion service address.
	AddrFormatOnionV2 AddrFormat = 2

	// AddrFormatOnionV3 is a Tor onion service address (prop224).
	AddrFormatOnionV3 AddrFormat = 3
)

// String returns a human readable name for the address format.
func (f AddrFormat) String() string {
	switch f {
	case AddrFormatIPv4:
		return "ipv4"
	case AddrFormatIPv6:
		return "ipv6"
	case AddrFormatOnionV2:
		return "onionv2"
	case AddrFormatOnionV3:
		return "onionv3"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(f))
	}
}

// IsKnown returns true if the format maps to an AnnouncedNodeAddr variant.
func (f AddrFormat) IsKnown() bool {
	return f <= AddrFormatOnionV3
}

// offset returns where the format's address bytes start in the uniform
// buffer. The format must be known.
func (f AddrFormat) offset() int {
	switch f {
	case AddrFormatIPv4:
		return ipv4Offset
	case AddrFormatIPv6:
		return ipv6Offset
	case AddrFormatOnionV2:
		return onionV2Offset
	default:
		return onionV3Offset
	}
}

// UniformAddr stores an address of any family in one fixed-width slot: a
// format tag, a constant-length buffer holding the address bytes at a
// family-specific offset, and an optional port.
//
// The mapping from AnnouncedNodeAddr is lossy for onion v3 addresses: the
// checksum and version are not carried, so FromUniform always yields an
// OnionV3Addr with both fields set to None. Callers must not assume that
// FromUniform(ToUniform(a)) == a for that family.
type UniformAddr struct {
	// Format names the family stored in Addr.
	Format AddrFormat

	// Addr holds the family's address bytes right-aligned in the buffer.
	Addr [AddrLen]byte

	// Port is the listening port, if known.
	Port fn.Option[uint16]
}

// A compile time check to ensure UniformAddr implements the structural
// dialect.
var _ codec.StructuralCodec = (*UniformAddr)(nil)

// ToUniform places the address of a into a UniformAddr.
func ToUniform(a AnnouncedNodeAddr) UniformAddr {
	return a.uniform()
}

// FromUniform is the inverse of ToUniform. It fails with an error matching
// codec.ErrInsufficientData if the uniform value has no port and with
// ErrInvalidAddr for an unknown format. Onion v3 addresses come back without
// checksum and version.
func FromUniform(u UniformAddr) (AnnouncedNodeAddr, error) {
	if !u.Format.IsKnown() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddr, u.Format)
	}

	port, err := u.Port.UnwrapOrErr(
		fmt.Errorf("%w: %w", codec.ErrInsufficientData, errMissingPort),
	)
	if err != nil {
		return nil, err
	}

	raw := u.Addr[u.Format.offset():]

	switch u.Format {
	case AddrFormatIPv4:
		var a IPv4Addr
		copy(a.IP[:], raw)
		a.Port = port

		return a, nil

	case AddrFormatIPv6:
		var a IPv6Addr
		copy(a.IP[:], raw)
		a.Port = port

		return a, nil

	case AddrFormatOnionV2:
		var a OnionV2Addr
		copy(a.Addr[:], raw)
		a.Port = port

		return a, nil

	default:
		var a OnionV3Addr
		copy(a.PubKey[:], raw)
		a.Port = port

		return a, nil
	}
}

// newUniform builds the uniform form of an address whose bytes are raw.
func newUniform(format AddrFormat, raw []byte, port uint16) UniformAddr {
	u := UniformAddr{
		Format: format,
		Port:   fn.Some(port),
	}
	copy(u.Addr[AddrLen-len(raw):], raw)

	return u
}

// EncodeStructural writes the fixed UniformAddrLen byte form of the uniform
// address. An absent port is written as a zero flag followed by two zero
// bytes so that every value occupies the same width.
func (u *UniformAddr) EncodeStructural(w *bytes.Buffer) error {
	if err := codec.WriteUint8(w, uint8(u.Format)); err != nil {
		return err
	}
	if err := codec.WriteBytes(w, u.Addr[:]); err != nil {
		return err
	}

	return fn.ElimOption(u.Port, func() error {
		return codec.WriteBytes(w, []byte{0, 0, 0})
	}, func(port uint16) error {
		if err := codec.WriteUint8(w, 1); err != nil {
			return err
		}

		return codec.WriteUint16LE(w, port)
	})
}

// DecodeStructural reads a uniform address written by EncodeStructural. The
// buffer bytes ahead of the family's offset must be zero.
func (u *UniformAddr) DecodeStructural(r io.Reader) error {
	var b [UniformAddrLen]byte
	if err := codec.ReadFull(r, b[:], "uniform address"); err != nil {
		return err
	}

	format := AddrFormat(b[0])
	if !format.IsKnown() {
		return fmt.Errorf("%w: %v", ErrInvalidAddr, format)
	}

	var decoded UniformAddr
	decoded.Format = format
	copy(decoded.Addr[:], b[1:1+AddrLen])

	for _, pad := range decoded.Addr[:format.offset()] {
		if pad != 0 {
			return codec.InvalidFormat("uniform %v address has "+
				"non-zero padding", format)
		}
	}

	portBytes := b[2+AddrLen:]
	switch b[1+AddrLen] {
	case 0:
		if portBytes[0] != 0 || portBytes[1] != 0 {
			return codec.InvalidFormat("uniform address without " +
				"port has non-zero port bytes")
		}
		decoded.Port = fn.None[uint16]()

	case 1:
		decoded.Port = fn.Some(
			uint16(portBytes[0]) | uint16(portBytes[1])<<8,
		)

	default:
		return codec.InvalidFormat("uniform address port flag %d",
			b[1+AddrLen])
	}

	*u = decoded

	return nil
}
