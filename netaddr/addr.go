package netaddr

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"strconv"

	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/lnpbp/lnpcore/codec"
)

const (
	ipv4Len          = 4
	ipv6Len          = 16
	onionV2Len       = 10
	onionV3PubKeyLen = 32
)

// AddrType is the 1-byte address descriptor of BOLT7 that precedes every
// address on the wire. The values are fixed by the protocol and are never
// derived from declaration order.
type AddrType uint8

const (
	// AddrTypeIPv4 denotes an IPv4 TCP address.
	AddrTypeIPv4 AddrType = 1

	// AddrTypeIPv6 denotes an IPv6 TCP address.
	AddrTypeIPv6 AddrType = 2

	// AddrTypeOnionV2 denotes a version 2 Tor onion service address.
	AddrTypeOnionV2 AddrType = 3

	// AddrTypeOnionV3 denotes a version 3 Tor (prop224) onion service
	// address.
	AddrTypeOnionV3 AddrType = 4
)

// String returns a human readable name for the descriptor.
func (t AddrType) String() string {
	switch t {
	case AddrTypeIPv4:
		return "ipv4"
	case AddrTypeIPv6:
		return "ipv6"
	case AddrTypeOnionV2:
		return "torv2"
	case AddrTypeOnionV3:
		return "torv3"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// ErrUnknownAddrType is an error returned if we encounter an unknown address
// type when parsing addresses.
type ErrUnknownAddrType struct {
	addrType AddrType
}

// Error returns a human readable string describing the error.
//
// NOTE: implements the error interface.
func (e ErrUnknownAddrType) Error() string {
	return fmt.Sprintf("unknown address type %d: wrong BOLT7 network "+
		"address format", uint8(e.addrType))
}

// Unwrap makes the error match codec.ErrInvalidFormat.
func (e ErrUnknownAddrType) Unwrap() error {
	return codec.ErrInvalidFormat
}

// AnnouncedNodeAddr is an address a node announces it can be reached at. It
// is a closed sum type: the only implementations are IPv4Addr, IPv6Addr,
// OnionV2Addr and OnionV3Addr. Every variant is also a net.Addr.
type AnnouncedNodeAddr interface {
	net.Addr
	codec.WireEncoder
	codec.StructuralEncoder

	// AddrType returns the BOLT7 descriptor of the variant.
	AddrType() AddrType

	// uniform returns the UniformAddr form of the address. Unexported to
	// keep the set of variants closed.
	uniform() UniformAddr
}

// A compile time check to ensure every variant implements
// AnnouncedNodeAddr.
var (
	_ AnnouncedNodeAddr = IPv4Addr{}
	_ AnnouncedNodeAddr = IPv6Addr{}
	_ AnnouncedNodeAddr = OnionV2Addr{}
	_ AnnouncedNodeAddr = OnionV3Addr{}
)

// IPv4Addr is an IPv4 address/port on which the peer is listening.
type IPv4Addr struct {
	// IP is the 4-byte IPv4 address.
	IP [ipv4Len]byte

	// Port is the port on which the node is listening.
	Port uint16
}

// AddrType returns AddrTypeIPv4.
func (a IPv4Addr) AddrType() AddrType {
	return AddrTypeIPv4
}

// Network returns the network of the address.
//
// NOTE: This is part of the net.Addr interface.
func (a IPv4Addr) Network() string {
	return "tcp"
}

// String returns the address in host:port form.
//
// NOTE: This is part of the net.Addr interface.
func (a IPv4Addr) String() string {
	return net.JoinHostPort(
		net.IP(a.IP[:]).String(), strconv.Itoa(int(a.Port)),
	)
}

// EncodeWire writes the descriptor, the 4 address bytes and the big endian
// port.
func (a IPv4Addr) EncodeWire(w *bytes.Buffer) error {
	return writeWireAddr(w, AddrTypeIPv4, a.IP[:], a.Port)
}

// EncodeStructural writes the structural form of the address.
func (a IPv4Addr) EncodeStructural(w *bytes.Buffer) error {
	return writeStructuralAddr(w, AddrFormatIPv4, a.IP[:], a.Port)
}

func (a IPv4Addr) uniform() UniformAddr {
	return newUniform(AddrFormatIPv4, a.IP[:], a.Port)
}

// IPv6Addr is an IPv6 address/port on which the peer is listening.
type IPv6Addr struct {
	// IP is the 16-byte IPv6 address.
	IP [ipv6Len]byte

	// Port is the port on which the node is listening.
	Port uint16
}

// AddrType returns AddrTypeIPv6.
func (a IPv6Addr) AddrType() AddrType {
	return AddrTypeIPv6
}

// Network returns the network of the address.
//
// NOTE: This is part of the net.Addr interface.
func (a IPv6Addr) Network() string {
	return "tcp"
}

// String returns the address in [host]:port form.
//
// NOTE: This is part of the net.Addr interface.
func (a IPv6Addr) String() string {
	return net.JoinHostPort(
		net.IP(a.IP[:]).String(), strconv.Itoa(int(a.Port)),
	)
}

// EncodeWire writes the descriptor, the 16 address bytes and the big endian
// port.
func (a IPv6Addr) EncodeWire(w *bytes.Buffer) error {
	return writeWireAddr(w, AddrTypeIPv6, a.IP[:], a.Port)
}

// EncodeStructural writes the structural form of the address.
func (a IPv6Addr) EncodeStructural(w *bytes.Buffer) error {
	return writeStructuralAddr(w, AddrFormatIPv6, a.IP[:], a.Port)
}

func (a IPv6Addr) uniform() UniformAddr {
	return newUniform(AddrFormatIPv6, a.IP[:], a.Port)
}

// OnionV2Addr is an old-style Tor onion address/port on which the peer is
// listening.
type OnionV2Addr struct {
	// Addr holds the 10 decoded bytes of the onion service name, usually
	// displayed in base32 with ".onion" appended.
	Addr [onionV2Len]byte

	// Port is the port on which the node is listening.
	Port uint16
}

// AddrType returns AddrTypeOnionV2.
func (a OnionV2Addr) AddrType() AddrType {
	return AddrTypeOnionV2
}

// Network returns the network of the address.
//
// NOTE: This is part of the net.Addr interface.
func (a OnionV2Addr) Network() string {
	return "tcp"
}

// String returns the onion hostname and port.
//
// NOTE: This is part of the net.Addr interface.
func (a OnionV2Addr) String() string {
	return a.onionAddr().String()
}

// EncodeWire writes the descriptor, the 10 address bytes and the big endian
// port.
func (a OnionV2Addr) EncodeWire(w *bytes.Buffer) error {
	return writeWireAddr(w, AddrTypeOnionV2, a.Addr[:], a.Port)
}

// EncodeStructural writes the structural form of the address.
func (a OnionV2Addr) EncodeStructural(w *bytes.Buffer) error {
	return writeStructuralAddr(w, AddrFormatOnionV2, a.Addr[:], a.Port)
}

func (a OnionV2Addr) uniform() UniformAddr {
	return newUniform(AddrFormatOnionV2, a.Addr[:], a.Port)
}

// OnionV3Addr is a new-style Tor onion address/port on which the peer is
// listening. The human readable hostname is the base32 encoding of the
// public key, checksum and version with ".onion" appended.
//
// Checksum and Version are optional only so that the address can be
// recovered from its UniformAddr form, which doesn't carry them. The wire
// encoding always requires both.
type OnionV3Addr struct {
	// PubKey is the ed25519 long-term public key of the peer.
	PubKey [onionV3PubKeyLen]byte

	// Checksum is the checksum of the pubkey and version, as included in
	// the onion address.
	Checksum fn.Option[uint16]

	// Version is the version byte, as defined by the Tor onion v3 spec.
	Version fn.Option[uint8]

	// Port is the port on which the node is listening.
	Port uint16
}

// AddrType returns AddrTypeOnionV3.
func (a OnionV3Addr) AddrType() AddrType {
	return AddrTypeOnionV3
}

// Network returns the network of the address.
//
// NOTE: This is part of the net.Addr interface.
func (a OnionV3Addr) Network() string {
	return "tcp"
}

// String returns the onion hostname and port. A missing checksum or version
// is filled in as described by Complete.
//
// NOTE: This is part of the net.Addr interface.
func (a OnionV3Addr) String() string {
	return a.Complete().onionAddr().String()
}

// EncodeWire writes the descriptor, the public key, the checksum, the version
// and the big endian port. The wire form has no optional fields, so an
// address without checksum or version is rejected with an error matching
// codec.ErrDataIntegrity.
func (a OnionV3Addr) EncodeWire(w *bytes.Buffer) error {
	checksum, err := a.Checksum.UnwrapOrErr(errMissingChecksum)
	if err != nil {
		return err
	}
	version, err := a.Version.UnwrapOrErr(errMissingVersion)
	if err != nil {
		return err
	}

	if err := codec.WriteUint8(w, uint8(AddrTypeOnionV3)); err != nil {
		return err
	}
	if err := codec.WriteBytes(w, a.PubKey[:]); err != nil {
		return err
	}
	if err := codec.WriteUint16(w, checksum); err != nil {
		return err
	}
	if err := codec.WriteUint8(w, version); err != nil {
		return err
	}

	return codec.WriteUint16(w, a.Port)
}

// EncodeStructural writes the structural form of the address. Unlike the
// uniform form it keeps the optional checksum and version.
func (a OnionV3Addr) EncodeStructural(w *bytes.Buffer) error {
	if err := codec.WriteUint8(w, uint8(AddrFormatOnionV3)); err != nil {
		return err
	}
	if err := codec.WriteBytes(w, a.PubKey[:]); err != nil {
		return err
	}
	if err := codec.WriteOption(w, a.Checksum, codec.WriteUint16LE); err != nil {
		return err
	}
	if err := codec.WriteOption(w, a.Version, codec.WriteUint8); err != nil {
		return err
	}

	return codec.WriteUint16LE(w, a.Port)
}

func (a OnionV3Addr) uniform() UniformAddr {
	return newUniform(AddrFormatOnionV3, a.PubKey[:], a.Port)
}

// writeWireAddr writes descriptor || raw || port (big endian).
func writeWireAddr(w *bytes.Buffer, t AddrType, raw []byte, port uint16) error {
	if err := codec.WriteUint8(w, uint8(t)); err != nil {
		return err
	}
	if err := codec.WriteBytes(w, raw); err != nil {
		return err
	}

	return codec.WriteUint16(w, port)
}

// writeStructuralAddr writes format || raw || port (little endian).
func writeStructuralAddr(w *bytes.Buffer, f AddrFormat, raw []byte,
	port uint16) error {

	if err := codec.WriteUint8(w, uint8(f)); err != nil {
		return err
	}
	if err := codec.WriteBytes(w, raw); err != nil {
		return err
	}

	return codec.WriteUint16LE(w, port)
}

// WriteAddr appends the wire encoding of addr to w.
func WriteAddr(w *bytes.Buffer, addr AnnouncedNodeAddr) error {
	if addr == nil {
		return codec.DataIntegrity("cannot write nil address")
	}

	return addr.EncodeWire(w)
}

// ReadAddr reads a single BOLT7 address descriptor and its body from r. An
// unknown descriptor fails with ErrUnknownAddrType.
func ReadAddr(r io.Reader) (AnnouncedNodeAddr, error) {
	descriptor, err := codec.ReadUint8(r, "address descriptor")
	if err != nil {
		return nil, err
	}

	switch aType := AddrType(descriptor); aType {
	case AddrTypeIPv4:
		var a IPv4Addr
		if err := codec.ReadFull(r, a.IP[:], "ipv4 address"); err != nil {
			return nil, err
		}
		if a.Port, err = codec.ReadUint16(r, "port"); err != nil {
			return nil, err
		}

		return a, nil

	case AddrTypeIPv6:
		var a IPv6Addr
		if err := codec.ReadFull(r, a.IP[:], "ipv6 address"); err != nil {
			return nil, err
		}
		if a.Port, err = codec.ReadUint16(r, "port"); err != nil {
			return nil, err
		}

		return a, nil

	case AddrTypeOnionV2:
		var a OnionV2Addr
		err := codec.ReadFull(r, a.Addr[:], "onion v2 address")
		if err != nil {
			return nil, err
		}
		if a.Port, err = codec.ReadUint16(r, "port"); err != nil {
			return nil, err
		}

		return a, nil

	case AddrTypeOnionV3:
		var a OnionV3Addr
		err := codec.ReadFull(r, a.PubKey[:], "onion v3 public key")
		if err != nil {
			return nil, err
		}
		checksum, err := codec.ReadUint16(r, "onion v3 checksum")
		if err != nil {
			return nil, err
		}
		version, err := codec.ReadUint8(r, "onion v3 version")
		if err != nil {
			return nil, err
		}
		if a.Port, err = codec.ReadUint16(r, "port"); err != nil {
			return nil, err
		}
		a.Checksum = fn.Some(checksum)
		a.Version = fn.Some(version)

		return a, nil

	default:
		log.Debugf("Unable to decode address with descriptor %d",
			descriptor)

		return nil, ErrUnknownAddrType{addrType: aType}
	}
}

// ReadStructuralAddr reads an address written by an EncodeStructural method.
func ReadStructuralAddr(r io.Reader) (AnnouncedNodeAddr, error) {
	format, err := codec.ReadUint8(r, "address format")
	if err != nil {
		return nil, err
	}

	switch AddrFormat(format) {
	case AddrFormatIPv4:
		var a IPv4Addr
		if err := codec.ReadFull(r, a.IP[:], "ipv4 address"); err != nil {
			return nil, err
		}
		if a.Port, err = codec.ReadUint16LE(r, "port"); err != nil {
			return nil, err
		}

		return a, nil

	case AddrFormatIPv6:
		var a IPv6Addr
		if err := codec.ReadFull(r, a.IP[:], "ipv6 address"); err != nil {
			return nil, err
		}
		if a.Port, err = codec.ReadUint16LE(r, "port"); err != nil {
			return nil, err
		}

		return a, nil

	case AddrFormatOnionV2:
		var a OnionV2Addr
		err := codec.ReadFull(r, a.Addr[:], "onion v2 address")
		if err != nil {
			return nil, err
		}
		if a.Port, err = codec.ReadUint16LE(r, "port"); err != nil {
			return nil, err
		}

		return a, nil

	case AddrFormatOnionV3:
		var a OnionV3Addr
		err := codec.ReadFull(r, a.PubKey[:], "onion v3 public key")
		if err != nil {
			return nil, err
		}
		a.Checksum, err = codec.ReadOption(
			r, "onion v3 checksum", codec.ReadUint16LE,
		)
		if err != nil {
			return nil, err
		}
		a.Version, err = codec.ReadOption(
			r, "onion v3 version", codec.ReadUint8,
		)
		if err != nil {
			return nil, err
		}
		if a.Port, err = codec.ReadUint16LE(r, "port"); err != nil {
			return nil, err
		}

		return a, nil

	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddr,
			AddrFormat(format))
	}
}
