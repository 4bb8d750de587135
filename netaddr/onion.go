package netaddr

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/lightningnetwork/lnd/tor"
	"github.com/lnpbp/lnpcore/codec"
	"golang.org/x/crypto/sha3"
)

// OnionV3Version is the version byte of prop224 onion service addresses.
const OnionV3Version uint8 = 3

// onionChecksumPrefix is prepended to the public key and version before
// hashing to obtain the onion v3 checksum.
const onionChecksumPrefix = ".onion checksum"

// OnionV3Checksum computes the 2-byte checksum of an onion v3 address:
// the first two bytes of SHA3-256(".onion checksum" || pubkey || version),
// read big endian as they appear in the address.
func OnionV3Checksum(pubKey [onionV3PubKeyLen]byte, version uint8) uint16 {
	preimage := make([]byte, 0, len(onionChecksumPrefix)+len(pubKey)+1)
	preimage = append(preimage, onionChecksumPrefix...)
	preimage = append(preimage, pubKey[:]...)
	preimage = append(preimage, version)

	digest := sha3.Sum256(preimage)

	return binary.BigEndian.Uint16(digest[:2])
}

// Complete returns a copy of the address with a missing version set to
// OnionV3Version and a missing checksum computed from the public key and
// version. Fields that are already present are left untouched.
func (a OnionV3Addr) Complete() OnionV3Addr {
	version := a.Version.UnwrapOr(OnionV3Version)

	a.Version = fn.Some(version)
	if a.Checksum.IsNone() {
		a.Checksum = fn.Some(OnionV3Checksum(a.PubKey, version))
	}

	return a
}

// ValidChecksum returns true if both checksum and version are present and
// the checksum matches the public key and version.
func (a OnionV3Addr) ValidChecksum() bool {
	checksum, err := a.Checksum.UnwrapOrErr(errMissingChecksum)
	if err != nil {
		return false
	}
	version, err := a.Version.UnwrapOrErr(errMissingVersion)
	if err != nil {
		return false
	}

	return OnionV3Checksum(a.PubKey, version) == checksum
}

var (
	errMissingChecksum = codec.DataIntegrity("onion v3 address has no " +
		"checksum")
	errMissingVersion = codec.DataIntegrity("onion v3 address has no " +
		"version")
)

// Hostname returns the ".onion" hostname of the address, completing it
// first.
func (a OnionV3Addr) Hostname() string {
	c := a.Complete()

	var decoded [tor.V3DecodedLen]byte
	copy(decoded[:], c.PubKey[:])
	binary.BigEndian.PutUint16(
		decoded[onionV3PubKeyLen:], c.Checksum.UnwrapOr(0),
	)
	decoded[onionV3PubKeyLen+2] = c.Version.UnwrapOr(OnionV3Version)

	return tor.Base32Encoding.EncodeToString(decoded[:]) + tor.OnionSuffix
}

func (a OnionV3Addr) onionAddr() *tor.OnionAddr {
	return &tor.OnionAddr{
		OnionService: a.Hostname(),
		Port:         int(a.Port),
	}
}

// Hostname returns the ".onion" hostname of the address.
func (a OnionV2Addr) Hostname() string {
	return tor.Base32Encoding.EncodeToString(a.Addr[:]) + tor.OnionSuffix
}

func (a OnionV2Addr) onionAddr() *tor.OnionAddr {
	return &tor.OnionAddr{
		OnionService: a.Hostname(),
		Port:         int(a.Port),
	}
}

// parseOnionHost decodes an onion hostname into the matching variant. The
// port is left at zero.
func parseOnionHost(host string) (AnnouncedNodeAddr, error) {
	if !tor.IsOnionHost(host) {
		return nil, codec.InvalidFormat("%q is not an onion host", host)
	}

	service := strings.TrimSuffix(strings.ToLower(host), tor.OnionSuffix)
	decoded, err := tor.Base32Encoding.DecodeString(service)
	if err != nil {
		return nil, fmt.Errorf("%w: onion host %q: %w",
			codec.ErrInvalidFormat, host, err)
	}

	switch len(decoded) {
	case tor.V2DecodedLen:
		var a OnionV2Addr
		copy(a.Addr[:], decoded)

		return a, nil

	case tor.V3DecodedLen:
		var a OnionV3Addr
		copy(a.PubKey[:], decoded[:onionV3PubKeyLen])
		a.Checksum = fn.Some(
			binary.BigEndian.Uint16(decoded[onionV3PubKeyLen:]),
		)
		a.Version = fn.Some(decoded[onionV3PubKeyLen+2])

		if !a.ValidChecksum() {
			return nil, codec.InvalidFormat("onion host %q has a "+
				"bad checksum", host)
		}

		return a, nil

	default:
		return nil, codec.InvalidFormat("onion host %q decodes to %d "+
			"bytes", host, len(decoded))
	}
}
