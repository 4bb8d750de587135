package netaddr

import (
	"bytes"
	"io"
	"net"

	"github.com/lnpbp/lnpcore/codec"
)

// maxPrealloc bounds the capacity reserved from a decoded count so that a
// hostile prefix can't force a large allocation before any address is read.
const maxPrealloc = 256

// AddressList is an ordered list of announced addresses, as carried by a
// node announcement.
type AddressList []AnnouncedNodeAddr

// A compile time check to ensure AddressList implements both dialects.
var (
	_ codec.WireCodec       = (*AddressList)(nil)
	_ codec.StructuralCodec = (*AddressList)(nil)
)

// EncodeWire writes a 2-byte big endian count followed by the wire encoding
// of each address in order.
func (l *AddressList) EncodeWire(w *bytes.Buffer) error {
	if err := codec.WriteCount(w, len(*l)); err != nil {
		return err
	}

	for _, addr := range *l {
		if err := WriteAddr(w, addr); err != nil {
			return err
		}
	}

	return nil
}

// DecodeWire reads a list written by EncodeWire.
func (l *AddressList) DecodeWire(r io.Reader) error {
	count, err := codec.ReadUint16(r, "address count")
	if err != nil {
		return err
	}

	addrs := make(AddressList, 0, min(int(count), maxPrealloc))
	for i := 0; i < int(count); i++ {
		addr, err := ReadAddr(r)
		if err != nil {
			log.Debugf("Decoding address %d of %d failed: %v", i,
				count, err)

			return err
		}
		addrs = append(addrs, addr)
	}

	*l = addrs

	return nil
}

// EncodeStructural writes a 2-byte little endian count followed by the
// structural encoding of each address in order.
func (l *AddressList) EncodeStructural(w *bytes.Buffer) error {
	if err := codec.WriteCountLE(w, len(*l)); err != nil {
		return err
	}

	for _, addr := range *l {
		if addr == nil {
			return codec.DataIntegrity("cannot write nil address")
		}
		if err := addr.EncodeStructural(w); err != nil {
			return err
		}
	}

	return nil
}

// DecodeStructural reads a list written by EncodeStructural.
func (l *AddressList) DecodeStructural(r io.Reader) error {
	count, err := codec.ReadUint16LE(r, "address count")
	if err != nil {
		return err
	}

	addrs := make(AddressList, 0, min(int(count), maxPrealloc))
	for i := 0; i < int(count); i++ {
		addr, err := ReadStructuralAddr(r)
		if err != nil {
			return err
		}
		addrs = append(addrs, addr)
	}

	*l = addrs

	return nil
}

// NetAddrs converts every address with ToNetAddr.
func (l AddressList) NetAddrs() []net.Addr {
	addrs := make([]net.Addr, 0, len(l))
	for _, addr := range l {
		addrs = append(addrs, ToNetAddr(addr))
	}

	return addrs
}
