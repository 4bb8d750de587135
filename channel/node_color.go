package channel

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"strconv"

	"github.com/lnpbp/lnpcore/codec"
)

// NodeColor is the RGB color a node announces for display in maps and
// explorers. It is three raw bytes in both dialects, with no length prefix.
type NodeColor [3]byte

// A compile time check to ensure NodeColor implements both dialects.
var (
	_ codec.WireCodec       = (*NodeColor)(nil)
	_ codec.StructuralCodec = (*NodeColor)(nil)
)

// NewNodeColor builds a NodeColor from a color.RGBA, dropping the alpha
// channel.
func NewNodeColor(c color.RGBA) NodeColor {
	return NodeColor{c.R, c.G, c.B}
}

// ParseNodeColor takes a hex color string like "#rrggbb" and returns the
// matching NodeColor.
func ParseNodeColor(hex string) (NodeColor, error) {
	if len(hex) != 7 || hex[0] != '#' {
		return NodeColor{}, codec.InvalidFormat("invalid hex color "+
			"string: %s", hex)
	}

	var c NodeColor
	for i := range c {
		v, err := strconv.ParseUint(hex[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return NodeColor{}, fmt.Errorf("%w: invalid color "+
				"component %d: %w", codec.ErrInvalidFormat, i, err)
		}
		c[i] = uint8(v)
	}

	return c, nil
}

// RGBA returns the color as an opaque color.RGBA.
func (c NodeColor) RGBA() color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xff}
}

// String returns the color in "#rrggbb" form.
func (c NodeColor) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// EncodeWire writes the three color bytes.
func (c *NodeColor) EncodeWire(w *bytes.Buffer) error {
	return codec.WriteBytes(w, c[:])
}

// DecodeWire reads three color bytes.
func (c *NodeColor) DecodeWire(r io.Reader) error {
	return codec.ReadFull(r, c[:], "node color")
}

// EncodeStructural writes the three color bytes.
func (c *NodeColor) EncodeStructural(w *bytes.Buffer) error {
	return c.EncodeWire(w)
}

// DecodeStructural reads three color bytes.
func (c *NodeColor) DecodeStructural(r io.Reader) error {
	return c.DecodeWire(r)
}
