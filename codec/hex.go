package codec

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// FormatHex renders b for the fmt verbs %s, %v and %x as lowercase hex, and
// for %X as uppercase hex. It lets fixed-size identifiers implement
// fmt.Formatter without each repeating the verb handling.
func FormatHex(f fmt.State, verb rune, b []byte) {
	switch verb {
	case 's', 'v', 'x':
		fmt.Fprint(f, hex.EncodeToString(b))

	case 'X':
		fmt.Fprint(f, strings.ToUpper(hex.EncodeToString(b)))

	default:
		fmt.Fprintf(f, "%%!%c(%x)", verb, b)
	}
}

// DecodeHex32 parses a 64 character hex string, in either case, into a
// 32-byte array.
func DecodeHex32(s string) ([32]byte, error) {
	var out [32]byte

	if len(s) != hex.EncodedLen(len(out)) {
		return out, InvalidFormat("expected %d hex characters, got %d",
			hex.EncodedLen(len(out)), len(s))
	}

	if _, err := hex.Decode(out[:], []byte(s)); err != nil {
		return out, InvalidFormat("invalid hex: %v", err)
	}

	return out, nil
}
