package codec

import (
	"bytes"
	"io"

	"github.com/lightningnetwork/lnd/fn/v2"
)

const (
	optionNone uint8 = 0
	optionSome uint8 = 1
)

// WriteOption appends the structural encoding of an optional value: a single
// presence byte (0 or 1) followed by the value itself when present.
func WriteOption[A any](buf *bytes.Buffer, o fn.Option[A],
	write func(*bytes.Buffer, A) error) error {

	return fn.ElimOption(o, func() error {
		return WriteUint8(buf, optionNone)
	}, func(a A) error {
		if err := WriteUint8(buf, optionSome); err != nil {
			return err
		}

		return write(buf, a)
	})
}

// ReadOption reads an optional value written by WriteOption. A presence byte
// other than 0 or 1 is rejected with ErrInvalidFormat.
func ReadOption[A any](r io.Reader, what string,
	read func(io.Reader, string) (A, error)) (fn.Option[A], error) {

	flag, err := ReadUint8(r, what)
	if err != nil {
		return fn.None[A](), err
	}

	switch flag {
	case optionNone:
		return fn.None[A](), nil

	case optionSome:
		a, err := read(r, what)
		if err != nil {
			return fn.None[A](), err
		}

		return fn.Some(a), nil

	default:
		return fn.None[A](), InvalidFormat("%s: option flag %d",
			what, flag)
	}
}
