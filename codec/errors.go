package codec

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrInsufficientData is returned when a stream is exhausted before a
	// fixed or declared length has been read.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidFormat is returned when a tag is unrecognized or a field
	// holds a malformed value.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrDataIntegrity is returned when a field that the encoding requires
	// is missing at encode time.
	ErrDataIntegrity = errors.New("data integrity error")

	// ErrTrailingData is returned when bytes remain after a value has been
	// decoded from an exact byte slice.
	ErrTrailingData = errors.New("trailing data after encoded value")

	// ErrValueOutOfRange is returned when a value does not fit the width of
	// the field it is written to.
	ErrValueOutOfRange = errors.New("value out of range")
)

// InsufficientData wraps a short read error so that it matches
// ErrInsufficientData while still carrying the underlying io error.
func InsufficientData(err error, what string) error {
	return fmt.Errorf("%w: reading %s: %w", ErrInsufficientData, what, err)
}

// InvalidFormat returns an error matching ErrInvalidFormat with the given
// description.
func InvalidFormat(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidFormat, fmt.Sprintf(format, args...))
}

// DataIntegrity returns an error matching ErrDataIntegrity naming the field
// that was missing.
func DataIntegrity(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrDataIntegrity,
		fmt.Sprintf(format, args...))
}

// isShortRead reports whether err is the result of a stream ending early.
func isShortRead(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
