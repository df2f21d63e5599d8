package max6955

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidArgument is wrapped by every argument validation failure. Such failures are
	// detected before any bus transaction is issued.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDeviceNotFound is returned by New when probing is enabled and the device does not answer.
	ErrDeviceNotFound = errors.New("max6955 device not found")
)

// UnsupportedCharacterError is returned when the font has no glyph for a character.
type UnsupportedCharacterError struct {
	Char rune
}

func (e *UnsupportedCharacterError) Error() string {
	return fmt.Sprintf("unsupported character %q (U+%04X)", e.Char, e.Char)
}

// TransportError is a failed bus transaction. Err is the bus error, untouched.
type TransportError struct {
	// Op is "write" or "write-read".
	Op       string
	Addr     byte
	Register Register
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("i2c %s of register %s at address 0x%02X: %v", e.Op, e.Register, e.Addr, e.Err)
}

// Unwrap returns the bus error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

func newInvalidArgumentError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}
