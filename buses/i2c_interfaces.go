// Package buses offers the I2C bus abstraction the display driver talks through,
// plus concrete and decorating implementations of it.
package buses

import (
	"context"
)

// I2C represents an I2C bus that can address any 7-bit device on it.
//
// Implementations block until the transaction completes or fails. Timeouts,
// NACKs and arbitration loss are reported through the returned error.
type I2C interface {
	// Write writes tx to the device at addr in a single transaction.
	Write(ctx context.Context, addr byte, tx []byte) error

	// WriteRead writes tx and then reads len(rx) bytes into rx from the device
	// at addr, as one combined transaction.
	WriteRead(ctx context.Context, addr byte, tx, rx []byte) error
}

// An I2CRegister is a lightweight wrapper around a bus for a particular device register.
type I2CRegister struct {
	Bus      I2C
	Addr     byte
	Register byte
}

// ReadByteData reads a byte from the device register.
func (reg *I2CRegister) ReadByteData(ctx context.Context) (byte, error) {
	rx := make([]byte, 1)
	if err := reg.Bus.WriteRead(ctx, reg.Addr, []byte{reg.Register}, rx); err != nil {
		return 0, err
	}
	return rx[0], nil
}

// WriteByteData writes a byte to the device register.
func (reg *I2CRegister) WriteByteData(ctx context.Context, data byte) error {
	return reg.Bus.Write(ctx, reg.Addr, []byte{reg.Register, data})
}

// WriteBlockData writes data starting at the device register, relying on the
// device to auto-increment the register address.
func (reg *I2CRegister) WriteBlockData(ctx context.Context, data []byte) error {
	tx := make([]byte, len(data)+1)
	tx[0] = reg.Register
	copy(tx[1:], data)
	return reg.Bus.Write(ctx, reg.Addr, tx)
}

// ReadBlockData fills rx with consecutive registers starting at the device register.
func (reg *I2CRegister) ReadBlockData(ctx context.Context, rx []byte) error {
	return reg.Bus.WriteRead(ctx, reg.Addr, []byte{reg.Register}, rx)
}
