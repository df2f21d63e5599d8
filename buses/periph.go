package buses

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// PeriphI2C is an I2C bus backed by a periph.io host driver.
type PeriphI2C struct {
	name string
	bus  i2c.BusCloser
}

// OpenPeriphI2C initializes the periph host drivers and opens the named I2C bus.
// An empty name opens the first bus found. A speedHz of 0 leaves the bus clock
// at its default.
func OpenPeriphI2C(name string, speedHz int) (*PeriphI2C, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize periph host drivers")
	}
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open i2c bus %q", name)
	}
	if speedHz > 0 {
		if err := bus.SetSpeed(physic.Frequency(speedHz) * physic.Hertz); err != nil {
			//nolint:errcheck
			bus.Close()
			return nil, errors.Wrapf(err, "failed to set i2c bus %q speed to %dHz", name, speedHz)
		}
	}
	return &PeriphI2C{name: name, bus: bus}, nil
}

// Write writes tx to the device at addr.
func (p *PeriphI2C) Write(ctx context.Context, addr byte, tx []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.bus.Tx(uint16(addr), tx, nil); err != nil {
		return errors.Wrapf(err, "i2c write to address 0x%02x on bus %s", addr, p)
	}
	return nil
}

// WriteRead writes tx and reads len(rx) bytes back from the device at addr.
func (p *PeriphI2C) WriteRead(ctx context.Context, addr byte, tx, rx []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.bus.Tx(uint16(addr), tx, rx); err != nil {
		return errors.Wrapf(err, "i2c write-read of address 0x%02x on bus %s", addr, p)
	}
	return nil
}

func (p *PeriphI2C) String() string {
	if p.name == "" {
		return fmt.Sprintf("%s (default)", p.bus)
	}
	return p.name
}

// Close releases the bus.
func (p *PeriphI2C) Close() error {
	return p.bus.Close()
}
