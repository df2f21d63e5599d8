// Package max6955 drives a Maxim MAX6955 LED display controller over I2C. The chip drives up to
// eight 14-segment or 16-segment digits (or sixteen 7-segment digits) and is documented at
// https://www.analog.com/media/en/technical-documentation/data-sheets/MAX6955.pdf
//
// The chip has sixteen possible I2C addresses, 0x60 through 0x6F, selected by wiring the AD0
// and AD1 pins. With both pins tied to ground it answers at 0x60.
//
// Every operation validates its arguments before touching the bus, issues at most one
// transaction (two for read-modify-write of shared registers), never retries, and never caches
// register contents: power, blink and intensity-mode changes read the configuration register
// back from the chip so that unrelated bits are preserved.
//
// Text is written left to right starting at digit 0. WriteString does not blank the digits past
// the end of a short string; they keep whatever they showed before. Call ClearAll first to get
// a clean display.
//
// A Device is not safe for concurrent use.
package max6955

import (
	"context"

	"github.com/pkg/errors"

	"go.viam.com/max6955/buses"
)

// Device is a MAX6955 on an I2C bus.
type Device struct {
	bus    buses.I2C
	addr   byte
	digits int
}

// New returns a Device talking through bus. A nil conf selects the default address and eight
// digits. Unless conf.Probe is set, New performs no bus I/O.
func New(ctx context.Context, bus buses.I2C, conf *Config) (*Device, error) {
	if bus == nil {
		return nil, newInvalidArgumentError("nil i2c bus")
	}
	if conf == nil {
		conf = &Config{}
	}
	if err := conf.validateDevice("max6955"); err != nil {
		return nil, err
	}
	d := &Device{
		bus:    bus,
		addr:   conf.Address(),
		digits: conf.DigitCount(),
	}
	if conf.Probe {
		if _, err := d.readRegister(ctx, RegConfiguration); err != nil {
			return nil, errors.Wrapf(ErrDeviceNotFound, "no answer at address 0x%02X: %v", d.addr, err)
		}
	}
	return d, nil
}

// Address returns the I2C address the device is reached at.
func (d *Device) Address() byte {
	return d.addr
}

// Digits returns the number of digits text is written to.
func (d *Device) Digits() int {
	return d.digits
}

// SetAddress retargets the handle at another address on the same bus.
func (d *Device) SetAddress(addr byte) error {
	if addr < MinAddress || addr > MaxAddress {
		return newInvalidArgumentError("address 0x%02X outside [0x%02X, 0x%02X]", addr, MinAddress, MaxAddress)
	}
	d.addr = addr
	return nil
}

// Powerup takes the chip out of shutdown. Blink and intensity settings are preserved.
func (d *Device) Powerup(ctx context.Context) error {
	return d.updateRegister(ctx, RegConfiguration, func(config byte) byte {
		return setBit(config, configShutdownBit, true)
	})
}

// Shutdown blanks the display and stops the multiplexer. Register contents are kept.
func (d *Device) Shutdown(ctx context.Context) error {
	return d.updateRegister(ctx, RegConfiguration, func(config byte) byte {
		return setBit(config, configShutdownBit, false)
	})
}

// SetGlobalIntensity sets the brightness used by every digit while the intensity mode is
// IntensityGlobal. level must be within [0, 15].
func (d *Device) SetGlobalIntensity(ctx context.Context, level int) error {
	if err := validateIntensity(level); err != nil {
		return err
	}
	return d.writeRegister(ctx, RegGlobalIntensity, byte(level))
}

// SetDigitIntensity sets the brightness of one digit, used while the intensity mode is
// IntensityIndividual. The neighbouring digit sharing the register keeps its level.
func (d *Device) SetDigitIntensity(ctx context.Context, digit, level int) error {
	if err := d.validateDigit(digit); err != nil {
		return err
	}
	if err := validateIntensity(level); err != nil {
		return err
	}
	reg, shift := intensityRegister(digit)
	return d.updateRegister(ctx, reg, func(levels byte) byte {
		return levels&^(0x0F<<shift) | byte(level)<<shift
	})
}

// SetIntensityMode selects between the global and the per-digit intensity registers.
func (d *Device) SetIntensityMode(ctx context.Context, mode IntensityMode) error {
	return d.updateRegister(ctx, RegConfiguration, func(config byte) byte {
		return setBit(config, configIntensityBit, mode == IntensityIndividual)
	})
}

// SetBlink sets blink enable and rate together in one read-modify-write of the configuration
// register. The power state is never changed. The rate is stored even when blinking is disabled.
func (d *Device) SetBlink(ctx context.Context, mode BlinkMode, rate BlinkRate) error {
	return d.updateRegister(ctx, RegConfiguration, func(config byte) byte {
		config = setBit(config, configBlinkEnableBit, mode == BlinkEnable)
		return setBit(config, configBlinkRateBit, rate == BlinkFast)
	})
}

// ResetBlinkTiming restarts the blink counters, for synchronizing several chips.
func (d *Device) ResetBlinkTiming(ctx context.Context) error {
	return d.updateRegister(ctx, RegConfiguration, func(config byte) byte {
		return setBit(config, configBlinkTimingBit, true)
	})
}

// ReadConfiguration reads and decodes the configuration register.
func (d *Device) ReadConfiguration(ctx context.Context) (ConfigState, error) {
	raw, err := d.readRegister(ctx, RegConfiguration)
	if err != nil {
		return ConfigState{}, err
	}
	return decodeConfig(raw), nil
}

// WriteChar shows ch on digit, in plane P0.
func (d *Device) WriteChar(ctx context.Context, digit int, ch rune) error {
	return d.WriteCharPlane(ctx, PlaneP0, digit, ch)
}

// WriteCharPlane writes ch to digit in the given plane. With blinking enabled, writing
// different characters to P0 and P1 makes the digit alternate between them.
func (d *Device) WriteCharPlane(ctx context.Context, plane Plane, digit int, ch rune) error {
	if err := d.validateDigit(digit); err != nil {
		return err
	}
	glyph, err := Encode(ch)
	if err != nil {
		return err
	}
	return d.writeRegister(ctx, digitRegister(plane, digit), glyph.Code)
}

// WriteString writes text from digit 0 onwards, one character per digit. Characters past the
// last digit are dropped. Digits past the end of text are left as they were.
//
// An unsupported character stops the write at its digit; digits before it have already been
// written and stay written.
func (d *Device) WriteString(ctx context.Context, text string) error {
	digit := 0
	for _, ch := range text {
		if digit >= d.digits {
			break
		}
		if err := d.WriteChar(ctx, digit, ch); err != nil {
			return errors.Wrapf(err, "writing digit %d of %q", digit, text)
		}
		digit++
	}
	return nil
}

// ReadText reads back the character codes of every digit in plane with one auto-incrementing
// read. PlaneBoth cannot be read.
func (d *Device) ReadText(ctx context.Context, plane Plane) (string, error) {
	if plane != PlaneP0 && plane != PlaneP1 {
		return "", newInvalidArgumentError("plane %d is not readable", plane)
	}
	start := digitRegister(plane, 0)
	codes := make([]byte, d.digits)
	if err := d.register(start).ReadBlockData(ctx, codes); err != nil {
		return "", d.transportError("write-read", start, err)
	}
	return string(codes), nil
}

// ClearDigit blanks digit in both planes.
func (d *Device) ClearDigit(ctx context.Context, digit int) error {
	if err := d.validateDigit(digit); err != nil {
		return err
	}
	return d.writeRegister(ctx, digitRegister(PlaneBoth, digit), blank)
}

// ClearAll blanks every digit in both planes with a single auto-incrementing write.
func (d *Device) ClearAll(ctx context.Context) error {
	blanks := make([]byte, d.digits)
	for i := range blanks {
		blanks[i] = blank
	}
	reg := d.register(RegDigit0BothPlanes)
	if err := reg.WriteBlockData(ctx, blanks); err != nil {
		return d.transportError("write", RegDigit0BothPlanes, err)
	}
	return nil
}

// SetScanLimit sets how many digits, starting at digit 0, the chip multiplexes.
func (d *Device) SetScanLimit(ctx context.Context, digits int) error {
	if digits < 1 || digits > MaxDigits {
		return newInvalidArgumentError("scan limit %d outside [1, %d]", digits, MaxDigits)
	}
	return d.writeRegister(ctx, RegScanLimit, byte(digits-1))
}

// SetDigitType configures which digits are 14-segment digits.
func (d *Device) SetDigitType(ctx context.Context, digitType DigitType) error {
	return d.writeRegister(ctx, RegDigitType, byte(digitType))
}

// SetDecodeMode configures hexadecimal decoding of 7-segment digits.
func (d *Device) SetDecodeMode(ctx context.Context, mode DecodeMode) error {
	return d.writeRegister(ctx, RegDecodeMode, byte(mode))
}

// SetPinMode configures GPIO port P0 to P4 as input or output. The other ports keep their mode.
func (d *Device) SetPinMode(ctx context.Context, port int, mode PinMode) error {
	if port < 0 || port > maxPort {
		return newInvalidArgumentError("port %d outside [0, %d]", port, maxPort)
	}
	return d.updateRegister(ctx, RegPortConfiguration, func(ports byte) byte {
		return setBit(ports, uint(port), mode == PinInput)
	})
}

// DisplayTest lights every segment at full intensity while enabled, without touching the digit
// registers.
func (d *Device) DisplayTest(ctx context.Context, enable bool) error {
	if enable {
		return d.writeRegister(ctx, RegDisplayTest, displayTestOn)
	}
	return d.writeRegister(ctx, RegDisplayTest, displayTestOff)
}

func (d *Device) validateDigit(digit int) error {
	if digit < 0 || digit >= d.digits {
		return newInvalidArgumentError("digit %d outside [0, %d]", digit, d.digits-1)
	}
	return nil
}

func validateIntensity(level int) error {
	if level < 0 || level > MaxIntensity {
		return newInvalidArgumentError("intensity %d outside [0, %d]", level, MaxIntensity)
	}
	return nil
}

func (d *Device) register(reg Register) *buses.I2CRegister {
	return &buses.I2CRegister{Bus: d.bus, Addr: d.addr, Register: byte(reg)}
}

func (d *Device) writeRegister(ctx context.Context, reg Register, data byte) error {
	if err := d.register(reg).WriteByteData(ctx, data); err != nil {
		return d.transportError("write", reg, err)
	}
	return nil
}

func (d *Device) readRegister(ctx context.Context, reg Register) (byte, error) {
	data, err := d.register(reg).ReadByteData(ctx)
	if err != nil {
		return 0, d.transportError("write-read", reg, err)
	}
	return data, nil
}

// updateRegister reads reg, applies modify and writes the result back, even when unchanged.
func (d *Device) updateRegister(ctx context.Context, reg Register, modify func(byte) byte) error {
	current, err := d.readRegister(ctx, reg)
	if err != nil {
		return err
	}
	return d.writeRegister(ctx, reg, modify(current))
}

func (d *Device) transportError(op string, reg Register, err error) error {
	return &TransportError{Op: op, Addr: d.addr, Register: reg, Err: err}
}
