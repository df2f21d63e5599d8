package max6955

import "fmt"

// Register is a MAX6955 register address (datasheet table 7).
type Register byte

// Register addresses.
const (
	RegNoOp              Register = 0x00
	RegDecodeMode        Register = 0x01
	RegGlobalIntensity   Register = 0x02
	RegScanLimit         Register = 0x03
	RegConfiguration     Register = 0x04
	RegGPIOData          Register = 0x05
	RegPortConfiguration Register = 0x06
	RegDisplayTest       Register = 0x07
	RegKeyAMaskDebounce  Register = 0x08
	RegKeyBMaskDebounce  Register = 0x09
	RegKeyCMaskDebounce  Register = 0x0A
	RegKeyDMaskDebounce  Register = 0x0B
	RegDigitType         Register = 0x0C
	RegKeyBPressed       Register = 0x0D
	RegKeyCPressed       Register = 0x0E
	RegKeyDPressed       Register = 0x0F
	RegIntensity10       Register = 0x10
	RegIntensity32       Register = 0x11
	RegIntensity54       Register = 0x12
	RegIntensity76       Register = 0x13
	RegIntensity10a      Register = 0x14
	RegIntensity32a      Register = 0x15
	RegIntensity54a      Register = 0x16
	RegIntensity76a      Register = 0x17
	RegDigit0Plane0      Register = 0x20
	RegDigit0Plane1      Register = 0x40
	// Write only. Writes the digit in both planes at once.
	RegDigit0BothPlanes Register = 0x60
)

func (r Register) String() string {
	return fmt.Sprintf("0x%02X", byte(r))
}

// Configuration register bits (datasheet table 17).
//
// S (bit 0) is set for normal operation and cleared for shutdown. B (bit 2) selects the fast
// (0.5s) blink period. T (bit 4) resets the blink timing counters when written as 1. I (bit 6)
// selects per-digit intensity. P (bit 7) is read only and reflects the displayed blink phase.
const (
	configShutdownBit    = 0
	configBlinkRateBit   = 2
	configBlinkEnableBit = 3
	configBlinkTimingBit = 4
	configIntensityBit   = 6
	configBlinkPhaseBit  = 7
)

const (
	// MinAddress and MaxAddress bound the 7-bit addresses selectable with the AD0/AD1 pins
	// (datasheet table 5).
	MinAddress = 0x60
	MaxAddress = 0x6F
	// DefaultAddress is the address with AD0 and AD1 tied to GND.
	DefaultAddress = MinAddress

	// MaxDigits is the number of 14/16-segment digits one chip drives.
	MaxDigits = 8

	// MaxIntensity is the highest value of the 4-bit intensity fields.
	MaxIntensity = 15

	// maxPort is the highest GPIO port, P0 to P4.
	maxPort = 4

	displayTestOn  = 0x01
	displayTestOff = 0x00
)

func setBit(b byte, bit uint, set bool) byte {
	if set {
		return b | 1<<bit
	}
	return b &^ (1 << bit)
}

func bitSet(b byte, bit uint) bool {
	return b&(1<<bit) != 0
}

// digitRegister returns the data register of digit in the given plane.
func digitRegister(plane Plane, digit int) Register {
	switch plane {
	case PlaneP1:
		return RegDigit0Plane1 + Register(digit)
	case PlaneBoth:
		return RegDigit0BothPlanes + Register(digit)
	default:
		return RegDigit0Plane0 + Register(digit)
	}
}

// intensityRegister returns the register holding digit's intensity and the shift of its nibble.
// Even digits use the low nibble, odd digits the high nibble.
func intensityRegister(digit int) (Register, uint) {
	return RegIntensity10 + Register(digit/2), uint(digit%2) * 4
}
