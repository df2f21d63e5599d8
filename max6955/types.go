package max6955

// DigitType configures which digits are 14-segment and which are 16-segment (or paired
// 7-segment) digits (datasheet table 14).
type DigitType byte

const (
	// Seg7or16 makes digits 7 to 0 16-segment or 7-segment digits.
	Seg7or16 DigitType = 0x00
	// Digit0Seg14 makes digit 0 a 14-segment digit, digits 7 to 1 16-segment or 7-segment digits.
	Digit0Seg14 DigitType = 0x01
	// Digits0to2Seg14 makes digits 2 to 0 14-segment digits, digits 7 to 3 16-segment or 7-segment
	// digits.
	Digits0to2Seg14 DigitType = 0x07
	// Seg14 makes digits 7 to 0 14-segment digits.
	Seg14 DigitType = 0xFF
)

// DecodeMode selects hexadecimal decoding for 7-segment digit pairs (datasheet table 15). It has
// no effect on 14-segment and 16-segment digits, which always use the font.
type DecodeMode byte

const (
	// NoDecode disables decoding for digit pairs 7 to 0.
	NoDecode DecodeMode = 0x00
	// HexDigit0 decodes digit pair 0 only.
	HexDigit0 DecodeMode = 0x01
	// HexDigits0to2 decodes digit pairs 2 to 0.
	HexDigits0to2 DecodeMode = 0x07
	// HexAll decodes digit pairs 7 to 0.
	HexAll DecodeMode = 0xFF
)

// PinMode is the direction of a GPIO port pin.
type PinMode int

const (
	// PinOutput configures the port as an output.
	PinOutput PinMode = iota
	// PinInput configures the port as an input.
	PinInput
)

// BlinkMode enables or disables blinking.
type BlinkMode int

const (
	// BlinkDisable stops blinking; plane P0 is displayed continuously.
	BlinkDisable BlinkMode = iota
	// BlinkEnable alternates between planes P0 and P1.
	BlinkEnable
)

func (m BlinkMode) String() string {
	if m == BlinkEnable {
		return "enable"
	}
	return "disable"
}

// BlinkRate is the blink period. It is encoded even when blinking is disabled.
type BlinkRate int

const (
	// BlinkSlow blinks with a 1s period.
	BlinkSlow BlinkRate = iota
	// BlinkFast blinks with a 0.5s period.
	BlinkFast
)

func (r BlinkRate) String() string {
	if r == BlinkFast {
		return "fast"
	}
	return "slow"
}

// IntensityMode selects whether brightness comes from the global intensity register or from the
// per-digit intensity registers.
type IntensityMode int

const (
	// IntensityGlobal uses the global intensity register for every digit.
	IntensityGlobal IntensityMode = iota
	// IntensityIndividual uses each digit's own intensity nibble.
	IntensityIndividual
)

// Plane is a set of digit data registers. With blinking enabled the chip alternates between
// displaying P0 and P1.
type Plane int

const (
	// PlaneP0 is displayed continuously when blinking is disabled.
	PlaneP0 Plane = iota
	// PlaneP1 is displayed during the off phase of a blink.
	PlaneP1
	// PlaneBoth writes P0 and P1 together.
	PlaneBoth
)

// ConfigState is the decoded content of the configuration register.
type ConfigState struct {
	// PoweredUp is false while the chip is in shutdown.
	PoweredUp     bool
	Blink         BlinkMode
	BlinkRate     BlinkRate
	IntensityMode IntensityMode
	// BlinkPhaseP1 reports that plane P1 is currently displayed.
	BlinkPhaseP1 bool
	// Raw is the register value as read.
	Raw byte
}

func decodeConfig(raw byte) ConfigState {
	state := ConfigState{
		PoweredUp:    bitSet(raw, configShutdownBit),
		BlinkPhaseP1: bitSet(raw, configBlinkPhaseBit),
		Raw:          raw,
	}
	if bitSet(raw, configBlinkEnableBit) {
		state.Blink = BlinkEnable
	}
	if bitSet(raw, configBlinkRateBit) {
		state.BlinkRate = BlinkFast
	}
	if bitSet(raw, configIntensityBit) {
		state.IntensityMode = IntensityIndividual
	}
	return state
}
