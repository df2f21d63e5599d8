package max6955

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// Config describes how to reach one MAX6955 and how many digits it drives.
// Zero values select defaults.
type Config struct {
	I2CBus     string `json:"i2c_bus"`
	I2CAddr    int    `json:"i2c_addr,omitempty"`
	I2CSpeedHz int    `json:"i2c_speed_hz,omitempty"`
	Digits     int    `json:"digits,omitempty"`
	// Probe makes New read the configuration register to check the device answers.
	Probe bool `json:"probe,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (conf *Config) Validate(path string) error {
	if conf.I2CBus == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "i2c_bus")
	}
	return conf.validateDevice(path)
}

// validateDevice checks the fields the driver itself consumes. The bus name only matters to
// whoever opens the bus.
func (conf *Config) validateDevice(path string) error {
	if conf.I2CAddr != 0 && (conf.I2CAddr < MinAddress || conf.I2CAddr > MaxAddress) {
		return utils.NewConfigValidationError(path,
			newInvalidArgumentError("i2c_addr 0x%02X outside [0x%02X, 0x%02X]", conf.I2CAddr, MinAddress, MaxAddress))
	}
	if conf.Digits < 0 || conf.Digits > MaxDigits {
		return utils.NewConfigValidationError(path,
			newInvalidArgumentError("digits %d outside [1, %d]", conf.Digits, MaxDigits))
	}
	if conf.I2CSpeedHz < 0 {
		return utils.NewConfigValidationError(path,
			newInvalidArgumentError("i2c_speed_hz %d is negative", conf.I2CSpeedHz))
	}
	return nil
}

// Address returns the configured address, or DefaultAddress.
func (conf *Config) Address() byte {
	if conf.I2CAddr == 0 {
		return DefaultAddress
	}
	return byte(conf.I2CAddr)
}

// DigitCount returns the configured number of digits, or MaxDigits.
func (conf *Config) DigitCount() int {
	if conf.Digits == 0 {
		return MaxDigits
	}
	return conf.Digits
}

// ConfigFromAttributes converts an attribute map, such as one parsed from JSON, into a validated
// Config. Keys are the json field names; numeric strings like "0x61" are accepted.
func ConfigFromAttributes(attributes map[string]interface{}) (*Config, error) {
	var conf Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &conf,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return nil, errors.Wrap(err, "failed to decode max6955 attributes")
	}
	if err := conf.Validate("max6955"); err != nil {
		return nil, err
	}
	return &conf, nil
}
