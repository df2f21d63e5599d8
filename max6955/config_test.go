package max6955

import (
	"errors"
	"testing"

	"go.viam.com/test"
)

func TestConfigValidate(t *testing.T) {
	conf := &Config{}
	err := conf.Validate("path")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "i2c_bus")

	conf.I2CBus = "1"
	test.That(t, conf.Validate("path"), test.ShouldBeNil)
	test.That(t, conf.Address(), test.ShouldEqual, byte(DefaultAddress))
	test.That(t, conf.DigitCount(), test.ShouldEqual, MaxDigits)

	for _, bad := range []Config{
		{I2CBus: "1", I2CAddr: 0x5F},
		{I2CBus: "1", I2CAddr: 0x70},
		{I2CBus: "1", Digits: -1},
		{I2CBus: "1", Digits: 9},
		{I2CBus: "1", I2CSpeedHz: -100},
	} {
		err := bad.Validate("path")
		test.That(t, errors.Is(err, ErrInvalidArgument), test.ShouldBeTrue)
		test.That(t, err.Error(), test.ShouldContainSubstring, "path")
	}

	conf = &Config{I2CBus: "1", I2CAddr: 0x6F, Digits: 1, I2CSpeedHz: 400000}
	test.That(t, conf.Validate("path"), test.ShouldBeNil)
	test.That(t, conf.Address(), test.ShouldEqual, byte(0x6F))
	test.That(t, conf.DigitCount(), test.ShouldEqual, 1)
}

func TestConfigFromAttributes(t *testing.T) {
	conf, err := ConfigFromAttributes(map[string]interface{}{
		"i2c_bus":      "1",
		"i2c_addr":     0x61,
		"i2c_speed_hz": "400000",
		"digits":       6.0,
		"probe":        true,
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf, test.ShouldResemble, &Config{
		I2CBus:     "1",
		I2CAddr:    0x61,
		I2CSpeedHz: 400000,
		Digits:     6,
		Probe:      true,
	})

	_, err = ConfigFromAttributes(map[string]interface{}{"i2c_bus": "1", "brightness": 3})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "brightness")

	_, err = ConfigFromAttributes(map[string]interface{}{"i2c_bus": "1", "digits": 12})
	test.That(t, errors.Is(err, ErrInvalidArgument), test.ShouldBeTrue)

	_, err = ConfigFromAttributes(map[string]interface{}{"i2c_addr": 0x60})
	test.That(t, err, test.ShouldNotBeNil)
}
