// Package main is a command line tool for a MAX6955 display on a local I2C bus.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"gopkg.in/natefinch/lumberjack.v2"

	"go.viam.com/max6955/buses"
	"go.viam.com/max6955/logging"
	"go.viam.com/max6955/max6955"
)

const (
	// Flags.
	flagBus     = "bus"
	flagAddr    = "addr"
	flagDigits  = "digits"
	flagSpeedHz = "speed-hz"
	flagConfig  = "config"
	flagProbe   = "probe"
	flagDebug   = "debug"
	flagLogFile = "log-file"
	flagDigit   = "digit"
	flagEnable  = "enable"
	flagFast    = "fast"

	defaultBus = "1"
)

// closableBus is an I2C bus the command owns and must release.
type closableBus interface {
	buses.I2C
	io.Closer
}

// openBus is replaced in tests.
var openBus = func(name string, speedHz int) (closableBus, error) {
	return buses.OpenPeriphI2C(name, speedHz)
}

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out, errOut io.Writer) *cli.App {
	var logger logging.Logger
	var logFile *lumberjack.Logger

	withDevice := func(c *cli.Context, fn func(ctx context.Context, dev *max6955.Device) error) (err error) {
		conf, err := loadConfig(c)
		if err != nil {
			return err
		}
		bus, err := openBus(conf.I2CBus, conf.I2CSpeedHz)
		if err != nil {
			return err
		}
		defer func() {
			err = multierr.Combine(err, bus.Close())
		}()

		var i2c buses.I2C = bus
		if c.Bool(flagDebug) {
			i2c = buses.NewLoggingI2C(bus, logger.Sublogger("i2c"))
		}
		logger.Debugw("opening display", "bus", conf.I2CBus, "addr", fmt.Sprintf("0x%02X", conf.Address()),
			"digits", conf.DigitCount())
		dev, err := max6955.New(c.Context, i2c, conf)
		if err != nil {
			return err
		}
		return fn(c.Context, dev)
	}

	return &cli.App{
		Name:      "max6955",
		Usage:     "drive a MAX6955 LED display over I2C",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagBus,
				Value: defaultBus,
				Usage: "I2C bus name or number",
			},
			&cli.StringFlag{
				Name:  flagAddr,
				Value: "0x60",
				Usage: "device address, 0x60 to 0x6F",
			},
			&cli.IntFlag{
				Name:  flagDigits,
				Usage: "number of digits wired, 1 to 8 (default 8)",
			},
			&cli.IntFlag{
				Name:  flagSpeedHz,
				Usage: "bus clock in Hz (default: bus default)",
			},
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load device attributes from JSON `FILE`; flags override",
			},
			&cli.BoolFlag{
				Name:  flagProbe,
				Usage: "check the device answers before running the command",
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging of every bus transaction",
			},
			&cli.StringFlag{
				Name:  flagLogFile,
				Usage: "also write logs to `FILE`, rotated every 10MB",
			},
		},
		Before: func(c *cli.Context) error {
			logger = logging.NewBlankLogger("max6955")
			logger.AddAppender(logging.NewWriterAppender(errOut))
			if path := c.String(flagLogFile); path != "" {
				logFile = &lumberjack.Logger{
					Filename:   path,
					MaxSize:    10,
					MaxBackups: 2,
					Compress:   true,
				}
				logger.AddAppender(logging.NewWriterAppender(logFile))
			}
			if !c.Bool(flagDebug) {
				logger.SetLevel(logging.INFO)
			}
			return nil
		},
		After: func(c *cli.Context) error {
			if logger != nil {
				//nolint:errcheck
				logger.Sync()
			}
			if logFile != nil {
				return logFile.Close()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "on",
				Usage: "leave shutdown and light the display",
				Action: func(c *cli.Context) error {
					return withDevice(c, func(ctx context.Context, dev *max6955.Device) error {
						return dev.Powerup(ctx)
					})
				},
			},
			{
				Name:  "off",
				Usage: "shut the display down, keeping its contents",
				Action: func(c *cli.Context) error {
					return withDevice(c, func(ctx context.Context, dev *max6955.Device) error {
						return dev.Shutdown(ctx)
					})
				},
			},
			{
				Name:      "intensity",
				Usage:     "set brightness, globally or for one digit",
				ArgsUsage: "<0-15>",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  flagDigit,
						Value: -1,
						Usage: "only set the brightness of this digit",
					},
				},
				Action: func(c *cli.Context) error {
					level, err := intArg(c, "level")
					if err != nil {
						return err
					}
					return withDevice(c, func(ctx context.Context, dev *max6955.Device) error {
						if !c.IsSet(flagDigit) {
							if err := dev.SetGlobalIntensity(ctx, level); err != nil {
								return err
							}
							return dev.SetIntensityMode(ctx, max6955.IntensityGlobal)
						}
						if err := dev.SetDigitIntensity(ctx, c.Int(flagDigit), level); err != nil {
							return err
						}
						return dev.SetIntensityMode(ctx, max6955.IntensityIndividual)
					})
				},
			},
			{
				Name:  "blink",
				Usage: "enable or disable blinking",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  flagEnable,
						Usage: "blink instead of showing plane P0 steadily",
					},
					&cli.BoolFlag{
						Name:  flagFast,
						Usage: "blink with a 0.5s period instead of 1s",
					},
				},
				Action: func(c *cli.Context) error {
					mode := max6955.BlinkDisable
					if c.Bool(flagEnable) {
						mode = max6955.BlinkEnable
					}
					rate := max6955.BlinkSlow
					if c.Bool(flagFast) {
						rate = max6955.BlinkFast
					}
					return withDevice(c, func(ctx context.Context, dev *max6955.Device) error {
						logger.Debugw("setting blink", "mode", mode, "rate", rate)
						return dev.SetBlink(ctx, mode, rate)
					})
				},
			},
			{
				Name:      "write",
				Usage:     "clear the display and write text from digit 0",
				ArgsUsage: "<text>",
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return errors.New("text argument required")
					}
					text := strings.Join(c.Args().Slice(), " ")
					return withDevice(c, func(ctx context.Context, dev *max6955.Device) error {
						if err := dev.ClearAll(ctx); err != nil {
							return err
						}
						return dev.WriteString(ctx, text)
					})
				},
			},
			{
				Name:  "clear",
				Usage: "blank the display or one digit",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  flagDigit,
						Value: -1,
						Usage: "only blank this digit",
					},
				},
				Action: func(c *cli.Context) error {
					return withDevice(c, func(ctx context.Context, dev *max6955.Device) error {
						if c.IsSet(flagDigit) {
							return dev.ClearDigit(ctx, c.Int(flagDigit))
						}
						return dev.ClearAll(ctx)
					})
				},
			},
			{
				Name:      "test",
				Usage:     "light every segment, or return to normal operation",
				ArgsUsage: "<on|off>",
				Action: func(c *cli.Context) error {
					var enable bool
					switch c.Args().First() {
					case "on":
						enable = true
					case "off":
					default:
						return errors.Errorf("expected on or off, got %q", c.Args().First())
					}
					return withDevice(c, func(ctx context.Context, dev *max6955.Device) error {
						return dev.DisplayTest(ctx, enable)
					})
				},
			},
			{
				Name:  "status",
				Usage: "print the configuration register and displayed text",
				Action: func(c *cli.Context) error {
					return withDevice(c, func(ctx context.Context, dev *max6955.Device) error {
						state, err := dev.ReadConfiguration(ctx)
						if err != nil {
							return err
						}
						text, err := dev.ReadText(ctx, max6955.PlaneP0)
						if err != nil {
							return err
						}
						t := table.NewWriter()
						t.AppendHeader(table.Row{"Field", "Value"})
						t.AppendRows([]table.Row{
							{"address", fmt.Sprintf("0x%02X", dev.Address())},
							{"configuration", fmt.Sprintf("0x%02X", state.Raw)},
							{"powered up", state.PoweredUp},
							{"blink", fmt.Sprintf("%s (%s)", state.Blink, state.BlinkRate)},
							{"intensity mode", intensityModeName(state.IntensityMode)},
							{"text", fmt.Sprintf("%q", text)},
						})
						fmt.Fprintln(out, t.Render())
						return nil
					})
				},
			},
			{
				Name:  "font",
				Usage: "list the characters the display can show",
				Action: func(c *cli.Context) error {
					t := table.NewWriter()
					t.AppendHeader(table.Row{"Char", "Code", "Segments"})
					for _, ch := range max6955.Supported() {
						glyph, err := max6955.Encode(ch)
						if err != nil {
							return err
						}
						t.AppendRow(table.Row{fmt.Sprintf("%q", ch), fmt.Sprintf("0x%02X", glyph.Code), fmt.Sprintf("%015b", glyph.Segments)})
					}
					fmt.Fprintln(out, t.Render())
					return nil
				},
			},
			{
				Name:  "schema",
				Usage: "print the JSON schema of the --config file",
				Action: func(c *cli.Context) error {
					data, err := json.MarshalIndent(jsonschema.Reflect(&max6955.Config{}), "", "  ")
					if err != nil {
						return err
					}
					fmt.Fprintln(out, string(data))
					return nil
				},
			},
		},
	}
}

// loadConfig merges the --config file with the global flags and validates the result.
func loadConfig(c *cli.Context) (*max6955.Config, error) {
	attributes := map[string]interface{}{}
	if path := c.String(flagConfig); path != "" {
		//nolint:gosec
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "error reading config file")
		}
		if err := json.Unmarshal(data, &attributes); err != nil {
			return nil, errors.Wrapf(err, "error parsing config file %q", path)
		}
	}
	if c.IsSet(flagBus) || attributes["i2c_bus"] == nil {
		attributes["i2c_bus"] = c.String(flagBus)
	}
	if c.IsSet(flagAddr) || attributes["i2c_addr"] == nil {
		attributes["i2c_addr"] = c.String(flagAddr)
	}
	if c.IsSet(flagDigits) {
		attributes["digits"] = c.Int(flagDigits)
	}
	if c.IsSet(flagSpeedHz) {
		attributes["i2c_speed_hz"] = c.Int(flagSpeedHz)
	}
	if c.IsSet(flagProbe) {
		attributes["probe"] = c.Bool(flagProbe)
	}
	return max6955.ConfigFromAttributes(attributes)
}

func intArg(c *cli.Context, name string) (int, error) {
	if c.NArg() != 1 {
		return 0, errors.Errorf("expected exactly one %s argument", name)
	}
	value, err := strconv.Atoi(c.Args().First())
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", name)
	}
	return value, nil
}

func intensityModeName(mode max6955.IntensityMode) string {
	if mode == max6955.IntensityIndividual {
		return "individual"
	}
	return "global"
}
