package buses

import (
	"context"
	"encoding/hex"

	"go.viam.com/max6955/logging"
)

type loggingI2C struct {
	bus    I2C
	logger logging.Logger
}

// NewLoggingI2C wraps bus so that every transaction is logged at debug level before its result is
// returned unchanged.
func NewLoggingI2C(bus I2C, logger logging.Logger) I2C {
	return &loggingI2C{bus: bus, logger: logger}
}

func (l *loggingI2C) Write(ctx context.Context, addr byte, tx []byte) error {
	err := l.bus.Write(ctx, addr, tx)
	if err != nil {
		l.logger.Debugw("i2c write failed", "addr", hexByte(addr), "tx", hex.EncodeToString(tx), "error", err)
		return err
	}
	l.logger.Debugw("i2c write", "addr", hexByte(addr), "tx", hex.EncodeToString(tx))
	return nil
}

func (l *loggingI2C) WriteRead(ctx context.Context, addr byte, tx, rx []byte) error {
	err := l.bus.WriteRead(ctx, addr, tx, rx)
	if err != nil {
		l.logger.Debugw("i2c write-read failed", "addr", hexByte(addr), "tx", hex.EncodeToString(tx), "error", err)
		return err
	}
	l.logger.Debugw("i2c write-read", "addr", hexByte(addr), "tx", hex.EncodeToString(tx), "rx", hex.EncodeToString(rx))
	return nil
}

func hexByte(b byte) string {
	return "0x" + hex.EncodeToString([]byte{b})
}
