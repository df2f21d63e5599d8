// Package inject provides test doubles whose behavior is injected per test.
package inject

import (
	"context"

	"go.viam.com/max6955/buses"
)

// I2C is an injected I2C bus.
type I2C struct {
	buses.I2C
	WriteFunc     func(ctx context.Context, addr byte, tx []byte) error
	WriteReadFunc func(ctx context.Context, addr byte, tx, rx []byte) error
}

// Write calls the injected Write or the real version.
func (s *I2C) Write(ctx context.Context, addr byte, tx []byte) error {
	if s.WriteFunc == nil {
		return s.I2C.Write(ctx, addr, tx)
	}
	return s.WriteFunc(ctx, addr, tx)
}

// WriteRead calls the injected WriteRead or the real version.
func (s *I2C) WriteRead(ctx context.Context, addr byte, tx, rx []byte) error {
	if s.WriteReadFunc == nil {
		return s.I2C.WriteRead(ctx, addr, tx, rx)
	}
	return s.WriteReadFunc(ctx, addr, tx, rx)
}
