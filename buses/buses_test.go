package buses_test

import (
	"context"
	"errors"
	"testing"

	"go.viam.com/test"

	"go.viam.com/max6955/buses"
	"go.viam.com/max6955/logging"
	"go.viam.com/max6955/testutils/inject"
)

func TestI2CRegister(t *testing.T) {
	ctx := context.Background()
	var writes [][]byte
	var addrs []byte
	bus := &inject.I2C{}
	bus.WriteFunc = func(ctx context.Context, addr byte, tx []byte) error {
		addrs = append(addrs, addr)
		writes = append(writes, append([]byte(nil), tx...))
		return nil
	}
	bus.WriteReadFunc = func(ctx context.Context, addr byte, tx, rx []byte) error {
		addrs = append(addrs, addr)
		test.That(t, tx, test.ShouldResemble, []byte{0x04})
		test.That(t, len(rx), test.ShouldEqual, 1)
		rx[0] = 0x81
		return nil
	}

	reg := &buses.I2CRegister{Bus: bus, Addr: 0x60, Register: 0x04}
	data, err := reg.ReadByteData(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, data, test.ShouldEqual, byte(0x81))

	test.That(t, reg.WriteByteData(ctx, 0x01), test.ShouldBeNil)
	test.That(t, reg.WriteBlockData(ctx, []byte{0x20, 0x20}), test.ShouldBeNil)
	test.That(t, writes, test.ShouldResemble, [][]byte{{0x04, 0x01}, {0x04, 0x20, 0x20}})
	test.That(t, addrs, test.ShouldResemble, []byte{0x60, 0x60, 0x60})

	busErr := errors.New("nack")
	bus.WriteReadFunc = func(ctx context.Context, addr byte, tx, rx []byte) error {
		return busErr
	}
	_, err = reg.ReadByteData(ctx)
	test.That(t, err, test.ShouldEqual, busErr)
}

func TestLoggingI2C(t *testing.T) {
	ctx := context.Background()
	logger, logs := logging.NewObservedTestLogger(t)

	busErr := errors.New("nack")
	bus := &inject.I2C{}
	bus.WriteFunc = func(ctx context.Context, addr byte, tx []byte) error {
		if addr == 0x61 {
			return busErr
		}
		return nil
	}
	bus.WriteReadFunc = func(ctx context.Context, addr byte, tx, rx []byte) error {
		rx[0] = 0x01
		return nil
	}
	logged := buses.NewLoggingI2C(bus, logger)

	test.That(t, logged.Write(ctx, 0x60, []byte{0x21, 'A'}), test.ShouldBeNil)
	test.That(t, logged.Write(ctx, 0x61, []byte{0x02, 0x0F}), test.ShouldEqual, busErr)
	rx := make([]byte, 1)
	test.That(t, logged.WriteRead(ctx, 0x60, []byte{0x04}, rx), test.ShouldBeNil)
	test.That(t, rx, test.ShouldResemble, []byte{0x01})

	test.That(t, logs.Len(), test.ShouldEqual, 3)
	entries := logs.All()

	test.That(t, entries[0].Message, test.ShouldEqual, "i2c write")
	test.That(t, entries[0].ContextMap()["addr"], test.ShouldEqual, "0x60")
	test.That(t, entries[0].ContextMap()["tx"], test.ShouldEqual, "2141")

	test.That(t, entries[1].Message, test.ShouldEqual, "i2c write failed")
	test.That(t, entries[1].ContextMap()["error"], test.ShouldEqual, "nack")

	test.That(t, entries[2].Message, test.ShouldEqual, "i2c write-read")
	test.That(t, entries[2].ContextMap()["rx"], test.ShouldEqual, "01")
}
