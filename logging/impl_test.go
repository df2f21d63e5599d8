package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.viam.com/test"
)

type register struct {
	Addr  int
	Value int
	notes string
}

// nextLine splits the next console line into its tab separated columns.
func nextLine(t *testing.T, buf *bytes.Buffer) []string {
	t.Helper()
	line, err := buf.ReadString('\n')
	test.That(t, err, test.ShouldBeNil)
	return strings.Split(strings.TrimSuffix(line, "\n"), "\t")
}

// Lines look like:
//
//	2024-03-01T09:15:02.118Z	INFO	max6955	logging/impl_test.go:41	display on	{"addr":"0x60"}
func TestConsoleFormat(t *testing.T) {
	out := &bytes.Buffer{}
	logger := newLogger("max6955", DEBUG, true, NewWriterAppender(out))

	logger.Info("display on")
	cols := nextLine(t, out)
	test.That(t, cols, test.ShouldHaveLength, 5)
	test.That(t, cols[0], test.ShouldEndWith, "Z")
	test.That(t, len(cols[0]), test.ShouldEqual, len("2024-03-01T09:15:02.118Z"))
	test.That(t, cols[1], test.ShouldEqual, "INFO")
	test.That(t, cols[2], test.ShouldEqual, "max6955")
	test.That(t, cols[3], test.ShouldStartWith, "logging/impl_test.go:")
	test.That(t, cols[4], test.ShouldEqual, "display on")

	logger.Warnf("intensity %d clamped", 15)
	cols = nextLine(t, out)
	test.That(t, cols[1], test.ShouldEqual, "WARN")
	test.That(t, cols[3], test.ShouldStartWith, "logging/impl_test.go:")
	test.That(t, cols[4], test.ShouldEqual, "intensity 15 clamped")

	logger.Debugw("i2c write", "addr", "0x60", "reg", register{Addr: 0x04, Value: 0x01, notes: "hidden"})
	cols = nextLine(t, out)
	test.That(t, cols, test.ShouldHaveLength, 6)
	test.That(t, cols[1], test.ShouldEqual, "DEBUG")
	test.That(t, cols[3], test.ShouldStartWith, "logging/impl_test.go:")
	fields := map[string]interface{}{}
	test.That(t, json.Unmarshal([]byte(cols[5]), &fields), test.ShouldBeNil)
	test.That(t, fields, test.ShouldResemble, map[string]interface{}{
		"addr": "0x60",
		"reg":  map[string]interface{}{"Addr": 4.0, "Value": 1.0},
	})

	logger.Errorw("unpaired", "addr")
	cols = nextLine(t, out)
	test.That(t, cols[5], test.ShouldEqual, `{"addr":"!MISSING_VALUE"}`)
}

func TestUnnamedLogger(t *testing.T) {
	out := &bytes.Buffer{}
	logger := newLogger("", INFO, true, NewWriterAppender(out))
	logger.Error("no name")
	cols := nextLine(t, out)
	test.That(t, cols, test.ShouldHaveLength, 4)
	test.That(t, cols[3], test.ShouldEqual, "no name")
}

func TestLevelFiltering(t *testing.T) {
	out := &bytes.Buffer{}
	logger := newLogger("", WARN, true, NewWriterAppender(out))

	logger.Debug("dropped")
	logger.Infof("dropped %d", 1)
	test.That(t, out.Len(), test.ShouldEqual, 0)

	logger.Warn("kept")
	test.That(t, out.String(), test.ShouldContainSubstring, "WARN")
	test.That(t, out.String(), test.ShouldContainSubstring, "kept")

	logger.SetLevel(DEBUG)
	test.That(t, logger.GetLevel(), test.ShouldEqual, DEBUG)
	out.Reset()
	logger.Debugw("now kept", "addr", "0x60")
	test.That(t, out.String(), test.ShouldContainSubstring, `{"addr":"0x60"}`)
}

func TestSublogger(t *testing.T) {
	out := &bytes.Buffer{}
	parent := newLogger("max6955", INFO, true, NewWriterAppender(out))

	sub := parent.Sublogger("i2c")
	sub.Info("hello")
	test.That(t, out.String(), test.ShouldContainSubstring, "\tmax6955.i2c\t")

	sub.SetLevel(ERROR)
	test.That(t, parent.GetLevel(), test.ShouldEqual, INFO)

	test.That(t, newLogger("", INFO, true).Sublogger("i2c").(*logger).name, test.ShouldEqual, "i2c")
}

func TestObservedTestLogger(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	logger.Debugw("write", "addr", 0x60)
	logger.Errorf("failed %s", "badly")

	test.That(t, logs.Len(), test.ShouldEqual, 2)
	test.That(t, logs.FilterMessage("write").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterMessage("failed badly").Len(), test.ShouldEqual, 1)
	test.That(t, logger.Sync(), test.ShouldBeNil)
}

func TestLevelFromString(t *testing.T) {
	for _, tc := range []struct {
		in       string
		expected Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"Warning", WARN},
		{"error", ERROR},
	} {
		level, err := LevelFromString(tc.in)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, level, test.ShouldEqual, tc.expected)
		roundTrip, err := LevelFromString(level.String())
		test.That(t, err, test.ShouldBeNil)
		test.That(t, roundTrip, test.ShouldEqual, level)
	}

	_, err := LevelFromString("loud")
	test.That(t, err, test.ShouldNotBeNil)
}
