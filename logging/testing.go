package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

// tbAppender sends console lines to a test's log so that output stays attached to the test that
// produced it.
type tbAppender struct {
	tb testing.TB
}

// NewTestAppender returns an Appender writing through tb.Log.
func NewTestAppender(tb testing.TB) Appender {
	return tbAppender{tb: tb}
}

func (app tbAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	app.tb.Helper()
	line, err := formatEntry(entry, fields)
	app.tb.Log(line)
	return err
}

func (app tbAppender) Sync() error {
	return nil
}
