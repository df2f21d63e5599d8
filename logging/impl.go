package logging

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type logger struct {
	name      string
	level     AtomicLevel
	inUTC     bool
	appenders []Appender
}

func (l *logger) AddAppender(appender Appender) {
	l.appenders = append(l.appenders, appender)
}

func (l *logger) SetLevel(level Level) {
	l.level.Set(level)
}

func (l *logger) GetLevel() Level {
	return l.level.Get()
}

// Sublogger starts at the parent's current level; later level changes do not propagate.
func (l *logger) Sublogger(subname string) Logger {
	name := subname
	if l.name != "" {
		name = l.name + "." + subname
	}
	return &logger{
		name:      name,
		level:     NewAtomicLevelAt(l.level.Get()),
		inUTC:     l.inUTC,
		appenders: l.appenders,
	}
}

func (l *logger) Sync() error {
	var err error
	for _, appender := range l.appenders {
		err = multierr.Append(err, appender.Sync())
	}
	return err
}

func (l *logger) Debug(args ...interface{}) {
	l.print(DEBUG, args)
}

func (l *logger) Debugf(template string, args ...interface{}) {
	l.printf(DEBUG, template, args)
}

func (l *logger) Debugw(msg string, keysAndValues ...interface{}) {
	l.printw(DEBUG, msg, keysAndValues)
}

func (l *logger) Info(args ...interface{}) {
	l.print(INFO, args)
}

func (l *logger) Infof(template string, args ...interface{}) {
	l.printf(INFO, template, args)
}

func (l *logger) Infow(msg string, keysAndValues ...interface{}) {
	l.printw(INFO, msg, keysAndValues)
}

func (l *logger) Warn(args ...interface{}) {
	l.print(WARN, args)
}

func (l *logger) Warnf(template string, args ...interface{}) {
	l.printf(WARN, template, args)
}

func (l *logger) Warnw(msg string, keysAndValues ...interface{}) {
	l.printw(WARN, msg, keysAndValues)
}

func (l *logger) Error(args ...interface{}) {
	l.print(ERROR, args)
}

func (l *logger) Errorf(template string, args ...interface{}) {
	l.printf(ERROR, template, args)
}

func (l *logger) Errorw(msg string, keysAndValues ...interface{}) {
	l.printw(ERROR, msg, keysAndValues)
}

// The Fatal forms log at ERROR regardless of the level, then exit.

func (l *logger) Fatal(args ...interface{}) {
	l.fatal(fmt.Sprint(args...), nil)
}

func (l *logger) Fatalf(template string, args ...interface{}) {
	l.fatal(fmt.Sprintf(template, args...), nil)
}

func (l *logger) Fatalw(msg string, keysAndValues ...interface{}) {
	l.fatal(msg, toFields(keysAndValues))
}

func (l *logger) fatal(msg string, fields []zapcore.Field) {
	l.emit(ERROR, msg, fields)
	os.Exit(1)
}

func (l *logger) print(level Level, args []interface{}) {
	if level >= l.level.Get() {
		l.emit(level, fmt.Sprint(args...), nil)
	}
}

func (l *logger) printf(level Level, template string, args []interface{}) {
	if level >= l.level.Get() {
		l.emit(level, fmt.Sprintf(template, args...), nil)
	}
}

func (l *logger) printw(level Level, msg string, keysAndValues []interface{}) {
	if level >= l.level.Get() {
		l.emit(level, msg, toFields(keysAndValues))
	}
}

// emit must be called exactly two frames below the exported logging method so that the recorded
// caller is the code that logged.
func (l *logger) emit(level Level, msg string, fields []zapcore.Field) {
	entry := zapcore.Entry{
		LoggerName: l.name,
		Time:       time.Now(),
		Level:      level.AsZap(),
		Message:    msg,
		Caller:     callerAt(3),
	}
	if l.inUTC {
		entry.Time = entry.Time.UTC()
	}
	for _, appender := range l.appenders {
		if err := appender.Write(entry, fields); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

// toFields pairs up alternating keys and values. A trailing key without a value is kept with a
// placeholder value.
func toFields(keysAndValues []interface{}) []zapcore.Field {
	fields := make([]zapcore.Field, 0, (len(keysAndValues)+1)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		if i+1 == len(keysAndValues) {
			fields = append(fields, zap.String(key, "!MISSING_VALUE"))
			break
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}

func callerAt(skip int) zapcore.EntryCaller {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return zapcore.EntryCaller{}
	}
	caller := zapcore.EntryCaller{Defined: true, PC: pc, File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		caller.Function = fn.Name()
	}
	return caller
}
