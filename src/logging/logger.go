// Package logging is a small leveled logger shared by the commands and the
// render packages. Messages go to stderr through zap; user-facing progress
// lines are printed by the callers on stdout.
package logging

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents severity.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]LogLevel{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

var zapLevels = map[LogLevel]zapcore.Level{
	LevelDebug: zapcore.DebugLevel,
	LevelInfo:  zapcore.InfoLevel,
	LevelWarn:  zapcore.WarnLevel,
	LevelError: zapcore.ErrorLevel,
}

var (
	currentLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	baseLogger   atomic.Pointer[zap.Logger]
)

func init() {
	baseLogger.Store(newLogger(zapcore.Lock(os.Stderr)))
}

func newLogger(w zapcore.WriteSyncer) *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000000")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), w, currentLevel)
	return zap.New(core)
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w zapcore.WriteSyncer) {
	baseLogger.Store(newLogger(w))
}

// Logger exposes the underlying zap logger.
func Logger() *zap.Logger { return baseLogger.Load() }

// SetLogLevel parses and sets the global log level. Unknown names are ignored.
func SetLogLevel(s string) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return
	}
	currentLevel.SetLevel(zapLevels[l])
}

// GetLogLevel returns the current global log level.
func GetLogLevel() LogLevel {
	for l, zl := range zapLevels {
		if zl == currentLevel.Level() {
			return l
		}
	}
	return LevelInfo
}

func logf(l LogLevel, format string, args ...interface{}) {
	lg := baseLogger.Load()
	if !lg.Core().Enabled(zapLevels[l]) {
		return
	}
	// Format only when there are args so literal % in pre-formatted strings survives.
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	switch l {
	case LevelDebug:
		lg.Debug(msg)
	case LevelWarn:
		lg.Warn(msg)
	case LevelError:
		lg.Error(msg)
	default:
		lg.Info(msg)
	}
}

func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }

// TimeTrack logs the duration of a phase at debug level.
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start))
}
