package log

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger = zap.NewNop()

type (
	Field = zap.Field
	Level = zapcore.Level
)

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
)

var (
	String   = zap.String
	Int      = zap.Int
	Float64  = zap.Float64
	Bool     = zap.Bool
	Duration = zap.Duration
	Any      = zap.Any
)

func ErrorField(err error) Field { return zap.Error(err) }

func InitProductionLogger() {
	Logger, _ = zap.NewProduction()
}

func InitDevelopmentLogger() {
	Logger, _ = zap.NewDevelopment()
}

// ParseLevel accepts the zap level names (debug, info, warn, error).
func ParseLevel(s string) (Level, error) {
	return zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
}

// InitLogger builds the global logger. format is "text" for the console
// encoder or "json".
func InitLogger(level, format string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	var cfg zap.Config
	switch format {
	case "json":
		cfg = zap.NewProductionConfig()
	case "", "text":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.TimeOnly)
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	Logger = l
	return nil
}

func Sync() { _ = Logger.Sync() }

func Debug(msg string, fields ...Field) { Logger.Debug(msg, fields...) }
func Info(msg string, fields ...Field)  { Logger.Info(msg, fields...) }
func Warn(msg string, fields ...Field)  { Logger.Warn(msg, fields...) }
func Error(msg string, fields ...Field) { Logger.Error(msg, fields...) }
func Fatal(msg string, fields ...Field) { Logger.Fatal(msg, fields...) }
