package logger

import (
	"context"
	"io"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

type ContextKey string

const LoggerCtxKey ContextKey = "logger"

var defaultLogger Logger = NewLogger(nil)

type (
	LogLevel string
	// Logger defines the interface for structured logging
	Logger interface {
		Debug(msg string, keyvals ...any)
		Info(msg string, keyvals ...any)
		Warn(msg string, keyvals ...any)
		Error(msg string, keyvals ...any)
		With(keyvals ...any) Logger
	}

	loggerImpl struct {
		charmLogger *charmlog.Logger
	}
)

const (
	DebugLevel    LogLevel = "debug"
	InfoLevel     LogLevel = "info"
	WarnLevel     LogLevel = "warn"
	ErrorLevel    LogLevel = "error"
	DisabledLevel LogLevel = "disabled"
)

func (c LogLevel) String() string {
	return string(c)
}

func (c LogLevel) ToCharmlogLevel() charmlog.Level {
	switch c {
	case DebugLevel:
		return charmlog.DebugLevel
	case InfoLevel:
		return charmlog.InfoLevel
	case WarnLevel:
		return charmlog.WarnLevel
	case ErrorLevel:
		return charmlog.ErrorLevel
	case DisabledLevel:
		return charmlog.Level(1000)
	default:
		return charmlog.InfoLevel
	}
}

// ParseLevel maps a flag value to a LogLevel, falling back to InfoLevel.
func ParseLevel(value string) LogLevel {
	switch level := LogLevel(strings.ToLower(strings.TrimSpace(value))); level {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel, DisabledLevel:
		return level
	default:
		return InfoLevel
	}
}

func (l *loggerImpl) Debug(msg string, keyvals ...any) {
	l.charmLogger.Debug(msg, keyvals...)
}

func (l *loggerImpl) Info(msg string, keyvals ...any) {
	l.charmLogger.Info(msg, keyvals...)
}

func (l *loggerImpl) Warn(msg string, keyvals ...any) {
	l.charmLogger.Warn(msg, keyvals...)
}

func (l *loggerImpl) Error(msg string, keyvals ...any) {
	l.charmLogger.Error(msg, keyvals...)
}

func (l *loggerImpl) With(keyvals ...any) Logger {
	return &loggerImpl{charmLogger: l.charmLogger.With(keyvals...)}
}

// Config controls where and how log records are written.
// Output defaults to stderr: stdout carries the child process and the result document.
type Config struct {
	Level      LogLevel
	Output     io.Writer
	JSON       bool
	AddSource  bool
	TimeFormat string
}

func DefaultConfig() *Config {
	return &Config{
		Level:      InfoLevel,
		Output:     os.Stderr,
		JSON:       false,
		AddSource:  false,
		TimeFormat: "15:04:05",
	}
}

func TestConfig() *Config {
	return &Config{
		Level:      DisabledLevel,
		Output:     io.Discard,
		JSON:       false,
		AddSource:  false,
		TimeFormat: "15:04:05",
	}
}

func NewLogger(cfg *Config) Logger {
	if cfg == nil {
		cfg = DefaultConfig()
		if IsTestEnvironment() {
			cfg = TestConfig()
		}
	}
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	charmLogger := charmlog.NewWithOptions(output, charmlog.Options{
		ReportCaller:    cfg.AddSource,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           cfg.Level.ToCharmlogLevel(),
	})
	if cfg.JSON {
		charmLogger.SetFormatter(charmlog.JSONFormatter)
	} else {
		charmLogger.SetFormatter(charmlog.TextFormatter)
		charmLogger.SetStyles(getDefaultStyles())
	}
	return &loggerImpl{charmLogger: charmLogger}
}

// NewForTests returns a logger that discards everything.
func NewForTests() Logger {
	return NewLogger(TestConfig())
}

// IsTestEnvironment reports whether the binary is a go test binary.
func IsTestEnvironment() bool {
	if len(os.Args) == 0 {
		return false
	}
	return strings.HasSuffix(os.Args[0], ".test") || strings.Contains(os.Args[0], "/_test/")
}

func ContextWithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, LoggerCtxKey, l)
}

func FromContext(ctx context.Context) Logger {
	if ctx == nil {
		return defaultLogger
	}
	if l, ok := ctx.Value(LoggerCtxKey).(Logger); ok && l != nil {
		return l
	}
	return defaultLogger
}
