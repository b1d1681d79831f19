package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Logger is the structured logger handed to every package.
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)

	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
	WithError(err error) Logger
}

// Config controls the root logger.
type Config struct {
	Level  string    // debug, info, warn, error
	Format string    // console or json
	Output io.Writer // defaults to stderr
}

type zeroLogger struct {
	z zerolog.Logger
}

var (
	mu   sync.RWMutex
	root = newZeroLogger(Config{Level: "warn", Format: "console"})
)

func newZeroLogger(cfg Config) zeroLogger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: !isTerminal(out)}
	}

	return zeroLogger{
		z: zerolog.New(out).Level(ParseLevel(cfg.Level)).With().Timestamp().Logger(),
	}
}

// Init replaces the root logger.
func Init(cfg Config) {
	l := newZeroLogger(cfg)

	mu.Lock()
	root = l
	mu.Unlock()
}

// SetVerbosity maps the CLI flags onto levels: --verbose shows everything,
// --debug shows info and above, otherwise only warnings and errors.
func SetVerbosity(debug, verbose bool) {
	level := "warn"
	switch {
	case verbose:
		level = "debug"
	case debug:
		level = "info"
	}

	mu.Lock()
	root = zeroLogger{z: root.z.Level(ParseLevel(level))}
	mu.Unlock()
}

// ParseLevel falls back to warn for unknown values.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "silent", "off":
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}

// Get returns the current root logger.
func Get() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}

func (l zeroLogger) Debug(msg string) { l.z.Debug().Msg(msg) }
func (l zeroLogger) Info(msg string)  { l.z.Info().Msg(msg) }
func (l zeroLogger) Warn(msg string)  { l.z.Warn().Msg(msg) }
func (l zeroLogger) Error(msg string) { l.z.Error().Msg(msg) }

func (l zeroLogger) WithField(key string, value interface{}) Logger {
	return zeroLogger{z: l.z.With().Interface(key, value).Logger()}
}

func (l zeroLogger) WithFields(fields map[string]interface{}) Logger {
	return zeroLogger{z: l.z.With().Fields(fields).Logger()}
}

func (l zeroLogger) WithError(err error) Logger {
	return zeroLogger{z: l.z.With().Err(err).Logger()}
}

func Debug(msg string) { Get().Debug(msg) }
func Info(msg string)  { Get().Info(msg) }
func Warn(msg string)  { Get().Warn(msg) }
func Error(msg string) { Get().Error(msg) }

func WithField(key string, value interface{}) Logger {
	return Get().WithField(key, value)
}

func WithFields(fields map[string]interface{}) Logger {
	return Get().WithFields(fields)
}

func WithError(err error) Logger {
	return Get().WithError(err)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
