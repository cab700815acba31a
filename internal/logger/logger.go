// Package logger wraps zerolog with the key/value call style used across
// sleepy-hyprland: Debug/Info/Warn take a message and field pairs, Error also
// takes the error being reported.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultLogDir  = "~/.local/share/sleepy-hyprland/logs"
	DefaultLogFile = "sleepy.log"
)

type Logger struct {
	zlog  zerolog.Logger
	file  *os.File
	level zerolog.Level
	outs  []io.Writer
}

type Option func(*Logger) error

// WithConsole enables coloured console logging on stderr
func WithConsole() Option {
	return func(l *Logger) error {
		l.outs = append(l.outs, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
		return nil
	}
}

// WithLevel sets the minimum level that is written
func WithLevel(level zerolog.Level) Option {
	return func(l *Logger) error {
		l.level = level
		return nil
	}
}

// WithFile appends plain-text logs to path, creating parent directories.
func WithFile(path string) Option {
	return func(l *Logger) error {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		l.file = f
		l.outs = append(l.outs, zerolog.ConsoleWriter{
			Out:        f,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
		return nil
	}
}

// WithWriter writes raw JSON events to w
func WithWriter(w io.Writer) Option {
	return func(l *Logger) error {
		l.outs = append(l.outs, w)
		return nil
	}
}

// DefaultLogPath returns the expanded default log file path
func DefaultLogPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	logDir := strings.Replace(DefaultLogDir, "~", homeDir, 1)
	return filepath.Join(logDir, DefaultLogFile), nil
}

// New creates a logger. Without any output option it writes JSON to stderr.
func New(opts ...Option) (*Logger, error) {
	l := &Logger{level: zerolog.InfoLevel}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			l.Close()
			return nil, fmt.Errorf("failed to apply logger option: %w", err)
		}
	}

	var out io.Writer
	switch len(l.outs) {
	case 0:
		out = os.Stderr
	case 1:
		out = l.outs[0]
	default:
		out = zerolog.MultiLevelWriter(l.outs...)
	}

	l.zlog = zerolog.New(out).Level(l.level).With().Timestamp().Logger()
	return l, nil
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop(), level: zerolog.Disabled}
}

// ParseLevel maps a config or flag value to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Close closes the log file, if one was opened
func (l *Logger) Close() error {
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// With returns a child logger that adds the given fields to every event.
// The child does not own the parent's file.
func (l *Logger) With(fields ...interface{}) *Logger {
	ctx := l.zlog.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		ctx = ctx.Interface(key, fields[i+1])
	}
	return &Logger{zlog: ctx.Logger(), level: l.level}
}

// addSourceContext adds file and line information to the event
func addSourceContext(e *zerolog.Event) *zerolog.Event {
	_, file, line, ok := runtime.Caller(2)
	if ok {
		return e.Str("file", filepath.Base(file)).Int("line", line)
	}
	return e
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...interface{}) {
	event := addSourceContext(l.zlog.Debug())
	logFields(event, fields...)
	event.Msg(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...interface{}) {
	event := addSourceContext(l.zlog.Info())
	logFields(event, fields...)
	event.Msg(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...interface{}) {
	event := addSourceContext(l.zlog.Warn())
	logFields(event, fields...)
	event.Msg(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, err error, fields ...interface{}) {
	event := addSourceContext(l.zlog.Error())
	if err != nil {
		event = event.Err(err)
	}
	logFields(event, fields...)
	event.Msg(msg)
}

// logFields adds key/value pairs to the event, skipping malformed pairs
func logFields(event *zerolog.Event, fields ...interface{}) {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		event.Interface(key, fields[i+1])
	}
}
