// Package logging wraps logrus behind a small Logger type, the same
// shape the teacher's pkg/logger/factory.go exposes: a text/JSON
// formatter choice, optional file sink, optional stdout tee.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is a thin façade over *logrus.Logger so callers never import
// logrus directly.
type Logger struct {
	entry *logrus.Logger
	file  *os.File
}

// Config controls logger construction.
type Config struct {
	LogFile      string
	Level        string
	Format       string // "text" or "json"
	EnableStdout bool
}

// New builds a Logger from Config. An empty LogFile falls back to
// stderr only (no default log directory creation, unlike the teacher,
// since the assistant is a library-first module rather than a long
// running server by default).
func New(cfg Config) (*Logger, error) {
	base := logrus.New()

	level := cfg.Level
	if level == "" {
		level = "info"
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	base.SetLevel(parsed)

	switch strings.ToLower(cfg.Format) {
	case "json":
		base.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	case "", "text":
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	default:
		return nil, fmt.Errorf("unsupported log format %q", cfg.Format)
	}

	l := &Logger{entry: base}

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.file = f
		if cfg.EnableStdout {
			base.SetOutput(io.MultiWriter(f, os.Stdout))
		} else {
			base.SetOutput(f)
		}
	} else {
		base.SetOutput(os.Stderr)
	}

	return l, nil
}

// Default builds a sensible console logger for short-lived CLI runs.
func Default() *Logger {
	l, err := New(Config{Level: "info", Format: "text", EnableStdout: true})
	if err != nil {
		// ParseLevel("info") cannot fail; this is unreachable in practice.
		panic(err)
	}
	return l
}

// Close releases the underlying log file, if any.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Raw exposes the underlying *logrus.Logger for collaborators (like
// internal/llmclient) that take a logrus logger directly rather than
// this façade.
func (l *Logger) Raw() *logrus.Logger {
	return l.entry
}

// WithField returns a derived logger entry carrying one structured field.
func (l *Logger) WithField(key string, value any) *logrus.Entry {
	return l.entry.WithField(key, value)
}

// WithFields returns a derived logger entry carrying several structured fields.
func (l *Logger) WithFields(fields map[string]any) *logrus.Entry {
	return l.entry.WithFields(logrus.Fields(fields))
}

func (l *Logger) Infof(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }
func (l *Logger) Debugf(format string, args ...any) { l.entry.Debugf(format, args...) }
