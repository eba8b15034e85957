// Package logger writes shelf's log file. The terminal belongs to the UI, so
// nothing is ever logged to stdout or stderr.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

var (
	logFile *os.File
	mu      sync.Mutex
	enabled = true
	zlog    = zerolog.Nop()
)

const (
	maxLogSize = 5 * 1024 * 1024 // 5MB
)

// Dir returns the directory holding shelf's config and log files.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "shelf"), nil
}

// Init opens ~/.config/shelf/shelf.log, rotating it first when it has grown
// past maxLogSize.
func Init(level string) error {
	logDir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("cannot create log directory: %w", err)
	}
	return InitFile(filepath.Join(logDir, "shelf.log"), level)
}

// InitFile is Init with an explicit log path.
func InitFile(logPath, level string) error {
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		oldPath := logPath + ".old"
		os.Remove(oldPath)
		os.Rename(logPath, oldPath)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = file
	zlog = newLogger(file, lvl)
	return nil
}

func newLogger(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Close closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	zlog = zerolog.Nop()
}

// Disable disables logging (useful for tests)
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
}

// Enable enables logging
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
}

// Error logs an error message
func Error(format string, args ...any) {
	log(zerolog.ErrorLevel, format, args...)
}

// Warn logs a warning message
func Warn(format string, args ...any) {
	log(zerolog.WarnLevel, format, args...)
}

// Info logs an informational message
func Info(format string, args ...any) {
	log(zerolog.InfoLevel, format, args...)
}

// Debug logs a debug message
func Debug(format string, args ...any) {
	log(zerolog.DebugLevel, format, args...)
}

func log(level zerolog.Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}
	zlog.WithLevel(level).Msgf(format, args...)
}
