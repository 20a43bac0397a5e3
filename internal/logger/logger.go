// Package logger provides structured logging for the minic tools
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

var (
	defaultLogger *slog.Logger
	logFile       *os.File
)

// LogLevel represents the logging level
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a flag value such as "debug" to a LogLevel.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Config holds logger configuration
type Config struct {
	Level     LogLevel
	Format    string // "text" or "json"
	Output    io.Writer
	AddSource bool
	LogFile   string
}

// DefaultConfig returns the default logger configuration
func DefaultConfig() Config {
	return Config{
		Level:  LevelWarn,
		Format: "text",
		Output: os.Stderr,
	}
}

// Init initializes the global logger with the given configuration
func Init(cfg Config) error {
	if cfg.Format != "" && cfg.Format != "text" && cfg.Format != "json" {
		return fmt.Errorf("unknown log format %q", cfg.Format)
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		Close()
		logFile = file
		output = file
	}

	opts := &slog.HandlerOptions{
		Level:     toSlogLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
	return nil
}

// InitDev initializes logging for development (debug level, text format)
func InitDev() {
	_ = Init(Config{
		Level:     LevelDebug,
		Format:    "text",
		Output:    os.Stderr,
		AddSource: true,
	})
}

// Close releases the log file opened by Init, if any.
func Close() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

func toSlogLevel(level LogLevel) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Debug(msg string, args ...any) {
	if defaultLogger != nil {
		defaultLogger.Debug(msg, args...)
	}
}

func Info(msg string, args ...any) {
	if defaultLogger != nil {
		defaultLogger.Info(msg, args...)
	}
}

func Warn(msg string, args ...any) {
	if defaultLogger != nil {
		defaultLogger.Warn(msg, args...)
	}
}

func Error(msg string, args ...any) {
	if defaultLogger != nil {
		defaultLogger.Error(msg, args...)
	}
}

// With returns a new logger with the given attributes
func With(args ...any) *slog.Logger {
	if defaultLogger != nil {
		return defaultLogger.With(args...)
	}
	return slog.Default().With(args...)
}

// Analysis-specific logging helpers

// LogPhase logs the start of an analysis phase
func LogPhase(phase string) {
	Debug("Starting analysis phase", "phase", phase)
}

// LogPhaseComplete logs the completion of an analysis phase
func LogPhaseComplete(phase string, errors int, elapsed time.Duration) {
	Info("Completed analysis phase", "phase", phase, "errors", errors, "duration", elapsed)
}

// LogLexing logs lexing activity
func LogLexing(tokenCount, errorCount int) {
	Debug("Lexing complete", "tokens", tokenCount, "errors", errorCount)
}

// LogParsing logs parsing activity
func LogParsing(declCount, errorCount int) {
	Debug("Parsing complete", "declarations", declCount, "errors", errorCount)
}

// LogAnalysis logs semantic analysis activity
func LogAnalysis(errorCount int) {
	Debug("Semantic analysis complete", "errors", errorCount)
}

// LogFileProcessing logs file processing start
func LogFileProcessing(file string, mode string) {
	Info("Processing file", "file", file, "mode", mode)
}

// LogRequest logs a served analysis request
func LogRequest(method, path string, status int, elapsed time.Duration) {
	Info("Handled request", "method", method, "path", path, "status", status, "duration", elapsed)
}
