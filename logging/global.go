// Package logging sets up slog for the service: text on the console, JSON in a
// weekly rotating file, and an HTTP request logging middleware.
package logging

import (
	"log/slog"
	"os"
	"strings"

	"github.com/giygas/medtext-analyzer/config"
)

type LoggingService struct {
	Logger  *slog.Logger
	rotator *RotatingLogger
}

// Options configures InitLogger. An empty Dir logs to the console only.
type Options struct {
	Dir            string
	Env            config.Environment
	Level          string
	RetentionWeeks int
	MaxFileSize    int64
	// Verbose keeps info logs on the console in the test environment
	Verbose bool
}

var DefaultLoggingService *LoggingService

var fallback = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

// InitLogger replaces the global logger. A previous file logger is closed.
// If the log directory cannot be used, logging continues on the console and
// the error is returned.
func InitLogger(opts Options) error {
	if opts.RetentionWeeks <= 0 {
		opts.RetentionWeeks = 4
	}
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}

	console := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: GetConsoleLogLevel(opts.Env, opts.Level, opts.Verbose),
	})

	service := &LoggingService{Logger: slog.New(console)}

	var initErr error
	if opts.Dir != "" {
		rotator, err := NewRotatingLogger(opts.Dir, opts.RetentionWeeks, opts.MaxFileSize)
		if err != nil {
			initErr = err
		} else {
			file := slog.NewJSONHandler(rotator, &slog.HandlerOptions{Level: GetFileLogLevel()})
			service.Logger = slog.New(&multiHandler{handlers: []slog.Handler{console, file}})
			service.rotator = rotator
		}
	}

	Close()
	DefaultLoggingService = service
	slog.SetDefault(service.Logger)

	if initErr != nil {
		service.Logger.Error("Failed to initialize log file, logging to console only", "error", initErr)
	}
	return initErr
}

// Close flushes and closes the log file, if any
func Close() error {
	if DefaultLoggingService == nil || DefaultLoggingService.rotator == nil {
		return nil
	}
	err := DefaultLoggingService.rotator.Close()
	DefaultLoggingService.rotator = nil
	return err
}

// parseLogLevel maps a level name to slog, defaulting to info
func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetConsoleLogLevel picks the console level. Tests stay quiet unless verbose
// and ignore LOG_LEVEL; elsewhere LOG_LEVEL wins over the environment default.
func GetConsoleLogLevel(env config.Environment, level string, verbose bool) slog.Level {
	if env == config.EnvTest {
		if verbose {
			return slog.LevelInfo
		}
		return slog.LevelError
	}

	if level != "" {
		return parseLogLevel(level)
	}

	switch env {
	case config.EnvProduction, config.EnvStaging:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// GetFileLogLevel returns the file level; the file keeps everything
func GetFileLogLevel() slog.Level {
	return slog.LevelDebug
}

func logger() *slog.Logger {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		return fallback
	}
	return DefaultLoggingService.Logger
}

// Logger returns the installed logger, or the stderr fallback before InitLogger
func Logger() *slog.Logger {
	return logger()
}

// Package-level functions for direct access

func Info(msg string, args ...any) {
	logger().Info(msg, args...)
}

func Error(msg string, args ...any) {
	logger().Error(msg, args...)
}

func Warn(msg string, args ...any) {
	logger().Warn(msg, args...)
}

func Debug(msg string, args ...any) {
	logger().Debug(msg, args...)
}
