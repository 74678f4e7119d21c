// Package logger provides centralized logging for the application.
// File: logger/logger.go
package logger

import (
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ------------------- global loggers -------------------

// four logger levels accessible throughout the application
var (
	Info  *log.Logger
	Warn  *log.Logger
	Error *log.Logger
	Debug *log.Logger
)

var (
	mu    sync.RWMutex
	base  *zap.Logger
	level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
)

// Options configures InitLogger.
type Options struct {
	Level      string // debug, info, warn, error
	Production bool   // JSON encoding instead of console
	File       string // optional file written in addition to stdout
}

// ------------------- logger initialization -------------------

// InitLogger creates or reinitializes the logging system. It:
// - Builds a zap core writing to stdout and, when set, to opts.File.
// - Uses console encoding in development and JSON in production.
// - Exposes the core as the Info, Warn, Error and Debug std loggers.
func InitLogger(opts Options) error {
	var out io.Writer = os.Stdout
	if opts.File != "" {
		file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec
		if err != nil {
			return err
		}
		out = io.MultiWriter(os.Stdout, file)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encoder := zapcore.NewConsoleEncoder(encCfg)
	if opts.Production {
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	level.SetLevel(parseLevel(opts.Level))
	core := zapcore.NewCore(encoder, zapcore.AddSync(out), level)
	install(zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)))
	return nil
}

// install swaps the base logger and rebuilds the std loggers on top of it.
func install(z *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()

	base = z
	Info = mustStdLog(z, zapcore.InfoLevel)
	Warn = mustStdLog(z, zapcore.WarnLevel)
	Error = mustStdLog(z, zapcore.ErrorLevel)
	Debug = mustStdLog(z, zapcore.DebugLevel)
}

func mustStdLog(z *zap.Logger, lvl zapcore.Level) *log.Logger {
	l, err := zap.NewStdLogAt(z, lvl)
	if err != nil {
		// only fails for levels above Fatal
		return log.New(os.Stderr, strings.ToUpper(lvl.String())+": ", log.LstdFlags)
	}
	return l
}

// Z returns the structured logger behind the std loggers.
func Z() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// SetLogLevel adjusts verbosity depending on environment.
// Production drops debug output; every other environment keeps it.
func SetLogLevel(env string) {
	if env == "production" {
		level.SetLevel(zapcore.InfoLevel)
	} else {
		level.SetLevel(zapcore.DebugLevel)
	}
}

// Enabled reports whether entries at lvl are currently written.
func Enabled(lvl zapcore.Level) bool {
	return level.Enabled(lvl)
}

// Sync flushes any buffered log entries
func Sync() error {
	return Z().Sync()
}

// parseLevel converts a string level to zapcore.Level
func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "info", "":
		return zapcore.InfoLevel
	default:
		return zapcore.InfoLevel
	}
}

// init is called automatically at package load time so the package-level
// loggers are never nil, even in tests that never call InitLogger.
func init() {
	if err := InitLogger(Options{Level: "debug"}); err != nil {
		log.Fatalf("Failed to initialise custom logger: %v", err)
	}
}
