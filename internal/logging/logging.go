// Package logging builds the zap loggers handed to the engines, the CLI
// and the HTTP server. There is no global logger: whoever calls New owns
// the result and must call the returned close function.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the level and sinks of a logger.
type Config struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`
	// File, when set, receives JSON log lines in addition to stderr.
	File string `mapstructure:"file"`
	// Development switches stderr output to the human-readable console
	// encoder.
	Development bool `mapstructure:"development"`
}

// New builds a logger. The close function flushes buffered entries and
// closes the file sink; it is safe to call more than once.
func New(cfg Config) (*zap.Logger, func() error, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	var consoleEnc zapcore.Encoder
	if cfg.Development {
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		consoleEnc = zapcore.NewConsoleEncoder(ec)
	} else {
		consoleEnc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEnc, zapcore.Lock(os.Stderr), level),
	}

	var file *os.File
	if cfg.File != "" {
		file, err = os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(file),
			level,
		))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller())

	closed := false
	closeFn := func() error {
		if closed {
			return nil
		}
		closed = true
		// Sync on stderr fails on some platforms; only the file matters.
		_ = logger.Sync()
		if file != nil {
			return file.Close()
		}
		return nil
	}
	return logger, closeFn, nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}
