// Package logx builds golta's diagnostic logger.
package logx

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvVar selects the log level when --verbose is not given.
const EnvVar = "GOLTA_LOG"

// New returns a console logger on stderr. verbose forces debug; otherwise
// the level comes from $GOLTA_LOG and defaults to warn.
func New(verbose bool) (*zap.Logger, error) {
	level := zapcore.WarnLevel
	if v := strings.TrimSpace(os.Getenv(EnvVar)); v != "" {
		parsed, err := zapcore.ParseLevel(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q: %w", EnvVar, v, err)
		}
		level = parsed
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	return NewWithLevel(level), nil
}

// NewWithLevel returns a console logger on stderr at the given level.
func NewWithLevel(level zapcore.Level) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if !isTerminal(os.Stderr) {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core)
}
