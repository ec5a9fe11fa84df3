// Package logging builds the process logger. Logs go to a file so they never interleave with command output or the interactive viewer.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON logger that appends to the file at path, and a func that flushes and closes it.
//
// If path is empty or can't be opened as a file, New returns a no-op logger. level is one of "debug", "info", "warn", "error"; anything else means "info".
func New(path, level string) (*zap.SugaredLogger, func()) {
	if path == "" {
		return zap.NewNop().Sugar(), func() {}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return zap.NewNop().Sugar(), func() {}
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.Lock(f), zap.NewAtomicLevelAt(lvl))
	logger := zap.New(core)

	return logger.Sugar(), func() {
		_ = logger.Sync()
		_ = f.Close()
	}
}
