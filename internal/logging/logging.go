// Package logging wraps zap's sugared logger behind a tiny constructor
// so commands only deal with one type.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the project-wide structured logger.
type Logger struct {
	*zap.SugaredLogger
}

// NewLogger builds a console logger writing to stderr, keeping stdout
// free for command output. Verbose enables debug level and caller
// annotations.
func NewLogger(verbose bool) *Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		cfg.DisableCaller = true
	}

	logger, err := cfg.Build()
	if err != nil {
		// fall back to a no-op logger rather than failing the command
		logger = zap.NewNop()
	}
	return &Logger{logger.Sugar()}
}
