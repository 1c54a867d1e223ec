// Package logging builds the application logger. The terminal belongs to
// the TUI, so logs always go to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/llehouerou/nowplaying/internal/config"
)

const (
	appName     = "nowplaying"
	logFileName = "nowplaying.log"
)

// LevelOff disables logging.
const LevelOff = "off"

// DefaultPath returns the log file under the XDG state directory,
// creating parent directories as needed.
func DefaultPath() (string, error) {
	return xdg.StateFile(filepath.Join(appName, logFileName))
}

// New returns a JSON file logger for cfg and a function that flushes it.
func New(cfg config.LogConfig) (*zap.Logger, func(), error) {
	if cfg.Level == LevelOff {
		return zap.NewNop(), func() {}, nil
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	path := cfg.File
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return nil, nil, fmt.Errorf("resolve log path: %w", err)
		}
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = level
	zc.Sampling = nil
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zc.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	logger = logger.With(zap.Int("pid", os.Getpid()))

	return logger, func() { _ = logger.Sync() }, nil
}
