package common

import (
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/clipvault/clipvault/internal/config"
)

// NewLogger creates a zap logger from the application configuration.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	encoding := "console"
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	if cfg.Log.Format == "json" {
		encoding = "json"
		encoderConfig = zap.NewProductionEncoderConfig()
	}

	outputs := []string{"stderr"}
	if cfg.Log.EnableFileLogging && cfg.SystemPaths.LogDir != "" {
		outputs = append(outputs, filepath.Join(cfg.SystemPaths.LogDir, "clipvault.log"))
	}

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      false,
		Encoding:         encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
	}

	return zapConfig.Build()
}
