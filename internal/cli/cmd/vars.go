package cmd

import (
	"github.com/clipvault/clipvault/internal/config"
	"go.uber.org/zap"
)

// Shared variables across all commands
var (
	cfg       *config.Config
	zapLogger *zap.Logger

	cfgFile string
	verbose bool
	quiet   bool
	useJSON bool
)

// GetConfig returns the loaded configuration.
func GetConfig() *config.Config {
	return cfg
}

// GetZapLogger returns the configured logger.
func GetZapLogger() *zap.Logger {
	if zapLogger == nil {
		return zap.NewNop()
	}
	return zapLogger
}
