// Package logging builds the process logger from configuration.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/plus3/hearth/config"
)

// New returns a zap logger for cfg. Format "json" selects the production
// encoder; anything else gets a compact colored console encoder. An
// unparsable level falls back to info.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	return build(cfg, nil)
}

// NewWithOutput is New writing to the given paths instead of stderr.
func NewWithOutput(cfg config.LoggingConfig, paths ...string) (*zap.Logger, error) {
	return build(cfg, paths)
}

func build(cfg config.LoggingConfig, outputs []string) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(Level(cfg.Level))
	if outputs != nil {
		zapCfg.OutputPaths = outputs
		zapCfg.ErrorOutputPaths = outputs
	}
	return zapCfg.Build()
}

// Level parses s, defaulting to info.
func Level(s string) zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return zapcore.InfoLevel
	}
	return level
}
