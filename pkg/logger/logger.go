package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Log struct {
	LogLevel zapcore.Level `yaml:"level" envconfig:"LOG_LEVEL"`
	Sink     string        `yaml:"sink" envconfig:"LOG_SINK"`
}

// NewLogger builds a json zap logger named after the service.
// Falls back to zap.NewExample when the sink cannot be opened.
func NewLogger(cfg Log, name string) *zap.Logger {
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	zcfg.EncoderConfig.TimeKey = "ts"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.DisableStacktrace = cfg.LogLevel > zapcore.DebugLevel
	if cfg.Sink != "" {
		zcfg.OutputPaths = []string{cfg.Sink}
	}
	log, err := zcfg.Build()
	if err != nil {
		return zap.NewExample().Named(name)
	}
	return log.Named(name)
}
