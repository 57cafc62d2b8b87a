package serv

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a *zap.Logger the way the teacher's cmd.newLogger
// does: JSON in production, colored console otherwise.
func NewLogger(json bool) *zap.Logger {
	econf := zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		NameKey:        "logger",
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	var core zapcore.Core
	if json {
		core = zapcore.NewCore(zapcore.NewJSONEncoder(econf), zapcore.AddSync(os.Stdout), zap.InfoLevel)
	} else {
		econf.EncodeLevel = zapcore.CapitalColorLevelEncoder
		core = zapcore.NewCore(zapcore.NewConsoleEncoder(econf), zapcore.AddSync(os.Stdout), zap.DebugLevel)
	}
	return zap.New(core)
}
