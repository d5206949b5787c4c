package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var l *zap.Logger

// Init builds the global logger. Logs go to stderr because stdout belongs
// to the menu screen. Debug enables debug-level output.
func Init(service string, debug bool) error {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "@timestamp"
	encCfg.MessageKey = "message"
	encCfg.LevelKey = "level"
	enc := zapcore.NewJSONEncoder(encCfg)

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(os.Stderr), level)
	base := zap.New(core).With(
		zap.String("service", service),
	)

	l = base
	zap.ReplaceGlobals(l)
	return nil
}

// L returns the global logger, initializing a default one if needed.
func L() *zap.Logger {
	if l == nil {
		_ = Init("vending-sim", false)
	}
	return l
}

// WithSession returns a logger bound to a session id.
func WithSession(sessionID string) *zap.Logger {
	return L().With(zap.String("session_id", sessionID))
}
