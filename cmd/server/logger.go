package main

import (
	"os"

	webfront "github.com/novacoders/webfront"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newZapLogger builds a zap.Logger using the provided configuration.
func newZapLogger(cfg LoggerConfig) (*zap.Logger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zapcore.InfoLevel
	if err := level.Set(cfg.Level); err != nil {
		// fall back to info level if parsing fails
		level = zapcore.InfoLevel
	}

	var encoder zapcore.Encoder
	switch cfg.Encoding {
	case "console":
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	default:
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	core := zapcore.NewCore(
		encoder,
		zapcore.AddSync(zapcore.Lock(os.Stdout)),
		level,
	)

	return zap.New(core, zap.AddCaller()), nil
}

// zapAdapter exposes a named zap logger through the printf-style Logger
// interface the library packages expect.
type zapAdapter struct {
	s *zap.SugaredLogger
}

func (a zapAdapter) Debug(format string, args ...any) { a.s.Debugf(format, args...) }
func (a zapAdapter) Info(format string, args ...any)  { a.s.Infof(format, args...) }
func (a zapAdapter) Warn(format string, args ...any)  { a.s.Warnf(format, args...) }
func (a zapAdapter) Error(format string, args ...any) { a.s.Errorf(format, args...) }

func namedLogger(base *zap.Logger, name string) webfront.Logger {
	return zapAdapter{s: base.Named(name).WithOptions(zap.AddCallerSkip(1)).Sugar()}
}
