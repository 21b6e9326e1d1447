package middleware

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapSink adapts a zap SugaredLogger to the Sink capability. The level check
// runs before the message producer, so disabled levels never pay the
// formatting cost.
type ZapSink struct {
	log *zap.Logger
}

// NewZapSink wraps the given sugared logger as a Sink.
func NewZapSink(log *zap.SugaredLogger) *ZapSink {
	if log == nil {
		return &ZapSink{}
	}
	return &ZapSink{log: log.Desugar()}
}

func (z *ZapSink) Info(msg func() string)  { z.emit(zapcore.InfoLevel, msg) }
func (z *ZapSink) Debug(msg func() string) { z.emit(zapcore.DebugLevel, msg) }
func (z *ZapSink) Warn(msg func() string)  { z.emit(zapcore.WarnLevel, msg) }

func (z *ZapSink) emit(level zapcore.Level, msg func() string) {
	if z == nil || z.log == nil {
		return
	}
	if ce := z.log.Check(level, ""); ce != nil {
		ce.Message = msg()
		ce.Write()
	}
}

// NewStdoutSink builds the default sink: console-encoded zap over stdout with
// every level enabled.
func NewStdoutSink() Sink {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(zapcore.Lock(os.Stdout)),
		zapcore.DebugLevel,
	)
	return &ZapSink{log: zap.New(core)}
}

// NopSink discards every message without evaluating the producer.
type NopSink struct{}

func (NopSink) Info(func() string)  {}
func (NopSink) Debug(func() string) {}
func (NopSink) Warn(func() string)  {}

func ensureSink(sink Sink) Sink {
	if sink == nil {
		return NewStdoutSink()
	}
	return sink
}
