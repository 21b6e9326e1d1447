package middleware

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapSinkEmitsAtEachLevel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sink := NewZapSink(zap.New(core).Sugar())

	sink.Info(func() string { return "info line" })
	sink.Debug(func() string { return "debug line" })
	sink.Warn(func() string { return "warn line" })

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Level != zapcore.InfoLevel || entries[0].Message != "info line" {
		t.Fatalf("unexpected info entry: %+v", entries[0])
	}
	if entries[1].Level != zapcore.DebugLevel || entries[1].Message != "debug line" {
		t.Fatalf("unexpected debug entry: %+v", entries[1])
	}
	if entries[2].Level != zapcore.WarnLevel || entries[2].Message != "warn line" {
		t.Fatalf("unexpected warn entry: %+v", entries[2])
	}
}

func TestZapSinkSkipsProducerWhenLevelDisabled(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sink := NewZapSink(zap.New(core).Sugar())

	evaluated := false
	sink.Debug(func() string {
		evaluated = true
		return "should not run"
	})

	if evaluated {
		t.Fatalf("debug producer was evaluated with debug disabled")
	}
	if logs.Len() != 0 {
		t.Fatalf("expected no entries, got %d", logs.Len())
	}
}

func TestZapSinkToleratesNilLogger(t *testing.T) {
	sink := NewZapSink(nil)
	sink.Info(func() string { return "dropped" })
	sink.Debug(func() string { return "dropped" })
	sink.Warn(func() string { return "dropped" })
}

func TestNopSinkNeverEvaluates(t *testing.T) {
	sink := NopSink{}
	sink.Info(func() string {
		t.Fatalf("info producer evaluated")
		return ""
	})
	sink.Debug(func() string {
		t.Fatalf("debug producer evaluated")
		return ""
	})
	sink.Warn(func() string {
		t.Fatalf("warn producer evaluated")
		return ""
	})
}

func TestEnsureSinkDefaultsToStdout(t *testing.T) {
	if sink := ensureSink(nil); sink == nil {
		t.Fatalf("expected default sink")
	}
	custom := &recordingSink{}
	if sink := ensureSink(custom); sink != custom {
		t.Fatalf("expected supplied sink to be kept")
	}
}
