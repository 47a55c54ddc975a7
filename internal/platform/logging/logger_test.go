package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q) expected %s, got %s", raw, want, got)
		}
	}
}

func TestLogger_WritesKeyValuesAndTrace(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewWriter(&buf, LevelInfo).With("component", "import")

	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.Debug("hidden")
	logger.InfoContext(ctx, "batch done", "entity", "club", "inserted", 3, "err", errors.New("boom"), "dangling")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected debug entry to be filtered, got %s", out)
	}
	for _, want := range []string{
		`"msg":"batch done"`,
		`"component":"import"`,
		`"entity":"club"`,
		`"inserted":3`,
		`"err":"boom"`,
		`"dangling":null`,
		`"trace_id":"0102030405060708090a0b0c0d0e0f10"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in log output, got %s", want, out)
		}
	}
}

func TestLogger_NilReceiverFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.With("k", "v") == nil {
		t.Fatalf("expected child logger from nil receiver")
	}
}
