package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-logr/logr"
)

func TestNewDropsTime(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelInfo).Info("hello", "k", "v")

	out := buf.String()
	if strings.Contains(out, `"time"`) {
		t.Fatalf("time attribute not stripped: %s", out)
	}
	if !strings.Contains(out, `"msg":"hello"`) || !strings.Contains(out, `"k":"v"`) {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)
	logger.Info("quiet")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level: %s", buf.String())
	}
	logger.Warn("loud")
	if !strings.Contains(buf.String(), "loud") {
		t.Fatalf("warn missing: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		" warn": slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelWarn,
		"loud":  slog.LevelWarn,
	}
	for in, want := range cases {
		if got := ParseLevel(in, slog.LevelWarn); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestContextSharesSink(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewContext(context.Background(), New(&buf, slog.LevelInfo))

	FromContextOrDiscard(ctx).Info("from slog")
	logr.FromContextOrDiscard(ctx).Info("from logr")

	out := buf.String()
	if !strings.Contains(out, "from slog") || !strings.Contains(out, "from logr") {
		t.Fatalf("both loggers should write to the same sink: %s", out)
	}
}

func TestFromContextOrDiscard(t *testing.T) {
	if FromContextOrDiscard(context.Background()) != discardLogger {
		t.Fatal("expected discard logger for empty context")
	}
}
