package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	log := Get()
	if log == nil {
		t.Fatal("logger is nil")
	}

	ctx := context.Background()
	log.Info(ctx, "test message", String("k", "v"))
}

func TestLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithWriter(&buf); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	ctx := context.Background()
	Get().Info(ctx, "ingested swim", String("event", "100 FR SCY"), Int("count", 3))

	out := buf.String()
	for _, want := range []string{"ingested swim", "event=", "100 FR SCY", "count=3", "source="} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestLoggerNamed(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	namedLogger := Named("batch")
	if namedLogger == nil {
		t.Fatal("named logger is nil")
	}

	ctx := context.Background()
	namedLogger.Info(ctx, "test message")
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithWriter(&buf); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	ctx := context.Background()

	if err := SetLevelString("warn"); err != nil {
		t.Fatalf("set level: %v", err)
	}
	Get().Debug(ctx, "hidden debug")
	Get().Info(ctx, "hidden info")
	Get().Warn(ctx, "visible warn")

	out := buf.String()
	if strings.Contains(out, "hidden debug") || strings.Contains(out, "hidden info") {
		t.Errorf("suppressed levels leaked: %s", out)
	}
	if !strings.Contains(out, "visible warn") {
		t.Errorf("warn level missing: %s", out)
	}

	if err := SetLevelString("nope"); err == nil {
		t.Error("expected error for unknown level")
	}
	if err := SetLevelString(""); err != nil {
		t.Errorf("empty level should default to info: %v", err)
	}
}

func TestLoggerDefault(t *testing.T) {
	global = nil
	log := Default()
	if log == nil {
		t.Fatal("default logger is nil")
	}
	if Get() == nil {
		t.Fatal("default did not install global logger")
	}
}
