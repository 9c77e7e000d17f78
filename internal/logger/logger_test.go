package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func captureLogger(t *testing.T, level zerolog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	originalLogger := Logger
	Logger = slog.New(NewHandler(zerolog.New(&buf).Level(level)))
	t.Cleanup(func() { Logger = originalLogger })
	return &buf
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("failed to unmarshal log output %q: %v", buf.String(), err)
	}
	return rec
}

func TestLogger(t *testing.T) {
	buf := captureLogger(t, zerolog.DebugLevel)

	tests := []struct {
		name  string
		fn    func(msg string, args ...any)
		level string
		msg   string
	}{
		{"Info", Info, "info", "info message"},
		{"Error", Error, "error", "error message"},
		{"Warn", Warn, "warn", "warn message"},
		{"Debug", Debug, "debug", "debug message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn(tt.msg)

			rec := decode(t, buf)
			if rec["message"] != tt.msg {
				t.Errorf("expected msg %q, got %v", tt.msg, rec["message"])
			}
			if rec["level"] != tt.level {
				t.Errorf("expected level %q, got %v", tt.level, rec["level"])
			}
		})
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	buf := captureLogger(t, zerolog.WarnLevel)

	Info("hidden")
	Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output below warn, got %q", buf.String())
	}
	Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Error("warn message missing")
	}
}

func TestHandler_Attrs(t *testing.T) {
	buf := captureLogger(t, zerolog.DebugLevel)

	Logger.With("page", "classical").WithGroup("chart").Info("rendered",
		"n", 3, "ok", true, "err", errors.New("boom"))

	rec := decode(t, buf)
	if rec["page"] != "classical" {
		t.Errorf("page = %v", rec["page"])
	}
	if rec["chart.n"] != float64(3) {
		t.Errorf("chart.n = %v", rec["chart.n"])
	}
	if rec["chart.ok"] != true {
		t.Errorf("chart.ok = %v", rec["chart.ok"])
	}
	if rec["chart.err"] != "boom" {
		t.Errorf("chart.err = %v", rec["chart.err"])
	}
}

func TestInit_File(t *testing.T) {
	originalLogger := Logger
	defer func() { Logger = originalLogger }()

	path := filepath.Join(t.TempDir(), "movierec.log")
	closer, err := Init(Config{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	Debug("to file", "k", "v")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"message":"to file"`) {
		t.Errorf("log file content = %q", data)
	}
}

func TestInit_NoFile(t *testing.T) {
	originalLogger := Logger
	defer func() { Logger = originalLogger }()

	closer, err := Init(Config{})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	Info("discarded")
	if err := closer.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"WARN":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestDefaultLogger(t *testing.T) {
	if Logger == nil {
		t.Error("Logger should be initialized")
	}
}
