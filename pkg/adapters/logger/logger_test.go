package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/user/placeholder/pkg/ports"
)

func TestConsoleLogger_LevelsAndStreams(t *testing.T) {
	var out, errOut bytes.Buffer
	log := NewConsoleWriter(ports.LevelInfo, &out, &errOut, false)

	log.Debug("hidden %d", 1)
	log.Info("Output saved to %s", "a.png")
	log.Warn("%s encoder not available, falling back to %s", "VP9", "VP8")

	if strings.Contains(out.String(), "hidden") {
		t.Error("debug message should be filtered at info level")
	}
	if !strings.Contains(out.String(), "a.png") {
		t.Errorf("expected info on out, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "VP9") {
		t.Errorf("expected warning on error stream, got %q", errOut.String())
	}
}

func TestConsoleLogger_ComponentPrefix(t *testing.T) {
	var out bytes.Buffer
	log := NewConsoleWriter(ports.LevelDebug, &out, &out, false).WithComponent("record")

	log.Debug("pushed %d frames", 30)

	if got := out.String(); got != "[record] pushed 30 frames\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestConsoleLogger_Color(t *testing.T) {
	var out, errOut bytes.Buffer
	log := NewConsoleWriter(ports.LevelDebug, &out, &errOut, true)

	log.Error("Failed to render: %s", "boom")

	if !strings.HasPrefix(errOut.String(), colorRed) {
		t.Errorf("expected red error output, got %q", errOut.String())
	}
}

func TestConsoleLogger_Quiet(t *testing.T) {
	var out bytes.Buffer
	log := NewConsoleWriter(ports.LevelQuiet, &out, &out, false)

	log.Error("Failed to render: %s", "boom")

	if out.Len() != 0 {
		t.Errorf("quiet level should suppress errors, got %q", out.String())
	}
}

func TestJSONLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(ports.LevelInfo, &buf).WithComponent("orchestrator")

	log.Info("wrote %s", "out.webm")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v", entry["level"])
	}
	if entry["component"] != "orchestrator" {
		t.Errorf("component = %v", entry["component"])
	}
	if entry["key"] != "wrote %s" {
		t.Errorf("key = %v", entry["key"])
	}
	if entry["message"] != "wrote out.webm" {
		t.Errorf("message = %v", entry["message"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("expected a timestamp")
	}
}

func TestJSONLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(ports.LevelWarn, &buf)

	log.Debug("a")
	log.Info("b")
	if buf.Len() != 0 {
		t.Errorf("expected nothing below warn, got %q", buf.String())
	}

	log.Warn("c")
	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Errorf("expected warn entry, got %q", buf.String())
	}
}

func TestJSONLogger_Quiet(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(ports.LevelQuiet, &buf)

	log.Error("Failed to render: %s", "x")
	if buf.Len() != 0 {
		t.Errorf("quiet should disable output, got %q", buf.String())
	}
}

func TestNoopLogger(t *testing.T) {
	log := NewNoop()
	child := log.WithComponent("x")
	for _, l := range []ports.Logger{log, child} {
		l.Debug("Rendering frame %d", 1)
		l.Error("Failed to render: %s", "x")
	}
	if log.log.GetLevel() != zerolog.Disabled {
		t.Errorf("level = %v, want disabled", log.log.GetLevel())
	}
}
