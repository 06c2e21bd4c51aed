package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/user/placeholder/pkg/placeholder"
	"github.com/user/placeholder/pkg/ports"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Width != 1280 || cfg.Height != 960 {
		t.Errorf("expected 1280x960, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.FPS != 30 || cfg.Duration != 5 {
		t.Errorf("unexpected video defaults %gs / %d fps", cfg.Duration, cfg.FPS)
	}
	if len(cfg.Video.Codecs) != 3 || cfg.Video.Codecs[0] != "vp9" || cfg.Video.Codecs[2] != "mjpeg" {
		t.Errorf("unexpected codecs %v", cfg.Video.Codecs)
	}
	if cfg.Video.TimesliceMs != 100 || cfg.Video.Bitrate != 2500 {
		t.Errorf("unexpected encoder defaults %+v", cfg.Video)
	}
	if cfg.Log.Format != "text" || cfg.Log.Level != "info" {
		t.Errorf("unexpected log defaults %+v", cfg.Log)
	}
}

func TestParse_OverridesOnlyGivenKeys(t *testing.T) {
	cfg, err := Parse([]byte(`
width: 640
text: "Banner slot"
video:
  codecs: [h264, mjpeg]
  realtime: false
log:
  format: json
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Width != 640 || cfg.Height != 960 {
		t.Errorf("expected 640x960, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Text != "Banner slot" {
		t.Errorf("Text = %q", cfg.Text)
	}
	codecs := cfg.Codecs()
	if len(codecs) != 2 || codecs[0] != ports.CodecH264 || codecs[1] != ports.CodecMJPEG {
		t.Errorf("Codecs() = %v", codecs)
	}
	if cfg.Video.Realtime {
		t.Error("realtime should be disabled")
	}
	if cfg.Video.Bitrate != 2500 {
		t.Errorf("bitrate default lost: %d", cfg.Video.Bitrate)
	}
	if cfg.Log.Format != "json" || cfg.Log.Level != "info" {
		t.Errorf("unexpected log config %+v", cfg.Log)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("width: [1, 2")); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "placeholder.yaml")
	if err := os.WriteFile(path, []byte("fps: 24\nduration: 2.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.FPS != 24 || cfg.Duration != 2.5 {
		t.Errorf("unexpected values %d fps / %gs", cfg.FPS, cfg.Duration)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
	if cfg.Width != 1280 {
		t.Error("defaults should be returned with the error")
	}
}

func TestBuilder(t *testing.T) {
	cfg, err := Parse([]byte(`
width: 300
height: 200
background_color: "#000"
text_color: white
font_path: /tmp/font.ttf
video:
  timeslice_ms: 250
  quality: 60
`))
	if err != nil {
		t.Fatal(err)
	}

	p, err := cfg.Builder().Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if p.Width != 300 || p.Height != 200 || p.BackgroundColor != "#000" || p.TextColor != "white" {
		t.Errorf("unexpected config %+v", p)
	}
	if p.Timeslice != 250*time.Millisecond || p.Quality != 60 || p.FontPath != "/tmp/font.ttf" {
		t.Errorf("unexpected encoding config %+v", p)
	}
}

func TestBuilder_PresetWins(t *testing.T) {
	cfg, _ := Parse([]byte("preset: square\nwidth: 10\n"))

	p, err := cfg.Builder().Build()
	if err != nil {
		t.Fatal(err)
	}
	if p.Width != 500 || p.Height != 500 {
		t.Errorf("expected square preset, got %dx%d", p.Width, p.Height)
	}
}

func TestBuilder_UnknownPreset(t *testing.T) {
	cfg, _ := Parse([]byte("preset: poster\n"))

	if _, err := cfg.Builder().Build(); !errors.Is(err, placeholder.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
