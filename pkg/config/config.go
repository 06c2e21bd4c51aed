// Package config loads placeholder settings from YAML files.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/user/placeholder/pkg/placeholder"
	"github.com/user/placeholder/pkg/ports"
	"gopkg.in/yaml.v3"
)

// Config represents the full YAML configuration.
type Config struct {
	// Asset
	Preset          string  `yaml:"preset"`
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	BackgroundColor string  `yaml:"background_color"`
	TextColor       string  `yaml:"text_color"`
	Text            string  `yaml:"text"`
	Duration        float64 `yaml:"duration"`
	FPS             int     `yaml:"fps"`
	FontPath        string  `yaml:"font_path"`

	// Output
	Output    string `yaml:"output"`
	OutputDir string `yaml:"output_dir"`

	Video VideoConfig `yaml:"video"`
	Log   LogConfig   `yaml:"log"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// VideoConfig represents encoder settings.
type VideoConfig struct {
	Codecs      []string `yaml:"codecs"`
	Bitrate     int      `yaml:"bitrate"`
	Quality     int      `yaml:"quality"`
	TimesliceMs int      `yaml:"timeslice_ms"`
	Realtime    bool     `yaml:"realtime"`
	FFmpegPath  string   `yaml:"ffmpeg_path"`
}

// LogConfig represents logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Defaults returns a Config with default values.
func Defaults() Config {
	d := placeholder.Defaults()

	codecs := make([]string, len(d.Codecs))
	for i, c := range d.Codecs {
		codecs[i] = string(c)
	}

	return Config{
		Width:           d.Width,
		Height:          d.Height,
		BackgroundColor: d.BackgroundColor,
		TextColor:       d.TextColor,
		Duration:        d.Duration,
		FPS:             d.FPS,

		OutputDir: ".",

		Video: VideoConfig{
			Codecs:      codecs,
			Bitrate:     d.Bitrate,
			Quality:     d.Quality,
			TimesliceMs: int(d.Timeslice / time.Millisecond),
			Realtime:    true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},

		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file. Keys missing from the
// file keep their default values.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Defaults(), err
	}
	return Parse(data)
}

// Parse decodes YAML data over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Defaults(), fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Builder returns a ConfigBuilder seeded from the file settings. A preset
// takes precedence over width and height.
func (c Config) Builder() *placeholder.ConfigBuilder {
	b := placeholder.NewConfigBuilder().
		WithBackgroundColor(c.BackgroundColor).
		WithTextColor(c.TextColor).
		WithText(c.Text).
		WithDuration(c.Duration).
		WithFPS(c.FPS).
		WithCodecs(c.Codecs()...).
		WithBitrate(c.Video.Bitrate).
		WithQuality(c.Video.Quality).
		WithTimeslice(time.Duration(c.Video.TimesliceMs) * time.Millisecond).
		WithFontPath(c.FontPath)

	b.WithSize(c.Width, c.Height)
	if c.Preset != "" {
		b.WithPreset(c.Preset)
	}
	return b
}

// Codecs returns the configured codec preference list.
func (c Config) Codecs() []ports.Codec {
	codecs := make([]ports.Codec, 0, len(c.Video.Codecs))
	for _, s := range c.Video.Codecs {
		codecs = append(codecs, ports.Codec(s))
	}
	return codecs
}
