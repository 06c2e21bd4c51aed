// Package placeholder provides a high-level API for describing placeholder
// images and videos.
package placeholder

import (
	"time"

	"github.com/user/placeholder/pkg/pipeline"
	"github.com/user/placeholder/pkg/ports"
	"github.com/user/placeholder/pkg/stages/frame"
	"github.com/user/placeholder/pkg/stages/record"
)

// Defaults used by NewConfigBuilder.
const (
	DefaultWidth           = 1280
	DefaultHeight          = 960
	DefaultBackgroundColor = "#4A90E2"
	DefaultTextColor       = "#FFFFFF"
	DefaultDuration        = 5.0
)

// Config describes one placeholder asset and how to encode it.
type Config struct {
	// Asset
	Width           int
	Height          int
	BackgroundColor string
	TextColor       string
	Text            string // empty renders "{w} × {h}"

	// Video
	Duration float64 // seconds
	FPS      int

	// Encoding
	Codecs    []ports.Codec // preference order
	Bitrate   int           // kbps
	Quality   int           // JPEG quality for MJPEG
	Timeslice time.Duration // chunk interval

	// Rendering
	FontPath string // optional TTF/OTF, bundled Go fonts otherwise
}

// ConfigBuilder provides a fluent interface for building Config.
type ConfigBuilder struct {
	config Config
	errs   []error
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{config: Defaults()}
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		BackgroundColor: DefaultBackgroundColor,
		TextColor:       DefaultTextColor,

		Duration: DefaultDuration,
		FPS:      pipeline.DefaultFPS,

		Codecs:    append([]ports.Codec(nil), record.DefaultCodecs...),
		Bitrate:   record.DefaultBitrate,
		Quality:   record.DefaultQuality,
		Timeslice: record.DefaultTimeslice,
	}
}

// Build returns the final Config and the first error recorded while
// building (an unknown preset). Range checks are done by Validate.
func (b *ConfigBuilder) Build() (Config, error) {
	cfg := b.config
	cfg.Codecs = append([]ports.Codec(nil), cfg.Codecs...)
	if len(cfg.Codecs) == 0 {
		cfg.Codecs = append(cfg.Codecs, record.DefaultCodecs...)
	}
	if len(b.errs) > 0 {
		return cfg, b.errs[0]
	}
	return cfg, nil
}

// WithSize sets both dimensions.
func (b *ConfigBuilder) WithSize(width, height int) *ConfigBuilder {
	b.config.Width = width
	b.config.Height = height
	return b
}

// WithWidth sets the asset width in pixels.
func (b *ConfigBuilder) WithWidth(width int) *ConfigBuilder {
	b.config.Width = width
	return b
}

// WithHeight sets the asset height in pixels.
func (b *ConfigBuilder) WithHeight(height int) *ConfigBuilder {
	b.config.Height = height
	return b
}

// WithPreset applies the dimensions of a named size preset.
func (b *ConfigBuilder) WithPreset(name string) *ConfigBuilder {
	p, err := FindPreset(name)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	return b.WithSize(p.Width, p.Height)
}

// WithBackgroundColor sets the background color string.
func (b *ConfigBuilder) WithBackgroundColor(c string) *ConfigBuilder {
	b.config.BackgroundColor = c
	return b
}

// WithTextColor sets the label and overlay color string.
func (b *ConfigBuilder) WithTextColor(c string) *ConfigBuilder {
	b.config.TextColor = c
	return b
}

// WithText sets the label text.
func (b *ConfigBuilder) WithText(text string) *ConfigBuilder {
	b.config.Text = text
	return b
}

// WithDuration sets the video duration in seconds.
func (b *ConfigBuilder) WithDuration(seconds float64) *ConfigBuilder {
	b.config.Duration = seconds
	return b
}

// WithFPS sets the video frame rate.
func (b *ConfigBuilder) WithFPS(fps int) *ConfigBuilder {
	b.config.FPS = fps
	return b
}

// WithCodecs sets the codec preference list, primary first.
func (b *ConfigBuilder) WithCodecs(codecs ...ports.Codec) *ConfigBuilder {
	b.config.Codecs = append([]ports.Codec(nil), codecs...)
	return b
}

// WithBitrate sets the target bitrate in kbps.
func (b *ConfigBuilder) WithBitrate(kbps int) *ConfigBuilder {
	b.config.Bitrate = kbps
	return b
}

// WithQuality sets the JPEG quality used by intra-only codecs.
func (b *ConfigBuilder) WithQuality(quality int) *ConfigBuilder {
	b.config.Quality = quality
	return b
}

// WithTimeslice sets the chunk emission interval.
func (b *ConfigBuilder) WithTimeslice(d time.Duration) *ConfigBuilder {
	b.config.Timeslice = d
	return b
}

// WithFontPath sets a custom font file.
func (b *ConfigBuilder) WithFontPath(path string) *ConfigBuilder {
	b.config.FontPath = path
	return b
}

// AssetConfig converts Config to the still pipeline input.
func (c Config) AssetConfig() pipeline.AssetConfig {
	cfg := pipeline.AssetConfig{
		Width:           c.Width,
		Height:          c.Height,
		BackgroundColor: c.BackgroundColor,
		TextColor:       c.TextColor,
	}
	if c.Text != "" {
		text := c.Text
		cfg.Text = &text
	}
	return cfg
}

// VideoConfig converts Config to the video pipeline input.
func (c Config) VideoConfig() pipeline.VideoConfig {
	return pipeline.VideoConfig{
		AssetConfig: c.AssetConfig(),
		Duration:    c.Duration,
		FPS:         c.FPS,
	}
}

// FrameOptions returns the frame renderer options.
func (c Config) FrameOptions() frame.Options {
	return frame.Options{FontPath: c.FontPath}
}

// RecordOptions converts Config to record stage options.
func (c Config) RecordOptions() record.Options {
	return record.Options{
		Codecs:    append([]ports.Codec(nil), c.Codecs...),
		Timeslice: c.Timeslice,
		Bitrate:   c.Bitrate,
		Quality:   c.Quality,
		Frame:     c.FrameOptions(),
	}
}
