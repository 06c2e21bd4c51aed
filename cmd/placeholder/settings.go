package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/user/placeholder/pkg/adapters/filesink"
	"github.com/user/placeholder/pkg/adapters/ggrenderer"
	"github.com/user/placeholder/pkg/adapters/logger"
	"github.com/user/placeholder/pkg/adapters/osfilesystem"
	"github.com/user/placeholder/pkg/adapters/scheduler"
	"github.com/user/placeholder/pkg/adapters/smartencoder"
	"github.com/user/placeholder/pkg/config"
	"github.com/user/placeholder/pkg/delivery"
	"github.com/user/placeholder/pkg/orchestrator"
	"github.com/user/placeholder/pkg/pipeline"
	"github.com/user/placeholder/pkg/placeholder"
	"github.com/user/placeholder/pkg/ports"
	"github.com/user/placeholder/pkg/stages/record"
	"github.com/user/placeholder/pkg/stages/still"
)

// env holds the resolved settings and adapters for one command.
type env struct {
	file   config.Config
	params placeholder.Config

	log      ports.Logger
	fs       *osfilesystem.FileSystem
	renderer *ggrenderer.Renderer

	stdout io.Writer
	stderr io.Writer
}

// newEnv loads the config file, applies flags over it and validates the
// result. Video validation also checks duration and frame rate.
func newEnv(c *cli.Context, video bool) (*env, error) {
	file, err := loadSettings(c)
	if err != nil {
		return nil, err
	}

	params, err := file.Builder().Build()
	if err != nil {
		return nil, err
	}
	if video {
		err = params.ValidateVideo()
	} else {
		err = params.Validate()
	}
	if err != nil {
		return nil, err
	}

	return &env{
		file:     file,
		params:   params,
		log:      newLogger(file.Log, c.App.ErrWriter),
		fs:       osfilesystem.New(),
		renderer: ggrenderer.New(),
		stdout:   c.App.Writer,
		stderr:   c.App.ErrWriter,
	}, nil
}

func loadSettings(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
		cfg = loaded
	}
	applyFlags(c, &cfg)
	return cfg, nil
}

// applyFlags copies explicitly set flags over cfg. Flags a command does not
// define are never set.
func applyFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("width") || c.IsSet("height") {
		// Explicit dimensions replace a preset from the file.
		cfg.Preset = ""
	}
	if c.IsSet("width") {
		cfg.Width = c.Int("width")
	}
	if c.IsSet("height") {
		cfg.Height = c.Int("height")
	}
	if c.IsSet("preset") {
		cfg.Preset = c.String("preset")
	}
	if c.IsSet("bg") {
		cfg.BackgroundColor = c.String("bg")
	}
	if c.IsSet("text-color") {
		cfg.TextColor = c.String("text-color")
	}
	if c.IsSet("text") {
		cfg.Text = c.String("text")
	}
	if c.IsSet("font") {
		cfg.FontPath = c.String("font")
	}

	if c.IsSet("duration") {
		cfg.Duration = c.Float64("duration")
	}
	if c.IsSet("fps") {
		cfg.FPS = c.Int("fps")
	}
	if c.IsSet("codec") {
		cfg.Video.Codecs = splitCodecs(c.StringSlice("codec"))
	}
	if c.IsSet("bitrate") {
		cfg.Video.Bitrate = c.Int("bitrate")
	}
	if c.IsSet("quality") {
		cfg.Video.Quality = c.Int("quality")
	}
	if c.IsSet("timeslice") {
		cfg.Video.TimesliceMs = c.Int("timeslice")
	}
	if c.IsSet("realtime") {
		cfg.Video.Realtime = c.Bool("realtime")
	}
	if c.IsSet("ffmpeg") {
		cfg.Video.FFmpegPath = c.String("ffmpeg")
	}

	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("output-dir") {
		cfg.OutputDir = c.String("output-dir")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}

	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Log.Format = c.String("log-format")
	}
	if c.Bool("quiet") {
		cfg.Log.Level = "quiet"
	}
}

// splitCodecs accepts both repeated flags and comma-separated lists.
func splitCodecs(values []string) []string {
	var codecs []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
				codecs = append(codecs, part)
			}
		}
	}
	return codecs
}

func newLogger(cfg config.LogConfig, w io.Writer) ports.Logger {
	level := ports.ParseLogLevel(cfg.Level)
	if level == ports.LevelQuiet {
		return logger.NewNoop()
	}
	if cfg.Format == "json" {
		return logger.NewJSON(level, w)
	}
	if w == os.Stderr {
		return logger.NewConsole(level)
	}
	return logger.NewConsoleWriter(level, w, w, false)
}

// orchestrator wires the render stages for e.params.
func (e *env) orchestrator() *orchestrator.Orchestrator {
	params := e.params

	stillStage := func(sink ports.DebugSink) pipeline.StillStage {
		return still.NewStage(e.renderer, sink, e.log, params.FrameOptions())
	}

	encoder := smartencoder.New(smartencoder.Options{
		FFmpegPath: e.file.Video.FFmpegPath,
		Logger:     e.log,
	})
	var pacer ports.Pacer = scheduler.NewImmediate()
	if e.file.Video.Realtime {
		pacer = scheduler.NewRealtime()
	}
	videoStage := func(sink ports.DebugSink, progress pipeline.ProgressFunc) pipeline.VideoStage {
		opts := params.RecordOptions()
		opts.Progress = progress
		return record.New(e.renderer, encoder, pacer, sink, e.log, opts)
	}

	var sinks orchestrator.SinkFactory
	if e.file.Debug {
		root := filesink.New(e.file.DebugDir, e.fs, e.renderer)
		sinks = func(id string) ports.DebugSink { return root.ForRender(id) }
	}

	dlv := delivery.New(e.fs, e.file.OutputDir, e.log)
	return orchestrator.New(stillStage, videoStage, dlv, nil, sinks, e.log)
}
