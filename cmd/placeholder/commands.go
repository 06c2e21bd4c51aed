package main

import (
	"fmt"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/placeholder/pkg/adapters/codecdetect"
	"github.com/user/placeholder/pkg/adapters/ffmpegencoder"
	"github.com/user/placeholder/pkg/adapters/mjpegencoder"
	"github.com/user/placeholder/pkg/adapters/nullsink"
	"github.com/user/placeholder/pkg/adapters/smartencoder"
	"github.com/user/placeholder/pkg/config"
	"github.com/user/placeholder/pkg/delivery"
	"github.com/user/placeholder/pkg/orchestrator"
	"github.com/user/placeholder/pkg/pipeline"
	"github.com/user/placeholder/pkg/placeholder"
	"github.com/user/placeholder/pkg/ports"
	"github.com/user/placeholder/pkg/stages/still"
	"github.com/user/placeholder/pkg/summarizer"
)

func runImage(c *cli.Context) error {
	e, err := newEnv(c, false)
	if err != nil {
		return err
	}
	orch := e.orchestrator()
	cfg := e.params.AssetConfig()

	if c.Bool("stdout") {
		asset, res, err := orch.RenderImage(c.Context, cfg)
		if err != nil {
			return err
		}
		if err := e.emit(asset); err != nil {
			return err
		}
		e.writeSummary(c, res)
		return nil
	}

	res, err := orch.RunImage(c.Context, orchestrator.ImageJob{Config: cfg, Output: e.file.Output})
	if err != nil {
		return err
	}
	e.writeSummary(c, res)
	return nil
}

func runVideo(c *cli.Context) error {
	e, err := newEnv(c, true)
	if err != nil {
		return err
	}
	orch := e.orchestrator()
	cfg := e.params.VideoConfig()

	bar := newProgressBar(e.stderr)
	if e.file.Log.Format == "json" || e.file.Log.Level == "quiet" {
		bar = nil
	}
	defer bar.Finish()

	if c.Bool("stdout") {
		asset, res, err := orch.RenderVideo(c.Context, cfg, bar.Update)
		if err != nil {
			return err
		}
		if err := e.emit(asset); err != nil {
			return err
		}
		e.writeSummary(c, res)
		return nil
	}

	res, err := orch.RunVideo(c.Context, orchestrator.VideoJob{
		Config:   cfg,
		Output:   e.file.Output,
		Progress: bar.Update,
	})
	if err != nil {
		return err
	}
	e.writeSummary(c, res)
	return nil
}

func runPreview(c *cli.Context) error {
	e, err := newEnv(c, false)
	if err != nil {
		return err
	}
	stage := still.NewStage(e.renderer, nullsink.New(), e.log.WithComponent("preview"), e.params.FrameOptions())
	cfg := e.params.AssetConfig()

	if c.Bool("data-url") {
		url, err := stage.DataURL(c.Context, cfg)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(e.stdout, url)
		return err
	}

	img, err := stage.Preview(c.Context, cfg, c.Int("max-size"))
	if err != nil {
		return err
	}
	data, err := e.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	b := img.Bounds()
	asset := pipeline.EncodedAsset{
		Kind:     pipeline.KindStill,
		Data:     data,
		MIMEType: still.MIMEType,
		Ext:      "png",
		Width:    b.Dx(),
		Height:   b.Dy(),
	}

	if c.Bool("stdout") {
		return e.emit(asset)
	}
	path, err := delivery.New(e.fs, e.file.OutputDir, e.log).Save(asset, e.file.Output)
	if err != nil {
		return err
	}
	e.log.Info("Output saved to %s", path)
	return nil
}

func runPresets(c *cli.Context) error {
	w := c.App.Writer
	fmt.Fprintf(w, "%-20s %-20s %s\n", l10n.T("Name"), l10n.T("Slug"), l10n.T("Size"))
	for _, p := range placeholder.SizePresets {
		fmt.Fprintf(w, "%-20s %-20s %dx%d\n", p.Name, p.Slug(), p.Width, p.Height)
	}
	return nil
}

func runInspect(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("inspect: expected one FILE argument, got %d", c.NArg())
	}
	report, err := codecdetect.DetectFromFile(c.Args().First())
	if err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "%-12s %s\n", l10n.T("Container")+":", report.Container)
	fmt.Fprintf(w, "%-12s %s\n", l10n.T("Codec")+":", report.Codec)
	fmt.Fprintf(w, "%-12s %s\n", l10n.T("MIME Type")+":", report.MIMEType())
	if report.Width > 0 {
		fmt.Fprintf(w, "%-12s %dx%d\n", l10n.T("Dimensions")+":", report.Width, report.Height)
	}
	if report.Samples > 0 {
		fmt.Fprintf(w, "%-12s %d\n", l10n.T("Frames")+":", report.Samples)
	}
	if report.Duration > 0 {
		fmt.Fprintf(w, "%-12s %s\n", l10n.T("Duration")+":", report.Duration)
	}
	return nil
}

func runVersion(c *cli.Context) error {
	w := c.App.Writer
	fmt.Fprintln(w, l10n.F("placeholder version %s", version))

	log := newLogger(config.LogConfig{Level: c.String("log-level")}, c.App.ErrWriter)
	ff := ffmpegencoder.New(ffmpegencoder.Options{FFmpegPath: c.String("ffmpeg"), Logger: log})
	if v, err := ff.Version(c.Context); err == nil {
		path, _ := ff.Path(c.Context)
		fmt.Fprintln(w, l10n.F("ffmpeg: %s (%s)", v, path))
	} else {
		fmt.Fprintln(w, l10n.T("ffmpeg: not found"))
	}

	codecs := []ports.Codec{ports.CodecVP9, ports.CodecVP8, ports.CodecH264, ports.CodecAV1, ports.CodecMJPEG}
	enc := smartencoder.New(smartencoder.Options{
		Logger:   log,
		Backends: []ports.CodecBackend{ff, mjpegencoder.New()},
	})
	available := enc.Availability(c.Context, codecs)

	fmt.Fprintln(w, l10n.T("Codecs:"))
	for _, codec := range codecs {
		backend, ok := available[codec]
		if !ok {
			backend = l10n.T("unavailable")
		}
		fmt.Fprintf(w, "  %-6s %s\n", codec, backend)
	}
	return nil
}

// emit writes the asset bytes to standard output.
func (e *env) emit(asset pipeline.EncodedAsset) error {
	if _, err := e.stdout.Write(asset.Data); err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}
	return nil
}

// writeSummary writes the --summary report; "-" prints it instead. Failures
// are logged, never fatal.
func (e *env) writeSummary(c *cli.Context, res orchestrator.RunResult) {
	path := c.String("summary")
	if path == "" {
		return
	}

	cfg := e.params.AssetConfig()
	b := summarizer.NewBuilder().
		WithRenderID(res.ID).
		WithElapsed(res.Elapsed).
		WithAsset(summarizer.AssetInfo{
			Kind:            string(res.Kind),
			Width:           res.Width,
			Height:          res.Height,
			Label:           cfg.Label(),
			BackgroundColor: cfg.BackgroundColor,
			TextColor:       cfg.TextColor,
			Duration:        res.Duration,
			FPS:             e.params.FPS,
			Frames:          res.Frames,
		}).
		WithOutput(summarizer.OutputInfo{
			Path:     res.Path,
			MIMEType: res.MIMEType,
			Bytes:    res.Bytes,
			DebugDir: res.DebugDir,
		})
	if res.Kind == pipeline.KindVideo {
		b.WithEncoding(summarizer.EncodingInfo{
			Requested:    e.file.Video.Codecs,
			Codec:        res.Codec,
			Backend:      res.Backend,
			FallbackUsed: res.FallbackUsed,
			Bitrate:      e.params.Bitrate,
		})
	}

	formatter := summarizer.NewMarkdownFormatter(
		summarizer.WithTranslator(l10n.T),
		summarizer.WithVersion(version),
	)
	w := summarizer.NewWriter(formatter, e.fs)

	var err error
	if path == "-" {
		out := e.stdout
		if c.Bool("stdout") {
			out = e.stderr
		}
		err = w.Print(out, b.Build())
	} else {
		err = w.Write(path, b.Build())
	}
	if err != nil {
		e.log.Warn("Failed to write summary: %v", err)
	}
}
