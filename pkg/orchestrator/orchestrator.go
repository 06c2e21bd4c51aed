// Package orchestrator coordinates a render from configuration to saved file.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/user/placeholder/pkg/adapters/logger"
	"github.com/user/placeholder/pkg/adapters/nullsink"
	"github.com/user/placeholder/pkg/delivery"
	"github.com/user/placeholder/pkg/pipeline"
	"github.com/user/placeholder/pkg/ports"
)

// StillFactory builds the still stage for one render around its debug sink.
type StillFactory func(sink ports.DebugSink) pipeline.StillStage

// VideoFactory builds the video stage for one render. progress must be
// called from the render goroutine as frames are painted.
type VideoFactory func(sink ports.DebugSink, progress pipeline.ProgressFunc) pipeline.VideoStage

// SinkFactory returns the debug sink for the render with the given ID.
type SinkFactory func(id string) ports.DebugSink

// ImageJob requests a still image.
type ImageJob struct {
	Config pipeline.AssetConfig
	// Output is the destination filename; empty selects the default name.
	Output string
}

// VideoJob requests a video.
type VideoJob struct {
	Config   pipeline.VideoConfig
	Output   string
	Progress pipeline.ProgressFunc // optional
}

// Orchestrator runs stages and hands their output to delivery.
type Orchestrator struct {
	still    StillFactory
	video    VideoFactory
	delivery *delivery.Delivery
	tracker  *delivery.Tracker
	sinks    SinkFactory
	logger   ports.Logger
	now      func() time.Time
}

// New creates a new Orchestrator. sinks and tracker may be nil.
func New(
	still StillFactory,
	video VideoFactory,
	dlv *delivery.Delivery,
	tracker *delivery.Tracker,
	sinks SinkFactory,
	log ports.Logger,
) *Orchestrator {
	if sinks == nil {
		sinks = func(string) ports.DebugSink { return nullsink.New() }
	}
	if tracker == nil {
		tracker = delivery.NewTracker()
	}
	if log == nil {
		log = logger.NewNoop()
	}
	return &Orchestrator{
		still:    still,
		video:    video,
		delivery: dlv,
		tracker:  tracker,
		sinks:    sinks,
		logger:   log,
		now:      time.Now,
	}
}

// Tracker returns the in-progress tracker shared by all runs.
func (o *Orchestrator) Tracker() *delivery.Tracker {
	return o.tracker
}

// RunImage renders a still and saves it.
func (o *Orchestrator) RunImage(ctx context.Context, job ImageJob) (RunResult, error) {
	return o.run(func(r *render) (pipeline.EncodedAsset, error) {
		return o.renderImage(ctx, r, job.Config)
	}, job.Output)
}

// RunVideo records a video and saves it.
func (o *Orchestrator) RunVideo(ctx context.Context, job VideoJob) (RunResult, error) {
	return o.run(func(r *render) (pipeline.EncodedAsset, error) {
		return o.renderVideo(ctx, r, job.Config, job.Progress)
	}, job.Output)
}

// RenderImage renders a still without saving it.
func (o *Orchestrator) RenderImage(ctx context.Context, cfg pipeline.AssetConfig) (pipeline.EncodedAsset, RunResult, error) {
	return o.renderOnly(func(r *render) (pipeline.EncodedAsset, error) {
		return o.renderImage(ctx, r, cfg)
	})
}

// RenderVideo records a video without saving it.
func (o *Orchestrator) RenderVideo(ctx context.Context, cfg pipeline.VideoConfig, progress pipeline.ProgressFunc) (pipeline.EncodedAsset, RunResult, error) {
	return o.renderOnly(func(r *render) (pipeline.EncodedAsset, error) {
		return o.renderVideo(ctx, r, cfg, progress)
	})
}

// render is the per-run state shared by the helpers below.
type render struct {
	id    string
	sink  ports.DebugSink
	start time.Time
}

func (o *Orchestrator) begin() (*render, error) {
	if err := o.tracker.Begin(); err != nil {
		o.logger.Warn("Another render is already in progress")
		return nil, err
	}
	id := uuid.NewString()
	return &render{id: id, sink: o.sinks(id), start: o.now()}, nil
}

func (o *Orchestrator) run(exec func(*render) (pipeline.EncodedAsset, error), output string) (RunResult, error) {
	r, err := o.begin()
	if err != nil {
		return RunResult{}, err
	}
	defer o.tracker.Done()

	asset, err := exec(r)
	if err != nil {
		return o.fail(r, err)
	}

	path, err := o.delivery.Save(asset, output)
	if err != nil {
		o.logger.Error("Failed to write output: %s", err)
		return RunResult{ID: r.id}, fmt.Errorf("deliver: %w", err)
	}
	o.logger.Info("Output saved to %s", path)

	return o.finish(r, asset, path), nil
}

func (o *Orchestrator) renderOnly(exec func(*render) (pipeline.EncodedAsset, error)) (pipeline.EncodedAsset, RunResult, error) {
	r, err := o.begin()
	if err != nil {
		return pipeline.EncodedAsset{}, RunResult{}, err
	}
	defer o.tracker.Done()

	asset, err := exec(r)
	if err != nil {
		res, err := o.fail(r, err)
		return pipeline.EncodedAsset{}, res, err
	}
	return asset, o.finish(r, asset, ""), nil
}

func (o *Orchestrator) renderImage(ctx context.Context, r *render, cfg pipeline.AssetConfig) (pipeline.EncodedAsset, error) {
	o.logger.Info("Rendering %dx%d image", cfg.Width, cfg.Height)

	asset, err := o.still(r.sink).Execute(ctx, cfg)
	if err != nil {
		return pipeline.EncodedAsset{}, fmt.Errorf("still stage: %w", err)
	}
	return asset, nil
}

func (o *Orchestrator) renderVideo(ctx context.Context, r *render, cfg pipeline.VideoConfig, progress pipeline.ProgressFunc) (pipeline.EncodedAsset, error) {
	if cfg.FPS <= 0 {
		cfg.FPS = pipeline.DefaultFPS
	}
	o.logger.Info("Recording %dx%d video: %ss at %d fps", cfg.Width, cfg.Height, pipeline.FormatSeconds(cfg.Duration), cfg.FPS)

	report := func(p pipeline.Progress) {
		o.tracker.Update(p)
		if progress != nil {
			progress(p)
		}
	}

	asset, err := o.video(r.sink, report).Execute(ctx, cfg)
	if err != nil {
		return pipeline.EncodedAsset{}, fmt.Errorf("record stage: %w", err)
	}
	o.logger.Info("Encoded with %s via %s (fallback: %v)", asset.Codec, asset.Backend, asset.FallbackUsed)
	return asset, nil
}

func (o *Orchestrator) fail(r *render, err error) (RunResult, error) {
	if errors.Is(err, pipeline.ErrCancelled) {
		o.logger.Warn("Interrupted, shutting down...")
	}
	o.logger.Error("Render %s failed: %v", r.id, err)
	return RunResult{ID: r.id, DebugDir: debugDir(r.sink)}, err
}

func (o *Orchestrator) finish(r *render, asset pipeline.EncodedAsset, path string) RunResult {
	elapsed := o.now().Sub(r.start)
	o.logger.Info("Render %s completed in %d ms", r.id, elapsed.Milliseconds())

	res := RunResult{
		ID:           r.id,
		Kind:         asset.Kind,
		Path:         path,
		MIMEType:     asset.MIMEType,
		Bytes:        asset.Size(),
		Width:        asset.Width,
		Height:       asset.Height,
		Duration:     asset.Duration,
		Frames:       asset.Frames,
		Codec:        asset.Codec,
		Backend:      asset.Backend,
		FallbackUsed: asset.FallbackUsed,
		Elapsed:      elapsed,
		DebugDir:     debugDir(r.sink),
	}
	if res.DebugDir != "" {
		o.logger.Info("Debug output in %s", res.DebugDir)
	}
	return res
}

func debugDir(sink ports.DebugSink) string {
	if d, ok := sink.(interface{ Dir() string }); ok && sink.Enabled() {
		return d.Dir()
	}
	return ""
}

// RunResult describes a finished render for the summary.
type RunResult struct {
	ID   string
	Kind pipeline.AssetKind

	// Output
	Path     string // empty when the asset was not saved
	MIMEType string
	Bytes    int64

	// Asset
	Width    int
	Height   int
	Duration float64 // seconds, video only
	Frames   int

	// Encoding
	Codec        string
	Backend      string
	FallbackUsed bool

	Elapsed  time.Duration
	DebugDir string
}
