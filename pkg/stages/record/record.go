// Package record implements the video recording stage.
//
// A recording paints every frame of a placeholder video onto one canvas,
// feeds the frames to a streaming encoder session and collects the chunks the
// session emits. The lifecycle is
//
//	Idle -> Negotiating -> Recording -> Flushing -> Succeeded | Failed | Cancelled
//
// and is owned by a single Execute call.
package record

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/user/placeholder/pkg/pipeline"
	"github.com/user/placeholder/pkg/ports"
	"github.com/user/placeholder/pkg/stages/frame"
)

// Defaults for Options.
const (
	DefaultTimeslice = 100 * time.Millisecond
	DefaultBitrate   = 2500 // kbps
	DefaultQuality   = 85
)

// DefaultCodecs is the codec preference list: VP9, then VP8, then the pure-Go
// MJPEG encoder when ffmpeg is missing.
var DefaultCodecs = []ports.Codec{ports.CodecVP9, ports.CodecVP8, ports.CodecMJPEG}

// Options configures the record stage.
type Options struct {
	Codecs    []ports.Codec // preference order, primary first
	Timeslice time.Duration // chunk emission interval
	Bitrate   int           // kbps
	Quality   int           // for intra-only codecs
	Frame     frame.Options
	Progress  pipeline.ProgressFunc
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		Codecs:    append([]ports.Codec(nil), DefaultCodecs...),
		Timeslice: DefaultTimeslice,
		Bitrate:   DefaultBitrate,
		Quality:   DefaultQuality,
	}
}

// Stage renders placeholder videos.
type Stage struct {
	renderer ports.Renderer
	encoder  ports.StreamEncoder
	pacer    ports.Pacer
	sink     ports.DebugSink
	logger   ports.Logger
	opts     Options
}

var _ pipeline.VideoStage = (*Stage)(nil)

// New creates a new record stage.
func New(renderer ports.Renderer, encoder ports.StreamEncoder, pacer ports.Pacer, sink ports.DebugSink, logger ports.Logger, opts Options) *Stage {
	if len(opts.Codecs) == 0 {
		opts.Codecs = append([]ports.Codec(nil), DefaultCodecs...)
	}
	if opts.Timeslice <= 0 {
		opts.Timeslice = DefaultTimeslice
	}
	if opts.Bitrate <= 0 {
		opts.Bitrate = DefaultBitrate
	}
	if opts.Quality <= 0 {
		opts.Quality = DefaultQuality
	}
	return &Stage{
		renderer: renderer,
		encoder:  encoder,
		pacer:    pacer,
		sink:     sink,
		logger:   logger.WithComponent("record"),
		opts:     opts,
	}
}

// Execute records cfg with the stage's progress callback.
func (s *Stage) Execute(ctx context.Context, cfg pipeline.VideoConfig) (pipeline.EncodedAsset, error) {
	return s.ExecuteWithProgress(ctx, cfg, s.opts.Progress)
}

// ExecuteWithProgress records cfg, reporting progress to fn (which may be nil).
//
// On failure the chunks collected so far are discarded and no partial asset
// is returned. Cancelling ctx stops the frame loop, closes the encoder session
// and returns an error wrapping both pipeline.ErrCancelled and ctx.Err().
func (s *Stage) ExecuteWithProgress(ctx context.Context, cfg pipeline.VideoConfig, fn pipeline.ProgressFunc) (pipeline.EncodedAsset, error) {
	if cfg.FPS <= 0 {
		cfg.FPS = pipeline.DefaultFPS
	}

	sess := newSession(cfg.TotalFrames(), fn)
	sess.enter(pipeline.StateNegotiating)

	canvas, err := s.renderer.CreateCanvas(cfg.Width, cfg.Height, pipeline.ParseColor(cfg.BackgroundColor))
	if err != nil {
		return pipeline.EncodedAsset{}, s.settle(ctx, sess, fmt.Errorf("%w: %w", pipeline.ErrSurfaceUnavailable, err))
	}

	enc, err := s.encoder.Open(ctx, ports.StreamOptions{
		Width:   cfg.Width,
		Height:  cfg.Height,
		FPS:     cfg.FPS,
		Bitrate: s.opts.Bitrate,
		Quality: s.opts.Quality,
	}, s.opts.Codecs)
	if err != nil {
		if !errors.Is(err, pipeline.ErrEncoderUnsupported) {
			err = fmt.Errorf("%w: %w", pipeline.ErrEncoderUnsupported, err)
		}
		return pipeline.EncodedAsset{}, s.settle(ctx, sess, err)
	}
	defer enc.Close()

	sess.info = enc.Info()
	s.logger.Debug("Recording %d frames at %d fps as %s (%s)", sess.total, cfg.FPS, sess.info.MIMEType, sess.info.Backend)

	sched := s.pacer.Pace(cfg.FPS)
	defer sched.Stop()

	if err := enc.Start(s.opts.Timeslice); err != nil {
		return pipeline.EncodedAsset{}, s.settle(ctx, sess, fmt.Errorf("%w: start session: %w", pipeline.ErrEncodingRuntime, err))
	}
	sess.enter(pipeline.StateRecording)

	for sess.frame < sess.total {
		if err := sched.Wait(ctx); err != nil {
			return pipeline.EncodedAsset{}, s.settle(ctx, sess, fmt.Errorf("wait for frame %d: %w", sess.frame, err))
		}

		overlay := pipeline.NewOverlay(cfg, sess.frame)
		s.opts.Frame.Render(canvas, cfg.AssetConfig, &overlay)
		img := canvas.ToImage()

		if s.sink.Enabled() {
			if err := s.sink.SaveFrame(sess.frame, img); err != nil {
				s.logger.Warn("Failed to save debug frame %d: %v", sess.frame, err)
			}
		}

		if err := enc.PushFrame(img); err != nil {
			return pipeline.EncodedAsset{}, s.settle(ctx, sess, fmt.Errorf("%w: push frame %d: %w", pipeline.ErrEncodingRuntime, sess.frame, err))
		}
		sess.advance()

		if err := s.drain(sess, enc.Events()); err != nil {
			return pipeline.EncodedAsset{}, s.settle(ctx, sess, err)
		}
	}

	sess.enter(pipeline.StateFlushing)
	if err := enc.Stop(); err != nil {
		return pipeline.EncodedAsset{}, s.settle(ctx, sess, fmt.Errorf("%w: stop session: %w", pipeline.ErrEncodingRuntime, err))
	}
	if err := s.collect(ctx, sess, enc.Events()); err != nil {
		return pipeline.EncodedAsset{}, s.settle(ctx, sess, err)
	}

	if len(sess.chunks) == 0 {
		return pipeline.EncodedAsset{}, s.settle(ctx, sess, fmt.Errorf("%w after %d frames", pipeline.ErrEmptyOutput, sess.frame))
	}

	data := bytes.Join(sess.chunks, nil)
	sess.enter(pipeline.StateSucceeded)
	s.saveReport(sess, nil)
	s.logger.Debug("Recorded %d frames in %d chunks: %d bytes", sess.frame, len(sess.chunks), len(data))

	return pipeline.EncodedAsset{
		Kind:         pipeline.KindVideo,
		Data:         data,
		MIMEType:     sess.info.MIMEType,
		Ext:          sess.info.Ext,
		Width:        cfg.Width,
		Height:       cfg.Height,
		Duration:     cfg.Duration,
		Frames:       sess.frame,
		Codec:        string(sess.info.Codec),
		Backend:      sess.info.Backend,
		FallbackUsed: sess.info.Codec != s.opts.Codecs[0],
	}, nil
}

// drain consumes the events that are already available without blocking.
func (s *Stage) drain(sess *session, events <-chan ports.SessionEvent) error {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return fmt.Errorf("%w: session closed while recording", pipeline.ErrEncodingRuntime)
			}
			if ev.Kind == ports.EventStopped {
				return fmt.Errorf("%w: session stopped while recording", pipeline.ErrEncodingRuntime)
			}
			if err := s.handle(sess, ev); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// collect consumes events until the session reports it has stopped.
func (s *Stage) collect(ctx context.Context, sess *session, events <-chan ports.SessionEvent) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return fmt.Errorf("%w: session closed before stop event", pipeline.ErrEncodingRuntime)
			}
			if ev.Kind == ports.EventStopped {
				return nil
			}
			if err := s.handle(sess, ev); err != nil {
				return err
			}
		}
	}
}

func (s *Stage) handle(sess *session, ev ports.SessionEvent) error {
	switch ev.Kind {
	case ports.EventError:
		return fmt.Errorf("%w: %w", pipeline.ErrEncodingRuntime, ev.Err)
	case ports.EventChunk:
		if err := sess.append(ev.Chunk); err != nil {
			return err
		}
		if s.sink.Enabled() && len(ev.Chunk.Data) > 0 {
			if err := s.sink.SaveChunk(ev.Chunk.Seq, ev.Chunk.Data); err != nil {
				s.logger.Warn("Failed to save debug chunk %d: %v", ev.Chunk.Seq, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: unexpected %s event", pipeline.ErrEncodingRuntime, ev.Kind)
	}
}

// settle moves the session to Failed or Cancelled and discards its chunks.
func (s *Stage) settle(ctx context.Context, sess *session, err error) error {
	sess.chunks = nil
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = fmt.Errorf("%w: %w", pipeline.ErrCancelled, ctxErr)
		sess.enter(pipeline.StateCancelled)
	} else {
		sess.enter(pipeline.StateFailed)
	}
	s.logger.Debug("Recording %s after %d of %d frames: %v", sess.state, sess.frame, sess.total, err)
	s.saveReport(sess, err)
	return err
}

func (s *Stage) saveReport(sess *session, cause error) {
	if !s.sink.Enabled() {
		return
	}
	data, err := json.MarshalIndent(sess.report(cause), "", "  ")
	if err != nil {
		return
	}
	if err := s.sink.SaveSessionJSON(data); err != nil {
		s.logger.Warn("Failed to save session report: %v", err)
	}
}
