package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/fortytw2/leaktest"

	"github.com/user/placeholder/pkg/adapters/logger"
	"github.com/user/placeholder/pkg/mocks"
	"github.com/user/placeholder/pkg/pipeline"
	"github.com/user/placeholder/pkg/ports"
)

func videoConfig(w, h int, duration float64, fps int) pipeline.VideoConfig {
	return pipeline.VideoConfig{
		AssetConfig: pipeline.AssetConfig{
			Width:           w,
			Height:          h,
			BackgroundColor: "#000000",
			TextColor:       "#FFFFFF",
		},
		Duration: duration,
		FPS:      fps,
	}
}

type fixture struct {
	renderer *mocks.Renderer
	encoder  *mocks.StreamEncoder
	pacer    *mocks.Pacer
	sink     *mocks.DebugSink
	progress []pipeline.Progress
	stage    *Stage
}

func newFixture(opts Options) *fixture {
	f := &fixture{
		renderer: &mocks.Renderer{},
		encoder:  &mocks.StreamEncoder{},
		pacer:    mocks.NewPacer(),
		sink:     mocks.NewDebugSink(true),
	}
	opts.Progress = func(p pipeline.Progress) {
		f.progress = append(f.progress, p)
	}
	f.stage = New(f.renderer, f.encoder, f.pacer, f.sink, logger.NewNoop(), opts)
	return f
}

func (f *fixture) canvas(t *testing.T) *mocks.Canvas {
	t.Helper()
	if len(f.renderer.Canvases) != 1 {
		t.Fatalf("expected 1 canvas, got %d", len(f.renderer.Canvases))
	}
	return f.renderer.Canvases[0]
}

func (f *fixture) session(t *testing.T) *mocks.EncoderSession {
	t.Helper()
	if len(f.encoder.Sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(f.encoder.Sessions))
	}
	return f.encoder.Sessions[0]
}

func (f *fixture) states() []pipeline.RecorderState {
	var states []pipeline.RecorderState
	for _, p := range f.progress {
		if len(states) == 0 || states[len(states)-1] != p.State {
			states = append(states, p.State)
		}
	}
	return states
}

func TestStage_Execute(t *testing.T) {
	f := newFixture(DefaultOptions())

	asset, err := f.stage.Execute(context.Background(), videoConfig(200, 200, 1, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 10 frames, one chunk per frame in the mock.
	var want strings.Builder
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&want, "chunk-%d;", i)
	}
	if string(asset.Data) != want.String() {
		t.Errorf("data = %q, want %q", asset.Data, want.String())
	}
	if asset.MIMEType != "video/webm;codecs=vp9" {
		t.Errorf("MIME type = %q", asset.MIMEType)
	}
	if asset.Kind != pipeline.KindVideo || asset.Frames != 10 || asset.Codec != "vp9" || asset.FallbackUsed {
		t.Errorf("unexpected asset metadata: %+v", asset)
	}

	session := f.session(t)
	if session.Frames != 10 {
		t.Errorf("pushed %d frames, want 10", session.Frames)
	}
	if !session.StartCalled || session.Timeslice != DefaultTimeslice {
		t.Errorf("session started=%v timeslice=%v", session.StartCalled, session.Timeslice)
	}
	if !session.StopCalled || session.CloseCalled == 0 {
		t.Error("expected session to be stopped and closed")
	}

	if f.pacer.Scheduler.Waits != 10 {
		t.Errorf("scheduler waited %d times, want 10", f.pacer.Scheduler.Waits)
	}
	if !f.pacer.Scheduler.Stopped {
		t.Error("expected scheduler to be stopped")
	}
	if len(f.pacer.PaceCalls) != 1 || f.pacer.PaceCalls[0] != 10 {
		t.Errorf("pace calls = %v, want [10]", f.pacer.PaceCalls)
	}

	opts := f.encoder.Options[0]
	if opts.Width != 200 || opts.Height != 200 || opts.FPS != 10 || opts.Bitrate != DefaultBitrate {
		t.Errorf("stream options = %+v", opts)
	}
	if got := f.encoder.OpenCalls[0]; len(got) != len(DefaultCodecs) || got[0] != ports.CodecVP9 || got[1] != ports.CodecVP8 {
		t.Errorf("preferences = %v", got)
	}
}

func TestStage_Execute_FramesAndOverlay(t *testing.T) {
	f := newFixture(DefaultOptions())

	if _, err := f.stage.Execute(context.Background(), videoConfig(200, 200, 1, 10)); err != nil {
		t.Fatal(err)
	}

	canvas := f.canvas(t)
	if len(canvas.Fills) != 10 {
		t.Fatalf("expected 10 painted frames, got %d", len(canvas.Fills))
	}

	// Every frame paints a label and a timer, in frame order.
	if len(canvas.Texts) != 20 {
		t.Fatalf("expected 20 texts, got %d", len(canvas.Texts))
	}
	for i := 0; i < 10; i++ {
		want := fmt.Sprintf("%.1fs / 1s", float64(i)/10)
		if got := canvas.Texts[2*i+1].Text; got != want {
			t.Errorf("frame %d timer = %q, want %q", i, got, want)
		}
	}

	// Frame 0 has no fill rectangle; every later frame has track + fill.
	// The fill of frame 5 is half the track.
	rects := canvas.Rects
	if len(rects) != 1+9*2 {
		t.Fatalf("expected 19 rects, got %d", len(rects))
	}
	track, fill := rects[1+4*2], rects[1+4*2+1]
	if fill.W/track.W != 0.5 {
		t.Errorf("frame 5 progress = %v, want 0.5", fill.W/track.W)
	}

	// Progress reports count painted frames.
	var frames []int
	for _, p := range f.progress {
		if p.State == pipeline.StateRecording && p.Frame > 0 {
			frames = append(frames, p.Frame)
		}
	}
	for i, n := range frames {
		if n != i+1 {
			t.Fatalf("progress frames = %v, want strictly increasing 1..10", frames)
		}
	}
	if len(frames) != 10 {
		t.Errorf("got %d frame progress reports, want 10", len(frames))
	}
	last := f.progress[len(f.progress)-1]
	if last.State != pipeline.StateSucceeded || last.Fraction() != 1 {
		t.Errorf("last progress = %+v", last)
	}
}

func TestStage_Execute_StateTransitions(t *testing.T) {
	f := newFixture(DefaultOptions())

	if _, err := f.stage.Execute(context.Background(), videoConfig(64, 64, 0.5, 10)); err != nil {
		t.Fatal(err)
	}

	want := []pipeline.RecorderState{
		pipeline.StateNegotiating,
		pipeline.StateRecording,
		pipeline.StateFlushing,
		pipeline.StateSucceeded,
	}
	got := f.states()
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("states = %v, want %v", got, want)
	}
}

func TestStage_Execute_TotalFramesRounding(t *testing.T) {
	tests := []struct {
		duration float64
		fps      int
		want     int
	}{
		{1, 10, 10},
		{0.1, 1, 1},
		{2.5, 30, 75},
		{0.25, 10, 3},
	}

	for _, tt := range tests {
		f := newFixture(DefaultOptions())
		asset, err := f.stage.Execute(context.Background(), videoConfig(32, 32, tt.duration, tt.fps))
		if err != nil {
			t.Fatalf("duration=%v fps=%d: %v", tt.duration, tt.fps, err)
		}
		if asset.Frames != tt.want || f.session(t).Frames != tt.want {
			t.Errorf("duration=%v fps=%d: frames = %d, want %d", tt.duration, tt.fps, asset.Frames, tt.want)
		}
	}
}

func TestStage_Execute_DefaultFPS(t *testing.T) {
	f := newFixture(DefaultOptions())

	asset, err := f.stage.Execute(context.Background(), videoConfig(32, 32, 1, 0))
	if err != nil {
		t.Fatal(err)
	}
	if asset.Frames != pipeline.DefaultFPS {
		t.Errorf("frames = %d, want %d", asset.Frames, pipeline.DefaultFPS)
	}
}

func TestStage_Execute_BatchedChunks(t *testing.T) {
	f := newFixture(DefaultOptions())
	f.encoder.Template.ChunkEvery = 3

	asset, err := f.stage.Execute(context.Background(), videoConfig(32, 32, 1, 10))
	if err != nil {
		t.Fatal(err)
	}

	// 3 + 3 + 3 frames during recording, 1 frame flushed on stop.
	if got := string(asset.Data); got != "chunk-0;chunk-1;chunk-2;chunk-3;" {
		t.Errorf("data = %q", got)
	}
	if len(f.sink.Chunks) != 4 {
		t.Errorf("expected 4 debug chunks, got %d", len(f.sink.Chunks))
	}
}

func TestStage_Execute_DelayedChunksKeepOrder(t *testing.T) {
	f := newFixture(DefaultOptions())
	f.encoder.Template.HoldChunks = true

	asset, err := f.stage.Execute(context.Background(), videoConfig(32, 32, 0.5, 10))
	if err != nil {
		t.Fatal(err)
	}
	if got := string(asset.Data); got != "chunk-0;chunk-1;chunk-2;chunk-3;chunk-4;" {
		t.Errorf("data = %q", got)
	}
}

func TestStage_Execute_OutOfOrderChunk(t *testing.T) {
	f := newFixture(DefaultOptions())
	f.encoder.Template.SwapChunks = true

	_, err := f.stage.Execute(context.Background(), videoConfig(32, 32, 1, 10))
	if !errors.Is(err, pipeline.ErrEncodingRuntime) {
		t.Fatalf("expected ErrEncodingRuntime, got %v", err)
	}
	if !strings.Contains(err.Error(), "chunk 1 arrived, expected 0") {
		t.Errorf("unexpected error text: %v", err)
	}
	if f.session(t).Frames != 1 {
		t.Errorf("expected recording to stop after the first frame, pushed %d", f.session(t).Frames)
	}
}

func TestStage_Execute_NegotiationFailure(t *testing.T) {
	f := newFixture(DefaultOptions())
	f.encoder.OpenFunc = func(ctx context.Context, opts ports.StreamOptions, preferences []ports.Codec) (ports.EncoderSession, error) {
		return nil, errors.New("no codec")
	}

	_, err := f.stage.Execute(context.Background(), videoConfig(32, 32, 1, 10))
	if !errors.Is(err, pipeline.ErrEncoderUnsupported) {
		t.Fatalf("expected ErrEncoderUnsupported, got %v", err)
	}

	canvas := f.canvas(t)
	if len(canvas.Fills) != 0 || len(canvas.Texts) != 0 {
		t.Errorf("no frame may be painted before a codec is secured, got %d fills", len(canvas.Fills))
	}
	if f.pacer.Scheduler.Waits != 0 {
		t.Errorf("scheduler used %d times", f.pacer.Scheduler.Waits)
	}
	if got := f.states(); got[len(got)-1] != pipeline.StateFailed {
		t.Errorf("final state = %v", got[len(got)-1])
	}
}

func TestStage_Execute_SurfaceUnavailable(t *testing.T) {
	f := newFixture(DefaultOptions())
	f.renderer.CreateCanvasFunc = func(width, height int, bg color.Color) (ports.Canvas, error) {
		return nil, errors.New("invalid size")
	}

	_, err := f.stage.Execute(context.Background(), videoConfig(0, 32, 1, 10))
	if !errors.Is(err, pipeline.ErrSurfaceUnavailable) {
		t.Fatalf("expected ErrSurfaceUnavailable, got %v", err)
	}
	if len(f.encoder.OpenCalls) != 0 {
		t.Error("encoder must not be opened without a surface")
	}
}

func TestStage_Execute_RuntimeError(t *testing.T) {
	f := newFixture(DefaultOptions())
	f.encoder.Template.FailAfterFrames = 4

	asset, err := f.stage.Execute(context.Background(), videoConfig(32, 32, 1, 10))
	if !errors.Is(err, pipeline.ErrEncodingRuntime) || !errors.Is(err, mocks.ErrInjected) {
		t.Fatalf("expected injected runtime error, got %v", err)
	}
	if asset.Data != nil {
		t.Error("no partial asset may be returned")
	}

	session := f.session(t)
	if session.Frames != 4 {
		t.Errorf("expected loop to abort after frame 4, pushed %d", session.Frames)
	}
	if session.CloseCalled == 0 {
		t.Error("expected session to be closed")
	}
	if f.pacer.Scheduler.Waits != 4 {
		t.Errorf("scheduler waited %d times, want 4", f.pacer.Scheduler.Waits)
	}

	var report struct {
		State  string `json:"state"`
		Chunks int    `json:"chunks"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(f.sink.SessionJSON, &report); err != nil {
		t.Fatalf("invalid session report: %v", err)
	}
	if report.State != "failed" || report.Chunks != 3 || report.Error == "" {
		t.Errorf("report = %+v", report)
	}
}

func TestStage_Execute_PushFrameError(t *testing.T) {
	f := newFixture(DefaultOptions())
	f.encoder.Template.PushErr = errors.New("broken pipe")

	_, err := f.stage.Execute(context.Background(), videoConfig(32, 32, 1, 10))
	if !errors.Is(err, pipeline.ErrEncodingRuntime) {
		t.Fatalf("expected ErrEncodingRuntime, got %v", err)
	}
}

func TestStage_Execute_EmptyOutput(t *testing.T) {
	f := newFixture(DefaultOptions())
	f.encoder.Template.Silent = true

	_, err := f.stage.Execute(context.Background(), videoConfig(32, 32, 1, 10))
	if !errors.Is(err, pipeline.ErrEmptyOutput) {
		t.Fatalf("expected ErrEmptyOutput, got %v", err)
	}
	if f.session(t).Frames != 10 {
		t.Errorf("expected all frames before flush, pushed %d", f.session(t).Frames)
	}
}

func TestStage_Execute_Fallback(t *testing.T) {
	f := newFixture(DefaultOptions())
	f.encoder.OpenFunc = func(ctx context.Context, opts ports.StreamOptions, preferences []ports.Codec) (ports.EncoderSession, error) {
		s := mocks.NewEncoderSession(ports.CodecInfo{Codec: ports.CodecVP8, MIMEType: "video/webm;codecs=vp8", Ext: "webm"})
		f.encoder.Sessions = append(f.encoder.Sessions, s)
		return s, nil
	}

	asset, err := f.stage.Execute(context.Background(), videoConfig(32, 32, 0.2, 10))
	if err != nil {
		t.Fatal(err)
	}
	if !asset.FallbackUsed || asset.MIMEType != "video/webm;codecs=vp8" {
		t.Errorf("asset = %+v", asset)
	}
}

func TestStage_Execute_Cancelled(t *testing.T) {
	defer leaktest.Check(t)()

	f := newFixture(DefaultOptions())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f.pacer.Scheduler.WaitFunc = func(ctx context.Context, n int) error {
		if n == 3 {
			cancel()
		}
		return ctx.Err()
	}

	_, err := f.stage.Execute(ctx, videoConfig(32, 32, 1, 10))
	if !errors.Is(err, pipeline.ErrCancelled) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}

	session := f.session(t)
	if session.Frames != 3 {
		t.Errorf("pushed %d frames, want 3", session.Frames)
	}
	if session.CloseCalled == 0 || !session.Closed() {
		t.Error("expected session to be released")
	}
	if got := f.states(); got[len(got)-1] != pipeline.StateCancelled {
		t.Errorf("final state = %v", got[len(got)-1])
	}
}

func TestStage_Execute_CancelledWhileFlushing(t *testing.T) {
	f := newFixture(DefaultOptions())
	ctx, cancel := context.WithCancel(context.Background())

	f.encoder.OpenFunc = func(_ context.Context, opts ports.StreamOptions, preferences []ports.Codec) (ports.EncoderSession, error) {
		return &stallingSession{EncoderSession: mocks.NewEncoderSession(ports.CodecInfo{Codec: ports.CodecVP9}), cancel: cancel}, nil
	}

	_, err := f.stage.Execute(ctx, videoConfig(32, 32, 0.2, 10))
	if !errors.Is(err, pipeline.ErrCancelled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

// stallingSession never delivers its stop event and cancels the render instead.
type stallingSession struct {
	*mocks.EncoderSession
	cancel context.CancelFunc
}

func (s *stallingSession) Stop() error {
	s.cancel()
	return nil
}

func TestStage_Execute_IndependentRuns(t *testing.T) {
	f := newFixture(DefaultOptions())

	first, err := f.stage.Execute(context.Background(), videoConfig(32, 32, 0.3, 10))
	if err != nil {
		t.Fatal(err)
	}
	second, err := f.stage.Execute(context.Background(), videoConfig(32, 32, 0.3, 10))
	if err != nil {
		t.Fatal(err)
	}

	if string(first.Data) != string(second.Data) {
		t.Errorf("runs share state: %q vs %q", first.Data, second.Data)
	}
	if len(f.encoder.Sessions) != 2 {
		t.Errorf("expected a session per run, got %d", len(f.encoder.Sessions))
	}
}

func TestNew_Defaults(t *testing.T) {
	stage := New(&mocks.Renderer{}, &mocks.StreamEncoder{}, mocks.NewPacer(), &mocks.NullSink{}, logger.NewNoop(), Options{})

	if stage.opts.Timeslice != 100*time.Millisecond {
		t.Errorf("timeslice = %v", stage.opts.Timeslice)
	}
	if len(stage.opts.Codecs) != len(DefaultCodecs) || stage.opts.Codecs[0] != ports.CodecVP9 || stage.opts.Codecs[2] != ports.CodecMJPEG {
		t.Errorf("codecs = %v", stage.opts.Codecs)
	}
	if stage.opts.Bitrate != 2500 {
		t.Errorf("bitrate = %d", stage.opts.Bitrate)
	}
}
