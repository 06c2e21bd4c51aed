package ffmpegencoder

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/user/placeholder/pkg/ports"
)

const (
	defaultTimeslice = 100 * time.Millisecond
	readBufferSize   = 64 << 10
	stderrLines      = 20
)

// Session is one ffmpeg process encoding one video.
//
// Two goroutines run while the session is started: a reader that copies
// ffmpeg's stdout into a pending buffer, and a pump that turns the pending
// bytes into a chunk every timeslice and delivers events. The pump queues
// events internally so a slow consumer never stalls ffmpeg.
type Session struct {
	info   ports.CodecInfo
	opts   ports.StreamOptions
	path   string
	args   []string
	logger ports.Logger

	ctx    context.Context
	cancel context.CancelFunc
	events chan ports.SessionEvent
	stderr *lastLines

	mu      sync.Mutex
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	frame   *image.RGBA
	frames  int
	started bool
	stopped bool
	closed  bool

	// pending is guarded separately so the reader never waits on a
	// PushFrame blocked writing to ffmpeg.
	pendingMu sync.Mutex
	pending   []byte

	exited  chan error // reader result after cmd.Wait, buffered
	closing chan struct{}
	group   errgroup.Group
}

func newSession(ctx context.Context, path string, args []string, info ports.CodecInfo, opts ports.StreamOptions, logger ports.Logger) *Session {
	ctx, cancel := context.WithCancel(ctx)
	return &Session{
		info:    info,
		opts:    opts,
		path:    path,
		args:    args,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		events:  make(chan ports.SessionEvent),
		stderr:  newLastLines(stderrLines),
		exited:  make(chan error, 1),
		closing: make(chan struct{}),
	}
}

// Info implements ports.EncoderSession.
func (s *Session) Info() ports.CodecInfo {
	return s.info
}

// Events implements ports.EncoderSession.
func (s *Session) Events() <-chan ports.SessionEvent {
	return s.events
}

// Start launches ffmpeg and begins emitting a chunk every timeslice.
func (s *Session) Start(timeslice time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.stopped {
		return ErrStopped
	}
	if s.started {
		return nil
	}
	if timeslice <= 0 {
		timeslice = defaultTimeslice
	}

	cmd := exec.CommandContext(s.ctx, s.path, s.args...)
	cmd.Stderr = s.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		stdin.Close()
		return fmt.Errorf("stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	s.cmd = cmd
	s.stdin = stdin
	s.started = true
	s.logger.Debug("Started %s: %s", s.info.MIMEType, s.path)

	s.group.Go(func() error { return s.read(stdout) })
	s.group.Go(func() error { return s.pump(timeslice) })
	return nil
}

// PushFrame writes img to ffmpeg as one raw RGBA frame.
func (s *Session) PushFrame(img image.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrNotStarted
	}
	if s.stopped || s.closed {
		return ErrStopped
	}

	if _, err := s.stdin.Write(s.rgba(img).Pix); err != nil {
		return fmt.Errorf("write frame %d: %w: %s", s.frames, err, s.stderr.String())
	}
	s.frames++
	return nil
}

// rgba returns img as a tightly packed RGBA image of the session size.
func (s *Session) rgba(img image.Image) *image.RGBA {
	rect := image.Rect(0, 0, s.opts.Width, s.opts.Height)
	if m, ok := img.(*image.RGBA); ok && m.Rect == rect && m.Stride == 4*s.opts.Width {
		return m
	}
	if s.frame == nil {
		s.frame = image.NewRGBA(rect)
	}
	draw.Draw(s.frame, rect, img, img.Bounds().Min, draw.Src)
	return s.frame
}

// Stop closes ffmpeg's stdin. The remaining output and the stop event follow.
func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrNotStarted
	}
	if s.stopped || s.closed {
		return nil
	}
	s.stopped = true
	if err := s.stdin.Close(); err != nil {
		return fmt.Errorf("close stdin: %w", err)
	}
	return nil
}

// Close kills ffmpeg if it is still running and waits for the session's
// goroutines. Undelivered events are dropped.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	started := s.started
	close(s.closing)
	s.cancel()
	if started && !s.stopped {
		s.stdin.Close()
	}
	s.mu.Unlock()

	if !started {
		close(s.events)
		return nil
	}

	return s.group.Wait()
}

// read copies stdout into the pending buffer until ffmpeg exits.
func (s *Session) read(stdout io.Reader) error {
	buf := make([]byte, readBufferSize)
	var readErr error
	for {
		n, err := stdout.Read(buf)
		if n > 0 {
			s.pendingMu.Lock()
			s.pending = append(s.pending, buf[:n]...)
			s.pendingMu.Unlock()
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			readErr = err
			break
		}
	}

	err := s.cmd.Wait()
	if err == nil {
		err = readErr
	}
	s.exited <- err
	return nil
}

// takePending hands over the bytes read since the last chunk.
func (s *Session) takePending() []byte {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	data := s.pending
	s.pending = nil
	return data
}

// pump emits chunks every timeslice and the final event once ffmpeg exits.
func (s *Session) pump(timeslice time.Duration) error {
	defer close(s.events)

	ticker := time.NewTicker(timeslice)
	defer ticker.Stop()

	var (
		queue    []ports.SessionEvent
		seq      int
		exited   = s.exited
		finished bool
	)

	enqueueChunk := func() {
		if data := s.takePending(); len(data) > 0 {
			queue = append(queue, ports.SessionEvent{
				Kind:  ports.EventChunk,
				Chunk: ports.Chunk{Seq: seq, Data: data},
			})
			seq++
		}
	}

	for {
		var out chan<- ports.SessionEvent
		var next ports.SessionEvent
		if len(queue) > 0 {
			out = s.events
			next = queue[0]
		} else if finished {
			return nil
		}

		select {
		case <-s.closing:
			return nil
		case <-ticker.C:
			enqueueChunk()
		case err := <-exited:
			exited = nil
			finished = true
			enqueueChunk()
			queue = append(queue, s.finalEvent(err))
		case out <- next:
			queue = queue[1:]
		}
	}
}

func (s *Session) finalEvent(waitErr error) ports.SessionEvent {
	s.mu.Lock()
	stopped := s.stopped
	frames := s.frames
	s.mu.Unlock()

	switch {
	case waitErr != nil:
		return ports.SessionEvent{
			Kind: ports.EventError,
			Err:  fmt.Errorf("ffmpeg: %w: %s", waitErr, s.stderr.String()),
		}
	case !stopped:
		return ports.SessionEvent{
			Kind: ports.EventError,
			Err:  fmt.Errorf("%w after %d frames: %s", ErrExited, frames, s.stderr.String()),
		}
	default:
		s.logger.Debug("ffmpeg finished after %d frames", frames)
		return ports.SessionEvent{Kind: ports.EventStopped}
	}
}

// Ensure Session implements ports.EncoderSession
var _ ports.EncoderSession = (*Session)(nil)
