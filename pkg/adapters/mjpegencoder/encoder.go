// Package mjpegencoder provides a pure-Go streaming encoder that writes
// Motion-JPEG in fragmented MP4. It needs no external tools, so it is the
// codec of last resort when ffmpeg is unavailable.
package mjpegencoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"sync"
	"time"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/placeholder/pkg/ports"
)

const (
	// Name is the backend name reported in CodecInfo.
	Name = "mjpeg"

	// MIMEType is the type of the produced container.
	MIMEType = "video/mp4;codecs=jpeg"

	// DefaultQuality is the JPEG quality when none is requested.
	DefaultQuality = 85

	// MaxDimension is the largest width or height an MP4 sample entry can describe.
	MaxDimension = 0xFFFF

	trackID       = 1
	ticksPerFrame = 1000
	eventBuffer   = 16
)

var (
	// ErrInvalidOptions is returned for sizes or frame rates MP4 cannot carry.
	ErrInvalidOptions = errors.New("mjpegencoder: invalid stream options")

	// ErrNotStarted is returned when frames are pushed before Start.
	ErrNotStarted = errors.New("mjpegencoder: session not started")

	// ErrStopped is returned when frames are pushed after Stop or Close.
	ErrStopped = errors.New("mjpegencoder: session stopped")
)

// Backend implements ports.CodecBackend for ports.CodecMJPEG.
type Backend struct {
	now func() time.Time
}

// New creates a new MJPEG backend.
func New() *Backend {
	return &Backend{now: time.Now}
}

// Name implements ports.CodecBackend.
func (b *Backend) Name() string {
	return Name
}

// Available reports whether codec can be produced. The backend has no
// external requirements.
func (b *Backend) Available(ctx context.Context, codec ports.Codec) bool {
	return codec == ports.CodecMJPEG
}

// OpenCodec opens a session. Only ports.CodecMJPEG is supported.
func (b *Backend) OpenCodec(ctx context.Context, codec ports.Codec, opts ports.StreamOptions) (ports.EncoderSession, error) {
	if codec != ports.CodecMJPEG {
		return nil, fmt.Errorf("mjpegencoder: unsupported codec %s", codec)
	}
	if opts.Width <= 0 || opts.Height <= 0 || opts.Width > MaxDimension || opts.Height > MaxDimension || opts.FPS <= 0 {
		return nil, fmt.Errorf("%w: %dx%d at %d fps", ErrInvalidOptions, opts.Width, opts.Height, opts.FPS)
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = DefaultQuality
	}
	return &Session{
		opts:   opts,
		now:    b.now,
		events: make(chan ports.SessionEvent, eventBuffer),
	}, nil
}

// Ensure Backend implements ports.CodecBackend
var _ ports.CodecBackend = (*Backend)(nil)

// Session encodes frames as JPEG samples, one moof/mdat fragment per frame.
//
// Encoding happens synchronously in PushFrame. Fragments accumulate in a
// pending buffer that is emitted as a chunk once per timeslice. Two slots
// of the event buffer stay reserved for Stop so it never blocks.
type Session struct {
	opts ports.StreamOptions
	now  func() time.Time

	mu        sync.Mutex
	events    chan ports.SessionEvent
	timeslice time.Duration
	lastEmit  time.Time
	pending   bytes.Buffer
	jpegBuf   bytes.Buffer
	seq       int
	frames    int
	started   bool
	stopped   bool
	closed    bool
}

// Info implements ports.EncoderSession.
func (s *Session) Info() ports.CodecInfo {
	return ports.CodecInfo{
		Codec:    ports.CodecMJPEG,
		MIMEType: MIMEType,
		Ext:      "mp4",
		Backend:  Name,
	}
}

// Events implements ports.EncoderSession.
func (s *Session) Events() <-chan ports.SessionEvent {
	return s.events
}

// Start writes the init segment and begins chunk emission.
func (s *Session) Start(timeslice time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || s.closed {
		return ErrStopped
	}
	if s.started {
		return nil
	}

	if err := s.writeInit(); err != nil {
		return err
	}
	s.timeslice = timeslice
	s.lastEmit = s.now()
	s.started = true
	return nil
}

func (s *Session) writeInit() error {
	timescale := uint32(s.opts.FPS * ticksPerFrame)

	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(timescale, "video", "und")
	trak := init.Moov.Trak

	jpegEntry := mp4.CreateVisualSampleEntryBox("jpeg", uint16(s.opts.Width), uint16(s.opts.Height), nil)
	trak.Mdia.Minf.Stbl.Stsd.AddChild(jpegEntry)
	trak.Tkhd.Width = mp4.Fixed32(s.opts.Width << 16)
	trak.Tkhd.Height = mp4.Fixed32(s.opts.Height << 16)

	ftyp := mp4.NewFtyp("isom", 0x200, []string{"isom", "iso6", "mp41"})
	if err := ftyp.Encode(&s.pending); err != nil {
		return fmt.Errorf("encode ftyp: %w", err)
	}
	if err := init.Moov.Encode(&s.pending); err != nil {
		return fmt.Errorf("encode moov: %w", err)
	}
	return nil
}

// PushFrame encodes img as one JPEG sample in its own fragment.
func (s *Session) PushFrame(img image.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrNotStarted
	}
	if s.stopped || s.closed {
		return ErrStopped
	}

	s.jpegBuf.Reset()
	if err := jpeg.Encode(&s.jpegBuf, img, &jpeg.Options{Quality: s.opts.Quality}); err != nil {
		return fmt.Errorf("encode frame %d: %w", s.frames, err)
	}
	data := append([]byte(nil), s.jpegBuf.Bytes()...)

	frag, err := mp4.CreateFragment(uint32(s.frames+1), trackID)
	if err != nil {
		return fmt.Errorf("create fragment: %w", err)
	}
	frag.AddFullSample(mp4.FullSample{
		Sample: mp4.Sample{
			Flags: mp4.SyncSampleFlags,
			Size:  uint32(len(data)),
			Dur:   ticksPerFrame,
		},
		DecodeTime: uint64(s.frames) * ticksPerFrame,
		Data:       data,
	})
	if err := frag.Encode(&s.pending); err != nil {
		return fmt.Errorf("encode fragment %d: %w", s.frames, err)
	}
	s.frames++

	if s.now().Sub(s.lastEmit) >= s.timeslice {
		s.emit(false)
	}
	return nil
}

// Stop emits the remaining fragments and the stop event, then closes Events.
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

	s.emit(true)
	s.events <- ports.SessionEvent{Kind: ports.EventStopped}
	s.closed = true
	close(s.events)
	return nil
}

// Close releases the session. Undelivered events are dropped.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.events)
	}
	s.pending.Reset()
	return nil
}

// emit sends the pending bytes as one chunk. Unless final, the send is
// skipped while the consumer lags so the reserved slots stay free; the
// bytes then ride along with the next chunk.
func (s *Session) emit(final bool) {
	if s.pending.Len() == 0 {
		return
	}
	if !final && len(s.events) >= cap(s.events)-2 {
		return
	}

	data := append([]byte(nil), s.pending.Bytes()...)
	s.pending.Reset()
	s.events <- ports.SessionEvent{
		Kind:  ports.EventChunk,
		Chunk: ports.Chunk{Seq: s.seq, Data: data},
	}
	s.seq++
	s.lastEmit = s.now()
}

// Ensure Session implements ports.EncoderSession
var _ ports.EncoderSession = (*Session)(nil)
