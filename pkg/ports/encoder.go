package ports

import (
	"context"
	"image"
	"time"
)

// Codec names a video codec that can be negotiated.
type Codec string

const (
	CodecVP9   Codec = "vp9"
	CodecVP8   Codec = "vp8"
	CodecH264  Codec = "h264"
	CodecAV1   Codec = "av1"
	CodecMJPEG Codec = "mjpeg"
)

// CodecInfo describes the container and codec an encoder session produces.
type CodecInfo struct {
	Codec    Codec
	MIMEType string // e.g. video/webm;codecs=vp9
	Ext      string // file extension without the dot
	Backend  string // name of the backend that opened the session
}

// StreamOptions configures a streaming encoder session.
type StreamOptions struct {
	Width   int
	Height  int
	FPS     int
	Bitrate int // Target bitrate in kbps, 0 for the backend default
	Quality int // JPEG quality for intra-only codecs
}

// StreamEncoder negotiates a session for the first usable codec in preferences.
type StreamEncoder interface {
	Open(ctx context.Context, opts StreamOptions, preferences []Codec) (EncoderSession, error)
}

// CodecBackend opens sessions for individual codecs. Backends are combined
// into a StreamEncoder by the smart encoder.
type CodecBackend interface {
	// Name identifies the backend in logs and CodecInfo.
	Name() string

	// OpenCodec opens a session for codec or fails if the backend cannot
	// produce it in this environment.
	OpenCodec(ctx context.Context, codec Codec, opts StreamOptions) (EncoderSession, error)
}

// EncoderSession accepts painted frames and emits compressed container chunks.
//
// Events are delivered on a single channel in emission order. After Stop the
// session emits any remaining chunk followed by exactly one EventStopped, or an
// EventError, and then closes the channel.
type EncoderSession interface {
	// Info reports the negotiated codec and container.
	Info() CodecInfo

	// Start begins chunk emission. Chunks are emitted at most once per
	// timeslice rather than once per frame.
	Start(timeslice time.Duration) error

	// PushFrame submits the next painted frame. img is reused by the caller
	// after PushFrame returns, so sessions must copy what they keep.
	PushFrame(img image.Image) error

	// Events returns the session's event stream.
	Events() <-chan SessionEvent

	// Stop signals end of input. The final chunk and the stop event follow on Events.
	Stop() error

	// Close releases the session. It is safe to call at any point and more than once.
	Close() error
}

// EventKind identifies a session event.
type EventKind int

const (
	EventChunk EventKind = iota
	EventError
	EventStopped
)

// String returns the string representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventChunk:
		return "chunk"
	case EventError:
		return "error"
	case EventStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Chunk is one piece of encoded container output.
type Chunk struct {
	Seq  int // 0-based emission index
	Data []byte
}

// SessionEvent is delivered on EncoderSession.Events.
type SessionEvent struct {
	Kind  EventKind
	Chunk Chunk
	Err   error
}
