// Package smartencoder negotiates a streaming encoder session from an ordered
// codec preference list, falling back to later codecs when earlier ones are
// unavailable.
package smartencoder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/user/placeholder/pkg/adapters/ffmpegencoder"
	"github.com/user/placeholder/pkg/adapters/logger"
	"github.com/user/placeholder/pkg/adapters/mjpegencoder"
	"github.com/user/placeholder/pkg/ports"
)

// ErrNoEncoderAvailable is returned when no preferred codec can be opened.
var ErrNoEncoderAvailable = errors.New("smartencoder: no encoder available")

// Attempt records one failed codec/backend combination.
type Attempt struct {
	Codec   ports.Codec
	Backend string
	Err     error
}

// Info describes the outcome of a negotiation.
type Info struct {
	// Codec is the codec actually opened.
	Codec ports.Codec
	// Backend is the backend that opened it.
	Backend string
	// RequestedCodec is the first preference.
	RequestedCodec ports.Codec
	// FallbackUsed indicates that a later preference was opened.
	FallbackUsed bool
	// Attempts lists the combinations that failed before the session opened.
	Attempts []Attempt
}

// Options configures the smart encoder behavior.
type Options struct {
	// FFmpegPath is an optional custom path to the ffmpeg binary.
	FFmpegPath string
	// Logger is used to log fallback warnings.
	Logger ports.Logger
	// Backends overrides the default ffmpeg + MJPEG backends.
	Backends []ports.CodecBackend
}

// Encoder implements ports.StreamEncoder over a list of backends.
type Encoder struct {
	backends []ports.CodecBackend
	logger   ports.Logger
}

// New creates an encoder. Without explicit backends it uses ffmpeg first
// and the pure-Go MJPEG backend second.
func New(opts Options) *Encoder {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoop()
	}
	log = log.WithComponent("encoder")

	backends := opts.Backends
	if len(backends) == 0 {
		backends = []ports.CodecBackend{
			ffmpegencoder.New(ffmpegencoder.Options{FFmpegPath: opts.FFmpegPath, Logger: log}),
			mjpegencoder.New(),
		}
	}

	return &Encoder{backends: backends, logger: log}
}

// Open implements ports.StreamEncoder.
func (e *Encoder) Open(ctx context.Context, opts ports.StreamOptions, preferences []ports.Codec) (ports.EncoderSession, error) {
	session, _, err := e.OpenWithInfo(ctx, opts, preferences)
	return session, err
}

// OpenWithInfo opens the first codec in preferences that any backend can
// produce, trying backends in order for each codec.
func (e *Encoder) OpenWithInfo(ctx context.Context, opts ports.StreamOptions, preferences []ports.Codec) (ports.EncoderSession, Info, error) {
	info := Info{}
	if len(preferences) == 0 {
		return nil, info, fmt.Errorf("%w: empty codec preference list", ErrNoEncoderAvailable)
	}
	info.RequestedCodec = preferences[0]

	for i, codec := range preferences {
		for _, backend := range e.backends {
			if err := ctx.Err(); err != nil {
				return nil, info, err
			}

			session, err := backend.OpenCodec(ctx, codec, opts)
			if err != nil {
				e.logger.Debug("Codec %s unavailable via %s: %v", codec, backend.Name(), err)
				info.Attempts = append(info.Attempts, Attempt{Codec: codec, Backend: backend.Name(), Err: err})
				continue
			}

			info.Codec = codec
			info.Backend = backend.Name()
			info.FallbackUsed = i > 0
			if info.FallbackUsed {
				e.logger.Warn("%s encoder not available, falling back to %s", strings.ToUpper(string(info.RequestedCodec)), strings.ToUpper(string(codec)))
			}
			return session, info, nil
		}
	}

	return nil, info, fmt.Errorf("%w: tried %s", ErrNoEncoderAvailable, describe(info.Attempts))
}

// Availability lists, per codec, whether any backend can open it. Only
// backends that can probe without opening a session are asked.
func (e *Encoder) Availability(ctx context.Context, codecs []ports.Codec) map[ports.Codec]string {
	type prober interface {
		Available(ctx context.Context, codec ports.Codec) bool
	}

	result := make(map[ports.Codec]string)
	for _, codec := range codecs {
		for _, backend := range e.backends {
			if p, ok := backend.(prober); ok && p.Available(ctx, codec) {
				result[codec] = backend.Name()
				break
			}
		}
	}
	return result
}

func describe(attempts []Attempt) string {
	parts := make([]string, 0, len(attempts))
	for _, a := range attempts {
		parts = append(parts, fmt.Sprintf("%s via %s (%v)", a.Codec, a.Backend, a.Err))
	}
	return strings.Join(parts, "; ")
}

// Ensure Encoder implements ports.StreamEncoder
var _ ports.StreamEncoder = (*Encoder)(nil)
