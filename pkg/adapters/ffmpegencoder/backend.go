// Package ffmpegencoder streams painted frames through an ffmpeg child process.
//
// Frames are written to ffmpeg's stdin as raw RGBA and the container it
// produces is read incrementally from stdout, so chunks become available
// while the video is still being recorded.
package ffmpegencoder

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/user/placeholder/pkg/adapters/logger"
	"github.com/user/placeholder/pkg/ports"
)

// DefaultBitrate is the target bitrate in kbps when none is requested.
const DefaultBitrate = 2500

// Name is the backend name reported in CodecInfo.
const Name = "ffmpeg"

// Options configures the backend.
type Options struct {
	// FFmpegPath is an optional custom path to the ffmpeg binary.
	FFmpegPath string
	Logger     ports.Logger
}

// Backend implements ports.CodecBackend on top of the ffmpeg CLI.
type Backend struct {
	opts Options

	once     sync.Once
	path     string
	encoders map[string]bool
	probeErr error
}

// New creates a new ffmpeg backend. ffmpeg is located lazily.
func New(opts Options) *Backend {
	return &Backend{opts: opts}
}

// Name implements ports.CodecBackend.
func (b *Backend) Name() string {
	return Name
}

// OpenCodec prepares a session for codec. The ffmpeg process starts with Session.Start.
func (b *Backend) OpenCodec(ctx context.Context, codec ports.Codec, opts ports.StreamOptions) (ports.EncoderSession, error) {
	spec, ok := codecSpecs[codec]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCodecUnavailable, codec)
	}
	if err := b.probe(ctx); err != nil {
		return nil, err
	}
	if !b.encoders[spec.encoder] {
		return nil, fmt.Errorf("%w: %s (ffmpeg has no %s encoder)", ErrCodecUnavailable, codec, spec.encoder)
	}

	info := ports.CodecInfo{
		Codec:    codec,
		MIMEType: spec.mimeType,
		Ext:      spec.ext,
		Backend:  Name,
	}
	return newSession(ctx, b.path, buildArgs(spec, opts), info, opts, b.logger()), nil
}

// Available reports whether ffmpeg can encode codec.
func (b *Backend) Available(ctx context.Context, codec ports.Codec) bool {
	spec, ok := codecSpecs[codec]
	if !ok || b.probe(ctx) != nil {
		return false
	}
	return b.encoders[spec.encoder]
}

// Path returns the located ffmpeg binary.
func (b *Backend) Path(ctx context.Context) (string, error) {
	if err := b.probe(ctx); err != nil {
		return "", err
	}
	return b.path, nil
}

// Version returns the first line of `ffmpeg -version`.
func (b *Backend) Version(ctx context.Context) (string, error) {
	path, err := b.Path(ctx)
	if err != nil {
		return "", err
	}
	out, err := exec.CommandContext(ctx, path, "-version").Output()
	if err != nil {
		return "", fmt.Errorf("ffmpeg -version: %w", err)
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line), nil
}

// probe locates ffmpeg and lists its encoders once per backend.
func (b *Backend) probe(ctx context.Context) error {
	b.once.Do(func() {
		path, err := FindFFmpeg(b.opts.FFmpegPath)
		if err != nil {
			b.probeErr = err
			return
		}
		b.path = path

		out, err := exec.CommandContext(ctx, path, "-hide_banner", "-encoders").Output()
		if err != nil {
			b.probeErr = fmt.Errorf("%w: list encoders: %v", ErrFFmpegNotFound, err)
			return
		}
		b.encoders = parseEncoders(out)
		b.logger().Debug("Found ffmpeg at %s with %d encoders", path, len(b.encoders))
	})
	return b.probeErr
}

func (b *Backend) logger() ports.Logger {
	if b.opts.Logger == nil {
		return logger.NewNoop()
	}
	return b.opts.Logger
}

// parseEncoders extracts encoder names from `ffmpeg -encoders` output:
//
//	V....D libvpx-vp9           libvpx VP9 (codec vp9)
func parseEncoders(out []byte) map[string]bool {
	encoders := make(map[string]bool)
	scanner := bufio.NewScanner(bytes.NewReader(out))
	listing := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "------") {
			listing = true
			continue
		}
		if !listing {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 2 && strings.HasPrefix(fields[0], "V") {
			encoders[fields[1]] = true
		}
	}
	return encoders
}

// Ensure Backend implements ports.CodecBackend
var _ ports.CodecBackend = (*Backend)(nil)
