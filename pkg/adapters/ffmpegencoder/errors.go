package ffmpegencoder

import "errors"

var (
	// ErrFFmpegNotFound is returned when no ffmpeg binary can be located.
	ErrFFmpegNotFound = errors.New("ffmpegencoder: ffmpeg not found")

	// ErrCodecUnavailable is returned when ffmpeg lacks the encoder for a codec.
	ErrCodecUnavailable = errors.New("ffmpegencoder: codec unavailable")

	// ErrNotStarted is returned when frames are pushed before Start.
	ErrNotStarted = errors.New("ffmpegencoder: session not started")

	// ErrStopped is returned when frames are pushed after Stop or Close.
	ErrStopped = errors.New("ffmpegencoder: session stopped")

	// ErrExited is reported when ffmpeg exits before the session was stopped.
	ErrExited = errors.New("ffmpegencoder: ffmpeg exited unexpectedly")
)
