package pipeline

import "errors"

var (
	// ErrSurfaceUnavailable is returned when a raster surface cannot be created.
	ErrSurfaceUnavailable = errors.New("surface unavailable")

	// ErrEncoderUnsupported is returned when no preferred codec can be opened.
	ErrEncoderUnsupported = errors.New("encoder unsupported")

	// ErrEncodingRuntime is returned when the encoder fails during a render.
	ErrEncodingRuntime = errors.New("encoding runtime error")

	// ErrEmptyOutput is returned when an encoder finished without emitting data.
	ErrEmptyOutput = errors.New("encoder produced no output")

	// ErrCancelled is returned when a render is abandoned through its context.
	ErrCancelled = errors.New("render cancelled")
)
