package placeholder

import (
	"errors"
	"fmt"

	"github.com/user/placeholder/pkg/pipeline"
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks the ranges accepted for a still image.
func (c Config) Validate() error {
	var errs []error
	if c.Width < pipeline.MinDimension || c.Width > pipeline.MaxDimension {
		errs = append(errs, fmt.Errorf("width %d out of range %d-%d", c.Width, pipeline.MinDimension, pipeline.MaxDimension))
	}
	if c.Height < pipeline.MinDimension || c.Height > pipeline.MaxDimension {
		errs = append(errs, fmt.Errorf("height %d out of range %d-%d", c.Height, pipeline.MinDimension, pipeline.MaxDimension))
	}
	return wrap(errs)
}

// ValidateVideo checks the ranges accepted for a video.
func (c Config) ValidateVideo() error {
	var errs []error
	if err := c.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Duration < pipeline.MinDuration || c.Duration > pipeline.MaxDuration {
		errs = append(errs, fmt.Errorf("duration %gs out of range %g-%g", c.Duration, pipeline.MinDuration, pipeline.MaxDuration))
	}
	if c.FPS < pipeline.MinFPS || c.FPS > pipeline.MaxFPS {
		errs = append(errs, fmt.Errorf("fps %d out of range %d-%d", c.FPS, pipeline.MinFPS, pipeline.MaxFPS))
	}
	if c.Bitrate < 0 {
		errs = append(errs, fmt.Errorf("bitrate %d must not be negative", c.Bitrate))
	}
	return wrap(errs)
}

func wrap(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	joined := errors.Join(errs...)
	if errors.Is(joined, ErrInvalidConfig) {
		return joined
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, joined)
}
