// Package still implements the still image encode stage.
package still

import (
	"context"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/user/placeholder/pkg/pipeline"
	"github.com/user/placeholder/pkg/ports"
	"github.com/user/placeholder/pkg/stages/frame"
)

// MIMEType is the type of every still produced by the stage.
const MIMEType = "image/png"

// DefaultPreviewSize bounds the longest edge of a preview.
const DefaultPreviewSize = 600

// Stage paints a single frame and encodes it as PNG.
type Stage struct {
	renderer ports.Renderer
	sink     ports.DebugSink
	logger   ports.Logger
	frame    frame.Options
}

var _ pipeline.StillStage = (*Stage)(nil)

// NewStage creates a new still stage.
func NewStage(renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger, opts frame.Options) *Stage {
	return &Stage{
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("still"),
		frame:    opts,
	}
}

// Execute renders cfg and returns the PNG asset.
// Identical configs produce identical bytes.
func (s *Stage) Execute(ctx context.Context, cfg pipeline.AssetConfig) (pipeline.EncodedAsset, error) {
	img, err := s.paint(ctx, cfg)
	if err != nil {
		return pipeline.EncodedAsset{}, err
	}

	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return pipeline.EncodedAsset{}, fmt.Errorf("encode still: %w", err)
	}

	s.logger.Debug("Encoded %dx%d still: %d bytes", cfg.Width, cfg.Height, len(data))

	return pipeline.EncodedAsset{
		Kind:     pipeline.KindStill,
		Data:     data,
		MIMEType: MIMEType,
		Ext:      "png",
		Width:    cfg.Width,
		Height:   cfg.Height,
	}, nil
}

// DataURL renders cfg and returns it as a data:image/png;base64 URL.
func (s *Stage) DataURL(ctx context.Context, cfg pipeline.AssetConfig) (string, error) {
	asset, err := s.Execute(ctx, cfg)
	if err != nil {
		return "", err
	}
	return "data:" + MIMEType + ";base64," + base64.StdEncoding.EncodeToString(asset.Data), nil
}

// Preview renders cfg scaled down to fit within maxSize x maxSize.
// Images that already fit are returned at full size.
func (s *Stage) Preview(ctx context.Context, cfg pipeline.AssetConfig, maxSize int) (image.Image, error) {
	if maxSize <= 0 {
		maxSize = DefaultPreviewSize
	}

	img, err := s.paint(ctx, cfg)
	if err != nil {
		return nil, err
	}

	w, h := FitWithin(cfg.Width, cfg.Height, maxSize)
	if w == cfg.Width && h == cfg.Height {
		return img, nil
	}

	s.logger.Debug("Scaling preview %dx%d -> %dx%d", cfg.Width, cfg.Height, w, h)
	return s.renderer.ResizeImage(img, w, h), nil
}

func (s *Stage) paint(ctx context.Context, cfg pipeline.AssetConfig) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", pipeline.ErrCancelled, err)
	}

	canvas, err := s.renderer.CreateCanvas(cfg.Width, cfg.Height, pipeline.ParseColor(cfg.BackgroundColor))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pipeline.ErrSurfaceUnavailable, err)
	}

	s.frame.Render(canvas, cfg, nil)
	img := canvas.ToImage()

	if s.sink.Enabled() {
		if err := s.sink.SaveStill(img); err != nil {
			s.logger.Warn("Failed to save debug still: %v", err)
		}
	}

	return img, nil
}

// FitWithin scales w x h down to fit in a maxSize square, preserving the
// aspect ratio. Dimensions never drop below 1.
func FitWithin(w, h, maxSize int) (int, int) {
	if w <= maxSize && h <= maxSize {
		return w, h
	}

	scale := float64(maxSize) / float64(w)
	if h > w {
		scale = float64(maxSize) / float64(h)
	}

	sw := int(float64(w)*scale + 0.5)
	sh := int(float64(h)*scale + 0.5)
	if sw < 1 {
		sw = 1
	}
	if sh < 1 {
		sh = 1
	}
	return sw, sh
}
