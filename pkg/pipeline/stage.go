// Package pipeline provides the shared types and stage contract of the placeholder renderer.
package pipeline

import (
	"context"
)

// Stage turns one render input into one output.
type Stage[In, Out any] interface {
	Execute(ctx context.Context, input In) (Out, error)
}

// StillStage paints and encodes a single frame.
type StillStage = Stage[AssetConfig, EncodedAsset]

// VideoStage records a paced sequence of frames through a streaming encoder.
type VideoStage = Stage[VideoConfig, EncodedAsset]
