// Package frame paints placeholder frames onto a raster surface.
//
// A frame is a solid background with a centered label. Video frames add a
// timer line and a progress bar below the label.
package frame

import (
	"math"

	"github.com/user/placeholder/pkg/pipeline"
	"github.com/user/placeholder/pkg/ports"
)

// Layout of the video overlay, in pixels relative to the vertical center.
const (
	LabelLift     = 30
	TimerDrop     = 30
	BarDrop       = 60
	BarHeight     = 8
	BarWidthRatio = 0.6
	TrackOpacity  = 0.3
)

// Options tunes how frames are painted.
type Options struct {
	// FontPath selects a TTF/OTF file. The embedded bold Go font is used when empty.
	FontPath string
}

// Render paints cfg onto canvas with the default options.
func Render(canvas ports.Canvas, cfg pipeline.AssetConfig, overlay *pipeline.Overlay) {
	Options{}.Render(canvas, cfg, overlay)
}

// Render paints cfg onto canvas. overlay is nil for still images.
func (o Options) Render(canvas ports.Canvas, cfg pipeline.AssetConfig, overlay *pipeline.Overlay) {
	w, h := canvas.Size()
	fw, fh := float64(w), float64(h)
	textColor := pipeline.ParseColor(cfg.TextColor)

	canvas.Fill(pipeline.ParseColor(cfg.BackgroundColor))

	labelY := fh / 2
	if overlay != nil {
		labelY -= LabelLift
	}
	canvas.DrawText(cfg.Label(), fw/2, labelY, ports.TextStyle{
		FontSize: LabelFontSize(w, h),
		FontPath: o.FontPath,
		Bold:     true,
		Color:    textColor,
		Align:    ports.AlignCenter,
	})

	if overlay == nil {
		return
	}

	canvas.DrawText(overlay.TimerText(), fw/2, fh/2+TimerDrop, ports.TextStyle{
		FontSize: TimerFontSize(w, h),
		FontPath: o.FontPath,
		Bold:     true,
		Color:    textColor,
		Align:    ports.AlignCenter,
	})

	barWidth := fw * BarWidthRatio
	barX := (fw - barWidth) / 2
	barY := fh/2 + BarDrop
	canvas.DrawRect(barX, barY, barWidth, BarHeight, pipeline.WithAlpha(textColor, TrackOpacity))
	if fill := barWidth * overlay.Progress(); fill > 0 {
		canvas.DrawRect(barX, barY, fill, BarHeight, textColor)
	}
}

// LabelFontSize returns floor(min(w, h) / 8), at least 1.
func LabelFontSize(w, h int) float64 {
	return fontSize(w, h, 8)
}

// TimerFontSize returns floor(min(w, h) / 12), at least 1.
func TimerFontSize(w, h int) float64 {
	return fontSize(w, h, 12)
}

func fontSize(w, h int, div float64) float64 {
	size := math.Floor(math.Min(float64(w), float64(h)) / div)
	if size < 1 {
		return 1
	}
	return size
}
