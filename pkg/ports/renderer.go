// Package ports defines interfaces for the host capabilities the renderer depends on:
// raster surfaces, streaming encoders, frame pacing, files, debug output and logging.
package ports

import (
	"image"
	"image/color"
)

// Renderer abstracts the raster surface used to paint frames.
type Renderer interface {
	// CreateCanvas acquires a drawing surface of exactly width x height pixels
	// cleared to bg. It fails when the surface cannot be allocated.
	CreateCanvas(width, height int, bg color.Color) (Canvas, error)

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// ResizeImage resizes an image to the specified dimensions.
	ResizeImage(img image.Image, width, height int) image.Image
}

// Canvas provides the paint primitives a frame needs.
type Canvas interface {
	// Size returns the surface dimensions in pixels.
	Size() (width, height int)

	// Fill paints the whole surface with c.
	Fill(c color.Color)

	// DrawRect draws a filled rectangle. Alpha in c is honoured.
	DrawRect(x, y, w, h float64, c color.Color)

	// DrawText draws text anchored at (x, y). The vertical anchor is always
	// the middle of the text; the horizontal anchor follows style.Align.
	DrawText(text string, x, y float64, style TextStyle)

	// MeasureText returns the width and height of the text.
	MeasureText(text string, style TextStyle) (width, height float64)

	// ToImage returns the canvas contents.
	ToImage() image.Image
}

// TextStyle defines text rendering properties.
type TextStyle struct {
	FontSize float64
	FontPath string // Optional TTF/OTF file; the embedded Go font is used otherwise
	Bold     bool
	Color    color.Color
	Align    TextAlign
}

// TextAlign specifies text alignment.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
)
