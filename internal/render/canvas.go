// Package render defines the drawing surface labels are rendered onto.
//
// Coordinates are PDF points with the origin at the bottom-left corner of
// the page and y growing upwards. Backends translate to their own origin.
package render

import (
	"io"
	"math"
)

// Canvas is a page-oriented drawing backend. Calls mutate backend state
// (font, colours, dash) and must not be issued concurrently. Drawing
// methods do not return errors; the first failure is kept and reported by
// Err and Save.
type Canvas interface {
	// PageSize returns the page width and height in points
	PageSize() (width, height float64)
	// BeginPage starts a new page; drawing goes to it until EndPage
	BeginPage()
	EndPage()
	// PageCount returns the number of pages begun so far
	PageCount() int

	SetFont(name string, size float64)
	// SetFillColor sets the colour used for text and filled shapes
	SetFillColor(c Color)
	SetStrokeColor(c Color)
	SetLineWidth(w float64)
	// SetDash makes subsequent lines dashed with on/off lengths in points
	SetDash(on, off float64)
	ClearDash()

	// DrawText places s with its baseline starting at (x, y)
	DrawText(x, y float64, s string)
	// DrawTextRight places s so that it ends at x
	DrawTextRight(x, y float64, s string)
	// MeasureText returns the advance width of s in the given font and size
	MeasureText(s, font string, size float64) float64
	DrawLine(x1, y1, x2, y2 float64)
	// DrawRect strokes a rectangle whose bottom-left corner is (x, y)
	DrawRect(x, y, w, h float64)

	Err() error
	// Save serializes the document to w
	Save(w io.Writer) error
}

// Color is an RGB colour with components in [0, 1]
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Common colours
var (
	Black = Color{}
	White = Color{R: 1, G: 1, B: 1}
)

// Gray returns a neutral colour of the given level
func Gray(level float64) Color {
	return Color{R: level, G: level, B: level}
}

// RGB returns a colour from its components
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// RGB255 returns the components scaled to 0..255
func (c Color) RGB255() (r, g, b int) {
	return to255(c.R), to255(c.G), to255(c.B)
}

func to255(v float64) int {
	return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
