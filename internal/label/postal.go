package label

import (
	"github.com/letterpack/letterpack/internal/config"
	"github.com/letterpack/letterpack/internal/layout"
	"github.com/letterpack/letterpack/internal/render"
	"github.com/letterpack/letterpack/internal/text"
)

// PostalDigitCount is the number of boxes in a postal code row
const PostalDigitCount = 7

// firstGroupSize is the number of boxes before the connector
const firstGroupSize = 3

// PostalDigits returns the first seven digits of code, one per element.
// Hyphens, the postal mark and full-width forms are tolerated. Fewer than
// seven digits yield a shorter slice; extra digits are dropped.
func PostalDigits(code string) []string {
	digits := text.Digits(code)
	if len(digits) > PostalDigitCount {
		digits = digits[:PostalDigitCount]
	}
	out := make([]string, 0, len(digits))
	for _, d := range digits {
		out = append(out, string(d))
	}
	return out
}

// PostalBoxes returns the seven box rectangles of a row whose first box has
// its bottom-left corner at (x, y). Boxes 0-2 and 3-6 form two groups
// separated by three box spacings, the middle one holding the connector.
func PostalBoxes(x, y float64, pb config.PostalBoxConfig) [PostalDigitCount]layout.Rect {
	size := layout.MM(pb.BoxSize)
	spacing := layout.MM(pb.BoxSpacing)

	var boxes [PostalDigitCount]layout.Rect
	bx := x
	for i := range boxes {
		if i == firstGroupSize {
			bx += 3 * spacing
		}
		boxes[i] = layout.Rect{X: bx, Y: y, Width: size, Height: size}
		bx += size + spacing
	}
	return boxes
}

// DrawPostalBoxes draws the boxed postal code row and returns the boxes.
// Digits are centred in their box using font, normally the bold face.
func DrawPostalBoxes(c render.Canvas, code string, x, y float64, pb config.PostalBoxConfig, font string, size float64) [PostalDigitCount]layout.Rect {
	boxes := PostalBoxes(x, y, pb)
	spacing := layout.MM(pb.BoxSpacing)

	c.ClearDash()
	c.SetStrokeColor(render.Black)
	c.SetLineWidth(pb.LineWidth)
	for _, b := range boxes {
		c.DrawRect(b.X, b.Y, b.Width, b.Height)
	}

	// connector between the groups
	end := boxes[firstGroupSize-1].Right()
	mid := y + boxes[0].Height/2
	c.DrawLine(end+spacing, mid, end+3*spacing, mid)

	c.SetFont(font, size)
	c.SetFillColor(render.Black)
	for i, d := range PostalDigits(code) {
		b := boxes[i]
		w := c.MeasureText(d, font, size)
		baseline := b.Y + (b.Height-size)/2 + pb.TextVerticalOffset
		c.DrawText(b.X+(b.Width-w)/2, baseline, d)
	}
	return boxes
}
