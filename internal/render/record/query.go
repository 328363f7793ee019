package record

import "github.com/letterpack/letterpack/internal/layout"

// Ops returns every recorded operation in drawing order
func (c *Canvas) Ops() []Op {
	return c.Document().Ops
}

// Filter returns the operations of the given kind, on page when page > 0
func (c *Canvas) Filter(kind string, page int) []Op {
	var out []Op
	for _, op := range c.ops {
		if op.Kind != kind {
			continue
		}
		if page > 0 && op.Page != page {
			continue
		}
		out = append(out, op)
	}
	return out
}

// Texts returns the text operations across all pages
func (c *Canvas) Texts() []Op { return c.Filter(KindText, 0) }

// Lines returns the line operations across all pages
func (c *Canvas) Lines() []Op { return c.Filter(KindLine, 0) }

// Rects returns the rectangle operations across all pages
func (c *Canvas) Rects() []Op { return c.Filter(KindRect, 0) }

// FindText returns the first text operation drawing exactly s
func (c *Canvas) FindText(s string) (Op, bool) {
	for _, op := range c.ops {
		if op.Kind == KindText && op.Text == s {
			return op, true
		}
	}
	return Op{}, false
}

// Bounds returns the rectangle an operation covers. Text spans from the
// baseline up by its font size.
func (op Op) Bounds() layout.Rect {
	switch op.Kind {
	case KindText:
		return layout.Rect{X: op.X, Y: op.Y, Width: op.Width, Height: op.Size}
	case KindLine:
		return layout.Rect{
			X:      min(op.X, op.X2),
			Y:      min(op.Y, op.Y2),
			Width:  abs(op.X2 - op.X),
			Height: abs(op.Y2 - op.Y),
		}
	case KindRect:
		return layout.Rect{X: op.X, Y: op.Y, Width: op.Width, Height: op.Height}
	}
	return layout.Rect{}
}

// IsDashed reports whether the operation was stroked with a dash pattern
func (op Op) IsDashed() bool { return len(op.Dash) > 0 }

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// CountText returns how many text operations draw exactly s
func (d Document) CountText(s string) int {
	n := 0
	for _, op := range d.Ops {
		if op.Kind == KindText && op.Text == s {
			n++
		}
	}
	return n
}
