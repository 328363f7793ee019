package layout

// Point is a position on the page in points, origin at the bottom-left corner
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle in points. X and Y name the bottom-left corner.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Top returns the y coordinate of the upper edge
func (r Rect) Top() float64 { return r.Y + r.Height }

// Right returns the x coordinate of the right edge
func (r Rect) Right() float64 { return r.X + r.Width }

// Contains reports whether o lies entirely inside r. A small tolerance absorbs
// floating point noise from mm conversions.
func (r Rect) Contains(o Rect) bool {
	const eps = 1e-6
	return o.X >= r.X-eps && o.Y >= r.Y-eps &&
		o.Right() <= r.Right()+eps && o.Top() <= r.Top()+eps
}

// Overlaps reports whether the interiors of r and o intersect
func (r Rect) Overlaps(o Rect) bool {
	const eps = 1e-6
	return r.X < o.Right()-eps && o.X < r.Right()-eps &&
		r.Y < o.Top()-eps && o.Y < r.Top()-eps
}

// Inset shrinks the rectangle by d on every side
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, Width: r.Width - 2*d, Height: r.Height - 2*d}
}

// Halves splits r into equal-height upper and lower parts
func (r Rect) Halves() (top, bottom Rect) {
	h := r.Height / 2
	top = Rect{X: r.X, Y: r.Y + h, Width: r.Width, Height: h}
	bottom = Rect{X: r.X, Y: r.Y, Width: r.Width, Height: h}
	return top, bottom
}
