package layout

// Position is the drawing state of one address section: the region being
// filled and the baseline cursor. The cursor only moves downwards; every
// advance returns a new Position so callers thread it explicitly.
type Position struct {
	Region Rect
	Y      float64
}

// NewPosition starts a cursor at the top of region, inset by margin
func NewPosition(region Rect, margin float64) Position {
	return Position{Region: region, Y: region.Top() - margin}
}

// Down moves the cursor d points towards the bottom of the page
func (p Position) Down(d float64) Position {
	p.Y -= d
	return p
}
