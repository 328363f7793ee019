package layout

// Options represents options for the layout engine
type Options struct {
	Width  float64
	Height float64
}

// Quadrant indices in reading order
const (
	TopLeft = iota
	TopRight
	BottomLeft
	BottomRight
)

// SlotsPerPage is the number of labels an N-up page holds
const SlotsPerPage = 4

// Engine computes label rectangles on a page
type Engine struct {
	options Options
}

// NewEngine creates a new layout engine for an A4 page
func NewEngine() *Engine {
	return &Engine{
		options: Options{
			Width:  MM(A4WidthMM),
			Height: MM(A4HeightMM),
		},
	}
}

// SetOptions sets the options for the layout engine
func (e *Engine) SetOptions(options Options) {
	e.options = options
}

// Page returns the full page rectangle
func (e *Engine) Page() Rect {
	return Rect{Width: e.options.Width, Height: e.options.Height}
}

// Centered returns a width x height rectangle centred on the page
func (e *Engine) Centered(width, height float64) Rect {
	return Rect{
		X:      (e.options.Width - width) / 2,
		Y:      (e.options.Height - height) / 2,
		Width:  width,
		Height: height,
	}
}

// Quadrants splits the page into four half-size rectangles ordered
// top-left, top-right, bottom-left, bottom-right.
func (e *Engine) Quadrants() [SlotsPerPage]Rect {
	w := e.options.Width / 2
	h := e.options.Height / 2
	return [SlotsPerPage]Rect{
		TopLeft:     {X: 0, Y: h, Width: w, Height: h},
		TopRight:    {X: w, Y: h, Width: w, Height: h},
		BottomLeft:  {X: 0, Y: 0, Width: w, Height: h},
		BottomRight: {X: w, Y: 0, Width: w, Height: h},
	}
}

// Quadrant returns the rectangle for slot i (0..3)
func (e *Engine) Quadrant(i int) Rect {
	return e.Quadrants()[i%SlotsPerPage]
}
