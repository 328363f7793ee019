package pagination

import (
	"github.com/letterpack/letterpack/internal/layout"
)

// Options represents options for the pagination engine
type Options struct {
	PageWidth  float64
	PageHeight float64
	PerPage    int
}

// Engine places items onto the quadrants of successive pages
type Engine struct {
	options Options
	layout  *layout.Engine
}

// Placement is a paginated item together with the rectangle it occupies
type Placement[T any] struct {
	Slot[T]
	Rect layout.Rect
}

// NewEngine creates a new pagination engine
func NewEngine() *Engine {
	e := &Engine{layout: layout.NewEngine()}
	e.SetOptions(Options{
		PageWidth:  PageSizeA4.Width,
		PageHeight: PageSizeA4.Height,
		PerPage:    layout.SlotsPerPage,
	})
	return e
}

// SetOptions sets the options for the pagination engine
func (e *Engine) SetOptions(options Options) {
	if options.PerPage <= 0 || options.PerPage > layout.SlotsPerPage {
		options.PerPage = layout.SlotsPerPage
	}
	e.options = options
	e.layout.SetOptions(layout.Options{Width: options.PageWidth, Height: options.PageHeight})
}

// Layout returns the page geometry the engine places items on
func (e *Engine) Layout() *layout.Engine {
	return e.layout
}

// Place breaks items into pages and resolves each slot to its quadrant rectangle
func Place[T any](e *Engine, items []T) [][]Placement[T] {
	pages := Paginate(NewPaginator(e.options.PerPage), items)
	quadrants := e.layout.Quadrants()

	out := make([][]Placement[T], 0, len(pages))
	for _, page := range pages {
		placed := make([]Placement[T], 0, len(page.Slots))
		for _, slot := range page.Slots {
			placed = append(placed, Placement[T]{Slot: slot, Rect: quadrants[slot.Quadrant]})
		}
		out = append(out, placed)
	}
	return out
}
