package pagination

import (
	"fmt"

	"github.com/letterpack/letterpack/internal/layout"
)

// PageSize represents standard page sizes
type PageSize struct {
	Width  float64
	Height float64
	Name   string
}

// Standard page sizes in points (1/72 inch)
var (
	PageSizeA4 = PageSize{Width: 595.28, Height: 841.89, Name: "A4"}
)

// Slot is one cell of an N-up page
type Slot[T any] struct {
	// Index is the position of Item in the input sequence
	Index int
	// Quadrant is the cell on the page, 0..PerPage-1 in reading order
	Quadrant int
	Item     T
}

// Page represents a single sheet and the items placed on it
type Page[T any] struct {
	Number int
	Slots  []Slot[T]
}

// Paginator groups items into pages of a fixed capacity
type Paginator struct {
	PerPage int
}

// NewPaginator creates a new paginator
func NewPaginator(perPage int) *Paginator {
	if perPage <= 0 {
		perPage = layout.SlotsPerPage
	}
	return &Paginator{PerPage: perPage}
}

// Paginate distributes items to pages in order. Item i lands on page
// i/PerPage in cell i%PerPage. An empty input yields no pages.
func Paginate[T any](p *Paginator, items []T) []Page[T] {
	if len(items) == 0 {
		return nil
	}

	count := PageCount(len(items), p.PerPage)
	pages := make([]Page[T], 0, count)
	for n := 0; n < count; n++ {
		start := n * p.PerPage
		end := min(start+p.PerPage, len(items))

		page := Page[T]{Number: n + 1, Slots: make([]Slot[T], 0, end-start)}
		for i := start; i < end; i++ {
			page.Slots = append(page.Slots, Slot[T]{
				Index:    i,
				Quadrant: i - start,
				Item:     items[i],
			})
		}
		pages = append(pages, page)
	}
	return pages
}

// PageCount returns ceil(n/perPage)
func PageCount(n, perPage int) int {
	if n <= 0 || perPage <= 0 {
		return 0
	}
	return (n + perPage - 1) / perPage
}

// String implements fmt.Stringer for debug output
func (p Page[T]) String() string {
	return fmt.Sprintf("page %d (%d labels)", p.Number, len(p.Slots))
}
