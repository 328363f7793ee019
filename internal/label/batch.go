package label

import (
	"io"

	"github.com/letterpack/letterpack/internal/config"
	"github.com/letterpack/letterpack/internal/layout"
	"github.com/letterpack/letterpack/internal/model"
	"github.com/letterpack/letterpack/internal/pagination"
	"github.com/letterpack/letterpack/internal/render"
)

// BatchRenderer tiles distinct label pairs four to a page
type BatchRenderer struct {
	r *Renderer
}

// NewBatchRenderer creates a batch renderer drawing each label with r
func NewBatchRenderer(r *Renderer) *BatchRenderer {
	return &BatchRenderer{r: r}
}

// Render draws pairs in order: pair i goes to page i/4, quadrant i%4
// (top-left, top-right, bottom-left, bottom-right). Unused quadrants on the
// last page stay blank. No pairs means no pages. Labels always take quadrant
// geometry, so the layout must validate in grid_4up mode whatever its
// configured mode.
func (b *BatchRenderer) Render(c render.Canvas, pairs []model.LabelPair) error {
	if err := b.r.cfg.ValidateFor(config.ModeGrid4Up); err != nil {
		return err
	}
	w, h := c.PageSize()
	engine := pagination.NewEngine()
	engine.SetOptions(pagination.Options{PageWidth: w, PageHeight: h, PerPage: layout.SlotsPerPage})

	for _, page := range pagination.Place(engine, pairs) {
		c.BeginPage()
		for _, p := range page {
			b.r.drawLabel(c, p.Rect, p.Item)
		}
		c.EndPage()
		if err := c.Err(); err != nil {
			return err
		}
	}
	return c.Err()
}

// Write renders every pair and saves the document to w once all pages are drawn
func (b *BatchRenderer) Write(c render.Canvas, pairs []model.LabelPair, w io.Writer) error {
	if err := b.Render(c, pairs); err != nil {
		return err
	}
	return c.Save(w)
}

// PageCount returns the number of pages n pairs occupy
func PageCount(n int) int {
	return pagination.PageCount(n, layout.SlotsPerPage)
}
