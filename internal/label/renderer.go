// Package label draws letterpack shipping labels: a recipient block on top
// and a sender block below, separated by a divider.
package label

import (
	"io"

	"github.com/letterpack/letterpack/internal/config"
	"github.com/letterpack/letterpack/internal/layout"
	"github.com/letterpack/letterpack/internal/model"
	"github.com/letterpack/letterpack/internal/render"
)

// Renderer draws labels according to a validated layout
type Renderer struct {
	cfg   *config.Config
	fonts render.Fonts
}

// NewRenderer creates a label renderer. cfg must already be validated.
func NewRenderer(cfg *config.Config, fonts render.Fonts) *Renderer {
	if fonts.Regular == "" {
		fonts.Regular = render.DefaultFont
	}
	return &Renderer{cfg: cfg, fonts: fonts}
}

// Config returns the layout the renderer draws with
func (r *Renderer) Config() *config.Config { return r.cfg }

func pageEngine(c render.Canvas) *layout.Engine {
	w, h := c.PageSize()
	e := layout.NewEngine()
	e.SetOptions(layout.Options{Width: w, Height: h})
	return e
}

// LabelRect returns the centred label rectangle on the canvas page
func (r *Renderer) LabelRect(c render.Canvas) layout.Rect {
	return pageEngine(c).Centered(layout.MM(r.cfg.Layout.LabelWidth), layout.MM(r.cfg.Layout.LabelHeight))
}

// Render draws one label pair on the current page: once centred, or in all
// four quadrants in grid_4up mode
func (r *Renderer) Render(c render.Canvas, pair model.LabelPair) error {
	if r.cfg.Layout.IsGrid() {
		return r.RenderTiled(c, pair)
	}
	return r.RenderInto(c, r.LabelRect(c), pair)
}

// RenderTiled replicates the same pair into the four page quadrants. A
// layout configured for a centred label must also validate in grid_4up mode.
func (r *Renderer) RenderTiled(c render.Canvas, pair model.LabelPair) error {
	if !r.cfg.Layout.IsGrid() {
		if err := r.cfg.ValidateFor(config.ModeGrid4Up); err != nil {
			return err
		}
	}
	for _, q := range pageEngine(c).Quadrants() {
		r.drawLabel(c, q, pair)
	}
	return c.Err()
}

// RenderInto draws one label filling rect
func (r *Renderer) RenderInto(c render.Canvas, rect layout.Rect, pair model.LabelPair) error {
	r.drawLabel(c, rect, pair)
	return c.Err()
}

func (r *Renderer) drawLabel(c render.Canvas, rect layout.Rect, pair model.LabelPair) {
	b := r.cfg.Border
	border := render.RGB(b.ColorR, b.ColorG, b.ColorB)

	c.ClearDash()
	c.SetStrokeColor(border)
	if r.cfg.Layout.DrawBorder {
		c.SetLineWidth(b.LineWidth)
		c.DrawRect(rect.X, rect.Y, rect.Width, rect.Height)
	}

	top, bottom := rect.Halves()
	c.SetLineWidth(r.cfg.Layout.DividerLineWidth)
	c.DrawLine(rect.X, bottom.Top(), rect.Right(), bottom.Top())

	DrawSection(c, pair.To, top, r.cfg, r.fonts, Recipient)
	DrawSection(c, pair.From, bottom, r.cfg, r.fonts, Sender)
}

// RenderPage begins a page, renders pair on it and ends the page
func (r *Renderer) RenderPage(c render.Canvas, pair model.LabelPair) error {
	c.BeginPage()
	err := r.Render(c, pair)
	c.EndPage()
	return err
}

// Write renders pair onto a fresh page and saves the document to w. Nothing
// is written when drawing fails.
func (r *Renderer) Write(c render.Canvas, pair model.LabelPair, w io.Writer) error {
	if err := r.RenderPage(c, pair); err != nil {
		return err
	}
	return c.Save(w)
}
