package label

import (
	"github.com/letterpack/letterpack/internal/config"
	"github.com/letterpack/letterpack/internal/layout"
	"github.com/letterpack/letterpack/internal/model"
	"github.com/letterpack/letterpack/internal/render"
	"github.com/letterpack/letterpack/internal/text"
)

// Role selects the caption of an address section
type Role int

const (
	Recipient Role = iota
	Sender
)

// Caption returns the heading printed at the top of the section
func (r Role) Caption() string {
	if r == Sender {
		return "ご依頼主"
	}
	return "お届け先"
}

func (r Role) String() string {
	if r == Sender {
		return "sender"
	}
	return "recipient"
}

// Colours of the non-configurable elements
var (
	captionColor = render.Gray(0.3)
	textColor    = render.Black
)

// ruleLineWidth is the stroke width of the dashed fill-in rules
const ruleLineWidth = 0.5

// DrawSection draws one address block top to bottom inside region and
// returns the final cursor. The record is assumed valid.
func DrawSection(c render.Canvas, addr model.Address, region layout.Rect, cfg *config.Config, fonts render.Fonts, role Role) layout.Position {
	sp := cfg.Spacing
	margin := layout.MM(cfg.Layout.Margin)
	left := region.X + margin
	right := region.Right() - margin

	pos := layout.NewPosition(region, margin)

	// caption
	pos = pos.Down(sp.SectionSpacing)
	c.SetFont(fonts.Regular, cfg.Fonts.Label)
	c.SetFillColor(captionColor)
	c.DrawText(left, pos.Y, role.Caption())

	// postal code
	pos = pos.Down(sp.SectionSpacing)
	c.SetFont(fonts.Regular, cfg.Fonts.PostalCode)
	c.SetFillColor(textColor)
	c.DrawText(left, pos.Y, text.PostalMark)
	DrawPostalBoxes(c, addr.PostalCode,
		left+sp.PostalBoxOffsetX, pos.Y+sp.PostalBoxOffsetY,
		cfg.PostalBox, fonts.BoldOrRegular(), cfg.Fonts.PostalCode)

	// address lines, blank rules fill the reserved slots
	lines := text.Truncate(text.WrapLines(addr.Lines(), cfg.Address.MaxLength), cfg.Address.MaxLines)
	for i := 0; i < cfg.Address.MaxLines; i++ {
		pos = pos.Down(sp.AddressLineHeight)
		drawRule(c, cfg, left, right, pos.Y-sp.DottedLineTextOffset)
		if i < len(lines) {
			c.SetFont(fonts.Regular, cfg.Fonts.Address)
			c.SetFillColor(textColor)
			c.DrawText(left, pos.Y, lines[i])
		}
	}

	// name, shortened rule when an honorific follows
	pos = pos.Down(sp.AddressNameGap)
	ruleEnd := right
	if addr.HasHonorific() {
		ruleEnd -= layout.MM(cfg.Sama.Width)
	}
	drawRule(c, cfg, left, ruleEnd, pos.Y-sp.DottedLineTextOffset)
	c.SetFont(fonts.Regular, cfg.Fonts.Name)
	c.SetFillColor(textColor)
	c.DrawText(left, pos.Y, addr.Name)
	if addr.HasHonorific() {
		c.SetFont(fonts.Regular, cfg.Fonts.HonorificSize())
		c.DrawText(ruleEnd+layout.MM(cfg.Sama.Offset), pos.Y, addr.Honorific)
	}

	// phone, omitted entirely when absent
	pos = pos.Down(sp.NamePhoneGap)
	if addr.HasPhone() {
		c.SetFont(fonts.Regular, cfg.Fonts.Phone)
		c.SetFillColor(textColor)
		c.DrawText(left, pos.Y, "Tel.")
		pos = pos.Down(sp.SectionSpacing)
		c.DrawText(left+cfg.Phone.OffsetX, pos.Y, "( "+addr.Phone+" )")
	}
	return pos
}

// drawRule strokes a dashed fill-in line from x1 to x2 at y
func drawRule(c render.Canvas, cfg *config.Config, x1, x2, y float64) {
	dl := cfg.DottedLine
	c.SetStrokeColor(render.RGB(dl.ColorR, dl.ColorG, dl.ColorB))
	c.SetLineWidth(ruleLineWidth)
	c.SetDash(layout.MM(dl.DashLength), layout.MM(dl.DashSpacing))
	c.DrawLine(x1, y, x2, y)
	c.ClearDash()
}
