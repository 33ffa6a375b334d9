// Package svg renders layout plans to standalone SVG documents.
//
// The renderer is a pure sink: it consumes a plan (and the arrangements that
// fill it) and emits bytes. It never recomputes geometry; every coordinate
// comes from the plan.
package svg

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cardgrid/cardgrid/pkg/combin"
	"github.com/cardgrid/cardgrid/pkg/compare"
	"github.com/cardgrid/cardgrid/pkg/deck"
	"github.com/cardgrid/cardgrid/pkg/layout"
)

// Card face colors, mirroring terminal output.
const (
	colorRed   = "#c0392b"
	colorBlack = "#1a1a1a"

	cardFill   = "#ffffff"
	cardStroke = "#1a1a1a"
	background = "#fafafa"
	captionInk = "#666666"
	dividerInk = "#999999"
)

type Option func(*renderer)

type renderer struct {
	set      combin.ArrangementSet
	title    string
	captions bool
}

// WithArrangements supplies the arrangements that fill the plan's cells, in
// cell-index order.
func WithArrangements(set combin.ArrangementSet) Option {
	return func(r *renderer) { r.set = set }
}

// WithTitle draws a headline above the plan.
func WithTitle(title string) Option { return func(r *renderer) { r.title = title } }

// WithCaptions draws a "#n" caption under each cell.
func WithCaptions() Option { return func(r *renderer) { r.captions = true } }

const titleMargin = 40.0 // Space reserved at top when a title is set

// Render renders a single or grid plan to SVG.
func Render(plan layout.Plan, opts ...Option) []byte {
	r := newRenderer(opts...)

	width := plan.Bounds.Width
	height := plan.Bounds.Height
	offsetY := 0.0
	if r.title != "" {
		height += titleMargin
		offsetY = titleMargin
	}

	var buf bytes.Buffer
	openDocument(&buf, width, height)
	if r.title != "" {
		renderTitle(&buf, width/2, titleMargin*0.6, r.title, 20)
	}

	fmt.Fprintf(&buf, `  <g transform="translate(0, %.1f)">`+"\n", offsetY)
	for _, cell := range plan.Cells {
		r.renderCell(&buf, cell, plan.CardHeight)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// RenderComparison renders a four-quadrant comparison to SVG, with per-mode
// titles and dividing lines between the quadrants.
func RenderComparison(res *compare.Result, opts ...Option) []byte {
	r := newRenderer(opts...)

	width := res.Bounds.Width
	height := res.Bounds.Height + titleMargin

	var buf bytes.Buffer
	openDocument(&buf, width, height)
	if r.title != "" {
		renderTitle(&buf, width/2, titleMargin*0.6, r.title, 20)
	}

	fmt.Fprintf(&buf, `  <g transform="translate(0, %.1f)">`+"\n", titleMargin)
	renderDividers(&buf, res.Bounds)

	for _, panel := range res.Panels {
		quad := r
		quad.set = panel.Set
		headline := fmt.Sprintf("%s: %s = %d", panel.Title, panel.Formula, panel.Count)
		originX, originY := quadrantOrigin(panel.Mode, res.Bounds)
		renderTitle(&buf, originX+res.Bounds.Width/4, originY+18, headline, 14)

		for _, cell := range panel.Plan.Cells {
			quad.renderCell(&buf, cell, panel.Plan.CardHeight)
		}
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newRenderer(opts ...Option) renderer {
	r := renderer{captions: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func openDocument(buf *bytes.Buffer, width, height float64) {
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", background)
}

// renderCell draws one arrangement: its cards plus an optional index caption.
func (r *renderer) renderCell(buf *bytes.Buffer, cell layout.Cell, cardHeight float64) {
	cards := r.cardsFor(cell.Index)
	for i, slot := range cell.Slots {
		var sym *deck.Symbol
		if i < len(cards) {
			sym = &cards[i]
		}
		renderCard(buf, slot, sym)
	}

	if r.captions && len(cell.Slots) > 0 {
		renderCaption(buf, cell, cardHeight)
	}
}

// cardsFor resolves the symbols for a 1-based cell index, or nil when no
// arrangement set was supplied (blank card backs).
func (r *renderer) cardsFor(index int) []deck.Symbol {
	if index < 1 || index > len(r.set) {
		return nil
	}
	return r.set[index-1].Cards
}

func renderCard(buf *bytes.Buffer, slot layout.Slot, sym *deck.Symbol) {
	radius := slot.Width * 0.08
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
		slot.X, slot.Y, slot.Width, slot.Height, radius, cardFill, cardStroke)
	if sym == nil {
		return
	}

	ink := colorBlack
	if sym.Color() == deck.Red {
		ink = colorRed
	}
	fontSize := slot.Width * 0.45
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		slot.X+slot.Width/2, slot.Y+slot.Height/2, fontSize, ink, escape(sym.String()))
}

func renderCaption(buf *bytes.Buffer, cell layout.Cell, cardHeight float64) {
	first := cell.Slots[0]
	last := cell.Slots[len(cell.Slots)-1]
	centerX := (first.X + last.X + last.Width) / 2
	fontSize := max(first.Width*0.3, 8)
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.1f" fill="%s" text-anchor="middle">#%d</text>`+"\n",
		centerX, first.Y+cardHeight+fontSize*1.2, fontSize, captionInk, cell.Index)
}

func renderTitle(buf *bytes.Buffer, x, y float64, text string, size float64) {
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.1f" font-weight="bold" fill="%s" text-anchor="middle">%s</text>`+"\n",
		x, y, size, colorBlack, escape(text))
}

// renderDividers draws the cross separating the four quadrants.
func renderDividers(buf *bytes.Buffer, b layout.Bounds) {
	fmt.Fprintf(buf, `    <line x1="%.1f" y1="0" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1" stroke-dasharray="6 4"/>`+"\n",
		b.Width/2, b.Width/2, b.Height, dividerInk)
	fmt.Fprintf(buf, `    <line x1="0" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1" stroke-dasharray="6 4"/>`+"\n",
		b.Height/2, b.Width, b.Height/2, dividerInk)
}

// quadrantOrigin maps a mode to the top-left corner of its quadrant.
func quadrantOrigin(mode combin.Mode, b layout.Bounds) (x, y float64) {
	for i, m := range combin.Modes {
		if m == mode {
			return float64(i%2) * b.Width / 2, float64(i/2) * b.Height / 2
		}
	}
	return 0, 0
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escape(s string) string {
	return escaper.Replace(s)
}
