package layout

import (
	"math"

	"github.com/cardgrid/cardgrid/pkg/errors"
)

// maxGridCols caps the column count for large arrangement sets.
const maxGridCols = 6

// GridDims chooses the grid shape for count same-shape items. Small counts
// stay on one row, medium counts use a 2×4 block, and large counts cap at
// maxGridCols columns with as many rows as needed. For every count >= 1 the
// result satisfies rows*cols >= count and rows, cols >= 1.
func GridDims(count int) (rows, cols int) {
	switch {
	case count <= 0:
		return 0, 0
	case count <= 4:
		return 1, count
	case count <= 8:
		return 2, 4
	default:
		cols = min(maxGridCols, count)
		rows = (count + cols - 1) / cols
		return rows, cols
	}
}

// PlanGrid lays out count arrangements of cardsPer cards each inside the
// canvas bounds. Cells are assigned row-major in enumeration order; the card
// scale shrinks with density and clamps at MinCardWidth.
//
// A zero count returns an empty grid plan with no error. When even the
// clamped card size cannot fit a cell, PlanGrid fails with LAYOUT_OVERFLOW.
func PlanGrid(count, cardsPer int, b Bounds) (Plan, error) {
	if err := errors.ValidateBounds(b.Width, b.Height); err != nil {
		return Plan{}, err
	}
	if count < 0 {
		return Plan{}, errors.New(errors.ErrCodeInvalidSize, "item count must not be negative, got %d", count)
	}
	if count == 0 {
		return Plan{Kind: KindGrid, Bounds: b}, nil
	}
	if cardsPer < 1 {
		return Plan{}, errors.New(errors.ErrCodeInvalidSelection,
			"cards per arrangement must be at least 1, got %d", cardsPer)
	}

	rows, cols := GridDims(count)
	cellW := b.Width / float64(cols)
	cellH := b.Height / float64(rows)

	cardW, cardH, step, err := fitCards(cardsPer, cellW, cellH)
	if err != nil {
		return Plan{}, err
	}

	plan := Plan{
		Kind:       KindGrid,
		Bounds:     b,
		CardWidth:  cardW,
		CardHeight: cardH,
		Step:       step,
		Rows:       rows,
		Cols:       cols,
		CellWidth:  cellW,
		CellHeight: cellH,
		Cells:      make([]Cell, 0, count),
	}

	for i := 0; i < count; i++ {
		row := i / cols
		col := i % cols
		origin := Slot{X: float64(col) * cellW, Y: float64(row) * cellH}
		plan.Cells = append(plan.Cells, placeCell(i+1, origin.X, origin.Y, cellW, cellH, cardsPer, cardW, cardH, step))
	}
	return plan, nil
}

// fitCards derives the card footprint for arrangements of cardsPer cards
// inside a cellW×cellH cell. The width is chosen so the arrangement occupies
// at most cellFillX of the cell width and cellFillY of its height, then
// clamped at MinCardWidth. The returned step is the horizontal distance
// between card origins.
func fitCards(cardsPer int, cellW, cellH float64) (cardW, cardH, step float64, err error) {
	// total width = cardW * (1 + (cardsPer-1)*stepRatio)
	widthFactor := 1 + float64(cardsPer-1)*stepRatio
	cardW = math.Min(cellW*cellFillX/widthFactor, cellH*cellFillY/cardAspect)

	if cardW < MinCardWidth {
		cardW = MinCardWidth
		// The clamp may eat the fill margin, but the bare footprint must
		// still fit or the geometry would overlap neighboring cells.
		if cardW*widthFactor > cellW || cardW*cardAspect > cellH {
			return 0, 0, 0, errors.New(errors.ErrCodeLayoutOverflow,
				"cell %.1fx%.1f cannot hold %d cards at the minimum card size",
				cellW, cellH, cardsPer)
		}
	}

	return cardW, cardW * cardAspect, cardW * stepRatio, nil
}

// placeCell centers an arrangement of cardsPer cards inside the cell at
// (x, y) and returns the populated cell with 1-based display index.
func placeCell(index int, x, y, cellW, cellH float64, cardsPer int, cardW, cardH, step float64) Cell {
	total := cardW + float64(cardsPer-1)*step
	startX := x + (cellW-total)/2
	cardY := y + (cellH-cardH)/2

	slots := make([]Slot, cardsPer)
	for i := range slots {
		slots[i] = Slot{
			X:      startX + float64(i)*step,
			Y:      cardY,
			Width:  cardW,
			Height: cardH,
		}
	}
	return Cell{Index: index, X: x, Y: y, Slots: slots}
}
