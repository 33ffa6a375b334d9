package layout

import (
	"github.com/samber/lo"

	"github.com/cardgrid/cardgrid/pkg/combin"
	"github.com/cardgrid/cardgrid/pkg/errors"
)

// comparisonCols chooses the per-quadrant column count from the densest
// mode's arrangement count: tiny sets stay on one row, medium sets use three
// columns, large sets four.
func comparisonCols(maxCount int) int {
	switch {
	case maxCount <= 3:
		return max(maxCount, 1)
	case maxCount <= 6:
		return 3
	default:
		return 4
	}
}

// PlanComparison lays out the four-quadrant side-by-side view of all
// selection modes. The canvas splits 2×2 in [combin.Modes] order
// (permutations on top, combinations below, no-repetition on the left). One
// card scale is computed from the densest mode and shared by every quadrant,
// so panels are visually comparable; sparser quadrants simply leave trailing
// cells empty.
//
// Each quadrant's nested plan is a grid plan whose cell coordinates are
// absolute canvas coordinates. Fails with LAYOUT_OVERFLOW when the densest
// quadrant cannot hold even minimum-size cards.
func PlanComparison(counts map[combin.Mode]int, cardsPer int, b Bounds) (Plan, error) {
	if err := errors.ValidateBounds(b.Width, b.Height); err != nil {
		return Plan{}, err
	}
	if cardsPer < 1 {
		return Plan{}, errors.New(errors.ErrCodeInvalidSelection,
			"cards per arrangement must be at least 1, got %d", cardsPer)
	}
	for mode, count := range counts {
		if !mode.Valid() {
			return Plan{}, errors.New(errors.ErrCodeInvalidMode, "unknown selection mode %q", string(mode))
		}
		if count < 0 {
			return Plan{}, errors.New(errors.ErrCodeInvalidSize,
				"%s count must not be negative, got %d", mode, count)
		}
	}

	maxCount := lo.Max(lo.Values(counts))
	if maxCount == 0 {
		return Plan{Kind: KindComparison, Bounds: b}, nil
	}

	cols := comparisonCols(maxCount)
	rows := (maxCount + cols - 1) / cols

	quadW := b.Width / 2
	quadH := b.Height / 2
	cellW := quadW / float64(cols)
	cellH := quadH / float64(rows)

	// Shared scale: the densest quadrant dictates the card size all four use.
	cardW, cardH, step, err := fitCards(cardsPer, cellW, cellH)
	if err != nil {
		return Plan{}, err
	}

	plan := Plan{
		Kind:       KindComparison,
		Bounds:     b,
		CardWidth:  cardW,
		CardHeight: cardH,
		Step:       step,
		Rows:       rows,
		Cols:       cols,
		CellWidth:  cellW,
		CellHeight: cellH,
		Quadrants:  make([]Quadrant, 0, len(combin.Modes)),
	}

	for i, mode := range combin.Modes {
		count := counts[mode]
		originX := float64(i%2) * quadW
		originY := float64(i/2) * quadH

		sub := Plan{
			Kind:       KindGrid,
			Bounds:     b,
			CardWidth:  cardW,
			CardHeight: cardH,
			Step:       step,
			Rows:       (count + cols - 1) / cols,
			Cols:       cols,
			CellWidth:  cellW,
			CellHeight: cellH,
			Cells:      make([]Cell, 0, count),
		}
		for j := 0; j < count; j++ {
			row := j / cols
			col := j % cols
			sub.Cells = append(sub.Cells, placeCell(j+1,
				originX+float64(col)*cellW, originY+float64(row)*cellH,
				cellW, cellH, cardsPer, cardW, cardH, step))
		}

		plan.Quadrants = append(plan.Quadrants, Quadrant{
			Mode:  mode,
			Title: mode.Title(),
			Count: count,
			Plan:  sub,
		})
	}

	return plan, nil
}
