package layout

import "github.com/cardgrid/cardgrid/pkg/errors"

// PlanSingleExpansion positions r card slots for the "currently being
// assembled" arrangement view. The footprint is r*UnitStep wide, centered
// horizontally and vertically on the canvas, with the fixed CardWidth by
// CardHeight card size. Callers animating a deal interpolate each card from
// the top edge down to its slot.
//
// Fails with INVALID_SELECTION for r < 1 and LAYOUT_OVERFLOW when the fixed
// footprint does not fit the bounds.
func PlanSingleExpansion(r int, b Bounds) (Plan, error) {
	if err := errors.ValidateBounds(b.Width, b.Height); err != nil {
		return Plan{}, err
	}
	if r < 1 {
		return Plan{}, errors.New(errors.ErrCodeInvalidSelection,
			"selection size must be at least 1, got %d", r)
	}

	footprint := float64(r) * UnitStep
	if footprint > b.Width || CardHeight > b.Height {
		return Plan{}, errors.New(errors.ErrCodeLayoutOverflow,
			"%d slots need %gx%g units, canvas is %gx%g",
			r, footprint, CardHeight, b.Width, b.Height)
	}

	startX := (b.Width - footprint) / 2
	y := (b.Height - CardHeight) / 2

	slots := make([]Slot, r)
	for i := range slots {
		slots[i] = Slot{
			// Each card sits centered inside its UnitStep-wide band.
			X:      startX + float64(i)*UnitStep + (UnitStep-CardWidth)/2,
			Y:      y,
			Width:  CardWidth,
			Height: CardHeight,
		}
	}

	return Plan{
		Kind:       KindSingle,
		Bounds:     b,
		CardWidth:  CardWidth,
		CardHeight: CardHeight,
		Step:       UnitStep,
		Cells:      []Cell{{Index: 1, X: startX, Y: y, Slots: slots}},
	}, nil
}
