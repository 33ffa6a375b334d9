// Package compare builds the four-quadrant side-by-side view of all
// selection modes for one deck and selection size.
//
// The orchestrator enumerates every mode, asks the layout planner for a
// single comparison plan so all four panels share one card scale, and
// packages the per-mode results for a rendering collaborator. It has no side
// effects and never touches a display surface.
package compare

import (
	"github.com/samber/lo"

	"github.com/cardgrid/cardgrid/pkg/combin"
	"github.com/cardgrid/cardgrid/pkg/deck"
	"github.com/cardgrid/cardgrid/pkg/errors"
	"github.com/cardgrid/cardgrid/pkg/layout"
)

// Panel bundles one mode's enumeration result with its share of the
// comparison geometry.
type Panel struct {
	Mode    combin.Mode           `json:"mode" bson:"mode"`
	Title   string                `json:"title" bson:"title"`
	Count   int                   `json:"count" bson:"count"`
	Formula string                `json:"formula" bson:"formula"`
	Set     combin.ArrangementSet `json:"arrangements" bson:"arrangements"`
	Plan    layout.Plan           `json:"plan" bson:"plan"`
}

// Result is the composed comparison: the shared plan plus one panel per mode,
// in [combin.Modes] order.
type Result struct {
	N      int           `json:"n" bson:"n"`
	R      int           `json:"r" bson:"r"`
	Plan   layout.Plan   `json:"plan" bson:"plan"`
	Panels []Panel       `json:"panels" bson:"panels"`
	Bounds layout.Bounds `json:"bounds" bson:"bounds"`
}

// MaxCount returns the arrangement count of the densest panel.
func (r *Result) MaxCount() int {
	return lo.Max(lo.Map(r.Panels, func(p Panel, _ int) int { return p.Count }))
}

// Panel returns the panel for the given mode, or nil if absent.
func (r *Result) Panel(mode combin.Mode) *Panel {
	for i := range r.Panels {
		if r.Panels[i].Mode == mode {
			return &r.Panels[i]
		}
	}
	return nil
}

// Build enumerates all four selection modes over the deck and lays them out
// in a shared-scale comparison grid. Comparison requires the stricter
// no-repetition bound r <= n; violating it fails the whole build with
// INVALID_SELECTION before any enumeration happens.
func Build(d deck.Deck, r int, b layout.Bounds) (*Result, error) {
	n := len(d)
	// Checked up front so the with-repetition modes are not enumerated and
	// then thrown away when a no-repetition mode must fail.
	if err := errors.ValidateSelection(n, r, true); err != nil {
		return nil, err
	}
	if err := errors.ValidateBounds(b.Width, b.Height); err != nil {
		return nil, err
	}

	panels := make([]Panel, 0, len(combin.Modes))
	counts := make(map[combin.Mode]int, len(combin.Modes))
	for _, mode := range combin.Modes {
		set, err := combin.Enumerate(d, r, mode)
		if err != nil {
			return nil, err
		}
		formula, err := combin.Formula(n, r, mode)
		if err != nil {
			return nil, err
		}
		counts[mode] = len(set)
		panels = append(panels, Panel{
			Mode:    mode,
			Title:   mode.Title(),
			Count:   len(set),
			Formula: formula,
			Set:     set,
		})
	}

	plan, err := layout.PlanComparison(counts, r, b)
	if err != nil {
		return nil, err
	}
	for i := range plan.Quadrants {
		panels[i].Plan = plan.Quadrants[i].Plan
	}

	return &Result{N: n, R: r, Plan: plan, Panels: panels, Bounds: b}, nil
}
