// Package layout computes deterministic, resolution-independent placement
// geometry for displaying card arrangements without overlap or clipping.
//
// All planners are pure functions of their inputs: counts, item shapes and
// canvas bounds. Symbol identity never influences geometry. Coordinates use
// abstract display units with the origin at the top-left corner, x growing
// right and y growing down, which maps directly onto SVG user space.
//
// # Planners
//
//   - [PlanSingleExpansion]: slot positions for one arrangement being
//     assembled card by card, centered on the canvas
//   - [PlanGrid]: a rows×cols grid holding many same-shape arrangements
//   - [PlanComparison]: a four-quadrant view of all selection modes with a
//     shared card scale driven by the densest mode
//
// # Edge Policy
//
// A zero count yields an empty plan rather than an error. Card sizes shrink
// with density but clamp at [MinCardWidth]; when even the clamped card cannot
// fit the requested bounds, planners fail with LAYOUT_OVERFLOW instead of
// producing overlapping geometry.
package layout

import "github.com/cardgrid/cardgrid/pkg/combin"

// Geometry constants, in abstract display units. The card footprint and step
// mirror the classic 0.6×0.8 card on a 0.7 step, scaled by 100.
const (
	// UnitStep is the horizontal distance between card origins in the
	// single-expansion view.
	UnitStep = 70.0

	// CardWidth and CardHeight are the fixed card footprint used by the
	// single-expansion view.
	CardWidth  = 60.0
	CardHeight = 80.0

	// MinCardWidth is the smallest card width a planner will emit. Extreme
	// selection sizes clamp here rather than collapsing to zero area.
	MinCardWidth = 4.0

	// cardAspect is height/width for scaled cards.
	cardAspect = 1.4

	// stepRatio is the horizontal step between scaled cards as a multiple
	// of card width. Anything above 1.0 guarantees no overlap.
	stepRatio = 1.3

	// cellFillX and cellFillY bound how much of a grid cell the arrangement
	// may occupy, leaving breathing room between neighbors.
	cellFillX = 0.9
	cellFillY = 0.8
)

// Plan kinds, discriminating the Plan union.
const (
	KindSingle     = "single"
	KindGrid       = "grid"
	KindComparison = "comparison"
)

// Bounds is the canvas rectangle available to a planner, in display units.
type Bounds struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Slot is the placement of a single card: the top-left corner and footprint.
type Slot struct {
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Cell is the placement of one arrangement inside a plan: its display number
// (1-based, matching enumeration order), the cell origin, and one slot per
// card.
type Cell struct {
	Index int     `json:"index" bson:"index"`
	X     float64 `json:"x" bson:"x"`
	Y     float64 `json:"y" bson:"y"`
	Slots []Slot  `json:"slots" bson:"slots"`
}

// Quadrant is one mode's sub-region in a comparison plan. The nested plan is
// always a grid plan laid out at the comparison's shared card scale.
type Quadrant struct {
	Mode  combin.Mode `json:"mode" bson:"mode"`
	Title string      `json:"title" bson:"title"`
	Count int         `json:"count" bson:"count"`
	Plan  Plan        `json:"plan" bson:"plan"`
}

// Plan is a computed geometry descriptor. It is a discriminated union - check
// Kind to determine which fields are populated:
//
//	Single ("single"):
//	  - Cells: one cell whose slots are the r expansion positions
//
//	Grid ("grid"):
//	  - Rows, Cols, CellWidth, CellHeight: grid shape
//	  - Cells: one per arrangement, in enumeration order
//
//	Comparison ("comparison"):
//	  - Quadrants: four per-mode grid plans sharing one card scale
//
// Shared fields: Bounds (the canvas the plan was computed for), CardWidth,
// CardHeight, Step (per-card spacing). Every coordinate in a plan lies within
// Bounds.
type Plan struct {
	// Discriminator
	Kind string `json:"kind" bson:"kind"`

	// Canvas and card scale
	Bounds     Bounds  `json:"bounds" bson:"bounds"`
	CardWidth  float64 `json:"card_width" bson:"card_width"`
	CardHeight float64 `json:"card_height" bson:"card_height"`
	Step       float64 `json:"step" bson:"step"`

	// Grid shape
	Rows       int     `json:"rows,omitempty" bson:"rows,omitempty"`
	Cols       int     `json:"cols,omitempty" bson:"cols,omitempty"`
	CellWidth  float64 `json:"cell_width,omitempty" bson:"cell_width,omitempty"`
	CellHeight float64 `json:"cell_height,omitempty" bson:"cell_height,omitempty"`

	// Placements
	Cells []Cell `json:"cells,omitempty" bson:"cells,omitempty"`

	// Comparison-specific
	Quadrants []Quadrant `json:"quadrants,omitempty" bson:"quadrants,omitempty"`
}

// IsSingle returns true if this is a single-expansion plan.
func (p *Plan) IsSingle() bool { return p.Kind == KindSingle }

// IsGrid returns true if this is a grid plan.
func (p *Plan) IsGrid() bool { return p.Kind == KindGrid }

// IsComparison returns true if this is a comparison plan.
func (p *Plan) IsComparison() bool { return p.Kind == KindComparison }
