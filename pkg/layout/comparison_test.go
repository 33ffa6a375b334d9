package layout

import (
	"testing"

	"github.com/cardgrid/cardgrid/pkg/combin"
	"github.com/cardgrid/cardgrid/pkg/errors"
)

// countsFor32 mirrors n=3, r=2: P=6, P-rep=9, C=3, C-rep=6.
func countsFor32() map[combin.Mode]int {
	return map[combin.Mode]int{
		combin.PermutationNoRepeat:   6,
		combin.PermutationWithRepeat: 9,
		combin.CombinationNoRepeat:   3,
		combin.CombinationWithRepeat: 6,
	}
}

func TestPlanComparison(t *testing.T) {
	plan, err := PlanComparison(countsFor32(), 2, testBounds)
	if err != nil {
		t.Fatalf("PlanComparison: %v", err)
	}

	if !plan.IsComparison() {
		t.Fatalf("kind = %q, want %q", plan.Kind, KindComparison)
	}
	if len(plan.Quadrants) != 4 {
		t.Fatalf("quadrants = %d, want 4", len(plan.Quadrants))
	}

	// Quadrants follow the canonical mode order.
	for i, mode := range combin.Modes {
		if plan.Quadrants[i].Mode != mode {
			t.Errorf("quadrant %d mode = %s, want %s", i, plan.Quadrants[i].Mode, mode)
		}
	}

	// Densest mode (9) drives the shape: 9 > 6 so cols = 4, rows = 3.
	if plan.Cols != 4 || plan.Rows != 3 {
		t.Errorf("shape = %dx%d cols/rows, want 4 cols, 3 rows", plan.Cols, plan.Rows)
	}

	for _, q := range plan.Quadrants {
		if len(q.Plan.Cells) != q.Count {
			t.Errorf("%s: cells = %d, want %d", q.Mode, len(q.Plan.Cells), q.Count)
		}
		// Shared scale: every quadrant uses the comparison-level card size.
		if q.Plan.CardWidth != plan.CardWidth || q.Plan.CardHeight != plan.CardHeight || q.Plan.Step != plan.Step {
			t.Errorf("%s: card scale differs from shared scale", q.Mode)
		}
		for _, cell := range q.Plan.Cells {
			for _, s := range cell.Slots {
				if s.X < -1e-9 || s.Y < -1e-9 ||
					s.X+s.Width > testBounds.Width+1e-9 ||
					s.Y+s.Height > testBounds.Height+1e-9 {
					t.Errorf("%s cell %d slot out of canvas: %+v", q.Mode, cell.Index, s)
				}
			}
		}
	}
}

func TestPlanComparisonQuadrantRegions(t *testing.T) {
	plan, err := PlanComparison(countsFor32(), 2, testBounds)
	if err != nil {
		t.Fatal(err)
	}

	halfW := testBounds.Width / 2
	halfH := testBounds.Height / 2
	regions := []struct{ left, top bool }{
		{left: true, top: true},   // PermutationNoRepeat
		{left: false, top: true},  // PermutationWithRepeat
		{left: true, top: false},  // CombinationNoRepeat
		{left: false, top: false}, // CombinationWithRepeat
	}

	for i, q := range plan.Quadrants {
		want := regions[i]
		for _, cell := range q.Plan.Cells {
			for _, s := range cell.Slots {
				inLeft := s.X+s.Width <= halfW+1e-9
				inTop := s.Y+s.Height <= halfH+1e-9
				if inLeft != want.left || inTop != want.top {
					t.Errorf("%s slot %+v escapes its quadrant", q.Mode, s)
				}
			}
		}
	}
}

func TestPlanComparisonColumnPolicy(t *testing.T) {
	tests := []struct {
		maxCount int
		cols     int
	}{
		{1, 1},
		{2, 2},
		{3, 3},
		{4, 3},
		{6, 3},
		{7, 4},
		{100, 4},
	}
	for _, tt := range tests {
		if got := comparisonCols(tt.maxCount); got != tt.cols {
			t.Errorf("comparisonCols(%d) = %d, want %d", tt.maxCount, got, tt.cols)
		}
	}
}

func TestPlanComparisonEmpty(t *testing.T) {
	plan, err := PlanComparison(map[combin.Mode]int{}, 2, testBounds)
	if err != nil {
		t.Fatalf("PlanComparison(empty): %v", err)
	}
	if len(plan.Quadrants) != 0 {
		t.Errorf("quadrants = %d, want 0", len(plan.Quadrants))
	}
}

func TestPlanComparisonErrors(t *testing.T) {
	if _, err := PlanComparison(countsFor32(), 2, Bounds{}); !errors.Is(err, errors.ErrCodeInvalidBounds) {
		t.Errorf("zero bounds: %v, want INVALID_BOUNDS", err)
	}
	if _, err := PlanComparison(map[combin.Mode]int{"bogus": 3}, 2, testBounds); !errors.Is(err, errors.ErrCodeInvalidMode) {
		t.Errorf("bad mode: %v, want INVALID_MODE", err)
	}
	counts := map[combin.Mode]int{combin.PermutationWithRepeat: 100000}
	if _, err := PlanComparison(counts, 13, Bounds{Width: 40, Height: 30}); !errors.Is(err, errors.ErrCodeLayoutOverflow) {
		t.Errorf("tiny canvas: %v, want LAYOUT_OVERFLOW", err)
	}
}
