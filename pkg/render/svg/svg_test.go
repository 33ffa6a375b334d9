package svg

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/cardgrid/cardgrid/pkg/combin"
	"github.com/cardgrid/cardgrid/pkg/compare"
	"github.com/cardgrid/cardgrid/pkg/deck"
	"github.com/cardgrid/cardgrid/pkg/layout"
)

var bounds = layout.Bounds{Width: 1500, Height: 1000}

func gridFixture(t *testing.T) (combin.ArrangementSet, layout.Plan) {
	t.Helper()
	d, err := deck.Build(3)
	if err != nil {
		t.Fatal(err)
	}
	set, err := combin.Enumerate(d, 2, combin.PermutationNoRepeat)
	if err != nil {
		t.Fatal(err)
	}
	plan, err := layout.PlanGrid(len(set), 2, bounds)
	if err != nil {
		t.Fatal(err)
	}
	return set, plan
}

func TestRenderGrid(t *testing.T) {
	set, plan := gridFixture(t)
	out := Render(plan, WithArrangements(set))

	if !bytes.HasPrefix(out, []byte("<svg ")) {
		t.Fatalf("output does not start with <svg: %.40s", out)
	}
	if !bytes.HasSuffix(bytes.TrimSpace(out), []byte("</svg>")) {
		t.Error("output is not closed")
	}

	// One rect per slot plus the background rect
	slots := 0
	for _, cell := range plan.Cells {
		slots += len(cell.Slots)
	}
	if got := bytes.Count(out, []byte("<rect")); got != slots+1 {
		t.Errorf("rects = %d, want %d", got, slots+1)
	}

	// Captions for every arrangement
	for i := 1; i <= len(set); i++ {
		if !bytes.Contains(out, fmt.Appendf(nil, ">#%d</text>", i)) {
			t.Errorf("missing caption #%d", i)
		}
	}

	// Hearts render red, spades black
	if !bytes.Contains(out, []byte(colorRed)) {
		t.Error("no red ink for heart cards")
	}
	if !bytes.Contains(out, []byte("A♥")) {
		t.Error("missing ace of hearts glyph")
	}
}

func TestRenderWithoutArrangements(t *testing.T) {
	_, plan := gridFixture(t)

	// No set supplied: blank card backs, no glyph text
	out := Render(plan)
	if bytes.Contains(out, []byte("♥")) {
		t.Error("blank render should carry no glyphs")
	}
	if got := bytes.Count(out, []byte("<rect")); got < 2 {
		t.Errorf("rects = %d, want card rects even without glyphs", got)
	}
}

func TestRenderTitle(t *testing.T) {
	set, plan := gridFixture(t)

	out := Render(plan, WithArrangements(set), WithTitle("3 cards, draw 2"))
	if !bytes.Contains(out, []byte(">3 cards, draw 2</text>")) {
		t.Error("missing title")
	}

	// Title text is escaped
	out = Render(plan, WithTitle("a < b & c"))
	if !bytes.Contains(out, []byte("a &lt; b &amp; c")) {
		t.Error("title not escaped")
	}
}

func TestRenderDeterministic(t *testing.T) {
	set, plan := gridFixture(t)
	a := Render(plan, WithArrangements(set))
	b := Render(plan, WithArrangements(set))
	if !bytes.Equal(a, b) {
		t.Error("identical inputs should render identical bytes")
	}
}

func TestRenderSingleExpansion(t *testing.T) {
	plan, err := layout.PlanSingleExpansion(3, bounds)
	if err != nil {
		t.Fatal(err)
	}
	d, err := deck.Build(5)
	if err != nil {
		t.Fatal(err)
	}
	set := combin.ArrangementSet{{Indices: []int{0, 1, 2}, Cards: d[:3]}}

	out := Render(plan, WithArrangements(set))
	if got := bytes.Count(out, []byte("<rect")); got != 3+1 {
		t.Errorf("rects = %d, want 4", got)
	}
}

func TestRenderComparison(t *testing.T) {
	d, err := deck.Build(3)
	if err != nil {
		t.Fatal(err)
	}
	res, err := compare.Build(d, 2, bounds)
	if err != nil {
		t.Fatal(err)
	}

	out := RenderComparison(res, WithTitle("n=3, r=2"))

	// Quadrant headlines carry mode title, formula, and count
	for _, panel := range res.Panels {
		headline := fmt.Sprintf("%s: %s = %d", panel.Title, panel.Formula, panel.Count)
		if !bytes.Contains(out, []byte(escape(headline))) {
			t.Errorf("missing headline %q", headline)
		}
	}

	// Two dashed divider lines separate the quadrants
	if got := bytes.Count(out, []byte("<line")); got != 2 {
		t.Errorf("lines = %d, want 2", got)
	}

	// Every arrangement across all panels is drawn
	slots := 0
	for _, panel := range res.Panels {
		for _, cell := range panel.Plan.Cells {
			slots += len(cell.Slots)
		}
	}
	if got := bytes.Count(out, []byte("<rect")); got != slots+1 {
		t.Errorf("rects = %d, want %d", got, slots+1)
	}
}
