package pipeline

import (
	"bytes"
	"context"
	"testing"

	"github.com/cardgrid/cardgrid/pkg/cache"
	"github.com/cardgrid/cardgrid/pkg/combin"
	"github.com/cardgrid/cardgrid/pkg/errors"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestExecute(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	result, err := r.Execute(ctx, Options{N: 3, R: 2, Mode: "perm", Formats: []string{FormatSVG, FormatJSON}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Count != 6 {
		t.Errorf("count = %d, want 6", result.Count)
	}
	if result.Formula == "" {
		t.Error("missing formula")
	}
	if len(result.Plan.Cells) != 6 {
		t.Errorf("plan cells = %d, want 6", len(result.Plan.Cells))
	}
	if !bytes.HasPrefix(result.Artifacts[FormatSVG], []byte("<svg ")) {
		t.Error("svg artifact missing or malformed")
	}
	if !bytes.Contains(result.Artifacts[FormatJSON], []byte(`"indices"`)) {
		t.Error("json artifact missing arrangements")
	}
	if result.CacheInfo.EnumerateHit {
		t.Error("first run should not hit the cache")
	}
}

func TestExecuteCacheHit(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{N: 3, R: 2, Mode: "comb"}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}

	if !second.CacheInfo.EnumerateHit || !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit all stages: %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs from rendered one")
	}

	// Refresh bypasses the cache
	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.EnumerateHit {
		t.Error("refresh run should not hit the cache")
	}
}

func TestExecuteArtifactCacheIsolation(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	// perm and comb-repeat at n=3, r=2 both count 6, so their grid plans are
	// geometrically identical. Their artifacts must still be distinct: comb-repeat
	// deals doubles like (0,0) that a permutation without repetition never shows.
	perm, err := r.Execute(ctx, Options{N: 3, R: 2, Mode: "perm"})
	if err != nil {
		t.Fatal(err)
	}
	combRep, err := r.Execute(ctx, Options{N: 3, R: 2, Mode: "comb-repeat"})
	if err != nil {
		t.Fatal(err)
	}

	if combRep.CacheInfo.RenderHit {
		t.Error("different mode must not hit the other mode's artifact cache")
	}
	if bytes.Equal(perm.Artifacts[FormatSVG], combRep.Artifacts[FormatSVG]) {
		t.Error("modes with equal counts rendered byte-identical artifacts")
	}

	// A changed title changes the rendered bytes, so it misses too
	titled, err := r.Execute(ctx, Options{N: 3, R: 2, Mode: "perm", Title: "All orderings"})
	if err != nil {
		t.Fatal(err)
	}
	if titled.CacheInfo.RenderHit {
		t.Error("titled render must not hit the untitled artifact cache")
	}
	if bytes.Equal(perm.Artifacts[FormatSVG], titled.Artifacts[FormatSVG]) {
		t.Error("titled artifact should differ from the untitled one")
	}
}

func TestExecuteComparison(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	result, err := r.Execute(ctx, Options{N: 3, R: 2, Compare: true})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Comparison == nil {
		t.Fatal("missing comparison")
	}
	if result.Count != 9 {
		t.Errorf("max count = %d, want 9", result.Count)
	}
	if len(result.Comparison.Panels) != 4 {
		t.Errorf("panels = %d, want 4", len(result.Comparison.Panels))
	}
	if !result.Plan.IsComparison() {
		t.Errorf("plan kind = %q, want comparison", result.Plan.Kind)
	}
	if !bytes.HasPrefix(result.Artifacts[FormatSVG], []byte("<svg ")) {
		t.Error("svg artifact missing")
	}
}

func TestExecuteErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{
			name: "RAboveNWithoutRepetition",
			opts: Options{N: 2, R: 3, Mode: "perm"},
			code: errors.ErrCodeInvalidSelection,
		},
		{
			name: "UnknownMode",
			opts: Options{N: 3, R: 2, Mode: "shuffle"},
			code: errors.ErrCodeInvalidMode,
		},
		{
			name: "UnknownFormat",
			opts: Options{N: 3, R: 2, Formats: []string{"png"}},
			code: errors.ErrCodeInvalidFormat,
		},
		{
			name: "CountBeyondCap",
			opts: Options{N: 13, R: 5, Mode: "perm"},
			code: errors.ErrCodeTooManyArrangements,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(ctx, tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("got %v, want %s", err, tt.code)
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	if opts.N != DefaultN || opts.R != DefaultR {
		t.Errorf("n=%d r=%d, want defaults %d/%d", opts.N, opts.R, DefaultN, DefaultR)
	}
	if opts.Mode != DefaultMode {
		t.Errorf("mode = %q, want %q", opts.Mode, DefaultMode)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("bounds = %vx%v, want defaults", opts.Width, opts.Height)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("formats = %v, want [svg]", opts.Formats)
	}
	if opts.MaxArrangements != DefaultMaxArrangements {
		t.Errorf("cap = %d, want %d", opts.MaxArrangements, DefaultMaxArrangements)
	}

	// Idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
}

func TestCheckCap(t *testing.T) {
	opts := Options{MaxArrangements: 100}
	if err := opts.CheckCap(100); err != nil {
		t.Errorf("count at cap should pass: %v", err)
	}
	if err := opts.CheckCap(101); !errors.Is(err, errors.ErrCodeTooManyArrangements) {
		t.Errorf("count above cap: %v", err)
	}
}

func TestEnumerateStage(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	set, hit, err := r.EnumerateWithCacheInfo(ctx, Options{N: 4, R: 2, Mode: string(combin.CombinationWithRepeat)})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("first call should miss")
	}
	if len(set) != 10 {
		t.Errorf("len = %d, want 10", len(set))
	}

	cached, hit, err := r.EnumerateWithCacheInfo(ctx, Options{N: 4, R: 2, Mode: string(combin.CombinationWithRepeat)})
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("second call should hit")
	}
	if len(cached) != len(set) {
		t.Errorf("cached len = %d, want %d", len(cached), len(set))
	}
	for i := range set {
		if cached[i].String() != set[i].String() {
			t.Errorf("arrangement %d differs after cache round trip", i)
		}
	}
}
