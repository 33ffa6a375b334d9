package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardgrid/cardgrid/pkg/combin"
	"github.com/cardgrid/cardgrid/pkg/deck"
	"github.com/cardgrid/cardgrid/pkg/errors"
	"github.com/cardgrid/cardgrid/pkg/layout"
)

var bounds = layout.Bounds{Width: 1600, Height: 1200}

func TestBuild(t *testing.T) {
	d, err := deck.Build(3)
	require.NoError(t, err)

	result, err := Build(d, 2, bounds)
	require.NoError(t, err)

	require.Len(t, result.Panels, 4)
	assert.Equal(t, 3, result.N)
	assert.Equal(t, 2, result.R)
	assert.Equal(t, 9, result.MaxCount())

	wantCounts := map[combin.Mode]int{
		combin.PermutationNoRepeat:   6,
		combin.PermutationWithRepeat: 9,
		combin.CombinationNoRepeat:   3,
		combin.CombinationWithRepeat: 6,
	}
	for i, mode := range combin.Modes {
		p := result.Panels[i]
		assert.Equal(t, mode, p.Mode)
		assert.Equal(t, wantCounts[mode], p.Count, "count for %s", mode)
		assert.Len(t, p.Set, p.Count, "set length for %s", mode)
		assert.Len(t, p.Plan.Cells, p.Count, "plan cells for %s", mode)
		assert.NotEmpty(t, p.Formula)
	}
}

func TestBuildSharedScale(t *testing.T) {
	d, err := deck.Build(3)
	require.NoError(t, err)

	result, err := Build(d, 2, bounds)
	require.NoError(t, err)

	// All panels render cards at the comparison's shared scale, even the
	// sparse ones.
	for _, p := range result.Panels {
		assert.Equal(t, result.Plan.CardWidth, p.Plan.CardWidth, "card width for %s", p.Mode)
		assert.Equal(t, result.Plan.CardHeight, p.Plan.CardHeight, "card height for %s", p.Mode)
		assert.Equal(t, result.Plan.Step, p.Plan.Step, "step for %s", p.Mode)
	}
}

func TestBuildPanelLookup(t *testing.T) {
	d, err := deck.Build(3)
	require.NoError(t, err)

	result, err := Build(d, 2, bounds)
	require.NoError(t, err)

	p := result.Panel(combin.CombinationWithRepeat)
	require.NotNil(t, p)
	assert.Equal(t, 6, p.Count)
	assert.Nil(t, result.Panel(combin.Mode("bogus")))
}

func TestBuildRejectsRAboveN(t *testing.T) {
	d, err := deck.Build(2)
	require.NoError(t, err)

	// The comparison applies the stricter no-repetition bound even though
	// two modes could enumerate r > n.
	_, err = Build(d, 3, bounds)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidSelection), "got %v", err)
}

func TestBuildRejectsBadBounds(t *testing.T) {
	d, err := deck.Build(3)
	require.NoError(t, err)

	_, err = Build(d, 2, layout.Bounds{})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidBounds), "got %v", err)
}
