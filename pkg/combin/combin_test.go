package combin

import (
	"testing"

	"github.com/cardgrid/cardgrid/pkg/deck"
	"github.com/cardgrid/cardgrid/pkg/errors"
)

func mustDeck(t *testing.T, n int) deck.Deck {
	t.Helper()
	d, err := deck.Build(n)
	if err != nil {
		t.Fatalf("Build(%d): %v", n, err)
	}
	return d
}

func TestEnumerateOrders(t *testing.T) {
	d := mustDeck(t, 3)

	tests := []struct {
		name string
		mode Mode
		r    int
		want [][]int
	}{
		{
			name: "PermutationNoRepeat",
			mode: PermutationNoRepeat,
			r:    2,
			want: [][]int{{0, 1}, {0, 2}, {1, 0}, {1, 2}, {2, 0}, {2, 1}},
		},
		{
			name: "PermutationWithRepeat",
			mode: PermutationWithRepeat,
			r:    2,
			want: [][]int{
				{0, 0}, {0, 1}, {0, 2},
				{1, 0}, {1, 1}, {1, 2},
				{2, 0}, {2, 1}, {2, 2},
			},
		},
		{
			name: "CombinationNoRepeat",
			mode: CombinationNoRepeat,
			r:    2,
			want: [][]int{{0, 1}, {0, 2}, {1, 2}},
		},
		{
			name: "CombinationWithRepeat",
			mode: CombinationWithRepeat,
			r:    2,
			want: [][]int{{0, 0}, {0, 1}, {0, 2}, {1, 1}, {1, 2}, {2, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Enumerate(d, tt.r, tt.mode)
			if err != nil {
				t.Fatalf("Enumerate: %v", err)
			}
			if len(set) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(set), len(tt.want))
			}
			for i, want := range tt.want {
				got := set[i].Indices
				if len(got) != len(want) {
					t.Fatalf("arrangement %d: len = %d, want %d", i, len(got), len(want))
				}
				for j := range want {
					if got[j] != want[j] {
						t.Errorf("arrangement %d: indices = %v, want %v", i, got, want)
						break
					}
				}
				// Cards must mirror the indices.
				for j, idx := range got {
					if set[i].Cards[j] != d[idx] {
						t.Errorf("arrangement %d: card %d = %v, want %v", i, j, set[i].Cards[j], d[idx])
					}
				}
			}
		})
	}
}

func TestEnumerateMatchesCount(t *testing.T) {
	for n := 1; n <= 5; n++ {
		d := mustDeck(t, n)
		for r := 1; r <= 4; r++ {
			for _, mode := range Modes {
				if mode.NoRepeat() && r > n {
					continue
				}
				set, err := Enumerate(d, r, mode)
				if err != nil {
					t.Fatalf("Enumerate(n=%d, r=%d, %s): %v", n, r, mode, err)
				}
				want, err := Count(n, r, mode)
				if err != nil {
					t.Fatalf("Count(n=%d, r=%d, %s): %v", n, r, mode, err)
				}
				if len(set) != want {
					t.Errorf("n=%d r=%d %s: enumerated %d, closed form %d", n, r, mode, len(set), want)
				}
			}
		}
	}
}

func TestEnumerateIndexProperties(t *testing.T) {
	d := mustDeck(t, 4)

	for _, mode := range Modes {
		set, err := Enumerate(d, 3, mode)
		if err != nil {
			t.Fatalf("Enumerate(%s): %v", mode, err)
		}
		for i, a := range set {
			if mode.NoRepeat() {
				seen := map[int]bool{}
				for _, idx := range a.Indices {
					if seen[idx] {
						t.Errorf("%s arrangement %d reuses index %d", mode, i, idx)
					}
					seen[idx] = true
				}
			}
			if !mode.Ordered() {
				for j := 1; j < len(a.Indices); j++ {
					if a.Indices[j] < a.Indices[j-1] {
						t.Errorf("%s arrangement %d not ascending: %v", mode, i, a.Indices)
						break
					}
				}
			}
		}
	}
}

func TestEnumerateDeterministic(t *testing.T) {
	d := mustDeck(t, 4)

	first, err := Enumerate(d, 2, PermutationWithRepeat)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Enumerate(d, 2, PermutationWithRepeat)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].String() != second[i].String() {
			t.Errorf("arrangement %d differs: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestEnumerateInvalidSelection(t *testing.T) {
	d := mustDeck(t, 2)

	// r > n must fail for the no-repetition modes only.
	if _, err := Enumerate(d, 3, PermutationNoRepeat); !errors.Is(err, errors.ErrCodeInvalidSelection) {
		t.Errorf("perm no-repeat r>n: %v, want INVALID_SELECTION", err)
	}
	if _, err := Enumerate(d, 3, CombinationNoRepeat); !errors.Is(err, errors.ErrCodeInvalidSelection) {
		t.Errorf("comb no-repeat r>n: %v, want INVALID_SELECTION", err)
	}
	if _, err := Enumerate(d, 3, PermutationWithRepeat); err != nil {
		t.Errorf("perm with-repeat r>n: %v, want nil", err)
	}

	if _, err := Enumerate(d, 0, PermutationWithRepeat); !errors.Is(err, errors.ErrCodeInvalidSelection) {
		t.Errorf("r=0: %v, want INVALID_SELECTION", err)
	}
	if _, err := Enumerate(d, 2, Mode("shuffle")); !errors.Is(err, errors.ErrCodeInvalidMode) {
		t.Errorf("bad mode: %v, want INVALID_MODE", err)
	}
}

func TestAllStopsEarly(t *testing.T) {
	d := mustDeck(t, 5)

	seq, err := All(d, 5, PermutationWithRepeat) // 3125 total
	if err != nil {
		t.Fatal(err)
	}
	var got int
	for range seq {
		got++
		if got == 7 {
			break
		}
	}
	if got != 7 {
		t.Errorf("consumed %d arrangements, want 7", got)
	}
}

func TestArrangementString(t *testing.T) {
	d := mustDeck(t, 3)
	set, err := Enumerate(d, 2, CombinationNoRepeat)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := set[0].String(), "A♥ 2♠"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParseMode(t *testing.T) {
	for _, mode := range Modes {
		got, err := ParseMode(string(mode))
		if err != nil {
			t.Errorf("ParseMode(%q): %v", mode, err)
		}
		if got != mode {
			t.Errorf("ParseMode(%q) = %q", mode, got)
		}
	}
	if _, err := ParseMode("bogus"); !errors.Is(err, errors.ErrCodeInvalidMode) {
		t.Errorf("ParseMode(bogus) = %v, want INVALID_MODE", err)
	}
}
