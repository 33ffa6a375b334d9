// Package combin enumerates card arrangements under the four classical
// selection modes: permutations and combinations, each with or without
// repetition.
//
// Enumeration is defined over deck indices, so the same deck, size and mode
// always produce the same sequence in the same order. The closed-form counts
// from [Count] equal the enumerated lengths for every valid input; callers
// should consult Count before materializing a full set, since the
// with-repetition modes grow as n^r and C(n+r-1, r).
//
// # Enumeration Orders
//
//   - [PermutationNoRepeat]: lexicographic over index tuples, no index reused
//   - [PermutationWithRepeat]: odometer order, rightmost position fastest
//   - [CombinationNoRepeat]: ascending index subsets
//   - [CombinationWithRepeat]: non-decreasing index tuples
//
// # Usage
//
//	d, _ := deck.Build(3)
//	set, err := combin.Enumerate(d, 2, combin.PermutationNoRepeat)
//	// set has exactly combin.Count(3, 2, combin.PermutationNoRepeat) elements
//
// For early termination, iterate lazily instead of materializing:
//
//	seq, _ := combin.All(d, 2, combin.PermutationWithRepeat)
//	for a := range seq {
//	    if enough(a) {
//	        break
//	    }
//	}
package combin

import (
	"iter"
	"slices"
	"strings"

	"github.com/cardgrid/cardgrid/pkg/deck"
	"github.com/cardgrid/cardgrid/pkg/errors"
)

// Arrangement is one ordered output sequence of cards. Indices are the source
// deck positions in selection order; Cards are the corresponding symbols.
// Arrangements are immutable once produced.
type Arrangement struct {
	Indices []int         `json:"indices" bson:"indices"`
	Cards   []deck.Symbol `json:"cards" bson:"cards"`
}

// String returns the space-joined card notation, e.g. "A♥ 2♠".
func (a Arrangement) String() string {
	parts := make([]string, len(a.Cards))
	for i, c := range a.Cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// ArrangementSet is the complete ordered list of arrangements for one
// (deck, r, mode) input. Element i is arrangement number i+1 for display.
type ArrangementSet []Arrangement

// Enumerate materializes the full arrangement set for the deck, selection
// size and mode. The result length always equals Count(len(d), r, mode).
// Fails with INVALID_SELECTION if r < 1, or if mode forbids repetition and
// r exceeds the deck size.
func Enumerate(d deck.Deck, r int, mode Mode) (ArrangementSet, error) {
	seq, err := All(d, r, mode)
	if err != nil {
		return nil, err
	}

	// Counts are validated above, so the closed form cannot fail here.
	total, _ := Count(len(d), r, mode)
	set := make(ArrangementSet, 0, total)
	for a := range seq {
		set = append(set, a)
	}
	return set, nil
}

// All returns a lazy sequence of arrangements in enumeration order. Consumers
// may stop early; each yielded arrangement owns its slices and remains valid
// after iteration continues. Validation errors are the same as Enumerate's.
func All(d deck.Deck, r int, mode Mode) (iter.Seq[Arrangement], error) {
	if !mode.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidMode, "unknown selection mode %q", string(mode))
	}
	if err := errors.ValidateSelection(len(d), r, mode.NoRepeat()); err != nil {
		return nil, err
	}

	n := len(d)
	return func(yield func(Arrangement) bool) {
		emit := func(indices []int) bool {
			return yield(materialize(d, indices))
		}
		switch mode {
		case PermutationNoRepeat:
			permutations(n, r, emit)
		case PermutationWithRepeat:
			product(n, r, emit)
		case CombinationNoRepeat:
			combinations(n, r, emit)
		case CombinationWithRepeat:
			multisets(n, r, emit)
		}
	}, nil
}

// materialize clones the index buffer and resolves it against the deck.
func materialize(d deck.Deck, indices []int) Arrangement {
	cards := make([]deck.Symbol, len(indices))
	for i, idx := range indices {
		cards[i] = d[idx]
	}
	return Arrangement{Indices: slices.Clone(indices), Cards: cards}
}

// permutations emits all ordered r-tuples of distinct indices from [0, n) in
// lexicographic order. emit returning false stops the enumeration.
func permutations(n, r int, emit func([]int) bool) {
	buf := make([]int, r)
	used := make([]bool, n)

	var walk func(pos int) bool
	walk = func(pos int) bool {
		if pos == r {
			return emit(buf)
		}
		for i := 0; i < n; i++ {
			if used[i] {
				continue
			}
			buf[pos] = i
			used[i] = true
			ok := walk(pos + 1)
			used[i] = false
			if !ok {
				return false
			}
		}
		return true
	}
	walk(0)
}

// product emits all r-tuples over [0, n) in odometer order, with the
// rightmost position varying fastest.
func product(n, r int, emit func([]int) bool) {
	buf := make([]int, r)

	var walk func(pos int) bool
	walk = func(pos int) bool {
		if pos == r {
			return emit(buf)
		}
		for i := 0; i < n; i++ {
			buf[pos] = i
			if !walk(pos + 1) {
				return false
			}
		}
		return true
	}
	walk(0)
}

// combinations emits all strictly ascending r-tuples of indices from [0, n).
func combinations(n, r int, emit func([]int) bool) {
	buf := make([]int, r)

	var walk func(pos, start int) bool
	walk = func(pos, start int) bool {
		if pos == r {
			return emit(buf)
		}
		for i := start; i < n; i++ {
			buf[pos] = i
			if !walk(pos+1, i+1) {
				return false
			}
		}
		return true
	}
	walk(0, 0)
}

// multisets emits all non-decreasing r-tuples of indices from [0, n).
func multisets(n, r int, emit func([]int) bool) {
	buf := make([]int, r)

	var walk func(pos, start int) bool
	walk = func(pos, start int) bool {
		if pos == r {
			return emit(buf)
		}
		for i := start; i < n; i++ {
			buf[pos] = i
			if !walk(pos+1, i) {
				return false
			}
		}
		return true
	}
	walk(0, 0)
}
