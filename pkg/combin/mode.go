package combin

import "github.com/cardgrid/cardgrid/pkg/errors"

// Mode selects one of the four finite-sequence-generation rules. It is a
// closed enumeration: every operation in this package switches over the four
// values below.
type Mode string

// The four selection modes.
const (
	// PermutationNoRepeat enumerates ordered tuples of distinct cards.
	PermutationNoRepeat Mode = "perm"

	// PermutationWithRepeat enumerates ordered tuples with reuse (Cartesian power).
	PermutationWithRepeat Mode = "perm-repeat"

	// CombinationNoRepeat enumerates unordered subsets of distinct cards,
	// emitted in ascending deck-index order.
	CombinationNoRepeat Mode = "comb"

	// CombinationWithRepeat enumerates multisets with reuse, emitted as
	// non-decreasing deck-index tuples.
	CombinationWithRepeat Mode = "comb-repeat"
)

// Modes lists all selection modes in display order: permutations before
// combinations, no-repetition before with-repetition. The comparison view
// relies on this order for its quadrant assignment.
var Modes = []Mode{
	PermutationNoRepeat,
	PermutationWithRepeat,
	CombinationNoRepeat,
	CombinationWithRepeat,
}

// Valid reports whether m is one of the four selection modes.
func (m Mode) Valid() bool {
	switch m {
	case PermutationNoRepeat, PermutationWithRepeat, CombinationNoRepeat, CombinationWithRepeat:
		return true
	}
	return false
}

// NoRepeat reports whether m forbids selecting the same card twice.
// No-repeat modes require r <= n.
func (m Mode) NoRepeat() bool {
	return m == PermutationNoRepeat || m == CombinationNoRepeat
}

// Ordered reports whether the selection order is significant for m.
func (m Mode) Ordered() bool {
	return m == PermutationNoRepeat || m == PermutationWithRepeat
}

// Title returns the human-readable mode name used in headings and the
// comparison view.
func (m Mode) Title() string {
	switch m {
	case PermutationNoRepeat:
		return "Permutation (No Repetition)"
	case PermutationWithRepeat:
		return "Permutation (With Repetition)"
	case CombinationNoRepeat:
		return "Combination (No Repetition)"
	case CombinationWithRepeat:
		return "Combination (With Repetition)"
	}
	return string(m)
}

// ParseMode converts a string into a Mode, accepting the canonical short
// names used by the CLI and API. Returns an INVALID_MODE error for anything
// else.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", errors.New(errors.ErrCodeInvalidMode,
			"unknown selection mode %q (must be one of: perm, perm-repeat, comb, comb-repeat)", s)
	}
	return m, nil
}
