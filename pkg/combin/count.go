package combin

import (
	"fmt"
	"math"

	"github.com/cardgrid/cardgrid/pkg/errors"
)

// Count returns the closed-form arrangement count for n cards, selection
// size r and the given mode, without enumerating. For every valid input,
// Count equals len(Enumerate(...)).
//
// Counts are computed in int arithmetic. Under the documented caller bounds
// (n <= 13, r <= n) every mode stays far below the int limit; inputs beyond
// those bounds saturate at [math.MaxInt] instead of wrapping, so a
// materialization cap compared against Count stays trustworthy for any
// input.
func Count(n, r int, mode Mode) (int, error) {
	if !mode.Valid() {
		return 0, errors.New(errors.ErrCodeInvalidMode, "unknown selection mode %q", string(mode))
	}
	if err := errors.ValidateSelection(n, r, mode.NoRepeat()); err != nil {
		return 0, err
	}

	switch mode {
	case PermutationNoRepeat:
		return fallingFactorial(n, r), nil
	case PermutationWithRepeat:
		return intPow(n, r), nil
	case CombinationNoRepeat:
		return binomial(n, r), nil
	case CombinationWithRepeat:
		return binomial(n+r-1, r), nil
	}
	return 0, errors.New(errors.ErrCodeInternal, "unhandled mode %q", string(mode))
}

// Formula returns the human-readable closed-form formula for the count,
// matching the notation shown alongside each visualization:
//
//	P(3,2) = 3!/1!
//	3^2
//	C(3,2) = 3!/(2!(1)!)
//	C(4,2) = (4)!/(2!(2)!)
//
// The combination-with-repetition case uses its single canonical form
// C(n+r-1, r) in every view.
func Formula(n, r int, mode Mode) (string, error) {
	if !mode.Valid() {
		return "", errors.New(errors.ErrCodeInvalidMode, "unknown selection mode %q", string(mode))
	}
	if err := errors.ValidateSelection(n, r, mode.NoRepeat()); err != nil {
		return "", err
	}

	switch mode {
	case PermutationNoRepeat:
		return fmt.Sprintf("P(%d,%d) = %d!/%d!", n, r, n, n-r), nil
	case PermutationWithRepeat:
		return fmt.Sprintf("%d^%d", n, r), nil
	case CombinationNoRepeat:
		return fmt.Sprintf("C(%d,%d) = %d!/(%d!(%d)!)", n, r, n, r, n-r), nil
	case CombinationWithRepeat:
		return fmt.Sprintf("C(%d,%d) = (%d)!/(%d!(%d)!)", n+r-1, r, n+r-1, r, n-1), nil
	}
	return "", errors.New(errors.ErrCodeInternal, "unhandled mode %q", string(mode))
}

// fallingFactorial returns n * (n-1) * ... * (n-r+1), the number of ordered
// selections of r distinct items from n. Saturates at math.MaxInt.
func fallingFactorial(n, r int) int {
	result := 1
	for i := 0; i < r; i++ {
		result = satMul(result, n-i)
	}
	return result
}

// intPow returns n^r for non-negative r. Saturates at math.MaxInt.
func intPow(n, r int) int {
	result := 1
	for i := 0; i < r; i++ {
		result = satMul(result, n)
	}
	return result
}

// binomial returns C(n, r) using the multiplicative form. Each intermediate
// product is divisible by its divisor, so the computation stays in integers.
// Saturates at math.MaxInt: every remaining factor (n-r+i)/i is at least 1,
// so once an intermediate product overflows the true value is at least as
// large.
func binomial(n, r int) int {
	if r > n {
		return 0
	}
	if r > n-r {
		r = n - r
	}
	result := 1
	for i := 1; i <= r; i++ {
		result = satMul(result, n-r+i)
		if result == math.MaxInt {
			return math.MaxInt
		}
		result /= i
	}
	return result
}

// satMul multiplies non-negative operands, clamping to math.MaxInt on
// overflow.
func satMul(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	p := a * b
	if p/b != a {
		return math.MaxInt
	}
	return p
}
