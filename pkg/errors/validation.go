package errors

// ValidateDeckSize validates the number of cards requested for a deck.
// The deck builder cycles symbols, so there is no intrinsic upper bound;
// callers such as the CLI may impose one separately.
func ValidateDeckSize(n int) error {
	if n < 1 {
		return New(ErrCodeInvalidSize, "deck size must be at least 1, got %d", n)
	}
	return nil
}

// ValidateSelection validates a selection size against a deck size.
// noRepeat indicates the selection mode forbids reusing a card: those modes
// cannot fill more positions than there are distinct cards.
func ValidateSelection(n, r int, noRepeat bool) error {
	if r < 1 {
		return New(ErrCodeInvalidSelection, "selection size must be at least 1, got %d", r)
	}
	if noRepeat && r > n {
		return New(ErrCodeInvalidSelection,
			"cannot select %d positions from %d cards without repetition", r, n)
	}
	return nil
}

// ValidateBounds validates canvas bounds for layout planning.
func ValidateBounds(width, height float64) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidBounds, "canvas bounds must be positive, got %gx%g", width, height)
	}
	return nil
}
