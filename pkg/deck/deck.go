// Package deck builds the ordered card decks that feed the arrangement
// enumerator.
//
// A deck of size n is fully determined by n: ranks cycle with period 13 and
// suits with period 4, so the same n always yields the same deck. Symbols are
// immutable value types carrying rank, suit and the derived display color.
//
// # Usage
//
//	d, err := deck.Build(3)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(d) // "A♥ 2♠ 3♣"
package deck

import (
	"strconv"
	"strings"

	"github.com/cardgrid/cardgrid/pkg/errors"
)

// Suit is one of the four card suits.
type Suit string

// The four suits, in deck-cycling order.
const (
	Hearts   Suit = "♥"
	Spades   Suit = "♠"
	Clubs    Suit = "♣"
	Diamonds Suit = "♦"
)

// suitTable fixes the cycling order used by Build. Index i of a deck gets
// suitTable[i mod 4].
var suitTable = [4]Suit{Hearts, Spades, Clubs, Diamonds}

// Color is the binary display class of a suit.
type Color string

// Display colors. Hearts and diamonds are red, spades and clubs black.
const (
	Red   Color = "red"
	Black Color = "black"
)

// Symbol is a single playing card. Immutable once constructed.
type Symbol struct {
	Rank int  `json:"rank" bson:"rank"` // 1..13, displayed as A, 2-10, J, Q, K
	Suit Suit `json:"suit" bson:"suit"`
}

// Color returns the display color class derived from the suit.
func (s Symbol) Color() Color {
	if s.Suit == Hearts || s.Suit == Diamonds {
		return Red
	}
	return Black
}

// Glyph returns the display glyph for the rank: A for 1, J/Q/K for 11-13,
// and the decimal digits otherwise.
func (s Symbol) Glyph() string {
	switch s.Rank {
	case 1:
		return "A"
	case 11:
		return "J"
	case 12:
		return "Q"
	case 13:
		return "K"
	}
	return strconv.Itoa(s.Rank)
}

// String returns the compact card notation, e.g. "A♥" or "10♦".
func (s Symbol) String() string {
	return s.Glyph() + string(s.Suit)
}

// Deck is an ordered sequence of symbols, indexed 0..n-1. The order is
// significant: enumeration results are defined in terms of deck indices.
type Deck []Symbol

// Build constructs a deck of n cards, cycling ranks with period 13 and suits
// with period 4. Returns an INVALID_SIZE error if n < 1. There is no upper
// bound; beyond 52 cards symbols repeat.
func Build(n int) (Deck, error) {
	if err := errors.ValidateDeckSize(n); err != nil {
		return nil, err
	}

	d := make(Deck, n)
	for i := range d {
		d[i] = Symbol{
			Rank: i%13 + 1,
			Suit: suitTable[i%4],
		}
	}
	return d, nil
}

// String returns the space-joined card notation of the whole deck.
func (d Deck) String() string {
	parts := make([]string, len(d))
	for i, s := range d {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}
