package domain

import "fmt"

// Suit is one of the four card suits. Suits carry no gameplay order of
// their own; the declared sequence is only used for stable hand sorting.
type Suit string

const (
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
	Spades   Suit = "♠"
)

// Suits lists every suit in display order.
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Rank is a card rank in the 36-card Durak deck (6 through Ace).
type Rank string

// Ranks lists every rank from lowest to highest.
var Ranks = []Rank{"6", "7", "8", "9", "10", "Jack", "Queen", "King", "Ace"}

var rankValues = map[Rank]int{
	"6": 6, "7": 7, "8": 8, "9": 9, "10": 10,
	"Jack": 11, "Queen": 12, "King": 13, "Ace": 14,
}

// Value returns the numeric strength of the rank (6..14), or 0 for an
// unknown rank.
func (r Rank) Value() int {
	return rankValues[r]
}

// Card is an immutable playing card. Equality is by (suit, rank).
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// Beats reports whether c, played by the defender, beats the attack
// card under the trump rule: same suit requires a higher rank, while a
// card of a different suit wins only if it is trump.
func (c Card) Beats(attack Card, trump Suit) bool {
	if c.Suit == attack.Suit {
		return c.Rank.Value() > attack.Rank.Value()
	}
	return c.Suit == trump
}

func suitIndex(s Suit) int {
	for i, suit := range Suits {
		if suit == s {
			return i
		}
	}
	return len(Suits)
}
