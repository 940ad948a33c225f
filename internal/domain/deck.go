package domain

import "sort"

// HandSize is the number of cards each player holds at the start of a
// round, refilled up to after every resolved round.
const HandSize = 6

// DeckSize is the size of a full Durak deck (4 suits x 9 ranks).
const DeckSize = 36

// NewDeck returns an ordered 36-card deck.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			deck = append(deck, Card{Suit: suit, Rank: rank})
		}
	}
	return deck
}

// SortHand orders a hand in place by suit display order, then rank.
func SortHand(hand []Card) {
	sort.Slice(hand, func(i, j int) bool {
		if hand[i].Suit != hand[j].Suit {
			return suitIndex(hand[i].Suit) < suitIndex(hand[j].Suit)
		}
		return hand[i].Rank.Value() < hand[j].Rank.Value()
	})
}

// RemoveCard removes the first occurrence of card from the hand and
// reports whether it was present.
func RemoveCard(hand []Card, card Card) ([]Card, bool) {
	for i, c := range hand {
		if c == card {
			return append(hand[:i:i], hand[i+1:]...), true
		}
	}
	return hand, false
}

// ContainsCard reports whether the hand holds the given card.
func ContainsCard(hand []Card, card Card) bool {
	for _, c := range hand {
		if c == card {
			return true
		}
	}
	return false
}
