package domain

// TableSlot is one attack on the table with its optional answer. A nil
// Defend means the attack is still unanswered.
type TableSlot struct {
	Attack Card  `json:"attack"`
	Defend *Card `json:"defend"`
}

// LastUnanswered returns the index of the last slot without a defend
// card, or -1 if every attack has been answered.
func LastUnanswered(table []TableSlot) int {
	for i := len(table) - 1; i >= 0; i-- {
		if table[i].Defend == nil {
			return i
		}
	}
	return -1
}

// AllDefended reports whether every slot on the table has been answered.
func AllDefended(table []TableSlot) bool {
	return LastUnanswered(table) == -1
}

// HasRank reports whether the rank appears anywhere on the table, on
// either the attack or the defend side. An attacker may only add cards
// whose rank is already in play.
func HasRank(table []TableSlot, rank Rank) bool {
	for _, slot := range table {
		if slot.Attack.Rank == rank {
			return true
		}
		if slot.Defend != nil && slot.Defend.Rank == rank {
			return true
		}
	}
	return false
}

// TableCards returns every card on the table, attack and defend sides,
// in play order.
func TableCards(table []TableSlot) []Card {
	cards := make([]Card, 0, len(table)*2)
	for _, slot := range table {
		cards = append(cards, slot.Attack)
		if slot.Defend != nil {
			cards = append(cards, *slot.Defend)
		}
	}
	return cards
}
