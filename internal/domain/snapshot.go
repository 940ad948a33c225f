package domain

// Player holds the state for one participant in a match. The id is
// assigned by the server at join time; clients never choose it.
type Player struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Hand       []Card `json:"hand"`
	IsAttacker bool   `json:"isAttacker"`
}

// Snapshot is a read-only projection of match state, reconstructed
// fresh after every mutation and broadcast to all session members. It
// is never mutated after construction.
type Snapshot struct {
	Players         []Player    `json:"players"`
	Table           []TableSlot `json:"table"`
	DeckSize        int         `json:"deckSize"`
	TrumpSuit       Suit        `json:"trumpSuit"`
	CurrentAttacker *string     `json:"currentAttacker"`
	Winner          *string     `json:"winner"`
	Message         *string     `json:"message"`
}
