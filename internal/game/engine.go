// Package game implements the authoritative Durak match engine. One
// Engine owns one match's mutable state; every public operation
// serializes on the engine's lock and publishes a fresh state snapshot
// on the updates channel.
package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"durak/internal/domain"
)

// MaxPlayers is the number of participants in a Durak match.
const MaxPlayers = 2

// updateBuffer bounds the snapshot channel. Sends never block: every
// mutation re-emits full state, so a dropped snapshot is healed by the
// next one.
const updateBuffer = 64

// Move action verbs accepted by ApplyMove.
const (
	ActionPlayCard = "play_card"
	ActionPass     = "pass"
)

// Move is a single player action. Card is only set for play_card.
type Move struct {
	PlayerID string
	Action   string
	Card     *domain.Card
}

// Engine holds the authoritative state for a single match. All fields
// are guarded by mu; snapshots are deep copies built under the lock and
// handed out over the updates channel.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand

	deck       []domain.Card
	trumpSuit  domain.Suit
	players    map[string]*domain.Player
	order      []string // join order; first joiner attacks first
	attackerID string
	table      []domain.TableSlot

	restartDelay time.Duration
	restartTimer *time.Timer
	closed       bool

	updates chan domain.Snapshot
}

// NewEngine constructs an engine with the provided rng or a time-seeded
// default. restartDelay is the pause between a win and the automatic
// redeal.
func NewEngine(rng *rand.Rand, restartDelay time.Duration) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		rng:          rng,
		players:      make(map[string]*domain.Player),
		restartDelay: restartDelay,
		updates:      make(chan domain.Snapshot, updateBuffer),
	}
}

// Updates returns the snapshot channel. It is closed by Close.
func (e *Engine) Updates() <-chan domain.Snapshot {
	return e.updates
}

// AddPlayer seats a participant and reports whether there was room. The
// match does not start here; the session triggers Start once both
// connections are present.
func (e *Engine) AddPlayer(id, name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || len(e.players) >= MaxPlayers {
		return false
	}
	e.players[id] = &domain.Player{ID: id, Name: name}
	e.order = append(e.order, id)
	e.emit(fmt.Sprintf("Player %s connected (%d/%d)", name, len(e.players), MaxPlayers), "")
	return true
}

// RemovePlayer unseats a participant. Remaining players are notified;
// there is no forfeit or rejoin logic beyond that.
func (e *Engine) RemovePlayer(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.players[id]; !ok {
		return
	}
	delete(e.players, id)
	for i, pid := range e.order {
		if pid == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	if len(e.players) > 0 {
		e.emit(fmt.Sprintf("Player %s left the game", id), "")
	}
}

// Start deals a fresh match: new shuffled deck, trump from the deck's
// last card, six sorted cards per player, first joiner attacks. It is
// also re-invoked automatically after a win.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.startLocked()
}

func (e *Engine) startLocked() {
	if e.closed || len(e.order) == 0 {
		return
	}

	e.resetDeck()
	e.table = nil

	for _, id := range e.order {
		pl := e.players[id]
		hand := make([]domain.Card, domain.HandSize)
		copy(hand, e.deck[:domain.HandSize])
		e.deck = e.deck[domain.HandSize:]
		domain.SortHand(hand)
		pl.Hand = hand
		pl.IsAttacker = false
	}

	e.attackerID = e.order[0]
	e.players[e.attackerID].IsAttacker = true
	e.emit("Game started! Attacker leads: play any card", "")
}

func (e *Engine) resetDeck() {
	deck := domain.NewDeck()
	e.rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	e.deck = deck
	e.trumpSuit = deck[len(deck)-1].Suit
}

// ApplyMove is the only mutating entry point during active play. Every
// illegal move is a silent no-op: state is unchanged and no snapshot is
// emitted.
func (e *Engine) ApplyMove(mv Move) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || len(e.players) < MaxPlayers {
		return
	}
	if mv.PlayerID != e.attackerID && mv.PlayerID != e.defenderID() {
		return
	}

	switch mv.Action {
	case ActionPlayCard:
		e.handlePlayCard(mv)
	case ActionPass:
		e.handlePass(mv)
	}
}

func (e *Engine) handlePlayCard(mv Move) {
	if mv.Card == nil {
		return
	}
	card := *mv.Card
	pl, ok := e.players[mv.PlayerID]
	if !ok || !domain.ContainsCard(pl.Hand, card) {
		return
	}

	if mv.PlayerID == e.attackerID {
		if len(e.table) > 0 && !domain.HasRank(e.table, card.Rank) {
			return
		}
		e.table = append(e.table, domain.TableSlot{Attack: card})
	} else {
		idx := domain.LastUnanswered(e.table)
		if idx == -1 {
			return
		}
		if !card.Beats(e.table[idx].Attack, e.trumpSuit) {
			return
		}
		defend := card
		e.table[idx].Defend = &defend
	}

	pl.Hand, _ = domain.RemoveCard(pl.Hand, card)
	domain.SortHand(pl.Hand)
	e.emit(fmt.Sprintf("Played: %s", card), "")
	e.checkWinner()
}

func (e *Engine) handlePass(mv Move) {
	if len(e.table) == 0 {
		return
	}

	attackerPassed := mv.PlayerID == e.attackerID
	if attackerPassed {
		if !domain.AllDefended(e.table) {
			return
		}
		e.emit("Defended!", "")
	} else {
		defender := e.players[e.defenderID()]
		if defender == nil {
			return
		}
		defender.Hand = append(defender.Hand, domain.TableCards(e.table)...)
		domain.SortHand(defender.Hand)
		e.emit(fmt.Sprintf("Player %s took the cards", defender.ID), "")
	}

	e.table = nil
	e.refillHands()
	if attackerPassed {
		e.switchRoles()
	}
	e.emit("New round", "")
	e.checkWinner()
}

// refillHands tops both hands back up to six, attacker first (join
// order). The deck may run out, in which case a hand simply stays
// short.
func (e *Engine) refillHands() {
	for _, id := range e.order {
		pl := e.players[id]
		need := domain.HandSize - len(pl.Hand)
		if need <= 0 || len(e.deck) == 0 {
			continue
		}
		if need > len(e.deck) {
			need = len(e.deck)
		}
		pl.Hand = append(pl.Hand, e.deck[:need]...)
		e.deck = e.deck[need:]
		domain.SortHand(pl.Hand)
	}
}

func (e *Engine) switchRoles() {
	e.attackerID = e.defenderID()
	for id, pl := range e.players {
		pl.IsAttacker = id == e.attackerID
	}
}

// defenderID derives the defender: the other participant. No separate
// flag is stored.
func (e *Engine) defenderID() string {
	for _, id := range e.order {
		if id != e.attackerID {
			return id
		}
	}
	return ""
}

// checkWinner runs after every hand-emptying mutation. The first player
// (in join order) with an empty hand wins; the match then restarts
// automatically after the configured delay.
func (e *Engine) checkWinner() {
	for _, id := range e.order {
		if len(e.players[id].Hand) != 0 {
			continue
		}
		e.emit(fmt.Sprintf("Game over. Winner: %s", id), id)
		e.scheduleRestart()
		return
	}
}

func (e *Engine) scheduleRestart() {
	if e.restartTimer != nil {
		e.restartTimer.Stop()
	}
	e.restartTimer = time.AfterFunc(e.restartDelay, e.Start)
}

// Close stops the restart timer and closes the updates channel. The
// engine accepts no further operations afterwards.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.closed = true
	if e.restartTimer != nil {
		e.restartTimer.Stop()
	}
	close(e.updates)
}

// emit builds a snapshot of the current state and enqueues it without
// blocking. Before both seats are taken the snapshot is the waiting
// room form: no hands, no table, just the occupancy message.
func (e *Engine) emit(message, winner string) {
	snap := e.snapshot(message, winner)
	select {
	case e.updates <- snap:
	default:
	}
}

func (e *Engine) snapshot(message, winner string) domain.Snapshot {
	if len(e.players) < MaxPlayers {
		if message == "" {
			message = fmt.Sprintf("Waiting for opponent (%d/%d)", len(e.players), MaxPlayers)
		}
		return domain.Snapshot{
			Players: []domain.Player{},
			Table:   []domain.TableSlot{},
			Message: &message,
		}
	}

	players := make([]domain.Player, 0, len(e.order))
	for _, id := range e.order {
		pl := e.players[id]
		hand := make([]domain.Card, len(pl.Hand))
		copy(hand, pl.Hand)
		players = append(players, domain.Player{
			ID:         pl.ID,
			Name:       pl.Name,
			Hand:       hand,
			IsAttacker: pl.IsAttacker,
		})
	}

	table := make([]domain.TableSlot, 0, len(e.table))
	for _, slot := range e.table {
		out := domain.TableSlot{Attack: slot.Attack}
		if slot.Defend != nil {
			defend := *slot.Defend
			out.Defend = &defend
		}
		table = append(table, out)
	}

	snap := domain.Snapshot{
		Players:   players,
		Table:     table,
		DeckSize:  len(e.deck),
		TrumpSuit: e.trumpSuit,
	}
	attacker := e.attackerID
	if attacker != "" {
		snap.CurrentAttacker = &attacker
	}
	if winner != "" {
		w := winner
		snap.Winner = &w
	}
	if message != "" {
		snap.Message = &message
	}
	return snap
}
