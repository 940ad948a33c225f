// Package session binds one match engine to its connected participants
// and fans engine snapshots out to them. The registry in this package
// is the only place sessions are created or removed.
package session

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"durak/internal/domain"
	"durak/internal/game"
)

// ErrRoomFull is returned when a session already has two players.
var ErrRoomFull = errors.New("room full")

// Conn is the transport handle the session writes snapshots to. The
// websocket adapter satisfies it; tests use fakes. SendState must not
// block on the network: implementations enqueue onto their own write
// queue and report failure instead of stalling the broadcaster.
type Conn interface {
	SendState(snap domain.Snapshot) error
}

// Session is one live match: the engine plus the player-id to
// connection mapping. A single broadcaster goroutine drains the
// engine's snapshot channel in emission order and delivers each
// snapshot to every registered connection.
type Session struct {
	code   string
	engine *game.Engine
	log    *zap.SugaredLogger

	mu    sync.Mutex
	conns map[string]Conn
}

func newSession(code string, engine *game.Engine, log *zap.SugaredLogger) *Session {
	s := &Session{
		code:   code,
		engine: engine,
		log:    log,
		conns:  make(map[string]Conn),
	}
	go s.broadcast()
	return s
}

// Code returns the session's external room code.
func (s *Session) Code() string {
	return s.code
}

// AddPlayer seats a participant and records its connection. When the
// second connection arrives the match starts automatically.
func (s *Session) AddPlayer(id string, conn Conn, name string) error {
	if !s.engine.AddPlayer(id, name) {
		return ErrRoomFull
	}

	s.mu.Lock()
	s.conns[id] = conn
	count := len(s.conns)
	s.mu.Unlock()

	s.log.Infow("player joined", "room", s.code, "player", id, "name", name, "players", count)
	if count == game.MaxPlayers {
		s.engine.Start()
	}
	return nil
}

// RemovePlayer unseats a participant and reports whether the session is
// now empty and eligible for removal from the registry.
func (s *Session) RemovePlayer(id string) (empty bool) {
	s.engine.RemovePlayer(id)

	s.mu.Lock()
	delete(s.conns, id)
	count := len(s.conns)
	s.mu.Unlock()

	s.log.Infow("player left", "room", s.code, "player", id, "players", count)
	return count == 0
}

// ApplyMove forwards a move to the engine. Illegal moves are silently
// dropped by the engine itself.
func (s *Session) ApplyMove(mv game.Move) {
	s.engine.ApplyMove(mv)
}

// broadcast is the session's single snapshot consumer. Each snapshot is
// handed to every current connection; a failed delivery is logged and
// never affects the other connections or the engine. It exits when the
// engine's channel is closed.
func (s *Session) broadcast() {
	for snap := range s.engine.Updates() {
		s.mu.Lock()
		conns := make(map[string]Conn, len(s.conns))
		for id, c := range s.conns {
			conns[id] = c
		}
		s.mu.Unlock()

		for id, c := range conns {
			if err := c.SendState(snap); err != nil {
				s.log.Warnw("snapshot delivery failed", "room", s.code, "player", id, "err", err)
			}
		}
	}
	s.log.Debugw("broadcaster stopped", "room", s.code)
}
