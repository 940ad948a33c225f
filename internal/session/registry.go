package session

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"durak/internal/game"
)

// Registry is the process-wide store of live sessions keyed by room
// code. Codes are never reused while their session is alive.
type Registry struct {
	log          *zap.SugaredLogger
	restartDelay time.Duration

	mu       sync.RWMutex
	rng      *rand.Rand
	sessions map[string]*Session
}

// NewRegistry constructs an empty registry. restartDelay is passed to
// every engine it creates.
func NewRegistry(log *zap.SugaredLogger, restartDelay time.Duration) *Registry {
	return &Registry{
		log:          log,
		restartDelay: restartDelay,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		sessions:     make(map[string]*Session),
	}
}

// Create allocates a session under a fresh 4-digit code, retrying on
// collision with live sessions.
func (r *Registry) Create() *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	var code string
	for {
		code = fmt.Sprintf("%d", 1000+r.rng.Intn(9000))
		if _, taken := r.sessions[code]; !taken {
			break
		}
	}

	sess := newSession(code, game.NewEngine(nil, r.restartDelay), r.log)
	r.sessions[code] = sess
	r.log.Infow("room created", "room", code)
	return sess
}

// Lookup returns the session for a code, if one is alive.
func (r *Registry) Lookup(code string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[code]
	return sess, ok
}

// Remove deletes a session and shuts its engine down. Called once a
// session's last connection is gone.
func (r *Registry) Remove(code string) {
	r.mu.Lock()
	sess, ok := r.sessions[code]
	delete(r.sessions, code)
	r.mu.Unlock()

	if ok {
		sess.engine.Close()
		r.log.Infow("room removed", "room", code)
	}
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
