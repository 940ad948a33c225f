// Package ws adapts the websocket transport to the session registry:
// it upgrades connections, decodes the JSON protocol and routes each
// inbound event to the right session operation.
package ws

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"durak/internal/game"
	"durak/internal/session"
)

// Default display names when a client supplies none.
const (
	defaultHostName  = "Host"
	defaultGuestName = "Player"
)

// Handler owns the websocket endpoint. One readPump goroutine per
// connection drives dispatch; all match mutation happens behind the
// session/engine locks, so dispatch itself holds no game state.
type Handler struct {
	log       *zap.SugaredLogger
	registry  *session.Registry
	queueSize int
	upgrader  websocket.Upgrader
}

// NewHandler builds the websocket handler. allowOrigin is an exact
// Origin match, or "*" to accept any.
func NewHandler(registry *session.Registry, log *zap.SugaredLogger, queueSize int, allowOrigin string) *Handler {
	return &Handler{
		log:       log,
		registry:  registry,
		queueSize: queueSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowOrigin == "*" {
					return true
				}
				return r.Header.Get("Origin") == allowOrigin
			},
		},
	}
}

// ServeWS upgrades the request and runs the connection's pumps. It
// returns when the connection's read side ends.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	c := newClient(conn, h.log, h.queueSize)
	h.log.Infow("client connected", "client", c.id, "remote", conn.RemoteAddr())
	go c.writePump()
	c.readPump(h)
	h.log.Infow("client disconnected", "client", c.id)
}

func (h *Handler) dispatch(c *Client, msg ClientMessage) {
	switch msg.Type {
	case TypeCreate:
		h.handleCreate(c, msg)
	case TypeJoin:
		h.handleJoin(c, msg)
	case TypeLeave:
		h.leaveCurrentRoom(c)
	case TypeMove:
		h.handleMove(c, msg)
	default:
		h.log.Debugw("ignoring message", "client", c.id, "type", msg.Type)
	}
}

func (h *Handler) handleCreate(c *Client, msg ClientMessage) {
	sess := h.registry.Create()
	playerID := newPlayerID()
	name := msg.Name
	if name == "" {
		name = defaultHostName
	}

	if err := sess.AddPlayer(playerID, c, name); err != nil {
		h.registry.Remove(sess.Code())
		c.reply(ServerMessage{Type: TypeError, Error: "Failed to add host"})
		return
	}

	c.bind(sess.Code(), playerID)
	c.reply(ServerMessage{Type: TypeRoomCreated, Code: sess.Code(), PlayerID: playerID})
}

func (h *Handler) handleJoin(c *Client, msg ClientMessage) {
	if msg.Code == "" {
		c.reply(ServerMessage{Type: TypeError, Error: "No code"})
		return
	}

	sess, ok := h.registry.Lookup(msg.Code)
	if !ok {
		c.reply(ServerMessage{Type: TypeError, Error: "Room not found"})
		return
	}

	playerID := newPlayerID()
	name := msg.Name
	if name == "" {
		name = defaultGuestName
	}

	if err := sess.AddPlayer(playerID, c, name); err != nil {
		if errors.Is(err, session.ErrRoomFull) {
			c.reply(ServerMessage{Type: TypeError, Error: "Room full"})
		} else {
			c.reply(ServerMessage{Type: TypeError, Error: "Failed to join"})
		}
		return
	}

	c.bind(sess.Code(), playerID)
	c.reply(ServerMessage{Type: TypeJoined, PlayerID: playerID, Code: sess.Code()})
}

// handleMove forwards a move to the sender's session. The player id in
// the payload is ignored; membership resolved from the connection is
// authoritative. Unresolved membership is a silent no-op: such moves
// come from stale clients, not from faults.
func (h *Handler) handleMove(c *Client, msg ClientMessage) {
	code, playerID := c.binding()
	if code == "" || msg.Move == nil {
		return
	}
	sess, ok := h.registry.Lookup(code)
	if !ok {
		return
	}

	sess.ApplyMove(game.Move{
		PlayerID: playerID,
		Action:   msg.Move.Action,
		Card:     msg.Move.Card,
	})
}

// leaveCurrentRoom serves both an explicit leave message and a
// transport disconnect; the two are deliberately identical.
func (h *Handler) leaveCurrentRoom(c *Client) {
	code, playerID := c.binding()
	if code == "" {
		return
	}
	c.clearBinding()

	sess, ok := h.registry.Lookup(code)
	if !ok {
		return
	}
	if sess.RemovePlayer(playerID) {
		h.registry.Remove(code)
	}
}

func (h *Handler) disconnect(c *Client) {
	h.leaveCurrentRoom(c)
}

// newPlayerID assigns the short server-side player identifier.
func newPlayerID() string {
	return uuid.NewString()[:8]
}
