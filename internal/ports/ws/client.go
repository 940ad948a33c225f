package ws

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"durak/internal/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var (
	errClientClosed  = errors.New("ws: client closed")
	errSendQueueFull = errors.New("ws: send queue full")
)

// Client wraps one websocket connection: a buffered send queue drained
// by a single write pump, a read pump feeding the handler, and the
// connection's current room membership. It is the session.Conn
// implementation for this transport.
type Client struct {
	id   string
	conn *websocket.Conn
	log  *zap.SugaredLogger

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once

	mu       sync.Mutex
	roomCode string
	playerID string
}

func newClient(conn *websocket.Conn, log *zap.SugaredLogger, queueSize int) *Client {
	return &Client{
		id:   uuid.NewString(),
		conn: conn,
		log:  log,
		send: make(chan []byte, queueSize),
		done: make(chan struct{}),
	}
}

func (c *Client) bind(roomCode, playerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roomCode = roomCode
	c.playerID = playerID
}

func (c *Client) clearBinding() {
	c.bind("", "")
}

// binding returns the room code and player id this connection resolved
// to, or empty strings when it belongs to no room.
func (c *Client) binding() (roomCode, playerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roomCode, c.playerID
}

// SendState delivers a state snapshot to this connection. It only
// enqueues onto the send queue; a full queue is reported, not waited
// on, so a slow reader never stalls the session broadcaster.
func (c *Client) SendState(snap domain.Snapshot) error {
	return c.sendMessage(ServerMessage{Type: TypeState, GameState: &snap})
}

func (c *Client) sendMessage(msg ServerMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return c.enqueue(data)
}

// reply is sendMessage for request/response paths where the only
// sensible reaction to failure is a log line.
func (c *Client) reply(msg ServerMessage) {
	if err := c.sendMessage(msg); err != nil {
		c.log.Warnw("reply dropped", "client", c.id, "type", msg.Type, "err", err)
	}
}

func (c *Client) enqueue(data []byte) error {
	select {
	case c.send <- data:
		return nil
	case <-c.done:
		return errClientClosed
	default:
		return errSendQueueFull
	}
}

func (c *Client) readPump(h *Handler) {
	defer func() {
		h.disconnect(c)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warnw("unexpected close", "client", c.id, "err", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.reply(ServerMessage{Type: TypeError, Error: "invalid json: " + err.Error()})
			continue
		}
		h.dispatch(c, msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.log.Debugw("write failed", "client", c.id, "err", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close tears the connection down exactly once. The read pump's
// deferred disconnect handles room cleanup.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}
