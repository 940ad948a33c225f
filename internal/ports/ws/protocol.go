package ws

import "durak/internal/domain"

// Inbound message types. Anything else is ignored.
const (
	TypeCreate = "create"
	TypeJoin   = "join"
	TypeLeave  = "leave"
	TypeMove   = "move"
)

// Outbound message types.
const (
	TypeError       = "error"
	TypeRoomCreated = "room_created"
	TypeJoined      = "joined"
	TypeState       = "state"
)

// MovePayload is a client move. The playerId field is accepted on the
// wire but always overwritten server-side from the connection's
// resolved membership.
type MovePayload struct {
	PlayerID string       `json:"playerId,omitempty"`
	Action   string       `json:"action"`
	Card     *domain.Card `json:"card,omitempty"`
}

// ClientMessage is the envelope for every inbound transport event.
type ClientMessage struct {
	Type string       `json:"type"`
	Code string       `json:"code,omitempty"`
	Move *MovePayload `json:"move,omitempty"`
	Name string       `json:"name,omitempty"`
}

// ServerMessage is the envelope for every outbound message.
type ServerMessage struct {
	Type      string           `json:"type"`
	Code      string           `json:"code,omitempty"`
	PlayerID  string           `json:"playerId,omitempty"`
	Error     string           `json:"error,omitempty"`
	GameState *domain.Snapshot `json:"gameState,omitempty"`
}
