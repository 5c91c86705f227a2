package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove      MessageType = "move"
	MessageTypePromotion MessageType = "promotion"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload is the body of a move message. Squares use algebraic names;
// promotion is optional and applies to this move only.
type MovePayload struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

// PromotionPayload changes the game's default promotion piece.
type PromotionPayload struct {
	Piece string `json:"piece"`
}

// ErrorPayload is sent back to the client whose message failed.
type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage wraps v as the payload of a message of type t.
func NewMessage(t MessageType, v any) (Message, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: payload}, nil
}
