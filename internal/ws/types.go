package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages a game channel carries
type MessageType string

const (
	MessageTypeMove      MessageType = "move"
	MessageTypePromote   MessageType = "promote"
	MessageTypeReset     MessageType = "reset"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage encodes payload into a Message of the given type.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}

func NewErrorMessage(msg string) Message {
	raw, _ := json.Marshal(ErrorPayload{Error: msg})
	return Message{Type: MessageTypeError, Payload: raw}
}
