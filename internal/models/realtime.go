package models

import "time"

// ThreadEvent is the wire format pushed to WebSocket subscribers and
// carried over the redis pub/sub channel between server instances.
type ThreadEvent struct {
	Type      string    `json:"type"` // "message", "subscribed", "error"
	ThreadID  string    `json:"thread_id"`
	MessageID uint      `json:"message_id,omitempty"`
	SenderID  string    `json:"sender_id,omitempty"`
	Body      string    `json:"body,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Event types.
const (
	EventMessage    = "message"
	EventSubscribed = "subscribed"
	EventError      = "error"
)

// SubscribeFrame is what a connected WebSocket client sends to start or
// stop receiving events for a thread.
type SubscribeFrame struct {
	Type     string `json:"type"` // "subscribe" or "unsubscribe"
	ThreadID string `json:"thread_id"`
}

// MessageEvent builds the event published for a freshly stored message.
func MessageEvent(msg *Message) ThreadEvent {
	return ThreadEvent{
		Type:      EventMessage,
		ThreadID:  msg.ThreadID,
		MessageID: msg.ID,
		SenderID:  msg.SenderID,
		Body:      msg.Body,
		CreatedAt: msg.CreatedAt,
	}
}
