package threadhub

import "claimboard/backend/internal/models"

// Client is one live connection able to receive thread events. The hub
// manages clients uniformly through this interface; the concrete
// implementation is the WebSocket client, tests use a mock.
type Client interface {
	// GetUserID returns the authenticated identity behind the connection.
	GetUserID() string

	// Subscribe and Unsubscribe adjust the set of threads this connection
	// receives events for. The hub authorizes before calling Subscribe.
	Subscribe(threadID string)
	Unsubscribe(threadID string)
	// IsSubscribed reports whether the connection asked for this thread.
	IsSubscribed(threadID string) bool

	// GetSendChannel is where the hub pushes events for this client.
	GetSendChannel() chan<- models.ThreadEvent

	// Run starts the connection's read and write pumps.
	Run()
	// Close shuts the connection down and releases its send channel.
	Close()
}

// Subscription is a client's request to start or stop receiving events
// for one thread.
type Subscription struct {
	Client   Client
	ThreadID string
	Cancel   bool
}
