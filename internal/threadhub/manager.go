// Package threadhub fans thread events out to connected WebSocket clients.
// Events enter through the redis feed (or directly in tests), and the hub
// delivers each one to the at most two participants of its thread.
package threadhub

import (
	"claimboard/backend/internal/logger"
	"claimboard/backend/internal/models"
)

// ThreadStore is the slice of the storage layer the hub needs: resolving
// a thread's fixed participants for authorization and fan-out.
type ThreadStore interface {
	GetThreadByID(id string) (*models.Thread, error)
}

// ManagerService is the hub goroutine's state. All maps are owned by the
// Run loop; other goroutines communicate over the channels.
type ManagerService struct {
	Clients map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client
	SubscribeCh  chan Subscription
	PubSubCh     chan models.ThreadEvent

	Storage ThreadStore

	log *logger.Logger
}

// NewManagerService creates the hub.
func NewManagerService(s ThreadStore, log *logger.Logger) *ManagerService {
	return &ManagerService{
		Clients:      make(map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		SubscribeCh:  make(chan Subscription),
		PubSubCh:     make(chan models.ThreadEvent, 64),
		Storage:      s,
		log:          log.With("service", "ThreadHub"),
	}
}

// Forward pipes a feed of events into the hub until the feed closes.
// Usually run as a goroutine against storage.SubscribeThreadEvents.
func (m *ManagerService) Forward(events <-chan models.ThreadEvent) {
	for ev := range events {
		m.PubSubCh <- ev
	}
}

// Run is the hub's dispatcher loop.
func (m *ManagerService) Run() {
	m.log.Info("Thread hub started")
	for {
		select {
		case client := <-m.RegisterCh:
			m.register(client)
		case client := <-m.UnregisterCh:
			m.unregister(client)
		case sub := <-m.SubscribeCh:
			m.handleSubscription(sub)
		case ev := <-m.PubSubCh:
			m.dispatch(ev)
		}
	}
}

func (m *ManagerService) register(client Client) {
	// One connection per user: a reconnect replaces the old one.
	if old, ok := m.Clients[client.GetUserID()]; ok && old != client {
		old.Close()
	}
	m.Clients[client.GetUserID()] = client
	m.log.Debug("Client registered", "user_id", client.GetUserID())
}

func (m *ManagerService) unregister(client Client) {
	if current, ok := m.Clients[client.GetUserID()]; ok && current == client {
		delete(m.Clients, client.GetUserID())
		client.Close()
		m.log.Debug("Client unregistered", "user_id", client.GetUserID())
	}
}

// handleSubscription authorizes the request against the thread's fixed
// participants before marking the client subscribed.
func (m *ManagerService) handleSubscription(sub Subscription) {
	// The request may have been queued by a connection that a reconnect
	// or eviction has since replaced. Its send channel is closed, so
	// answering it would panic the hub; only the registered connection
	// gets a response.
	if current, ok := m.Clients[sub.Client.GetUserID()]; !ok || current != sub.Client {
		return
	}

	if sub.Cancel {
		sub.Client.Unsubscribe(sub.ThreadID)
		return
	}

	thread, err := m.Storage.GetThreadByID(sub.ThreadID)
	if err != nil || !thread.HasParticipant(sub.Client.GetUserID()) {
		m.trySend(sub.Client, models.ThreadEvent{
			Type:     models.EventError,
			ThreadID: sub.ThreadID,
			Error:    "thread not accessible",
		})
		return
	}

	sub.Client.Subscribe(sub.ThreadID)
	m.trySend(sub.Client, models.ThreadEvent{
		Type:     models.EventSubscribed,
		ThreadID: sub.ThreadID,
	})
}

// dispatch delivers an event to the subscribed participants of its thread.
// Non-participants never see it regardless of what they subscribed to.
func (m *ManagerService) dispatch(ev models.ThreadEvent) {
	thread, err := m.Storage.GetThreadByID(ev.ThreadID)
	if err != nil {
		m.log.Warn("Dropping event for unknown thread", "thread_id", ev.ThreadID, "error", err)
		return
	}

	delivered := make(map[string]bool, 2)
	for _, userID := range []string{thread.ClaimOwnerID, thread.ReplyAuthorID} {
		if delivered[userID] {
			continue
		}
		delivered[userID] = true

		client, ok := m.Clients[userID]
		if !ok || !client.IsSubscribed(ev.ThreadID) {
			continue
		}
		if !m.trySend(client, ev) {
			// Slow or dead consumer; drop the connection.
			delete(m.Clients, userID)
			client.Close()
		}
	}
}

func (m *ManagerService) trySend(client Client, ev models.ThreadEvent) bool {
	select {
	case client.GetSendChannel() <- ev:
		return true
	default:
		return false
	}
}
