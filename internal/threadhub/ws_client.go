package threadhub

import (
	"encoding/json"
	"sync"
	"time"

	"claimboard/backend/internal/logger"
	"claimboard/backend/internal/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// WebSocketClient implements Client over a gorilla/websocket connection.
type WebSocketClient struct {
	UserID string
	Conn   *websocket.Conn
	Hub    *ManagerService
	Send   chan models.ThreadEvent

	mu   sync.RWMutex
	subs map[string]struct{}

	closeOnce sync.Once
	log       *logger.Logger
}

// NewWebSocketClient wraps an upgraded connection for the given user.
func NewWebSocketClient(hub *ManagerService, userID string, conn *websocket.Conn, log *logger.Logger) *WebSocketClient {
	return &WebSocketClient{
		UserID: userID,
		Conn:   conn,
		Hub:    hub,
		Send:   make(chan models.ThreadEvent, 256),
		subs:   make(map[string]struct{}),
		log:    log.With("user_id", userID),
	}
}

func (c *WebSocketClient) GetUserID() string { return c.UserID }

func (c *WebSocketClient) Subscribe(threadID string) {
	c.mu.Lock()
	c.subs[threadID] = struct{}{}
	c.mu.Unlock()
}

func (c *WebSocketClient) Unsubscribe(threadID string) {
	c.mu.Lock()
	delete(c.subs, threadID)
	c.mu.Unlock()
}

func (c *WebSocketClient) IsSubscribed(threadID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.subs[threadID]
	return ok
}

func (c *WebSocketClient) GetSendChannel() chan<- models.ThreadEvent { return c.Send }

// Run starts the read and write pumps.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close shuts the send channel, which stops the write pump. Safe to call
// more than once; the hub and the read pump may race here.
func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() {
		close(c.Send)
	})
}

// readPump consumes subscribe/unsubscribe frames from the client. Chat
// messages travel over HTTP, not the socket, so anything else is ignored.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Debug("WebSocket read error", "error", err)
			}
			break
		}

		var frame models.SubscribeFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			c.log.Debug("Dropping malformed frame", "error", err)
			continue
		}
		if frame.ThreadID == "" {
			continue
		}

		switch frame.Type {
		case "subscribe":
			c.Hub.SubscribeCh <- Subscription{Client: c, ThreadID: frame.ThreadID}
		case "unsubscribe":
			c.Hub.SubscribeCh <- Subscription{Client: c, ThreadID: frame.ThreadID, Cancel: true}
		}
	}
}

// writePump drains Send into the socket, batching whatever is queued and
// keeping the connection alive with pings.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(ev)
			if err != nil {
				c.log.Warn("Failed to encode event", "error", err)
				continue
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(data)

			// Flush anything already queued into the same write.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				next, ok := <-c.Send
				if !ok {
					break
				}
				extra, _ := json.Marshal(next)
				w.Write([]byte{'\n'})
				w.Write(extra)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
