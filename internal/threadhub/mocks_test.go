package threadhub_test

import (
	"sync"

	"claimboard/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockThreadStore is a testify mock of the hub's ThreadStore.
type MockThreadStore struct {
	mock.Mock
}

func (m *MockThreadStore) GetThreadByID(id string) (*models.Thread, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thread), args.Error(1)
}

// MockClient implements threadhub.Client for hub tests. Events the hub
// sends land on RecvChannel.
type MockClient struct {
	userID      string
	RecvChannel chan models.ThreadEvent

	mu     sync.Mutex
	subs   map[string]struct{}
	closed bool
}

func newMockClient(userID string) *MockClient {
	return &MockClient{
		userID:      userID,
		RecvChannel: make(chan models.ThreadEvent, 10),
		subs:        make(map[string]struct{}),
	}
}

func (c *MockClient) GetUserID() string { return c.userID }

func (c *MockClient) Subscribe(threadID string) {
	c.mu.Lock()
	c.subs[threadID] = struct{}{}
	c.mu.Unlock()
}

func (c *MockClient) Unsubscribe(threadID string) {
	c.mu.Lock()
	delete(c.subs, threadID)
	c.mu.Unlock()
}

func (c *MockClient) IsSubscribed(threadID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.subs[threadID]
	return ok
}

func (c *MockClient) GetSendChannel() chan<- models.ThreadEvent { return c.RecvChannel }

func (c *MockClient) Run() {}

// Close mirrors the real client: the receive channel is closed, so any
// later hub send to this client would panic just like production.
func (c *MockClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.RecvChannel)
	}
}

func (c *MockClient) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
