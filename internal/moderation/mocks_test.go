package moderation_test

import (
	"time"

	"claimboard/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStore is a testify mock of the moderation Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetReplyByID(id string) (*models.Reply, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reply), args.Error(1)
}

func (m *MockStore) GetThreadByReplyID(replyID string) (*models.Thread, error) {
	args := m.Called(replyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thread), args.Error(1)
}

func (m *MockStore) GetThreadMessages(threadID string) ([]models.Message, error) {
	args := m.Called(threadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStore) SaveReport(report *models.Report) error {
	args := m.Called(report)
	return args.Error(0)
}

func (m *MockStore) ListReportsByStatus(status string) ([]models.Report, error) {
	args := m.Called(status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Report), args.Error(1)
}

func (m *MockStore) GetReportsForUser(targetID string, since time.Time) ([]models.Report, error) {
	args := m.Called(targetID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Report), args.Error(1)
}

func (m *MockStore) SuspendUser(userID string, duration time.Duration) error {
	args := m.Called(userID, duration)
	return args.Error(0)
}
