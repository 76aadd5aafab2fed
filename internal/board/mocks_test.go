package board_test

import (
	"time"

	"claimboard/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of the storage.Storage interface.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateProfile(profile *models.Profile) error {
	args := m.Called(profile)
	return args.Error(0)
}

func (m *MockStorage) GetProfileByEmail(email string) (*models.Profile, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockStorage) GetProfileByID(id string) (*models.Profile, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockStorage) SaveClaim(claim *models.Claim) error {
	args := m.Called(claim)
	return args.Error(0)
}

func (m *MockStorage) GetClaimByID(id string) (*models.Claim, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Claim), args.Error(1)
}

func (m *MockStorage) GetClaimWithReplies(id string) (*models.Claim, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Claim), args.Error(1)
}

func (m *MockStorage) ListClaims() ([]models.Claim, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Claim), args.Error(1)
}

func (m *MockStorage) DeleteClaim(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) CreateReplyWithThread(reply *models.Reply) (*models.Thread, error) {
	args := m.Called(reply)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thread), args.Error(1)
}

func (m *MockStorage) GetReplyByID(id string) (*models.Reply, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reply), args.Error(1)
}

func (m *MockStorage) UpdateReplyStatus(id, status string, reason *string) error {
	args := m.Called(id, status, reason)
	return args.Error(0)
}

func (m *MockStorage) GetThreadByID(id string) (*models.Thread, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thread), args.Error(1)
}

func (m *MockStorage) GetThreadByReplyID(replyID string) (*models.Thread, error) {
	args := m.Called(replyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thread), args.Error(1)
}

func (m *MockStorage) SaveMessage(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStorage) GetThreadMessages(threadID string) ([]models.Message, error) {
	args := m.Called(threadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStorage) PublishThreadEvent(ev models.ThreadEvent) error {
	args := m.Called(ev)
	return args.Error(0)
}

func (m *MockStorage) SaveReport(report *models.Report) error {
	args := m.Called(report)
	return args.Error(0)
}

func (m *MockStorage) ListReportsByStatus(status string) ([]models.Report, error) {
	args := m.Called(status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Report), args.Error(1)
}

func (m *MockStorage) GetReportsForUser(targetID string, since time.Time) ([]models.Report, error) {
	args := m.Called(targetID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Report), args.Error(1)
}

func (m *MockStorage) IsUserSuspended(userID string) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) SuspendUser(userID string, duration time.Duration) error {
	args := m.Called(userID, duration)
	return args.Error(0)
}

func (m *MockStorage) UnsuspendUser(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}
