package storage

import (
	"context"
	"encoding/json"
	"time"

	"claimboard/backend/internal/logger"
	"claimboard/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Storage is the persistence surface the domain services depend on.
// The gorm/redis Service below is the real implementation; tests swap in
// a testify mock.
type Storage interface {
	// Profiles
	CreateProfile(profile *models.Profile) error
	GetProfileByEmail(email string) (*models.Profile, error)
	GetProfileByID(id string) (*models.Profile, error)

	// Claims
	SaveClaim(claim *models.Claim) error
	GetClaimByID(id string) (*models.Claim, error)
	GetClaimWithReplies(id string) (*models.Claim, error)
	ListClaims() ([]models.Claim, error)
	DeleteClaim(id string) error

	// Replies and threads
	CreateReplyWithThread(reply *models.Reply) (*models.Thread, error)
	GetReplyByID(id string) (*models.Reply, error)
	UpdateReplyStatus(id, status string, reason *string) error
	GetThreadByID(id string) (*models.Thread, error)
	GetThreadByReplyID(replyID string) (*models.Thread, error)

	// Messages
	SaveMessage(msg *models.Message) error
	GetThreadMessages(threadID string) ([]models.Message, error)
	PublishThreadEvent(ev models.ThreadEvent) error

	// Moderation
	SaveReport(report *models.Report) error
	ListReportsByStatus(status string) ([]models.Report, error)
	GetReportsForUser(targetID string, since time.Time) ([]models.Report, error)
	IsUserSuspended(userID string) (bool, error)
	SuspendUser(userID string, duration time.Duration) error
	UnsuspendUser(userID string) error
}

// Service implements Storage on top of PostgreSQL (gorm) and Redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context

	log *logger.Logger
}

// NewStorageService wires the storage layer. The redis client may be nil
// for tools that only need the database (the admin CLI does this); redis
// backed methods then degrade as documented on each method.
func NewStorageService(db *gorm.DB, rdb *redis.Client, log *logger.Logger) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
		log:   log.With("service", "StorageService"),
	}
}

// threadChannel names the redis pub/sub channel carrying events for one
// thread. The hub pattern-subscribes to thread:* and filters per client.
func threadChannel(threadID string) string {
	return "thread:" + threadID
}

// PublishThreadEvent pushes an event onto the thread's redis channel.
// Delivery is fire and forget from the sender's perspective.
func (s *Service) PublishThreadEvent(ev models.ThreadEvent) error {
	if s.Redis == nil {
		return nil
	}
	raw, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, threadChannel(ev.ThreadID), raw).Err()
}

// SubscribeThreadEvents pattern-subscribes to every thread channel and
// returns a channel of decoded events. Closing is driven by ctx.
func (s *Service) SubscribeThreadEvents(ctx context.Context) (<-chan models.ThreadEvent, error) {
	sub := s.Redis.PSubscribe(ctx, threadChannel("*"))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	out := make(chan models.ThreadEvent, 64)
	go func() {
		defer close(out)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					return
				}
				var ev models.ThreadEvent
				if err := json.Unmarshal([]byte(m.Payload), &ev); err != nil {
					s.log.Warn("Dropping malformed thread event", "error", err)
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// suspendKey is the redis key caching a user's suspension.
func suspendKey(userID string) string {
	return "suspend:" + userID
}

// IsUserSuspended checks the suspension cache. A missing key means not
// suspended; without redis everyone is allowed.
func (s *Service) IsUserSuspended(userID string) (bool, error) {
	if s.Redis == nil {
		return false, nil
	}
	_, err := s.Redis.Get(s.Ctx, suspendKey(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SuspendUser marks the user suspended for the given duration.
func (s *Service) SuspendUser(userID string, duration time.Duration) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Set(s.Ctx, suspendKey(userID), "active", duration).Err()
}

// UnsuspendUser lifts a suspension early.
func (s *Service) UnsuspendUser(userID string) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Del(s.Ctx, suspendKey(userID)).Err()
}
