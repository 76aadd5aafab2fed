package storage

import (
	"errors"
	"fmt"
	"time"

	"claimboard/backend/internal/models"

	"gorm.io/gorm"
)

// CreateProfile inserts a new profile. A duplicate email surfaces as
// gorm.ErrDuplicatedKey for the caller to translate.
func (s *Service) CreateProfile(profile *models.Profile) error {
	return s.DB.Create(profile).Error
}

func (s *Service) GetProfileByEmail(email string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.DB.Where("email = ?", email).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Service) GetProfileByID(id string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.DB.First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// SaveClaim persists a claim.
func (s *Service) SaveClaim(claim *models.Claim) error {
	return s.DB.Create(claim).Error
}

func (s *Service) GetClaimByID(id string) (*models.Claim, error) {
	var claim models.Claim
	if err := s.DB.First(&claim, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &claim, nil
}

// GetClaimWithReplies loads a claim together with its replies, oldest
// first, and the author profile.
func (s *Service) GetClaimWithReplies(id string) (*models.Claim, error) {
	var claim models.Claim
	err := s.DB.
		Preload("Author").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		First(&claim, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

// ListClaims returns all claims, newest first, with their authors.
func (s *Service) ListClaims() ([]models.Claim, error) {
	var claims []models.Claim
	err := s.DB.Preload("Author").Order("created_at desc").Find(&claims).Error
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// DeleteClaim removes a claim. Replies, threads, and messages go with it
// via the foreign key cascades.
func (s *Service) DeleteClaim(id string) error {
	res := s.DB.Delete(&models.Claim{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateReplyWithThread inserts a reply and provisions its private thread
// in a single transaction: either both rows land or neither does. The
// thread's participants are resolved from the parent claim inside the same
// transaction. A concurrent provisioning attempt for the same reply loses
// on the thread's unique reply_id index and falls back to the existing
// thread, so retries are no-ops rather than errors.
func (s *Service) CreateReplyWithThread(reply *models.Reply) (*models.Thread, error) {
	var thread models.Thread
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var claim models.Claim
		if err := tx.First(&claim, "id = ?", reply.ClaimID).Error; err != nil {
			return fmt.Errorf("load parent claim: %w", err)
		}

		if err := tx.Create(reply).Error; err != nil {
			return fmt.Errorf("insert reply: %w", err)
		}

		thread = models.Thread{
			ReplyID:       reply.ID,
			ClaimOwnerID:  claim.AuthorID,
			ReplyAuthorID: reply.AuthorID,
		}
		if err := tx.Create(&thread).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Already provisioned for this reply; reuse it.
				return tx.First(&thread, "reply_id = ?", reply.ID).Error
			}
			return fmt.Errorf("provision thread: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

func (s *Service) GetReplyByID(id string) (*models.Reply, error) {
	var reply models.Reply
	if err := s.DB.First(&reply, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}

// UpdateReplyStatus writes the lifecycle transition. The reason column is
// always written so an accept clears any stale value.
func (s *Service) UpdateReplyStatus(id, status string, reason *string) error {
	res := s.DB.Model(&models.Reply{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":           status,
			"rejection_reason": reason,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *Service) GetThreadByID(id string) (*models.Thread, error) {
	var thread models.Thread
	if err := s.DB.First(&thread, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &thread, nil
}

func (s *Service) GetThreadByReplyID(replyID string) (*models.Thread, error) {
	var thread models.Thread
	if err := s.DB.First(&thread, "reply_id = ?", replyID).Error; err != nil {
		return nil, err
	}
	return &thread, nil
}

// SaveMessage appends a message to its thread. The generated ID and
// CreatedAt are filled into msg for the caller to publish.
func (s *Service) SaveMessage(msg *models.Message) error {
	return s.DB.Create(msg).Error
}

// GetThreadMessages returns the full history of a thread, oldest first.
func (s *Service) GetThreadMessages(threadID string) ([]models.Message, error) {
	var messages []models.Message
	err := s.DB.Where("thread_id = ?", threadID).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *Service) SaveReport(report *models.Report) error {
	return s.DB.Create(report).Error
}

func (s *Service) ListReportsByStatus(status string) ([]models.Report, error) {
	var reports []models.Report
	err := s.DB.Where("status = ?", status).
		Order("created_at asc").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// GetReportsForUser returns reports filed against a user since the given
// time, newest first.
func (s *Service) GetReportsForUser(targetID string, since time.Time) ([]models.Report, error) {
	var reports []models.Report
	err := s.DB.Where("target_id = ? AND created_at >= ?", targetID, since).
		Order("created_at desc").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}
