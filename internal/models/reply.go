package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reply stances.
const (
	StanceSupports    = "supports"
	StanceContradicts = "contradicts"
)

// Reply lifecycle statuses. A reply starts pending and moves exactly once
// to accepted or rejected; terminal states never change afterwards.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Reply is a response attached to a parent claim, carrying a stance and a
// lifecycle status controlled by the claim's author.
type Reply struct {
	ID      string `gorm:"primaryKey" json:"id"`
	ClaimID string `gorm:"type:text;not null;index" json:"claim_id"`
	Claim   *Claim `gorm:"foreignKey:ClaimID;constraint:OnDelete:CASCADE" json:"-"`

	Text   string `gorm:"type:text;not null" json:"text"`
	Stance string `gorm:"type:text;not null" json:"stance"`
	Status string `gorm:"type:text;not null;default:pending" json:"status"`
	// RejectionReason is set only when the claim author rejects the reply.
	// It is public: every reader of the claim sees it.
	RejectionReason *string `gorm:"type:text" json:"rejection_reason,omitempty"`

	AuthorID  string    `gorm:"type:text;not null;index" json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *Reply) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Status == "" {
		r.Status = StatusPending
	}
	return
}

// Terminal reports whether the reply has reached a final status.
func (r *Reply) Terminal() bool {
	return r.Status == StatusAccepted || r.Status == StatusRejected
}

// ValidStance reports whether s is one of the supported stances.
func ValidStance(s string) bool {
	return s == StanceSupports || s == StanceContradicts
}
