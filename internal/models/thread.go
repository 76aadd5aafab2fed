package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Thread is a private two-party message channel provisioned automatically
// for every reply. Its participants are the parent claim's author and the
// reply's author, fixed at creation. The unique index on ReplyID is what
// makes provisioning idempotent.
type Thread struct {
	ID      string `gorm:"primaryKey" json:"id"`
	ReplyID string `gorm:"type:text;not null;uniqueIndex" json:"reply_id"`
	Reply   *Reply `gorm:"foreignKey:ReplyID;constraint:OnDelete:CASCADE" json:"-"`

	ClaimOwnerID  string `gorm:"type:text;not null;index" json:"claim_owner_id"`
	ReplyAuthorID string `gorm:"type:text;not null;index" json:"reply_author_id"`

	CreatedAt time.Time `json:"created_at"`
}

func (t *Thread) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return
}

// HasParticipant reports whether userID is one of the thread's two fixed
// participants.
func (t *Thread) HasParticipant(userID string) bool {
	return userID == t.ClaimOwnerID || userID == t.ReplyAuthorID
}
