package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Claim types.
const (
	ClaimTypeFact   = "fact"
	ClaimTypeValue  = "value"
	ClaimTypePolicy = "policy"
)

// Claim is a short public statement posted by an author. Claims are
// immutable after creation; only the author may delete one, which cascades
// to its replies.
type Claim struct {
	ID        string  `gorm:"primaryKey" json:"id"`
	Text      string  `gorm:"type:text;not null" json:"text"`
	ClaimType string  `gorm:"type:text;not null" json:"claim_type"`
	AuthorID  string  `gorm:"type:text;not null;index" json:"author_id"`
	Author    Profile `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`

	Replies []Reply `gorm:"foreignKey:ClaimID;constraint:OnDelete:CASCADE" json:"replies,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (c *Claim) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// ValidClaimType reports whether t is one of the supported claim types.
func ValidClaimType(t string) bool {
	switch t {
	case ClaimTypeFact, ClaimTypeValue, ClaimTypePolicy:
		return true
	}
	return false
}
