package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Report statuses.
const (
	ReportStatusNew       = "new"
	ReportStatusProcessed = "processed"
)

// Report is a complaint filed by a user against the author of a reply.
// MessageLog snapshots the thread's recent messages at filing time so a
// moderator can review the exchange even after the thread is deleted.
type Report struct {
	ID         string `gorm:"primaryKey" json:"id"`
	ReporterID string `gorm:"type:text;not null;index" json:"reporter_id"`
	TargetID   string `gorm:"type:text;not null;index" json:"target_id"`
	ReplyID    string `gorm:"type:text;not null" json:"reply_id"`
	Reason     string `gorm:"type:text;not null" json:"reason"`

	MessageLog pq.StringArray `gorm:"type:text[]" json:"message_log,omitempty"`

	Status    string    `gorm:"type:text;not null;default:new" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Status == "" {
		r.Status = ReportStatusNew
	}
	return
}
