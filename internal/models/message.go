package models

import "gorm.io/gorm"

// Message is a single entry in a thread's chat log. Messages are immutable
// and undeletable except through the cascade when the whole thread goes
// away. The embedded gorm.Model supplies the ID and CreatedAt used for
// ordering.
type Message struct {
	gorm.Model

	ThreadID string  `gorm:"type:text;not null;index:idx_thread_msg" json:"thread_id"`
	Thread   *Thread `gorm:"foreignKey:ThreadID;constraint:OnDelete:CASCADE" json:"-"`

	SenderID string `gorm:"type:text;not null;index:idx_thread_msg" json:"sender_id"`
	Body     string `gorm:"type:text;not null" json:"body"`
}
