package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	OutboxPending = "pending"
	OutboxSent    = "sent"
	OutboxFailed  = "failed"
)

// EmailOutbox decouples notification delivery from the request path:
// handlers only insert rows, the dispatcher sends and retries them.
type EmailOutbox struct {
	gorm.Model
	ToEmail string `gorm:"not null" json:"toEmail"`
	CcEmail string `json:"ccEmail,omitempty"`
	Subject string `gorm:"not null" json:"subject"`
	HTML    string `gorm:"not null" json:"html"`

	Status    string     `gorm:"size:20;index;not null;default:pending" json:"status"`
	Attempts  int        `gorm:"not null;default:0" json:"attempts"`
	LastError string     `json:"lastError,omitempty"`
	SentAt    *time.Time `json:"sentAt,omitempty"`
}
