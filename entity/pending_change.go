package entity

import (
	"time"

	"gorm.io/gorm"
)

// Pending-change lifecycle.
const (
	ChangeStaged    = "staged"
	ChangeApplied   = "applied"
	ChangeCancelled = "cancelled"
)

// PendingChange is a staged admin edit: proposed by one call, applied or
// discarded by another. BaseUpdatedAt pins the application revision the
// admin looked at, so a confirm against a changed record fails as a
// conflict instead of overwriting.
type PendingChange struct {
	gorm.Model
	ApplicationID uint        `gorm:"index;not null" json:"applicationId"`
	Application   Application `json:"-"`

	ProposedStatus *string `gorm:"size:20" json:"proposedStatus,omitempty"`
	PatchJSON      string  `json:"patch,omitempty"` // JSON object of field -> new value
	Override       bool    `json:"override"`
	Note           string  `json:"note,omitempty"`

	BaseUpdatedAt time.Time `gorm:"not null" json:"baseUpdatedAt"`
	Status        string    `gorm:"size:20;not null;default:staged" json:"status"`
	AdminID       uint      `gorm:"not null" json:"adminId"`
}
