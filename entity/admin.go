package entity

import (
	"gorm.io/gorm"
)

// Admin is a CRM staff account.
type Admin struct {
	gorm.Model
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Password  string `json:"-"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `gorm:"size:20;not null;default:admin" json:"role"`

	PendingChanges []PendingChange `gorm:"foreignKey:AdminID" json:"-"`
}
