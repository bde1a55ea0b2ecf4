package entity

import (
	"gorm.io/gorm"
)

// Add-on services with per-item quantities.
const (
	AddonExtraCopy       = "extra_copy"
	AddonPDFOnly         = "pdf_only"
	AddonPDFWithHardCopy = "pdf_with_hard_copy"
)

type AdditionalService struct {
	gorm.Model
	ApplicationID uint   `gorm:"index;not null" json:"applicationId"`
	ServiceCode   string `gorm:"size:50;not null" json:"serviceCode"`
	Quantity      int    `gorm:"not null;default:1" json:"quantity"`
}
