package entity

import (
	"gorm.io/gorm"
)

// Evaluation products.
const (
	ServiceDocumentEvaluation = "document-evaluation"
	ServiceCourseEvaluation   = "course-evaluation"
	ServiceTranslation        = "translation"
	ServiceExpertOpinion      = "expert-opinion"
)

// Speed tiers per product.
const (
	Speed7Day    = "7day"
	Speed3Day    = "3day"
	Speed24Hour  = "24hour"
	SpeedSameDay = "sameday"
)

// ServiceSelection records one evaluation product ordered on an
// application together with its speed tier.
type ServiceSelection struct {
	gorm.Model
	ApplicationID uint   `gorm:"index;not null" json:"applicationId"`
	ServiceType   string `gorm:"size:50;not null" json:"serviceType"`
	SpeedTier     string `gorm:"size:20;not null" json:"speedTier"`
}
