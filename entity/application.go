package entity

import (
	"time"

	"gorm.io/gorm"
)

// Application workflow statuses. Forward-only; see services.ValidTransition.
const (
	StatusSubmitted = "submitted"
	StatusInReview  = "in_review"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Payment statuses as reconciled from the gateway at return time.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// Application is one customer's credential-evaluation order and its
// workflow state. Rows are soft-deleted only; history is kept for audit.
type Application struct {
	gorm.Model
	Code string `gorm:"size:36;uniqueIndex;not null" json:"code"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Office    string `json:"office"`

	Status        string     `gorm:"size:20;not null;default:submitted" json:"status"`
	PaymentStatus string     `gorm:"size:20;not null;default:pending" json:"paymentStatus"`
	PaymentID     *string    `gorm:"size:100;uniqueIndex" json:"paymentId,omitempty"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
	SubmittedAt   time.Time  `json:"submittedAt"`

	DeliveryMethod string `gorm:"size:50" json:"deliveryMethod"`
	Purpose        string `gorm:"size:50" json:"purpose"`
	PurposeOther   string `json:"purposeOther,omitempty"`

	ServiceSelections  []ServiceSelection  `json:"serviceSelections"`
	AdditionalServices []AdditionalService `json:"additionalServices"`

	ReviewedAt *time.Time `json:"reviewedAt,omitempty"`
	ReviewedBy *uint      `json:"reviewedBy,omitempty"`
}
