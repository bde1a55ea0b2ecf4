package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/MeiyuTech/aet-backend/entity"
	"github.com/MeiyuTech/aet-backend/repository"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.Admin{},
		&entity.Application{},
		&entity.ServiceSelection{},
		&entity.AdditionalService{},
		&entity.PendingChange{},
		&entity.EmailOutbox{},
	))
	return db
}

func newAppService(t *testing.T, db *gorm.DB) *ApplicationService {
	t.Helper()
	notifier := NewNotificationService(repository.NewOutboxRepository(db), nil, zap.NewNop())
	return NewApplicationService(db, repository.NewApplicationRepository(db), notifier, zap.NewNop())
}

func validSubmission() *SubmitApplicationReq {
	return &SubmitApplicationReq{
		FirstName:      "Mei",
		LastName:       "Chen",
		Email:          "mei.chen@example.com",
		Phone:          "617-555-0199",
		Office:         "boston",
		DeliveryMethod: DeliveryUSPSFirst,
		Purpose:        PurposeEducation,
		ServiceSelections: []ServiceSelectionIn{
			{ServiceType: entity.ServiceDocumentEvaluation, SpeedTier: entity.Speed7Day},
		},
		AdditionalServices: []AdditionalServiceIn{
			{ServiceCode: entity.AddonExtraCopy, Quantity: 2},
		},
	}
}

func countApplications(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&entity.Application{}).Count(&n).Error)
	return n
}

func countOutbox(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&entity.EmailOutbox{}).Count(&n).Error)
	return n
}
