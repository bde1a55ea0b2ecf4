package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/MeiyuTech/aet-backend/entity"
)

type ApplicationRepository struct {
	DB *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{DB: db}
}

func (r *ApplicationRepository) Create(tx *gorm.DB, app *entity.Application) error {
	return tx.Create(app).Error
}

func (r *ApplicationRepository) FindByCode(code string) (*entity.Application, error) {
	var app entity.Application
	if err := r.DB.
		Preload("ServiceSelections").
		Preload("AdditionalServices").
		Where("code = ?", code).
		First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepository) FindByID(id uint) (*entity.Application, error) {
	var app entity.Application
	if err := r.DB.
		Preload("ServiceSelections").
		Preload("AdditionalServices").
		First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepository) FindByStatus(status string) ([]entity.Application, error) {
	var apps []entity.Application
	err := r.DB.
		Preload("ServiceSelections").
		Preload("AdditionalServices").
		Where("status = ?", status).
		Order("id DESC").
		Find(&apps).Error
	return apps, err
}

// MarkPaidGuard applies pending -> paid conditionally. RowsAffected = 0
// means the application was not pending anymore (already paid or failed),
// so the caller must not repeat paid side effects. The unique index on
// payment_id backs the same guarantee across applications.
func (r *ApplicationRepository) MarkPaidGuard(tx *gorm.DB, code, paymentID string, paidAt time.Time) (int64, error) {
	res := tx.Model(&entity.Application{}).
		Where("code = ? AND payment_status = ?", code, entity.PaymentPending).
		Updates(map[string]any{
			"payment_status": entity.PaymentPaid,
			"payment_id":     paymentID,
			"paid_at":        paidAt,
		})
	return res.RowsAffected, res.Error
}

// UpdateStatusGuard moves status from -> to only if the row still holds
// the expected from status.
func (r *ApplicationRepository) UpdateStatusGuard(tx *gorm.DB, appID uint, from, to string) (int64, error) {
	res := tx.Model(&entity.Application{}).
		Where("id = ? AND status = ?", appID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *ApplicationRepository) ApplyFields(tx *gorm.DB, appID uint, updates map[string]any) error {
	return tx.Model(&entity.Application{}).
		Where("id = ?", appID).
		Updates(updates).Error
}
