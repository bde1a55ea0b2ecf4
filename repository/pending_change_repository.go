package repository

import (
	"gorm.io/gorm"

	"github.com/MeiyuTech/aet-backend/entity"
)

type PendingChangeRepository struct {
	DB *gorm.DB
}

func NewPendingChangeRepository(db *gorm.DB) *PendingChangeRepository {
	return &PendingChangeRepository{DB: db}
}

func (r *PendingChangeRepository) Create(change *entity.PendingChange) error {
	return r.DB.Create(change).Error
}

func (r *PendingChangeRepository) FindByID(id uint) (*entity.PendingChange, error) {
	var change entity.PendingChange
	if err := r.DB.First(&change, id).Error; err != nil {
		return nil, err
	}
	return &change, nil
}

func (r *PendingChangeRepository) ListStaged(applicationID uint) ([]entity.PendingChange, error) {
	var changes []entity.PendingChange
	err := r.DB.
		Where("application_id = ? AND status = ?", applicationID, entity.ChangeStaged).
		Order("id DESC").
		Find(&changes).Error
	return changes, err
}

func (r *PendingChangeRepository) MarkApplied(tx *gorm.DB, id uint) error {
	return tx.Model(&entity.PendingChange{}).
		Where("id = ? AND status = ?", id, entity.ChangeStaged).
		Update("status", entity.ChangeApplied).Error
}

func (r *PendingChangeRepository) MarkCancelled(id uint) (int64, error) {
	res := r.DB.Model(&entity.PendingChange{}).
		Where("id = ? AND status = ?", id, entity.ChangeStaged).
		Update("status", entity.ChangeCancelled)
	return res.RowsAffected, res.Error
}
