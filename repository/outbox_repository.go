package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/MeiyuTech/aet-backend/entity"
)

type OutboxRepository struct {
	DB *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) *OutboxRepository {
	return &OutboxRepository{DB: db}
}

func (r *OutboxRepository) Enqueue(row *entity.EmailOutbox) error {
	row.Status = entity.OutboxPending
	return r.DB.Create(row).Error
}

// PendingBatch returns undelivered rows still under the attempt cap,
// oldest first.
func (r *OutboxRepository) PendingBatch(limit, maxAttempts int) ([]entity.EmailOutbox, error) {
	var rows []entity.EmailOutbox
	err := r.DB.
		Where("status = ? AND attempts < ?", entity.OutboxPending, maxAttempts).
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *OutboxRepository) MarkSent(id uint, at time.Time) error {
	return r.DB.Model(&entity.EmailOutbox{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":  entity.OutboxSent,
			"sent_at": at,
		}).Error
}

// MarkAttemptFailed bumps the attempt counter; rows that exhaust the cap
// are flipped to failed so the dispatcher stops picking them up.
func (r *OutboxRepository) MarkAttemptFailed(id uint, maxAttempts int, sendErr error) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var row entity.EmailOutbox
		if err := tx.First(&row, id).Error; err != nil {
			return err
		}
		updates := map[string]any{
			"attempts":   row.Attempts + 1,
			"last_error": sendErr.Error(),
		}
		if row.Attempts+1 >= maxAttempts {
			updates["status"] = entity.OutboxFailed
		}
		return tx.Model(&entity.EmailOutbox{}).Where("id = ?", id).Updates(updates).Error
	})
}
