package repository

import (
	"gorm.io/gorm"

	"github.com/MeiyuTech/aet-backend/entity"
)

type AdminRepository struct {
	DB *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{DB: db}
}

func (r *AdminRepository) FindByEmail(email string) (*entity.Admin, error) {
	var admin entity.Admin
	if err := r.DB.Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepository) FindByID(id uint) (*entity.Admin, error) {
	var admin entity.Admin
	if err := r.DB.First(&admin, id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}
