package configs

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/MeiyuTech/aet-backend/entity"
)

func ConnectDB(source string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(source), &gorm.Config{})
}

func SetupDatabase(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Admin{},
		&entity.Application{},
		&entity.ServiceSelection{},
		&entity.AdditionalService{},
		&entity.PendingChange{},
		&entity.EmailOutbox{},
	)
}
