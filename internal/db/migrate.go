package db

import (
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}
	return db.Gorm.AutoMigrate(
		&models.Movement{},
		&models.LedgerEvent{},
	)
}
