package db

import (
	"gorm.io/gorm"

	"github.com/yungbote/checkout-backend/internal/types"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.Order{},
		&types.OrderItem{},
		&types.Payment{},
	)
}
