package database

import (
	"fmt"

	"github.com/yeremiapane/wildeats-cart/models"
	"gorm.io/gorm"
)

// Models lists every table the service owns, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.Shop{},
		&models.MenuItem{},
		&models.MenuItemVariant{},
		&models.MenuItemAddon{},
		&models.MenuItemFlavor{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemAddon{},
		&models.CartSlot{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
