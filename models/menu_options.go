package models

import "github.com/shopspring/decimal"

// MenuItemVariant is a size/variant option with a surcharge over the base price.
type MenuItemVariant struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	MenuItemID      uint            `gorm:"not null;index" json:"menu_item_id"`
	Name            string          `gorm:"type:varchar(100);not null" json:"name"`
	AdditionalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"additional_price"`
}

type MenuItemAddon struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	MenuItemID uint            `gorm:"not null;index" json:"menu_item_id"`
	Name       string          `gorm:"type:varchar(100);not null" json:"name"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}

type MenuItemFlavor struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	MenuItemID uint   `gorm:"not null;index" json:"menu_item_id"`
	Name       string `gorm:"type:varchar(100);not null" json:"name"`
}
