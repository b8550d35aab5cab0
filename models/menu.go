package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	ShopID      uint              `gorm:"not null;index" json:"shop_id"`
	Shop        Shop              `gorm:"foreignKey:ShopID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"shop"`
	Name        string            `gorm:"type:varchar(255);not null" json:"name"`
	Description string            `gorm:"type:text" json:"description"`
	ImageURL    string            `gorm:"type:varchar(255)" json:"image_url"`
	Price       decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"price"`
	IsAvailable bool              `gorm:"not null" json:"is_available"`
	Variants    []MenuItemVariant `gorm:"foreignKey:MenuItemID" json:"variants,omitempty"`
	Addons      []MenuItemAddon   `gorm:"foreignKey:MenuItemID" json:"addons,omitempty"`
	Flavors     []MenuItemFlavor  `gorm:"foreignKey:MenuItemID" json:"flavors,omitempty"`
	CreatedAt   time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null" json:"updated_at"`
}
