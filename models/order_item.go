package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order           Order            `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID      uint             `gorm:"not null" json:"menu_item_id"`
	Name            string           `gorm:"type:varchar(255);not null" json:"name"`
	Quantity        int              `gorm:"not null" json:"quantity"`
	PriceAtPurchase decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"price_at_purchase"`
	LineTotal       decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"line_total"`
	VariantID       *uint            `json:"variant_id,omitempty"`
	VariantName     string           `gorm:"type:varchar(100)" json:"variant_name,omitempty"`
	FlavorID        *uint            `json:"flavor_id,omitempty"`
	FlavorName      string           `gorm:"type:varchar(100)" json:"flavor_name,omitempty"`
	Notes           string           `gorm:"type:text" json:"notes"`
	Addons          []OrderItemAddon `gorm:"foreignKey:OrderItemID" json:"addons"`
	CreatedAt       time.Time        `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"not null" json:"updated_at"`
}

type OrderItemAddon struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderItemID uint            `gorm:"not null;index" json:"order_item_id"`
	AddonID     uint            `gorm:"not null" json:"addon_id"`
	Name        string          `gorm:"type:varchar(100);not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}
