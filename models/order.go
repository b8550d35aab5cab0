package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	SessionID   string          `gorm:"type:varchar(64);not null;index" json:"session_id"`
	ShopID      uint            `gorm:"not null;index" json:"shop_id"`
	Shop        Shop            `gorm:"foreignKey:ShopID" json:"-"`
	Status      string          `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	QueueNumber int             `gorm:"not null" json:"queue_number"`
	Notes       string          `gorm:"type:text" json:"notes"`
	OrderItems  []OrderItem     `gorm:"foreignKey:OrderID" json:"order_items"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

// Reference is the order number shown to the shopper at pickup.
func (o *Order) Reference() string {
	return fmt.Sprintf("S%d-Q%03d", o.ShopID, o.QueueNumber)
}
