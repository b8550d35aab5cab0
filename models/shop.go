package models

import "time"

// Shop approval states. The admin workflow that moves between them lives elsewhere;
// here the status is only read.
const (
	ShopStatusPending   = "pending"
	ShopStatusActive    = "active"
	ShopStatusRejected  = "rejected"
	ShopStatusSuspended = "suspended"
)

type Shop struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"type:varchar(255);not null" json:"name"`
	Location  string     `gorm:"type:varchar(100)" json:"location"`
	Status    string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	IsOpen    bool       `gorm:"not null" json:"is_open"`
	MenuItems []MenuItem `gorm:"foreignKey:ShopID" json:"menu_items,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

// Operational reports whether the shop is approved and currently open.
func (s *Shop) Operational() bool {
	return s.Status == ShopStatusActive && s.IsOpen
}
