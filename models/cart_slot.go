package models

import "time"

// CartSlot is one persisted cart envelope, keyed by the session's storage key.
type CartSlot struct {
	Key       string    `gorm:"primaryKey;type:varchar(191)"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
