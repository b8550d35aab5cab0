package storage

import (
	"context"
	"errors"
	"time"

	"github.com/yeremiapane/wildeats-cart/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSlot stores envelopes in the cart_slots table.
type GormSlot struct {
	db *gorm.DB
}

func NewGormSlot(db *gorm.DB) *GormSlot {
	return &GormSlot{db: db}
}

func (s *GormSlot) Get(ctx context.Context, key string) ([]byte, error) {
	var slot models.CartSlot
	err := s.db.WithContext(ctx).Where(&models.CartSlot{Key: key}).First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(slot.Value), nil
}

// Set upserts the value; the last write wins.
func (s *GormSlot) Set(ctx context.Context, key string, value []byte) error {
	slot := models.CartSlot{
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&slot).Error
}

func (s *GormSlot) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&models.CartSlot{Key: key}).Error
}
