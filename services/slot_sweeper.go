package services

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/wildeats-cart/models"
	"gorm.io/gorm"
)

// SlotSweeper deletes persisted carts that have not been written for longer
// than TTL. Redis slots expire on their own; this covers the database store.
type SlotSweeper struct {
	DB       *gorm.DB
	TTL      time.Duration
	Interval time.Duration
	Log      logrus.FieldLogger

	stopChan chan struct{}
	stopOnce sync.Once
}

func NewSlotSweeper(db *gorm.DB, ttl time.Duration) *SlotSweeper {
	return &SlotSweeper{
		DB:       db,
		TTL:      ttl,
		Interval: 10 * time.Minute,
		Log:      logrus.StandardLogger(),
		stopChan: make(chan struct{}),
	}
}

func (s *SlotSweeper) Start() {
	go func() {
		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if _, err := s.Sweep(time.Now()); err != nil {
					s.Log.WithError(err).Error("cart slot sweep failed")
				}
			case <-s.stopChan:
				return
			}
		}
	}()
}

func (s *SlotSweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}

// Sweep removes slots last written before now minus TTL and returns how many
// went away. A non-positive TTL disables it.
func (s *SlotSweeper) Sweep(now time.Time) (int64, error) {
	if s.TTL <= 0 {
		return 0, nil
	}
	res := s.DB.Where("updated_at < ?", now.Add(-s.TTL)).Delete(&models.CartSlot{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		s.Log.WithField("count", res.RowsAffected).Info("expired cart slots removed")
	}
	return res.RowsAffected, nil
}
