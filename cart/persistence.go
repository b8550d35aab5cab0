package cart

import (
	"context"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/wildeats-cart/storage"
)

// SchemaVersion tags the persisted envelope. Bump it when the line shape changes;
// envelopes with any other version are discarded on load.
const SchemaVersion = 1

// Slot is a durable key-value slot. Get returns storage.ErrNotFound for a
// missing key.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// envelope is the persisted layout. Amounts are fixed two-decimal strings.
type envelope struct {
	Version int        `json:"version"`
	Items   []CartItem `json:"items"`
}

// Adapter reads and writes one cart under one slot key.
type Adapter struct {
	slot Slot
	key  string
	log  logrus.FieldLogger
}

// NewAdapter binds a slot key. A nil logger falls back to the logrus standard logger.
func NewAdapter(slot Slot, key string, log logrus.FieldLogger) *Adapter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Adapter{slot: slot, key: key, log: log.WithField("slot", key)}
}

func (a *Adapter) Key() string {
	return a.key
}

// Load returns the persisted lines, or nil when the slot is missing, unreadable,
// or written with a different schema. It never fails; problems are logged.
// Lines that no longer validate are dropped.
func (a *Adapter) Load(ctx context.Context) []CartItem {
	items, _ := a.load(ctx)
	return items
}

// load is Load that also reports a slot read failure. Corrupt or foreign
// envelopes are not read failures: they are discarded for good.
func (a *Adapter) load(ctx context.Context) ([]CartItem, error) {
	raw, err := a.slot.Get(ctx, a.key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		a.log.WithError(err).Warn("cart slot unreadable, starting with an empty cart")
		return nil, fmt.Errorf("%w: read %s: %v", ErrPersistenceUnavailable, a.key, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		a.log.WithError(err).Warn("cart slot is not a valid envelope, discarding")
		return nil, nil
	}
	if env.Version != SchemaVersion {
		a.log.WithField("version", env.Version).Warn("cart slot schema mismatch, discarding")
		return nil, nil
	}

	items := make([]CartItem, 0, len(env.Items))
	for i, item := range env.Items {
		if err := item.validate(); err != nil {
			a.log.WithError(err).WithField("index", i).Warn("dropping invalid persisted cart line")
			continue
		}
		normalized := item.Modifiers().Normalize()
		item.Variant, item.Flavor, item.Addons = normalized.Variant, normalized.Flavor, normalized.Addons
		if item.Addons == nil {
			item.Addons = []Addon{}
		}
		items = append(items, item)
	}
	return items, nil
}

// Save writes the lines in order. Failures are wrapped in ErrPersistenceUnavailable.
func (a *Adapter) Save(ctx context.Context, items []CartItem) error {
	if items == nil {
		items = []CartItem{}
	}
	raw, err := json.Marshal(envelope{Version: SchemaVersion, Items: items})
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPersistenceUnavailable, err)
	}
	if err := a.slot.Set(ctx, a.key, raw); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrPersistenceUnavailable, a.key, err)
	}
	return nil
}

// Clear deletes the slot.
func (a *Adapter) Clear(ctx context.Context) error {
	if err := a.slot.Delete(ctx, a.key); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: delete %s: %v", ErrPersistenceUnavailable, a.key, err)
	}
	return nil
}
