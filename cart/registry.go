package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultKeyPrefix namespaces slot keys: "{prefix}:{session id}".
const DefaultKeyPrefix = "wildeats_cart"

type entry struct {
	provider *Provider
	lastUsed time.Time
}

// Registry hands out one Provider per shopping session, loading it from the
// slot on first use.
type Registry struct {
	mu        sync.Mutex
	slot      Slot
	prefix    string
	log       logrus.FieldLogger
	providers map[string]*entry

	// OnCreate, when set, runs once for every provider the registry builds.
	OnCreate func(sessionID string, p *Provider)

	// IdleTTL, when positive, drops providers not used for that long. The
	// stored cart is untouched; the next request loads it again.
	IdleTTL time.Duration

	now func() time.Time
}

func NewRegistry(slot Slot, prefix string, log logrus.FieldLogger) *Registry {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Registry{
		slot:      slot,
		prefix:    prefix,
		log:       log,
		providers: make(map[string]*entry),
		now:       time.Now,
	}
}

// SlotKey returns the storage key for a session.
func (r *Registry) SlotKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", r.prefix, sessionID)
}

// Get returns the session's provider, creating it on first use. A provider
// whose first read of the slot failed retries it here.
func (r *Registry) Get(ctx context.Context, sessionID string) *Provider {
	r.mu.Lock()
	now := r.now()
	r.evictIdle(now)

	if e, ok := r.providers[sessionID]; ok {
		e.lastUsed = now
		r.mu.Unlock()
		e.provider.Refresh(ctx)
		return e.provider
	}
	defer r.mu.Unlock()

	log := r.log.WithField("session_id", sessionID)
	adapter := NewAdapter(r.slot, r.SlotKey(sessionID), log)
	p := NewProvider(ctx, adapter, WithLogger(log))
	r.providers[sessionID] = &entry{provider: p, lastUsed: now}
	if r.OnCreate != nil {
		r.OnCreate(sessionID, p)
	}
	return p
}

// Reset clears the session's cart, deletes its slot and forgets the provider.
// Requests still holding the old provider can no longer write to the slot.
func (r *Registry) Reset(ctx context.Context, sessionID string) {
	r.mu.Lock()
	e, ok := r.providers[sessionID]
	delete(r.providers, sessionID)
	r.mu.Unlock()

	var p *Provider
	if ok {
		p = e.provider
	} else {
		log := r.log.WithField("session_id", sessionID)
		p = &Provider{store: NewStore(), adapter: NewAdapter(r.slot, r.SlotKey(sessionID), log), log: log}
	}
	p.Reset(ctx)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.providers)
}

func (r *Registry) evictIdle(now time.Time) {
	if r.IdleTTL <= 0 {
		return
	}
	for id, e := range r.providers {
		if now.Sub(e.lastUsed) > r.IdleTTL {
			delete(r.providers, id)
		}
	}
}
