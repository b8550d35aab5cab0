package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yeremiapane/wildeats-cart/money"
)

// Provider owns one session's cart: the store, its persistence and its observers.
// It is safe for concurrent use; all mutations run one at a time.
type Provider struct {
	mu       sync.Mutex
	store    *Store
	adapter  *Adapter
	log      logrus.FieldLogger
	degraded bool

	// loaded is false until the slot has been read successfully. Until then
	// nothing is written, so a read blip cannot overwrite the stored cart.
	loaded bool
	// closed is set by Reset; a closed provider never writes again.
	closed bool
}

// loadTimeout bounds slot reads made on behalf of a request.
const loadTimeout = 5 * time.Second

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithLogger sets the logger used for persistence warnings.
func WithLogger(log logrus.FieldLogger) ProviderOption {
	return func(p *Provider) {
		if log != nil {
			p.log = log
		}
	}
}

// NewProvider seeds a store from the adapter's slot. A missing or corrupt slot
// yields an empty cart. An unreadable slot also yields an empty cart, but the
// read is retried before the next write and the provider stays degraded until
// it succeeds.
func NewProvider(ctx context.Context, adapter *Adapter, opts ...ProviderOption) *Provider {
	p := &Provider{
		store:   NewStore(),
		adapter: adapter,
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.ensureLoaded(ctx)
	return p
}

// Loaded reports whether the persisted cart has been read.
func (p *Provider) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

// Refresh retries a failed initial load. It is a no-op once loaded.
func (p *Provider) Refresh(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ensureLoaded(ctx)
}

// ensureLoaded reads the slot if that has not succeeded yet. Lines added in
// memory while the slot was unreadable are merged after the persisted ones.
func (p *Provider) ensureLoaded(ctx context.Context) {
	if p.loaded || p.closed {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
	defer cancel()

	items, err := p.adapter.load(ctx)
	if err != nil {
		p.degraded = true
		return
	}
	p.loaded = true
	pending := p.store.Items()
	if len(pending) == 0 {
		p.degraded = false
		if len(items) > 0 {
			p.store.replace(items)
		}
		return
	}
	p.store.replace(append(items, pending...))
	p.save(ctx)
}

// AddItem adds quantity units of the candidate and returns the line key.
func (p *Provider) AddItem(ctx context.Context, c Candidate, quantity int) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.ensureLoaded(ctx)
	before := p.store.Version()
	key, err := p.store.AddItem(c, quantity)
	if err != nil {
		return "", err
	}
	p.persistIfChanged(ctx, before)
	return key, nil
}

// UpdateQuantity sets a line's quantity; zero or less removes it. Unknown keys are ignored.
func (p *Provider) UpdateQuantity(ctx context.Context, key string, quantity int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.ensureLoaded(ctx)
	before := p.store.Version()
	p.store.UpdateQuantity(key, quantity)
	p.persistIfChanged(ctx, before)
}

func (p *Provider) RemoveItem(ctx context.Context, key string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.ensureLoaded(ctx)
	before := p.store.Version()
	p.store.RemoveItem(key)
	p.persistIfChanged(ctx, before)
}

func (p *Provider) ClearCart(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.ensureLoaded(ctx)
	before := p.store.Version()
	p.store.Clear()
	p.persistIfChanged(ctx, before)
}

// Reset empties the cart and deletes its slot. Used on logout. The provider
// is closed afterwards and later mutations stay in memory.
func (p *Provider) Reset(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	p.store.Clear()
	if err := p.adapter.Clear(ctx); err != nil {
		p.log.WithError(err).Warn("failed to delete cart slot on reset")
	}
}

// Checkout hands the current snapshot to submit. The cart is cleared only when
// submit returns nil; otherwise it is left untouched for a retry. Checkout is
// refused while the stored cart cannot be read.
func (p *Provider) Checkout(ctx context.Context, submit func(context.Context, Snapshot) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.ensureLoaded(ctx)
	if !p.loaded {
		return fmt.Errorf("%w: stored cart could not be read", ErrPersistenceUnavailable)
	}
	if err := submit(ctx, p.store.Snapshot()); err != nil {
		return err
	}
	before := p.store.Version()
	p.store.Clear()
	p.persistIfChanged(ctx, before)
	return nil
}

func (p *Provider) Items() []CartItem {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.store.Items()
}

func (p *Provider) TotalItems() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.store.TotalItems()
}

func (p *Provider) TotalPrice() money.Amount {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.store.TotalPrice()
}

func (p *Provider) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.store.Snapshot()
}

// Subscribe registers fn for change notifications. fn runs while the provider
// is locked and must not call back into it.
func (p *Provider) Subscribe(fn func(Snapshot)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	unsubscribe := p.store.Subscribe(fn)
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		unsubscribe()
	}
}

// Degraded reports whether the last write to the slot failed, meaning the cart
// currently lives in memory only.
func (p *Provider) Degraded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.degraded
}

func (p *Provider) persistIfChanged(ctx context.Context, before uint64) {
	if p.store.Version() == before {
		return
	}
	p.save(ctx)
}

// save writes the current lines. The write outlives a cancelled request: the
// in-memory change has already happened.
func (p *Provider) save(ctx context.Context) {
	if p.closed {
		return
	}
	if !p.loaded {
		p.degraded = true
		return
	}
	if err := p.adapter.Save(context.WithoutCancel(ctx), p.store.Items()); err != nil {
		if !p.degraded {
			p.log.WithError(err).Warn("cart persistence failed, continuing in memory")
		}
		p.degraded = true
		return
	}
	if p.degraded {
		p.log.Info("cart persistence recovered")
	}
	p.degraded = false
}
