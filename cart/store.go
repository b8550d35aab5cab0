package cart

import (
	"fmt"
	"strings"

	"github.com/yeremiapane/wildeats-cart/money"
)

// Snapshot is a point-in-time copy of the cart.
type Snapshot struct {
	Items      []CartItem   `json:"items"`
	TotalItems int          `json:"total_items"`
	TotalPrice money.Amount `json:"total_price"`
}

// IsEmpty reports whether the snapshot has no lines.
func (s Snapshot) IsEmpty() bool {
	return len(s.Items) == 0
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// Store is the ordered collection of cart lines. Lines keep insertion order;
// merges do not move a line. Every state change recomputes the totals and
// notifies subscribers synchronously, in subscription order.
//
// A Store is not safe for concurrent use; Provider serializes access.
type Store struct {
	lines      []CartItem
	index      map[string]int
	totalItems int
	totalPrice money.Amount
	version    uint64

	subscribers []subscriber
	nextSubID   int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// seed loads lines without notifying. Keys are re-derived and duplicates merged.
func (s *Store) seed(items []CartItem) {
	for _, item := range items {
		item = item.Clone()
		item.Key = item.Modifiers().Key(item.ShopID, item.ItemID)
		if pos, ok := s.index[item.Key]; ok {
			s.lines[pos].Quantity = min(s.lines[pos].Quantity+item.Quantity, MaxQuantity)
			if item.Notes != "" {
				s.lines[pos].Notes = item.Notes
			}
			continue
		}
		s.index[item.Key] = len(s.lines)
		s.lines = append(s.lines, item)
	}
	s.recompute()
}

// replace swaps in a new set of lines, merged like seed, and notifies.
func (s *Store) replace(items []CartItem) {
	s.lines, s.index = nil, make(map[string]int)
	s.seed(items)
	s.changed()
}

// AddItem merges the candidate into the line with the same key, or appends a
// new line. It returns the key of the resulting line. A merge that would take
// the line past MaxQuantity is rejected and leaves the cart unchanged.
func (s *Store) AddItem(c Candidate, quantity int) (string, error) {
	if quantity < 1 || quantity > MaxQuantity {
		return "", fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	if err := c.validate(); err != nil {
		return "", err
	}

	key := c.Key()
	if pos, ok := s.index[key]; ok {
		if have := s.lines[pos].Quantity; quantity > MaxQuantity-have {
			return "", fmt.Errorf("%w: line already holds %d, limit is %d", ErrInvalidQuantity, have, MaxQuantity)
		}
		s.lines[pos].Quantity += quantity
		if notes := strings.TrimSpace(c.Notes); notes != "" {
			s.lines[pos].Notes = notes
		}
	} else {
		s.index[key] = len(s.lines)
		s.lines = append(s.lines, c.toItem(quantity))
	}

	s.changed()
	return key, nil
}

// UpdateQuantity replaces the quantity of a line. A quantity of zero or less
// removes the line and one above MaxQuantity is clamped. An unknown key is ignored.
func (s *Store) UpdateQuantity(key string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(key)
		return
	}
	quantity = min(quantity, MaxQuantity)
	pos, ok := s.index[key]
	if !ok || s.lines[pos].Quantity == quantity {
		return
	}
	s.lines[pos].Quantity = quantity
	s.changed()
}

// RemoveItem deletes a line. Removing an unknown key is not an error.
func (s *Store) RemoveItem(key string) {
	pos, ok := s.index[key]
	if !ok {
		return
	}
	s.lines = append(s.lines[:pos], s.lines[pos+1:]...)
	delete(s.index, key)
	for i := pos; i < len(s.lines); i++ {
		s.index[s.lines[i].Key] = i
	}
	s.changed()
}

// Clear removes every line.
func (s *Store) Clear() {
	if len(s.lines) == 0 {
		return
	}
	s.lines = nil
	s.index = make(map[string]int)
	s.changed()
}

// Get returns a copy of the line with the given key.
func (s *Store) Get(key string) (CartItem, bool) {
	pos, ok := s.index[key]
	if !ok {
		return CartItem{}, false
	}
	return s.lines[pos].Clone(), true
}

// Items returns copies of the lines in display order.
func (s *Store) Items() []CartItem {
	out := make([]CartItem, 0, len(s.lines))
	for _, line := range s.lines {
		out = append(out, line.Clone())
	}
	return out
}

func (s *Store) Len() int {
	return len(s.lines)
}

func (s *Store) TotalItems() int {
	return s.totalItems
}

func (s *Store) TotalPrice() money.Amount {
	return s.totalPrice
}

// Version increases on every state change.
func (s *Store) Version() uint64 {
	return s.version
}

func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Items:      s.Items(),
		TotalItems: s.totalItems,
		TotalPrice: s.totalPrice,
	}
}

// Subscribe registers fn to receive a snapshot after every change.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	return func() {
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) recompute() {
	s.totalItems = TotalItems(s.lines)
	s.totalPrice = TotalPrice(s.lines)
}

func (s *Store) changed() {
	s.recompute()
	s.version++
	if len(s.subscribers) == 0 {
		return
	}
	snap := s.Snapshot()
	subs := append([]subscriber(nil), s.subscribers...)
	for _, sub := range subs {
		sub.fn(snap)
	}
}
