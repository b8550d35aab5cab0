package cart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/wildeats-cart/money"
)

var (
	addonX = Addon{ID: 1, Name: "Extra rice", Price: 1000}
	addonY = Addon{ID: 2, Name: "Egg", Price: 500}
	large  = Variant{ID: 3, Name: "Large", AdditionalPrice: 2000}
)

func itemA(addons ...Addon) Candidate {
	return Candidate{
		ShopID:    1,
		ItemID:    10,
		ShopName:  "JHS Canteen",
		Name:      "Chicken adobo",
		BasePrice: 5000,
		Modifiers: ModifierSet{Addons: addons},
	}
}

func itemBLarge(addons ...Addon) Candidate {
	v := large
	return Candidate{
		ShopID:    2,
		ItemID:    20,
		ShopName:  "Main Canteen",
		Name:      "Iced coffee",
		BasePrice: 2000,
		Modifiers: ModifierSet{Variant: &v, Addons: addons},
	}
}

func mustAdd(t *testing.T, s *Store, c Candidate, qty int) string {
	t.Helper()
	key, err := s.AddItem(c, qty)
	require.NoError(t, err)
	return key
}

func TestStoreWorkedExamples(t *testing.T) {
	s := NewStore()

	// 1. plain A
	keyA := mustAdd(t, s, itemA(), 1)
	assert.Equal(t, 1, s.TotalItems())
	assert.Equal(t, "50.00", s.TotalPrice().String())

	// 2. same A again merges
	assert.Equal(t, keyA, mustAdd(t, s, itemA(), 1))
	require.Equal(t, 1, s.Len())
	line, ok := s.Get(keyA)
	require.True(t, ok)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, "100.00", s.TotalPrice().String())

	// 3. A with add-on X is a separate line
	s2 := NewStore()
	plain := mustAdd(t, s2, itemA(), 1)
	withX := mustAdd(t, s2, itemA(addonX), 1)
	assert.NotEqual(t, plain, withX)
	assert.Equal(t, 2, s2.Len())
	assert.Equal(t, "110.00", s2.TotalPrice().String())

	// 4. B/Large with add-ons in either order collapses
	s3 := NewStore()
	k1 := mustAdd(t, s3, itemBLarge(addonX, addonY), 1)
	k2 := mustAdd(t, s3, itemBLarge(addonY, addonX), 1)
	assert.Equal(t, k1, k2)
	require.Equal(t, 1, s3.Len())
	b, _ := s3.Get(k1)
	assert.Equal(t, 2, b.Quantity)
	assert.Equal(t, money.Amount(5500), LineUnitPrice(b))
	assert.Equal(t, "110.00", LineTotal(b).String())

	// 5. removing every key empties the cart
	for _, item := range s2.Items() {
		s2.RemoveItem(item.Key)
	}
	assert.Equal(t, 0, s2.Len())
	assert.Equal(t, 0, s2.TotalItems())
	assert.Equal(t, "0.00", s2.TotalPrice().String())
}

func TestStoreQuantityMonotonicity(t *testing.T) {
	s := NewStore()
	key := mustAdd(t, s, itemA(addonX), 1)
	for i, add := range []int{2, 1, 5} {
		before, _ := s.Get(key)
		mustAdd(t, s, itemA(addonX), add)
		after, _ := s.Get(key)
		assert.Equal(t, before.Quantity+add, after.Quantity, "step %d", i)
		assert.Equal(t, 1, s.Len())
	}
}

func TestStoreOrderingIsInsertionOrder(t *testing.T) {
	s := NewStore()
	k1 := mustAdd(t, s, itemA(), 1)
	k2 := mustAdd(t, s, itemA(addonX), 1)
	k3 := mustAdd(t, s, itemBLarge(), 1)

	// merging into the first line keeps its position
	mustAdd(t, s, itemA(), 3)
	assert.Equal(t, []string{k1, k2, k3}, keys(s.Items()))

	s.RemoveItem(k2)
	assert.Equal(t, []string{k1, k3}, keys(s.Items()))

	k4 := mustAdd(t, s, itemA(addonY), 1)
	assert.Equal(t, []string{k1, k3, k4}, keys(s.Items()))

	// index must still be right after the removal shifted positions
	s.UpdateQuantity(k3, 9)
	line, _ := s.Get(k3)
	assert.Equal(t, 9, line.Quantity)
}

func TestStoreIdempotentRemoval(t *testing.T) {
	s := NewStore()
	k1 := mustAdd(t, s, itemA(), 1)
	mustAdd(t, s, itemBLarge(), 2)

	s.RemoveItem(k1)
	once := s.Snapshot()
	version := s.Version()

	s.RemoveItem(k1)
	assert.Equal(t, once, s.Snapshot())
	assert.Equal(t, version, s.Version(), "removing a missing key is not a change")

	s.RemoveItem("does-not-exist")
	assert.Equal(t, once, s.Snapshot())
}

func TestStoreUpdateQuantity(t *testing.T) {
	s := NewStore()
	key := mustAdd(t, s, itemA(), 3)

	s.UpdateQuantity(key, 5)
	line, _ := s.Get(key)
	assert.Equal(t, 5, line.Quantity, "quantity is replaced, not incremented")
	assert.Equal(t, "250.00", s.TotalPrice().String())

	before := s.Version()
	s.UpdateQuantity("missing", 4)
	assert.Equal(t, before, s.Version(), "unknown key is a silent no-op")

	s.UpdateQuantity(key, -2)
	_, ok := s.Get(key)
	assert.False(t, ok, "negative quantity removes the line")
}

func TestStoreZeroClamp(t *testing.T) {
	s := NewStore()
	key := mustAdd(t, s, itemA(addonX), 3)

	s.UpdateQuantity(key, 0)
	_, ok := s.Get(key)
	require.False(t, ok)

	again := mustAdd(t, s, itemA(addonX), 1)
	assert.Equal(t, key, again)
	line, _ := s.Get(again)
	assert.Equal(t, 1, line.Quantity)
}

func TestStoreQuantityLimit(t *testing.T) {
	s := NewStore()

	_, err := s.AddItem(itemA(), math.MaxInt)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = s.AddItem(itemA(), 1<<58)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Zero(t, s.Len())

	key := mustAdd(t, s, itemA(), MaxQuantity)
	before := s.Version()
	_, err = s.AddItem(itemA(), 1)
	assert.ErrorIs(t, err, ErrInvalidQuantity, "merge past the limit is rejected")
	assert.Equal(t, before, s.Version())
	line, _ := s.Get(key)
	assert.Equal(t, MaxQuantity, line.Quantity)
	assert.Equal(t, MaxQuantity, s.TotalItems())
	assert.Equal(t, "49950.00", s.TotalPrice().String())

	s.UpdateQuantity(key, 2)
	s.UpdateQuantity(key, math.MaxInt)
	line, _ = s.Get(key)
	assert.Equal(t, MaxQuantity, line.Quantity, "update clamps to the limit")
	assert.Equal(t, "49950.00", s.TotalPrice().String())
}

func TestSeedCapsMergedQuantity(t *testing.T) {
	s := NewStore()
	s.seed([]CartItem{itemA().toItem(MaxQuantity), itemA().toItem(5)})
	require.Equal(t, 1, s.Len())
	assert.Equal(t, MaxQuantity, s.TotalItems())
}

func TestStoreClear(t *testing.T) {
	s := NewStore()
	mustAdd(t, s, itemA(), 1)
	mustAdd(t, s, itemBLarge(), 1)

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, money.Zero, s.TotalPrice())

	version := s.Version()
	s.Clear()
	assert.Equal(t, version, s.Version())

	// cleared store accepts new lines
	mustAdd(t, s, itemA(), 1)
	assert.Equal(t, 1, s.Len())
}

func TestStoreNotes(t *testing.T) {
	s := NewStore()
	c := itemA()
	c.Notes = "  no onions  "
	key := mustAdd(t, s, c, 1)
	line, _ := s.Get(key)
	assert.Equal(t, "no onions", line.Notes)

	c.Notes = "extra sauce"
	assert.Equal(t, key, mustAdd(t, s, c, 1), "notes are not part of identity")
	line, _ = s.Get(key)
	assert.Equal(t, "extra sauce", line.Notes)
	assert.Equal(t, 2, line.Quantity)

	c.Notes = ""
	mustAdd(t, s, c, 1)
	line, _ = s.Get(key)
	assert.Equal(t, "extra sauce", line.Notes, "a re-add without notes keeps the existing notes")
}

func TestStoreRejectsMalformedInput(t *testing.T) {
	s := NewStore()

	_, err := s.AddItem(itemA(), 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	bad := itemA()
	bad.ShopID = 0
	_, err = s.AddItem(bad, 1)
	assert.ErrorIs(t, err, ErrInvalidItem)

	bad = itemA()
	bad.Name = " "
	_, err = s.AddItem(bad, 1)
	assert.ErrorIs(t, err, ErrInvalidItem)

	bad = itemA(Addon{ID: 9, Name: "refund", Price: -100})
	_, err = s.AddItem(bad, 1)
	assert.ErrorIs(t, err, ErrInvalidItem)

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, uint64(0), s.Version())
}

func TestStoreSubscribe(t *testing.T) {
	s := NewStore()
	var got []Snapshot
	unsubscribe := s.Subscribe(func(snap Snapshot) { got = append(got, snap) })

	key := mustAdd(t, s, itemA(), 1)
	mustAdd(t, s, itemA(), 1)
	s.RemoveItem("missing")
	s.UpdateQuantity(key, 0)

	require.Len(t, got, 3, "no-op mutations do not notify")
	assert.Equal(t, 1, got[0].TotalItems)
	assert.Equal(t, 2, got[1].TotalItems)
	assert.True(t, got[2].IsEmpty())

	unsubscribe()
	mustAdd(t, s, itemA(), 1)
	assert.Len(t, got, 3)
}

func TestStoreItemsAreCopies(t *testing.T) {
	s := NewStore()
	key := mustAdd(t, s, itemBLarge(addonX), 1)

	items := s.Items()
	items[0].Quantity = 99
	items[0].Addons[0].Price = 0
	items[0].Variant.AdditionalPrice = 0

	line, _ := s.Get(key)
	assert.Equal(t, 1, line.Quantity)
	assert.Equal(t, money.Amount(5000), LineUnitPrice(line))
}

func keys(items []CartItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Key)
	}
	return out
}
