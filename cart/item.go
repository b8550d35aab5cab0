package cart

import (
	"fmt"
	"strings"

	"github.com/yeremiapane/wildeats-cart/money"
)

// CartItem is one line of the cart: a catalog item plus one modifier combination.
// Key is derived by the store and is never taken from callers.
type CartItem struct {
	Key       string       `json:"key"`
	ShopID    int64        `json:"shop_id"`
	ItemID    int64        `json:"item_id"`
	ShopName  string       `json:"shop_name"`
	Name      string       `json:"name"`
	BasePrice money.Amount `json:"base_price"`
	Variant   *Variant     `json:"variant,omitempty"`
	Flavor    *Flavor      `json:"flavor,omitempty"`
	Addons    []Addon      `json:"addons"`
	Quantity  int          `json:"quantity"`
	Notes     string       `json:"notes,omitempty"`
}

// Modifiers returns the line's selections as a ModifierSet.
func (ci CartItem) Modifiers() ModifierSet {
	return ModifierSet{Variant: ci.Variant, Flavor: ci.Flavor, Addons: ci.Addons}
}

// Clone returns a deep copy.
func (ci CartItem) Clone() CartItem {
	c := ci
	c.Variant = copyVariant(ci.Variant)
	c.Flavor = copyFlavor(ci.Flavor)
	c.Addons = make([]Addon, len(ci.Addons))
	copy(c.Addons, ci.Addons)
	return c
}

// Candidate is what a shopper composes before adding to the cart: everything on
// a CartItem except the derived key and the quantity.
type Candidate struct {
	ShopID    int64
	ItemID    int64
	ShopName  string
	Name      string
	BasePrice money.Amount
	Modifiers ModifierSet
	Notes     string
}

// Key derives the merge identity of the candidate.
func (c Candidate) Key() string {
	return c.Modifiers.Key(c.ShopID, c.ItemID)
}

func (c Candidate) validate() error {
	return validateFields(c.ShopID, c.ItemID, c.Name, c.BasePrice, c.Modifiers)
}

func (c Candidate) toItem(quantity int) CartItem {
	mods := c.Modifiers.Normalize()
	if mods.Addons == nil {
		mods.Addons = []Addon{}
	}
	return CartItem{
		Key:       c.Key(),
		ShopID:    c.ShopID,
		ItemID:    c.ItemID,
		ShopName:  c.ShopName,
		Name:      c.Name,
		BasePrice: c.BasePrice,
		Variant:   mods.Variant,
		Flavor:    mods.Flavor,
		Addons:    mods.Addons,
		Quantity:  quantity,
		Notes:     strings.TrimSpace(c.Notes),
	}
}

// validate checks a stored line, used when reloading persisted state.
func (ci CartItem) validate() error {
	if ci.Quantity < 1 || ci.Quantity > MaxQuantity {
		return fmt.Errorf("%w: quantity %d", ErrInvalidQuantity, ci.Quantity)
	}
	return validateFields(ci.ShopID, ci.ItemID, ci.Name, ci.BasePrice, ci.Modifiers())
}

func validateFields(shopID, itemID int64, name string, base money.Amount, mods ModifierSet) error {
	switch {
	case shopID <= 0:
		return fmt.Errorf("%w: shop id is required", ErrInvalidItem)
	case itemID <= 0:
		return fmt.Errorf("%w: item id is required", ErrInvalidItem)
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidItem)
	case base.IsNegative():
		return fmt.Errorf("%w: negative base price", ErrInvalidItem)
	}
	if mods.Variant != nil && mods.Variant.AdditionalPrice.IsNegative() {
		return fmt.Errorf("%w: negative price on variant %d", ErrInvalidItem, mods.Variant.ID)
	}
	for _, a := range mods.Addons {
		if a.Price.IsNegative() {
			return fmt.Errorf("%w: negative price on add-on %d", ErrInvalidItem, a.ID)
		}
	}
	return nil
}
