package cart

import (
	"sort"

	"github.com/yeremiapane/wildeats-cart/money"
)

// Variant is a size or variant choice. At most one per line.
type Variant struct {
	ID              int64        `json:"id"`
	Name            string       `json:"name"`
	AdditionalPrice money.Amount `json:"additional_price"`
}

// Flavor has no price effect. At most one per line.
type Flavor struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Addon is an extra with its own price. A line holds a set of add-ons.
type Addon struct {
	ID    int64        `json:"id"`
	Name  string       `json:"name"`
	Price money.Amount `json:"price"`
}

// ModifierSet bundles the optional selections attached to one cart line.
type ModifierSet struct {
	Variant *Variant
	Flavor  *Flavor
	Addons  []Addon
}

// Normalize returns a copy with add-ons deduplicated by id and sorted ascending.
// The first occurrence of a duplicated id wins.
func (m ModifierSet) Normalize() ModifierSet {
	out := ModifierSet{
		Variant: copyVariant(m.Variant),
		Flavor:  copyFlavor(m.Flavor),
	}
	if len(m.Addons) == 0 {
		return out
	}

	seen := make(map[int64]struct{}, len(m.Addons))
	addons := make([]Addon, 0, len(m.Addons))
	for _, a := range m.Addons {
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		addons = append(addons, a)
	}
	sort.Slice(addons, func(i, j int) bool { return addons[i].ID < addons[j].ID })
	out.Addons = addons
	return out
}

// AddonIDs returns the add-on ids in ascending order without duplicates.
func (m ModifierSet) AddonIDs() []int64 {
	return sortedUnique(addonIDs(m.Addons))
}

// Equal reports whether both sets select the same variant, flavor and add-ons.
// Only ids are compared; display names and prices are catalog data.
func (m ModifierSet) Equal(other ModifierSet) bool {
	if !sameOptionalID(variantID(m.Variant), variantID(other.Variant)) {
		return false
	}
	if !sameOptionalID(flavorID(m.Flavor), flavorID(other.Flavor)) {
		return false
	}
	a, b := m.AddonIDs(), other.AddonIDs()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Key derives the line identity for this modifier set on the given catalog item.
func (m ModifierSet) Key(shopID, itemID int64) string {
	return DeriveKey(shopID, itemID, variantID(m.Variant), addonIDs(m.Addons), flavorID(m.Flavor))
}

func variantID(v *Variant) *int64 {
	if v == nil {
		return nil
	}
	id := v.ID
	return &id
}

func flavorID(f *Flavor) *int64 {
	if f == nil {
		return nil
	}
	id := f.ID
	return &id
}

func addonIDs(addons []Addon) []int64 {
	ids := make([]int64, 0, len(addons))
	for _, a := range addons {
		ids = append(ids, a.ID)
	}
	return ids
}

func sameOptionalID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func copyVariant(v *Variant) *Variant {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyFlavor(f *Flavor) *Flavor {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}
