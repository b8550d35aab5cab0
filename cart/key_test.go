package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v int64) *int64 { return &v }

func TestDeriveKey(t *testing.T) {
	tests := []struct {
		name      string
		shopID    int64
		itemID    int64
		variantID *int64
		addonIDs  []int64
		flavorID  *int64
		want      string
	}{
		{"no modifiers", 1, 10, nil, nil, nil, "1-10-novar-noaddons-noflavor"},
		{"variant only", 1, 10, ptr(3), nil, nil, "1-10-3-noaddons-noflavor"},
		{"variant zero is not absent", 1, 10, ptr(0), nil, ptr(0), "1-10-0-noaddons-0"},
		{"addons sorted", 2, 7, nil, []int64{5, 2}, nil, "2-7-novar-2_5-noflavor"},
		{"addons deduplicated", 2, 7, nil, []int64{5, 2, 5}, nil, "2-7-novar-2_5-noflavor"},
		{"everything", 4, 9, ptr(1), []int64{12, 3}, ptr(8), "4-9-1-3_12-8"},
		{"empty addon slice", 1, 10, nil, []int64{}, nil, "1-10-novar-noaddons-noflavor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveKey(tt.shopID, tt.itemID, tt.variantID, tt.addonIDs, tt.flavorID))
		})
	}
}

func TestDeriveKeyIsOrderIndependent(t *testing.T) {
	a := DeriveKey(1, 1, nil, []int64{5, 2, 9}, nil)
	b := DeriveKey(1, 1, nil, []int64{9, 5, 2}, nil)
	c := DeriveKey(1, 1, nil, []int64{2, 9, 5}, nil)
	assert.Equal(t, a, b)
	assert.Equal(t, a, c)
}

func TestDeriveKeyDoesNotMutateInput(t *testing.T) {
	ids := []int64{5, 2}
	DeriveKey(1, 1, nil, ids, nil)
	assert.Equal(t, []int64{5, 2}, ids)
}

func TestDeriveKeyDistinguishesFields(t *testing.T) {
	keys := map[string]struct{}{}
	for _, k := range []string{
		DeriveKey(1, 1, nil, nil, nil),
		DeriveKey(1, 1, ptr(0), nil, nil),
		DeriveKey(1, 1, nil, nil, ptr(0)),
		DeriveKey(1, 1, nil, []int64{0}, nil),
		DeriveKey(1, 2, nil, nil, nil),
		DeriveKey(2, 1, nil, nil, nil),
		DeriveKey(1, 1, ptr(1), nil, nil),
		DeriveKey(1, 1, nil, nil, ptr(1)),
	} {
		keys[k] = struct{}{}
	}
	assert.Len(t, keys, 8)
}

func TestModifierSet(t *testing.T) {
	x := Addon{ID: 1, Name: "X", Price: 1000}
	y := Addon{ID: 2, Name: "Y", Price: 500}
	large := &Variant{ID: 7, Name: "Large", AdditionalPrice: 2000}

	xy := ModifierSet{Variant: large, Addons: []Addon{x, y}}
	yx := ModifierSet{Variant: &Variant{ID: 7, Name: "Large", AdditionalPrice: 2000}, Addons: []Addon{y, x, y}}

	assert.True(t, xy.Equal(yx))
	assert.Equal(t, xy.Key(3, 4), yx.Key(3, 4))
	assert.Equal(t, []int64{1, 2}, yx.AddonIDs())

	normalized := yx.Normalize()
	assert.Equal(t, []Addon{x, y}, normalized.Addons)
	normalized.Variant.Name = "changed"
	assert.Equal(t, "Large", yx.Variant.Name, "Normalize must copy the variant")

	assert.False(t, xy.Equal(ModifierSet{Addons: []Addon{x, y}}), "variant presence matters")
	assert.False(t, xy.Equal(ModifierSet{Variant: large, Addons: []Addon{x}}), "add-on membership matters")
	assert.False(t, ModifierSet{Flavor: &Flavor{ID: 1}}.Equal(ModifierSet{Flavor: &Flavor{ID: 2}}))
	assert.True(t, ModifierSet{}.Equal(ModifierSet{Addons: []Addon{}}))
}
