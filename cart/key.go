package cart

import (
	"sort"
	"strconv"
	"strings"
)

// Reserved tokens for absent modifiers. They are not numeric, so they never
// collide with a catalog id (including id 0).
const (
	noVariantToken = "novar"
	noAddonsToken  = "noaddons"
	noFlavorToken  = "noflavor"
)

// DeriveKey maps a catalog item and its modifier ids to the line's merge identity:
//
//	{shop}-{item}-{variant|novar}-{addon ids ascending joined by "_"|noaddons}-{flavor|noflavor}
//
// Add-on ids are treated as a set, so selection order and repeats do not matter.
// addonIDs is not modified.
func DeriveKey(shopID, itemID int64, variantID *int64, addonIDs []int64, flavorID *int64) string {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(shopID, 10))
	b.WriteByte('-')
	b.WriteString(strconv.FormatInt(itemID, 10))
	b.WriteByte('-')
	b.WriteString(optionalToken(variantID, noVariantToken))
	b.WriteByte('-')

	ids := sortedUnique(addonIDs)
	if len(ids) == 0 {
		b.WriteString(noAddonsToken)
	} else {
		for i, id := range ids {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteString(strconv.FormatInt(id, 10))
		}
	}

	b.WriteByte('-')
	b.WriteString(optionalToken(flavorID, noFlavorToken))
	return b.String()
}

func optionalToken(id *int64, sentinel string) string {
	if id == nil {
		return sentinel
	}
	return strconv.FormatInt(*id, 10)
}

func sortedUnique(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
