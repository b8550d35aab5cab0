package cart

import "github.com/yeremiapane/wildeats-cart/money"

// LineUnitPrice is the base price plus the variant surcharge plus every add-on.
func LineUnitPrice(item CartItem) money.Amount {
	unit := item.BasePrice
	if item.Variant != nil {
		unit += item.Variant.AdditionalPrice
	}
	for _, a := range item.Addons {
		unit += a.Price
	}
	return unit
}

// LineTotal is the unit price times the quantity.
func LineTotal(item CartItem) money.Amount {
	return LineUnitPrice(item).Mul(item.Quantity)
}

// TotalItems sums quantities across lines.
func TotalItems(items []CartItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// TotalPrice sums line totals across lines.
func TotalPrice(items []CartItem) money.Amount {
	var total money.Amount
	for _, item := range items {
		total += LineTotal(item)
	}
	return total
}
