package cart

import "errors"

// MaxQuantity caps the units held on a single line.
const MaxQuantity = 999

var (
	// ErrItemNotFound means the catalog could not resolve the referenced item.
	ErrItemNotFound = errors.New("menu item not found")

	// ErrInvalidQuantity is returned by AddItem for a quantity below one or a line
	// that would exceed MaxQuantity. UpdateQuantity never returns it.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	// ErrInvalidItem marks a malformed candidate (missing ids, empty name, negative price).
	ErrInvalidItem = errors.New("invalid cart item")

	// ErrPersistenceUnavailable wraps slot read/write failures. It never fails a
	// cart mutation; Checkout returns it while the stored cart cannot be read.
	ErrPersistenceUnavailable = errors.New("cart persistence unavailable")

	// ErrEmptyCartCheckout is raised by checkout when there is nothing to submit.
	ErrEmptyCartCheckout = errors.New("cart is empty")
)
