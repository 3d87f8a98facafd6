package pos

import "errors"

// Error definitions. Every core operation either returns its declared
// result or exactly one of these, with no partial state change applied.
var (
	ErrNotFound            = errors.New("not found")
	ErrOutOfStock          = errors.New("product is out of stock")
	ErrInsufficientStock   = errors.New("requested quantity exceeds available stock")
	ErrShiftRequired       = errors.New("an open shift is required")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInsufficientPayment = errors.New("cash given is less than the total due")
	ErrStockConflict       = errors.New("cart is stale: stock changed since items were added")
	ErrAlreadyVoided       = errors.New("sale is already voided")
	ErrAlreadyOpen         = errors.New("user already has an open shift")
	ErrNotOpen             = errors.New("shift is not open")
	ErrInvalidAmount       = errors.New("amount must be a non-negative finite number")
)
