package pos

import (
	"fmt"

	"go-pos-ws/internal/model"
	"go-pos-ws/internal/state"
)

// CartManager owns the per-user carts and validates mutations against the
// product stock table and the user's shift status. It holds no I/O; the
// coordinating service serializes access.
type CartManager struct {
	st    *state.AppState
	carts map[string]*model.Cart
}

func NewCartManager(st *state.AppState) *CartManager {
	return &CartManager{
		st:    st,
		carts: make(map[string]*model.Cart),
	}
}

// Cart returns the user's cart, creating it on first use.
func (m *CartManager) Cart(userID string) *model.Cart {
	cart, ok := m.carts[userID]
	if !ok {
		cart = &model.Cart{}
		m.carts[userID] = cart
	}
	return cart
}

// AddToCart inserts a new line (snapshotting name and price from the
// product at this instant) or increments an existing one. Quantities
// below 1 are treated as 1.
func (m *CartManager) AddToCart(userID, productID string, qty int) (*model.CartLine, error) {
	if qty < 1 {
		qty = 1
	}

	product := m.st.FindProduct(productID)
	if product == nil {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, productID)
	}
	if product.Stock <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrOutOfStock, product.Name)
	}
	if m.st.OpenShift(userID) == nil {
		return nil, ErrShiftRequired
	}

	cart := m.Cart(userID)
	existing := 0
	if line := cart.Line(productID); line != nil {
		existing = line.Quantity
	}
	if existing+qty > product.Stock {
		return nil, fmt.Errorf("%w: %s has %d left", ErrInsufficientStock, product.Name, product.Stock)
	}

	if line := cart.Line(productID); line != nil {
		line.Quantity += qty
		return line, nil
	}
	cart.Lines = append(cart.Lines, model.CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  qty,
	})
	return cart.Line(productID), nil
}

// UpdateQuantity replaces a line's quantity. Out-of-range input (below 1
// or above the product's current stock) is silently ignored rather than
// rejected; callers relying on feedback must read the cart back.
func (m *CartManager) UpdateQuantity(userID, productID string, newQty int) {
	cart := m.Cart(userID)
	line := cart.Line(productID)
	if line == nil {
		return
	}
	product := m.st.FindProduct(productID)
	if product == nil {
		return
	}
	if newQty < 1 || newQty > product.Stock {
		return
	}
	line.Quantity = newQty
}

// RemoveFromCart removes the line if present; no-op otherwise.
func (m *CartManager) RemoveFromCart(userID, productID string) {
	m.Cart(userID).Remove(productID)
}

// ClearCart empties the user's cart unconditionally.
func (m *CartManager) ClearCart(userID string) {
	m.Cart(userID).Clear()
}

// Totals computes the cart totals at the configured tax rate.
func (m *CartManager) Totals(userID string) model.Totals {
	return m.Cart(userID).Totals(m.st.Settings.TaxRatePercent)
}
