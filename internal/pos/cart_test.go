package pos

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pos-ws/internal/model"
	"go-pos-ws/internal/state"
)

const testUserID = "user-1"

// newTestState builds a state with one cashier holding an open shift and
// the given products.
func newTestState(products ...model.Product) *state.AppState {
	st := state.New()
	shiftID := "shift-1"
	st.Users = append(st.Users, model.User{
		ID:             testUserID,
		Username:       "cashier",
		Role:           model.RoleCashier,
		CurrentShiftID: &shiftID,
	})
	st.Shifts = append(st.Shifts, model.Shift{
		ID:           shiftID,
		UserID:       testUserID,
		StartTime:    time.Now(),
		StartingCash: 100000,
		SaleIDs:      []string{},
		Status:       model.ShiftOpen,
	})
	st.Products = append(st.Products, products...)
	return st
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
}

func TestAddToCart(t *testing.T) {
	t.Run("snapshots name and price on first add", func(t *testing.T) {
		st := newTestState(model.Product{ID: "p1", Name: "Coffee", Price: 1000, Stock: 10})
		carts := NewCartManager(st)

		line, err := carts.AddToCart(testUserID, "p1", 2)
		require.NoError(t, err)
		assert.Equal(t, "Coffee", line.Name)
		assert.Equal(t, 1000.0, line.Price)
		assert.Equal(t, 2, line.Quantity)

		// A later price change must not leak into the snapshot.
		st.FindProduct("p1").Price = 9999
		assert.Equal(t, 1000.0, carts.Cart(testUserID).Lines[0].Price)
	})

	t.Run("increments existing line", func(t *testing.T) {
		st := newTestState(model.Product{ID: "p1", Name: "Coffee", Price: 1000, Stock: 10})
		carts := NewCartManager(st)

		_, err := carts.AddToCart(testUserID, "p1", 2)
		require.NoError(t, err)
		line, err := carts.AddToCart(testUserID, "p1", 3)
		require.NoError(t, err)
		assert.Equal(t, 5, line.Quantity)
		assert.Len(t, carts.Cart(testUserID).Lines, 1)
	})

	t.Run("unknown product", func(t *testing.T) {
		st := newTestState()
		carts := NewCartManager(st)
		_, err := carts.AddToCart(testUserID, "nope", 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("zero stock", func(t *testing.T) {
		st := newTestState(model.Product{ID: "p1", Name: "Coffee", Price: 1000, Stock: 0})
		carts := NewCartManager(st)
		_, err := carts.AddToCart(testUserID, "p1", 1)
		assert.ErrorIs(t, err, ErrOutOfStock)
	})

	t.Run("no open shift", func(t *testing.T) {
		st := newTestState(model.Product{ID: "p1", Name: "Coffee", Price: 1000, Stock: 10})
		st.FindUser(testUserID).CurrentShiftID = nil
		carts := NewCartManager(st)
		_, err := carts.AddToCart(testUserID, "p1", 1)
		assert.ErrorIs(t, err, ErrShiftRequired)
	})

	t.Run("closed shift is not an open shift", func(t *testing.T) {
		st := newTestState(model.Product{ID: "p1", Name: "Coffee", Price: 1000, Stock: 10})
		st.Shifts[0].Status = model.ShiftClosed
		carts := NewCartManager(st)
		_, err := carts.AddToCart(testUserID, "p1", 1)
		assert.ErrorIs(t, err, ErrShiftRequired)
	})

	t.Run("cumulative quantity cannot exceed stock", func(t *testing.T) {
		st := newTestState(model.Product{ID: "p1", Name: "Coffee", Price: 1000, Stock: 5})
		carts := NewCartManager(st)
		_, err := carts.AddToCart(testUserID, "p1", 3)
		require.NoError(t, err)
		_, err = carts.AddToCart(testUserID, "p1", 3)
		assert.ErrorIs(t, err, ErrInsufficientStock)
		// Failed add leaves the line untouched.
		assert.Equal(t, 3, carts.Cart(testUserID).Lines[0].Quantity)
	})

	t.Run("quantity below one defaults to one", func(t *testing.T) {
		st := newTestState(model.Product{ID: "p1", Name: "Coffee", Price: 1000, Stock: 5})
		carts := NewCartManager(st)
		line, err := carts.AddToCart(testUserID, "p1", 0)
		require.NoError(t, err)
		assert.Equal(t, 1, line.Quantity)
	})
}

func TestUpdateQuantity(t *testing.T) {
	newCart := func() (*state.AppState, *CartManager) {
		st := newTestState(model.Product{ID: "p1", Name: "Coffee", Price: 1000, Stock: 5})
		carts := NewCartManager(st)
		_, err := carts.AddToCart(testUserID, "p1", 2)
		if err != nil {
			t.Fatal(err)
		}
		return st, carts
	}

	t.Run("replaces quantity when in range", func(t *testing.T) {
		_, carts := newCart()
		carts.UpdateQuantity(testUserID, "p1", 5)
		assert.Equal(t, 5, carts.Cart(testUserID).Lines[0].Quantity)
	})

	t.Run("silently ignores quantity below one", func(t *testing.T) {
		_, carts := newCart()
		carts.UpdateQuantity(testUserID, "p1", 0)
		assert.Equal(t, 2, carts.Cart(testUserID).Lines[0].Quantity)
	})

	t.Run("silently ignores quantity above stock", func(t *testing.T) {
		_, carts := newCart()
		carts.UpdateQuantity(testUserID, "p1", 6)
		assert.Equal(t, 2, carts.Cart(testUserID).Lines[0].Quantity)
	})

	t.Run("silently ignores unknown line", func(t *testing.T) {
		_, carts := newCart()
		carts.UpdateQuantity(testUserID, "p2", 3)
		assert.Len(t, carts.Cart(testUserID).Lines, 1)
	})
}

func TestRemoveAndClear(t *testing.T) {
	st := newTestState(
		model.Product{ID: "p1", Name: "Coffee", Price: 1000, Stock: 5},
		model.Product{ID: "p2", Name: "Tea", Price: 500, Stock: 5},
	)
	carts := NewCartManager(st)
	for _, id := range []string{"p1", "p2"} {
		_, err := carts.AddToCart(testUserID, id, 1)
		require.NoError(t, err)
	}

	carts.RemoveFromCart(testUserID, "p1")
	assert.Len(t, carts.Cart(testUserID).Lines, 1)

	// Removing an absent line is a no-op.
	carts.RemoveFromCart(testUserID, "p1")
	assert.Len(t, carts.Cart(testUserID).Lines, 1)

	carts.ClearCart(testUserID)
	assert.True(t, carts.Cart(testUserID).IsEmpty())
}

func TestCartInvariants(t *testing.T) {
	// No sequence of cart calls may leave a line with quantity < 1 or
	// above the product's stock.
	st := newTestState(model.Product{ID: "p1", Name: "Coffee", Price: 1000, Stock: 4})
	carts := NewCartManager(st)

	check := func() {
		for _, l := range carts.Cart(testUserID).Lines {
			require.GreaterOrEqual(t, l.Quantity, 1)
			require.LessOrEqual(t, l.Quantity, st.FindProduct(l.ProductID).Stock)
		}
	}

	for _, step := range []func(){
		func() { _, _ = carts.AddToCart(testUserID, "p1", 2) },
		func() { carts.UpdateQuantity(testUserID, "p1", 9) },
		func() { _, _ = carts.AddToCart(testUserID, "p1", 3) },
		func() { carts.UpdateQuantity(testUserID, "p1", -1) },
		func() { _, _ = carts.AddToCart(testUserID, "p1", 1) },
		func() { carts.UpdateQuantity(testUserID, "p1", 4) },
		func() { carts.RemoveFromCart(testUserID, "p2") },
	} {
		step()
		check()
	}
}

func TestTotals(t *testing.T) {
	cart := &model.Cart{Lines: []model.CartLine{
		{ProductID: "p1", Name: "Coffee", Price: 1000, Quantity: 3},
		{ProductID: "p2", Name: "Tea", Price: 250, Quantity: 2},
	}}

	t.Run("computes subtotal tax and final total", func(t *testing.T) {
		totals := cart.Totals(10)
		assert.Equal(t, 3500.0, totals.Subtotal)
		assert.Equal(t, 350.0, totals.TaxAmount)
		assert.Equal(t, 3850.0, totals.FinalTotal)
	})

	t.Run("is pure and deterministic", func(t *testing.T) {
		first := cart.Totals(7.5)
		second := cart.Totals(7.5)
		assert.Equal(t, first, second)
		assert.Equal(t, first.Subtotal+first.TaxAmount, first.FinalTotal)
	})

	t.Run("empty cart totals to zero", func(t *testing.T) {
		empty := &model.Cart{}
		assert.Equal(t, model.Totals{}, empty.Totals(10))
	})
}
