package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pos-ws/internal/model"
)

func TestCheckout(t *testing.T) {
	setup := func(t *testing.T, products ...model.Product) (*CartManager, *Processor) {
		t.Helper()
		st := newTestState(products...)
		return NewCartManager(st), NewProcessor(st, sequentialIDs("sale"), fixedNow)
	}

	t.Run("cash sale end to end", func(t *testing.T) {
		carts, proc := setup(t, model.Product{ID: "p1", Name: "Coffee", Price: 1000, Stock: 10})
		_, err := carts.AddToCart(testUserID, "p1", 3)
		require.NoError(t, err)

		cart := carts.Cart(testUserID)
		sale, err := proc.Checkout(cart, model.PaymentCash, 5000, testUserID)
		require.NoError(t, err)

		// subtotal 3000, 10% tax 300, final 3300, change 1700
		assert.Equal(t, 3300.0, sale.Total)
		assert.Equal(t, 1700.0, sale.CashGiven-sale.Total)
		assert.Equal(t, model.SaleCompleted, sale.Status)
		assert.Equal(t, model.PaymentCash, sale.PaymentMethod)
		assert.Equal(t, testUserID, sale.UserID)
		assert.Equal(t, "shift-1", sale.ShiftID)
		assert.Equal(t, fixedNow(), sale.Timestamp)

		assert.Equal(t, 7, proc.st.FindProduct("p1").Stock)
		assert.True(t, cart.IsEmpty(), "cart must be empty after checkout")
		assert.Equal(t, []string{sale.ID}, proc.st.FindShift("shift-1").SaleIDs)
	})

	t.Run("stock delta equals cart quantity across products", func(t *testing.T) {
		carts, proc := setup(t,
			model.Product{ID: "p1", Name: "Coffee", Price: 1000, Stock: 10},
			model.Product{ID: "p2", Name: "Tea", Price: 500, Stock: 8},
		)
		_, err := carts.AddToCart(testUserID, "p1", 2)
		require.NoError(t, err)
		_, err = carts.AddToCart(testUserID, "p2", 5)
		require.NoError(t, err)

		before := proc.st.FindProduct("p1").Stock + proc.st.FindProduct("p2").Stock
		wanted := carts.Cart(testUserID).TotalQuantity()

		_, err = proc.Checkout(carts.Cart(testUserID), model.PaymentCard, 0, testUserID)
		require.NoError(t, err)

		after := proc.st.FindProduct("p1").Stock + proc.st.FindProduct("p2").Stock
		assert.Equal(t, wanted, before-after)
	})

	t.Run("empty cart", func(t *testing.T) {
		carts, proc := setup(t, model.Product{ID: "p1", Name: "Coffee", Price: 1000, Stock: 10})
		_, err := proc.Checkout(carts.Cart(testUserID), model.PaymentCash, 5000, testUserID)
		assert.ErrorIs(t, err, ErrEmptyCart)
		assert.Equal(t, 10, proc.st.FindProduct("p1").Stock)
	})

	t.Run("no open shift", func(t *testing.T) {
		carts, proc := setup(t, model.Product{ID: "p1", Name: "Coffee", Price: 1000, Stock: 10})
		_, err := carts.AddToCart(testUserID, "p1", 1)
		require.NoError(t, err)

		proc.st.FindUser(testUserID).CurrentShiftID = nil
		_, err = proc.Checkout(carts.Cart(testUserID), model.PaymentCash, 5000, testUserID)
		assert.ErrorIs(t, err, ErrShiftRequired)
	})

	t.Run("insufficient cash", func(t *testing.T) {
		carts, proc := setup(t, model.Product{ID: "p1", Name: "Coffee", Price: 1000, Stock: 10})
		_, err := carts.AddToCart(testUserID, "p1", 3)
		require.NoError(t, err)

		_, err = proc.Checkout(carts.Cart(testUserID), model.PaymentCash, 3000, testUserID)
		assert.ErrorIs(t, err, ErrInsufficientPayment)
		assert.Equal(t, 10, proc.st.FindProduct("p1").Stock)
		assert.False(t, carts.Cart(testUserID).IsEmpty(), "failed checkout keeps the cart")
	})

	t.Run("card payment ignores cash given", func(t *testing.T) {
		carts, proc := setup(t, model.Product{ID: "p1", Name: "Coffee", Price: 1000, Stock: 10})
		_, err := carts.AddToCart(testUserID, "p1", 1)
		require.NoError(t, err)

		sale, err := proc.Checkout(carts.Cart(testUserID), model.PaymentCard, 999999, testUserID)
		require.NoError(t, err)
		assert.Equal(t, 0.0, sale.CashGiven)
	})

	t.Run("stale cart fails atomically", func(t *testing.T) {
		carts, proc := setup(t,
			model.Product{ID: "p1", Name: "Coffee", Price: 1000, Stock: 5},
			model.Product{ID: "p2", Name: "Tea", Price: 500, Stock: 5},
		)
		_, err := carts.AddToCart(testUserID, "p1", 2)
		require.NoError(t, err)
		_, err = carts.AddToCart(testUserID, "p2", 4)
		require.NoError(t, err)

		// Stock for p2 drains behind the cart's back.
		proc.st.FindProduct("p2").Stock = 1

		_, err = proc.Checkout(carts.Cart(testUserID), model.PaymentCash, 99999, testUserID)
		assert.ErrorIs(t, err, ErrStockConflict)
		// No partial decrement: p1 untouched even though it was coverable.
		assert.Equal(t, 5, proc.st.FindProduct("p1").Stock)
		assert.Equal(t, 1, proc.st.FindProduct("p2").Stock)
		assert.Empty(t, proc.st.Sales)
	})

	t.Run("deleted product in cart is a stock conflict", func(t *testing.T) {
		carts, proc := setup(t, model.Product{ID: "p1", Name: "Coffee", Price: 1000, Stock: 5})
		_, err := carts.AddToCart(testUserID, "p1", 1)
		require.NoError(t, err)

		proc.st.Products = nil
		_, err = proc.Checkout(carts.Cart(testUserID), model.PaymentCash, 99999, testUserID)
		assert.ErrorIs(t, err, ErrStockConflict)
	})

	t.Run("sale items are frozen copies", func(t *testing.T) {
		carts, proc := setup(t, model.Product{ID: "p1", Name: "Coffee", Price: 1000, Stock: 10})
		_, err := carts.AddToCart(testUserID, "p1", 2)
		require.NoError(t, err)

		sale, err := proc.Checkout(carts.Cart(testUserID), model.PaymentCash, 99999, testUserID)
		require.NoError(t, err)

		proc.st.FindProduct("p1").Name = "Renamed"
		proc.st.FindProduct("p1").Price = 1
		assert.Equal(t, "Coffee", sale.Items[0].Name)
		assert.Equal(t, 1000.0, sale.Items[0].Price)
	})
}

func TestVoidSale(t *testing.T) {
	makeSale := func(t *testing.T) (*Processor, *model.Sale) {
		t.Helper()
		st := newTestState(model.Product{ID: "p1", Name: "Coffee", Price: 1000, Stock: 10})
		carts := NewCartManager(st)
		proc := NewProcessor(st, sequentialIDs("sale"), fixedNow)
		_, err := carts.AddToCart(testUserID, "p1", 3)
		require.NoError(t, err)
		sale, err := proc.Checkout(carts.Cart(testUserID), model.PaymentCash, 5000, testUserID)
		require.NoError(t, err)
		return proc, sale
	}

	t.Run("restores stock and flips status", func(t *testing.T) {
		proc, sale := makeSale(t)
		require.Equal(t, 7, proc.st.FindProduct("p1").Stock)

		voided, err := proc.VoidSale(sale.ID)
		require.NoError(t, err)
		assert.Equal(t, model.SaleVoided, voided.Status)
		assert.Equal(t, 10, proc.st.FindProduct("p1").Stock)
	})

	t.Run("second void is rejected and restores nothing", func(t *testing.T) {
		proc, sale := makeSale(t)
		_, err := proc.VoidSale(sale.ID)
		require.NoError(t, err)

		_, err = proc.VoidSale(sale.ID)
		assert.ErrorIs(t, err, ErrAlreadyVoided)
		assert.Equal(t, 10, proc.st.FindProduct("p1").Stock, "stock restored exactly once")
	})

	t.Run("unknown sale", func(t *testing.T) {
		proc, _ := makeSale(t)
		_, err := proc.VoidSale("missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("skips restore for deleted products", func(t *testing.T) {
		proc, sale := makeSale(t)
		proc.st.Products = nil

		voided, err := proc.VoidSale(sale.ID)
		require.NoError(t, err)
		assert.Equal(t, model.SaleVoided, voided.Status)
	})
}
