package pos

import (
	"fmt"
	"time"

	"go-pos-ws/internal/model"
	"go-pos-ws/internal/state"
)

// Processor converts a cart into a durable sale, applies the stock
// effects and reverses them on void. Ids and timestamps come from
// injected suppliers so the collision-resistance contract stays with the
// caller and tests stay deterministic.
type Processor struct {
	st    *state.AppState
	newID func() string
	now   func() time.Time
}

func NewProcessor(st *state.AppState, newID func() string, now func() time.Time) *Processor {
	return &Processor{st: st, newID: newID, now: now}
}

// Checkout validates every precondition before touching any state, then
// decrements stock, records the sale, appends it to the open shift and
// clears the cart. Clearing the cart is part of the contract: after a
// successful checkout the caller's cart is empty.
func (p *Processor) Checkout(cart *model.Cart, method model.PaymentMethod, cashGiven float64, userID string) (*model.Sale, error) {
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	shift := p.st.OpenShift(userID)
	if shift == nil {
		return nil, ErrShiftRequired
	}

	totals := cart.Totals(p.st.Settings.TaxRatePercent)
	if method == model.PaymentCash && cashGiven < totals.FinalTotal {
		return nil, fmt.Errorf("%w: need %.2f, got %.2f", ErrInsufficientPayment, totals.FinalTotal, cashGiven)
	}

	// First pass: every line must still be coverable by current stock.
	// A shortfall or a deleted product means the cart went stale since
	// the lines were added; nothing is applied in that case.
	for _, line := range cart.Lines {
		product := p.st.FindProduct(line.ProductID)
		if product == nil || product.Stock < line.Quantity {
			return nil, fmt.Errorf("%w: %s", ErrStockConflict, line.Name)
		}
	}

	// Second pass: apply the decrements.
	for _, line := range cart.Lines {
		p.st.FindProduct(line.ProductID).Stock -= line.Quantity
	}

	items := make([]model.SaleItem, len(cart.Lines))
	for i, line := range cart.Lines {
		items[i] = model.SaleItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
		}
	}
	if method != model.PaymentCash {
		cashGiven = 0
	}

	sale := model.Sale{
		ID:            p.newID(),
		Timestamp:     p.now(),
		Items:         items,
		Total:         totals.FinalTotal,
		PaymentMethod: method,
		CashGiven:     cashGiven,
		Status:        model.SaleCompleted,
		UserID:        userID,
		ShiftID:       shift.ID,
	}
	p.st.Sales = append(p.st.Sales, sale)
	shift.SaleIDs = append(shift.SaleIDs, sale.ID)
	cart.Clear()

	return p.st.FindSale(sale.ID), nil
}

// VoidSale flips a completed sale to voided and restores the stock of
// each item. Voiding is one way and idempotent in the rejecting sense: a
// second void fails with ErrAlreadyVoided and restores nothing. Items
// whose product was deleted since the sale are skipped without failing
// the void; that best-effort policy is intentional.
func (p *Processor) VoidSale(saleID string) (*model.Sale, error) {
	sale := p.st.FindSale(saleID)
	if sale == nil {
		return nil, fmt.Errorf("%w: sale %s", ErrNotFound, saleID)
	}
	if sale.Status == model.SaleVoided {
		return nil, ErrAlreadyVoided
	}

	sale.Status = model.SaleVoided
	for _, item := range sale.Items {
		if product := p.st.FindProduct(item.ProductID); product != nil {
			product.Stock += item.Quantity
		}
	}
	return sale, nil
}
