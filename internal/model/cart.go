package model

// CartLine pairs a product with a requested quantity. Name and price are
// snapshots taken when the product was first added, not live references.
type CartLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Cart is the mutable pre-checkout list for one session. It is transient
// state and never part of the persisted snapshot.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Totals is the result of the cart total computation.
type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	TaxAmount  float64 `json:"tax_amount"`
	FinalTotal float64 `json:"final_total"`
}

// Line returns a pointer to the line for productID, or nil.
func (c *Cart) Line(productID string) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i]
		}
	}
	return nil
}

// Remove drops the line for productID. Removing an absent line is a no-op.
func (c *Cart) Remove(productID string) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.Lines = nil
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// TotalQuantity sums the quantities of all lines.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}

// Totals computes subtotal, tax and final total for the given tax rate
// (percent). Pure and deterministic: FinalTotal is always exactly
// Subtotal + TaxAmount at float64 precision, with no rounding applied.
func (c *Cart) Totals(taxRatePercent float64) Totals {
	var subtotal float64
	for _, l := range c.Lines {
		subtotal += float64(l.Quantity) * l.Price
	}
	tax := subtotal * taxRatePercent / 100
	return Totals{
		Subtotal:   subtotal,
		TaxAmount:  tax,
		FinalTotal: subtotal + tax,
	}
}
