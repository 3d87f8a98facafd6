package model

// Product is a catalog entry. Stock never goes negative: the checkout
// processor validates every cart line before applying any decrement.
type Product struct {
	ID      string  `json:"id"`
	Name    string  `json:"name" validate:"required"`
	Barcode string  `json:"barcode,omitempty"`
	Price   float64 `json:"price" validate:"gte=0"`
	Stock   int     `json:"stock" validate:"gte=0"`
	Image   string  `json:"image,omitempty"`
}
