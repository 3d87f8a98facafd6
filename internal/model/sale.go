package model

import "time"

type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentCard    PaymentMethod = "card"
	PaymentEwallet PaymentMethod = "ewallet"
)

type SaleStatus string

const (
	SaleCompleted SaleStatus = "completed"
	SaleVoided    SaleStatus = "voided"
)

// SaleItem is a frozen copy of a cart line at checkout time.
type SaleItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Sale is the immutable record of a completed transaction. Items and
// totals never change after creation; only Status transitions, one way,
// from completed to voided.
type Sale struct {
	ID            string        `json:"id"`
	Timestamp     time.Time     `json:"timestamp"`
	Items         []SaleItem    `json:"items"`
	Total         float64       `json:"total"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	CashGiven     float64       `json:"cash_given"`
	Status        SaleStatus    `json:"status"`
	UserID        string        `json:"user_id"`
	ShiftID       string        `json:"shift_id"`
}
