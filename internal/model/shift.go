package model

import "time"

type ShiftStatus string

const (
	ShiftOpen   ShiftStatus = "open"
	ShiftClosed ShiftStatus = "closed"
)

// Shift is one cash-drawer session owned by one user. SaleIDs only grows
// while the shift is open and is frozen once the shift is closed. At most
// one open shift exists per user, tracked through User.CurrentShiftID.
type Shift struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	StartTime    time.Time   `json:"start_time"`
	StartingCash float64     `json:"starting_cash"`
	EndTime      *time.Time  `json:"end_time"`
	EndingCash   *float64    `json:"ending_cash"`
	SaleIDs      []string    `json:"sale_ids"`
	Status       ShiftStatus `json:"status"`
}

// ShiftSummary is the reconciliation result computed when a shift closes.
// Discrepancy is the counted ending cash minus the expected cash.
type ShiftSummary struct {
	ExpectedCash float64 `json:"expected_cash"`
	SalesTotal   float64 `json:"sales_total"`
	Discrepancy  float64 `json:"discrepancy"`
}
