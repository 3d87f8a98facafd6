package pos

import (
	"fmt"
	"math"
	"time"

	"go-pos-ws/internal/model"
	"go-pos-ws/internal/state"
)

// Ledger owns the shift lifecycle and cash reconciliation. A shift only
// ever moves open -> closed; there is no transition out of closed.
type Ledger struct {
	st    *state.AppState
	newID func() string
	now   func() time.Time
}

func NewLedger(st *state.AppState, newID func() string, now func() time.Time) *Ledger {
	return &Ledger{st: st, newID: newID, now: now}
}

func validAmount(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// StartShift opens a new shift for the user. The user's CurrentShiftID
// back-reference must point at a closed shift or be nil; it is updated to
// the new shift in the same step, so the two never disagree.
func (l *Ledger) StartShift(userID string, startingCash float64) (*model.Shift, error) {
	user := l.st.FindUser(userID)
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	if user.CurrentShiftID != nil {
		current := l.st.FindShift(*user.CurrentShiftID)
		if current != nil && current.Status == model.ShiftOpen {
			return nil, ErrAlreadyOpen
		}
	}
	if !validAmount(startingCash) {
		return nil, fmt.Errorf("%w: starting cash %v", ErrInvalidAmount, startingCash)
	}

	shift := model.Shift{
		ID:           l.newID(),
		UserID:       userID,
		StartTime:    l.now(),
		StartingCash: startingCash,
		SaleIDs:      []string{},
		Status:       model.ShiftOpen,
	}
	l.st.Shifts = append(l.st.Shifts, shift)
	id := shift.ID
	user.CurrentShiftID = &id

	return l.st.FindShift(shift.ID), nil
}

// EndShift closes the shift and reconciles the drawer: expected cash is
// the starting float plus the totals of sales that are completed at close
// time. Voided sales are excluded even if they were completed when they
// happened; a void always retroactively removes a sale from cash totals.
func (l *Ledger) EndShift(shiftID string, endingCash float64) (*model.ShiftSummary, error) {
	shift := l.st.FindShift(shiftID)
	if shift == nil {
		return nil, fmt.Errorf("%w: shift %s", ErrNotFound, shiftID)
	}
	if shift.Status != model.ShiftOpen {
		return nil, ErrNotOpen
	}
	if !validAmount(endingCash) {
		return nil, fmt.Errorf("%w: ending cash %v", ErrInvalidAmount, endingCash)
	}

	var salesTotal float64
	for _, saleID := range shift.SaleIDs {
		if sale := l.st.FindSale(saleID); sale != nil && sale.Status == model.SaleCompleted {
			salesTotal += sale.Total
		}
	}
	expected := shift.StartingCash + salesTotal

	endTime := l.now()
	shift.Status = model.ShiftClosed
	shift.EndTime = &endTime
	shift.EndingCash = &endingCash

	if user := l.st.FindUser(shift.UserID); user != nil &&
		user.CurrentShiftID != nil && *user.CurrentShiftID == shift.ID {
		user.CurrentShiftID = nil
	}

	return &model.ShiftSummary{
		ExpectedCash: expected,
		SalesTotal:   salesTotal,
		Discrepancy:  endingCash - expected,
	}, nil
}
