package state

import (
	"encoding/json"

	"go-pos-ws/internal/model"
)

// Default admin credentials used when no usable snapshot exists. The
// password is a placeholder and should be rotated via cmd/reset-password.
const (
	DefaultAdminID       = "admin-001"
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

// AppState is the whole application state tree: the single aggregate the
// core components mutate. It serializes to one JSON document for the
// snapshot store. Carts are deliberately absent: they are transient.
type AppState struct {
	Users        []model.User     `json:"users"`
	Products     []model.Product  `json:"products"`
	Customers    []model.Customer `json:"customers"`
	Sales        []model.Sale     `json:"sales"`
	Shifts       []model.Shift    `json:"shifts"`
	Settings     model.Settings   `json:"settings"`
	ActiveUserID string           `json:"active_user_id"`
}

// New returns an empty state with default settings and the default admin
// user. This is the fallback for a missing or corrupt snapshot.
func New() *AppState {
	admin := model.User{
		ID:       DefaultAdminID,
		Username: DefaultAdminUsername,
		Role:     model.RoleAdmin,
	}
	// bcrypt only fails on an out-of-range cost, never with DefaultCost.
	_ = admin.SetPassword(DefaultAdminPassword)

	return &AppState{
		Users:     []model.User{admin},
		Products:  []model.Product{},
		Customers: []model.Customer{},
		Sales:     []model.Sale{},
		Shifts:    []model.Shift{},
		Settings:  model.DefaultSettings(),
	}
}

// Encode serializes the state to a single JSON document.
func (s *AppState) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// Decode deserializes a snapshot document. A nil/empty or corrupt
// document falls back to the default state; missing collections default
// to empty and missing settings to the built-in defaults.
func Decode(doc []byte) *AppState {
	if len(doc) == 0 {
		return New()
	}
	var s AppState
	if err := json.Unmarshal(doc, &s); err != nil {
		return New()
	}
	s.normalize()
	return &s
}

// normalize fills defaults for fields a partial or legacy document omits.
func (s *AppState) normalize() {
	if s.Users == nil {
		s.Users = []model.User{}
	}
	if s.Products == nil {
		s.Products = []model.Product{}
	}
	if s.Customers == nil {
		s.Customers = []model.Customer{}
	}
	if s.Sales == nil {
		s.Sales = []model.Sale{}
	}
	if s.Shifts == nil {
		s.Shifts = []model.Shift{}
	}
	if s.Settings == (model.Settings{}) {
		s.Settings = model.DefaultSettings()
	}
	// A document with no users at all would lock everyone out.
	if len(s.Users) == 0 {
		s.Users = New().Users
	}
}

// FindProduct returns the product with the given id, or nil.
func (s *AppState) FindProduct(id string) *model.Product {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return &s.Products[i]
		}
	}
	return nil
}

// FindProductByBarcode returns the product with the given barcode, or nil.
func (s *AppState) FindProductByBarcode(barcode string) *model.Product {
	for i := range s.Products {
		if s.Products[i].Barcode == barcode {
			return &s.Products[i]
		}
	}
	return nil
}

// FindUser returns the user with the given id, or nil.
func (s *AppState) FindUser(id string) *model.User {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return &s.Users[i]
		}
	}
	return nil
}

// FindUserByUsername returns the user with the given username, or nil.
func (s *AppState) FindUserByUsername(username string) *model.User {
	for i := range s.Users {
		if s.Users[i].Username == username {
			return &s.Users[i]
		}
	}
	return nil
}

// FindSale returns the sale with the given id, or nil.
func (s *AppState) FindSale(id string) *model.Sale {
	for i := range s.Sales {
		if s.Sales[i].ID == id {
			return &s.Sales[i]
		}
	}
	return nil
}

// FindShift returns the shift with the given id, or nil.
func (s *AppState) FindShift(id string) *model.Shift {
	for i := range s.Shifts {
		if s.Shifts[i].ID == id {
			return &s.Shifts[i]
		}
	}
	return nil
}

// FindCustomer returns the customer with the given id, or nil.
func (s *AppState) FindCustomer(id string) *model.Customer {
	for i := range s.Customers {
		if s.Customers[i].ID == id {
			return &s.Customers[i]
		}
	}
	return nil
}

// OpenShift returns the user's currently open shift, resolved through the
// CurrentShiftID back-reference. It returns nil when the user has no open
// shift or the reference points at a closed shift.
func (s *AppState) OpenShift(userID string) *model.Shift {
	user := s.FindUser(userID)
	if user == nil || user.CurrentShiftID == nil {
		return nil
	}
	shift := s.FindShift(*user.CurrentShiftID)
	if shift == nil || shift.Status != model.ShiftOpen {
		return nil
	}
	return shift
}
