package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"go-pos-ws/internal/model"
	"go-pos-ws/internal/pos"
	"go-pos-ws/internal/state"
	"go-pos-ws/internal/store"
	"go-pos-ws/internal/ws"
	"go-pos-ws/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrBarcodeExists  = errors.New("barcode already exists")
	ErrUsernameExists = errors.New("username already exists")
)

// CartView is the cart read model returned to the terminal: the lines
// plus the totals at the configured tax rate.
type CartView struct {
	Lines  []model.CartLine `json:"lines"`
	Totals model.Totals     `json:"totals"`
}

// POSService is the single coordinating service owning the state tree.
// The core components (cart manager, checkout processor, shift ledger)
// are pure and assume one mutator, so every operation here runs under
// one mutex over the whole aggregate. Persistence is a fire-and-forget
// snapshot flush after each successful mutation; a crash between the
// mutation and the flush loses that mutation.
type POSService struct {
	mu     sync.Mutex
	st     *state.AppState
	carts  *pos.CartManager
	proc   *pos.Processor
	ledger *pos.Ledger
	snaps  store.SnapshotStore
	hub    *ws.Hub
	newID  func() string
}

func NewPOSService(st *state.AppState, snaps store.SnapshotStore, hub *ws.Hub) *POSService {
	newID := uuid.NewString
	return &POSService{
		st:     st,
		carts:  pos.NewCartManager(st),
		proc:   pos.NewProcessor(st, newID, time.Now),
		ledger: pos.NewLedger(st, newID, time.Now),
		snaps:  snaps,
		hub:    hub,
		newID:  newID,
	}
}

// flushLocked encodes the state under the caller's lock and hands the
// document to a goroutine for storage. Ordering relative to the next
// mutation is deliberately not guaranteed.
func (s *POSService) flushLocked() {
	doc, err := s.st.Encode()
	if err != nil {
		log.Printf("snapshot encode failed: %v", err)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.snaps.Save(ctx, doc); err != nil {
			log.Printf("snapshot save failed: %v", err)
		}
	}()
}

// Flush synchronously writes the current snapshot. Exposed for the
// explicit flush endpoint and shutdown.
func (s *POSService) Flush(ctx context.Context) error {
	s.mu.Lock()
	doc, err := s.st.Encode()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.snaps.Save(ctx, doc)
}

func (s *POSService) broadcast(payload map[string]interface{}) {
	if s.hub == nil {
		return
	}
	go func() {
		msg, _ := json.Marshal(payload)
		s.hub.Broadcast <- msg
	}()
}

func (s *POSService) notifyUser(userID string, payload map[string]interface{}) {
	if s.hub == nil {
		return
	}
	go func() {
		msg, _ := json.Marshal(payload)
		s.hub.SendToUser(userID, msg)
	}()
}

// ---- Cart ----

func (s *POSService) AddToCart(userID, productID string, qty int) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.carts.AddToCart(userID, productID, qty); err != nil {
		return CartView{}, err
	}
	return s.cartViewLocked(userID), nil
}

func (s *POSService) UpdateCartQuantity(userID, productID string, newQty int) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts.UpdateQuantity(userID, productID, newQty)
	return s.cartViewLocked(userID)
}

func (s *POSService) RemoveFromCart(userID, productID string) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts.RemoveFromCart(userID, productID)
	return s.cartViewLocked(userID)
}

func (s *POSService) ClearCart(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts.ClearCart(userID)
}

func (s *POSService) CartView(userID string) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartViewLocked(userID)
}

func (s *POSService) cartViewLocked(userID string) CartView {
	cart := s.carts.Cart(userID)
	lines := make([]model.CartLine, len(cart.Lines))
	copy(lines, cart.Lines)
	return CartView{Lines: lines, Totals: s.carts.Totals(userID)}
}

// ---- Checkout / void ----

func (s *POSService) Checkout(userID string, method model.PaymentMethod, cashGiven float64) (model.Sale, error) {
	s.mu.Lock()
	sale, err := s.proc.Checkout(s.carts.Cart(userID), method, cashGiven, userID)
	if err != nil {
		s.mu.Unlock()
		return model.Sale{}, err
	}
	result := *sale
	s.flushLocked()
	s.mu.Unlock()

	s.broadcast(map[string]interface{}{
		"type":    "sale_completed",
		"sale_id": result.ID,
		"total":   result.Total,
		"user_id": result.UserID,
	})
	return result, nil
}

func (s *POSService) VoidSale(saleID string) (model.Sale, error) {
	s.mu.Lock()
	sale, err := s.proc.VoidSale(saleID)
	if err != nil {
		s.mu.Unlock()
		return model.Sale{}, err
	}
	result := *sale
	s.flushLocked()
	s.mu.Unlock()

	s.broadcast(map[string]interface{}{
		"type":    "sale_voided",
		"sale_id": result.ID,
		"total":   result.Total,
	})
	return result, nil
}

func (s *POSService) Sales() []model.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	sales := make([]model.Sale, len(s.st.Sales))
	copy(sales, s.st.Sales)
	return sales
}

func (s *POSService) Sale(id string) (model.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sale := s.st.FindSale(id)
	if sale == nil {
		return model.Sale{}, fmt.Errorf("%w: sale %s", pos.ErrNotFound, id)
	}
	return *sale, nil
}

// ---- Shifts ----

func (s *POSService) StartShift(userID string, startingCash float64) (model.Shift, error) {
	s.mu.Lock()
	shift, err := s.ledger.StartShift(userID, startingCash)
	if err != nil {
		s.mu.Unlock()
		return model.Shift{}, err
	}
	result := *shift
	s.flushLocked()
	s.mu.Unlock()

	s.notifyUser(userID, map[string]interface{}{
		"type":          "shift_opened",
		"shift_id":      result.ID,
		"starting_cash": result.StartingCash,
	})
	return result, nil
}

func (s *POSService) EndShift(shiftID string, endingCash float64) (model.Shift, model.ShiftSummary, error) {
	s.mu.Lock()
	summary, err := s.ledger.EndShift(shiftID, endingCash)
	if err != nil {
		s.mu.Unlock()
		return model.Shift{}, model.ShiftSummary{}, err
	}
	result := *s.st.FindShift(shiftID)
	s.flushLocked()
	s.mu.Unlock()

	s.notifyUser(result.UserID, map[string]interface{}{
		"type":        "shift_closed",
		"shift_id":    result.ID,
		"sales_total": summary.SalesTotal,
		"discrepancy": summary.Discrepancy,
	})
	return result, *summary, nil
}

func (s *POSService) CurrentShift(userID string) (model.Shift, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	shift := s.st.OpenShift(userID)
	if shift == nil {
		return model.Shift{}, false
	}
	return *shift, true
}

func (s *POSService) Shifts() []model.Shift {
	s.mu.Lock()
	defer s.mu.Unlock()
	shifts := make([]model.Shift, len(s.st.Shifts))
	copy(shifts, s.st.Shifts)
	return shifts
}

func (s *POSService) Shift(id string) (model.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	shift := s.st.FindShift(id)
	if shift == nil {
		return model.Shift{}, fmt.Errorf("%w: shift %s", pos.ErrNotFound, id)
	}
	return *shift, nil
}

// ---- Catalog ----

func (s *POSService) Products() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	products := make([]model.Product, len(s.st.Products))
	copy(products, s.st.Products)
	return products
}

func (s *POSService) Product(id string) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product := s.st.FindProduct(id)
	if product == nil {
		return model.Product{}, fmt.Errorf("%w: product %s", pos.ErrNotFound, id)
	}
	return *product, nil
}

func (s *POSService) ProductByBarcode(barcode string) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product := s.st.FindProductByBarcode(barcode)
	if product == nil {
		return model.Product{}, fmt.Errorf("%w: barcode %s", pos.ErrNotFound, barcode)
	}
	return *product, nil
}

func (s *POSService) CreateProduct(req model.Product) (model.Product, error) {
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		first := errs[0]
		return model.Product{}, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	s.mu.Lock()
	if req.Barcode != "" && s.st.FindProductByBarcode(req.Barcode) != nil {
		s.mu.Unlock()
		return model.Product{}, ErrBarcodeExists
	}
	req.ID = s.newID()
	s.st.Products = append(s.st.Products, req)
	s.flushLocked()
	s.mu.Unlock()

	s.broadcast(map[string]interface{}{
		"type":       "stock_update",
		"action":     "product_created",
		"product_id": req.ID,
		"stock":      req.Stock,
	})
	return req, nil
}

func (s *POSService) UpdateProduct(id string, req model.Product) (model.Product, error) {
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		first := errs[0]
		return model.Product{}, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	s.mu.Lock()
	product := s.st.FindProduct(id)
	if product == nil {
		s.mu.Unlock()
		return model.Product{}, fmt.Errorf("%w: product %s", pos.ErrNotFound, id)
	}
	if req.Barcode != "" {
		if other := s.st.FindProductByBarcode(req.Barcode); other != nil && other.ID != id {
			s.mu.Unlock()
			return model.Product{}, ErrBarcodeExists
		}
	}
	product.Name = req.Name
	product.Barcode = req.Barcode
	product.Price = req.Price
	product.Stock = req.Stock
	product.Image = req.Image
	result := *product
	s.flushLocked()
	s.mu.Unlock()

	s.broadcast(map[string]interface{}{
		"type":       "stock_update",
		"action":     "product_updated",
		"product_id": result.ID,
		"stock":      result.Stock,
	})
	return result, nil
}

func (s *POSService) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.st.Products {
		if s.st.Products[i].ID == id {
			s.st.Products = append(s.st.Products[:i], s.st.Products[i+1:]...)
			s.flushLocked()
			return nil
		}
	}
	return fmt.Errorf("%w: product %s", pos.ErrNotFound, id)
}

// ---- Customers ----

func (s *POSService) Customers() []model.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	customers := make([]model.Customer, len(s.st.Customers))
	copy(customers, s.st.Customers)
	return customers
}

func (s *POSService) CreateCustomer(req model.Customer) (model.Customer, error) {
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		first := errs[0]
		return model.Customer{}, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	req.ID = s.newID()
	s.st.Customers = append(s.st.Customers, req)
	s.flushLocked()
	return req, nil
}

func (s *POSService) UpdateCustomer(id string, req model.Customer) (model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	customer := s.st.FindCustomer(id)
	if customer == nil {
		return model.Customer{}, fmt.Errorf("%w: customer %s", pos.ErrNotFound, id)
	}
	customer.Name = req.Name
	customer.Phone = req.Phone
	customer.Email = req.Email
	s.flushLocked()
	return *customer, nil
}

func (s *POSService) DeleteCustomer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.st.Customers {
		if s.st.Customers[i].ID == id {
			s.st.Customers = append(s.st.Customers[:i], s.st.Customers[i+1:]...)
			s.flushLocked()
			return nil
		}
	}
	return fmt.Errorf("%w: customer %s", pos.ErrNotFound, id)
}

// ---- Users / settings ----

func (s *POSService) Users() []model.UserResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]model.UserResponse, len(s.st.Users))
	for i := range s.st.Users {
		users[i] = s.st.Users[i].ToResponse()
	}
	return users
}

func (s *POSService) UserByID(id string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := s.st.FindUser(id)
	if user == nil {
		return model.User{}, fmt.Errorf("%w: user %s", pos.ErrNotFound, id)
	}
	return *user, nil
}

func (s *POSService) UserByUsername(username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := s.st.FindUserByUsername(username)
	if user == nil {
		return model.User{}, fmt.Errorf("%w: user %s", pos.ErrNotFound, username)
	}
	return *user, nil
}

func (s *POSService) CreateUser(username, password, role string) (model.UserResponse, error) {
	user := model.User{Username: username, Role: role}
	if errs := validator.ValidateStruct(&user); len(errs) > 0 {
		first := errs[0]
		return model.UserResponse{}, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}
	if err := user.SetPassword(password); err != nil {
		return model.UserResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.st.FindUserByUsername(username) != nil {
		return model.UserResponse{}, ErrUsernameExists
	}
	user.ID = s.newID()
	s.st.Users = append(s.st.Users, user)
	s.flushLocked()
	return user.ToResponse(), nil
}

// RecordLogin marks the user as the active session owner. Called by the
// auth service after credentials check out.
func (s *POSService) RecordLogin(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.ActiveUserID = userID
	s.flushLocked()
}

func (s *POSService) Settings() model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Settings
}

func (s *POSService) UpdateSettings(req model.Settings) (model.Settings, error) {
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		first := errs[0]
		return model.Settings{}, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.Settings = req
	s.flushLocked()
	return s.st.Settings, nil
}
