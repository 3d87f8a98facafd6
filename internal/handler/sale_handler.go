package handler

import (
	"go-pos-ws/internal/model"
	"go-pos-ws/internal/service"
	"go-pos-ws/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type SaleHandler struct {
	pos *service.POSService
}

func NewSaleHandler(pos *service.POSService) *SaleHandler {
	return &SaleHandler{pos: pos}
}

type CheckoutRequest struct {
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=cash card ewallet"`
	CashGiven     float64 `json:"cash_given" validate:"gte=0,finite"`
}

type CheckoutResponse struct {
	Sale   model.Sale `json:"sale"`
	Change float64    `json:"change"`
}

// Checkout handles POST /api/v1/checkout
func (h *SaleHandler) Checkout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		first := errs[0]
		return c.Status(400).JSON(fiber.Map{
			"error": "Validation failed: field '" + first.FailedField + "' failed on tag '" + first.Tag + "'",
		})
	}

	sale, err := h.pos.Checkout(getUserID(c), model.PaymentMethod(req.PaymentMethod), req.CashGiven)
	if err != nil {
		return fail(c, err)
	}

	// Change is a display figure for the receipt, not stored state.
	change := 0.0
	if sale.PaymentMethod == model.PaymentCash {
		change = sale.CashGiven - sale.Total
	}
	return c.Status(201).JSON(CheckoutResponse{Sale: sale, Change: change})
}

// GetSales handles GET /api/v1/sales
func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	return c.JSON(h.pos.Sales())
}

// GetSale handles GET /api/v1/sales/:id
func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	sale, err := h.pos.Sale(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sale)
}

// VoidSale handles POST /api/v1/sales/:id/void
func (h *SaleHandler) VoidSale(c *fiber.Ctx) error {
	sale, err := h.pos.VoidSale(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Sale voided", "data": sale})
}
