package handler

import (
	"go-pos-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	pos *service.POSService
}

func NewCartHandler(pos *service.POSService) *CartHandler {
	return &CartHandler{pos: pos}
}

type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	return c.JSON(h.pos.CartView(getUserID(c)))
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.ProductID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "product_id is required"})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	view, err := h.pos.AddToCart(getUserID(c), req.ProductID, req.Quantity)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(view)
}

// UpdateItem handles PUT /api/v1/cart/items/:productId. Out-of-range
// quantities leave the cart unchanged; the response carries the cart as
// it stands either way.
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	view := h.pos.UpdateCartQuantity(getUserID(c), c.Params("productId"), req.Quantity)
	return c.JSON(view)
}

// RemoveItem handles DELETE /api/v1/cart/items/:productId
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	view := h.pos.RemoveFromCart(getUserID(c), c.Params("productId"))
	return c.JSON(view)
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	h.pos.ClearCart(getUserID(c))
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}
