package handler

import (
	"go-pos-ws/internal/model"
	"go-pos-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	pos *service.POSService
}

func NewProductHandler(pos *service.POSService) *ProductHandler {
	return &ProductHandler{pos: pos}
}

// GetProducts handles GET /api/v1/products?barcode=...
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	if barcode := c.Query("barcode"); barcode != "" {
		product, err := h.pos.ProductByBarcode(barcode)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON([]model.Product{product})
	}
	return c.JSON(h.pos.Products())
}

// GetProduct handles GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.pos.Product(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(product)
}

// CreateProduct handles POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req model.Product
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.pos.CreateProduct(req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

// UpdateProduct handles PUT /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	var req model.Product
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.pos.UpdateProduct(c.Params("id"), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product updated", "data": product})
}

// DeleteProduct handles DELETE /api/v1/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.pos.DeleteProduct(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}
