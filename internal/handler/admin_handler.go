package handler

import (
	"go-pos-ws/internal/model"
	"go-pos-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	pos *service.POSService
}

func NewAdminHandler(pos *service.POSService) *AdminHandler {
	return &AdminHandler{pos: pos}
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// GetUsers handles GET /api/v1/users
func (h *AdminHandler) GetUsers(c *fiber.Ctx) error {
	return c.JSON(h.pos.Users())
}

// CreateUser handles POST /api/v1/users
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user, err := h.pos.CreateUser(req.Username, req.Password, req.Role)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "User created", "data": user})
}

// GetSettings handles GET /api/v1/settings
func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	return c.JSON(h.pos.Settings())
}

// UpdateSettings handles PUT /api/v1/settings
func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	var req model.Settings
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	settings, err := h.pos.UpdateSettings(req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Settings updated", "data": settings})
}

// Flush handles POST /api/v1/admin/flush: a synchronous snapshot write,
// for operators who want the state on disk before a restart.
func (h *AdminHandler) Flush(c *fiber.Ctx) error {
	if err := h.pos.Flush(c.Context()); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Snapshot flush failed"})
	}
	return c.JSON(fiber.Map{"message": "Snapshot flushed"})
}
