package handler

import (
	"errors"

	"go-pos-ws/internal/pos"
	"go-pos-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

// getUserID reads the acting user from the JWT context set by RequireAuth.
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return ""
	}
	return userID.(string)
}

// statusForError maps core failure kinds onto HTTP status codes. Every
// other failure is a plain bad request.
func statusForError(err error) int {
	switch {
	case errors.Is(err, pos.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, pos.ErrStockConflict),
		errors.Is(err, pos.ErrAlreadyVoided),
		errors.Is(err, pos.ErrAlreadyOpen),
		errors.Is(err, pos.ErrNotOpen),
		errors.Is(err, service.ErrBarcodeExists),
		errors.Is(err, service.ErrUsernameExists):
		return fiber.StatusConflict
	default:
		return fiber.StatusBadRequest
	}
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{"error": err.Error()})
}
