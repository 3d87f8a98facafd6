package handler

import (
	"go-pos-ws/internal/model"
	"go-pos-ws/internal/service"
	"go-pos-ws/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type ShiftHandler struct {
	pos *service.POSService
}

func NewShiftHandler(pos *service.POSService) *ShiftHandler {
	return &ShiftHandler{pos: pos}
}

type StartShiftRequest struct {
	StartingCash float64 `json:"starting_cash" validate:"gte=0,finite"`
}

type EndShiftRequest struct {
	EndingCash float64 `json:"ending_cash" validate:"gte=0,finite"`
}

type EndShiftResponse struct {
	Shift   model.Shift        `json:"shift"`
	Summary model.ShiftSummary `json:"summary"`
}

// StartShift handles POST /api/v1/shifts. The shift is opened for the
// authenticated user; one open shift per user is enforced by the ledger.
func (h *ShiftHandler) StartShift(c *fiber.Ctx) error {
	var req StartShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		first := errs[0]
		return c.Status(400).JSON(fiber.Map{
			"error": "Validation failed: field '" + first.FailedField + "' failed on tag '" + first.Tag + "'",
		})
	}

	shift, err := h.pos.StartShift(getUserID(c), req.StartingCash)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Shift opened", "data": shift})
}

// EndShift handles POST /api/v1/shifts/:id/close
func (h *ShiftHandler) EndShift(c *fiber.Ctx) error {
	var req EndShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		first := errs[0]
		return c.Status(400).JSON(fiber.Map{
			"error": "Validation failed: field '" + first.FailedField + "' failed on tag '" + first.Tag + "'",
		})
	}

	shift, summary, err := h.pos.EndShift(c.Params("id"), req.EndingCash)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(EndShiftResponse{Shift: shift, Summary: summary})
}

// GetShifts handles GET /api/v1/shifts
func (h *ShiftHandler) GetShifts(c *fiber.Ctx) error {
	return c.JSON(h.pos.Shifts())
}

// GetCurrentShift handles GET /api/v1/shifts/current
func (h *ShiftHandler) GetCurrentShift(c *fiber.Ctx) error {
	shift, ok := h.pos.CurrentShift(getUserID(c))
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "No open shift"})
	}
	return c.JSON(shift)
}

// GetShift handles GET /api/v1/shifts/:id
func (h *ShiftHandler) GetShift(c *fiber.Ctx) error {
	shift, err := h.pos.Shift(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(shift)
}
