package handler

import (
	"time"

	"go-pos-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reports service.ReportService
}

func NewReportHandler(reports service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// GetSalesSummary handles GET /api/v1/reports/sales?range=7d
func (h *ReportHandler) GetSalesSummary(c *fiber.Ctx) error {
	rangeParam := c.Query("range", "1d")
	now := time.Now()
	var from time.Time

	switch rangeParam {
	case "1d":
		from = now.AddDate(0, 0, -1)
	case "7d":
		from = now.AddDate(0, 0, -7)
	case "1m":
		from = now.AddDate(0, -1, 0)
	case "3m":
		from = now.AddDate(0, -3, 0)
	default:
		from = now.AddDate(0, 0, -1)
	}

	return c.JSON(h.reports.SalesSummary(from, now))
}

// GetShiftReport handles GET /api/v1/reports/shifts/:id
func (h *ReportHandler) GetShiftReport(c *fiber.Ctx) error {
	report, err := h.reports.ShiftReport(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(report)
}
