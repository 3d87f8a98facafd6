package service

import (
	"sort"
	"time"

	"go-pos-ws/internal/model"
)

// SalesSummary aggregates sales over a date range. Voided sales are
// excluded from every monetary figure and counted separately.
type SalesSummary struct {
	From            time.Time          `json:"from"`
	To              time.Time          `json:"to"`
	GrossTotal      float64            `json:"gross_total"`
	SaleCount       int                `json:"sale_count"`
	VoidedCount     int                `json:"voided_count"`
	ByPaymentMethod map[string]float64 `json:"by_payment_method"`
	TopProducts     []ProductSales     `json:"top_products"`
}

type ProductSales struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

// ShiftReport pairs a shift with its sales and, for closed shifts, the
// recomputed reconciliation figures.
type ShiftReport struct {
	Shift   model.Shift         `json:"shift"`
	Sales   []model.Sale        `json:"sales"`
	Summary *model.ShiftSummary `json:"summary,omitempty"`
}

type ReportService interface {
	SalesSummary(from, to time.Time) *SalesSummary
	ShiftReport(shiftID string) (*ShiftReport, error)
}

type reportService struct {
	pos *POSService
}

func NewReportService(pos *POSService) ReportService {
	return &reportService{pos: pos}
}

func (s *reportService) SalesSummary(from, to time.Time) *SalesSummary {
	summary := &SalesSummary{
		From:            from,
		To:              to,
		ByPaymentMethod: map[string]float64{},
	}
	perProduct := map[string]*ProductSales{}

	for _, sale := range s.pos.Sales() {
		if sale.Timestamp.Before(from) || sale.Timestamp.After(to) {
			continue
		}
		if sale.Status == model.SaleVoided {
			summary.VoidedCount++
			continue
		}
		summary.SaleCount++
		summary.GrossTotal += sale.Total
		summary.ByPaymentMethod[string(sale.PaymentMethod)] += sale.Total

		for _, item := range sale.Items {
			entry, ok := perProduct[item.ProductID]
			if !ok {
				entry = &ProductSales{ProductID: item.ProductID, Name: item.Name}
				perProduct[item.ProductID] = entry
			}
			entry.Quantity += item.Quantity
			entry.Revenue += float64(item.Quantity) * item.Price
		}
	}

	for _, entry := range perProduct {
		summary.TopProducts = append(summary.TopProducts, *entry)
	}
	sort.Slice(summary.TopProducts, func(i, j int) bool {
		if summary.TopProducts[i].Quantity != summary.TopProducts[j].Quantity {
			return summary.TopProducts[i].Quantity > summary.TopProducts[j].Quantity
		}
		return summary.TopProducts[i].ProductID < summary.TopProducts[j].ProductID
	})
	if len(summary.TopProducts) > 10 {
		summary.TopProducts = summary.TopProducts[:10]
	}

	return summary
}

func (s *reportService) ShiftReport(shiftID string) (*ShiftReport, error) {
	shift, err := s.pos.Shift(shiftID)
	if err != nil {
		return nil, err
	}

	report := &ShiftReport{Shift: shift}
	byID := map[string]model.Sale{}
	for _, sale := range s.pos.Sales() {
		byID[sale.ID] = sale
	}

	var salesTotal float64
	for _, saleID := range shift.SaleIDs {
		sale, ok := byID[saleID]
		if !ok {
			continue
		}
		report.Sales = append(report.Sales, sale)
		if sale.Status == model.SaleCompleted {
			salesTotal += sale.Total
		}
	}

	if shift.Status == model.ShiftClosed && shift.EndingCash != nil {
		expected := shift.StartingCash + salesTotal
		report.Summary = &model.ShiftSummary{
			ExpectedCash: expected,
			SalesTotal:   salesTotal,
			Discrepancy:  *shift.EndingCash - expected,
		}
	}

	return report, nil
}
