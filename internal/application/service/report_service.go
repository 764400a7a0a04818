package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/sangkips/cashdesk-api/internal/domain/entity"
	"github.com/sangkips/cashdesk-api/internal/observability/metrics"
	"github.com/sangkips/cashdesk-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	closingsSheet = "Cierres"
	totalsSheet   = "Resumen"
	moneyFormat   = `"RD$"#,##0.00`
)

var closingColumns = []string{
	"Fecha", "Día", "Operador", "Apertura", "Cierre",
	"Ventas", "Efectivo", "Tarjeta", "Facturas", "Notas",
}

// ReportService exports closing history
type ReportService struct {
	closings *ClosingService
	company  string
}

// NewReportService creates a new report service
func NewReportService(closings *ClosingService, company string) *ReportService {
	return &ReportService{closings: closings, company: company}
}

// ClosingReport is a rendered workbook ready to be downloaded
type ClosingReport struct {
	Filename string
	Data     []byte
	Rows     int
}

// ExportClosings renders the latest closings (limit as in ListRecent) as an
// XLSX workbook.
func (s *ReportService) ExportClosings(ctx context.Context, limit int) (report *ClosingReport, err error) {
	started := time.Now()
	defer func() {
		result := metrics.ResultSuccess
		if err != nil {
			result = closingResult(err)
		}
		metrics.ObserveReportExport("xlsx", result, time.Since(started))
	}()

	closings, err := s.closings.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	now := s.closings.opts.Now().In(s.closings.Location())
	data, err := BuildClosingsXLSX(s.company, closings, s.closings.Location(), now)
	if err != nil {
		s.closings.log.Error().Err(err).Msg("closing report not rendered")
		return nil, apperror.ErrInternalServer
	}
	return &ClosingReport{
		Filename: fmt.Sprintf("cierres-%s.xlsx", now.Format("20060102-1504")),
		Data:     data,
		Rows:     len(closings),
	}, nil
}

// BuildClosingsXLSX writes one row per closing plus a totals sheet. Times
// are rendered in loc.
func BuildClosingsXLSX(company string, closings []entity.CashClosing, loc *time.Location, generated time.Time) ([]byte, error) {
	if loc == nil {
		loc = time.UTC
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", closingsSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(totalsSheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(moneyFormat)})
	if err != nil {
		return nil, err
	}

	for i, title := range closingColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(closingsSheet, cell, title)
	}
	_ = f.SetCellStyle(closingsSheet, "A1", "J1", bold)

	sales, cash, card := decimal.Zero, decimal.Zero, decimal.Zero
	invoices := 0
	for i, c := range closings {
		row := i + 2
		notes := ""
		if c.Notes != nil {
			notes = *c.Notes
		}
		values := []interface{}{
			c.Date.In(loc).Format("2006-01-02 15:04"),
			c.BusinessDay.Format(time.DateOnly),
			c.OperatorName,
			c.OpeningCash.InexactFloat64(),
			c.ClosingCash.InexactFloat64(),
			c.TotalSales.InexactFloat64(),
			c.TotalCash.InexactFloat64(),
			c.TotalCard.InexactFloat64(),
			c.InvoiceCount,
			notes,
		}
		start, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(closingsSheet, start, &values); err != nil {
			return nil, err
		}
		_ = f.SetCellStyle(closingsSheet, fmt.Sprintf("D%d", row), fmt.Sprintf("H%d", row), money)

		sales = sales.Add(c.TotalSales)
		cash = cash.Add(c.TotalCash)
		card = card.Add(c.TotalCard)
		invoices += c.InvoiceCount
	}
	_ = f.SetColWidth(closingsSheet, "A", "C", 18)
	_ = f.SetColWidth(closingsSheet, "D", "H", 14)
	_ = f.SetColWidth(closingsSheet, "J", "J", 40)

	_ = f.SetCellValue(totalsSheet, "A1", company)
	_ = f.SetCellStyle(totalsSheet, "A1", "A1", bold)
	_ = f.SetCellValue(totalsSheet, "A2", "Generado")
	_ = f.SetCellValue(totalsSheet, "B2", generated.Format("2006-01-02 15:04"))
	_ = f.SetCellValue(totalsSheet, "A3", "Cierres")
	_ = f.SetCellValue(totalsSheet, "B3", len(closings))
	_ = f.SetCellValue(totalsSheet, "A4", "Facturas")
	_ = f.SetCellValue(totalsSheet, "B4", invoices)
	_ = f.SetCellValue(totalsSheet, "A5", "Ventas")
	_ = f.SetCellValue(totalsSheet, "B5", sales.InexactFloat64())
	_ = f.SetCellValue(totalsSheet, "A6", "Efectivo")
	_ = f.SetCellValue(totalsSheet, "B6", cash.InexactFloat64())
	_ = f.SetCellValue(totalsSheet, "A7", "Tarjeta")
	_ = f.SetCellValue(totalsSheet, "B7", card.InexactFloat64())
	_ = f.SetCellStyle(totalsSheet, "B5", "B7", money)
	_ = f.SetColWidth(totalsSheet, "A", "B", 20)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func strPtr(s string) *string {
	return &s
}
