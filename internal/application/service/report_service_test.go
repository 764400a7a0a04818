package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/sangkips/cashdesk-api/internal/domain/entity"
	"github.com/sangkips/cashdesk-api/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildClosingsXLSX(t *testing.T) {
	notes := "sin novedad"
	closings := []entity.CashClosing{
		{
			Date:         testNow,
			BusinessDay:  testNow,
			OperatorName: "María Pérez",
			OpeningCash:  dec("1000"),
			ClosingCash:  dec("1450"),
			TotalSales:   dec("700"),
			TotalCash:    dec("450"),
			TotalCard:    dec("250"),
			InvoiceCount: 3,
			Notes:        &notes,
		},
		{
			Date:         testNow.AddDate(0, 0, -1),
			BusinessDay:  testNow.AddDate(0, 0, -1),
			OperatorName: "sin-operador",
			ClosingCash:  dec("1000"),
			TotalSales:   dec("100"),
			TotalCash:    dec("100"),
			InvoiceCount: 1,
		},
	}

	data, err := BuildClosingsXLSX("Ayuntamiento", closings, ast, testNow)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(closingsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, closingColumns, rows[0])
	assert.Equal(t, "2024-03-05 18:00", rows[1][0])
	assert.Equal(t, "María Pérez", rows[1][2])
	assert.Equal(t, "sin novedad", rows[1][9])

	raw, err := f.GetCellValue(closingsSheet, "E2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "1450", raw)

	sales, err := f.GetCellValue(totalsSheet, "B5", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "800", sales)
	count, err := f.GetCellValue(totalsSheet, "B4")
	require.NoError(t, err)
	assert.Equal(t, "4", count)
}

func TestExportClosings(t *testing.T) {
	store := memory.NewStore()
	closings := newClosingService(store.Invoices, store.Closings)
	_, err := closings.Create(context.Background(), &CreateClosingInput{})
	require.NoError(t, err)

	report, err := NewReportService(closings, "Ayuntamiento").ExportClosings(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Rows)
	assert.Equal(t, "cierres-20240305-1800.xlsx", report.Filename)
	assert.True(t, strings.HasPrefix(string(report.Data), "PK"))
}

func TestExportClosingsUnavailable(t *testing.T) {
	store := memory.NewStore()
	closings := newClosingService(store.Invoices, failingClosingReads{store.Closings})

	_, err := NewReportService(closings, "Ayuntamiento").ExportClosings(context.Background(), 0)
	assertAppError(t, err, 503, "data_unavailable")
}
