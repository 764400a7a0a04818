package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sangkips/cashdesk-api/internal/domain/entity"
	"github.com/sangkips/cashdesk-api/internal/logger"
	"github.com/sangkips/cashdesk-api/internal/observability/metrics"
	"github.com/sangkips/cashdesk-api/pkg/money"
	"github.com/sangkips/cashdesk-api/pkg/printer"
)

// Warning returned alongside a document that could not be printed.
const printWarning = "El documento no se pudo imprimir; revise la impresora"

// PrinterService formats receipts and closing tickets and sends them to the
// thermal printer.
type PrinterService struct {
	printer  printer.Printer
	billing  *BillingService
	closings *ClosingService
	header   entity.ReceiptHeader
	width    int
	log      zerolog.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	billing *BillingService,
	closings *ClosingService,
	header entity.ReceiptHeader,
	width int,
) *PrinterService {
	return &PrinterService{
		printer:  p,
		billing:  billing,
		closings: closings,
		header:   header,
		width:    width,
		log:      logger.WithComponent("printer"),
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Target     string `json:"target,omitempty"`
}

// ReceiptPrint is the outcome of printing an invoice receipt.
type ReceiptPrint struct {
	Receipt *entity.Receipt `json:"receipt"`
	Printed bool            `json:"printed"`
	Warning string          `json:"warning,omitempty"`
}

// ClosingPrint is the outcome of printing a closing ticket.
type ClosingPrint struct {
	Closing *entity.CashClosing `json:"closing"`
	Printed bool                `json:"printed"`
	Warning string              `json:"warning,omitempty"`
}

// Status returns printer connection status.
func (s *PrinterService) Status(ctx context.Context) *PrinterStatus {
	st := s.printer.Status(ctx)
	return &PrinterStatus{
		Configured: st.Type != "none" && st.Type != "",
		Connected:  st.Connected,
		Type:       st.Type,
		Target:     st.Target,
	}
}

// PrintReceipt prints the receipt of an invoice. A printer failure is not an
// error: the receipt is returned with a warning so it can be shown instead.
func (s *PrinterService) PrintReceipt(ctx context.Context, invoiceID uuid.UUID) (*ReceiptPrint, error) {
	receipt, err := s.billing.GetReceipt(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	out := &ReceiptPrint{Receipt: receipt}
	if err := s.send(ctx, "receipt", FormatReceipt(receipt, s.width)); err != nil {
		s.log.Warn().Err(err).Str("invoice", receipt.InvoiceNo).Msg("receipt not printed")
		out.Warning = printWarning
		return out, nil
	}
	out.Printed = true
	return out, nil
}

// PrintClosing prints the ticket of a recorded closing.
func (s *PrinterService) PrintClosing(ctx context.Context, closingID uuid.UUID) (*ClosingPrint, error) {
	closing, err := s.closings.Get(ctx, closingID)
	if err != nil {
		return nil, err
	}

	out := &ClosingPrint{Closing: closing}
	data := FormatClosing(closing, s.header, s.closings.Location(), s.width)
	if err := s.send(ctx, "closing", data); err != nil {
		s.log.Warn().Err(err).Str("closing", closing.ID.String()).Msg("closing ticket not printed")
		out.Warning = printWarning
		return out, nil
	}
	out.Printed = true
	return out, nil
}

func (s *PrinterService) send(ctx context.Context, document string, data []byte) error {
	err := s.printer.Print(ctx, data)
	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultError
	}
	metrics.IncPrintJob(document, result)
	return err
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.Name).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.TaxID != "" {
		doc.TextF("RNC: %s", r.Header.TaxID)
	}
	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.TextF("Tel: %s", r.Header.Phone)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Factura:", r.InvoiceNo)
	if r.FiscalNumber != "" {
		doc.KeyValue("NCF:", r.FiscalNumber)
	}
	doc.KeyValue("Fecha:", r.Date)
	if r.Cashier != "" {
		doc.KeyValue("Cajero:", r.Cashier)
	}
	if r.Customer.Name != "" {
		doc.KeyValue("Cliente:", r.Customer.Name)
	}
	if r.Customer.TaxID != "" {
		doc.KeyValue("RNC cliente:", r.Customer.TaxID)
	}
	doc.KeyValue("Pago:", r.PaymentMethod)

	doc.Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Description, money.Format(item.Subtotal))
		if item.Quantity > 1 {
			doc.TextF("  @ %s c/u", money.Format(item.UnitPrice))
		}
	}

	doc.Separator('-')

	doc.KeyValue("Subtotal:", money.Format(r.Summary.Gross))
	if r.Summary.Tax.IsPositive() {
		doc.KeyValue(fmt.Sprintf("ITBIS %s%%:", r.Summary.TaxRate.String()), money.Format(r.Summary.Tax))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", money.Format(r.Summary.Total)).
		SetBold(false)

	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter).
		TextF("Verificación: %s", r.VerificationCode).
		LineFeed().
		Text("¡Gracias por preferirnos!").
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

// FormatClosing converts a closing into an ESC/POS ticket.
func FormatClosing(c *entity.CashClosing, header entity.ReceiptHeader, loc *time.Location, width int) []byte {
	if loc == nil {
		loc = time.UTC
	}
	doc := printer.NewDocument(width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text(header.Name).
		Text("CIERRE DE CAJA").
		SetBold(false).
		SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Día:", c.BusinessDay.Format("02/01/2006")).
		KeyValue("Realizado:", c.Date.In(loc).Format(entity.ReceiptDateLayout)).
		KeyValue("Operador:", c.OperatorName).
		Separator('-')

	doc.KeyValue("Apertura:", money.Format(c.OpeningCash)).
		KeyValue("Ventas:", money.Format(c.TotalSales)).
		KeyValue("Efectivo:", money.Format(c.TotalCash)).
		KeyValue("Tarjeta:", money.Format(c.TotalCard)).
		KeyValue("Facturas:", fmt.Sprintf("%d", c.InvoiceCount))

	doc.SetBold(true).
		KeyValue("EN CAJA:", money.Format(c.ClosingCash)).
		SetBold(false)

	if c.Notes != nil && *c.Notes != "" {
		doc.Separator('-').
			Text("Notas:").
			Text(*c.Notes)
	}

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
