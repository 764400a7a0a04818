package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/cashdesk-api/internal/application/service"
	"github.com/sangkips/cashdesk-api/internal/domain/cashclosing"
	"github.com/sangkips/cashdesk-api/internal/domain/enum"
	"github.com/sangkips/cashdesk-api/internal/domain/repository"
	"github.com/sangkips/cashdesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/cashdesk-api/internal/presentation/http/dto/response"
	"github.com/sangkips/cashdesk-api/pkg/apperror"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	billingService *service.BillingService
	aggregator     *service.InvoiceAggregator
	printerService *service.PrinterService
	loc            *time.Location
	now            func() time.Time
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(
	billingService *service.BillingService,
	aggregator *service.InvoiceAggregator,
	printerService *service.PrinterService,
	loc *time.Location,
) *InvoiceHandler {
	if loc == nil {
		loc = time.Local
	}
	return &InvoiceHandler{
		billingService: billingService,
		aggregator:     aggregator,
		printerService: printerService,
		loc:            loc,
		now:            time.Now,
	}
}

// InvoiceSummary is the aggregate of invoices issued in a window
type InvoiceSummary struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	cashclosing.Summary
}

// List handles listing invoices
// @Summary List invoices
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param search query string false "Invoice number, NCF or customer"
// @Param payment_method query string false "cash or card"
// @Param customer_id query string false "Customer ID"
// @Param start query string false "YYYY-MM-DD or RFC 3339"
// @Param end query string false "YYYY-MM-DD or RFC 3339"
// @Success 200 {object} response.APIResponse
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	filter := &repository.InvoiceFilterParams{
		Pagination: pageParams(c),
		Search:     c.Query("search"),
	}
	if raw := c.Query("payment_method"); raw != "" {
		method, err := enum.ParsePaymentMethod(raw)
		if err != nil {
			response.BadRequest(c, "Invalid payment_method")
			return
		}
		filter.PaymentMethod = &method
	}
	if raw := c.Query("customer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid customer_id")
			return
		}
		filter.CustomerID = &id
	}
	var err error
	if filter.StartDate, err = parseBound(c.Query("start"), h.loc, false); err != nil {
		response.Error(c, err)
		return
	}
	if filter.EndDate, err = parseBound(c.Query("end"), h.loc, true); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.billingService.ListInvoices(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Create handles issuing an invoice
// @Summary Issue an invoice
// @Tags invoices
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Client-generated key"
// @Param request body request.CreateInvoiceRequest true "Invoice data"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	method, err := enum.ParsePaymentMethod(req.PaymentMethod)
	if err != nil || !method.IsKnown() {
		response.Error(c, apperror.NewInvalidInputError("Payment method must be cash or card",
			apperror.FieldError{Field: "payment_method", Message: "must be cash or card"}))
		return
	}

	input := &service.CreateInvoiceInput{
		ServiceID:             uuid.MustParse(req.ServiceID),
		Quantity:              req.Quantity,
		RequiresFiscalReceipt: req.RequiresFiscalReceipt,
		PaymentMethod:         method,
	}
	if req.CustomerID != nil && *req.CustomerID != "" {
		id := uuid.MustParse(*req.CustomerID)
		input.CustomerID = &id
	}
	if req.Customer != nil {
		input.Customer = &service.InvoiceCustomerInput{
			Name:    req.Customer.Name,
			RNC:     req.Customer.RNC,
			Address: req.Customer.Address,
			Phone:   req.Customer.Phone,
		}
	}

	out, err := h.billingService.CreateInvoice(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Invoice created successfully", out)
}

// Get handles retrieving an invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	inv, err := h.billingService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice retrieved successfully", inv)
}

// Receipt returns the receipt of an invoice without printing it
func (h *InvoiceHandler) Receipt(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	receipt, err := h.billingService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt retrieved successfully", receipt)
}

// Print sends the receipt of an invoice to the printer
func (h *InvoiceHandler) Print(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	result, err := h.printerService.PrintReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	message := "Receipt sent to printer"
	if !result.Printed {
		message = "Receipt generated but not printed"
	}
	response.OK(c, message, result)
}

// Summary aggregates invoices between start and end; both default to the
// bounds of the current business day.
// @Summary Invoice totals
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param start query string false "YYYY-MM-DD or RFC 3339"
// @Param end query string false "YYYY-MM-DD or RFC 3339"
// @Success 200 {object} response.APIResponse
// @Failure 503 {object} response.APIResponse
// @Router /invoices/summary [get]
func (h *InvoiceHandler) Summary(c *gin.Context) {
	start, end := cashclosing.DayWindow(h.now(), h.loc)

	from, err := parseBound(c.Query("start"), h.loc, false)
	if err != nil {
		response.Error(c, err)
		return
	}
	to, err := parseBound(c.Query("end"), h.loc, true)
	if err != nil {
		response.Error(c, err)
		return
	}
	if from != nil {
		start = *from
	}
	if to != nil {
		end = *to
	}
	if end.Before(start) {
		response.Error(c, apperror.NewInvalidInputError("End must not be before start"))
		return
	}

	summary, err := h.aggregator.Summarize(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice summary retrieved successfully", InvoiceSummary{Start: start, End: end, Summary: summary})
}
