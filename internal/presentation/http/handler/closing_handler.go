package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/cashdesk-api/internal/application/service"
	"github.com/sangkips/cashdesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/cashdesk-api/internal/presentation/http/dto/response"
	"github.com/sangkips/cashdesk-api/pkg/apperror"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ClosingHandler handles cash closing HTTP requests
type ClosingHandler struct {
	closingService *service.ClosingService
	reportService  *service.ReportService
	printerService *service.PrinterService
}

// NewClosingHandler creates a new closing handler
func NewClosingHandler(
	closingService *service.ClosingService,
	reportService *service.ReportService,
	printerService *service.PrinterService,
) *ClosingHandler {
	return &ClosingHandler{
		closingService: closingService,
		reportService:  reportService,
		printerService: printerService,
	}
}

// Preview returns the figures a closing would record right now
// @Summary Preview a cash closing
// @Tags closings
// @Security BearerAuth
// @Produce json
// @Param day query string false "Business day, YYYY-MM-DD"
// @Success 200 {object} response.APIResponse
// @Router /closings/preview [get]
func (h *ClosingHandler) Preview(c *gin.Context) {
	raw := c.Query("day")
	day, err := parseDay(&raw, h.closingService.Location())
	if err != nil {
		response.Error(c, err)
		return
	}
	preview, err := h.closingService.Preview(c.Request.Context(), day)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Closing preview retrieved successfully", preview)
}

// List returns the most recent closings, newest first
// @Summary List cash closings
// @Tags closings
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Number of closings"
// @Success 200 {object} response.APIResponse
// @Router /closings [get]
func (h *ClosingHandler) List(c *gin.Context) {
	limit, ok := limitParam(c)
	if !ok {
		return
	}
	closings, err := h.closingService.ListRecent(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Closings retrieved successfully", closings)
}

// Create records a cash closing
// @Summary Record a cash closing
// @Tags closings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Client-generated key"
// @Param request body request.CreateClosingRequest true "Closing data"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Failure 503 {object} response.APIResponse
// @Router /closings [post]
func (h *ClosingHandler) Create(c *gin.Context) {
	var req request.CreateClosingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	day, err := parseDay(req.Day, h.closingService.Location())
	if err != nil {
		response.Error(c, err)
		return
	}

	opening, err := parseAmount(req.ManualOpening, "manual_opening")
	if err != nil {
		response.Error(c, err)
		return
	}
	closing, err := parseAmount(req.ManualClosing, "manual_closing")
	if err != nil {
		response.Error(c, err)
		return
	}

	input := &service.CreateClosingInput{
		Day:           day,
		ManualOpening: opening,
		ManualClosing: closing,
		Notes:         req.Notes,
	}
	if req.ExpectedPriorID != nil {
		expected := uuid.Nil
		if raw := strings.TrimSpace(*req.ExpectedPriorID); raw != "" {
			if expected, err = uuid.Parse(raw); err != nil {
				response.Error(c, apperror.NewInvalidInputError("Invalid expected_prior_id",
					apperror.FieldError{Field: "expected_prior_id", Message: "must be a UUID"}))
				return
			}
		}
		input.ExpectedPriorID = &expected
	}

	created, err := h.closingService.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Closing recorded successfully", created)
}

// Get retrieves one closing
func (h *ClosingHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	closing, err := h.closingService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Closing retrieved successfully", closing)
}

// Report downloads the recent closings as a spreadsheet
// @Summary Export cash closings
// @Tags closings
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param limit query int false "Number of closings"
// @Success 200 {file} file
// @Router /closings/report.xlsx [get]
func (h *ClosingHandler) Report(c *gin.Context) {
	limit, ok := limitParam(c)
	if !ok {
		return
	}
	report, err := h.reportService.ExportClosings(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, report.Filename, xlsxContentType, report.Data)
}

// Print sends a closing to the printer
func (h *ClosingHandler) Print(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	result, err := h.printerService.PrintClosing(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	message := "Closing sent to printer"
	if !result.Printed {
		message = "Closing generated but not printed"
	}
	response.OK(c, message, result)
}

// limitParam reads ?limit=; absent means the configured default
func limitParam(c *gin.Context) (int, bool) {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		response.BadRequest(c, "Invalid limit")
		return 0, false
	}
	return limit, true
}
