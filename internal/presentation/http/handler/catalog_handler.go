package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/cashdesk-api/internal/application/service"
	"github.com/sangkips/cashdesk-api/internal/domain/repository"
	"github.com/sangkips/cashdesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/cashdesk-api/internal/presentation/http/dto/response"
)

// CatalogHandler handles service types and services
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListTypes lists service types; ?active=true keeps only active ones
// @Summary List service types
// @Tags catalog
// @Security BearerAuth
// @Produce json
// @Param active query bool false "Only active types"
// @Success 200 {object} response.APIResponse
// @Router /service-types [get]
func (h *CatalogHandler) ListTypes(c *gin.Context) {
	types, err := h.catalogService.ListServiceTypes(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Service types retrieved successfully", types)
}

// CreateType creates a service type
func (h *CatalogHandler) CreateType(c *gin.Context) {
	input, ok := bindServiceType(c)
	if !ok {
		return
	}
	st, err := h.catalogService.CreateServiceType(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Service type created successfully", st)
}

// GetType retrieves a service type
func (h *CatalogHandler) GetType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	st, err := h.catalogService.GetServiceType(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Service type retrieved successfully", st)
}

// UpdateType updates a service type
func (h *CatalogHandler) UpdateType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	input, ok := bindServiceType(c)
	if !ok {
		return
	}
	st, err := h.catalogService.UpdateServiceType(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Service type updated successfully", st)
}

// DeleteType deletes an unused service type
func (h *CatalogHandler) DeleteType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.catalogService.DeleteServiceType(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Service type deleted successfully", nil)
}

// ListServices lists services
// @Summary List services
// @Tags catalog
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search in description and type"
// @Param type_id query string false "Service type"
// @Param status query string false "active or inactive"
// @Success 200 {object} response.APIResponse
// @Router /services [get]
func (h *CatalogHandler) ListServices(c *gin.Context) {
	filter := &repository.ServiceFilterParams{
		Pagination: pageParams(c),
		Search:     c.Query("search"),
	}
	if raw := c.Query("type_id"); raw != "" {
		typeID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid type_id")
			return
		}
		filter.TypeID = &typeID
	}
	if raw := c.Query("status"); raw != "" {
		status, err := parseStatus(raw)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.Status = &status
	}

	result, err := h.catalogService.ListServices(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Services retrieved successfully", result)
}

// CreateService creates a service
func (h *CatalogHandler) CreateService(c *gin.Context) {
	input, ok := bindService(c)
	if !ok {
		return
	}
	svc, err := h.catalogService.CreateService(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Service created successfully", svc)
}

// GetService retrieves a service
func (h *CatalogHandler) GetService(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc, err := h.catalogService.GetService(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Service retrieved successfully", svc)
}

// UpdateService updates a service
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	input, ok := bindService(c)
	if !ok {
		return
	}
	svc, err := h.catalogService.UpdateService(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Service updated successfully", svc)
}

// DeleteService deletes a service
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.catalogService.DeleteService(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Service deleted successfully", nil)
}

func bindServiceType(c *gin.Context) (*service.ServiceTypeInput, bool) {
	var req request.ServiceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return nil, false
	}
	status, err := parseStatus(req.Status)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return &service.ServiceTypeInput{Name: req.Name, Description: req.Description, Status: status}, true
}

func bindService(c *gin.Context) (*service.ServiceInput, bool) {
	var req request.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return nil, false
	}
	status, err := parseStatus(req.Status)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	input := &service.ServiceInput{Description: req.Description, Cost: req.Cost, Status: status}
	if req.TypeID != nil && *req.TypeID != "" {
		typeID, err := uuid.Parse(*req.TypeID)
		if err != nil {
			response.BadRequest(c, "Invalid type_id")
			return nil, false
		}
		input.TypeID = &typeID
	}
	return input, true
}
