package request

import "github.com/shopspring/decimal"

// ServiceTypeRequest represents a create/update service type request
type ServiceTypeRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
}

// ServiceRequest represents a create/update service request. Cost accepts
// a JSON number or string.
type ServiceRequest struct {
	Description string          `json:"description" binding:"required,max=255"`
	Cost        decimal.Decimal `json:"cost"`
	Status      string          `json:"status"`
	TypeID      *string         `json:"type_id" binding:"omitempty,uuid"`
}
