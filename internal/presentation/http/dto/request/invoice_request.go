package request

// InvoiceCustomerRequest is a customer typed in at the counter
type InvoiceCustomerRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	RNC     string `json:"rnc" binding:"max=20"`
	Address string `json:"address"`
	Phone   string `json:"phone" binding:"max=50"`
}

// CreateInvoiceRequest represents a create invoice request
type CreateInvoiceRequest struct {
	ServiceID             string                  `json:"service_id" binding:"required,uuid"`
	Quantity              int                     `json:"quantity" binding:"omitempty,min=1"`
	CustomerID            *string                 `json:"customer_id" binding:"omitempty,uuid"`
	Customer              *InvoiceCustomerRequest `json:"customer"`
	RequiresFiscalReceipt bool                    `json:"requires_fiscal_receipt"`
	PaymentMethod         string                  `json:"payment_method" binding:"required"`
}
