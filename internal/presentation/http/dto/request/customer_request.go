package request

// CustomerRequest represents a create/update customer request
type CustomerRequest struct {
	Name    string  `json:"name" binding:"required,max=255"`
	RNC     *string `json:"rnc" binding:"omitempty,max=20"`
	Address *string `json:"address"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Email   *string `json:"email" binding:"omitempty,email"`
}
