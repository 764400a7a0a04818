package request

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required"`
}

// CreateUserRequest represents an admin request to add an operator
type CreateUserRequest struct {
	Username    string `json:"username" binding:"required,min=2,max=100"`
	DisplayName string `json:"display_name" binding:"max=255"`
	Password    string `json:"password" binding:"required,min=4"`
	Role        string `json:"role" binding:"omitempty,oneof=admin user"`
}

// UpdateUserRequest represents an admin request to change an operator
type UpdateUserRequest struct {
	DisplayName *string `json:"display_name" binding:"omitempty,max=255"`
	Password    *string `json:"password" binding:"omitempty,min=4"`
	Role        *string `json:"role" binding:"omitempty,oneof=admin user"`
}
