package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/cashdesk-api/internal/domain/enum"
	"gorm.io/gorm"
)

// User is an operator account that can sign in and perform closings
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Username    string         `gorm:"size:100;uniqueIndex;not null" json:"username"`
	DisplayName string         `gorm:"size:255" json:"display_name"`
	Password    string         `gorm:"size:255;not null" json:"-"`
	Role        enum.UserRole  `gorm:"not null;default:0" json:"role"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// Name returns the display name, falling back to the username.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == enum.RoleAdmin
}
