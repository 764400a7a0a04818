package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/cashdesk-api/internal/domain/entity"
	"github.com/sangkips/cashdesk-api/internal/domain/enum"
	"github.com/sangkips/cashdesk-api/internal/domain/repository"
	"github.com/sangkips/cashdesk-api/internal/domain/session"
	"github.com/sangkips/cashdesk-api/internal/logger"
	"github.com/sangkips/cashdesk-api/pkg/apperror"
	"github.com/sangkips/cashdesk-api/pkg/pagination"
	"github.com/sangkips/cashdesk-api/pkg/utils"
)

const minPasswordLength = 4

// UserService administers operator accounts
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents the create user input
type CreateUserInput struct {
	Username    string
	DisplayName string
	Password    string
	Role        enum.UserRole
}

// UpdateUserInput represents the update user input; nil fields are left unchanged
type UpdateUserInput struct {
	DisplayName *string
	Password    *string
	Role        *enum.UserRole
}

// CreateUser creates a new operator account
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	username := strings.TrimSpace(input.Username)
	var fields []apperror.FieldError
	if username == "" {
		fields = append(fields, apperror.FieldError{Field: "username", Message: "Username is required"})
	}
	if len(input.Password) < minPasswordLength {
		fields = append(fields, apperror.FieldError{Field: "password", Message: "Password must have at least 4 characters"})
	}
	if len(fields) > 0 {
		return nil, apperror.NewValidationError(fields)
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Username already exists")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:    username,
		DisplayName: strings.TrimSpace(input.DisplayName),
		Password:    hashed,
		Role:        input.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// ListUsers lists operator accounts
func (s *UserService) ListUsers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.User], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	users, total, err := s.userRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(users, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// UpdateUser changes display name, role or password
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, input *UpdateUserInput) (*entity.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.Password != nil {
		if len(*input.Password) < minPasswordLength {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "password", Message: "Password must have at least 4 characters"},
			})
		}
		hashed, err := utils.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}
	if input.Role != nil && *input.Role != user.Role {
		if user.IsAdmin() {
			if err := s.ensureAnotherAdmin(ctx, user.ID); err != nil {
				return nil, err
			}
		}
		user.Role = *input.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account. Operators cannot delete themselves and the
// last admin cannot be removed.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if sess, ok := session.FromContext(ctx); ok && sess.UserID == id {
		return apperror.NewBadRequestError("You cannot delete your own account")
	}

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if user.IsAdmin() {
		if err := s.ensureAnotherAdmin(ctx, user.ID); err != nil {
			return err
		}
	}
	return s.userRepo.Delete(ctx, id)
}

// EnsureDefaultAdmin creates the configured admin account when no user has
// that username. An existing account is left untouched.
func (s *UserService) EnsureDefaultAdmin(ctx context.Context, username, password string) (bool, error) {
	log := logger.WithComponent("users")

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	if password == "admin" {
		log.Warn().Str("username", username).Msg("default admin created with the default password; change it")
	}
	if _, err := s.CreateUser(ctx, &CreateUserInput{
		Username:    username,
		DisplayName: "Administrador",
		Password:    password,
		Role:        enum.RoleAdmin,
	}); err != nil {
		return false, err
	}
	log.Info().Str("username", username).Msg("default admin created")
	return true, nil
}

func (s *UserService) ensureAnotherAdmin(ctx context.Context, excluding uuid.UUID) error {
	params := &pagination.PaginationParams{Page: 1, PerPage: pagination.MaxPerPage}
	for {
		users, total, err := s.userRepo.List(ctx, params, "")
		if err != nil {
			return err
		}
		for _, u := range users {
			if u.ID != excluding && u.IsAdmin() {
				return nil
			}
		}
		if int64(params.Page*params.PerPage) >= total {
			return apperror.NewBadRequestError("At least one admin account must remain")
		}
		params.Page++
	}
}
