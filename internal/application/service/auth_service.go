package service

import (
	"context"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sangkips/cashdesk-api/internal/domain/entity"
	"github.com/sangkips/cashdesk-api/internal/domain/enum"
	"github.com/sangkips/cashdesk-api/internal/domain/repository"
	"github.com/sangkips/cashdesk-api/internal/domain/session"
	"github.com/sangkips/cashdesk-api/pkg/apperror"
	"github.com/sangkips/cashdesk-api/pkg/utils"
)

// AuthService signs operators in and resolves sessions from tokens
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User        *entity.User
	Session     *session.Session
	AccessToken string
	ExpiresIn   int64
}

// Login checks credentials and issues an access token carrying the session
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, apperror.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.NewDataUnavailableError("Could not read users")
	}
	if user == nil || !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	sess := SessionForUser(user)
	token, err := s.jwtManager.GenerateAccessToken(utils.TokenSubject{
		UserID:      sess.UserID,
		Username:    sess.Username,
		DisplayName: sess.DisplayName,
		Role:        sess.Role.String(),
		Permissions: sess.Permissions(),
	})
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:        user,
		Session:     sess,
		AccessToken: token,
		ExpiresIn:   int64(s.jwtManager.AccessTokenExpiry().Seconds()),
	}, nil
}

// Authenticate turns a bearer token into the session it carries
func (s *AuthService) Authenticate(token string) (*session.Session, error) {
	claims, err := s.jwtManager.ValidateAccessToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperror.ErrTokenExpired
		}
		return nil, apperror.ErrInvalidToken
	}

	role, err := enum.ParseUserRole(claims.Role)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	return &session.Session{
		UserID:      claims.UserID,
		Username:    claims.Username,
		DisplayName: claims.DisplayName,
		Role:        role,
	}, nil
}

// Profile returns the session attached to ctx
func (s *AuthService) Profile(ctx context.Context) (*session.Session, error) {
	sess, ok := session.FromContext(ctx)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}
	return sess, nil
}

// SessionForUser builds the session of a signed-in user
func SessionForUser(u *entity.User) *session.Session {
	return &session.Session{
		UserID:      u.ID,
		Username:    u.Username,
		DisplayName: u.Name(),
		Role:        u.Role,
	}
}
