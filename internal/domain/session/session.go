// Package session carries the signed-in operator through a request context.
package session

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/cashdesk-api/internal/domain/enum"
)

// PlaceholderOperator is recorded as the operator of actions taken without a session.
const PlaceholderOperator = "sin-operador"

// Session is the operator acting on a request.
type Session struct {
	UserID      uuid.UUID     `json:"user_id"`
	Username    string        `json:"username"`
	DisplayName string        `json:"display_name"`
	Role        enum.UserRole `json:"role"`
}

// OperatorName is the name stamped on records created by this session.
func (s *Session) OperatorName() string {
	if s == nil {
		return PlaceholderOperator
	}
	if s.DisplayName != "" {
		return s.DisplayName
	}
	if s.Username != "" {
		return s.Username
	}
	return PlaceholderOperator
}

// OperatorID returns the user id, or nil for an absent session.
func (s *Session) OperatorID() *uuid.UUID {
	if s == nil || s.UserID == uuid.Nil {
		return nil
	}
	id := s.UserID
	return &id
}

// Permissions lists what the session's role allows.
func (s *Session) Permissions() []string {
	if s == nil {
		return nil
	}
	return s.Role.Permissions()
}

// Can reports whether the session holds permission.
func (s *Session) Can(permission string) bool {
	for _, p := range s.Permissions() {
		if p == permission {
			return true
		}
	}
	return false
}

type ctxKey struct{}

// WithSession attaches s to ctx.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext extracts the session, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}
