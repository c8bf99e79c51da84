package testutils

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/job-seeker-api/internal/service/auth"
)

// MockJWTService provides a mock implementation of auth.JWTService for testing
type MockJWTService struct {
	ValidateTokenFunc func(ctx context.Context, token string) (*auth.Claims, error)
	GenerateTokenFunc func(ctx context.Context, userID uuid.UUID) (string, error)
}

var _ auth.JWTService = (*MockJWTService)(nil)

// ValidateToken implements the auth.JWTService interface for testing
func (m *MockJWTService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, token)
	}
	return nil, auth.ErrInvalidToken
}

// GenerateToken implements the auth.JWTService interface for testing
func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(ctx, userID)
	}
	return "token-" + userID.String(), nil
}

// AcceptingJWTService returns a mock that treats every token as belonging
// to userID.
func AcceptingJWTService(userID uuid.UUID) *MockJWTService {
	return &MockJWTService{
		ValidateTokenFunc: func(context.Context, string) (*auth.Claims, error) {
			return &auth.Claims{UserID: userID, Subject: userID.String()}, nil
		},
	}
}
