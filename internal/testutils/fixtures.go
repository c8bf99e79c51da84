package testutils

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/job-seeker-api/internal/config"
	"github.com/phrazzld/job-seeker-api/internal/domain"
	"github.com/phrazzld/job-seeker-api/internal/service/auth"
	"github.com/phrazzld/job-seeker-api/internal/store"
	"github.com/stretchr/testify/require"
)

// TestJWTSecret is a signing key suitable only for tests.
const TestJWTSecret = "test-jwt-secret-thatis32characterslong"

// NewTestJWTService creates a JWT service signing with TestJWTSecret.
func NewTestJWTService(t *testing.T) auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            TestJWTSecret,
		TokenLifetimeMinutes: 60,
		BcryptCost:           4,
	})
	require.NoError(t, err, "Failed to create JWT service")
	return svc
}

// MustInsertUser stores a user with a placeholder password hash.
func MustInsertUser(ctx context.Context, t *testing.T, users store.UserStore, username string) *domain.User {
	t.Helper()
	u, err := domain.NewUser(username, fmt.Sprintf("%s@example.com", username), "password123")
	require.NoError(t, err, "Failed to build test user")
	u.HashedPassword = "$2a$04$placeholder"
	u.Password = ""
	require.NoError(t, users.Create(ctx, u), "Failed to insert test user")
	return u
}

// MustInsertProfile stores a profile for userID.
func MustInsertProfile(ctx context.Context, t *testing.T, profiles store.ProfileStore, userID uuid.UUID) *domain.Profile {
	t.Helper()
	p, err := domain.NewProfile(userID, "Test Profile "+uuid.NewString()[:8], "profile@example.com")
	require.NoError(t, err, "Failed to build test profile")
	require.NoError(t, profiles.Create(ctx, p), "Failed to insert test profile")
	return p
}

// NewTestCompany returns an unsaved company with the required fields set.
func NewTestCompany(name string) *domain.Company {
	return &domain.Company{
		CompanyName: name,
		Website:     "https://" + name + ".example.com",
		City:        "Springfield",
	}
}

// NewTestContact returns an unsaved contact.
func NewTestContact(name string) *domain.Contact {
	return &domain.Contact{Name: name, JobTitle: "Recruiter", Email: "recruiter@example.com"}
}

// NewTestJob returns an unsaved job whose link is unique.
func NewTestJob(title string) *domain.Job {
	return &domain.Job{
		Title:  title,
		Link:   "https://jobs.example.com/" + uuid.NewString(),
		Status: "applied",
		Type:   "full-time",
		Tags:   []string{"go"},
	}
}

// NewTestEvent returns an unsaved event dated at.
func NewTestEvent(title string, at time.Time) *domain.Event {
	return &domain.Event{EventType: "interview", EventTitle: title, EventDate: at}
}
