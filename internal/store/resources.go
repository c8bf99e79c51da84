package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/job-seeker-api/internal/domain"
)

// UserStore persists accounts. Users are never updated or deleted through
// the API.
type UserStore interface {
	// Create stores user with its already hashed password. Returns
	// ErrUsernameExists or ErrEmailExists when either is taken.
	Create(ctx context.Context, user *domain.User) error
	// GetByID and GetByUsername return ErrUserNotFound on a miss.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	WithTx(tx *sqlx.Tx) UserStore
}

// ProfileStore persists profiles.
type ProfileStore interface {
	Create(ctx context.Context, profile *domain.Profile) error
	// GetByID returns ErrProfileNotFound if the profile does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Profile, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	// Update applies the set fields of patch and returns the stored result.
	Update(ctx context.Context, id uuid.UUID, patch domain.ProfilePatch) (*domain.Profile, error)
	// Delete removes the profile; its companies and their children go with it.
	Delete(ctx context.Context, id uuid.UUID) error
	WithTx(tx *sqlx.Tx) ProfileStore
}

// CompanyStore persists companies.
type CompanyStore interface {
	Create(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	ListByProfile(ctx context.Context, userID, profileID uuid.UUID) ([]*domain.Company, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.CompanyPatch) (*domain.Company, error)
	// Delete removes the company only if it belongs to profileID. Deleting a
	// company that is absent is not an error.
	Delete(ctx context.Context, id, profileID uuid.UUID) error
	WithTx(tx *sqlx.Tx) CompanyStore
}

// ContactStore persists contacts.
type ContactStore interface {
	Create(ctx context.Context, contact *domain.Contact) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error)
	ListByProfile(ctx context.Context, userID, profileID uuid.UUID) ([]*domain.Contact, error)
	ListByCompany(ctx context.Context, userID, companyID uuid.UUID) ([]*domain.Contact, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.ContactPatch) (*domain.Contact, error)
	// Delete removes the contact only if it belongs to companyID.
	Delete(ctx context.Context, id, companyID uuid.UUID) error
	WithTx(tx *sqlx.Tx) ContactStore
}

// JobStore persists job postings. Links are unique across all jobs.
type JobStore interface {
	// Create returns ErrJobLinkExists when the link is already stored.
	Create(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	ListByProfile(ctx context.Context, userID, profileID uuid.UUID) ([]*domain.Job, error)
	ListByCompany(ctx context.Context, userID, companyID uuid.UUID) ([]*domain.Job, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.JobPatch) (*domain.Job, error)
	Delete(ctx context.Context, id, companyID uuid.UUID) error
	WithTx(tx *sqlx.Tx) JobStore
}

// EventStore persists company events.
type EventStore interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	ListByProfile(ctx context.Context, userID, profileID uuid.UUID) ([]*domain.Event, error)
	ListByCompany(ctx context.Context, userID, companyID uuid.UUID) ([]*domain.Event, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.EventPatch) (*domain.Event, error)
	Delete(ctx context.Context, id, companyID uuid.UUID) error
	WithTx(tx *sqlx.Tx) EventStore
}
