package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/job-seeker-api/internal/domain"
	"github.com/phrazzld/job-seeker-api/internal/platform/logger"
	"github.com/phrazzld/job-seeker-api/internal/store"
)

// ProfileService provides profile operations for an authenticated user.
// claimed carries the caller's user ID.
type ProfileService interface {
	Create(ctx context.Context, claimed domain.Ancestry, name, email string) (*domain.Profile, error)
	Get(ctx context.Context, claimed domain.Ancestry, id uuid.UUID) (*domain.Profile, error)
	List(ctx context.Context, claimed domain.Ancestry) ([]*domain.Profile, error)
	Update(ctx context.Context, claimed domain.Ancestry, id uuid.UUID, patch domain.ProfilePatch) (*domain.Profile, error)
	// Delete removes the profile together with its companies and their children.
	Delete(ctx context.Context, claimed domain.Ancestry, id uuid.UUID) error
	// EnsureDefault creates a profile for user if they have none yet.
	EnsureDefault(ctx context.Context, user *domain.User) (*domain.Profile, error)
}

type profileServiceImpl struct {
	transactor store.Transactor
	profiles   store.ProfileStore
	logger     *slog.Logger
}

// NewProfileService creates a ProfileService.
func NewProfileService(transactor store.Transactor, profiles store.ProfileStore, logger *slog.Logger) ProfileService {
	if logger == nil {
		logger = slog.Default()
	}
	return &profileServiceImpl{
		transactor: transactor,
		profiles:   profiles,
		logger:     logger.With(slog.String("component", "profile_service")),
	}
}

func (s *profileServiceImpl) Create(
	ctx context.Context,
	claimed domain.Ancestry,
	name, email string,
) (*domain.Profile, error) {
	p, err := domain.NewProfile(claimed.UserID, name, email)
	if err != nil {
		return nil, err
	}
	if err := s.profiles.Create(ctx, p); err != nil {
		return nil, wrapErr("profile", "create", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("profile created",
		slog.String("profile_id", p.ID.String()),
		slog.String("user_id", p.UserID.String()))
	return p, nil
}

func (s *profileServiceImpl) Get(ctx context.Context, claimed domain.Ancestry, id uuid.UUID) (*domain.Profile, error) {
	p, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.VerifyOwned(domain.Ancestry{UserID: claimed.UserID}, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *profileServiceImpl) List(ctx context.Context, claimed domain.Ancestry) ([]*domain.Profile, error) {
	profiles, err := s.profiles.ListByUser(ctx, claimed.UserID)
	if err != nil {
		return nil, wrapErr("profile", "list", err)
	}
	return profiles, nil
}

func (s *profileServiceImpl) Update(
	ctx context.Context,
	claimed domain.Ancestry,
	id uuid.UUID,
	patch domain.ProfilePatch,
) (*domain.Profile, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Profile
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		profiles := s.profiles.WithTx(tx)
		p, err := profiles.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := domain.VerifyOwned(domain.Ancestry{UserID: claimed.UserID}, p); err != nil {
			return err
		}
		updated, err = profiles.Update(ctx, id, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *profileServiceImpl) Delete(ctx context.Context, claimed domain.Ancestry, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		profiles := s.profiles.WithTx(tx)
		p, err := profiles.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := domain.VerifyOwned(domain.Ancestry{UserID: claimed.UserID}, p); err != nil {
			return err
		}
		return profiles.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	log.Info("profile deleted", slog.String("profile_id", id.String()))
	return nil
}

func (s *profileServiceImpl) EnsureDefault(ctx context.Context, user *domain.User) (*domain.Profile, error) {
	n, err := s.profiles.CountByUser(ctx, user.ID)
	if err != nil {
		return nil, wrapErr("profile", "ensure_default", err)
	}
	if n > 0 {
		return nil, nil
	}

	email := user.Email
	if email == "" {
		email = user.Username
	}
	return s.Create(ctx, domain.Ancestry{UserID: user.ID}, user.Username, email)
}
