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

// CompanyService provides company operations. claimed carries the caller's
// user ID and the profile ID from the request path.
type CompanyService interface {
	// Create stamps c with the profile lineage, stores it and links it to
	// the profile.
	Create(ctx context.Context, claimed domain.Ancestry, c *domain.Company) (*domain.Company, error)
	Get(ctx context.Context, claimed domain.Ancestry, id uuid.UUID) (*domain.Company, error)
	ListByProfile(ctx context.Context, claimed domain.Ancestry) ([]*domain.Company, error)
	Update(ctx context.Context, claimed domain.Ancestry, id uuid.UUID, patch domain.CompanyPatch) (*domain.Company, error)
	Delete(ctx context.Context, claimed domain.Ancestry, id uuid.UUID) error
}

type companyServiceImpl struct {
	transactor store.Transactor
	cascade    *CascadeManager
	companies  store.CompanyStore
	guard      ancestorGuard
	logger     *slog.Logger
}

// NewCompanyService creates a CompanyService.
func NewCompanyService(
	transactor store.Transactor,
	cascade *CascadeManager,
	profiles store.ProfileStore,
	companies store.CompanyStore,
	logger *slog.Logger,
) CompanyService {
	if logger == nil {
		logger = slog.Default()
	}
	return &companyServiceImpl{
		transactor: transactor,
		cascade:    cascade,
		companies:  companies,
		guard:      ancestorGuard{profiles: profiles, companies: companies},
		logger:     logger.With(slog.String("component", "company_service")),
	}
}

func (s *companyServiceImpl) Create(
	ctx context.Context,
	claimed domain.Ancestry,
	c *domain.Company,
) (*domain.Company, error) {
	err := s.cascade.AddChild(ctx, store.ProfileCompanies, claimed.ProfileID, claimed,
		func(ctx context.Context, tx *sqlx.Tx, lineage domain.Ancestry) (uuid.UUID, error) {
			c.Stamp(lineage)
			if err := s.companies.WithTx(tx).Create(ctx, c); err != nil {
				return uuid.Nil, err
			}
			return c.ID, nil
		})
	if err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("company created",
		slog.String("company_id", c.ID.String()),
		slog.String("profile_id", c.ProfileID.String()))
	return c, nil
}

func (s *companyServiceImpl) Get(ctx context.Context, claimed domain.Ancestry, id uuid.UUID) (*domain.Company, error) {
	c, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.VerifyOwned(claimed, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *companyServiceImpl) ListByProfile(ctx context.Context, claimed domain.Ancestry) ([]*domain.Company, error) {
	if err := s.guard.requireProfile(ctx, claimed); err != nil {
		return nil, err
	}
	companies, err := s.companies.ListByProfile(ctx, claimed.UserID, claimed.ProfileID)
	if err != nil {
		return nil, wrapErr("company", "list", err)
	}
	return companies, nil
}

func (s *companyServiceImpl) Update(
	ctx context.Context,
	claimed domain.Ancestry,
	id uuid.UUID,
	patch domain.CompanyPatch,
) (*domain.Company, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Company
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		companies := s.companies.WithTx(tx)
		c, err := companies.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := domain.VerifyOwned(claimed, c); err != nil {
			return err
		}
		updated, err = companies.Update(ctx, id, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *companyServiceImpl) Delete(ctx context.Context, claimed domain.Ancestry, id uuid.UUID) error {
	return s.cascade.RemoveChild(ctx, store.ProfileCompanies, claimed.ProfileID, id, claimed,
		func(ctx context.Context, tx *sqlx.Tx) error {
			return s.companies.WithTx(tx).Delete(ctx, id, claimed.ProfileID)
		})
}
