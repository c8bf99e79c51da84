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

// JobService provides job posting operations. claimed carries the caller's
// user ID and the profile and company IDs from the request path; listing by
// profile ignores the company link.
type JobService interface {
	Create(ctx context.Context, claimed domain.Ancestry, j *domain.Job) (*domain.Job, error)
	Get(ctx context.Context, claimed domain.Ancestry, id uuid.UUID) (*domain.Job, error)
	ListByProfile(ctx context.Context, claimed domain.Ancestry) ([]*domain.Job, error)
	ListByCompany(ctx context.Context, claimed domain.Ancestry) ([]*domain.Job, error)
	Update(ctx context.Context, claimed domain.Ancestry, id uuid.UUID, patch domain.JobPatch) (*domain.Job, error)
	Delete(ctx context.Context, claimed domain.Ancestry, id uuid.UUID) error
}

type jobServiceImpl struct {
	transactor store.Transactor
	cascade    *CascadeManager
	jobs       store.JobStore
	guard      ancestorGuard
	logger     *slog.Logger
}

// NewJobService creates a JobService.
func NewJobService(
	transactor store.Transactor,
	cascade *CascadeManager,
	profiles store.ProfileStore,
	companies store.CompanyStore,
	jobs store.JobStore,
	logger *slog.Logger,
) JobService {
	if logger == nil {
		logger = slog.Default()
	}
	return &jobServiceImpl{
		transactor: transactor,
		cascade:    cascade,
		jobs:       jobs,
		guard:      ancestorGuard{profiles: profiles, companies: companies},
		logger:     logger.With(slog.String("component", "job_service")),
	}
}

func (s *jobServiceImpl) Create(
	ctx context.Context,
	claimed domain.Ancestry,
	j *domain.Job,
) (*domain.Job, error) {
	err := s.cascade.AddChild(ctx, store.CompanyJobs, claimed.CompanyID, claimed,
		func(ctx context.Context, tx *sqlx.Tx, lineage domain.Ancestry) (uuid.UUID, error) {
			j.Stamp(lineage)
			if err := s.jobs.WithTx(tx).Create(ctx, j); err != nil {
				return uuid.Nil, err
			}
			return j.ID, nil
		})
	if err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("job created",
		slog.String("job_id", j.ID.String()),
		slog.String("company_id", j.CompanyID.String()))
	return j, nil
}

func (s *jobServiceImpl) Get(ctx context.Context, claimed domain.Ancestry, id uuid.UUID) (*domain.Job, error) {
	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.VerifyOwned(claimed, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *jobServiceImpl) ListByProfile(ctx context.Context, claimed domain.Ancestry) ([]*domain.Job, error) {
	if err := s.guard.requireProfile(ctx, claimed); err != nil {
		return nil, err
	}
	jobs, err := s.jobs.ListByProfile(ctx, claimed.UserID, claimed.ProfileID)
	return jobs, wrapErr("job", "list_by_profile", err)
}

func (s *jobServiceImpl) ListByCompany(ctx context.Context, claimed domain.Ancestry) ([]*domain.Job, error) {
	if err := s.guard.requireCompany(ctx, claimed); err != nil {
		return nil, err
	}
	jobs, err := s.jobs.ListByCompany(ctx, claimed.UserID, claimed.CompanyID)
	return jobs, wrapErr("job", "list_by_company", err)
}

func (s *jobServiceImpl) Update(
	ctx context.Context,
	claimed domain.Ancestry,
	id uuid.UUID,
	patch domain.JobPatch,
) (*domain.Job, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Job
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		jobs := s.jobs.WithTx(tx)
		j, err := jobs.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := domain.VerifyOwned(claimed, j); err != nil {
			return err
		}
		updated, err = jobs.Update(ctx, id, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *jobServiceImpl) Delete(ctx context.Context, claimed domain.Ancestry, id uuid.UUID) error {
	return s.cascade.RemoveChild(ctx, store.CompanyJobs, claimed.CompanyID, id, claimed,
		func(ctx context.Context, tx *sqlx.Tx) error {
			return s.jobs.WithTx(tx).Delete(ctx, id, claimed.CompanyID)
		})
}
