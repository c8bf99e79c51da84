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

// EventService provides event operations. claimed carries the caller's
// user ID and the profile and company IDs from the request path; listing by
// profile ignores the company link.
type EventService interface {
	Create(ctx context.Context, claimed domain.Ancestry, e *domain.Event) (*domain.Event, error)
	Get(ctx context.Context, claimed domain.Ancestry, id uuid.UUID) (*domain.Event, error)
	ListByProfile(ctx context.Context, claimed domain.Ancestry) ([]*domain.Event, error)
	ListByCompany(ctx context.Context, claimed domain.Ancestry) ([]*domain.Event, error)
	Update(ctx context.Context, claimed domain.Ancestry, id uuid.UUID, patch domain.EventPatch) (*domain.Event, error)
	Delete(ctx context.Context, claimed domain.Ancestry, id uuid.UUID) error
}

type eventServiceImpl struct {
	transactor store.Transactor
	cascade    *CascadeManager
	events     store.EventStore
	guard      ancestorGuard
	logger     *slog.Logger
}

// NewEventService creates a EventService.
func NewEventService(
	transactor store.Transactor,
	cascade *CascadeManager,
	profiles store.ProfileStore,
	companies store.CompanyStore,
	events store.EventStore,
	logger *slog.Logger,
) EventService {
	if logger == nil {
		logger = slog.Default()
	}
	return &eventServiceImpl{
		transactor: transactor,
		cascade:    cascade,
		events:     events,
		guard:      ancestorGuard{profiles: profiles, companies: companies},
		logger:     logger.With(slog.String("component", "event_service")),
	}
}

func (s *eventServiceImpl) Create(
	ctx context.Context,
	claimed domain.Ancestry,
	e *domain.Event,
) (*domain.Event, error) {
	err := s.cascade.AddChild(ctx, store.CompanyEvents, claimed.CompanyID, claimed,
		func(ctx context.Context, tx *sqlx.Tx, lineage domain.Ancestry) (uuid.UUID, error) {
			e.Stamp(lineage)
			if err := s.events.WithTx(tx).Create(ctx, e); err != nil {
				return uuid.Nil, err
			}
			return e.ID, nil
		})
	if err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("event created",
		slog.String("event_id", e.ID.String()),
		slog.String("company_id", e.CompanyID.String()))
	return e, nil
}

func (s *eventServiceImpl) Get(ctx context.Context, claimed domain.Ancestry, id uuid.UUID) (*domain.Event, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.VerifyOwned(claimed, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *eventServiceImpl) ListByProfile(ctx context.Context, claimed domain.Ancestry) ([]*domain.Event, error) {
	if err := s.guard.requireProfile(ctx, claimed); err != nil {
		return nil, err
	}
	events, err := s.events.ListByProfile(ctx, claimed.UserID, claimed.ProfileID)
	return events, wrapErr("event", "list_by_profile", err)
}

func (s *eventServiceImpl) ListByCompany(ctx context.Context, claimed domain.Ancestry) ([]*domain.Event, error) {
	if err := s.guard.requireCompany(ctx, claimed); err != nil {
		return nil, err
	}
	events, err := s.events.ListByCompany(ctx, claimed.UserID, claimed.CompanyID)
	return events, wrapErr("event", "list_by_company", err)
}

func (s *eventServiceImpl) Update(
	ctx context.Context,
	claimed domain.Ancestry,
	id uuid.UUID,
	patch domain.EventPatch,
) (*domain.Event, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Event
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		events := s.events.WithTx(tx)
		e, err := events.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := domain.VerifyOwned(claimed, e); err != nil {
			return err
		}
		updated, err = events.Update(ctx, id, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *eventServiceImpl) Delete(ctx context.Context, claimed domain.Ancestry, id uuid.UUID) error {
	return s.cascade.RemoveChild(ctx, store.CompanyEvents, claimed.CompanyID, id, claimed,
		func(ctx context.Context, tx *sqlx.Tx) error {
			return s.events.WithTx(tx).Delete(ctx, id, claimed.CompanyID)
		})
}
