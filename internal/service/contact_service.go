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

// ContactService provides contact operations. claimed carries the caller's
// user ID and the profile and company IDs from the request path; listing by
// profile ignores the company link.
type ContactService interface {
	Create(ctx context.Context, claimed domain.Ancestry, c *domain.Contact) (*domain.Contact, error)
	Get(ctx context.Context, claimed domain.Ancestry, id uuid.UUID) (*domain.Contact, error)
	ListByProfile(ctx context.Context, claimed domain.Ancestry) ([]*domain.Contact, error)
	ListByCompany(ctx context.Context, claimed domain.Ancestry) ([]*domain.Contact, error)
	Update(ctx context.Context, claimed domain.Ancestry, id uuid.UUID, patch domain.ContactPatch) (*domain.Contact, error)
	Delete(ctx context.Context, claimed domain.Ancestry, id uuid.UUID) error
}

type contactServiceImpl struct {
	transactor store.Transactor
	cascade    *CascadeManager
	contacts   store.ContactStore
	guard      ancestorGuard
	logger     *slog.Logger
}

// NewContactService creates a ContactService.
func NewContactService(
	transactor store.Transactor,
	cascade *CascadeManager,
	profiles store.ProfileStore,
	companies store.CompanyStore,
	contacts store.ContactStore,
	logger *slog.Logger,
) ContactService {
	if logger == nil {
		logger = slog.Default()
	}
	return &contactServiceImpl{
		transactor: transactor,
		cascade:    cascade,
		contacts:   contacts,
		guard:      ancestorGuard{profiles: profiles, companies: companies},
		logger:     logger.With(slog.String("component", "contact_service")),
	}
}

func (s *contactServiceImpl) Create(
	ctx context.Context,
	claimed domain.Ancestry,
	c *domain.Contact,
) (*domain.Contact, error) {
	err := s.cascade.AddChild(ctx, store.CompanyContacts, claimed.CompanyID, claimed,
		func(ctx context.Context, tx *sqlx.Tx, lineage domain.Ancestry) (uuid.UUID, error) {
			c.Stamp(lineage)
			if err := s.contacts.WithTx(tx).Create(ctx, c); err != nil {
				return uuid.Nil, err
			}
			return c.ID, nil
		})
	if err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("contact created",
		slog.String("contact_id", c.ID.String()),
		slog.String("company_id", c.CompanyID.String()))
	return c, nil
}

func (s *contactServiceImpl) Get(ctx context.Context, claimed domain.Ancestry, id uuid.UUID) (*domain.Contact, error) {
	c, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.VerifyOwned(claimed, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *contactServiceImpl) ListByProfile(ctx context.Context, claimed domain.Ancestry) ([]*domain.Contact, error) {
	if err := s.guard.requireProfile(ctx, claimed); err != nil {
		return nil, err
	}
	contacts, err := s.contacts.ListByProfile(ctx, claimed.UserID, claimed.ProfileID)
	return contacts, wrapErr("contact", "list_by_profile", err)
}

func (s *contactServiceImpl) ListByCompany(ctx context.Context, claimed domain.Ancestry) ([]*domain.Contact, error) {
	if err := s.guard.requireCompany(ctx, claimed); err != nil {
		return nil, err
	}
	contacts, err := s.contacts.ListByCompany(ctx, claimed.UserID, claimed.CompanyID)
	return contacts, wrapErr("contact", "list_by_company", err)
}

func (s *contactServiceImpl) Update(
	ctx context.Context,
	claimed domain.Ancestry,
	id uuid.UUID,
	patch domain.ContactPatch,
) (*domain.Contact, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Contact
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		contacts := s.contacts.WithTx(tx)
		c, err := contacts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := domain.VerifyOwned(claimed, c); err != nil {
			return err
		}
		updated, err = contacts.Update(ctx, id, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *contactServiceImpl) Delete(ctx context.Context, claimed domain.Ancestry, id uuid.UUID) error {
	return s.cascade.RemoveChild(ctx, store.CompanyContacts, claimed.CompanyID, id, claimed,
		func(ctx context.Context, tx *sqlx.Tx) error {
			return s.contacts.WithTx(tx).Delete(ctx, id, claimed.CompanyID)
		})
}
