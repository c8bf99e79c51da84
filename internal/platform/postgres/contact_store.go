package postgres

import (
	"context"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/job-seeker-api/internal/domain"
	"github.com/phrazzld/job-seeker-api/internal/platform/logger"
	"github.com/phrazzld/job-seeker-api/internal/store"
)

var contactColumns = []string{
	"id", "user_id", "profile_id", "company_id",
	"name", "job_title", "email", "phone", "linked_in", "notes",
	"created_at", "updated_at",
}

type contactRow struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	ProfileID uuid.UUID `db:"profile_id"`
	CompanyID uuid.UUID `db:"company_id"`
	Name      string    `db:"name"`
	JobTitle  string    `db:"job_title"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	LinkedIn  string    `db:"linked_in"`
	Notes     string    `db:"notes"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *contactRow) toDomain() *domain.Contact {
	return &domain.Contact{
		ID:        r.ID,
		UserID:    r.UserID,
		ProfileID: r.ProfileID,
		CompanyID: r.CompanyID,
		Name:      r.Name,
		JobTitle:  r.JobTitle,
		Email:     r.Email,
		Phone:     r.Phone,
		LinkedIn:  r.LinkedIn,
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// PostgresContactStore implements store.ContactStore.
type PostgresContactStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresContactStore creates a contact store.
func NewPostgresContactStore(db store.DBTX, logger *slog.Logger) *PostgresContactStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresContactStore{
		db:     db,
		logger: logger.With(slog.String("component", "contact_store")),
	}
}

var _ store.ContactStore = (*PostgresContactStore)(nil)

func (s *PostgresContactStore) WithTx(tx *sqlx.Tx) store.ContactStore {
	return &PostgresContactStore{db: tx, logger: s.logger}
}

func (s *PostgresContactStore) Create(ctx context.Context, c *domain.Contact) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := c.Validate(); err != nil {
		return err
	}

	b := psql.Insert("contacts").
		Columns(contactColumns...).
		Values(
			c.ID, c.UserID, c.ProfileID, c.CompanyID,
			c.Name, c.JobTitle, c.Email, c.Phone, c.LinkedIn, c.Notes,
			c.CreatedAt, c.UpdatedAt,
		)
	if _, err := execQuery(ctx, s.db, b); err != nil {
		log.Error("failed to create contact",
			slog.String("error", err.Error()),
			slog.String("contact_id", c.ID.String()),
			slog.String("company_id", c.CompanyID.String()))
		return MapError(err)
	}
	return nil
}

func (s *PostgresContactStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	var row contactRow
	b := psql.Select(contactColumns...).From("contacts").Where(sq.Eq{"id": id})
	if err := getOne(ctx, s.db, b, &row); err != nil {
		return nil, mapNotFound(err, store.ErrContactNotFound)
	}
	return row.toDomain(), nil
}

func (s *PostgresContactStore) ListByProfile(
	ctx context.Context,
	userID, profileID uuid.UUID,
) ([]*domain.Contact, error) {
	return s.list(ctx, sq.Eq{"user_id": userID, "profile_id": profileID})
}

func (s *PostgresContactStore) ListByCompany(
	ctx context.Context,
	userID, companyID uuid.UUID,
) ([]*domain.Contact, error) {
	return s.list(ctx, sq.Eq{"user_id": userID, "company_id": companyID})
}

func (s *PostgresContactStore) list(ctx context.Context, where sq.Eq) ([]*domain.Contact, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var rows []contactRow
	b := psql.Select(contactColumns...).From("contacts").Where(where).OrderBy("created_at ASC")
	if err := getAll(ctx, s.db, b, &rows); err != nil {
		log.Error("failed to list contacts", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	contacts := make([]*domain.Contact, 0, len(rows))
	for i := range rows {
		contacts = append(contacts, rows[i].toDomain())
	}
	return contacts, nil
}

func (s *PostgresContactStore) Update(
	ctx context.Context,
	id uuid.UUID,
	patch domain.ContactPatch,
) (*domain.Contact, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	set := map[string]interface{}{}
	setIfPresent(set, "name", patch.Name)
	setIfPresent(set, "job_title", patch.JobTitle)
	setIfPresent(set, "email", patch.Email)
	setIfPresent(set, "phone", patch.Phone)
	setIfPresent(set, "linked_in", patch.LinkedIn)
	setIfPresent(set, "notes", patch.Notes)

	var row contactRow
	if err := updateReturning(ctx, s.db, "contacts", contactColumns, id, set, &row); err != nil {
		return nil, mapNotFound(err, store.ErrContactNotFound)
	}
	return row.toDomain(), nil
}

func (s *PostgresContactStore) Delete(ctx context.Context, id, companyID uuid.UUID) error {
	b := psql.Delete("contacts").Where(sq.Eq{"id": id, "company_id": companyID})
	if _, err := execQuery(ctx, s.db, b); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete contact",
			slog.String("error", err.Error()),
			slog.String("contact_id", id.String()))
		return MapError(err)
	}
	return nil
}
