package postgres

import (
	"context"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/phrazzld/job-seeker-api/internal/domain"
	"github.com/phrazzld/job-seeker-api/internal/platform/logger"
	"github.com/phrazzld/job-seeker-api/internal/store"
)

var companyColumns = []string{
	"id", "user_id", "profile_id",
	"company_name", "website", "street_address", "city", "state", "zip", "phone", "company_notes",
	"contact_ids", "job_ids", "event_ids",
	"created_at", "updated_at",
}

type companyRow struct {
	ID            uuid.UUID      `db:"id"`
	UserID        uuid.UUID      `db:"user_id"`
	ProfileID     uuid.UUID      `db:"profile_id"`
	CompanyName   string         `db:"company_name"`
	Website       string         `db:"website"`
	StreetAddress string         `db:"street_address"`
	City          string         `db:"city"`
	State         string         `db:"state"`
	Zip           string         `db:"zip"`
	Phone         string         `db:"phone"`
	CompanyNotes  string         `db:"company_notes"`
	ContactIDs    pq.StringArray `db:"contact_ids"`
	JobIDs        pq.StringArray `db:"job_ids"`
	EventIDs      pq.StringArray `db:"event_ids"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (r *companyRow) toDomain(log *slog.Logger) *domain.Company {
	return &domain.Company{
		ID:            r.ID,
		UserID:        r.UserID,
		ProfileID:     r.ProfileID,
		CompanyName:   r.CompanyName,
		Website:       r.Website,
		StreetAddress: r.StreetAddress,
		City:          r.City,
		State:         r.State,
		Zip:           r.Zip,
		Phone:         r.Phone,
		CompanyNotes:  r.CompanyNotes,
		Contacts:      parseUUIDArray(log, r.ContactIDs),
		JobPosting:    parseUUIDArray(log, r.JobIDs),
		Events:        parseUUIDArray(log, r.EventIDs),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// PostgresCompanyStore implements store.CompanyStore.
type PostgresCompanyStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCompanyStore creates a company store. If logger is nil, a
// default logger will be used.
func NewPostgresCompanyStore(db store.DBTX, logger *slog.Logger) *PostgresCompanyStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCompanyStore{
		db:     db,
		logger: logger.With(slog.String("component", "company_store")),
	}
}

var _ store.CompanyStore = (*PostgresCompanyStore)(nil)

// WithTx implements store.CompanyStore.WithTx
func (s *PostgresCompanyStore) WithTx(tx *sqlx.Tx) store.CompanyStore {
	return &PostgresCompanyStore{db: tx, logger: s.logger}
}

// Create implements store.CompanyStore.Create
func (s *PostgresCompanyStore) Create(ctx context.Context, c *domain.Company) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := c.Validate(); err != nil {
		return err
	}

	b := psql.Insert("companies").
		Columns(companyColumns...).
		Values(
			c.ID, c.UserID, c.ProfileID,
			c.CompanyName, c.Website, c.StreetAddress, c.City, c.State, c.Zip, c.Phone, c.CompanyNotes,
			uuidArray(c.Contacts), uuidArray(c.JobPosting), uuidArray(c.Events),
			c.CreatedAt, c.UpdatedAt,
		)
	if _, err := execQuery(ctx, s.db, b); err != nil {
		log.Error("failed to create company",
			slog.String("error", err.Error()),
			slog.String("company_id", c.ID.String()),
			slog.String("profile_id", c.ProfileID.String()))
		return MapError(err)
	}

	log.Debug("company created", slog.String("company_id", c.ID.String()))
	return nil
}

// GetByID implements store.CompanyStore.GetByID
func (s *PostgresCompanyStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var row companyRow
	b := psql.Select(companyColumns...).From("companies").Where(sq.Eq{"id": id})
	if err := getOne(ctx, s.db, b, &row); err != nil {
		return nil, mapNotFound(err, store.ErrCompanyNotFound)
	}
	return row.toDomain(log), nil
}

// ListByProfile implements store.CompanyStore.ListByProfile
func (s *PostgresCompanyStore) ListByProfile(
	ctx context.Context,
	userID, profileID uuid.UUID,
) ([]*domain.Company, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var rows []companyRow
	b := psql.Select(companyColumns...).
		From("companies").
		Where(sq.Eq{"user_id": userID, "profile_id": profileID}).
		OrderBy("created_at ASC")
	if err := getAll(ctx, s.db, b, &rows); err != nil {
		log.Error("failed to list companies",
			slog.String("error", err.Error()),
			slog.String("profile_id", profileID.String()))
		return nil, MapError(err)
	}

	companies := make([]*domain.Company, 0, len(rows))
	for i := range rows {
		companies = append(companies, rows[i].toDomain(log))
	}
	return companies, nil
}

// Update implements store.CompanyStore.Update
func (s *PostgresCompanyStore) Update(
	ctx context.Context,
	id uuid.UUID,
	patch domain.CompanyPatch,
) (*domain.Company, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	set := map[string]interface{}{}
	setIfPresent(set, "company_name", patch.CompanyName)
	setIfPresent(set, "website", patch.Website)
	setIfPresent(set, "street_address", patch.StreetAddress)
	setIfPresent(set, "city", patch.City)
	setIfPresent(set, "state", patch.State)
	setIfPresent(set, "zip", patch.Zip)
	setIfPresent(set, "phone", patch.Phone)
	setIfPresent(set, "company_notes", patch.CompanyNotes)

	var row companyRow
	if err := updateReturning(ctx, s.db, "companies", companyColumns, id, set, &row); err != nil {
		return nil, mapNotFound(err, store.ErrCompanyNotFound)
	}
	log.Debug("company updated", slog.String("company_id", id.String()))
	return row.toDomain(log), nil
}

// Delete implements store.CompanyStore.Delete
func (s *PostgresCompanyStore) Delete(ctx context.Context, id, profileID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	b := psql.Delete("companies").Where(sq.Eq{"id": id, "profile_id": profileID})
	if _, err := execQuery(ctx, s.db, b); err != nil {
		log.Error("failed to delete company",
			slog.String("error", err.Error()),
			slog.String("company_id", id.String()))
		return MapError(err)
	}
	return nil
}
