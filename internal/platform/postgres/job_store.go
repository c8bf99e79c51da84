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

var jobColumns = []string{
	"id", "user_id", "profile_id", "company_id",
	"title", "link", "status", "type", "notes", "tags",
	"created_at", "updated_at",
}

type jobRow struct {
	ID        uuid.UUID      `db:"id"`
	UserID    uuid.UUID      `db:"user_id"`
	ProfileID uuid.UUID      `db:"profile_id"`
	CompanyID uuid.UUID      `db:"company_id"`
	Title     string         `db:"title"`
	Link      string         `db:"link"`
	Status    string         `db:"status"`
	Type      string         `db:"type"`
	Notes     string         `db:"notes"`
	Tags      pq.StringArray `db:"tags"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (r *jobRow) toDomain() *domain.Job {
	tags := []string(r.Tags)
	if tags == nil {
		tags = []string{}
	}
	return &domain.Job{
		ID:        r.ID,
		UserID:    r.UserID,
		ProfileID: r.ProfileID,
		CompanyID: r.CompanyID,
		Title:     r.Title,
		Link:      r.Link,
		Status:    r.Status,
		Type:      r.Type,
		Notes:     r.Notes,
		Tags:      tags,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// PostgresJobStore implements store.JobStore.
type PostgresJobStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresJobStore creates a job store.
func NewPostgresJobStore(db store.DBTX, logger *slog.Logger) *PostgresJobStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresJobStore{
		db:     db,
		logger: logger.With(slog.String("component", "job_store")),
	}
}

var _ store.JobStore = (*PostgresJobStore)(nil)

func (s *PostgresJobStore) WithTx(tx *sqlx.Tx) store.JobStore {
	return &PostgresJobStore{db: tx, logger: s.logger}
}

// Create implements store.JobStore.Create. A link that is already stored
// yields store.ErrJobLinkExists.
func (s *PostgresJobStore) Create(ctx context.Context, j *domain.Job) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := j.Validate(); err != nil {
		return err
	}

	b := psql.Insert("jobs").
		Columns(jobColumns...).
		Values(
			j.ID, j.UserID, j.ProfileID, j.CompanyID,
			j.Title, j.Link, j.Status, j.Type, j.Notes, stringArray(j.Tags),
			j.CreatedAt, j.UpdatedAt,
		)
	if _, err := execQuery(ctx, s.db, b); err != nil {
		mapped := MapError(err)
		if IsUniqueViolation(err) {
			log.Debug("job link already exists", slog.String("link", j.Link))
			return mapped
		}
		log.Error("failed to create job",
			slog.String("error", err.Error()),
			slog.String("job_id", j.ID.String()),
			slog.String("company_id", j.CompanyID.String()))
		return mapped
	}
	return nil
}

func (s *PostgresJobStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	var row jobRow
	b := psql.Select(jobColumns...).From("jobs").Where(sq.Eq{"id": id})
	if err := getOne(ctx, s.db, b, &row); err != nil {
		return nil, mapNotFound(err, store.ErrJobNotFound)
	}
	return row.toDomain(), nil
}

func (s *PostgresJobStore) ListByProfile(ctx context.Context, userID, profileID uuid.UUID) ([]*domain.Job, error) {
	return s.list(ctx, sq.Eq{"user_id": userID, "profile_id": profileID})
}

func (s *PostgresJobStore) ListByCompany(ctx context.Context, userID, companyID uuid.UUID) ([]*domain.Job, error) {
	return s.list(ctx, sq.Eq{"user_id": userID, "company_id": companyID})
}

func (s *PostgresJobStore) list(ctx context.Context, where sq.Eq) ([]*domain.Job, error) {
	var rows []jobRow
	b := psql.Select(jobColumns...).From("jobs").Where(where).OrderBy("created_at ASC")
	if err := getAll(ctx, s.db, b, &rows); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list jobs",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	jobs := make([]*domain.Job, 0, len(rows))
	for i := range rows {
		jobs = append(jobs, rows[i].toDomain())
	}
	return jobs, nil
}

func (s *PostgresJobStore) Update(ctx context.Context, id uuid.UUID, patch domain.JobPatch) (*domain.Job, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	set := map[string]interface{}{}
	setIfPresent(set, "title", patch.Title)
	setIfPresent(set, "link", patch.Link)
	setIfPresent(set, "status", patch.Status)
	setIfPresent(set, "type", patch.Type)
	setIfPresent(set, "notes", patch.Notes)
	if patch.Tags != nil {
		set["tags"] = stringArray(*patch.Tags)
	}

	var row jobRow
	if err := updateReturning(ctx, s.db, "jobs", jobColumns, id, set, &row); err != nil {
		return nil, mapNotFound(err, store.ErrJobNotFound)
	}
	return row.toDomain(), nil
}

func (s *PostgresJobStore) Delete(ctx context.Context, id, companyID uuid.UUID) error {
	b := psql.Delete("jobs").Where(sq.Eq{"id": id, "company_id": companyID})
	if _, err := execQuery(ctx, s.db, b); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete job",
			slog.String("error", err.Error()),
			slog.String("job_id", id.String()))
		return MapError(err)
	}
	return nil
}
