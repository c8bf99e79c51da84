//go:build integration

package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/job-seeker-api/internal/domain"
	"github.com/phrazzld/job-seeker-api/internal/service"
	"github.com/phrazzld/job-seeker-api/internal/store"
	"github.com/phrazzld/job-seeker-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to DATABASE_URL and resets the schema.
func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}
	db, err := sqlx.Open("pgx", url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db, "reset", discardLogger()))
	require.NoError(t, Migrate(ctx, db, "up", discardLogger()))
	return db
}

func TestIntegration_CompanyCascade(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	log := discardLogger()

	users := NewPostgresUserStore(db, log)
	profiles := NewPostgresProfileStore(db, log)
	companies := NewPostgresCompanyStore(db, log)
	jobs := NewPostgresJobStore(db, log)
	refs := NewPostgresBackRefStore(db, log)
	transactor := store.NewSQLTransactor(db)

	cascade := service.NewCascadeManager(transactor, refs, log)
	companySvc := service.NewCompanyService(transactor, cascade, profiles, companies, log)
	jobSvc := service.NewJobService(transactor, cascade, profiles, companies, jobs, log)

	user := testutils.MustInsertUser(ctx, t, users, "integration-user")
	profile := testutils.MustInsertProfile(ctx, t, profiles, user.ID)

	company, err := companySvc.Create(ctx, profile.Lineage(), testutils.NewTestCompany("fakebook"))
	require.NoError(t, err)

	reloaded, err := profiles.GetByID(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{company.ID}, reloaded.Companies)

	job := testutils.NewTestJob("Backend Engineer")
	_, err = jobSvc.Create(ctx, company.Lineage(), job)
	require.NoError(t, err)

	dup := testutils.NewTestJob("Backend Engineer")
	dup.Link = job.Link
	_, err = jobSvc.Create(ctx, company.Lineage(), dup)
	assert.ErrorIs(t, err, store.ErrJobLinkExists)

	got, err := companies.GetByID(ctx, company.ID)
	require.NoError(t, err)
	assert.Len(t, got.JobPosting, 1, "a failed create must not leave an ID behind")

	report, err := service.NewReconciler(transactor, refs, log).Reconcile(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.ListsRepaired)

	require.NoError(t, companySvc.Delete(ctx, profile.Lineage(), company.ID))

	_, err = jobs.GetByID(ctx, got.JobPosting[0])
	assert.ErrorIs(t, err, store.ErrJobNotFound)

	reloaded, err = profiles.GetByID(ctx, profile.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Companies)
}

func TestIntegration_OwnershipIsEnforced(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	log := discardLogger()

	users := NewPostgresUserStore(db, log)
	profiles := NewPostgresProfileStore(db, log)
	companies := NewPostgresCompanyStore(db, log)
	transactor := store.NewSQLTransactor(db)
	cascade := service.NewCascadeManager(transactor, NewPostgresBackRefStore(db, log), log)
	companySvc := service.NewCompanyService(transactor, cascade, profiles, companies, log)

	owner := testutils.MustInsertUser(ctx, t, users, "owner")
	intruder := testutils.MustInsertUser(ctx, t, users, "intruder")
	profile := testutils.MustInsertProfile(ctx, t, profiles, owner.ID)

	claimed := domain.Ancestry{UserID: intruder.ID, ProfileID: profile.ID}
	_, err := companySvc.Create(ctx, claimed, testutils.NewTestCompany("sneaky"))
	assert.ErrorIs(t, err, domain.ErrNotOwned)

	list, err := companies.ListByProfile(ctx, owner.ID, profile.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
