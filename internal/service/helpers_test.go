package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/job-seeker-api/internal/domain"
	"github.com/phrazzld/job-seeker-api/internal/testutils"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fixture wires every service to one in-memory store and seeds a user with
// a profile.
type fixture struct {
	ctx    context.Context
	mem    *testutils.MemStore
	stores testutils.Stores

	cascade   *CascadeManager
	profiles  ProfileService
	companies CompanyService
	contacts  ContactService
	jobs      JobService
	events    EventService

	user    *domain.User
	profile *domain.Profile
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{ctx: context.Background(), mem: testutils.NewMemStore()}
	f.stores = f.mem.Stores()
	s := f.stores

	f.cascade = NewCascadeManager(s.Transactor, s.Refs, discardLogger)
	f.profiles = NewProfileService(s.Transactor, s.Profiles, discardLogger)
	f.companies = NewCompanyService(s.Transactor, f.cascade, s.Profiles, s.Companies, discardLogger)
	f.contacts = NewContactService(s.Transactor, f.cascade, s.Profiles, s.Companies, s.Contacts, discardLogger)
	f.jobs = NewJobService(s.Transactor, f.cascade, s.Profiles, s.Companies, s.Jobs, discardLogger)
	f.events = NewEventService(s.Transactor, f.cascade, s.Profiles, s.Companies, s.Events, discardLogger)

	f.user = testutils.MustInsertUser(f.ctx, t, s.Users, "u1")
	f.profile = testutils.MustInsertProfile(f.ctx, t, s.Profiles, f.user.ID)
	return f
}

// owner is the chain a request from the seeded user to the seeded profile
// claims.
func (f *fixture) owner() domain.Ancestry {
	return f.profile.Lineage()
}

func (f *fixture) mustCompany(t *testing.T, name string) *domain.Company {
	t.Helper()
	c, err := f.companies.Create(f.ctx, f.owner(), testutils.NewTestCompany(name))
	require.NoError(t, err)
	return c
}

func (f *fixture) reloadProfile(t *testing.T) *domain.Profile {
	t.Helper()
	p, err := f.stores.Profiles.GetByID(f.ctx, f.profile.ID)
	require.NoError(t, err)
	return p
}

func (f *fixture) reloadCompany(t *testing.T, id uuid.UUID) *domain.Company {
	t.Helper()
	c, err := f.stores.Companies.GetByID(f.ctx, id)
	require.NoError(t, err)
	return c
}

// intruder seeds a second user with their own profile.
func (f *fixture) intruder(t *testing.T) domain.Ancestry {
	t.Helper()
	u := testutils.MustInsertUser(f.ctx, t, f.stores.Users, "intruder")
	p := testutils.MustInsertProfile(f.ctx, t, f.stores.Profiles, u.ID)
	return p.Lineage()
}

func strPtr(s string) *string { return &s }
