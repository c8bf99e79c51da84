package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/job-seeker-api/internal/domain"
	"github.com/phrazzld/job-seeker-api/internal/store"
	"github.com/phrazzld/job-seeker-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_CreateAndList(t *testing.T) {
	f := newFixture(t)
	claimed := domain.Ancestry{UserID: f.user.ID}

	p, err := f.profiles.Create(f.ctx, claimed, "Job Hunt 2026", "me@example.com")
	require.NoError(t, err)
	assert.Equal(t, f.user.ID, p.UserID)
	assert.Empty(t, p.Companies)

	profiles, err := f.profiles.List(f.ctx, claimed)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, f.profile.ID, profiles[0].ID)
	assert.Equal(t, p.ID, profiles[1].ID)

	_, err = f.profiles.Create(f.ctx, claimed, "", "me@example.com")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProfileService_Get(t *testing.T) {
	f := newFixture(t)

	got, err := f.profiles.Get(f.ctx, domain.Ancestry{UserID: f.user.ID}, f.profile.ID)
	require.NoError(t, err)
	assert.Equal(t, f.profile.Name, got.Name)

	other := f.intruder(t)
	_, err = f.profiles.Get(f.ctx, other, f.profile.ID)
	assert.ErrorIs(t, err, domain.ErrNotOwned)

	_, err = f.profiles.Get(f.ctx, domain.Ancestry{UserID: f.user.ID}, uuid.New())
	assert.ErrorIs(t, err, store.ErrProfileNotFound)
}

func TestProfileService_Update(t *testing.T) {
	f := newFixture(t)
	claimed := domain.Ancestry{UserID: f.user.ID}

	updated, err := f.profiles.Update(f.ctx, claimed, f.profile.ID, domain.ProfilePatch{Name: strPtr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, f.profile.Email, updated.Email)

	_, err = f.profiles.Update(f.ctx, claimed, f.profile.ID, domain.ProfilePatch{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	other := f.intruder(t)
	_, err = f.profiles.Update(f.ctx, domain.Ancestry{UserID: other.UserID}, f.profile.ID,
		domain.ProfilePatch{Name: strPtr("Stolen")})
	assert.ErrorIs(t, err, domain.ErrNotOwned)
	assert.Equal(t, "Renamed", f.reloadProfile(t).Name)
}

func TestProfileService_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	c := f.mustCompany(t, "acme")
	_, err := f.jobs.Create(f.ctx, c.Lineage(), testutils.NewTestJob("engineer"))
	require.NoError(t, err)

	other := f.intruder(t)
	err = f.profiles.Delete(f.ctx, domain.Ancestry{UserID: other.UserID}, f.profile.ID)
	assert.ErrorIs(t, err, domain.ErrNotOwned)

	require.NoError(t, f.profiles.Delete(f.ctx, domain.Ancestry{UserID: f.user.ID}, f.profile.ID))
	counts := f.mem.Counts()
	assert.Zero(t, counts["companies"])
	assert.Zero(t, counts["jobs"])

	err = f.profiles.Delete(f.ctx, domain.Ancestry{UserID: f.user.ID}, f.profile.ID)
	assert.ErrorIs(t, err, store.ErrProfileNotFound)
}

func TestProfileService_EnsureDefault(t *testing.T) {
	f := newFixture(t)
	u := testutils.MustInsertUser(f.ctx, t, f.stores.Users, "newcomer")

	p, err := f.profiles.EnsureDefault(f.ctx, u)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "newcomer", p.Name)
	assert.Equal(t, u.Email, p.Email)

	again, err := f.profiles.EnsureDefault(f.ctx, u)
	require.NoError(t, err)
	assert.Nil(t, again)

	n, err := f.stores.Profiles.CountByUser(f.ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
