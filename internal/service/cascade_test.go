package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/job-seeker-api/internal/domain"
	"github.com/phrazzld/job-seeker-api/internal/store"
	"github.com/phrazzld/job-seeker-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCascadeManager_AddChild(t *testing.T) {
	t.Run("appends the new child", func(t *testing.T) {
		f := newFixture(t)
		c := f.mustCompany(t, "acme")

		assert.Equal(t, []uuid.UUID{c.ID}, f.reloadProfile(t).Companies)
		assert.Equal(t, f.user.ID, c.UserID)
		assert.Equal(t, f.profile.ID, c.ProfileID)
	})

	t.Run("does not append an ID twice", func(t *testing.T) {
		f := newFixture(t)
		c := f.mustCompany(t, "acme")

		err := f.cascade.AddChild(f.ctx, store.ProfileCompanies, f.profile.ID, f.owner(),
			func(context.Context, *sqlx.Tx, domain.Ancestry) (uuid.UUID, error) {
				return c.ID, nil
			})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{c.ID}, f.reloadProfile(t).Companies)
	})

	t.Run("refuses a parent of another user", func(t *testing.T) {
		f := newFixture(t)
		other := f.intruder(t)

		called := false
		err := f.cascade.AddChild(f.ctx, store.ProfileCompanies, f.profile.ID, other,
			func(context.Context, *sqlx.Tx, domain.Ancestry) (uuid.UUID, error) {
				called = true
				return uuid.New(), nil
			})
		assert.ErrorIs(t, err, domain.ErrNotOwned)
		assert.False(t, called)
		assert.Empty(t, f.reloadProfile(t).Companies)
	})

	t.Run("missing parent", func(t *testing.T) {
		f := newFixture(t)
		claimed := domain.Ancestry{UserID: f.user.ID, ProfileID: uuid.New()}

		err := f.cascade.AddChild(f.ctx, store.ProfileCompanies, claimed.ProfileID, claimed,
			func(context.Context, *sqlx.Tx, domain.Ancestry) (uuid.UUID, error) {
				return uuid.New(), nil
			})
		assert.ErrorIs(t, err, store.ErrProfileNotFound)
	})

	t.Run("failed create leaves list untouched", func(t *testing.T) {
		f := newFixture(t)
		boom := errors.New("insert failed")

		err := f.cascade.AddChild(f.ctx, store.ProfileCompanies, f.profile.ID, f.owner(),
			func(ctx context.Context, tx *sqlx.Tx, lineage domain.Ancestry) (uuid.UUID, error) {
				c := testutils.NewTestCompany("ghost")
				c.Stamp(lineage)
				if err := f.stores.Companies.WithTx(tx).Create(ctx, c); err != nil {
					return uuid.Nil, err
				}
				return uuid.Nil, boom
			})
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, f.reloadProfile(t).Companies)
		assert.Zero(t, f.mem.Counts()["companies"])
	})

	t.Run("concurrent adds are all recorded", func(t *testing.T) {
		f := newFixture(t)
		const n = 20

		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.companies.Create(f.ctx, f.owner(), testutils.NewTestCompany("acme"))
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		assert.Len(t, f.reloadProfile(t).Companies, n)
	})
}

func TestCascadeManager_RemoveChild(t *testing.T) {
	t.Run("removes every occurrence and the row", func(t *testing.T) {
		f := newFixture(t)
		c := f.mustCompany(t, "acme")
		require.NoError(t, f.stores.Refs.SaveRefs(f.ctx, store.ProfileCompanies, f.profile.ID,
			[]uuid.UUID{c.ID, c.ID}))

		removed := false
		err := f.cascade.RemoveChild(f.ctx, store.ProfileCompanies, f.profile.ID, c.ID, f.owner(),
			func(context.Context, *sqlx.Tx) error {
				removed = true
				return nil
			})
		require.NoError(t, err)
		assert.True(t, removed)
		assert.Empty(t, f.reloadProfile(t).Companies)
	})

	t.Run("absent child still runs the delete", func(t *testing.T) {
		f := newFixture(t)
		c := f.mustCompany(t, "acme")

		removed := false
		err := f.cascade.RemoveChild(f.ctx, store.ProfileCompanies, f.profile.ID, uuid.New(), f.owner(),
			func(context.Context, *sqlx.Tx) error {
				removed = true
				return nil
			})
		require.NoError(t, err)
		assert.True(t, removed)
		assert.Equal(t, []uuid.UUID{c.ID}, f.reloadProfile(t).Companies)
	})

	t.Run("failed delete restores the list", func(t *testing.T) {
		f := newFixture(t)
		c := f.mustCompany(t, "acme")
		boom := errors.New("delete failed")

		err := f.cascade.RemoveChild(f.ctx, store.ProfileCompanies, f.profile.ID, c.ID, f.owner(),
			func(context.Context, *sqlx.Tx) error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, []uuid.UUID{c.ID}, f.reloadProfile(t).Companies)
	})

	t.Run("refuses a parent of another user", func(t *testing.T) {
		f := newFixture(t)
		c := f.mustCompany(t, "acme")
		other := f.intruder(t)

		err := f.cascade.RemoveChild(f.ctx, store.ProfileCompanies, f.profile.ID, c.ID, other,
			func(context.Context, *sqlx.Tx) error {
				t.Fatal("remove must not be called")
				return nil
			})
		assert.ErrorIs(t, err, domain.ErrNotOwned)
	})
}

func TestAppendUnique(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	got, added := appendUnique([]uuid.UUID{a}, b)
	assert.True(t, added)
	assert.Equal(t, []uuid.UUID{a, b}, got)

	got, added = appendUnique([]uuid.UUID{a, b}, a)
	assert.False(t, added)
	assert.Equal(t, []uuid.UUID{a, b}, got)

	got, added = appendUnique(nil, a)
	assert.True(t, added)
	assert.Equal(t, []uuid.UUID{a}, got)
}

func TestRemoveID(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	got, removed := removeID([]uuid.UUID{a, b, a}, a)
	assert.True(t, removed)
	assert.Equal(t, []uuid.UUID{b}, got)

	got, removed = removeID([]uuid.UUID{b}, a)
	assert.False(t, removed)
	assert.Equal(t, []uuid.UUID{b}, got)
}
