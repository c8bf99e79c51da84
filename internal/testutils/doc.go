// Package testutils provides test doubles and fixtures shared by the service
// and API tests.
//
// MemStore implements every store interface in memory:
//
//	mem := testutils.NewMemStore()
//	stores := mem.Stores()
//	user := testutils.MustInsertUser(ctx, t, stores.Users, "u1")
//	profile := testutils.MustInsertProfile(ctx, t, stores.Profiles, user.ID)
//
// Tests that need a real database use the PostgreSQL stores directly behind
// the integration build tag.
package testutils
