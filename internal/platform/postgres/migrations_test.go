package postgres

import (
	"context"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	content, err := fs.ReadFile(migrationsFS, files[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "-- +goose Up")
	assert.Contains(t, string(content), "-- +goose Down")
	assert.Contains(t, string(content), "CONSTRAINT jobs_link_key UNIQUE (link)")
}

func TestMigrateRejectsUnknownCommand(t *testing.T) {
	db, _ := newMockDB(t)

	err := Migrate(context.Background(), db, "create", discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown migration command")
}
