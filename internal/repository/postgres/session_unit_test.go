package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionRepository(t *testing.T) {
	db := &Connection{}
	repo := NewSessionRepository(db, "alice")

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
	assert.Equal(t, "alice", repo.namespace)
}

func TestSessionRepository_EmptyBatches(t *testing.T) {
	repo := NewSessionRepository(&Connection{}, "alice")

	assert.NoError(t, repo.SetMany(context.Background(), nil))
	assert.NoError(t, repo.Clear(context.Background()))
}

func TestConnection_NilPool(t *testing.T) {
	c := &Connection{}

	require.Error(t, c.Ping(context.Background()))
	assert.NoError(t, c.Close())
}

func TestNewConnection_BadDSN(t *testing.T) {
	_, err := NewConnection(context.Background(), "::not a dsn::")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse postgres dsn")
}

func TestMigrations_Embedded(t *testing.T) {
	entries, err := migrations.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "00001_create_session_values.sql", entries[0].Name())
}
