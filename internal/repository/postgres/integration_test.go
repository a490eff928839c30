//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	repo "github.com/dtroode/flashcards-client/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "flashcards_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/flashcards_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestSessionRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	r := repo.NewSessionRepository(conn, "crud")

	_, ok, err := r.Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.SetMany(ctx, map[string]string{"token": "A1", "refreshToken": "R1"}))
	require.NoError(t, r.Set(ctx, "token", "A2"))

	v, ok, err := r.Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "A2", v)

	require.NoError(t, r.Clear(ctx, "token", "refreshToken"))
	_, ok, err = r.Get(ctx, "refreshToken")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionRepository_NamespacesAndConcurrency(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	a := repo.NewSessionRepository(conn, "a")
	b := repo.NewSessionRepository(conn, "b")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, a.SetMany(ctx, map[string]string{
				"token":        fmt.Sprintf("A%d", i),
				"refreshToken": fmt.Sprintf("R%d", i),
			}))
		}(i)
	}
	wg.Wait()

	access, _, err := a.Get(ctx, "token")
	require.NoError(t, err)
	refresh, _, err := a.Get(ctx, "refreshToken")
	require.NoError(t, err)
	assert.Equal(t, access[1:], refresh[1:], "pair must come from the same write")

	_, ok, err := b.Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)
}
