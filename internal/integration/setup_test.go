package integration

import (
	"context"
	"os"
	"testing"

	"arcade_hub/internal/domain"
	"arcade_hub/internal/migrations"
	"arcade_hub/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// openDB skips the test unless DATABASE_URL points at a disposable Postgres.
func openDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	require.NoError(t, migrations.Up(dsn))

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func newProfile(t *testing.T, repo *repository.ProfileRepository, points int64) *domain.Profile {
	t.Helper()
	p := &domain.Profile{Username: "it_" + uuid.NewString()[:8], TotalPoints: points}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func seededGame(t *testing.T, repo *repository.GameRepository, title string) domain.Game {
	t.Helper()
	games, err := repo.List(context.Background(), false, 0)
	require.NoError(t, err)
	for _, g := range games {
		if g.Title == title {
			return g
		}
	}
	t.Fatalf("seed game %q missing", title)
	return domain.Game{}
}
