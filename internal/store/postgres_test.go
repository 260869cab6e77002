package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/footballbetting/pkg/types"
)

// postgresDSNEnv names a disposable database used by the postgres tests.
// The tests drop every ledger table before they start.
const postgresDSNEnv = "LEDGER_TEST_POSTGRES_DSN"

func setupPostgres(t *testing.T) *Backend {
	t.Helper()
	dsn := os.Getenv(postgresDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", postgresDSNEnv)
	}
	ctx := context.Background()
	b := NewBackend()
	config := types.Config{Backend: types.BackendPostgres, DSN: dsn}
	require.NoError(t, b.Attach(ctx, config))
	dropAll(t, b)
	require.NoError(t, b.Detach())
	require.NoError(t, b.Attach(ctx, config))
	t.Cleanup(func() {
		dropAll(t, b)
		b.Detach()
	})
	return b
}

func dropAll(t *testing.T, b *Backend) {
	t.Helper()
	tables := b.schema.Tables()
	err := b.withTx(context.Background(), func(c conn) error {
		for i := len(tables) - 1; i >= 0; i-- {
			if _, err := c.exec(context.Background(), "DROP TABLE IF EXISTS "+tables[i].Name+" CASCADE"); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func TestPostgres_Ledger(t *testing.T) {
	ctx := context.Background()
	b := setupPostgres(t)
	l := seedLeague(t, b)

	game, err := b.Games().Read(ctx, l.game)
	require.NoError(t, err)
	assert.Equal(t, "1.85", game.HomeTeamBetRate.String())
	assert.True(t, kickoff.Equal(game.DateTime))

	_, err = b.PlayerStatistics().Create(ctx, &types.PlayerStatistic{GameID: l.game, PlayerID: l.player})
	assert.ErrorIs(t, err, types.ErrDuplicateKey)

	assert.ErrorIs(t, b.Colors().Delete(ctx, l.red), types.ErrReferentialIntegrity)
	assert.ErrorIs(t, b.Countries().Delete(ctx, l.country), types.ErrReferentialIntegrity)

	require.NoError(t, b.Games().Delete(ctx, l.game))
	require.NoError(t, b.Countries().Delete(ctx, l.country))
	assert.Zero(t, count(t, b.Teams(), nil))

	page, err := b.Colors().All(ctx, types.Filter{types.FilterOffset: 1})
	require.NoError(t, err)
	assert.Len(t, page, 1)
}

func TestPostgres_ExportImport(t *testing.T) {
	ctx := context.Background()
	b := setupPostgres(t)
	l := seedLeague(t, b)
	dir := t.TempDir()

	_, err := b.Export(ctx, dir)
	require.NoError(t, err)

	dropAll(t, b)
	require.NoError(t, b.Detach())
	require.NoError(t, b.Attach(ctx, types.Config{Backend: types.BackendPostgres, DSN: os.Getenv(postgresDSNEnv)}))

	sum, err := b.Import(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Tables[types.TableBets].Imported)

	next := mustCountry(t, b, "Wales")
	assert.Greater(t, next, l.country, "sequences continue after imported keys")
}
