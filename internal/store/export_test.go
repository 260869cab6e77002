package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/footballbetting/pkg/types"
)

func TestExportImport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := setupBackend(t)
	l := seedLeague(t, src)
	dir := t.TempDir()

	m, err := src.Export(ctx, dir)
	require.NoError(t, err)
	id, err := uuid.Parse(m.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
	assert.Equal(t, types.BackendSQLite, m.Backend)
	assert.Equal(t, 2, m.Rows[types.TableTeams])
	assert.Equal(t, 1, m.Rows[types.TablePlayerStatistics])

	for _, name := range types.StandardTableNames {
		assert.FileExists(t, filepath.Join(dir, name+".jsonl"))
	}
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	require.NoError(t, err)
	var onDisk Manifest
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, m.ID, onDisk.ID)

	dst := setupBackend(t)
	sum, err := dst.Import(ctx, dir)
	require.NoError(t, err)
	for name, rows := range m.Rows {
		assert.Equal(t, rows, sum.Tables[name].Imported, "table %s", name)
		assert.Zero(t, sum.Tables[name].Skipped, "table %s", name)
	}

	team, err := dst.Teams().Read(ctx, l.arsenal)
	require.NoError(t, err)
	want, err := src.Teams().Read(ctx, l.arsenal)
	require.NoError(t, err)
	assert.Equal(t, want, team)

	game, err := dst.Games().Read(ctx, l.game)
	require.NoError(t, err)
	assert.Equal(t, "1.85", game.HomeTeamBetRate.String())
	assert.True(t, kickoff.Equal(game.DateTime))

	stat, err := dst.PlayerStatistics().Read(ctx, l.stat)
	require.NoError(t, err)
	assert.Equal(t, 90, stat.MinutesPlayed)

	// New rows continue after the imported keys.
	next := mustCountry(t, dst, "Wales")
	assert.Greater(t, next, l.country)

	// Restrict rules hold on imported data.
	assert.ErrorIs(t, dst.Colors().Delete(ctx, l.red), types.ErrReferentialIntegrity)
}

func TestImport_SkipsBadRows(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	write := func(name string, lines ...string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".jsonl"), []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	}
	write(types.TableCountries,
		`{"id":1,"name":"England"}`,
		`{"id":2,"name":"Spain"`,
		`{"id":3,"name":""}`,
		`{"id":1,"name":"Duplicate"}`,
		`{"name":"No key"}`,
		``,
		`{"id":4,"name":"France"}`,
	)
	write(types.TableTowns,
		`{"id":1,"name":"London","country_id":1}`,
		`{"id":2,"name":"Madrid","country_id":2}`,
	)

	b := setupBackend(t)
	sum, err := b.Import(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, TableImport{Imported: 2, Skipped: 4}, sum.Tables[types.TableCountries])
	assert.Equal(t, TableImport{Imported: 1, Skipped: 1}, sum.Tables[types.TableTowns])
	assert.Equal(t, TableImport{}, sum.Tables[types.TableBets], "missing files import nothing")

	got, err := b.Countries().Read(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "France", got.Name)
}

func TestImport_RequiresEmptyStore(t *testing.T) {
	ctx := context.Background()
	b := setupBackend(t)
	mustCountry(t, b, "England")

	_, err := b.Import(ctx, t.TempDir())
	assert.ErrorIs(t, err, types.ErrStoreNotEmpty)
}

func TestJSONL_ReadWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colors.jsonl")
	records := []json.RawMessage{
		json.RawMessage(`{"id":1,"name":"Red"}`),
		json.RawMessage(`{"id":2,"name":"White"}`),
	}
	require.NoError(t, writeJSONL(path, records))

	got, malformed, err := readJSONL(path)
	require.NoError(t, err)
	assert.Zero(t, malformed)
	assert.Equal(t, records, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file is renamed into place")

	_, _, err = readJSONL(filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
