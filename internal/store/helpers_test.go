package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/footballbetting/pkg/types"
)

// setupBackend attaches a sqlite Backend in a temporary directory and
// detaches it when the test ends.
func setupBackend(t *testing.T, opts ...func(*types.Config)) *Backend {
	t.Helper()
	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	for _, opt := range opts {
		opt(&config)
	}
	require.NoError(t, b.Attach(context.Background(), config))
	t.Cleanup(func() { b.Detach() })
	return b
}

func restrictPolicy(c *types.Config) { c.DeletePolicy = types.DeleteRestrict }

var kickoff = time.Date(2026, time.March, 14, 15, 0, 0, 0, time.UTC)

func mustCountry(t *testing.T, b *Backend, name string) int64 {
	t.Helper()
	id, err := b.Countries().Create(context.Background(), &types.Country{Name: name})
	require.NoError(t, err)
	return id
}

func mustTown(t *testing.T, b *Backend, name string, countryID int64) int64 {
	t.Helper()
	id, err := b.Towns().Create(context.Background(), &types.Town{Name: name, CountryID: countryID})
	require.NoError(t, err)
	return id
}

func mustColor(t *testing.T, b *Backend, name string) int64 {
	t.Helper()
	id, err := b.Colors().Create(context.Background(), &types.Color{Name: name})
	require.NoError(t, err)
	return id
}

func newTeam(name string, townID, primary, secondary int64) *types.Team {
	return &types.Team{
		Name:                name,
		LogoURL:             "https://example.com/" + name + ".png",
		Initials:            name[:3],
		PrimaryKitColorID:   primary,
		SecondaryKitColorID: secondary,
		TownID:              townID,
	}
}

func mustTeam(t *testing.T, b *Backend, name string, townID, primary, secondary int64) int64 {
	t.Helper()
	id, err := b.Teams().Create(context.Background(), newTeam(name, townID, primary, secondary))
	require.NoError(t, err)
	return id
}

func mustPosition(t *testing.T, b *Backend, name string) int64 {
	t.Helper()
	id, err := b.Positions().Create(context.Background(), &types.Position{Name: name})
	require.NoError(t, err)
	return id
}

func mustPlayer(t *testing.T, b *Backend, name string, number int, teamID, positionID int64) int64 {
	t.Helper()
	id, err := b.Players().Create(context.Background(), &types.Player{
		Name:        name,
		SquadNumber: number,
		TeamID:      teamID,
		PositionID:  positionID,
	})
	require.NoError(t, err)
	return id
}

func newGame(home, away int64) *types.Game {
	return &types.Game{
		HomeTeamID:      home,
		AwayTeamID:      away,
		HomeTeamGoals:   2,
		AwayTeamGoals:   1,
		DateTime:        kickoff,
		HomeTeamBetRate: decimal.RequireFromString("1.85"),
		AwayTeamBetRate: decimal.RequireFromString("4.2"),
		DrawBetRate:     decimal.RequireFromString("3.5"),
		Result:          "2-1",
	}
}

func mustGame(t *testing.T, b *Backend, home, away int64) int64 {
	t.Helper()
	id, err := b.Games().Create(context.Background(), newGame(home, away))
	require.NoError(t, err)
	return id
}

func mustUser(t *testing.T, b *Backend, username string) int64 {
	t.Helper()
	id, err := b.Users().Create(context.Background(), &types.User{
		Username: username,
		Name:     "Test " + username,
		Password: "s3cret",
		Email:    username + "@example.com",
	})
	require.NoError(t, err)
	return id
}

func mustBet(t *testing.T, b *Backend, gameID, userID int64) int64 {
	t.Helper()
	id, err := b.Bets().Create(context.Background(), &types.Bet{
		Amount:     decimal.RequireFromString("10.5"),
		Prediction: types.PredictionHomeWin,
		DateTime:   kickoff.Add(-time.Hour),
		GameID:     gameID,
		UserID:     userID,
	})
	require.NoError(t, err)
	return id
}

// league is a small fully linked data set: one country, town and two teams
// with a game between them, a player with statistics and a bet.
type league struct {
	country, town    int64
	red, white       int64
	arsenal, chelsea int64
	position, player int64
	game, user, bet  int64
	stat             types.PlayerStatisticKey
}

func seedLeague(t *testing.T, b *Backend) league {
	t.Helper()
	var l league
	l.country = mustCountry(t, b, "England")
	l.town = mustTown(t, b, "London", l.country)
	l.red = mustColor(t, b, "Red")
	l.white = mustColor(t, b, "White")
	l.arsenal = mustTeam(t, b, "Arsenal", l.town, l.red, l.white)
	l.chelsea = mustTeam(t, b, "Chelsea", l.town, l.white, l.red)
	l.position = mustPosition(t, b, "Forward")
	l.player = mustPlayer(t, b, "Bukayo Saka", 7, l.arsenal, l.position)
	l.game = mustGame(t, b, l.arsenal, l.chelsea)
	l.user = mustUser(t, b, "punter")
	l.bet = mustBet(t, b, l.game, l.user)

	stat := &types.PlayerStatistic{GameID: l.game, PlayerID: l.player, ScoredGoals: 1, Assists: 1, MinutesPlayed: 90}
	key, err := b.PlayerStatistics().Create(context.Background(), stat)
	require.NoError(t, err)
	l.stat = key
	return l
}

func count[E any, K comparable](t *testing.T, r *Repository[E, K], filter types.Filter) int {
	t.Helper()
	all, err := r.All(context.Background(), filter)
	require.NoError(t, err)
	return len(all)
}
