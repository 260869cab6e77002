package store

import (
	"fmt"
	"strconv"

	"github.com/mesh-intelligence/footballbetting/internal/schema"
	"github.com/mesh-intelligence/footballbetting/pkg/types"
)

// binding maps an entity struct E with key type K onto a schema table.
// Bindings are written by hand per entity; the repository is generic over
// them.
type binding[E any, K comparable] struct {
	table      *schema.Table
	toRecord   func(*E) schema.Record
	fromRecord func(schema.Record) *E
	keyOf      func(*E) K
	setKey     func(*E, K)
	keyArgs    func(K) []any
	formatKey  func(K) string
	parseKey   func(string) (K, error)
	// fromID is set for tables with a store-assigned key.
	fromID func(int64) K
}

func mustTable(name string) *schema.Table {
	t, ok := schema.Ledger.Table(name)
	if !ok {
		panic("store: table not declared: " + name)
	}
	return t
}

// surrogate builds a binding for a table keyed by a single store-assigned id.
func surrogate[E any](
	name string,
	id func(*E) *int64,
	to func(*E) schema.Record,
	from func(schema.Record) *E,
) *binding[E, int64] {
	return &binding[E, int64]{
		table:      mustTable(name),
		toRecord:   to,
		fromRecord: from,
		keyOf:      func(e *E) int64 { return *id(e) },
		setKey:     func(e *E, k int64) { *id(e) = k },
		keyArgs:    func(k int64) []any { return []any{k} },
		formatKey:  func(k int64) string { return strconv.FormatInt(k, 10) },
		parseKey:   parseID,
		fromID:     func(k int64) int64 { return k },
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", types.ErrInvalidKey, s)
	}
	return id, nil
}

var countryBinding = surrogate(types.TableCountries,
	func(e *types.Country) *int64 { return &e.ID },
	func(e *types.Country) schema.Record {
		return schema.Record{"id": e.ID, "name": e.Name}
	},
	func(r schema.Record) *types.Country {
		return &types.Country{ID: recInt64(r, "id"), Name: recString(r, "name")}
	},
)

var townBinding = surrogate(types.TableTowns,
	func(e *types.Town) *int64 { return &e.ID },
	func(e *types.Town) schema.Record {
		return schema.Record{"id": e.ID, "name": e.Name, "country_id": e.CountryID}
	},
	func(r schema.Record) *types.Town {
		return &types.Town{
			ID:        recInt64(r, "id"),
			Name:      recString(r, "name"),
			CountryID: recInt64(r, "country_id"),
		}
	},
)

var colorBinding = surrogate(types.TableColors,
	func(e *types.Color) *int64 { return &e.ID },
	func(e *types.Color) schema.Record {
		return schema.Record{"id": e.ID, "name": e.Name}
	},
	func(r schema.Record) *types.Color {
		return &types.Color{ID: recInt64(r, "id"), Name: recString(r, "name")}
	},
)

var teamBinding = surrogate(types.TableTeams,
	func(e *types.Team) *int64 { return &e.ID },
	func(e *types.Team) schema.Record {
		return schema.Record{
			"id":                     e.ID,
			"name":                   e.Name,
			"logo_url":               e.LogoURL,
			"initials":               e.Initials,
			"primary_kit_color_id":   e.PrimaryKitColorID,
			"secondary_kit_color_id": e.SecondaryKitColorID,
			"town_id":                e.TownID,
		}
	},
	func(r schema.Record) *types.Team {
		return &types.Team{
			ID:                  recInt64(r, "id"),
			Name:                recString(r, "name"),
			LogoURL:             recString(r, "logo_url"),
			Initials:            recString(r, "initials"),
			PrimaryKitColorID:   recInt64(r, "primary_kit_color_id"),
			SecondaryKitColorID: recInt64(r, "secondary_kit_color_id"),
			TownID:              recInt64(r, "town_id"),
		}
	},
)

var positionBinding = surrogate(types.TablePositions,
	func(e *types.Position) *int64 { return &e.ID },
	func(e *types.Position) schema.Record {
		return schema.Record{"id": e.ID, "name": e.Name}
	},
	func(r schema.Record) *types.Position {
		return &types.Position{ID: recInt64(r, "id"), Name: recString(r, "name")}
	},
)

var playerBinding = surrogate(types.TablePlayers,
	func(e *types.Player) *int64 { return &e.ID },
	func(e *types.Player) schema.Record {
		return schema.Record{
			"id":           e.ID,
			"name":         e.Name,
			"squad_number": int64(e.SquadNumber),
			"team_id":      e.TeamID,
			"position_id":  e.PositionID,
			"is_injured":   e.IsInjured,
		}
	},
	func(r schema.Record) *types.Player {
		return &types.Player{
			ID:          recInt64(r, "id"),
			Name:        recString(r, "name"),
			SquadNumber: recInt(r, "squad_number"),
			TeamID:      recInt64(r, "team_id"),
			PositionID:  recInt64(r, "position_id"),
			IsInjured:   recBool(r, "is_injured"),
		}
	},
)

var gameBinding = surrogate(types.TableGames,
	func(e *types.Game) *int64 { return &e.ID },
	func(e *types.Game) schema.Record {
		return schema.Record{
			"id":                 e.ID,
			"home_team_id":       e.HomeTeamID,
			"away_team_id":       e.AwayTeamID,
			"home_team_goals":    int64(e.HomeTeamGoals),
			"away_team_goals":    int64(e.AwayTeamGoals),
			"date_time":          e.DateTime,
			"home_team_bet_rate": e.HomeTeamBetRate,
			"away_team_bet_rate": e.AwayTeamBetRate,
			"draw_bet_rate":      e.DrawBetRate,
			"result":             e.Result,
		}
	},
	func(r schema.Record) *types.Game {
		return &types.Game{
			ID:              recInt64(r, "id"),
			HomeTeamID:      recInt64(r, "home_team_id"),
			AwayTeamID:      recInt64(r, "away_team_id"),
			HomeTeamGoals:   recInt(r, "home_team_goals"),
			AwayTeamGoals:   recInt(r, "away_team_goals"),
			DateTime:        recTime(r, "date_time"),
			HomeTeamBetRate: recDecimal(r, "home_team_bet_rate"),
			AwayTeamBetRate: recDecimal(r, "away_team_bet_rate"),
			DrawBetRate:     recDecimal(r, "draw_bet_rate"),
			Result:          recString(r, "result"),
		}
	},
)

var userBinding = surrogate(types.TableUsers,
	func(e *types.User) *int64 { return &e.ID },
	func(e *types.User) schema.Record {
		return schema.Record{
			"id":       e.ID,
			"username": e.Username,
			"name":     e.Name,
			"password": e.Password,
			"email":    e.Email,
		}
	},
	func(r schema.Record) *types.User {
		return &types.User{
			ID:       recInt64(r, "id"),
			Username: recString(r, "username"),
			Name:     recString(r, "name"),
			Password: recString(r, "password"),
			Email:    recString(r, "email"),
		}
	},
)

var betBinding = surrogate(types.TableBets,
	func(e *types.Bet) *int64 { return &e.ID },
	func(e *types.Bet) schema.Record {
		return schema.Record{
			"id":         e.ID,
			"amount":     e.Amount,
			"prediction": string(e.Prediction),
			"date_time":  e.DateTime,
			"game_id":    e.GameID,
			"user_id":    e.UserID,
		}
	},
	func(r schema.Record) *types.Bet {
		return &types.Bet{
			ID:         recInt64(r, "id"),
			Amount:     recDecimal(r, "amount"),
			Prediction: types.Prediction(recString(r, "prediction")),
			DateTime:   recTime(r, "date_time"),
			GameID:     recInt64(r, "game_id"),
			UserID:     recInt64(r, "user_id"),
		}
	},
)

// playerStatisticBinding addresses rows by the (game, player) pair only.
var playerStatisticBinding = &binding[types.PlayerStatistic, types.PlayerStatisticKey]{
	table: mustTable(types.TablePlayerStatistics),
	toRecord: func(e *types.PlayerStatistic) schema.Record {
		return schema.Record{
			"game_id":        e.GameID,
			"player_id":      e.PlayerID,
			"scored_goals":   int64(e.ScoredGoals),
			"assists":        int64(e.Assists),
			"minutes_played": int64(e.MinutesPlayed),
		}
	},
	fromRecord: func(r schema.Record) *types.PlayerStatistic {
		return &types.PlayerStatistic{
			GameID:        recInt64(r, "game_id"),
			PlayerID:      recInt64(r, "player_id"),
			ScoredGoals:   recInt(r, "scored_goals"),
			Assists:       recInt(r, "assists"),
			MinutesPlayed: recInt(r, "minutes_played"),
		}
	},
	keyOf: (*types.PlayerStatistic).Key,
	setKey: func(e *types.PlayerStatistic, k types.PlayerStatisticKey) {
		e.GameID, e.PlayerID = k.GameID, k.PlayerID
	},
	keyArgs: func(k types.PlayerStatisticKey) []any {
		return []any{k.GameID, k.PlayerID}
	},
	formatKey: types.PlayerStatisticKey.String,
	parseKey:  types.ParsePlayerStatisticKey,
}
