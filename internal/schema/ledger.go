package schema

import "github.com/mesh-intelligence/footballbetting/pkg/types"

func key() Column {
	return Column{Name: "id", Field: "ID", Kind: KindKey}
}

func ref(name, field string) Column {
	return Column{Name: name, Field: field, Kind: KindRef, Required: true}
}

func name(maxLen int) Column {
	return Column{Name: "name", Field: "Name", Kind: KindText, Required: true, MaxLen: maxLen}
}

func count(name, field string) Column {
	return Column{Name: name, Field: field, Kind: KindInt, Required: true, Check: CheckNonNegative}
}

func positive(name, field string) Column {
	return Column{Name: name, Field: field, Kind: KindDecimal, Required: true, Check: CheckPositive}
}

var predictions = func() []string {
	out := make([]string, len(types.Predictions))
	for i, p := range types.Predictions {
		out[i] = string(p)
	}
	return out
}()

// Ledger is the football betting schema.
var Ledger = MustNew(
	&Table{
		Name:    types.TableCountries,
		Key:     []string{"id"},
		Columns: []Column{key(), name(50)},
	},
	&Table{
		Name:    types.TableTowns,
		Key:     []string{"id"},
		Columns: []Column{key(), name(50), ref("country_id", "CountryID")},
		ForeignKeys: []ForeignKey{
			{Column: "country_id", Ref: types.TableCountries},
		},
	},
	&Table{
		Name:    types.TableColors,
		Key:     []string{"id"},
		Columns: []Column{key(), name(50)},
	},
	&Table{
		Name: types.TableTeams,
		Key:  []string{"id"},
		Columns: []Column{
			key(),
			name(50),
			{Name: "logo_url", Field: "LogoURL", Kind: KindText, Required: true, ASCII: true},
			{Name: "initials", Field: "Initials", Kind: KindText, Required: true, MaxLen: 3},
			ref("primary_kit_color_id", "PrimaryKitColorID"),
			ref("secondary_kit_color_id", "SecondaryKitColorID"),
			ref("town_id", "TownID"),
		},
		ForeignKeys: []ForeignKey{
			{Column: "primary_kit_color_id", Ref: types.TableColors, OnDelete: ActionRestrict},
			{Column: "secondary_kit_color_id", Ref: types.TableColors, OnDelete: ActionRestrict},
			{Column: "town_id", Ref: types.TableTowns},
		},
	},
	&Table{
		Name:    types.TablePositions,
		Key:     []string{"id"},
		Columns: []Column{key(), name(30)},
	},
	&Table{
		Name: types.TablePlayers,
		Key:  []string{"id"},
		Columns: []Column{
			key(),
			name(80),
			count("squad_number", "SquadNumber"),
			ref("team_id", "TeamID"),
			ref("position_id", "PositionID"),
			{Name: "is_injured", Field: "IsInjured", Kind: KindBool, Required: true},
		},
		ForeignKeys: []ForeignKey{
			{Column: "team_id", Ref: types.TableTeams},
			{Column: "position_id", Ref: types.TablePositions},
		},
	},
	&Table{
		Name: types.TableGames,
		Key:  []string{"id"},
		Columns: []Column{
			key(),
			ref("home_team_id", "HomeTeamID"),
			ref("away_team_id", "AwayTeamID"),
			count("home_team_goals", "HomeTeamGoals"),
			count("away_team_goals", "AwayTeamGoals"),
			{Name: "date_time", Field: "DateTime", Kind: KindTime, Required: true},
			positive("home_team_bet_rate", "HomeTeamBetRate"),
			positive("away_team_bet_rate", "AwayTeamBetRate"),
			positive("draw_bet_rate", "DrawBetRate"),
			{Name: "result", Field: "Result", Kind: KindText, Required: true, MaxLen: 150, ASCII: true},
		},
		ForeignKeys: []ForeignKey{
			{Column: "home_team_id", Ref: types.TableTeams, OnDelete: ActionRestrict},
			{Column: "away_team_id", Ref: types.TableTeams, OnDelete: ActionRestrict},
		},
	},
	&Table{
		Name: types.TablePlayerStatistics,
		Key:  []string{"game_id", "player_id"},
		Columns: []Column{
			ref("game_id", "GameID"),
			ref("player_id", "PlayerID"),
			count("scored_goals", "ScoredGoals"),
			count("assists", "Assists"),
			count("minutes_played", "MinutesPlayed"),
		},
		ForeignKeys: []ForeignKey{
			{Column: "game_id", Ref: types.TableGames},
			{Column: "player_id", Ref: types.TablePlayers},
		},
	},
	&Table{
		Name: types.TableUsers,
		Key:  []string{"id"},
		Columns: []Column{
			key(),
			{Name: "username", Field: "Username", Kind: KindText, Required: true, MaxLen: 50},
			name(80),
			{Name: "password", Field: "Password", Kind: KindText, Required: true, MaxLen: 256, ASCII: true},
			{Name: "email", Field: "Email", Kind: KindText, Required: true, MaxLen: 100, ASCII: true},
		},
	},
	&Table{
		Name: types.TableBets,
		Key:  []string{"id"},
		Columns: []Column{
			key(),
			positive("amount", "Amount"),
			{Name: "prediction", Field: "Prediction", Kind: KindText, Required: true, Enum: predictions},
			{Name: "date_time", Field: "DateTime", Kind: KindTime, Required: true},
			ref("game_id", "GameID"),
			ref("user_id", "UserID"),
		},
		ForeignKeys: []ForeignKey{
			{Column: "game_id", Ref: types.TableGames},
			{Column: "user_id", Ref: types.TableUsers},
		},
	},
)
