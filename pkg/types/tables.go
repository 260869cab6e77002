package types

// Standard table names for Ledger.GetTable.
const (
	TableCountries        = "countries"
	TableTowns            = "towns"
	TableColors           = "colors"
	TableTeams            = "teams"
	TablePositions        = "positions"
	TablePlayers          = "players"
	TableGames            = "games"
	TablePlayerStatistics = "player_statistics"
	TableUsers            = "users"
	TableBets             = "bets"
)

// StandardTableNames lists all table names in dependency order: every table
// appears after the tables it references.
var StandardTableNames = []string{
	TableCountries,
	TableTowns,
	TableColors,
	TableTeams,
	TablePositions,
	TablePlayers,
	TableGames,
	TablePlayerStatistics,
	TableUsers,
	TableBets,
}
