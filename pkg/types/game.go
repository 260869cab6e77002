package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Game is a played or scheduled match with the odds offered on it. Teams
// referenced by a game cannot be deleted.
type Game struct {
	ID              int64           `json:"id"`
	HomeTeamID      int64           `json:"home_team_id"`
	AwayTeamID      int64           `json:"away_team_id"`
	HomeTeamGoals   int             `json:"home_team_goals"`
	AwayTeamGoals   int             `json:"away_team_goals"`
	DateTime        time.Time       `json:"date_time"`
	HomeTeamBetRate decimal.Decimal `json:"home_team_bet_rate"`
	AwayTeamBetRate decimal.Decimal `json:"away_team_bet_rate"`
	DrawBetRate     decimal.Decimal `json:"draw_bet_rate"`
	Result          string          `json:"result"` // ASCII only, at most 150 characters
}
