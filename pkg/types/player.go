package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Position is a playing position such as goalkeeper or forward.
type Position struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Player belongs to a Team and plays in a Position.
type Player struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	SquadNumber int    `json:"squad_number"`
	TeamID      int64  `json:"team_id"`
	PositionID  int64  `json:"position_id"`
	IsInjured   bool   `json:"is_injured"`
}

// PlayerStatisticKey addresses a PlayerStatistic. Both parts are required;
// there is no single-field lookup.
type PlayerStatisticKey struct {
	GameID   int64 `json:"game_id"`
	PlayerID int64 `json:"player_id"`
}

// String renders the key as "<gameID>:<playerID>".
func (k PlayerStatisticKey) String() string {
	return fmt.Sprintf("%d:%d", k.GameID, k.PlayerID)
}

// ParsePlayerStatisticKey parses the form produced by PlayerStatisticKey.String.
func ParsePlayerStatisticKey(s string) (PlayerStatisticKey, error) {
	game, player, ok := strings.Cut(s, ":")
	if !ok {
		return PlayerStatisticKey{}, fmt.Errorf("%w: %q is not <gameID>:<playerID>", ErrInvalidKey, s)
	}
	g, err := strconv.ParseInt(game, 10, 64)
	if err != nil || g <= 0 {
		return PlayerStatisticKey{}, fmt.Errorf("%w: game id %q", ErrInvalidKey, game)
	}
	p, err := strconv.ParseInt(player, 10, 64)
	if err != nil || p <= 0 {
		return PlayerStatisticKey{}, fmt.Errorf("%w: player id %q", ErrInvalidKey, player)
	}
	return PlayerStatisticKey{GameID: g, PlayerID: p}, nil
}

// PlayerStatistic is one player's performance in one game. At most one
// statistic exists per (GameID, PlayerID) pair.
type PlayerStatistic struct {
	GameID        int64 `json:"game_id"`
	PlayerID      int64 `json:"player_id"`
	ScoredGoals   int   `json:"scored_goals"`
	Assists       int   `json:"assists"`
	MinutesPlayed int   `json:"minutes_played"`
}

// Key returns the composite key of s.
func (s *PlayerStatistic) Key() PlayerStatisticKey {
	return PlayerStatisticKey{GameID: s.GameID, PlayerID: s.PlayerID}
}
