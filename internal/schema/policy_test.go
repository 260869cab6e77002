package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/footballbetting/pkg/types"
)

func fkNames(fks []ForeignKey) []string {
	var out []string
	for _, fk := range fks {
		out = append(out, fk.Table+"."+fk.Column)
	}
	return out
}

func TestPolicyFor(t *testing.T) {
	p, err := PolicyFor("")
	require.NoError(t, err)
	assert.Equal(t, ActionCascade, p.Default)

	p, err = PolicyFor(types.DeleteRestrict)
	require.NoError(t, err)
	assert.Equal(t, ActionRestrict, p.Default)

	_, err = PolicyFor("set_null")
	assert.ErrorIs(t, err, types.ErrDeletePolicy)
}

func TestClassify(t *testing.T) {
	cascade := Policy{Default: ActionCascade}
	restrict := Policy{Default: ActionRestrict}

	tests := []struct {
		name         string
		table        string
		policy       Policy
		wantRestrict []string
		wantCascade  []string
	}{
		{
			name:         "colors are always restricted by both kit slots",
			table:        types.TableColors,
			policy:       cascade,
			wantRestrict: []string{"teams.primary_kit_color_id", "teams.secondary_kit_color_id"},
		},
		{
			name:         "teams are restricted by games and cascade to players",
			table:        types.TableTeams,
			policy:       cascade,
			wantRestrict: []string{"games.home_team_id", "games.away_team_id"},
			wantCascade:  []string{"players.team_id"},
		},
		{
			name:         "restrict policy blocks players too",
			table:        types.TableTeams,
			policy:       restrict,
			wantRestrict: []string{"players.team_id", "games.home_team_id", "games.away_team_id"},
		},
		{
			name:        "games cascade to statistics and bets",
			table:       types.TableGames,
			policy:      cascade,
			wantCascade: []string{"player_statistics.game_id", "bets.game_id"},
		},
		{
			name:        "countries cascade to towns",
			table:       types.TableCountries,
			policy:      cascade,
			wantCascade: []string{"towns.country_id"},
		},
		{
			name:   "bets have no dependents",
			table:  types.TableBets,
			policy: cascade,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, c := Ledger.Classify(tt.table, tt.policy)
			assert.Equal(t, tt.wantRestrict, fkNames(r))
			assert.Equal(t, tt.wantCascade, fkNames(c))
		})
	}
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "restrict", ActionRestrict.String())
	assert.Equal(t, "cascade", ActionCascade.String())
	assert.Equal(t, "default", ActionDefault.String())
}
