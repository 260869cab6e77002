package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/footballbetting/pkg/types"
)

func TestList(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		check func(t *testing.T, b *Backend, l league)
	}{
		{
			name: "filter on a reference column",
			check: func(t *testing.T, b *Backend, l league) {
				mustPlayer(t, b, "Cole Palmer", 20, l.chelsea, l.position)
				mustPlayer(t, b, "Martin Odegaard", 8, l.arsenal, l.position)

				players, err := b.Players().All(ctx, types.Filter{"team_id": l.arsenal})
				require.NoError(t, err)
				require.Len(t, players, 2)
				for _, p := range players {
					assert.Equal(t, l.arsenal, p.TeamID)
				}
			},
		},
		{
			name: "filter values are coerced to the column type",
			check: func(t *testing.T, b *Backend, l league) {
				assert.Equal(t, 1, count(t, b.Players(), types.Filter{"is_injured": "false", "squad_number": "7"}))
				assert.Equal(t, 1, count(t, b.Games(), types.Filter{"draw_bet_rate": "3.50"}))
				assert.Equal(t, 1, count(t, b.Games(), types.Filter{"date_time": kickoff}))
				assert.Equal(t, 1, count(t, b.Bets(), types.Filter{"prediction": types.PredictionHomeWin}))
				assert.Equal(t, 1, count(t, b.PlayerStatistics(), types.Filter{"player_id": float64(l.player)}))
			},
		},
		{
			name: "results come back in key order and page",
			check: func(t *testing.T, b *Backend, _ league) {
				for _, name := range []string{"Green", "Blue", "Black"} {
					mustColor(t, b, name)
				}
				all, err := b.Colors().All(ctx, nil)
				require.NoError(t, err)
				require.Len(t, all, 5)
				for i := 1; i < len(all); i++ {
					assert.Less(t, all[i-1].ID, all[i].ID)
				}

				page, err := b.Colors().All(ctx, types.Filter{types.FilterLimit: 2, types.FilterOffset: 1})
				require.NoError(t, err)
				require.Len(t, page, 2)
				assert.Equal(t, all[1].ID, page[0].ID)

				tail, err := b.Colors().All(ctx, types.Filter{types.FilterOffset: 3})
				require.NoError(t, err)
				assert.Len(t, tail, 2)
			},
		},
		{
			name: "sequence is restartable and sees later writes",
			check: func(t *testing.T, b *Backend, _ league) {
				seq := b.Countries().List(ctx, nil)
				n := 0
				for _, err := range seq {
					require.NoError(t, err)
					n++
				}
				assert.Equal(t, 1, n)

				mustCountry(t, b, "Scotland")
				n = 0
				for _, err := range seq {
					require.NoError(t, err)
					n++
				}
				assert.Equal(t, 2, n)
			},
		},
		{
			name: "early break stops the sequence",
			check: func(t *testing.T, b *Backend, _ league) {
				mustColor(t, b, "Green")
				seen := 0
				for c, err := range b.Colors().List(ctx, nil) {
					require.NoError(t, err)
					require.NotNil(t, c)
					seen++
					break
				}
				assert.Equal(t, 1, seen)
				assert.Equal(t, 3, count(t, b.Colors(), nil), "connection is released after break")
			},
		},
		{
			name: "invalid filters",
			check: func(t *testing.T, b *Backend, _ league) {
				for _, f := range []types.Filter{
					{"nationality": "English"},
					{"team_id": "arsenal"},
					{types.FilterLimit: -1},
					{types.FilterOffset: "ten"},
				} {
					_, err := b.Players().All(ctx, f)
					assert.ErrorIs(t, err, types.ErrInvalidFilter, "filter %v", f)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setupBackend(t)
			tt.check(t, b, seedLeague(t, b))
		})
	}
}
