package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/gameweek-advisor/internal/advisor"
	"github.com/stitts-dev/gameweek-advisor/internal/models"
)

func TestMockProvider_Squad(t *testing.T) {
	squad, err := NewMockProvider().FetchSquad(context.Background(), "", MockGameweek)
	require.NoError(t, err)

	require.Len(t, squad.Players, 15)
	assert.Equal(t, []string{"wildcard"}, squad.ChipsUsed)
	assert.Nil(t, squad.Bank)

	counts := map[models.Position]int{}
	seen := map[int]bool{}
	for _, p := range squad.Players {
		counts[p.Position]++
		assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
		assert.True(t, p.Populated.Has(models.FieldForm|models.FieldPointsPerGame))
	}
	assert.Equal(t, map[models.Position]int{
		models.PositionGK: 2, models.PositionDEF: 5, models.PositionMID: 5, models.PositionFWD: 3,
	}, counts)
}

func TestMockPlayers_FreshCopies(t *testing.T) {
	first := MockPlayers()
	first[0].Form = 0

	assert.NotZero(t, MockPlayers()[0].Form)
	assert.Equal(t, []string{"wildcard"}, MockChipsUsed)
}

func TestMockFixtures_DoubleAndBlank(t *testing.T) {
	set, err := NewMockProvider().FetchFixtures(context.Background(), 20)
	require.NoError(t, err)

	counts := advisor.FixtureCounts(set.Fixtures, 20)
	assert.Equal(t, 2, counts[15], "Newcastle play twice")
	assert.Zero(t, counts[16], "Forest blank")
	assert.Equal(t, 1, counts[1])
	assert.Equal(t, "Nott'm Forest", set.Teams[16])
}

func TestMockMarket(t *testing.T) {
	market, err := NewMockProvider().FetchMarket(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, market)

	set := MockFixtures(MockGameweek)
	squad := MockPlayers()
	ids := make([]int, 0, len(squad))
	for _, p := range squad {
		ids = append(ids, p.ID)
	}

	pool := advisor.FilterMarket(market, ids, advisor.FixtureCounts(set.Fixtures, MockGameweek), advisor.DefaultConfig())
	for _, c := range pool {
		assert.Contains(t, []string{"a", "d"}, c.Status)
		assert.GreaterOrEqual(t, c.Minutes, 60)
		assert.NotEqual(t, 16, c.TeamID)
	}
	assert.Less(t, len(pool), len(market))
}

func TestMockProvider_CurrentGameweek(t *testing.T) {
	gw, err := NewMockProvider().CurrentGameweek(context.Background())
	require.NoError(t, err)
	assert.Equal(t, MockGameweek, gw)
}
