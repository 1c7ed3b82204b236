package advisor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/gameweek-advisor/internal/models"
)

func countPositions(entries []models.LineupEntry) map[models.Position]int {
	counts := make(map[models.Position]int)
	for _, e := range entries {
		counts[e.Position]++
	}
	return counts
}

func TestSelectLineup_FifteenManSquad(t *testing.T) {
	squad := fifteenManSquad()

	result := SelectLineup(squad, DefaultConfig())

	require.Len(t, result.Starting, StartingXISize)
	require.Len(t, result.Bench, 4)

	counts := countPositions(result.Starting)
	assert.Equal(t, 1, counts[models.PositionGK])
	assert.GreaterOrEqual(t, counts[models.PositionDEF], 3)
	assert.GreaterOrEqual(t, counts[models.PositionMID], 2)
	assert.GreaterOrEqual(t, counts[models.PositionFWD], 1)

	// the higher-form keeper starts
	assert.Equal(t, 1, result.Starting[0].ID)

	assert.Equal(t, []int{1, 3, 4, 5, 8, 9, 13, 6, 7, 10, 11}, ids(result.Starting))
	assert.Equal(t, []int{2, 12, 14, 15}, ids(result.Bench))
	assert.Equal(t, "Form 10.0, likely to start vs Opp", result.Starting[0].Reason)
	assert.Equal(t, "Lower form or minutes, held in reserve", result.Bench[0].Reason)
}

func TestSelectLineup_StartersAndBenchPartitionSquad(t *testing.T) {
	squad := fifteenManSquad()
	result := SelectLineup(squad, DefaultConfig())

	seen := make(map[int]int)
	for _, id := range append(ids(result.Starting), ids(result.Bench)...) {
		seen[id]++
	}
	assert.Len(t, seen, len(squad))
	for id, n := range seen {
		assert.Equal(t, 1, n, "player %d listed more than once", id)
	}
}

func TestSelectLineup_Empty(t *testing.T) {
	result := SelectLineup(nil, DefaultConfig())

	assert.NotNil(t, result.Starting)
	assert.NotNil(t, result.Bench)
	assert.Empty(t, result.Starting)
	assert.Empty(t, result.Bench)
}

func TestSelectLineup_ShortSquadStartsEveryone(t *testing.T) {
	squad := []*models.PlayerRecord{
		newPlayer(1, "Keeper", models.PositionGK, 4, 4, 90),
		newPlayer(2, "Def", models.PositionDEF, 5, 5, 90),
		newPlayer(3, "Mid", models.PositionMID, 6, 6, 90),
	}

	result := SelectLineup(squad, DefaultConfig())

	assert.Equal(t, []int{1, 2, 3}, ids(result.Starting))
	assert.Empty(t, result.Bench)
	// no fixture data falls back to the unknown label
	assert.Contains(t, result.Starting[0].Reason, UnknownOpponent)
}

func TestSelectLineup_SecondKeeperNeverFillsFreeSlot(t *testing.T) {
	squad := []*models.PlayerRecord{
		newPlayer(1, "GK One", models.PositionGK, 9, 9, 90),
		newPlayer(2, "GK Two", models.PositionGK, 9, 9, 90),
	}
	for i := 0; i < 5; i++ {
		squad = append(squad, newPlayer(10+i, "Def", models.PositionDEF, 2, 2, 90))
	}

	result := SelectLineup(squad, DefaultConfig())

	assert.Equal(t, 1, countPositions(result.Starting)[models.PositionGK])
	assert.Equal(t, []int{2}, ids(result.Bench))
}

func TestSelectLineup_TiesKeepInputOrder(t *testing.T) {
	squad := []*models.PlayerRecord{
		newPlayer(1, "GK", models.PositionGK, 5, 5, 90),
		newPlayer(2, "FWD A", models.PositionFWD, 5, 5, 90),
		newPlayer(3, "FWD B", models.PositionFWD, 5, 5, 90),
	}

	result := SelectLineup(squad, DefaultConfig())
	assert.Equal(t, []int{1, 2, 3}, ids(result.Starting))

	// minutes break a form tie
	squad[2].ExpectedMinutes = 95
	result = SelectLineup(squad, DefaultConfig())
	assert.Equal(t, []int{1, 3, 2}, ids(result.Starting))
}

func TestSelectLineup_UnknownPositionIsBenchedAndReported(t *testing.T) {
	squad := fifteenManSquad()
	squad[0].Position = models.Position("UNK")

	result := SelectLineup(squad, DefaultConfig())

	require.Len(t, result.Issues, 1)
	assert.Equal(t, 1, result.Issues[0].PlayerID)
	assert.True(t, errors.Is(result.Issues[0], ErrUnknownPosition))

	assert.NotContains(t, ids(result.Starting), 1)
	assert.Contains(t, ids(result.Bench), 1)
	assert.Equal(t, len(squad), len(result.Starting)+len(result.Bench))
	assert.Equal(t, 2, result.Starting[0].ID)
}

func TestSelectLineup_ExcludeBlankFromBench(t *testing.T) {
	squad := fifteenManSquad()
	// lowest-form forward has no fixture
	squad[14].Fixture.NumberOfFixtures = 0

	result := SelectLineup(squad, DefaultConfig())
	assert.Contains(t, ids(result.Bench), 15)
	assert.Empty(t, result.Unavailable)

	cfg := DefaultConfig()
	cfg.ExcludeBlankFromBench = true
	result = SelectLineup(squad, cfg)
	assert.NotContains(t, ids(result.Bench), 15)
	require.Len(t, result.Unavailable, 1)
	assert.Equal(t, "No fixture this gameweek", result.Unavailable[0].Reason)
}
