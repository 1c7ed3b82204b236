package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/gameweek-advisor/internal/models"
)

func attacker(id int, name string, xg, xa, form, minutes float64, fixtures int) *models.PlayerRecord {
	p := withFixture(newPlayer(id, name, models.PositionMID, form, form, minutes), "Opp", 3, fixtures)
	p.XG, p.XA = xg, xa
	return p
}

func TestSelectCaptains_RanksByThreatThenFormThenMinutes(t *testing.T) {
	players := []*models.PlayerRecord{
		attacker(1, "Low Threat", 0.5, 0.2, 9.0, 90, 1),
		attacker(2, "Tied Less Form", 3.0, 1.0, 6.0, 90, 1),
		attacker(3, "Tied More Form", 3.0, 1.0, 7.0, 60, 1),
		attacker(4, "Tied More Form More Minutes", 3.0, 1.0, 7.0, 90, 1),
	}

	result := SelectCaptains(players, DefaultConfig())

	assert.Equal(t, 4, result.Captain.ID)
	assert.Equal(t, "Tied More Form More Minutes", result.Captain.Name)
	assert.Equal(t, 3, result.ViceCaptain.ID)
	assert.Contains(t, result.Captain.Reason, "xG+xA: 4.00")
}

func TestSelectCaptains_EligibilityGate(t *testing.T) {
	players := []*models.PlayerRecord{
		attacker(1, "Blank Star", 5.0, 2.0, 9.0, 90, 0),
		attacker(2, "Playing", 2.0, 1.0, 6.0, 90, 1),
		attacker(3, "Double", 1.5, 1.0, 5.0, 90, 2),
	}

	result := SelectCaptains(players, DefaultConfig())
	assert.Equal(t, 2, result.Captain.ID)
	assert.Equal(t, 3, result.ViceCaptain.ID)

	cfg := DefaultConfig()
	cfg.RequireFixtureForCaptain = false
	result = SelectCaptains(players, cfg)
	assert.Equal(t, 1, result.Captain.ID)
}

func TestSelectCaptains_NoEligiblePlayers(t *testing.T) {
	for name, players := range map[string][]*models.PlayerRecord{
		"Empty":    {},
		"AllBlank": {attacker(1, "Blank", 2, 1, 7, 90, 0)},
		"NilSlice": nil,
	} {
		t.Run(name, func(t *testing.T) {
			result := SelectCaptains(players, DefaultConfig())

			assert.Equal(t, models.NoPlayerName, result.Captain.Name)
			assert.Equal(t, models.NoPlayerName, result.ViceCaptain.Name)
			assert.NotEmpty(t, result.Captain.Reason)
			assert.NotEmpty(t, result.ViceCaptain.Reason)
			assert.False(t, result.Captain.Filled())
		})
	}
}

func TestSelectCaptains_SingleEligiblePlayer(t *testing.T) {
	players := []*models.PlayerRecord{attacker(9, "Only One", 2, 1, 7, 90, 1)}

	result := SelectCaptains(players, DefaultConfig())

	assert.Equal(t, 9, result.Captain.ID)
	assert.Contains(t, result.Captain.Reason, "Only eligible player")
	assert.Equal(t, models.NoPlayerName, result.ViceCaptain.Name)
	assert.Equal(t, "No second eligible player available this gameweek", result.ViceCaptain.Reason)
}

func TestSelectCaptains_DuplicateIDNeverBecomesVice(t *testing.T) {
	// the same player listed twice must not fill both slots
	first := attacker(5, "Haaland", 4, 1, 9, 90, 1)
	dup := attacker(5, "Haaland", 4, 1, 9, 90, 1)
	other := attacker(6, "Watkins", 2, 1, 6, 90, 1)

	result := SelectCaptains([]*models.PlayerRecord{first, dup, other}, DefaultConfig())
	assert.Equal(t, 5, result.Captain.ID)
	assert.Equal(t, 6, result.ViceCaptain.ID)

	onlyDup := SelectCaptains([]*models.PlayerRecord{first, dup}, DefaultConfig())
	assert.Equal(t, 5, onlyDup.Captain.ID)
	assert.False(t, onlyDup.ViceCaptain.Filled())
}

func TestSelectCaptains_SameNameDifferentIDs(t *testing.T) {
	players := []*models.PlayerRecord{
		attacker(1, "Gabriel", 2, 1, 7, 90, 1),
		attacker(2, "Gabriel", 1, 1, 6, 90, 1),
	}

	result := SelectCaptains(players, DefaultConfig())
	assert.Equal(t, 1, result.Captain.ID)
	assert.Equal(t, 2, result.ViceCaptain.ID)
}

func TestSelectCaptains_DistinctWheneverTwoIDsEligible(t *testing.T) {
	squad := fifteenManSquad()
	EnrichStats(squad)

	result := SelectCaptains(squad, DefaultConfig())
	require.True(t, result.Captain.Filled())
	require.True(t, result.ViceCaptain.Filled())
	assert.NotEqual(t, result.Captain.ID, result.ViceCaptain.ID)
}

func TestApplyCaptaincy(t *testing.T) {
	players := []*models.PlayerRecord{
		attacker(1, "A", 3, 1, 8, 90, 1),
		attacker(2, "B", 2, 1, 7, 90, 1),
		attacker(3, "C", 1, 1, 6, 90, 1),
	}

	ApplyCaptaincy(players, SelectCaptains(players, DefaultConfig()))

	assert.True(t, players[0].IsCaptain)
	assert.True(t, players[1].IsViceCaptain)
	assert.False(t, players[2].IsCaptain || players[2].IsViceCaptain)

	// an unfilled result clears the flags
	ApplyCaptaincy(players, SelectCaptains(nil, DefaultConfig()))
	for _, p := range players {
		assert.False(t, p.IsCaptain)
		assert.False(t, p.IsViceCaptain)
	}
}
