package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/gameweek-advisor/internal/models"
)

func TestSuggestTransfers_PairsWeakestWithStrongest(t *testing.T) {
	squad := fifteenManSquad()

	suggestions := SuggestTransfers(squad, DefaultConfig())

	require.Len(t, suggestions, 3)
	assert.Equal(t, 15, suggestions[0].OutID)
	assert.Equal(t, 1, suggestions[0].InID)
	assert.Equal(t, 14, suggestions[1].OutID)
	assert.Equal(t, 2, suggestions[1].InID)
	assert.Equal(t, 13, suggestions[2].OutID)
	assert.Equal(t, 3, suggestions[2].InID)
	assert.Contains(t, suggestions[0].Reason, "has low form (3.0) and a tough opponent (Opp)")
}

func TestSuggestTransfers_SkipsInjuredAndLowMinutes(t *testing.T) {
	injured := newPlayer(1, "Injured", models.PositionMID, 1.0, 2, 90)
	injured.InjuryRisk = true
	rotation := newPlayer(2, "Rotation", models.PositionMID, 9.0, 6, 30)
	starter := newPlayer(3, "Starter", models.PositionMID, 7.0, 6, 90)
	weak := newPlayer(4, "Weak", models.PositionDEF, 2.0, 2, 90)

	suggestions := SuggestTransfers([]*models.PlayerRecord{injured, rotation, starter, weak}, DefaultConfig())

	require.NotEmpty(t, suggestions)
	assert.Equal(t, 4, suggestions[0].OutID)
	assert.Equal(t, 3, suggestions[0].InID)
	for _, s := range suggestions {
		assert.NotEqual(t, 1, s.OutID)
		assert.NotEqual(t, 1, s.InID)
		assert.NotEqual(t, 2, s.InID)
	}
}

func TestSuggestTransfers_NeverPairsPlayerWithThemself(t *testing.T) {
	only := newPlayer(1, "Solo", models.PositionMID, 5, 5, 90)

	assert.Empty(t, SuggestTransfers([]*models.PlayerRecord{only}, DefaultConfig()))
}

func TestSuggestTransfers_RespectsLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TransferLimit = 1

	assert.Len(t, SuggestTransfers(fifteenManSquad(), cfg), 1)

	cfg.TransferLimit = 0
	suggestions := SuggestTransfers(fifteenManSquad(), cfg)
	assert.NotNil(t, suggestions)
	assert.Empty(t, suggestions)
}
