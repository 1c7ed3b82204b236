package advisor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/gameweek-advisor/internal/models"
)

func TestEnrichStats_DerivesFromForm(t *testing.T) {
	players := []*models.PlayerRecord{
		newPlayer(1, "Salah", models.PositionMID, 8.0, 7.0, 90),
		newPlayer(2, "Injured", models.PositionDEF, 3.0, 4.0, 60),
	}
	players[1].InjuryRisk = true

	enriched := EnrichStats(players)
	require.Len(t, enriched, 2)

	assert.Equal(t, 4.4, enriched[0].XG)
	assert.Equal(t, 2.4, enriched[0].XA)
	assert.Equal(t, 16.0, enriched[0].Shots)
	assert.Equal(t, "None", enriched[0].InjuryStatus)
	assert.Equal(t, "-", enriched[0].ReturnDate)

	assert.Equal(t, 1.65, enriched[1].XG)
	assert.Equal(t, 0.9, enriched[1].XA)
	assert.Equal(t, 6.0, enriched[1].Shots)
	assert.Equal(t, "Possibly Injured", enriched[1].InjuryStatus)
	assert.Equal(t, "TBD", enriched[1].ReturnDate)

	// order and identity are preserved
	assert.Equal(t, 1, enriched[0].ID)
	assert.Equal(t, 2, enriched[1].ID)
	assert.True(t, enriched[0].Populated.Has(models.FieldStats|models.FieldInjury))
}

func TestEnrichStats_MissingFormDefaultsToZero(t *testing.T) {
	players := []*models.PlayerRecord{{ID: 7, Name: "No Form", Position: models.PositionFWD}}

	EnrichStats(players)

	assert.Zero(t, players[0].XG)
	assert.Zero(t, players[0].XA)
	assert.Zero(t, players[0].Shots)
}

func TestEnrichStats_Idempotent(t *testing.T) {
	players := []*models.PlayerRecord{newPlayer(1, "Saka", models.PositionMID, 6.7, 5.5, 85)}

	EnrichStats(players)
	first := *players[0]
	EnrichStats(players)

	assert.Equal(t, first.XG, players[0].XG)
	assert.Equal(t, first.XA, players[0].XA)
	assert.Equal(t, first.Shots, players[0].Shots)
}

func TestClassifyFormTrends(t *testing.T) {
	tests := []struct {
		name string
		form float64
		ppg  float64
		want models.FormTrend
	}{
		{"TrendingUp", 6.1, 5.5, models.TrendUp},
		{"TrendingDown", 4.0, 5.0, models.TrendDown},
		{"StableInsideBand", 5.4, 5.0, models.TrendStable},
		{"UpperEdgeIsStable", 5.5, 5.0, models.TrendStable},
		{"LowerEdgeIsStable", 4.5, 5.0, models.TrendStable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			players := []*models.PlayerRecord{newPlayer(1, "P", models.PositionMID, tc.form, tc.ppg, 90)}
			_, missing := ClassifyFormTrends(players)
			require.Empty(t, missing)
			assert.Equal(t, tc.want, players[0].FormTrend)
		})
	}
}

func TestClassifyFormTrends_ReportsMissingFields(t *testing.T) {
	noPPG := newPlayer(2, "No PPG", models.PositionDEF, 5.0, 0, 90)
	noPPG.Populated = models.FieldForm
	noForm := &models.PlayerRecord{ID: 3, Name: "No Form", Position: models.PositionFWD, Populated: models.FieldPointsPerGame}
	ok := newPlayer(1, "Fine", models.PositionMID, 5.0, 5.0, 90)

	_, missing := ClassifyFormTrends([]*models.PlayerRecord{ok, noPPG, noForm})

	require.Len(t, missing, 2)
	assert.Equal(t, 2, missing[0].PlayerID)
	assert.Equal(t, "points_per_game", missing[0].Field)
	assert.Equal(t, 3, missing[1].PlayerID)
	assert.Equal(t, "form", missing[1].Field)
	assert.True(t, errors.Is(missing[0], ErrMissingField))

	assert.Equal(t, models.TrendStable, ok.FormTrend)
	assert.Empty(t, noPPG.FormTrend)
	assert.False(t, noForm.Populated.Has(models.FieldTrend))
}
