package advisor

import (
	"github.com/stitts-dev/gameweek-advisor/internal/models"
)

const (
	fullMatchMinutes    = 90.0
	maxPointsPerFixture = 15.0
	captainMultiplier   = 2.0
)

// PredictPerFixture scales attacking threat by the share of a full match the
// player is expected to play, clamped to [0, 15].
func PredictPerFixture(p *models.PlayerRecord) float64 {
	minutes := clamp(p.ExpectedMinutes, 0, fullMatchMinutes)
	return clamp(p.AttackingThreat()*minutes/fullMatchMinutes, 0, maxPointsPerFixture)
}

// PredictScore stores the per-fixture prediction on every record and returns
// the squad total. The captain's points are doubled only when exactly one
// record is flagged captain.
// Postcondition: FieldPrediction is set on every record.
func PredictScore(records []*models.PlayerRecord) float64 {
	captains := 0
	for _, p := range records {
		if p.IsCaptain {
			captains++
		}
	}

	total := 0.0
	for _, p := range records {
		p.PredictedPointsPerFixture = PredictPerFixture(p)
		p.Populated |= models.FieldPrediction

		points := p.PredictedPointsPerFixture * float64(p.Fixture.NumberOfFixtures)
		if p.IsCaptain && captains == 1 {
			points *= captainMultiplier
		}
		total += points
	}
	return round2(total)
}
