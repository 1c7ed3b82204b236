package advisor

import (
	"fmt"

	"github.com/stitts-dev/gameweek-advisor/internal/models"
)

const (
	poorFormThreshold     = 2.5
	toughFixtureThreshold = 4
)

// DetectAlerts raises at most one alert per player. Injury beats poor form,
// which beats a tough fixture.
func DetectAlerts(records []*models.PlayerRecord) []models.Alert {
	alerts := []models.Alert{}
	for _, p := range records {
		switch {
		case p.InjuryRisk:
			alerts = append(alerts, models.Alert{
				ID:      p.ID,
				Name:    p.Name,
				Type:    models.AlertInjury,
				Message: fmt.Sprintf("%s – Return: %s", injuryStatusOf(p), returnDateOf(p)),
			})
		case p.Form < poorFormThreshold:
			alerts = append(alerts, models.Alert{
				ID:      p.ID,
				Name:    p.Name,
				Type:    models.AlertForm,
				Message: "Poor form – consider benching or transferring",
			})
		case p.Fixture.OpponentDifficulty >= toughFixtureThreshold:
			alerts = append(alerts, models.Alert{
				ID:      p.ID,
				Name:    p.Name,
				Type:    models.AlertFixture,
				Message: fmt.Sprintf("Tough opponent: %s", opponentLabel(p)),
			})
		}
	}
	return alerts
}

// injuryStatusOf reads the enriched status; News stays on the overview entry
func injuryStatusOf(p *models.PlayerRecord) string {
	if p.InjuryStatus != "" {
		return p.InjuryStatus
	}
	return injuryStatusDoubt
}

func returnDateOf(p *models.PlayerRecord) string {
	if p.ReturnDate != "" {
		return p.ReturnDate
	}
	return returnDateUnknown
}
