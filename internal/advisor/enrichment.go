package advisor

import (
	"math"

	"github.com/stitts-dev/gameweek-advisor/internal/models"
)

const (
	xgPerForm    = 0.55
	xaPerForm    = 0.30
	shotsPerForm = 2.0

	injuryStatusFit   = "None"
	injuryStatusDoubt = "Possibly Injured"
	returnDateFit     = "-"
	returnDateUnknown = "TBD"
)

// EnrichStats estimates attacking stats from form and derives injury status.
// Postcondition: FieldStats and FieldInjury are set on every record.
func EnrichStats(records []*models.PlayerRecord) []*models.PlayerRecord {
	for _, p := range records {
		// an absent form is the zero value, which is the documented default
		form := p.Form
		p.XG = round2(form * xgPerForm)
		p.XA = round2(form * xaPerForm)
		p.Shots = math.Round(form * shotsPerForm)
		p.Populated |= models.FieldStats

		if p.InjuryRisk {
			p.InjuryStatus = injuryStatusDoubt
			p.ReturnDate = returnDateUnknown
		} else {
			p.InjuryStatus = injuryStatusFit
			p.ReturnDate = returnDateFit
		}
		p.Populated |= models.FieldInjury
	}
	return records
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
