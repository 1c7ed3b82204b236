package advisor

import (
	"errors"
	"fmt"

	"github.com/stitts-dev/gameweek-advisor/internal/models"
)

const trendThreshold = 0.5

// ErrMissingField is wrapped by MissingFieldError
var ErrMissingField = errors.New("missing required field")

// MissingFieldError reports a record that lacks a field a stage requires
type MissingFieldError struct {
	PlayerID int
	Name     string
	Field    string
	Stage    string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: player %d (%s) has no %s", e.Stage, e.PlayerID, e.Name, e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// ClassifyTrend compares form with the season average
func ClassifyTrend(form, pointsPerGame float64) models.FormTrend {
	switch {
	case form > pointsPerGame+trendThreshold:
		return models.TrendUp
	case form < pointsPerGame-trendThreshold:
		return models.TrendDown
	default:
		return models.TrendStable
	}
}

// ClassifyFormTrends sets FormTrend on every record that has both form and
// points per game. Records missing either are left untouched and reported.
func ClassifyFormTrends(records []*models.PlayerRecord) ([]*models.PlayerRecord, []*MissingFieldError) {
	var missing []*MissingFieldError
	for _, p := range records {
		switch {
		case !p.Populated.Has(models.FieldForm):
			missing = append(missing, &MissingFieldError{PlayerID: p.ID, Name: p.Name, Field: "form", Stage: "form trend"})
			continue
		case !p.Populated.Has(models.FieldPointsPerGame):
			missing = append(missing, &MissingFieldError{PlayerID: p.ID, Name: p.Name, Field: "points_per_game", Stage: "form trend"})
			continue
		}
		p.FormTrend = ClassifyTrend(p.Form, p.PointsPerGame)
		p.Populated |= models.FieldTrend
	}
	return records, missing
}
