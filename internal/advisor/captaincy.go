package advisor

import (
	"fmt"
	"sort"

	"github.com/stitts-dev/gameweek-advisor/internal/models"
)

const (
	reasonNoEligible     = "No eligible players this gameweek"
	reasonNoSecondPlayer = "No second eligible player available this gameweek"
)

// CaptaincyResult holds both captaincy slots. An unfilled slot carries
// models.NoPlayerName and the reason it could not be filled.
type CaptaincyResult struct {
	Captain     models.CaptainPick `json:"captain"`
	ViceCaptain models.CaptainPick `json:"vice_captain"`
}

// SelectCaptains ranks eligible players by xG+xA, then form, then expected
// minutes (ties keep input order) and picks the top two distinct ids.
func SelectCaptains(records []*models.PlayerRecord, cfg Config) CaptaincyResult {
	eligible := make([]*models.PlayerRecord, 0, len(records))
	for _, p := range records {
		if cfg.RequireFixtureForCaptain && p.Fixture.NumberOfFixtures <= 0 {
			continue
		}
		eligible = append(eligible, p)
	}

	if len(eligible) == 0 {
		return CaptaincyResult{
			Captain:     models.CaptainPick{Name: models.NoPlayerName, Reason: reasonNoEligible},
			ViceCaptain: models.CaptainPick{Name: models.NoPlayerName, Reason: reasonNoEligible},
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		if a.AttackingThreat() != b.AttackingThreat() {
			return a.AttackingThreat() > b.AttackingThreat()
		}
		if a.Form != b.Form {
			return a.Form > b.Form
		}
		return a.ExpectedMinutes > b.ExpectedMinutes
	})

	captain := eligible[0]
	var vice *models.PlayerRecord
	for _, p := range eligible[1:] {
		if p.ID != captain.ID {
			vice = p
			break
		}
	}

	if vice == nil {
		return CaptaincyResult{
			Captain: models.CaptainPick{
				ID:     captain.ID,
				Name:   captain.Name,
				Reason: "Only eligible player: " + captainReason(captain),
			},
			ViceCaptain: models.CaptainPick{Name: models.NoPlayerName, Reason: reasonNoSecondPlayer},
		}
	}

	return CaptaincyResult{
		Captain:     models.CaptainPick{ID: captain.ID, Name: captain.Name, Reason: captainReason(captain)},
		ViceCaptain: models.CaptainPick{ID: vice.ID, Name: vice.Name, Reason: captainReason(vice)},
	}
}

func captainReason(p *models.PlayerRecord) string {
	return fmt.Sprintf("xG+xA: %.2f, form %.1f", p.AttackingThreat(), p.Form)
}

// ApplyCaptaincy flags the selected captain and vice on the records by id
func ApplyCaptaincy(records []*models.PlayerRecord, result CaptaincyResult) {
	for _, p := range records {
		p.IsCaptain = result.Captain.Filled() && p.ID == result.Captain.ID
		p.IsViceCaptain = result.ViceCaptain.Filled() && p.ID == result.ViceCaptain.ID
	}
}
