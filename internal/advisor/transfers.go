package advisor

import (
	"fmt"
	"sort"

	"github.com/stitts-dev/gameweek-advisor/internal/models"
)

// SuggestTransfers pairs the weakest fit players with the strongest regular
// starters in the same squad. Pairs are matched by rank; a pair naming the same
// player twice is skipped.
func SuggestTransfers(records []*models.PlayerRecord, cfg Config) []models.TransferSuggestion {
	var outs, ins []*models.PlayerRecord
	for _, p := range records {
		if p.InjuryRisk {
			continue
		}
		outs = append(outs, p)
		if p.ExpectedMinutes >= cfg.TransferInMinMinutes {
			ins = append(ins, p)
		}
	}

	sort.SliceStable(outs, func(i, j int) bool {
		a, b := outs[i], outs[j]
		if a.Form != b.Form {
			return a.Form < b.Form
		}
		if a.Fixture.OpponentDifficulty != b.Fixture.OpponentDifficulty {
			return a.Fixture.OpponentDifficulty > b.Fixture.OpponentDifficulty
		}
		return a.ExpectedMinutes < b.ExpectedMinutes
	})
	sort.SliceStable(ins, func(i, j int) bool {
		a, b := ins[i], ins[j]
		if a.Form != b.Form {
			return a.Form > b.Form
		}
		return a.Fixture.OpponentDifficulty < b.Fixture.OpponentDifficulty
	})

	suggestions := []models.TransferSuggestion{}
	for i := 0; i < cfg.TransferLimit && i < len(outs) && i < len(ins); i++ {
		out, in := outs[i], ins[i]
		if out.ID == in.ID {
			continue
		}
		suggestions = append(suggestions, models.TransferSuggestion{
			OutID: out.ID,
			Out:   out.Name,
			InID:  in.ID,
			In:    in.Name,
			Reason: fmt.Sprintf(
				"%s has low form (%.1f) and a tough opponent (%s). Meanwhile, %s is in great form (%.1f) and has a more favorable fixture.",
				out.Name, out.Form, opponentLabel(out), in.Name, in.Form,
			),
		})
	}
	return suggestions
}
