package advisor

import (
	"fmt"
	"strings"

	"github.com/stitts-dev/gameweek-advisor/internal/models"
)

// Chip names as the FPL history endpoint reports them
const (
	ChipWildcard      = "wildcard"
	ChipFreeHit       = "freehit"
	ChipTripleCaptain = "3xc"
	ChipBenchBoost    = "bboost"
)

// Display names of the chips the advisor can recommend
const (
	TripleCaptain = "Triple Captain"
	BenchBoost    = "Bench Boost"
)

const tripleCaptainForm = 8.0

// NormalizeChipName maps the various spellings of a chip to its canonical name
func NormalizeChipName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer("_", "", "-", "", " ", "").Replace(n)
	switch n {
	case "freehit":
		return ChipFreeHit
	case "wildcard":
		return ChipWildcard
	case "3xc", "triplecaptain":
		return ChipTripleCaptain
	case "bboost", "benchboost":
		return ChipBenchBoost
	}
	return n
}

// EvaluateChipStrategy issues at most one chip recommendation for the week.
// A used wildcard or free hit ends the evaluation with no recommendation.
func EvaluateChipStrategy(records []*models.PlayerRecord, chipsUsed []string, gameweek int) models.ChipRecommendation {
	rec := models.ChipRecommendation{ChipsUsed: append([]string{}, chipsUsed...)}

	if len(records) == 0 {
		rec.Reason = "No valid players to evaluate chip usage."
		return rec
	}

	used := make(map[string]bool, len(chipsUsed))
	for _, c := range chipsUsed {
		used[NormalizeChipName(c)] = true
	}

	if used[ChipWildcard] || used[ChipFreeHit] {
		rec.Reason = "You've already used a major chip. Stay the course!"
		return rec
	}

	starters := records
	if len(starters) > StartingXISize {
		starters = starters[:StartingXISize]
	}
	top := starters[0]
	for _, p := range starters[1:] {
		if p.Form > top.Form {
			top = p
		}
	}

	if top.Form >= tripleCaptainForm && !used[ChipTripleCaptain] {
		chip := TripleCaptain
		rec.RecommendedChip = &chip
		rec.Reason = fmt.Sprintf("%s is in red-hot form (%.1f) and might haul in gameweek %d.", top.Name, top.Form, gameweek)
		return rec
	}

	if !used[ChipBenchBoost] {
		for _, p := range records {
			if p.Fixture.DoubleGameweek {
				chip := BenchBoost
				rec.RecommendedChip = &chip
				rec.Reason = "Several of your players have a Double Gameweek. Boost that bench!"
				return rec
			}
		}
	}

	rec.Reason = "No chip needed this week. Keep it in your back pocket."
	return rec
}
