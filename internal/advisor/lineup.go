package advisor

import (
	"errors"
	"fmt"
	"sort"

	"github.com/stitts-dev/gameweek-advisor/internal/models"
)

// StartingXISize is the number of starters
const StartingXISize = 11

// formationMinimums is the quota filled before the free slots
var formationMinimums = []struct {
	position models.Position
	count    int
}{
	{models.PositionGK, 1},
	{models.PositionDEF, 3},
	{models.PositionMID, 2},
	{models.PositionFWD, 1},
}

// outfield positions compete for the free slots; goalkeepers never do
var outfield = []models.Position{models.PositionDEF, models.PositionMID, models.PositionFWD}

// ErrUnknownPosition is wrapped by DataIssue for records with an unrecognized position
var ErrUnknownPosition = errors.New("unrecognized position")

// DataIssue reports a data-integrity problem found on one record
type DataIssue struct {
	PlayerID int
	Name     string
	Err      error
}

func (d DataIssue) Error() string {
	return fmt.Sprintf("player %d (%s): %v", d.PlayerID, d.Name, d.Err)
}

func (d DataIssue) Unwrap() error {
	return d.Err
}

// LineupResult partitions the squad into starters and bench
type LineupResult struct {
	Starting []models.LineupEntry `json:"starting_xi"`
	Bench    []models.LineupEntry `json:"bench"`
	// Unavailable holds bench players without a fixture when ExcludeBlankFromBench is set
	Unavailable []models.LineupEntry `json:"unavailable,omitempty"`
	Issues      []DataIssue          `json:"-"`
}

// byFormThenMinutes is the lineup sort key
func byFormThenMinutes(players []*models.PlayerRecord) {
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Form != players[j].Form {
			return players[i].Form > players[j].Form
		}
		return players[i].ExpectedMinutes > players[j].ExpectedMinutes
	})
}

// SelectLineup picks the formation minimums per position, then fills the rest of
// the XI with the best remaining outfield players. Sorting is stable, so ties
// keep input order. Records with an unknown position are benched and reported.
func SelectLineup(records []*models.PlayerRecord, cfg Config) LineupResult {
	result := LineupResult{
		Starting: []models.LineupEntry{},
		Bench:    []models.LineupEntry{},
	}

	buckets := make(map[models.Position][]*models.PlayerRecord, len(models.Positions))
	for _, p := range records {
		if !p.Position.IsValid() {
			result.Issues = append(result.Issues, DataIssue{
				PlayerID: p.ID,
				Name:     p.Name,
				Err:      fmt.Errorf("%w %q", ErrUnknownPosition, p.Position),
			})
			continue
		}
		buckets[p.Position] = append(buckets[p.Position], p)
	}
	for pos := range buckets {
		byFormThenMinutes(buckets[pos])
	}

	selected := make(map[int]bool, StartingXISize)
	var starters []*models.PlayerRecord

	for _, quota := range formationMinimums {
		bucket := buckets[quota.position]
		for i := 0; i < quota.count && i < len(bucket); i++ {
			starters = append(starters, bucket[i])
			selected[bucket[i].ID] = true
		}
	}

	var remaining []*models.PlayerRecord
	for _, pos := range outfield {
		for _, p := range buckets[pos] {
			if !selected[p.ID] {
				remaining = append(remaining, p)
			}
		}
	}
	byFormThenMinutes(remaining)
	for _, p := range remaining {
		if len(starters) >= StartingXISize {
			break
		}
		starters = append(starters, p)
		selected[p.ID] = true
	}

	for _, p := range starters {
		result.Starting = append(result.Starting, models.LineupEntry{
			ID:       p.ID,
			Name:     p.Name,
			Position: p.Position,
			Reason:   fmt.Sprintf("Form %.1f, likely to start vs %s", p.Form, opponentLabel(p)),
		})
	}

	unknown := make(map[int]bool, len(result.Issues))
	for _, issue := range result.Issues {
		unknown[issue.PlayerID] = true
	}

	// bench keeps the original squad order
	for _, p := range records {
		if selected[p.ID] {
			continue
		}
		entry := models.LineupEntry{
			ID:       p.ID,
			Name:     p.Name,
			Position: p.Position,
			Reason:   "Lower form or minutes, held in reserve",
		}
		if unknown[p.ID] {
			entry.Reason = fmt.Sprintf("Unrecognized position %q, not eligible to start", p.Position)
		}
		if cfg.ExcludeBlankFromBench && p.Populated.Has(models.FieldFixture) && p.Fixture.NumberOfFixtures == 0 {
			entry.Reason = "No fixture this gameweek"
			result.Unavailable = append(result.Unavailable, entry)
			continue
		}
		result.Bench = append(result.Bench, entry)
	}

	return result
}

func opponentLabel(p *models.PlayerRecord) string {
	if p.Fixture.OpponentTeam == "" {
		return UnknownOpponent
	}
	return p.Fixture.OpponentTeam
}
