package advisor

import (
	"github.com/stitts-dev/gameweek-advisor/internal/models"
)

const (
	NoMatchOpponent = "No match"
	UnknownOpponent = "Unknown"
)

type teamFixture struct {
	count      int
	opponentID int
	difficulty int
}

// summarizeFixtures counts each team's fixtures in gw and keeps the first one found.
// A team's difficulty is the fixture's rating from that team's side.
func summarizeFixtures(fixtures []models.Fixture, gw int) map[int]teamFixture {
	summary := make(map[int]teamFixture)
	add := func(team, opponent, difficulty int) {
		tf, seen := summary[team]
		if !seen {
			tf.opponentID = opponent
			tf.difficulty = difficulty
		}
		tf.count++
		summary[team] = tf
	}
	for _, f := range fixtures {
		if !f.InGameweek(gw) {
			continue
		}
		add(f.TeamH, f.TeamA, f.TeamHDifficulty)
		add(f.TeamA, f.TeamH, f.TeamADifficulty)
	}
	return summary
}

func fixtureInfoFor(summary map[int]teamFixture, teams map[int]string, teamID, gw int, cfg Config) models.FixtureInfo {
	tf, ok := summary[teamID]
	if !ok || tf.count == 0 {
		return models.FixtureInfo{
			Gameweek:           gw,
			OpponentTeam:       NoMatchOpponent,
			OpponentDifficulty: cfg.NoFixtureDifficulty,
			NumberOfFixtures:   0,
			BlankGameweek:      true,
		}
	}

	opponent, ok := teams[tf.opponentID]
	if !ok || opponent == "" {
		opponent = UnknownOpponent
	}
	return models.FixtureInfo{
		Gameweek:           gw,
		OpponentTeam:       opponent,
		OpponentDifficulty: tf.difficulty,
		NumberOfFixtures:   tf.count,
		DoubleGameweek:     tf.count >= 2,
	}
}

// EnrichFixtures attaches fixture info for the target gameweek to every record.
// Records already enriched for gw are left as they are; records enriched for a
// different gameweek are recomputed.
// Postcondition: FieldFixture is set and Fixture.Gameweek == gw on every record.
func EnrichFixtures(records []*models.PlayerRecord, set models.FixtureSet, gw int, cfg Config) []*models.PlayerRecord {
	summary := summarizeFixtures(set.Fixtures, gw)
	for _, p := range records {
		if p.Populated.Has(models.FieldFixture) && p.Fixture.Gameweek == gw {
			continue
		}
		p.Fixture = fixtureInfoFor(summary, set.Teams, p.TeamID, gw, cfg)
		p.Populated |= models.FieldFixture
	}
	return records
}

// FixtureCounts returns the number of fixtures each team plays in gw
func FixtureCounts(fixtures []models.Fixture, gw int) map[int]int {
	counts := make(map[int]int)
	for team, tf := range summarizeFixtures(fixtures, gw) {
		counts[team] = tf.count
	}
	return counts
}
