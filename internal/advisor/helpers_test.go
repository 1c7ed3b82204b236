package advisor

import (
	"github.com/shopspring/decimal"

	"github.com/stitts-dev/gameweek-advisor/internal/models"
)

func newPlayer(id int, name string, pos models.Position, form, ppg, minutes float64) *models.PlayerRecord {
	return &models.PlayerRecord{
		ID:              id,
		Name:            name,
		Team:            "Team",
		TeamID:          1,
		Position:        pos,
		Price:           decimal.NewFromFloat(6.0),
		Form:            form,
		PointsPerGame:   ppg,
		ExpectedMinutes: minutes,
		Populated:       models.FieldForm | models.FieldPointsPerGame,
	}
}

func withFixture(p *models.PlayerRecord, opponent string, difficulty, count int) *models.PlayerRecord {
	p.Fixture = models.FixtureInfo{
		Gameweek:           34,
		OpponentTeam:       opponent,
		OpponentDifficulty: difficulty,
		NumberOfFixtures:   count,
		DoubleGameweek:     count >= 2,
		BlankGameweek:      count == 0,
	}
	p.Populated |= models.FieldFixture
	return p
}

// fifteenManSquad returns 2 GK, 5 DEF, 5 MID, 3 FWD in descending form order
func fifteenManSquad() []*models.PlayerRecord {
	layout := []models.Position{
		models.PositionGK, models.PositionGK,
		models.PositionDEF, models.PositionDEF, models.PositionDEF, models.PositionDEF, models.PositionDEF,
		models.PositionMID, models.PositionMID, models.PositionMID, models.PositionMID, models.PositionMID,
		models.PositionFWD, models.PositionFWD, models.PositionFWD,
	}
	players := make([]*models.PlayerRecord, 0, len(layout))
	for i, pos := range layout {
		form := 10.0 - float64(i)*0.5
		players = append(players, withFixture(newPlayer(i+1, string(pos)+"-"+string(rune('A'+i)), pos, form, 5.0, 90), "Opp", 3, 1))
	}
	return players
}

func ids(entries []models.LineupEntry) []int {
	out := make([]int, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}
