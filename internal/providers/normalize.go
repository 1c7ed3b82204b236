package providers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/stitts-dev/gameweek-advisor/internal/advisor"
	"github.com/stitts-dev/gameweek-advisor/internal/models"
)

const normalizeStage = "normalize"

// NormalizeSquad joins the manager's picks with the bootstrap elements and
// returns one record per pick in pick order. Picks that cannot be normalized
// are left out and described in skipped.
func NormalizeSquad(b *BootstrapResponse, picks []fplPick) (records []*models.PlayerRecord, skipped []string) {
	elements := b.elementsByID()
	teams := b.TeamNames()

	records = make([]*models.PlayerRecord, 0, len(picks))
	seen := make(map[int]bool, len(picks))
	for _, pick := range picks {
		if seen[pick.Element] {
			skipped = append(skipped, fmt.Sprintf("player %d: duplicate pick", pick.Element))
			continue
		}
		seen[pick.Element] = true

		element, ok := elements[pick.Element]
		if !ok {
			skipped = append(skipped, fmt.Sprintf("player %d: not found in bootstrap elements", pick.Element))
			continue
		}
		record, err := normalizeElement(b, element, teams)
		if err != nil {
			skipped = append(skipped, err.Error())
			continue
		}
		records = append(records, record)
	}
	return records, skipped
}

func normalizeElement(b *BootstrapResponse, e fplElement, teams map[int]string) (*models.PlayerRecord, error) {
	name := playerName(e)

	form, err := parseStat(e, name, "form", e.Form)
	if err != nil {
		return nil, err
	}
	ppg, err := parseStat(e, name, "points_per_game", e.PointsPerGame)
	if err != nil {
		return nil, err
	}

	return &models.PlayerRecord{
		ID:              e.ID,
		Name:            name,
		Team:            teamName(teams, e.Team),
		TeamID:          e.Team,
		PhotoID:         strings.SplitN(e.Photo, ".", 2)[0],
		Position:        b.positionOf(e.ElementType),
		Price:           priceFromTenths(e.NowCost),
		Form:            form,
		PointsPerGame:   ppg,
		ExpectedMinutes: float64(e.Minutes),
		InjuryRisk:      e.News != "",
		News:            e.News,
		Populated:       models.FieldForm | models.FieldPointsPerGame,
	}, nil
}

// MarketFromBootstrap lists every bootstrap element as a transfer candidate.
// Elements without a usable form are left out.
func MarketFromBootstrap(b *BootstrapResponse) []models.MarketCandidate {
	teams := b.TeamNames()
	market := make([]models.MarketCandidate, 0, len(b.Elements))
	for _, e := range b.Elements {
		name := playerName(e)
		form, err := parseStat(e, name, "form", e.Form)
		if err != nil {
			continue
		}
		// points per game only feeds the score, so a missing value counts as zero
		ppg, _ := parseStat(e, name, "points_per_game", e.PointsPerGame)
		market = append(market, models.MarketCandidate{
			ID:            e.ID,
			Name:          name,
			Team:          teamName(teams, e.Team),
			TeamID:        e.Team,
			Position:      b.positionOf(e.ElementType),
			Form:          form,
			PointsPerGame: ppg,
			Price:         priceFromTenths(e.NowCost),
			Status:        e.Status,
			Minutes:       e.Minutes,
		})
	}
	return market
}

func parseStat(e fplElement, name, field string, raw *string) (float64, error) {
	if raw != nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64); err == nil && v >= 0 {
			return v, nil
		}
	}
	return 0, &advisor.MissingFieldError{PlayerID: e.ID, Name: name, Field: field, Stage: normalizeStage}
}

func playerName(e fplElement) string {
	name := strings.TrimSpace(e.FirstName + " " + e.SecondName)
	if name == "" {
		return e.WebName
	}
	return name
}

func teamName(teams map[int]string, id int) string {
	if name, ok := teams[id]; ok {
		return name
	}
	return advisor.UnknownOpponent
}

// priceFromTenths converts FPL's tenths of a million into millions
func priceFromTenths(tenths int) decimal.Decimal {
	return decimal.New(int64(tenths), -1)
}
