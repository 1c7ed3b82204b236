package advisor

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/stitts-dev/gameweek-advisor/internal/models"
)

// MarketScore weights form and points per game into one candidate score
func MarketScore(form, pointsPerGame float64, cfg Config) float64 {
	return cfg.FormWeight*form + cfg.PPGWeight*pointsPerGame
}

// FilterMarket keeps the candidates eligible for a transfer in: not already in
// the squad, available or doubtful, enough season minutes and a fixture in the
// target gameweek.
func FilterMarket(candidates []models.MarketCandidate, squadIDs []int, fixtureCounts map[int]int, cfg Config) []models.MarketCandidate {
	owned := make(map[int]bool, len(squadIDs))
	for _, id := range squadIDs {
		owned[id] = true
	}

	var pool []models.MarketCandidate
	for _, c := range candidates {
		if owned[c.ID] {
			continue
		}
		if c.Status != "a" && c.Status != "d" {
			continue
		}
		if c.Minutes < cfg.MarketMinMinutes {
			continue
		}
		if fixtureCounts[c.TeamID] == 0 {
			continue
		}
		pool = append(pool, c)
	}
	return pool
}

type positionTarget struct {
	position models.Position
	weakest  *models.PlayerRecord
}

// SuggestUpgrades proposes at most one market upgrade per position, weakest
// incumbent first, until MaxMarketTransfers is reached. Each accepted upgrade
// spends its price delta from the running budget.
func SuggestUpgrades(squad []*models.PlayerRecord, market []models.MarketCandidate, budget decimal.Decimal, cfg Config) []models.TransferRecommendation {
	recommendations := []models.TransferRecommendation{}
	if cfg.MaxMarketTransfers <= 0 {
		return recommendations
	}

	var targets []positionTarget
	for _, pos := range models.Positions {
		var weakest *models.PlayerRecord
		for _, p := range squad {
			if p.Position != pos {
				continue
			}
			if weakest == nil || p.Form < weakest.Form {
				weakest = p
			}
		}
		if weakest != nil {
			targets = append(targets, positionTarget{position: pos, weakest: weakest})
		}
	}
	sort.SliceStable(targets, func(i, j int) bool {
		return targets[i].weakest.Form < targets[j].weakest.Form
	})

	byPosition := make(map[models.Position][]models.MarketCandidate)
	for _, c := range market {
		byPosition[c.Position] = append(byPosition[c.Position], c)
	}

	remaining := budget
	for _, target := range targets {
		if len(recommendations) >= cfg.MaxMarketTransfers {
			break
		}
		out := target.weakest
		ceiling := out.Price.Add(remaining)

		var best *models.MarketCandidate
		var bestScore float64
		for i := range byPosition[target.position] {
			c := &byPosition[target.position][i]
			if c.Price.GreaterThan(ceiling) {
				continue
			}
			if c.Form <= out.Form+cfg.UpgradeMargin {
				continue
			}
			score := MarketScore(c.Form, c.PointsPerGame, cfg)
			if best == nil || score > bestScore {
				best, bestScore = c, score
			}
		}
		if best == nil {
			continue
		}

		delta := best.Price.Sub(out.Price)
		remaining = remaining.Sub(delta)
		recommendations = append(recommendations, models.TransferRecommendation{
			OutID:      out.ID,
			Out:        out.Name,
			InID:       best.ID,
			In:         best.Name,
			Position:   target.position,
			PriceDelta: delta,
			Reason: fmt.Sprintf("Upgrade form %.1f → %.1f (score %.2f), costs £%sm, £%sm left in the bank",
				out.Form, best.Form, bestScore, delta.StringFixed(1), remaining.StringFixed(1)),
		})
	}
	return recommendations
}
