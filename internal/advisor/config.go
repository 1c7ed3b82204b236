// Package advisor holds the heuristic stages of the gameweek report pipeline.
// Every stage is a pure function over in-memory player records.
package advisor

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Config parameterizes the stages. The zero value is not useful; start from DefaultConfig.
type Config struct {
	// NoFixtureDifficulty is the opponent difficulty recorded for a team with no fixture
	NoFixtureDifficulty int `json:"no_fixture_difficulty"`
	// RequireFixtureForCaptain restricts captaincy to players with at least one fixture
	RequireFixtureForCaptain bool `json:"require_fixture_for_captain"`
	// ExcludeBlankFromBench moves zero-fixture bench players to LineupResult.Unavailable
	ExcludeBlankFromBench bool `json:"exclude_blank_from_bench"`

	TransferLimit        int     `json:"transfer_limit"`
	TransferInMinMinutes float64 `json:"transfer_in_min_minutes"`

	MarketMinMinutes   int             `json:"market_min_minutes"`
	MaxMarketTransfers int             `json:"max_market_transfers"`
	UpgradeMargin      float64         `json:"upgrade_margin"`
	FormWeight         float64         `json:"form_weight"`
	PPGWeight          float64         `json:"ppg_weight"`
	DefaultBudget      decimal.Decimal `json:"default_budget"`
}

// DefaultConfig returns the documented defaults
func DefaultConfig() Config {
	return Config{
		NoFixtureDifficulty:      3,
		RequireFixtureForCaptain: true,
		ExcludeBlankFromBench:    false,
		TransferLimit:            3,
		TransferInMinMinutes:     60,
		MarketMinMinutes:         60,
		MaxMarketTransfers:       3,
		UpgradeMargin:            1.0,
		FormWeight:               0.6,
		PPGWeight:                0.4,
		DefaultBudget:            decimal.NewFromFloat(2.0),
	}
}

// Validate rejects configurations the stages cannot honor
func (c Config) Validate() error {
	var errs []error
	if c.NoFixtureDifficulty < 0 || c.NoFixtureDifficulty > 5 {
		errs = append(errs, fmt.Errorf("no fixture difficulty must be within 0-5, got %d", c.NoFixtureDifficulty))
	}
	if c.TransferLimit < 0 {
		errs = append(errs, fmt.Errorf("transfer limit must not be negative"))
	}
	if c.MaxMarketTransfers < 0 {
		errs = append(errs, fmt.Errorf("max market transfers must not be negative"))
	}
	if c.MarketMinMinutes < 0 {
		errs = append(errs, fmt.Errorf("market min minutes must not be negative"))
	}
	if c.DefaultBudget.IsNegative() {
		errs = append(errs, fmt.Errorf("default budget must not be negative"))
	}
	return errors.Join(errs...)
}
