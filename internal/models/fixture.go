package models

import "github.com/shopspring/decimal"

// Fixture is one FPL fixture as returned by the fixtures endpoint
type Fixture struct {
	ID              int  `json:"id"`
	Event           *int `json:"event"`
	TeamH           int  `json:"team_h"`
	TeamA           int  `json:"team_a"`
	TeamHDifficulty int  `json:"team_h_difficulty"`
	TeamADifficulty int  `json:"team_a_difficulty"`
	Finished        bool `json:"finished"`
}

// InGameweek reports whether the fixture is scheduled for gw.
// Unscheduled fixtures (nil event) belong to no gameweek.
func (f Fixture) InGameweek(gw int) bool {
	return f.Event != nil && *f.Event == gw
}

// Squad is the fetched state of one manager for one gameweek
type Squad struct {
	ManagerID string          `json:"manager_id"`
	Gameweek  int             `json:"gameweek"`
	Players   []*PlayerRecord `json:"players"`
	ChipsUsed []string        `json:"chips_used"`
	// Bank is the manager's money in the bank; nil when unknown
	Bank *decimal.Decimal `json:"bank,omitempty"`
	// Skipped holds picks the normalizer rejected
	Skipped []string `json:"skipped,omitempty"`
}

// IDs returns the player ids in squad order
func (s *Squad) IDs() []int {
	ids := make([]int, 0, len(s.Players))
	for _, p := range s.Players {
		ids = append(ids, p.ID)
	}
	return ids
}

// MarketCandidate is an external player who could be transferred in
type MarketCandidate struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Team          string          `json:"team"`
	TeamID        int             `json:"team_id"`
	Position      Position        `json:"position"`
	Form          float64         `json:"form"`
	PointsPerGame float64         `json:"points_per_game"`
	Price         decimal.Decimal `json:"price"`
	Status        string          `json:"status"`
	Minutes       int             `json:"minutes"`
}

// FixtureSet bundles the fixture list with the team names needed to label opponents
type FixtureSet struct {
	Fixtures []Fixture      `json:"fixtures"`
	Teams    map[int]string `json:"teams"`
}
