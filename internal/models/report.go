package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DataSource tells whether a report was built from live FPL data or the mock dataset
type DataSource string

const (
	DataSourceLive DataSource = "live"
	DataSourceMock DataSource = "mock"
)

// NoPlayerName is the sentinel name reported when a slot cannot be filled
const NoPlayerName = "None"

// CaptainPick is one captaincy slot. ID is zero when Name is NoPlayerName.
type CaptainPick struct {
	ID     int    `json:"id,omitempty"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Filled reports whether a player was assigned to the slot
func (c CaptainPick) Filled() bool {
	return c.ID != 0
}

// LineupEntry is one starting XI or bench line
type LineupEntry struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Position Position `json:"position"`
	Reason   string   `json:"reason"`
}

// AlertType categorizes an alert
type AlertType string

const (
	AlertInjury  AlertType = "injury"
	AlertForm    AlertType = "form"
	AlertFixture AlertType = "fixture"
)

// Alert flags one player condition worth the manager's attention
type Alert struct {
	ID      int       `json:"id"`
	Name    string    `json:"name"`
	Type    AlertType `json:"type"`
	Message string    `json:"message"`
}

// ChipRecommendation is the single chip decision for a gameweek.
// RecommendedChip is nil when no chip is recommended.
type ChipRecommendation struct {
	RecommendedChip *string  `json:"recommended_chip"`
	Reason          string   `json:"reason"`
	ChipsUsed       []string `json:"chips_used"`
}

// TransferSuggestion is an in-squad out/in pairing
type TransferSuggestion struct {
	OutID  int    `json:"out_id"`
	Out    string `json:"out"`
	InID   int    `json:"in_id"`
	In     string `json:"in"`
	Reason string `json:"reason"`
}

// TransferRecommendation is a market upgrade, with the price delta it costs
type TransferRecommendation struct {
	OutID      int             `json:"out_id"`
	Out        string          `json:"out"`
	InID       int             `json:"in_id"`
	In         string          `json:"in"`
	Position   Position        `json:"position"`
	PriceDelta decimal.Decimal `json:"price_delta"`
	Reason     string          `json:"reason"`
}

// PlayerSummary is one team_overview entry
type PlayerSummary struct {
	ID                        int             `json:"id"`
	TeamID                    int             `json:"team_id"`
	PhotoID                   string          `json:"photo_id"`
	Name                      string          `json:"name"`
	Team                      string          `json:"team"`
	Position                  Position        `json:"position"`
	Price                     decimal.Decimal `json:"price"`
	Form                      float64         `json:"form"`
	PointsPerGame             float64         `json:"points_per_game"`
	FormTrend                 FormTrend       `json:"form_trend"`
	ExpectedMinutes           float64         `json:"expected_minutes"`
	OpponentTeam              string          `json:"opponent_team"`
	OpponentDifficulty        int             `json:"opponent_difficulty"`
	InjuryRisk                bool            `json:"injury_risk"`
	InjuryStatus              string          `json:"injury_status"`
	ReturnDate                string          `json:"return_date"`
	News                      string          `json:"news"`
	DoubleGameweek            bool            `json:"double_gameweek"`
	BlankGameweek             bool            `json:"blank_gameweek"`
	XG                        float64         `json:"xG"`
	XA                        float64         `json:"xA"`
	Shots                     float64         `json:"shots"`
	NumberOfFixtures          int             `json:"number_of_fixtures"`
	IsCaptain                 bool            `json:"is_captain"`
	IsViceCaptain             bool            `json:"is_vice_captain"`
	PredictedPointsPerFixture float64         `json:"predicted_points_per_fixture"`
}

// SummarizePlayer flattens a fully enriched record into a team_overview entry
func SummarizePlayer(p *PlayerRecord) PlayerSummary {
	return PlayerSummary{
		ID:                        p.ID,
		TeamID:                    p.TeamID,
		PhotoID:                   p.PhotoID,
		Name:                      p.Name,
		Team:                      p.Team,
		Position:                  p.Position,
		Price:                     p.Price,
		Form:                      p.Form,
		PointsPerGame:             p.PointsPerGame,
		FormTrend:                 p.FormTrend,
		ExpectedMinutes:           p.ExpectedMinutes,
		OpponentTeam:              p.Fixture.OpponentTeam,
		OpponentDifficulty:        p.Fixture.OpponentDifficulty,
		InjuryRisk:                p.InjuryRisk,
		InjuryStatus:              p.InjuryStatus,
		ReturnDate:                p.ReturnDate,
		News:                      p.News,
		DoubleGameweek:            p.Fixture.DoubleGameweek,
		BlankGameweek:             p.Fixture.BlankGameweek,
		XG:                        p.XG,
		XA:                        p.XA,
		Shots:                     p.Shots,
		NumberOfFixtures:          p.Fixture.NumberOfFixtures,
		IsCaptain:                 p.IsCaptain,
		IsViceCaptain:             p.IsViceCaptain,
		PredictedPointsPerFixture: p.PredictedPointsPerFixture,
	}
}

// Report is the assembled weekly report document
type Report struct {
	ReportID                string                   `json:"report_id"`
	ManagerID               string                   `json:"manager_id,omitempty"`
	Gameweek                int                      `json:"gameweek"`
	DataSource              DataSource               `json:"data_source"`
	FallbackReason          string                   `json:"fallback_reason,omitempty"`
	TeamOverview            []PlayerSummary          `json:"team_overview"`
	Captain                 CaptainPick              `json:"captain"`
	ViceCaptain             CaptainPick              `json:"vice_captain"`
	TransferSuggestions     []TransferSuggestion     `json:"transfer_suggestions"`
	TransferRecommendations []TransferRecommendation `json:"transfer_recommendations"`
	StartingXI              []LineupEntry            `json:"starting_xi"`
	Bench                   []LineupEntry            `json:"bench"`
	Unavailable             []LineupEntry            `json:"unavailable,omitempty"`
	Alerts                  []Alert                  `json:"alerts"`
	ChipRecommendation      ChipRecommendation       `json:"chip_recommendation"`
	PredictedScore          float64                  `json:"predicted_score"`
	Warnings                []string                 `json:"warnings"`
	GeneratedAt             time.Time                `json:"generated_at"`
}

// FindPlayer returns the team_overview entry with the given id
func (r *Report) FindPlayer(id int) (PlayerSummary, bool) {
	for _, p := range r.TeamOverview {
		if p.ID == id {
			return p, true
		}
	}
	return PlayerSummary{}, false
}
