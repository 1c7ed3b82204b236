package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Position is an FPL squad position
type Position string

const (
	PositionGK  Position = "GK"
	PositionDEF Position = "DEF"
	PositionMID Position = "MID"
	PositionFWD Position = "FWD"
)

// Positions lists the valid positions in formation order
var Positions = []Position{PositionGK, PositionDEF, PositionMID, PositionFWD}

// IsValid reports whether p is one of GK, DEF, MID, FWD
func (p Position) IsValid() bool {
	switch p {
	case PositionGK, PositionDEF, PositionMID, PositionFWD:
		return true
	}
	return false
}

// PositionFromElementType maps the FPL element_type to a Position.
// Unknown types map to "UNK", which every stage treats as a data-integrity error.
func PositionFromElementType(elementType int) Position {
	switch elementType {
	case 1:
		return PositionGK
	case 2:
		return PositionDEF
	case 3:
		return PositionMID
	case 4:
		return PositionFWD
	}
	return Position("UNK")
}

// FormTrend classifies a player's momentum relative to their season average
type FormTrend string

const (
	TrendUp     FormTrend = "up"
	TrendDown   FormTrend = "down"
	TrendStable FormTrend = "stable"
)

// Fields is a bitmask of the accreted field groups present on a PlayerRecord
type Fields uint16

const (
	FieldForm Fields = 1 << iota
	FieldPointsPerGame
	FieldFixture
	FieldStats
	FieldInjury
	FieldTrend
	FieldPrediction
)

// Has reports whether every bit in f is set
func (fs Fields) Has(f Fields) bool {
	return fs&f == f
}

// FixtureInfo holds the fixture-dependent fields for one target gameweek
type FixtureInfo struct {
	Gameweek           int    `json:"gameweek"`
	OpponentTeam       string `json:"opponent_team"`
	OpponentDifficulty int    `json:"opponent_difficulty"`
	NumberOfFixtures   int    `json:"number_of_fixtures"`
	DoubleGameweek     bool   `json:"double_gameweek"`
	BlankGameweek      bool   `json:"blank_gameweek"`
}

// PlayerRecord is one squad member flowing through the report pipeline.
// Stages only ever add to it; Populated tracks which groups are present.
type PlayerRecord struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Team            string          `json:"team"`
	TeamID          int             `json:"team_id"`
	PhotoID         string          `json:"photo_id,omitempty"`
	Position        Position        `json:"position"`
	Price           decimal.Decimal `json:"price"`
	Form            float64         `json:"form"`
	PointsPerGame   float64         `json:"points_per_game"`
	ExpectedMinutes float64         `json:"expected_minutes"`
	InjuryRisk      bool            `json:"injury_risk"`
	News            string          `json:"news,omitempty"`

	// fixture-enrichment
	Fixture FixtureInfo `json:"fixture"`

	// stats enrichment
	XG           float64 `json:"xG"`
	XA           float64 `json:"xA"`
	Shots        float64 `json:"shots"`
	InjuryStatus string  `json:"injury_status"`
	ReturnDate   string  `json:"return_date"`

	FormTrend FormTrend `json:"form_trend"`

	PredictedPointsPerFixture float64 `json:"predicted_points_per_fixture"`

	IsCaptain     bool `json:"is_captain"`
	IsViceCaptain bool `json:"is_vice_captain"`

	Populated Fields `json:"-"`
}

// AttackingThreat is xG + xA
func (p *PlayerRecord) AttackingThreat() float64 {
	return p.XG + p.XA
}

func (p *PlayerRecord) String() string {
	return fmt.Sprintf("%s (%d, %s)", p.Name, p.ID, p.Position)
}

// CloneRecords returns deep copies so a report generation never shares records
// with another request.
func CloneRecords(records []*PlayerRecord) []*PlayerRecord {
	out := make([]*PlayerRecord, len(records))
	for i, r := range records {
		c := *r
		out[i] = &c
	}
	return out
}
