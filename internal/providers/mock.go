package providers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/stitts-dev/gameweek-advisor/internal/models"
)

// MockGameweek is the gameweek the mock dataset describes
const MockGameweek = 34

// MockChipsUsed is the chip history reported with the mock squad
var MockChipsUsed = []string{"wildcard"}

var mockTeams = map[int]string{
	1: "Arsenal", 2: "Aston Villa", 3: "Bournemouth", 4: "Brentford", 5: "Brighton",
	6: "Chelsea", 7: "Crystal Palace", 8: "Everton", 9: "Fulham", 10: "Ipswich",
	11: "Leicester", 12: "Liverpool", 13: "Man City", 14: "Man Utd", 15: "Newcastle",
	16: "Nott'm Forest", 17: "Southampton", 18: "Spurs", 19: "West Ham", 20: "Wolves",
}

// mockSchedule is one gameweek of home/away pairings. Newcastle play twice
// and Nott'm Forest not at all.
var mockSchedule = []struct {
	home, away                     int
	homeDifficulty, awayDifficulty int
}{
	{1, 8, 2, 4},
	{12, 13, 4, 4},
	{6, 4, 3, 3},
	{15, 10, 2, 4},
	{9, 15, 4, 3},
	{2, 3, 3, 3},
	{5, 7, 3, 3},
	{14, 18, 3, 3},
	{19, 20, 3, 3},
	{17, 11, 2, 2},
}

type mockPlayer struct {
	id       int
	name     string
	teamID   int
	position models.Position
	price    string
	form     float64
	ppg      float64
	minutes  float64
	news     string
	photo    string
}

var mockSquad = []mockPlayer{
	{1, "David Raya Martín", 1, models.PositionGK, "5.6", 4.8, 4.5, 90, "", "154561"},
	{2, "Mark Flekken", 4, models.PositionGK, "4.5", 3.0, 3.6, 90, "", "165153"},
	{3, "William Saliba", 1, models.PositionDEF, "6.2", 5.2, 4.9, 90, "", "462424"},
	{4, "Gabriel dos Santos Magalhães", 1, models.PositionDEF, "6.1", 4.1, 4.7, 88, "", "226597"},
	{5, "Trent Alexander-Arnold", 12, models.PositionDEF, "7.1", 6.0, 5.1, 80, "", "169187"},
	{6, "Joško Gvardiol", 13, models.PositionDEF, "6.2", 3.4, 4.3, 85, "", "486672"},
	{7, "Vitaliy Mykolenko", 8, models.PositionDEF, "4.4", 2.2, 3.1, 90, "", "232980"},
	{8, "Mohamed Salah", 12, models.PositionMID, "13.6", 9.2, 8.4, 90, "", "118748"},
	{9, "Cole Palmer", 6, models.PositionMID, "11.2", 5.0, 6.8, 88, "", "244851"},
	{10, "Bukayo Saka", 1, models.PositionMID, "10.3", 4.5, 6.1, 60, "Hamstring injury - 75% chance of playing", "223340"},
	{11, "Bryan Mbeumo", 4, models.PositionMID, "7.8", 6.6, 5.6, 90, "", "446008"},
	{12, "Anthony Gordon", 15, models.PositionMID, "7.5", 3.9, 4.6, 82, "", "450327"},
	{13, "Erling Haaland", 13, models.PositionFWD, "14.9", 6.5, 6.9, 90, "", "223094"},
	{14, "Alexander Isak", 15, models.PositionFWD, "9.5", 7.4, 6.5, 85, "", "219168"},
	{15, "Chris Wood", 16, models.PositionFWD, "7.1", 5.5, 5.3, 86, "", "60689"},
}

var mockMarket = []struct {
	id       int
	name     string
	teamID   int
	position models.Position
	price    string
	form     float64
	ppg      float64
	status   string
	minutes  int
}{
	{101, "Jordan Pickford", 8, models.PositionGK, "5.1", 5.0, 4.4, "a", 2970},
	{102, "Matz Sels", 16, models.PositionGK, "5.0", 6.0, 4.8, "a", 2880},
	{103, "Milos Kerkez", 3, models.PositionDEF, "5.3", 5.8, 4.5, "a", 2650},
	{104, "Antonee Robinson", 9, models.PositionDEF, "5.0", 4.9, 4.6, "a", 2790},
	{105, "Ola Aina", 16, models.PositionDEF, "5.3", 6.1, 4.4, "a", 2700},
	{106, "Justin Kluivert", 3, models.PositionMID, "6.9", 6.8, 5.0, "a", 2210},
	{107, "Jarrod Bowen", 19, models.PositionMID, "7.8", 5.4, 5.2, "a", 2500},
	{108, "Antoine Semenyo", 3, models.PositionMID, "5.7", 4.2, 4.1, "d", 2480},
	{109, "Morgan Rogers", 2, models.PositionMID, "6.0", 7.1, 5.1, "i", 2600},
	{110, "Yoane Wissa", 4, models.PositionFWD, "6.8", 6.9, 5.5, "a", 2300},
	{111, "Jean-Philippe Mateta", 7, models.PositionFWD, "7.5", 4.8, 4.9, "a", 2350},
	{112, "Matheus Cunha", 20, models.PositionFWD, "7.1", 3.2, 5.8, "s", 2400},
	{113, "Liam Delap", 10, models.PositionFWD, "5.5", 5.1, 4.2, "a", 40},
}

// MockProvider serves the fixed dataset used when live data is unavailable.
// It satisfies the same fetcher interfaces as FPLClient.
type MockProvider struct{}

// NewMockProvider creates the mock data provider
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// FetchSquad returns the mock squad regardless of manager
func (m *MockProvider) FetchSquad(ctx context.Context, managerID string, gameweek int) (*models.Squad, error) {
	return &models.Squad{
		ManagerID: managerID,
		Gameweek:  gameweek,
		Players:   MockPlayers(),
		ChipsUsed: append([]string{}, MockChipsUsed...),
	}, nil
}

// FetchFixtures plays the mock schedule in the requested gameweek
func (m *MockProvider) FetchFixtures(ctx context.Context, gameweek int) (models.FixtureSet, error) {
	return MockFixtures(gameweek), nil
}

// FetchMarket returns the mock transfer market
func (m *MockProvider) FetchMarket(ctx context.Context) ([]models.MarketCandidate, error) {
	return MockMarket(), nil
}

// CurrentGameweek always reports MockGameweek
func (m *MockProvider) CurrentGameweek(ctx context.Context) (int, error) {
	return MockGameweek, nil
}

// MockPlayers returns fresh normalized records for the mock squad
func MockPlayers() []*models.PlayerRecord {
	records := make([]*models.PlayerRecord, 0, len(mockSquad))
	for _, p := range mockSquad {
		records = append(records, &models.PlayerRecord{
			ID:              p.id,
			Name:            p.name,
			Team:            mockTeams[p.teamID],
			TeamID:          p.teamID,
			PhotoID:         p.photo,
			Position:        p.position,
			Price:           decimal.RequireFromString(p.price),
			Form:            p.form,
			PointsPerGame:   p.ppg,
			ExpectedMinutes: p.minutes,
			InjuryRisk:      p.news != "",
			News:            p.news,
			Populated:       models.FieldForm | models.FieldPointsPerGame,
		})
	}
	return records
}

// MockFixtures lays the mock schedule on gameweek
func MockFixtures(gameweek int) models.FixtureSet {
	fixtures := make([]models.Fixture, 0, len(mockSchedule))
	for i, m := range mockSchedule {
		event := gameweek
		fixtures = append(fixtures, models.Fixture{
			ID:              gameweek*100 + i + 1,
			Event:           &event,
			TeamH:           m.home,
			TeamA:           m.away,
			TeamHDifficulty: m.homeDifficulty,
			TeamADifficulty: m.awayDifficulty,
		})
	}

	teams := make(map[int]string, len(mockTeams))
	for id, name := range mockTeams {
		teams[id] = name
	}
	return models.FixtureSet{Fixtures: fixtures, Teams: teams}
}

// MockMarket returns the mock transfer candidates
func MockMarket() []models.MarketCandidate {
	market := make([]models.MarketCandidate, 0, len(mockMarket))
	for _, c := range mockMarket {
		market = append(market, models.MarketCandidate{
			ID:            c.id,
			Name:          c.name,
			Team:          mockTeams[c.teamID],
			TeamID:        c.teamID,
			Position:      c.position,
			Form:          c.form,
			PointsPerGame: c.ppg,
			Price:         decimal.RequireFromString(c.price),
			Status:        c.status,
			Minutes:       c.minutes,
		})
	}
	return market
}
