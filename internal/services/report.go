package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/gameweek-advisor/internal/advisor"
	"github.com/stitts-dev/gameweek-advisor/internal/models"
	applog "github.com/stitts-dev/gameweek-advisor/pkg/logger"
)

// SquadFetcher loads a manager's squad for a gameweek
type SquadFetcher interface {
	FetchSquad(ctx context.Context, managerID string, gameweek int) (*models.Squad, error)
}

// FixtureFetcher loads the fixture list and team names
type FixtureFetcher interface {
	FetchFixtures(ctx context.Context, gameweek int) (models.FixtureSet, error)
}

// MarketFetcher loads every player available for transfer
type MarketFetcher interface {
	FetchMarket(ctx context.Context) ([]models.MarketCandidate, error)
}

// GameweekResolver discovers the gameweek in play
type GameweekResolver interface {
	CurrentGameweek(ctx context.Context) (int, error)
}

// Provider is a data source that can serve every collaborator
type Provider interface {
	SquadFetcher
	FixtureFetcher
	MarketFetcher
	GameweekResolver
}

// Sources groups the collaborators for one data source. Gameweek may be nil.
type Sources struct {
	Squads   SquadFetcher
	Fixtures FixtureFetcher
	Market   MarketFetcher
	Gameweek GameweekResolver
}

// NewSources wires every collaborator to the same provider
func NewSources(p Provider) Sources {
	return Sources{Squads: p, Fixtures: p, Market: p, Gameweek: p}
}

// ReportRequest identifies the report to build. A zero Gameweek means the
// current one.
type ReportRequest struct {
	ManagerID string `json:"manager_id" form:"manager_id"`
	Gameweek  int    `json:"gw" form:"gw"`
}

// ReportService runs the advisory pipeline over live data, falling back to
// the mock dataset whenever the live squad cannot be loaded
type ReportService struct {
	live            Sources
	fallback        Sources
	cfg             advisor.Config
	defaultGameweek int
	logger          *logrus.Logger
	now             func() time.Time
}

func NewReportService(live, fallback Sources, cfg advisor.Config, defaultGameweek int, logger *logrus.Logger) *ReportService {
	return &ReportService{
		live:            live,
		fallback:        fallback,
		cfg:             cfg,
		defaultGameweek: defaultGameweek,
		logger:          logger,
		now:             time.Now,
	}
}

// Generate builds the gameweek report. Upstream failures degrade to mock data
// and show up in Warnings; the only errors returned are context errors or a
// failing fallback source.
func (s *ReportService) Generate(ctx context.Context, req ReportRequest) (*models.Report, error) {
	start := s.now()
	report := &models.Report{
		ReportID:  uuid.NewString(),
		ManagerID: req.ManagerID,
		Warnings:  []string{},
	}
	log := applog.WithReportContext(s.logger, report.ReportID, req.ManagerID, req.Gameweek).
		WithField("component", "report_service")
	warn := func(msg string) {
		log.Warn(msg)
		report.Warnings = append(report.Warnings, msg)
	}

	squad, gameweek, err := s.loadSquad(ctx, req, report, warn)
	if err != nil {
		return nil, err
	}
	report.Gameweek = gameweek
	log = applog.WithReportContext(s.logger, report.ReportID, req.ManagerID, gameweek).
		WithField("component", "report_service")
	for _, note := range squad.Skipped {
		warn(note)
	}

	sources := s.live
	if report.DataSource == models.DataSourceMock {
		sources = s.fallback
	}
	fixtures, err := s.loadFixtures(ctx, sources, gameweek, warn)
	if err != nil {
		return nil, err
	}

	records := advisor.EnrichStats(squad.Players)
	records, missing := advisor.ClassifyFormTrends(records)
	records = dropMissing(records, missing, warn)
	records = advisor.EnrichFixtures(records, fixtures, gameweek, s.cfg)

	captains := advisor.SelectCaptains(records, s.cfg)
	advisor.ApplyCaptaincy(records, captains)
	report.Captain = captains.Captain
	report.ViceCaptain = captains.ViceCaptain

	lineup := advisor.SelectLineup(records, s.cfg)
	for _, issue := range lineup.Issues {
		warn(issue.Error())
	}
	report.StartingXI = orEmpty(lineup.Starting)
	report.Bench = orEmpty(lineup.Bench)
	report.Unavailable = lineup.Unavailable

	report.Alerts = orEmpty(advisor.DetectAlerts(records))
	report.ChipRecommendation = advisor.EvaluateChipStrategy(records, squad.ChipsUsed, gameweek)
	report.TransferSuggestions = orEmpty(advisor.SuggestTransfers(records, s.cfg))

	market, err := s.loadMarket(ctx, sources, warn)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(records))
	for _, p := range records {
		ids = append(ids, p.ID)
	}
	pool := advisor.FilterMarket(market, ids, advisor.FixtureCounts(fixtures.Fixtures, gameweek), s.cfg)
	budget := s.cfg.DefaultBudget
	if squad.Bank != nil {
		budget = *squad.Bank
	}
	report.TransferRecommendations = orEmpty(advisor.SuggestUpgrades(records, pool, budget, s.cfg))

	report.PredictedScore = advisor.PredictScore(records)

	report.TeamOverview = make([]models.PlayerSummary, 0, len(records))
	for _, p := range records {
		report.TeamOverview = append(report.TeamOverview, models.SummarizePlayer(p))
	}
	report.GeneratedAt = s.now().UTC()

	log.WithFields(logrus.Fields{
		"data_source": report.DataSource,
		"players":     len(report.TeamOverview),
		"warnings":    len(report.Warnings),
		"duration":    s.now().Sub(start),
	}).Info("Report generated")

	return report, nil
}

// loadSquad tries the live squad and falls back to the mock one, recording
// the data source and reason on the report. It also settles the gameweek.
func (s *ReportService) loadSquad(ctx context.Context, req ReportRequest, report *models.Report, warn func(string)) (*models.Squad, int, error) {
	gameweek := req.Gameweek

	var reason string
	switch {
	case req.ManagerID == "":
		reason = "no manager id provided"
	case s.live.Squads == nil:
		reason = "live data source not configured"
	default:
		if gameweek <= 0 {
			gameweek = s.resolveGameweek(ctx, warn)
		}
		squad, err := s.live.Squads.FetchSquad(ctx, req.ManagerID, gameweek)
		switch {
		case err != nil:
			reason = fmt.Sprintf("live squad unavailable: %v", err)
		case squad == nil || len(squad.Players) == 0:
			reason = "live squad is empty"
		default:
			report.DataSource = models.DataSourceLive
			return squad, gameweek, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if gameweek <= 0 {
		gameweek = s.defaultGameweek
	}

	squad, err := s.fallback.Squads.FetchSquad(ctx, req.ManagerID, gameweek)
	if err != nil {
		return nil, 0, fmt.Errorf("fallback squad: %w", err)
	}
	report.DataSource = models.DataSourceMock
	report.FallbackReason = reason
	s.logger.WithFields(logrus.Fields{
		"component":  "report_service",
		"manager_id": req.ManagerID,
		"reason":     reason,
	}).Warn("Using mock squad")
	return squad, gameweek, nil
}

func (s *ReportService) resolveGameweek(ctx context.Context, warn func(string)) int {
	if s.live.Gameweek == nil {
		return s.defaultGameweek
	}
	gw, err := s.live.Gameweek.CurrentGameweek(ctx)
	if err != nil {
		warn(fmt.Sprintf("current gameweek unavailable, using gameweek %d: %v", s.defaultGameweek, err))
		return s.defaultGameweek
	}
	return gw
}

func (s *ReportService) loadFixtures(ctx context.Context, sources Sources, gameweek int, warn func(string)) (models.FixtureSet, error) {
	if sources.Fixtures != nil {
		set, err := sources.Fixtures.FetchFixtures(ctx, gameweek)
		if err == nil {
			return set, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return models.FixtureSet{}, ctxErr
		}
		warn(fmt.Sprintf("fixtures unavailable, using mock fixtures: %v", err))
	}
	set, err := s.fallback.Fixtures.FetchFixtures(ctx, gameweek)
	if err != nil {
		return models.FixtureSet{}, fmt.Errorf("fallback fixtures: %w", err)
	}
	return set, nil
}

func (s *ReportService) loadMarket(ctx context.Context, sources Sources, warn func(string)) ([]models.MarketCandidate, error) {
	if sources.Market != nil {
		market, err := sources.Market.FetchMarket(ctx)
		if err == nil {
			return market, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		warn(fmt.Sprintf("transfer market unavailable, using mock market: %v", err))
	}
	market, err := s.fallback.Market.FetchMarket(ctx)
	if err != nil {
		return nil, fmt.Errorf("fallback market: %w", err)
	}
	return market, nil
}

// dropMissing removes the records the form-trend stage could not classify
func dropMissing(records []*models.PlayerRecord, missing []*advisor.MissingFieldError, warn func(string)) []*models.PlayerRecord {
	if len(missing) == 0 {
		return records
	}
	skip := make(map[int]bool, len(missing))
	for _, m := range missing {
		skip[m.PlayerID] = true
		warn(m.Error())
	}
	kept := make([]*models.PlayerRecord, 0, len(records))
	for _, p := range records {
		if !skip[p.ID] {
			kept = append(kept, p)
		}
	}
	return kept
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
