package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/stitts-dev/gameweek-advisor/internal/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	DefaultFPLBaseURL = "https://fantasy.premierleague.com/api"

	// FPLService names the FPL upstream in the circuit breaker
	FPLService = "fpl"

	bootstrapCacheKey = "fpl:bootstrap"
	fixturesCacheKey  = "fpl:fixtures"

	cacheSetRetries = 3
)

var (
	// ErrNotFound is returned when the FPL API answers 404
	ErrNotFound = errors.New("fpl resource not found")
	// ErrUpstream wraps any other non-2xx answer
	ErrUpstream = errors.New("fpl upstream error")
)

// CacheProvider is the cache surface the client needs
type CacheProvider interface {
	Get(ctx context.Context, key string, dest interface{}) error
	SetWithRetry(ctx context.Context, key string, value interface{}, expiration time.Duration, maxRetries int) error
}

// Breaker runs fn under circuit-breaker protection for the named service
type Breaker interface {
	Execute(service string, fn func() (interface{}, error)) (interface{}, error)
}

// FPLConfig configures the FPL client
type FPLConfig struct {
	BaseURL       string
	UserAgent     string
	Timeout       time.Duration
	RateLimit     float64 // requests per second
	CacheTTL      time.Duration
	RetryAttempts int
	RetryBackoff  time.Duration
}

// FPLClient fetches squads, fixtures and the player market from the public
// Fantasy Premier League API.
type FPLClient struct {
	httpClient    *http.Client
	cache         CacheProvider
	breaker       Breaker
	logger        *logrus.Logger
	rateLimiter   *rate.Limiter
	flight        singleflight.Group
	baseURL       string
	userAgent     string
	cacheTTL      time.Duration
	retryAttempts int
	retryBackoff  time.Duration
	fetchTimeout  time.Duration
}

// fetchResult keeps 404s out of the breaker's failure count
type fetchResult struct {
	status int
	body   []byte
}

// NewFPLClient creates a new FPL API client. cache and breaker may be nil.
func NewFPLClient(cfg FPLConfig, cache CacheProvider, breaker Breaker, logger *logrus.Logger) *FPLClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultFPLBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "gameweek-advisor/1.0"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = 1
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	return &FPLClient{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache:         cache,
		breaker:       breaker,
		logger:        logger,
		rateLimiter:   rate.NewLimiter(limit, 1),
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:     cfg.UserAgent,
		cacheTTL:      cfg.CacheTTL,
		retryAttempts: cfg.RetryAttempts,
		retryBackoff:  cfg.RetryBackoff,
		fetchTimeout:  time.Duration(cfg.RetryAttempts) * (cfg.Timeout + cfg.RetryBackoff),
	}
}

// Bootstrap fetches bootstrap-static, cache first
func (c *FPLClient) Bootstrap(ctx context.Context) (*BootstrapResponse, error) {
	return c.bootstrap(ctx, false)
}

func (c *FPLClient) bootstrap(ctx context.Context, refresh bool) (*BootstrapResponse, error) {
	if !refresh {
		var cached BootstrapResponse
		if c.cacheGet(ctx, bootstrapCacheKey, &cached) {
			return &cached, nil
		}
	}

	out, err := c.shared(ctx, bootstrapCacheKey, func(ctx context.Context) (interface{}, error) {
		var resp BootstrapResponse
		if err := c.getJSON(ctx, "/bootstrap-static/", &resp); err != nil {
			return nil, fmt.Errorf("fetch bootstrap: %w", err)
		}
		c.cacheSet(ctx, bootstrapCacheKey, resp)
		return &resp, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(*BootstrapResponse), nil
}

// Fixtures fetches the full fixture list, cache first
func (c *FPLClient) Fixtures(ctx context.Context) ([]models.Fixture, error) {
	return c.fixtures(ctx, false)
}

func (c *FPLClient) fixtures(ctx context.Context, refresh bool) ([]models.Fixture, error) {
	if !refresh {
		var cached []models.Fixture
		if c.cacheGet(ctx, fixturesCacheKey, &cached) {
			return cached, nil
		}
	}

	out, err := c.shared(ctx, fixturesCacheKey, func(ctx context.Context) (interface{}, error) {
		var fixtures []models.Fixture
		if err := c.getJSON(ctx, "/fixtures/", &fixtures); err != nil {
			return nil, fmt.Errorf("fetch fixtures: %w", err)
		}
		c.cacheSet(ctx, fixturesCacheKey, fixtures)
		return fixtures, nil
	})
	if err != nil {
		return nil, err
	}
	return out.([]models.Fixture), nil
}

// Entry fetches the manager's entry summary
func (c *FPLClient) Entry(ctx context.Context, managerID string) (*EntryResponse, error) {
	var entry EntryResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/entry/%s/", managerID), &entry); err != nil {
		return nil, fmt.Errorf("fetch entry %s: %w", managerID, err)
	}
	return &entry, nil
}

// Picks fetches the manager's picks for gameweek. When that gameweek has no
// picks yet (404) it falls back to the previous one and reports which
// gameweek the picks belong to.
func (c *FPLClient) Picks(ctx context.Context, managerID string, gameweek int) (*PicksResponse, int, error) {
	var picks PicksResponse
	err := c.getJSON(ctx, fmt.Sprintf("/entry/%s/event/%d/picks/", managerID, gameweek), &picks)
	if errors.Is(err, ErrNotFound) && gameweek > 1 {
		c.logger.WithFields(logrus.Fields{
			"manager_id": managerID,
			"gameweek":   gameweek,
		}).Warnf("No picks for gameweek %d, falling back to gameweek %d", gameweek, gameweek-1)

		gameweek--
		picks = PicksResponse{}
		err = c.getJSON(ctx, fmt.Sprintf("/entry/%s/event/%d/picks/", managerID, gameweek), &picks)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("fetch picks for manager %s gameweek %d: %w", managerID, gameweek, err)
	}
	return &picks, gameweek, nil
}

// ChipsUsed returns the lowercased names of the chips the manager has played
func (c *FPLClient) ChipsUsed(ctx context.Context, managerID string) ([]string, error) {
	var history historyResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/entry/%s/history/", managerID), &history); err != nil {
		return nil, fmt.Errorf("fetch history for manager %s: %w", managerID, err)
	}
	chips := make([]string, 0, len(history.Chips))
	for _, chip := range history.Chips {
		chips = append(chips, strings.ToLower(chip.Name))
	}
	return chips, nil
}

// CurrentGameweek reads the current (else next) gameweek from bootstrap
func (c *FPLClient) CurrentGameweek(ctx context.Context) (int, error) {
	b, err := c.Bootstrap(ctx)
	if err != nil {
		return 0, err
	}
	return b.CurrentGameweek()
}

// FetchSquad loads and normalizes the manager's squad. A failed history
// lookup only loses the chip list; a failed entry lookup only loses the bank.
func (c *FPLClient) FetchSquad(ctx context.Context, managerID string, gameweek int) (*models.Squad, error) {
	if _, err := strconv.Atoi(managerID); err != nil {
		return nil, fmt.Errorf("invalid manager id %q: %w", managerID, err)
	}

	b, err := c.Bootstrap(ctx)
	if err != nil {
		return nil, err
	}
	picks, picksGameweek, err := c.Picks(ctx, managerID, gameweek)
	if err != nil {
		return nil, err
	}

	log := c.logger.WithFields(logrus.Fields{"manager_id": managerID, "gameweek": gameweek})

	chips, err := c.ChipsUsed(ctx, managerID)
	if err != nil {
		log.WithError(err).Warn("Failed to fetch chip history, assuming no chips used")
		chips = []string{}
	}

	bank := bankFromPicks(picks)
	if bank == nil {
		entry, err := c.Entry(ctx, managerID)
		switch {
		case err != nil:
			log.WithError(err).Warn("Failed to fetch entry, bank unknown")
		case entry.LastDeadlineBank != nil:
			lastBank := priceFromTenths(*entry.LastDeadlineBank)
			bank = &lastBank
		}
	}

	records, skipped := NormalizeSquad(b, picks.Picks)
	if picksGameweek != gameweek {
		skipped = append(skipped, fmt.Sprintf("picks for gameweek %d not published, using gameweek %d", gameweek, picksGameweek))
	}

	return &models.Squad{
		ManagerID: managerID,
		Gameweek:  gameweek,
		Players:   records,
		ChipsUsed: chips,
		Bank:      bank,
		Skipped:   skipped,
	}, nil
}

// FetchFixtures returns every fixture with the team names to label them.
// Filtering to the target gameweek happens in the fixture-enrichment stage.
func (c *FPLClient) FetchFixtures(ctx context.Context, gameweek int) (models.FixtureSet, error) {
	b, err := c.Bootstrap(ctx)
	if err != nil {
		return models.FixtureSet{}, err
	}
	fixtures, err := c.Fixtures(ctx)
	if err != nil {
		return models.FixtureSet{}, err
	}
	return models.FixtureSet{Fixtures: fixtures, Teams: b.TeamNames()}, nil
}

// FetchMarket returns every player in the game as a transfer candidate
func (c *FPLClient) FetchMarket(ctx context.Context) ([]models.MarketCandidate, error) {
	b, err := c.Bootstrap(ctx)
	if err != nil {
		return nil, err
	}
	return MarketFromBootstrap(b), nil
}

// WarmCache refetches the shared payloads and overwrites their cache entries
func (c *FPLClient) WarmCache(ctx context.Context) error {
	if _, err := c.bootstrap(ctx, true); err != nil {
		return err
	}
	_, err := c.fixtures(ctx, true)
	return err
}

func bankFromPicks(picks *PicksResponse) *decimal.Decimal {
	if picks.EntryHistory.Bank == nil {
		return nil
	}
	bank := priceFromTenths(*picks.EntryHistory.Bank)
	return &bank
}

// getJSON performs a rate-limited, breaker-protected GET and decodes the body
func (c *FPLClient) getJSON(ctx context.Context, path string, target interface{}) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	call := func() (interface{}, error) {
		return c.fetchWithRetry(ctx, path)
	}

	var out interface{}
	var err error
	if c.breaker != nil {
		out, err = c.breaker.Execute(FPLService, call)
	} else {
		out, err = call()
	}
	if err != nil {
		return err
	}

	result := out.(fetchResult)
	if result.status == http.StatusNotFound {
		return fmt.Errorf("GET %s: %w", path, ErrNotFound)
	}
	if err := json.Unmarshal(result.body, target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// fetchWithRetry retries transport errors and 5xx answers with exponential backoff
func (c *FPLClient) fetchWithRetry(ctx context.Context, path string) (fetchResult, error) {
	var lastErr error
	for attempt := 0; attempt < c.retryAttempts; attempt++ {
		if attempt > 0 {
			wait := c.retryBackoff * time.Duration(1<<(attempt-1))
			c.logger.Warnf("FPL request failed (attempt %d), waiting %v: %v", attempt, wait, lastErr)
			select {
			case <-ctx.Done():
				return fetchResult{}, ctx.Err()
			case <-time.After(wait):
			}
		}

		result, err := c.fetch(ctx, path)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if errors.Is(err, ErrUpstream) && result.status < http.StatusInternalServerError {
			break
		}
	}
	return fetchResult{}, lastErr
}

func (c *FPLClient) fetch(ctx context.Context, path string) (fetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fetchResult{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fetchResult{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fetchResult{}, fmt.Errorf("read body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fetchResult{status: resp.StatusCode}, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fetchResult{status: resp.StatusCode}, fmt.Errorf("GET %s: %w: status %d", path, ErrUpstream, resp.StatusCode)
	}
	return fetchResult{status: resp.StatusCode, body: body}, nil
}

// shared runs one fetch per key for all concurrent callers. The fetch runs
// detached from the first caller's cancellation, bounded by fetchTimeout;
// each caller stops waiting when its own ctx ends.
func (c *FPLClient) shared(ctx context.Context, key string, fetch func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	ch := c.flight.DoChan(key, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
		defer cancel()
		return fetch(fetchCtx)
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *FPLClient) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if c.cache == nil {
		return false
	}
	return c.cache.Get(ctx, key, dest) == nil
}

func (c *FPLClient) cacheSet(ctx context.Context, key string, value interface{}) {
	if c.cache == nil || c.cacheTTL <= 0 {
		return
	}
	if err := c.cache.SetWithRetry(ctx, key, value, c.cacheTTL, cacheSetRetries); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Failed to cache FPL payload")
	}
}
