// Package app wires configuration into the report pipeline for the binaries
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/gameweek-advisor/internal/providers"
	"github.com/stitts-dev/gameweek-advisor/internal/services"
	"github.com/stitts-dev/gameweek-advisor/pkg/config"
)

// Cache is what the pipeline needs from the cache layer
type Cache interface {
	providers.CacheProvider
	Ping(ctx context.Context) error
}

// Components are the wired services shared by the server and the CLI
type Components struct {
	Reports  *services.ReportService
	FPL      *providers.FPLClient
	Breakers *services.CircuitBreakerService
	Cache    Cache
	redis    *redis.Client
}

// Options tune Build
type Options struct {
	// Offline skips the FPL API and Redis; every report uses the mock dataset
	Offline bool
}

// Build connects the cache and assembles the report service. An unreachable
// Redis degrades to NoopCache.
func Build(ctx context.Context, cfg *config.Config, logger *logrus.Logger, opts Options) (*Components, error) {
	advisorCfg, err := cfg.AdvisorConfig()
	if err != nil {
		return nil, err
	}

	c := &Components{Cache: services.NoopCache{}}
	fallback := services.NewSources(providers.NewMockProvider())

	if opts.Offline {
		c.Reports = services.NewReportService(services.Sources{}, fallback, advisorCfg, cfg.DefaultGameweek, logger)
		return c, nil
	}

	c.Cache, c.redis = connectCache(ctx, cfg.RedisURL, logger)
	c.Breakers = services.NewCircuitBreakerService(cfg.CircuitBreakerThreshold, cfg.CircuitBreakerTimeout, logger, providers.FPLService)
	c.FPL = providers.NewFPLClient(cfg.FPLConfig(), c.Cache, c.Breakers, logger)
	c.Reports = services.NewReportService(services.NewSources(c.FPL), fallback, advisorCfg, cfg.DefaultGameweek, logger)
	return c, nil
}

// Close releases the Redis connection, if any
func (c *Components) Close() error {
	if c.redis == nil {
		return nil
	}
	return c.redis.Close()
}

func connectCache(ctx context.Context, redisURL string, logger *logrus.Logger) (Cache, *redis.Client) {
	log := logger.WithField("component", "cache")
	if redisURL == "" {
		log.Info("No REDIS_URL configured, caching disabled")
		return services.NoopCache{}, nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.WithError(err).Warn("Invalid REDIS_URL, caching disabled")
		return services.NoopCache{}, nil
	}

	client := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.WithError(err).Warn("Redis unavailable, caching disabled")
		_ = client.Close()
		return services.NoopCache{}, nil
	}

	log.WithField("addr", opt.Addr).Info("Connected to Redis")
	return services.NewCacheService(client, logger), client
}

// Describe summarizes the wiring for startup logs
func (c *Components) Describe() string {
	cache := "redis"
	if _, ok := c.Cache.(services.NoopCache); ok {
		cache = "disabled"
	}
	source := "fpl"
	if c.FPL == nil {
		source = "mock"
	}
	return fmt.Sprintf("source=%s cache=%s", source, cache)
}
