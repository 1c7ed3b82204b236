package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/stitts-dev/gameweek-advisor/internal/advisor"
	"github.com/stitts-dev/gameweek-advisor/internal/providers"
)

type Config struct {
	// Server
	Port     string `mapstructure:"PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// FPL API
	FPLBaseURL              string        `mapstructure:"FPL_BASE_URL"`
	FPLUserAgent            string        `mapstructure:"FPL_USER_AGENT"`
	FPLRateLimit            float64       `mapstructure:"FPL_RATE_LIMIT"`
	FPLRetryAttempts        int           `mapstructure:"FPL_RETRY_ATTEMPTS"`
	FPLRetryBackoff         time.Duration `mapstructure:"FPL_RETRY_BACKOFF"`
	ExternalAPITimeout      time.Duration `mapstructure:"EXTERNAL_API_TIMEOUT"`
	CircuitBreakerThreshold int           `mapstructure:"CIRCUIT_BREAKER_THRESHOLD"`
	CircuitBreakerTimeout   time.Duration `mapstructure:"CIRCUIT_BREAKER_TIMEOUT"`
	CacheTTL                time.Duration `mapstructure:"CACHE_TTL"`

	// Background jobs
	EnableBackgroundJobs bool   `mapstructure:"ENABLE_BACKGROUND_JOBS"`
	DataRefreshSchedule  string `mapstructure:"DATA_REFRESH_SCHEDULE"`

	// Report
	DefaultGameweek int    `mapstructure:"DEFAULT_GAMEWEEK"`
	TransferBudget  string `mapstructure:"TRANSFER_BUDGET"`
	EnableMCP       bool   `mapstructure:"ENABLE_MCP"`

	// Advisor knobs
	NoFixtureDifficulty      int     `mapstructure:"NO_FIXTURE_DIFFICULTY"`
	RequireFixtureForCaptain bool    `mapstructure:"REQUIRE_FIXTURE_FOR_CAPTAIN"`
	ExcludeBlankFromBench    bool    `mapstructure:"EXCLUDE_BLANK_FROM_BENCH"`
	TransferLimit            int     `mapstructure:"TRANSFER_LIMIT"`
	TransferInMinMinutes     float64 `mapstructure:"TRANSFER_IN_MIN_MINUTES"`
	MarketMinMinutes         int     `mapstructure:"MARKET_MIN_MINUTES"`
	MaxMarketTransfers       int     `mapstructure:"MAX_MARKET_TRANSFERS"`
	UpgradeMargin            float64 `mapstructure:"UPGRADE_MARGIN"`
	FormWeight               float64 `mapstructure:"FORM_WEIGHT"`
	PPGWeight                float64 `mapstructure:"PPG_WEIGHT"`
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")

	defaults := advisor.DefaultConfig()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")

	v.SetDefault("FPL_BASE_URL", providers.DefaultFPLBaseURL)
	v.SetDefault("FPL_USER_AGENT", "gameweek-advisor/1.0")
	v.SetDefault("FPL_RATE_LIMIT", 2.0) // requests per second
	v.SetDefault("FPL_RETRY_ATTEMPTS", 3)
	v.SetDefault("FPL_RETRY_BACKOFF", "500ms")
	v.SetDefault("EXTERNAL_API_TIMEOUT", "10s")
	v.SetDefault("CIRCUIT_BREAKER_THRESHOLD", 5)
	v.SetDefault("CIRCUIT_BREAKER_TIMEOUT", "60s")
	v.SetDefault("CACHE_TTL", "15m")

	v.SetDefault("ENABLE_BACKGROUND_JOBS", false)
	v.SetDefault("DATA_REFRESH_SCHEDULE", "*/30 * * * *")

	v.SetDefault("DEFAULT_GAMEWEEK", providers.MockGameweek)
	v.SetDefault("TRANSFER_BUDGET", defaults.DefaultBudget.String())
	v.SetDefault("ENABLE_MCP", true)

	v.SetDefault("NO_FIXTURE_DIFFICULTY", defaults.NoFixtureDifficulty)
	v.SetDefault("REQUIRE_FIXTURE_FOR_CAPTAIN", defaults.RequireFixtureForCaptain)
	v.SetDefault("EXCLUDE_BLANK_FROM_BENCH", defaults.ExcludeBlankFromBench)
	v.SetDefault("TRANSFER_LIMIT", defaults.TransferLimit)
	v.SetDefault("TRANSFER_IN_MIN_MINUTES", defaults.TransferInMinMinutes)
	v.SetDefault("MARKET_MIN_MINUTES", defaults.MarketMinMinutes)
	v.SetDefault("MAX_MARKET_TRANSFERS", defaults.MaxMarketTransfers)
	v.SetDefault("UPGRADE_MARGIN", defaults.UpgradeMargin)
	v.SetDefault("FORM_WEIGHT", defaults.FormWeight)
	v.SetDefault("PPG_WEIGHT", defaults.PPGWeight)

	// Read from environment
	v.AutomaticEnv()

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse CORS origins from comma-separated string
	if corsStr := v.GetString("CORS_ORIGINS"); corsStr != "" {
		config.CorsOrigins = strings.Split(corsStr, ",")
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// AdvisorConfig maps the advisor knobs onto advisor.Config and validates them
func (c *Config) AdvisorConfig() (advisor.Config, error) {
	budget, err := decimal.NewFromString(strings.TrimSpace(c.TransferBudget))
	if err != nil {
		return advisor.Config{}, fmt.Errorf("invalid TRANSFER_BUDGET %q: %w", c.TransferBudget, err)
	}

	cfg := advisor.Config{
		NoFixtureDifficulty:      c.NoFixtureDifficulty,
		RequireFixtureForCaptain: c.RequireFixtureForCaptain,
		ExcludeBlankFromBench:    c.ExcludeBlankFromBench,
		TransferLimit:            c.TransferLimit,
		TransferInMinMinutes:     c.TransferInMinMinutes,
		MarketMinMinutes:         c.MarketMinMinutes,
		MaxMarketTransfers:       c.MaxMarketTransfers,
		UpgradeMargin:            c.UpgradeMargin,
		FormWeight:               c.FormWeight,
		PPGWeight:                c.PPGWeight,
		DefaultBudget:            budget,
	}
	if err := cfg.Validate(); err != nil {
		return advisor.Config{}, fmt.Errorf("invalid advisor config: %w", err)
	}
	return cfg, nil
}

// FPLConfig returns the FPL client settings
func (c *Config) FPLConfig() providers.FPLConfig {
	return providers.FPLConfig{
		BaseURL:       c.FPLBaseURL,
		UserAgent:     c.FPLUserAgent,
		Timeout:       c.ExternalAPITimeout,
		RateLimit:     c.FPLRateLimit,
		CacheTTL:      c.CacheTTL,
		RetryAttempts: c.FPLRetryAttempts,
		RetryBackoff:  c.FPLRetryBackoff,
	}
}
