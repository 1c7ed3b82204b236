package app

import (
	"context"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/gameweek-advisor/internal/models"
	"github.com/stitts-dev/gameweek-advisor/internal/services"
	"github.com/stitts-dev/gameweek-advisor/pkg/config"
)

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	return cfg
}

func TestBuild_Offline(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	c, err := Build(context.Background(), loadConfig(t), logger, Options{Offline: true})
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.FPL)
	assert.Equal(t, "source=mock cache=disabled", c.Describe())

	report, err := c.Reports.Generate(context.Background(), services.ReportRequest{ManagerID: "1234"})
	require.NoError(t, err)
	assert.Equal(t, models.DataSourceMock, report.DataSource)
	assert.Equal(t, "live data source not configured", report.FallbackReason)
}

func TestBuild_RedisUnavailable(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://127.0.0.1:1/0")
	logger, hook := logtest.NewNullLogger()

	c, err := Build(context.Background(), loadConfig(t), logger, Options{})
	require.NoError(t, err)
	defer c.Close()

	assert.NotNil(t, c.FPL)
	assert.NotNil(t, c.Breakers)
	assert.IsType(t, services.NoopCache{}, c.Cache)
	assert.Equal(t, "source=fpl cache=disabled", c.Describe())
	assert.Equal(t, "Redis unavailable, caching disabled", hook.LastEntry().Message)
}

func TestBuild_InvalidAdvisorConfig(t *testing.T) {
	t.Setenv("TRANSFER_BUDGET", "plenty")
	logger, _ := logtest.NewNullLogger()

	_, err := Build(context.Background(), loadConfig(t), logger, Options{Offline: true})
	assert.ErrorContains(t, err, "invalid TRANSFER_BUDGET")
}
