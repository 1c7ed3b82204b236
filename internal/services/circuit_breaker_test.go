package services

import (
	"errors"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker_OpensAfterFailures(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	cb := NewCircuitBreakerService(1, time.Minute, logger, "fpl")

	boom := errors.New("upstream 503")
	for i := 0; i < 3; i++ {
		_, err := cb.Execute("fpl", func() (interface{}, error) { return nil, boom })
		assert.ErrorIs(t, err, boom)
	}

	assert.Equal(t, gobreaker.StateOpen, cb.GetState("fpl"))
	// counts start over with each new breaker generation
	assert.Equal(t, map[string]BreakerStatus{"fpl": {State: "open"}}, cb.States())

	called := false
	_, err := cb.Execute("fpl", func() (interface{}, error) {
		called = true
		return nil, nil
	})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.False(t, called)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "Circuit breaker state changed", hook.LastEntry().Message)
	assert.Equal(t, "open", hook.LastEntry().Data["to"])
}

func TestCircuitBreaker_StaysClosedOnSuccess(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	cb := NewCircuitBreakerService(1, time.Minute, logger, "fpl")

	for i := 0; i < 5; i++ {
		out, err := cb.Execute("fpl", func() (interface{}, error) { return "ok", nil })
		require.NoError(t, err)
		assert.Equal(t, "ok", out)
	}

	assert.Equal(t, gobreaker.StateClosed, cb.GetState("fpl"))
	assert.Equal(t, uint32(5), cb.GetCounts("fpl").TotalSuccesses)
	assert.Equal(t, BreakerStatus{State: "closed", Requests: 5, ConsecutiveSuccesses: 5}, cb.States()["fpl"])

	_, _ = cb.Execute("fpl", func() (interface{}, error) { return nil, errors.New("timeout") })
	status := cb.States()["fpl"]
	assert.Equal(t, uint32(6), status.Requests)
	assert.Equal(t, uint32(1), status.TotalFailures)
	assert.Equal(t, uint32(1), status.ConsecutiveFailures)
	assert.Zero(t, status.ConsecutiveSuccesses)
}

func TestCircuitBreaker_UnknownService(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	cb := NewCircuitBreakerService(1, time.Minute, logger, "fpl")

	out, err := cb.Execute("espn", func() (interface{}, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, out)
	assert.Equal(t, "No circuit breaker found for service, executing without protection", hook.LastEntry().Message)

	assert.Equal(t, gobreaker.StateClosed, cb.GetState("espn"))
	assert.Equal(t, gobreaker.Counts{}, cb.GetCounts("espn"))
}
