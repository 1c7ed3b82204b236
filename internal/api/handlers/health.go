package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/gameweek-advisor/internal/scheduler"
	"github.com/stitts-dev/gameweek-advisor/internal/services"
)

// Pinger checks a backing store
type Pinger interface {
	Ping(ctx context.Context) error
}

// BreakerStates reports circuit states and counts by service
type BreakerStates interface {
	States() map[string]services.BreakerStatus
}

// JobStatus reports the background refresher
type JobStatus interface {
	GetStatus() map[string]interface{}
	GetJobs() map[string]scheduler.JobInfo
}

// HealthStatus is the /health body
type HealthStatus struct {
	Status    string                            `json:"status"`
	Service   string                            `json:"service"`
	Timestamp time.Time                         `json:"timestamp"`
	Checks    map[string]string                 `json:"checks"`
	Breakers  map[string]services.BreakerStatus `json:"circuit_breakers,omitempty"`
	Refresher map[string]interface{}            `json:"refresher,omitempty"`
	Jobs      map[string]scheduler.JobInfo      `json:"jobs,omitempty"`
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	cache    Pinger
	breakers BreakerStates
	jobs     JobStatus
	logger   *logrus.Logger
}

// NewHealthHandler creates a new health handler; breakers and jobs may be nil
func NewHealthHandler(cache Pinger, breakers BreakerStates, jobs JobStatus, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		cache:    cache,
		breakers: breakers,
		jobs:     jobs,
		logger:   logger,
	}
}

// GetHealth reports dependency status. It always answers 200; a failed
// dependency marks the status degraded.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	response := HealthStatus{
		Status:    "ok",
		Service:   "gameweek-advisor",
		Timestamp: time.Now().UTC(),
		Checks:    make(map[string]string),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.cache.Ping(ctx); err != nil {
		response.Status = "degraded"
		response.Checks["redis"] = "failed: " + err.Error()
		h.logger.WithError(err).Debug("Redis health check failed")
	} else {
		response.Checks["redis"] = "ok"
	}

	if h.breakers != nil {
		response.Breakers = h.breakers.States()
		for _, breaker := range response.Breakers {
			if breaker.State != "closed" {
				response.Status = "degraded"
			}
		}
	}
	if h.jobs != nil {
		response.Refresher = h.jobs.GetStatus()
		response.Jobs = h.jobs.GetJobs()
	}

	c.JSON(http.StatusOK, response)
}
