package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/gameweek-advisor/internal/scheduler"
	"github.com/stitts-dev/gameweek-advisor/pkg/utils"
)

// JobController lists and drives background jobs
type JobController interface {
	JobStatus
	TriggerJob(id string) error
	EnableJob(id string) error
	DisableJob(id string) error
}

// JobsHandler exposes the refresher's jobs for operators
type JobsHandler struct {
	jobs   JobController
	logger *logrus.Logger
}

func NewJobsHandler(jobs JobController, logger *logrus.Logger) *JobsHandler {
	return &JobsHandler{
		jobs:   jobs,
		logger: logger,
	}
}

// ListJobs returns every job with its run history
func (h *JobsHandler) ListJobs(c *gin.Context) {
	utils.SendSuccess(c, h.jobs.GetJobs())
}

// TriggerJob starts a job now; it answers 202 and runs in the background
func (h *JobsHandler) TriggerJob(c *gin.Context) {
	id := c.Param("id")
	if err := h.jobs.TriggerJob(id); err != nil {
		h.sendJobError(c, id, err)
		return
	}
	c.JSON(http.StatusAccepted, utils.Response{
		Success: true,
		Data:    gin.H{"job_id": id, "triggered": true},
	})
}

func (h *JobsHandler) EnableJob(c *gin.Context) {
	h.toggle(c, h.jobs.EnableJob)
}

func (h *JobsHandler) DisableJob(c *gin.Context) {
	h.toggle(c, h.jobs.DisableJob)
}

func (h *JobsHandler) toggle(c *gin.Context, set func(id string) error) {
	id := c.Param("id")
	if err := set(id); err != nil {
		h.sendJobError(c, id, err)
		return
	}
	utils.SendSuccess(c, h.jobs.GetJobs()[id])
}

func (h *JobsHandler) sendJobError(c *gin.Context, id string, err error) {
	switch {
	case errors.Is(err, scheduler.ErrJobNotFound):
		utils.SendNotFound(c, "Job not found", "")
	case errors.Is(err, scheduler.ErrStopped):
		utils.SendError(c, http.StatusServiceUnavailable, utils.NewAppError(utils.ErrCodeUnavailable, "Refresher is stopped"))
	default:
		h.logger.WithError(err).WithField("job_id", id).Error("Job request failed")
		utils.SendInternalError(c, "Job request failed", err.Error(), "")
	}
}
