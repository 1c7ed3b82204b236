// Package scheduler keeps the FPL cache warm on a cron schedule so report
// requests rarely wait on the upstream API.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

const (
	// CacheWarmingJob refreshes bootstrap-static and fixtures
	CacheWarmingJob = "cache_warming"

	DefaultSchedule = "*/30 * * * *"

	jobTimeout  = 2 * time.Minute
	stopTimeout = 5 * time.Second
)

const (
	StatusScheduled = "scheduled"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

var (
	// ErrJobNotFound is returned for an unknown job id
	ErrJobNotFound = errors.New("job not found")
	// ErrStopped is returned once Stop has been called
	ErrStopped = errors.New("refresher was stopped")
)

// Warmer force-refreshes cached upstream payloads
type Warmer interface {
	WarmCache(ctx context.Context) error
}

// BreakerState reports the circuit state of an upstream service
type BreakerState interface {
	GetState(service string) gobreaker.State
}

// JobInfo represents information about a scheduled job
type JobInfo struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Schedule   string        `json:"schedule"`
	LastRun    time.Time     `json:"last_run"`
	NextRun    time.Time     `json:"next_run"`
	Status     string        `json:"status"`
	RunCount   int           `json:"run_count"`
	ErrorCount int           `json:"error_count"`
	LastError  string        `json:"last_error,omitempty"`
	Duration   time.Duration `json:"duration"`
	IsEnabled  bool          `json:"is_enabled"`
}

type job struct {
	info    JobInfo
	entryID cron.EntryID
	run     func(ctx context.Context) error
}

// Refresher runs the cache-warming job on a cron schedule
type Refresher struct {
	warmer   Warmer
	breakers BreakerState
	service  string
	schedule string
	logger   *logrus.Logger
	cron     *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.RWMutex
	jobs      map[string]*job
	isRunning bool
}

// NewRefresher creates a refresher for warmer. breakers may be nil; when set,
// runs are skipped while service's breaker is open.
func NewRefresher(warmer Warmer, breakers BreakerState, service, schedule string, logger *logrus.Logger) *Refresher {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Refresher{
		warmer:   warmer,
		breakers: breakers,
		service:  service,
		schedule: schedule,
		logger:   logger,
		cron:     cron.New(cron.WithLogger(cron.VerbosePrintfLogger(logger))),
		ctx:      ctx,
		cancel:   cancel,
		jobs:     make(map[string]*job),
	}
}

// Start schedules the jobs and starts the cron scheduler
func (r *Refresher) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isRunning {
		return fmt.Errorf("refresher is already running")
	}
	if r.ctx.Err() != nil {
		return ErrStopped
	}

	if err := r.addJob(CacheWarmingJob, r.schedule, "FPL cache warming", r.warmCache); err != nil {
		return fmt.Errorf("failed to schedule jobs: %w", err)
	}

	r.cron.Start()
	r.isRunning = true
	r.refreshNextRuns()

	r.logger.WithFields(logrus.Fields{
		"component": "refresher",
		"jobs":      len(r.jobs),
	}).Info("Refresher started")
	return nil
}

// addJob must be called with mu held
func (r *Refresher) addJob(id, schedule, name string, fn func(ctx context.Context) error) error {
	if _, exists := r.jobs[id]; exists {
		return nil
	}
	entryID, err := r.cron.AddFunc(schedule, func() {
		r.runJob(id)
	})
	if err != nil {
		return fmt.Errorf("failed to add job %s: %w", id, err)
	}

	r.jobs[id] = &job{
		info: JobInfo{
			ID:        id,
			Name:      name,
			Schedule:  schedule,
			Status:    StatusScheduled,
			IsEnabled: true,
		},
		entryID: entryID,
		run:     fn,
	}

	r.logger.WithFields(logrus.Fields{
		"component": "refresher",
		"job_id":    id,
		"job_name":  name,
		"schedule":  schedule,
	}).Info("Scheduled job added")
	return nil
}

// runJob executes a job with panic recovery and records the outcome
func (r *Refresher) runJob(id string) {
	r.mu.Lock()
	j, exists := r.jobs[id]
	if !exists || !j.info.IsEnabled || j.info.Status == StatusRunning {
		r.mu.Unlock()
		return
	}
	j.info.Status = StatusRunning
	j.info.LastRun = time.Now()
	j.info.RunCount++
	runCount := j.info.RunCount
	fn := j.run
	r.mu.Unlock()

	logger := r.logger.WithFields(logrus.Fields{
		"component": "refresher",
		"job_id":    id,
		"run_count": runCount,
	})
	logger.Info("Starting scheduled job")
	start := time.Now()

	defer func() {
		if p := recover(); p != nil {
			logger.WithField("panic", p).Error("Job panicked")
			r.updateJobStatus(id, StatusFailed, fmt.Sprintf("panic: %v", p), time.Since(start))
		}
	}()

	ctx, cancel := context.WithTimeout(r.ctx, jobTimeout)
	defer cancel()

	err := fn(ctx)
	duration := time.Since(start)
	switch {
	case errors.Is(err, errSkipped):
		logger.Warn("Upstream circuit is open, job skipped")
		r.updateJobStatus(id, StatusSkipped, "", duration)
	case err != nil:
		logger.WithError(err).WithField("duration", duration).Error("Job failed")
		r.updateJobStatus(id, StatusFailed, err.Error(), duration)
	default:
		logger.WithField("duration", duration).Info("Job completed successfully")
		r.updateJobStatus(id, StatusCompleted, "", duration)
	}
}

func (r *Refresher) updateJobStatus(id, status, errorMsg string, duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, exists := r.jobs[id]
	if !exists {
		return
	}
	j.info.Status = status
	j.info.Duration = duration
	if errorMsg != "" {
		j.info.ErrorCount++
		j.info.LastError = errorMsg
	}
	j.info.NextRun = r.cron.Entry(j.entryID).Next
}

// refreshNextRuns must be called with mu held
func (r *Refresher) refreshNextRuns() {
	for _, j := range r.jobs {
		j.info.NextRun = r.cron.Entry(j.entryID).Next
	}
}

var errSkipped = errors.New("skipped")

func (r *Refresher) warmCache(ctx context.Context) error {
	if r.breakers != nil && r.breakers.GetState(r.service) == gobreaker.StateOpen {
		return errSkipped
	}
	return r.warmer.WarmCache(ctx)
}

// GetStatus summarizes the refresher for the health endpoint
func (r *Refresher) GetStatus() map[string]interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return map[string]interface{}{
		"is_running":   r.isRunning,
		"job_count":    len(r.jobs),
		"cron_entries": len(r.cron.Entries()),
	}
}

// GetJobs returns a snapshot of every job
func (r *Refresher) GetJobs() map[string]JobInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	jobs := make(map[string]JobInfo, len(r.jobs))
	for id, j := range r.jobs {
		jobs[id] = j.info
	}
	return jobs
}

// EnableJob lets runs of a job go ahead again
func (r *Refresher) EnableJob(id string) error {
	return r.setEnabled(id, true)
}

// DisableJob skips every run of a job until it is enabled
func (r *Refresher) DisableJob(id string) error {
	return r.setEnabled(id, false)
}

func (r *Refresher) setEnabled(id string, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, exists := r.jobs[id]
	if !exists {
		return fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	j.info.IsEnabled = enabled

	r.logger.WithFields(logrus.Fields{
		"component": "refresher",
		"job_id":    id,
		"enabled":   enabled,
	}).Info("Job toggled")
	return nil
}

// TriggerJob runs a job now, in the background
func (r *Refresher) TriggerJob(id string) error {
	r.mu.RLock()
	_, exists := r.jobs[id]
	stopped := r.ctx.Err() != nil
	r.mu.RUnlock()

	if !exists {
		return fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	if stopped {
		return ErrStopped
	}

	r.logger.WithField("job_id", id).Info("Manually triggering job")

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.runJob(id)
	}()
	return nil
}

// Stop halts the scheduler and waits for running jobs
func (r *Refresher) Stop() error {
	r.mu.Lock()
	wasRunning := r.isRunning
	r.isRunning = false
	r.mu.Unlock()

	r.cancel()
	if !wasRunning {
		r.wg.Wait()
		return nil
	}

	r.logger.WithField("component", "refresher").Info("Stopping refresher")

	ctx := r.cron.Stop()
	done := make(chan struct{})
	go func() {
		<-ctx.Done()
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.WithField("component", "refresher").Info("Refresher stopped gracefully")
	case <-time.After(stopTimeout):
		r.logger.WithField("component", "refresher").Warn("Refresher stop timed out")
	}
	return nil
}
