package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/gameweek-advisor/internal/api"
	"github.com/stitts-dev/gameweek-advisor/internal/app"
	"github.com/stitts-dev/gameweek-advisor/internal/personality"
	"github.com/stitts-dev/gameweek-advisor/internal/providers"
	"github.com/stitts-dev/gameweek-advisor/internal/scheduler"
	"github.com/stitts-dev/gameweek-advisor/pkg/config"
	"github.com/stitts-dev/gameweek-advisor/pkg/logger"
)

const serviceName = "gameweek-advisor"

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	components, err := app.Build(ctx, cfg, log, app.Options{})
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}
	defer components.Close()
	logger.WithService(log, serviceName).WithField("wiring", components.Describe()).Info("Services initialized")

	deps := api.Dependencies{
		Reports:     components.Reports,
		Text:        personality.NewRandomProvider(uint64(time.Now().UnixNano())),
		Cache:       components.Cache,
		Breakers:    components.Breakers,
		CorsOrigins: cfg.CorsOrigins,
		EnableMCP:   cfg.EnableMCP,
		Logger:      log,
	}

	if cfg.EnableBackgroundJobs {
		refresher := scheduler.NewRefresher(components.FPL, components.Breakers, providers.FPLService, cfg.DataRefreshSchedule, log)
		if err := refresher.Start(); err != nil {
			log.Errorf("Failed to start refresher: %v", err)
		} else {
			deps.Jobs = refresher
			defer refresher.Stop()
			if err := refresher.TriggerJob(scheduler.CacheWarmingJob); err != nil {
				log.WithError(err).Warn("Initial cache warm not started")
			}
		}
	}

	router := api.NewRouter(deps)

	for _, route := range router.Routes() {
		log.Debugf("%s %s", route.Method, route.Path)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithService(log, serviceName).Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
