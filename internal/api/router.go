package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/gameweek-advisor/internal/api/handlers"
	"github.com/stitts-dev/gameweek-advisor/internal/api/middleware"
	"github.com/stitts-dev/gameweek-advisor/internal/personality"
)

// Dependencies wires the router. Breakers and Jobs may be nil.
type Dependencies struct {
	Reports     handlers.ReportGenerator
	Text        personality.TextProvider
	Cache       handlers.Pinger
	Breakers    handlers.BreakerStates
	Jobs        handlers.JobController
	CorsOrigins []string
	EnableMCP   bool
	Logger      *logrus.Logger
}

// NewRouter builds the gin engine with every route mounted
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.CORS(deps.CorsOrigins))

	greetings := handlers.NewGreetingHandler(deps.Text)
	health := handlers.NewHealthHandler(deps.Cache, deps.Breakers, deps.Jobs, deps.Logger)

	router.GET("/", greetings.Greeting)
	router.GET("/farewell", greetings.Farewell)
	router.GET("/health", health.GetHealth)

	apiV1 := router.Group("/api/v1")
	SetupRoutes(apiV1, handlers.NewReportHandler(deps.Reports, deps.Text, deps.Logger))
	if deps.Jobs != nil {
		SetupJobRoutes(apiV1.Group("/jobs"), handlers.NewJobsHandler(deps.Jobs, deps.Logger))
	}

	if deps.EnableMCP {
		mcpHandler := gin.WrapH(NewMCPHandler(NewMCPServer(deps.Reports, deps.Logger)))
		router.GET("/mcp", mcpHandler)
		router.POST("/mcp", mcpHandler)
		router.DELETE("/mcp", mcpHandler)
	}

	return router
}

// SetupRoutes configures the report routes on the given router group
func SetupRoutes(group *gin.RouterGroup, reports *handlers.ReportHandler) {
	group.GET("/report", reports.GetReport)
	group.GET("/report/players/:id", reports.GetPlayer)
}

// SetupJobRoutes configures the background job routes
func SetupJobRoutes(group *gin.RouterGroup, jobs *handlers.JobsHandler) {
	group.GET("", jobs.ListJobs)
	group.POST("/:id/trigger", jobs.TriggerJob)
	group.POST("/:id/enable", jobs.EnableJob)
	group.POST("/:id/disable", jobs.DisableJob)
}
