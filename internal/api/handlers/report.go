package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/gameweek-advisor/internal/models"
	"github.com/stitts-dev/gameweek-advisor/internal/personality"
	"github.com/stitts-dev/gameweek-advisor/internal/services"
	"github.com/stitts-dev/gameweek-advisor/pkg/utils"
)

// MaxGameweek is the last gameweek of a Premier League season
const MaxGameweek = 38

// ReportGenerator builds gameweek reports
type ReportGenerator interface {
	Generate(ctx context.Context, req services.ReportRequest) (*models.Report, error)
}

// ReportHandler serves the gameweek report and its player lookups
type ReportHandler struct {
	reports ReportGenerator
	text    personality.TextProvider
	logger  *logrus.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(reports ReportGenerator, text personality.TextProvider, logger *logrus.Logger) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		text:    text,
		logger:  logger,
	}
}

// GetReport builds the report for ?manager_id=&gw=
func (h *ReportHandler) GetReport(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	report, ok := h.generate(c, req)
	if !ok {
		return
	}
	utils.SendSuccess(c, report)
}

// GetPlayer returns one team_overview entry from a freshly built report
func (h *ReportHandler) GetPlayer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		utils.SendValidationError(c, "Invalid player ID", c.Param("id"), h.note())
		return
	}

	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	report, ok := h.generate(c, req)
	if !ok {
		return
	}

	player, found := report.FindPlayer(id)
	if !found {
		utils.SendNotFound(c, "Player not in squad", h.note())
		return
	}
	utils.SendSuccess(c, gin.H{
		"report_id":   report.ReportID,
		"gameweek":    report.Gameweek,
		"data_source": report.DataSource,
		"player":      player,
	})
}

func (h *ReportHandler) bindRequest(c *gin.Context) (services.ReportRequest, bool) {
	req := services.ReportRequest{ManagerID: strings.TrimSpace(c.Query("manager_id"))}

	if raw := strings.TrimSpace(c.Query("gw")); raw != "" {
		gw, err := strconv.Atoi(raw)
		if err != nil || gw < 1 || gw > MaxGameweek {
			utils.SendValidationError(c, "Invalid gameweek", "gw must be between 1 and 38", h.note())
			return req, false
		}
		req.Gameweek = gw
	}
	if req.ManagerID != "" {
		if _, err := strconv.Atoi(req.ManagerID); err != nil {
			utils.SendValidationError(c, "Invalid manager ID", "manager_id must be numeric", h.note())
			return req, false
		}
	}
	return req, true
}

func (h *ReportHandler) generate(c *gin.Context, req services.ReportRequest) (*models.Report, bool) {
	report, err := h.reports.Generate(c.Request.Context(), req)
	if err == nil {
		return report, true
	}

	_ = c.Error(err)
	h.logger.WithError(err).WithFields(logrus.Fields{
		"manager_id": req.ManagerID,
		"gameweek":   req.Gameweek,
	}).Error("Failed to generate report")

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		utils.SendErrorWithNote(c, http.StatusServiceUnavailable, utils.NewAppError(utils.ErrCodeUnavailable, "Report generation was interrupted", err.Error()), h.note())
	} else {
		utils.SendInternalError(c, "Failed to generate report", err.Error(), h.note())
	}
	return nil, false
}

// note is the flavor line attached to error responses
func (h *ReportHandler) note() string {
	return h.text.Line(personality.Error)
}
