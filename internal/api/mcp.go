package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/gameweek-advisor/internal/api/handlers"
	"github.com/stitts-dev/gameweek-advisor/internal/services"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	mcpServerName    = "gameweek-advisor"
	mcpServerVersion = "1.0.0"
)

type ReportArgs struct {
	ManagerID string `json:"manager_id,omitempty" jsonschema:"FPL manager (entry) id; omit for the sample squad"`
	GW        int    `json:"gw,omitempty" jsonschema:"Gameweek (0 = current)"`
}

type PlayerArgs struct {
	ManagerID string `json:"manager_id,omitempty" jsonschema:"FPL manager (entry) id; omit for the sample squad"`
	GW        int    `json:"gw,omitempty" jsonschema:"Gameweek (0 = current)"`
	PlayerID  int    `json:"player_id" jsonschema:"Player element id (required)"`
}

// NewMCPServer exposes the report as MCP tools
func NewMCPServer(reports handlers.ReportGenerator, logger *logrus.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    mcpServerName,
		Version: mcpServerVersion,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "gameweek_report",
		Description: "Full gameweek report: captaincy, starting XI, bench, alerts, chip and transfer advice",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ReportArgs) (*mcp.CallToolResult, any, error) {
		reportReq, err := toReportRequest(args.ManagerID, args.GW)
		if err != nil {
			return toolError(err), nil, nil
		}
		report, err := reports.Generate(ctx, reportReq)
		if err != nil {
			logger.WithError(err).WithField("tool", "gameweek_report").Error("MCP tool failed")
			return toolError(err), nil, nil
		}
		return toolJSON(report)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "squad_player",
		Description: "One player's team overview entry from the gameweek report",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args PlayerArgs) (*mcp.CallToolResult, any, error) {
		if args.PlayerID <= 0 {
			return toolError(fmt.Errorf("player_id is required")), nil, nil
		}
		reportReq, err := toReportRequest(args.ManagerID, args.GW)
		if err != nil {
			return toolError(err), nil, nil
		}
		report, err := reports.Generate(ctx, reportReq)
		if err != nil {
			logger.WithError(err).WithField("tool", "squad_player").Error("MCP tool failed")
			return toolError(err), nil, nil
		}
		player, ok := report.FindPlayer(args.PlayerID)
		if !ok {
			return toolError(fmt.Errorf("player %d is not in the squad", args.PlayerID)), nil, nil
		}
		return toolJSON(player)
	})

	return server
}

// NewMCPHandler serves server over streamable HTTP with JSON responses
func NewMCPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

func toReportRequest(managerID string, gw int) (services.ReportRequest, error) {
	if gw < 0 || gw > handlers.MaxGameweek {
		return services.ReportRequest{}, fmt.Errorf("gw must be between 0 and %d", handlers.MaxGameweek)
	}
	if managerID != "" {
		if _, err := strconv.Atoi(managerID); err != nil {
			return services.ReportRequest{}, fmt.Errorf("manager_id must be numeric")
		}
	}
	return services.ReportRequest{ManagerID: managerID, Gameweek: gw}, nil
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
