package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/stitts-dev/gameweek-advisor/internal/app"
	"github.com/stitts-dev/gameweek-advisor/internal/models"
	"github.com/stitts-dev/gameweek-advisor/internal/personality"
	"github.com/stitts-dev/gameweek-advisor/internal/services"
	"github.com/stitts-dev/gameweek-advisor/pkg/config"
	"github.com/stitts-dev/gameweek-advisor/pkg/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type reportOptions struct {
	managerID string
	gameweek  int
	format    string
	offline   bool
	logLevel  string
	timeout   time.Duration
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gwreport",
		Short:         "Fantasy Premier League gameweek advisor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newReportCmd())
	return root
}

func newReportCmd() *cobra.Command {
	opts := &reportOptions{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build the gameweek report for a manager",
		Long: `Builds the weekly report: captaincy, starting XI, bench, alerts, chip and
transfer advice. Without --manager-id, or when the FPL API is unreachable,
the report is built from the bundled sample squad.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.managerID, "manager-id", "", "FPL manager (entry) id")
	cmd.Flags().IntVar(&opts.gameweek, "gw", 0, "gameweek (0 = current)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "output format: text, json or yaml")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "skip the FPL API and use the sample squad")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "log level for stderr diagnostics")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", time.Minute, "overall time limit")
	return cmd
}

func runReport(ctx context.Context, out, errOut io.Writer, opts *reportOptions) error {
	format := strings.ToLower(opts.format)
	switch format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}
	if opts.gameweek < 0 || opts.gameweek > 38 {
		return fmt.Errorf("gw must be between 0 and 38, got %d", opts.gameweek)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	log := logger.InitLogger(opts.logLevel, true)
	log.SetOutput(errOut)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	components, err := app.Build(ctx, cfg, log, app.Options{Offline: opts.offline})
	if err != nil {
		return err
	}
	defer components.Close()

	report, err := components.Reports.Generate(ctx, services.ReportRequest{
		ManagerID: opts.managerID,
		Gameweek:  opts.gameweek,
	})
	if err != nil {
		return err
	}

	return writeReport(out, format, report, log)
}

func writeReport(out io.Writer, format string, report *models.Report, log *logrus.Logger) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		// round-trip through JSON so YAML keys match the JSON document
		raw, err := json.Marshal(report)
		if err != nil {
			return err
		}
		var doc map[string]interface{}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return err
		}
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		log.Debug("Rendering text report")
		return writeText(out, report)
	}
}

func writeText(out io.Writer, r *models.Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Gameweek %d report (%s data)\n", r.Gameweek, r.DataSource)
	if r.FallbackReason != "" {
		fmt.Fprintf(&b, "  fallback: %s\n", r.FallbackReason)
	}
	fmt.Fprintf(&b, "\nCaptain:      %s (%s)\n", r.Captain.Name, r.Captain.Reason)
	fmt.Fprintf(&b, "Vice captain: %s (%s)\n", r.ViceCaptain.Name, r.ViceCaptain.Reason)
	fmt.Fprintf(&b, "Predicted score: %.2f\n", r.PredictedScore)

	b.WriteString("\nStarting XI\n")
	for _, e := range r.StartingXI {
		fmt.Fprintf(&b, "  %-3s %-30s %s\n", e.Position, e.Name, e.Reason)
	}
	b.WriteString("\nBench\n")
	for _, e := range r.Bench {
		fmt.Fprintf(&b, "  %-3s %-30s %s\n", e.Position, e.Name, e.Reason)
	}

	if len(r.Alerts) > 0 {
		b.WriteString("\nAlerts\n")
		for _, a := range r.Alerts {
			fmt.Fprintf(&b, "  [%s] %s\n", a.Type, a.Message)
		}
	}

	chip := "none"
	if r.ChipRecommendation.RecommendedChip != nil {
		chip = *r.ChipRecommendation.RecommendedChip
	}
	fmt.Fprintf(&b, "\nChip: %s (%s)\n", chip, r.ChipRecommendation.Reason)

	if len(r.TransferSuggestions) > 0 {
		b.WriteString("\nTransfer suggestions\n")
		for _, t := range r.TransferSuggestions {
			fmt.Fprintf(&b, "  %s -> %s: %s\n", t.Out, t.In, t.Reason)
		}
	}
	if len(r.TransferRecommendations) > 0 {
		b.WriteString("\nMarket upgrades\n")
		for _, t := range r.TransferRecommendations {
			fmt.Fprintf(&b, "  %s -> %s (%s): %s\n", t.Out, t.In, t.PriceDelta.StringFixed(1), t.Reason)
		}
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "warning: %s\n", w)
	}

	fmt.Fprintf(&b, "\n%s\n", personality.StaticProvider{}.Line(personality.Farewell))
	_, err := io.WriteString(out, b.String())
	return err
}
