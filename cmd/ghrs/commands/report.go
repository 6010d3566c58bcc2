// Package commands implements CLI command handlers for ghrs.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Victor-Haefner/github-repo-stats/internal/config"
	"github.com/Victor-Haefner/github-repo-stats/internal/logging"
	"github.com/Victor-Haefner/github-repo-stats/internal/plotpage"
	"github.com/Victor-Haefner/github-repo-stats/internal/referrer"
	"github.com/Victor-Haefner/github-repo-stats/internal/report"
	"github.com/Victor-Haefner/github-repo-stats/internal/snapshot"
	"github.com/Victor-Haefner/github-repo-stats/internal/timeseries"
)

const reportArgCount = 2

// ErrNoInputData is returned when neither views/clones fragments nor
// referrer snapshots were found; a report must never be fabricated from
// empty data.
var ErrNoInputData = errors.New("no snapshot data found for either series kind")

// ReportCommand holds configuration for the report command.
type ReportCommand struct {
	configPath string
	outputDir  string
	format     string
	theme      string
	topN       int
	verbose    bool
	quiet      bool
	noColor    bool
}

// NewReportCommand creates and configures the report command.
func NewReportCommand() *cobra.Command {
	rc := &ReportCommand{}

	cobraCmd := &cobra.Command{
		Use:   "report <owner/repo> <csv-dir>",
		Short: "Generate a traffic report from a directory of snapshot CSVs",
		Long: `Generate a traffic report for a repository.

Reads views/clones time series fragments (*views_clones*.csv) and
top-referrer snapshots (*_top_referrers_snapshot.csv) from the given
directory, reconciles the overlapping fragments, and renders the report.`,
		Args: cobra.ExactArgs(reportArgCount),
		RunE: func(_ *cobra.Command, args []string) error {
			return rc.run(args[0], args[1], os.Stdout)
		},
	}

	cobraCmd.Flags().StringVarP(&rc.outputDir, "output", "o", "", "Output directory (default <today>_report)")
	cobraCmd.Flags().StringVarP(&rc.format, "format", "f", "", "Output format (html, yaml, json)")
	cobraCmd.Flags().StringVar(&rc.theme, "theme", "", "Report theme (light, dark)")
	cobraCmd.Flags().IntVar(&rc.topN, "top-n", 0, "Number of top referrers to select")
	cobraCmd.Flags().StringVar(&rc.configPath, "config", "", "Path to config file")
	cobraCmd.Flags().BoolVarP(&rc.verbose, "verbose", "v", false, "Verbose logging")
	cobraCmd.Flags().BoolVarP(&rc.quiet, "quiet", "q", false, "Only log errors")
	cobraCmd.Flags().BoolVar(&rc.noColor, "no-color", false, "Disable colored terminal output")

	return cobraCmd
}

func (rc *ReportCommand) run(repoSpec, csvDir string, stdout io.Writer) error {
	cfg, err := rc.loadConfig()
	if err != nil {
		return err
	}

	log := logging.Setup(os.Stderr, logging.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Verbose: rc.verbose,
		Quiet:   rc.quiet,
	})

	log.Info("generating traffic report", "repo", repoSpec, "dir", csvDir, "format", cfg.Report.Format)

	views, clones, err := loadScalarSeries(csvDir, cfg, log)
	if err != nil {
		return err
	}

	selection, err := loadReferrerSelection(csvDir, cfg, log)
	if err != nil {
		return err
	}

	if views.Empty() && clones.Empty() && len(selection.Names) == 0 {
		return fmt.Errorf("%w: %s", ErrNoInputData, csvDir)
	}

	params := report.Params{
		RepoSpec:    repoSpec,
		GeneratedAt: time.Now().UTC(),
		Theme:       plotpage.Theme(cfg.Report.Theme),
	}

	switch cfg.Report.Format {
	case config.FormatYAML:
		return report.NewExport(params, views, clones, selection).WriteYAML(stdout)
	case config.FormatJSON:
		return report.NewExport(params, views, clones, selection).WriteJSON(stdout)
	default:
		return rc.writeHTMLReport(params, views, clones, selection, stdout, log)
	}
}

// loadConfig loads file/env configuration and applies flag overrides.
// Overridden values go through the same validation as configured ones.
func (rc *ReportCommand) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(rc.configPath)
	if err != nil {
		return nil, err
	}

	if rc.topN > 0 {
		cfg.Report.TopN = rc.topN
	}

	if rc.theme != "" {
		if rc.theme != "light" && rc.theme != "dark" {
			return nil, fmt.Errorf("%w: %q", config.ErrInvalidTheme, rc.theme)
		}

		cfg.Report.Theme = rc.theme
	}

	if rc.format != "" {
		switch rc.format {
		case config.FormatHTML, config.FormatYAML, config.FormatJSON:
			cfg.Report.Format = rc.format
		default:
			return nil, fmt.Errorf("%w: %q", config.ErrInvalidFormat, rc.format)
		}
	}

	return cfg, nil
}

// loadScalarSeries loads and reconciles the views/clones fragments. A
// missing kind is reported and its report sections are omitted; it does not
// abort the run.
func loadScalarSeries(csvDir string, cfg *config.Config, log *slog.Logger) (timeseries.Series, timeseries.Series, error) {
	loader := snapshot.NewLoader(csvDir)
	loader.ViewsClonesGlob = cfg.Input.ViewsClonesGlob
	loader.ReferrerSuffix = cfg.Input.ReferrerSuffix

	fragments, err := loader.LoadFragments()
	if err != nil {
		if errors.Is(err, snapshot.ErrNoSnapshots) {
			log.Warn("no views/clones fragments found, omitting scalar sections", "dir", csvDir)

			return timeseries.Series{}, timeseries.Series{}, nil
		}

		return timeseries.Series{}, timeseries.Series{}, err
	}

	series, err := timeseries.Reconcile(fragments)
	if err != nil {
		return timeseries.Series{}, timeseries.Series{}, err
	}

	log.Debug("reconciled scalar series",
		"fragments", len(fragments),
		"points", len(series.Points),
		"columns", series.Columns,
	)

	views := series.Select(report.ColumnViewsUnique, report.ColumnViewsTotal)
	clones := series.Select(report.ColumnClonesUnique, report.ColumnClonesTotal)

	return views, clones, nil
}

// loadReferrerSelection loads referrer snapshots and computes the top-N
// selection. A missing kind is reported and the referrer sections are
// omitted.
func loadReferrerSelection(csvDir string, cfg *config.Config, log *slog.Logger) (referrer.Selection, error) {
	loader := snapshot.NewLoader(csvDir)
	loader.ViewsClonesGlob = cfg.Input.ViewsClonesGlob
	loader.ReferrerSuffix = cfg.Input.ReferrerSuffix

	snapshots, err := loader.LoadReferrerSnapshots()
	if err != nil {
		if errors.Is(err, snapshot.ErrNoSnapshots) {
			log.Warn("no referrer snapshots found, omitting referrer sections", "dir", csvDir)

			return referrer.Selection{}, nil
		}

		return referrer.Selection{}, err
	}

	set := referrer.BuildSeries(snapshots)

	selection, err := referrer.TopN(set, cfg.Report.TopN)
	if err != nil {
		return referrer.Selection{}, err
	}

	log.Debug("selected top referrers",
		"snapshots", len(snapshots),
		"referrers", len(set.ByName),
		"selected", selection.Names,
	)

	return selection, nil
}

func (rc *ReportCommand) writeHTMLReport(
	params report.Params,
	views, clones timeseries.Series,
	selection referrer.Selection,
	stdout io.Writer,
	log *slog.Logger,
) error {
	outDir := rc.outputDir
	if outDir == "" {
		outDir = params.GeneratedAt.Format("2006-01-02") + "_report"
	}

	page := report.BuildPage(params, views, clones, selection)

	outPath, err := report.WriteHTML(page, outDir)
	if err != nil {
		return err
	}

	log.Info("report written", "path", outPath)

	if !rc.quiet {
		report.WriteSummary(stdout, params, views, clones, selection, rc.noColor)
	}

	return nil
}
