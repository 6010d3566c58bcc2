// Package report assembles reconciled traffic series into the final report:
// an HTML page with charts and tables, machine-readable exports, and a
// terminal run summary.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Victor-Haefner/github-repo-stats/internal/plotpage"
	"github.com/Victor-Haefner/github-repo-stats/internal/referrer"
	"github.com/Victor-Haefner/github-repo-stats/internal/timeseries"
)

// Scalar counter columns of the views/clones schema.
const (
	ColumnViewsUnique  = "views_unique"
	ColumnViewsTotal   = "views_total"
	ColumnClonesUnique = "clones_unique"
	ColumnClonesTotal  = "clones_total"
)

const (
	dayLayout     = "2006-01-02"
	momentLayout  = "2006-01-02 15:04"
	indexFileName = "index.html"
	reportDirPerm = 0o750
)

// Params carries run-level report inputs.
type Params struct {
	RepoSpec    string
	GeneratedAt time.Time
	Theme       plotpage.Theme
}

// BuildPage assembles the full report page. Each section group is built
// independently and concatenated here; groups with no data are omitted
// rather than rendered from fabricated values.
func BuildPage(params Params, views, clones timeseries.Series, sel referrer.Selection) *plotpage.Page {
	page := plotpage.NewPage(
		fmt.Sprintf("Traffic statistics for %s", params.RepoSpec),
		"Views, clones and top referrers reconciled from traffic snapshots.",
	)
	page.Theme = params.Theme
	page.GeneratedAt = params.GeneratedAt.UTC().Format(momentLayout) + " UTC"

	page.Add(overviewSections(views, clones)...)
	page.Add(scalarSections(params.Theme, "Views", "per day", views, ColumnViewsUnique, ColumnViewsTotal)...)
	page.Add(scalarSections(params.Theme, "Clones", "per day", clones, ColumnClonesUnique, ColumnClonesTotal)...)
	page.Add(referrerSections(params.Theme, sel)...)

	return page
}

// WriteHTML renders the page to <outDir>/index.html, creating the directory
// if needed.
func WriteHTML(page *plotpage.Page, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, reportDirPerm); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", outDir, err)
	}

	outPath := filepath.Join(outDir, indexFileName)

	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}

	return outPath, nil
}

func overviewSections(views, clones timeseries.Series) []plotpage.Section {
	if views.Empty() && clones.Empty() {
		return nil
	}

	stats := make([]plotpage.Stat, 0, 5)

	// Views and clones may cover different spans; the stat reports the
	// union of both ranges.
	first, last := views.TimeRange()
	if views.Empty() {
		first, last = clones.TimeRange()
	} else if !clones.Empty() {
		cFirst, cLast := clones.TimeRange()

		if cFirst.Before(first) {
			first = cFirst
		}

		if cLast.After(last) {
			last = cLast
		}
	}

	stats = append(stats, plotpage.Stat{
		Label: "Time range",
		Value: first.Format(dayLayout) + " to " + last.Format(dayLayout),
	})

	if !views.Empty() {
		totals := views.Totals()
		stats = append(stats,
			plotpage.Stat{Label: "Total views", Value: humanize.Comma(totals[ColumnViewsTotal])},
			plotpage.Stat{Label: "Unique views", Value: humanize.Comma(totals[ColumnViewsUnique])},
		)
	}

	if !clones.Empty() {
		totals := clones.Totals()
		stats = append(stats,
			plotpage.Stat{Label: "Total clones", Value: humanize.Comma(totals[ColumnClonesTotal])},
			plotpage.Stat{Label: "Unique clones", Value: humanize.Comma(totals[ColumnClonesUnique])},
		)
	}

	return []plotpage.Section{{
		Title:   "Overview",
		Content: plotpage.NewStatStrip(stats...),
	}}
}

// scalarSections builds the chart section for one scalar metric group
// (views or clones), with one line per counter.
func scalarSections(theme plotpage.Theme, title, subtitle string, series timeseries.Series, uniqueCol, totalCol string) []plotpage.Section {
	if series.Empty() {
		return nil
	}

	labels := make([]string, len(series.Points))
	for i, p := range series.Points {
		labels[i] = p.Time.Format(dayLayout)
	}

	palette := plotpage.SeriesPalette(theme)

	lineSeries := make([]plotpage.LineSeries, 0, 2)

	for i, col := range []string{uniqueCol, totalCol} {
		data := make([]plotpage.SeriesData, len(series.Points))
		for j, v := range series.Column(col) {
			data[j] = v
		}

		lineSeries = append(lineSeries, plotpage.LineSeries{
			Name:       col,
			Data:       data,
			Color:      palette[i%len(palette)],
			ShowSymbol: true,
		})
	}

	chart := plotpage.BuildLineChart(plotpage.NewChartOpts(theme), labels, lineSeries, "count "+subtitle)

	return []plotpage.Section{{
		Title:    title,
		Subtitle: fmt.Sprintf("Unique and total %s %s, reconciled across snapshot fragments.", strings.ToLower(title), subtitle),
		Content:  chart,
	}}
}

// referrerSections builds the top-referrer chart and ranking table.
// Missing observations are nil chart values and render as gaps, never as
// zero traffic.
func referrerSections(theme plotpage.Theme, sel referrer.Selection) []plotpage.Section {
	if len(sel.Names) == 0 {
		return nil
	}

	labels := make([]string, len(sel.Rows))
	for i, row := range sel.Rows {
		labels[i] = row.Time.Format(momentLayout)
	}

	palette := plotpage.SeriesPalette(theme)

	lineSeries := make([]plotpage.LineSeries, len(sel.Names))

	for col, name := range sel.Names {
		data := make([]plotpage.SeriesData, len(sel.Rows))

		for i, row := range sel.Rows {
			if cell := row.Cells[col]; cell != nil {
				data[i] = *cell
			}
		}

		lineSeries[col] = plotpage.LineSeries{
			Name:       name,
			Data:       data,
			Color:      palette[col%len(palette)],
			ShowSymbol: true,
		}
	}

	chart := plotpage.BuildLineChart(plotpage.NewChartOpts(theme), labels, lineSeries, "unique views")

	tbl := plotpage.NewTable([]string{"Rank", "Referrer", "Max unique views"})
	for i, name := range sel.Names {
		tbl.AddRow(fmt.Sprintf("%d", i+1), name, humanize.Comma(sel.MaxUnique[i]))
	}

	return []plotpage.Section{
		{
			Title:    "Referrers",
			Subtitle: fmt.Sprintf("Top %d referrers by maximum unique views over the full observed range.", len(sel.Names)),
			Content:  chart,
		},
		{
			Title:   "Referrer ranking",
			Content: tbl,
		},
	}
}
