package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Victor-Haefner/github-repo-stats/internal/referrer"
	"github.com/Victor-Haefner/github-repo-stats/internal/timeseries"
)

// WriteSummary prints a terminal run summary: totals per metric group and
// the top-referrer ranking.
func WriteSummary(w io.Writer, params Params, views, clones timeseries.Series, sel referrer.Selection, noColor bool) {
	heading := color.New(color.FgCyan, color.Bold)
	if noColor {
		heading.DisableColor()
	}

	heading.Fprintf(w, "Traffic summary for %s\n", params.RepoSpec)

	if !views.Empty() || !clones.Empty() {
		writeScalarSummary(w, views, clones)
	}

	if len(sel.Names) > 0 {
		fmt.Fprintln(w)
		heading.Fprintln(w, "Top referrers by max unique views")
		writeReferrerSummary(w, sel)
	}
}

func writeScalarSummary(w io.Writer, views, clones timeseries.Series) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Metric", "Total", "Days", "From", "To"})

	appendGroup := func(series timeseries.Series, label, totalCol string) {
		if series.Empty() {
			return
		}

		first, last := series.TimeRange()
		tw.AppendRow(table.Row{
			label,
			humanize.Comma(series.Totals()[totalCol]),
			len(series.Points),
			first.Format(dayLayout),
			last.Format(dayLayout),
		})
	}

	appendGroup(views, "views", ColumnViewsTotal)
	appendGroup(views, "views (unique)", ColumnViewsUnique)
	appendGroup(clones, "clones", ColumnClonesTotal)
	appendGroup(clones, "clones (unique)", ColumnClonesUnique)

	tw.Render()
}

func writeReferrerSummary(w io.Writer, sel referrer.Selection) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"#", "Referrer", "Max unique", "Observations"})

	for i, name := range sel.Names {
		observations := 0

		for _, row := range sel.Rows {
			if row.Cells[i] != nil {
				observations++
			}
		}

		tw.AppendRow(table.Row{i + 1, name, humanize.Comma(sel.MaxUnique[i]), observations})
	}

	tw.Render()
}
