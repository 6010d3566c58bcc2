package plotpage_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Victor-Haefner/github-repo-stats/internal/plotpage"
)

func TestBuildLineChart(t *testing.T) {
	t.Parallel()

	opts := plotpage.DefaultChartOpts()
	labels := []string{"2020-12-01", "2020-12-02", "2020-12-03"}
	series := []plotpage.LineSeries{
		{
			Name:       "views_unique",
			Data:       []plotpage.SeriesData{int64(3), int64(5), int64(2)},
			Color:      "#0369a1",
			ShowSymbol: true,
		},
		{
			Name: "views_total",
			Data: []plotpage.SeriesData{int64(10), int64(20), int64(8)},
		},
	}

	chart := plotpage.BuildLineChart(opts, labels, series, "count per day")
	require.NotNil(t, chart)
	require.Len(t, chart.MultiSeries, 2)
	assert.Equal(t, "views_unique", chart.MultiSeries[0].Name)
	assert.Equal(t, "views_total", chart.MultiSeries[1].Name)
}

func TestBuildLineChart_NilOpts(t *testing.T) {
	t.Parallel()

	labels := []string{"2020-12-01"}
	series := []plotpage.LineSeries{
		{Name: "clones_total", Data: []plotpage.SeriesData{int64(7)}},
	}

	chart := plotpage.BuildLineChart(nil, labels, series, "count")
	require.NotNil(t, chart)
	require.Len(t, chart.MultiSeries, 1)
}

func TestBuildLineChart_NilValuesStayNil(t *testing.T) {
	t.Parallel()

	// nil marks a missing observation; it must pass through unmodified so
	// the chart renders a gap instead of a zero.
	series := []plotpage.LineSeries{
		{Name: "t.co", Data: []plotpage.SeriesData{int64(5), nil, int64(7)}},
	}

	chart := plotpage.BuildLineChart(nil, []string{"a", "b", "c"}, series, "unique views")
	require.Len(t, chart.MultiSeries, 1)
	require.Len(t, chart.MultiSeries[0].Data, 3)
}

func TestPage_Render(t *testing.T) {
	t.Parallel()

	page := plotpage.NewPage("Traffic statistics for octocat/hello", "Report description.")
	page.GeneratedAt = "2021-01-05 12:00 UTC"
	page.Add(
		plotpage.Section{
			Title:    "Overview",
			Content:  plotpage.NewStatStrip(plotpage.Stat{Label: "Total views", Value: "1,234"}),
			Subtitle: "Totals over the observed range.",
		},
		plotpage.Section{
			Title:   "Referrer ranking",
			Content: plotpage.NewTable([]string{"Rank", "Referrer"}).AddRow("1", "github.com"),
		},
	)

	var buf bytes.Buffer

	err := page.Render(&buf)
	require.NoError(t, err)

	html := buf.String()
	assert.True(t, strings.HasPrefix(strings.TrimSpace(html), "<!DOCTYPE html>"))
	assert.Contains(t, html, "Traffic statistics for octocat/hello")
	assert.Contains(t, html, "github-repo-stats")
	assert.Contains(t, html, "2021-01-05 12:00 UTC")
	assert.Contains(t, html, "Overview")
	assert.Contains(t, html, "Total views")
	assert.Contains(t, html, "1,234")
	assert.Contains(t, html, "<th>Referrer</th>")
	assert.Contains(t, html, "<td>github.com</td>")
}

func TestPage_RenderDarkTheme(t *testing.T) {
	t.Parallel()

	page := plotpage.NewPage("Title", "")
	page.Theme = plotpage.ThemeDark

	var buf bytes.Buffer

	err := page.Render(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `class="dark"`)
}

func TestPage_RenderEmbedsChart(t *testing.T) {
	t.Parallel()

	chart := plotpage.BuildLineChart(nil, []string{"2020-12-01"}, []plotpage.LineSeries{
		{Name: "views_total", Data: []plotpage.SeriesData{int64(4)}},
	}, "count")

	page := plotpage.NewPage("Title", "")
	page.Add(plotpage.Section{Title: "Views", Content: chart})

	var buf bytes.Buffer

	err := page.Render(&buf)
	require.NoError(t, err)

	html := buf.String()

	// The chart is embedded as a fragment, not a nested HTML document.
	assert.Equal(t, 1, strings.Count(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "echarts.init")
	assert.Contains(t, html, `class="echart-box"`)
}

func TestTable_Render(t *testing.T) {
	t.Parallel()

	tbl := plotpage.NewTable([]string{"A", "B"}).
		AddRow("1", "2").
		AddRow("3", "4")

	var buf bytes.Buffer

	err := tbl.Render(&buf)
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "<th>A</th>")
	assert.Contains(t, html, "<td>3</td>")
	assert.Contains(t, html, `class="odd"`)
}

func TestSeriesPalette_DistinctPerTheme(t *testing.T) {
	t.Parallel()

	light := plotpage.SeriesPalette(plotpage.ThemeLight)
	dark := plotpage.SeriesPalette(plotpage.ThemeDark)

	require.NotEmpty(t, light)
	require.Len(t, dark, len(light))
	assert.NotEqual(t, light[0], dark[0])
}
