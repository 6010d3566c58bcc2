package report_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Victor-Haefner/github-repo-stats/internal/plotpage"
	"github.com/Victor-Haefner/github-repo-stats/internal/referrer"
	"github.com/Victor-Haefner/github-repo-stats/internal/report"
	"github.com/Victor-Haefner/github-repo-stats/internal/snapshot"
	"github.com/Victor-Haefner/github-repo-stats/internal/timeseries"
)

func testParams() report.Params {
	return report.Params{
		RepoSpec:    "octocat/hello-world",
		GeneratedAt: time.Date(2021, 1, 5, 12, 0, 0, 0, time.UTC),
		Theme:       plotpage.ThemeLight,
	}
}

func scalarSeries(t *testing.T) (timeseries.Series, timeseries.Series) {
	t.Helper()

	columns := []string{
		report.ColumnViewsUnique, report.ColumnViewsTotal,
		report.ColumnClonesUnique, report.ColumnClonesTotal,
	}

	fragment := snapshot.Fragment{
		Columns: columns,
		Samples: []snapshot.Sample{
			{
				Time: time.Date(2020, 12, 1, 0, 0, 0, 0, time.UTC),
				Counts: map[string]int64{
					report.ColumnViewsUnique: 3, report.ColumnViewsTotal: 25,
					report.ColumnClonesUnique: 4, report.ColumnClonesTotal: 10,
				},
			},
			{
				Time: time.Date(2020, 12, 7, 0, 0, 0, 0, time.UTC),
				Counts: map[string]int64{
					report.ColumnViewsUnique: 9, report.ColumnViewsTotal: 44,
					report.ColumnClonesUnique: 21, report.ColumnClonesTotal: 73,
				},
			},
		},
	}

	series, err := timeseries.Reconcile([]snapshot.Fragment{fragment})
	require.NoError(t, err)

	views := series.Select(report.ColumnViewsUnique, report.ColumnViewsTotal)
	clones := series.Select(report.ColumnClonesUnique, report.ColumnClonesTotal)

	return views, clones
}

func topSelection(t *testing.T) referrer.Selection {
	t.Helper()

	set := referrer.BuildSeries([]snapshot.ReferrerSnapshot{
		{
			TakenAt: time.Date(2020, 12, 14, 9, 0, 0, 0, time.UTC),
			Columns: []string{"count", "count_unique"},
			Rows: []snapshot.ReferrerRow{
				{Referrer: "github.com", Values: map[string]int64{"count": 90, "count_unique": 45}},
				{Referrer: "t.co", Values: map[string]int64{"count": 10, "count_unique": 5}},
			},
		},
	})

	selection, err := referrer.TopN(set, 5)
	require.NoError(t, err)

	return selection
}

func TestBuildPage_AllSections(t *testing.T) {
	t.Parallel()

	views, clones := scalarSeries(t)
	page := report.BuildPage(testParams(), views, clones, topSelection(t))

	titles := make([]string, len(page.Sections))
	for i, section := range page.Sections {
		titles[i] = section.Title
	}

	assert.Equal(t, []string{"Overview", "Views", "Clones", "Referrers", "Referrer ranking"}, titles)
	assert.Equal(t, plotpage.ThemeLight, page.Theme)
	assert.Contains(t, page.Title, "octocat/hello-world")
	assert.Equal(t, "2021-01-05 12:00 UTC", page.GeneratedAt)
}

func TestBuildPage_OverviewRangeSpansBothGroups(t *testing.T) {
	t.Parallel()

	viewsFragment := snapshot.Fragment{
		Columns: []string{report.ColumnViewsUnique, report.ColumnViewsTotal},
		Samples: []snapshot.Sample{
			{
				Time:   time.Date(2020, 12, 1, 0, 0, 0, 0, time.UTC),
				Counts: map[string]int64{report.ColumnViewsUnique: 3, report.ColumnViewsTotal: 25},
			},
			{
				Time:   time.Date(2020, 12, 7, 0, 0, 0, 0, time.UTC),
				Counts: map[string]int64{report.ColumnViewsUnique: 9, report.ColumnViewsTotal: 44},
			},
		},
	}
	clonesFragment := snapshot.Fragment{
		Columns: []string{report.ColumnClonesUnique, report.ColumnClonesTotal},
		Samples: []snapshot.Sample{
			{
				Time:   time.Date(2020, 11, 20, 0, 0, 0, 0, time.UTC),
				Counts: map[string]int64{report.ColumnClonesUnique: 4, report.ColumnClonesTotal: 10},
			},
			{
				Time:   time.Date(2020, 12, 10, 0, 0, 0, 0, time.UTC),
				Counts: map[string]int64{report.ColumnClonesUnique: 8, report.ColumnClonesTotal: 25},
			},
		},
	}

	views, err := timeseries.Reconcile([]snapshot.Fragment{viewsFragment})
	require.NoError(t, err)

	clones, err := timeseries.Reconcile([]snapshot.Fragment{clonesFragment})
	require.NoError(t, err)

	page := report.BuildPage(testParams(), views, clones, referrer.Selection{})

	require.NotEmpty(t, page.Sections)
	require.Equal(t, "Overview", page.Sections[0].Title)

	strip, ok := page.Sections[0].Content.(*plotpage.StatStrip)
	require.True(t, ok)
	require.NotEmpty(t, strip.Stats)
	assert.Equal(t, "Time range", strip.Stats[0].Label)
	assert.Equal(t, "2020-11-20 to 2020-12-10", strip.Stats[0].Value,
		"range must cover the union of the views and clones spans")
}

func TestBuildPage_OmitsEmptyGroups(t *testing.T) {
	t.Parallel()

	page := report.BuildPage(testParams(), timeseries.Series{}, timeseries.Series{}, topSelection(t))

	titles := make([]string, len(page.Sections))
	for i, section := range page.Sections {
		titles[i] = section.Title
	}

	assert.Equal(t, []string{"Referrers", "Referrer ranking"}, titles,
		"no scalar sections may be fabricated from empty data")
}

func TestBuildPage_RendersEndToEnd(t *testing.T) {
	t.Parallel()

	views, clones := scalarSeries(t)
	page := report.BuildPage(testParams(), views, clones, topSelection(t))

	var buf bytes.Buffer

	err := page.Render(&buf)
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "views_unique")
	assert.Contains(t, html, "clones_total")
	assert.Contains(t, html, "github.com")
	assert.Contains(t, html, "2020-12-01")
}

func TestWriteHTML(t *testing.T) {
	t.Parallel()

	views, clones := scalarSeries(t)
	page := report.BuildPage(testParams(), views, clones, referrer.Selection{})

	outDir := filepath.Join(t.TempDir(), "2021-01-05_report")

	outPath, err := report.WriteHTML(page, outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "index.html"), outPath)

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "octocat/hello-world")
}

func TestWriteSummary(t *testing.T) {
	t.Parallel()

	views, clones := scalarSeries(t)

	var buf bytes.Buffer

	report.WriteSummary(&buf, testParams(), views, clones, topSelection(t), true)

	out := buf.String()
	assert.Contains(t, out, "octocat/hello-world")
	assert.Contains(t, out, "views")
	assert.Contains(t, out, "clones")
	assert.Contains(t, out, "github.com")
	// Total views across the two reconciled days.
	assert.Contains(t, out, "69")
}

func TestWriteSummary_OmitsEmptyReferrers(t *testing.T) {
	t.Parallel()

	views, clones := scalarSeries(t)

	var buf bytes.Buffer

	report.WriteSummary(&buf, testParams(), views, clones, referrer.Selection{}, true)
	assert.NotContains(t, buf.String(), "Top referrers")
}

func TestExport_YAMLAndJSON(t *testing.T) {
	t.Parallel()

	views, clones := scalarSeries(t)
	export := report.NewExport(testParams(), views, clones, topSelection(t))

	require.Len(t, export.Views, 2)
	require.Len(t, export.Clones, 2)
	require.Len(t, export.TopReferrers, 2)
	assert.Equal(t, "github.com", export.TopReferrers[0].Name)
	assert.Equal(t, int64(45), export.TopReferrers[0].MaxUnique)

	var yamlBuf bytes.Buffer

	require.NoError(t, export.WriteYAML(&yamlBuf))
	assert.Contains(t, yamlBuf.String(), "repository: octocat/hello-world")
	assert.Contains(t, yamlBuf.String(), "count_unique: 45")

	var jsonBuf bytes.Buffer

	require.NoError(t, export.WriteJSON(&jsonBuf))
	assert.Contains(t, jsonBuf.String(), `"repository": "octocat/hello-world"`)
	assert.True(t, strings.HasPrefix(jsonBuf.String(), "{"))
}

func TestExport_SkipsMissingObservations(t *testing.T) {
	t.Parallel()

	set := referrer.BuildSeries([]snapshot.ReferrerSnapshot{
		{
			TakenAt: time.Date(2020, 12, 14, 9, 0, 0, 0, time.UTC),
			Columns: []string{"count", "count_unique"},
			Rows: []snapshot.ReferrerRow{
				{Referrer: "a.example", Values: map[string]int64{"count": 9, "count_unique": 8}},
				{Referrer: "b.example", Values: map[string]int64{"count": 3, "count_unique": 2}},
			},
		},
		{
			TakenAt: time.Date(2020, 12, 21, 9, 0, 0, 0, time.UTC),
			Columns: []string{"count", "count_unique"},
			Rows: []snapshot.ReferrerRow{
				{Referrer: "a.example", Values: map[string]int64{"count": 9, "count_unique": 6}},
			},
		},
	})

	selection, err := referrer.TopN(set, 2)
	require.NoError(t, err)

	export := report.NewExport(testParams(), timeseries.Series{}, timeseries.Series{}, selection)

	require.Len(t, export.TopReferrers, 2)
	assert.Len(t, export.TopReferrers[0].Series, 2)
	assert.Len(t, export.TopReferrers[1].Series, 1, "missing observation is absent, not zero")

	assert.Empty(t, export.Views)
	assert.Empty(t, export.Clones)
}
