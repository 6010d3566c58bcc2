package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Victor-Haefner/github-repo-stats/internal/referrer"
	"github.com/Victor-Haefner/github-repo-stats/internal/timeseries"
)

// Export is the machine-readable form of a report: the reconciled scalar
// series plus the top-N referrer selection.
type Export struct {
	Repository   string           `json:"repository"              yaml:"repository"`
	GeneratedAt  time.Time        `json:"generated_at"            yaml:"generated_at"`
	Views        []ExportPoint    `json:"views,omitempty"         yaml:"views,omitempty"`
	Clones       []ExportPoint    `json:"clones,omitempty"        yaml:"clones,omitempty"`
	TopReferrers []ExportReferrer `json:"top_referrers,omitempty" yaml:"top_referrers,omitempty"`
}

// ExportPoint is one reconciled scalar observation.
type ExportPoint struct {
	Time   time.Time        `json:"time"   yaml:"time"`
	Counts map[string]int64 `json:"counts" yaml:"counts"`
}

// ExportReferrer is one selected referrer with its observed unique-view
// series. Times with no observation are absent, not zero.
type ExportReferrer struct {
	Name      string              `json:"name"       yaml:"name"`
	MaxUnique int64               `json:"max_unique" yaml:"max_unique"`
	Series    []ExportObservation `json:"series"     yaml:"series"`
}

// ExportObservation is one referrer observation.
type ExportObservation struct {
	Time        time.Time `json:"time"         yaml:"time"`
	CountUnique int64     `json:"count_unique" yaml:"count_unique"`
}

// NewExport builds the export document from reconciled report inputs.
func NewExport(params Params, views, clones timeseries.Series, sel referrer.Selection) Export {
	export := Export{
		Repository:  params.RepoSpec,
		GeneratedAt: params.GeneratedAt.UTC(),
		Views:       exportPoints(views),
		Clones:      exportPoints(clones),
	}

	for i, name := range sel.Names {
		ref := ExportReferrer{Name: name, MaxUnique: sel.MaxUnique[i]}

		for _, row := range sel.Rows {
			if cell := row.Cells[i]; cell != nil {
				ref.Series = append(ref.Series, ExportObservation{Time: row.Time, CountUnique: *cell})
			}
		}

		export.TopReferrers = append(export.TopReferrers, ref)
	}

	return export
}

// WriteYAML serializes the export as YAML.
func (e Export) WriteYAML(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()

	if err := encoder.Encode(e); err != nil {
		return fmt.Errorf("encoding yaml export: %w", err)
	}

	return nil
}

// WriteJSON serializes the export as indented JSON.
func (e Export) WriteJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(e); err != nil {
		return fmt.Errorf("encoding json export: %w", err)
	}

	return nil
}

func exportPoints(series timeseries.Series) []ExportPoint {
	if series.Empty() {
		return nil
	}

	points := make([]ExportPoint, len(series.Points))

	for i, p := range series.Points {
		counts := make(map[string]int64, len(p.Counts))
		for name, v := range p.Counts {
			counts[name] = v
		}

		points[i] = ExportPoint{Time: p.Time, Counts: counts}
	}

	return points
}
