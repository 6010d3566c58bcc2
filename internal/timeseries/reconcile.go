package timeseries

import (
	"fmt"
	"sort"
	"time"

	"github.com/Victor-Haefner/github-repo-stats/internal/snapshot"
)

// Reconcile collapses possibly-overlapping fragments into one series.
//
// The data source reports cumulative counts over a trailing rolling window,
// so a sample near a fragment boundary may undercount relative to the same
// timestamp seen in the interior of a later fragment. Cumulative counters
// never legitimately decrease for a fixed timestamp across fetches, so for
// each timestamp the per-counter maximum across all fragments is the most
// complete resolution.
//
// The fragments must share one column set; the loader guarantees this for
// fragments it produced, and Reconcile re-checks because an inconsistent
// shape would make the max rule unsound.
func Reconcile(fragments []snapshot.Fragment) (Series, error) {
	if len(fragments) == 0 {
		return Series{}, nil
	}

	columns := fragments[0].Columns

	if err := checkFragmentSchemas(fragments); err != nil {
		return Series{}, err
	}

	merged := make(map[int64]map[string]int64)

	for _, fragment := range fragments {
		for _, sample := range fragment.Samples {
			key := sample.Time.UTC().UnixNano()

			counts, seen := merged[key]
			if !seen {
				counts = make(map[string]int64, len(columns))
				for _, name := range columns {
					counts[name] = sample.Counts[name]
				}

				merged[key] = counts

				continue
			}

			for _, name := range columns {
				if v := sample.Counts[name]; v > counts[name] {
					counts[name] = v
				}
			}
		}
	}

	points := make([]Point, 0, len(merged))

	for key, counts := range merged {
		points = append(points, Point{Time: time.Unix(0, key).UTC(), Counts: counts})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Time.Before(points[j].Time)
	})

	return Series{Columns: columns, Points: points}, nil
}

// AsFragment converts a reconciled series back into fragment form, e.g. to
// feed the output of one reconciliation into another.
func (s Series) AsFragment() snapshot.Fragment {
	samples := make([]snapshot.Sample, len(s.Points))

	for i, p := range s.Points {
		counts := make(map[string]int64, len(p.Counts))
		for name, v := range p.Counts {
			counts[name] = v
		}

		samples[i] = snapshot.Sample{Time: p.Time, Counts: counts}
	}

	columns := make([]string, len(s.Columns))
	copy(columns, s.Columns)

	return snapshot.Fragment{Columns: columns, Samples: samples}
}

func checkFragmentSchemas(fragments []snapshot.Fragment) error {
	expected := columnSet(fragments[0].Columns)

	for _, fragment := range fragments[1:] {
		got := columnSet(fragment.Columns)

		if len(got) != len(expected) {
			return schemaError(fragment)
		}

		for name := range expected {
			if !got[name] {
				return schemaError(fragment)
			}
		}
	}

	return nil
}

func schemaError(fragment snapshot.Fragment) error {
	return fmt.Errorf("%w: fragment %s has columns %v", snapshot.ErrSchemaMismatch, fragment.Path, fragment.Columns)
}

func columnSet(columns []string) map[string]bool {
	set := make(map[string]bool, len(columns))
	for _, name := range columns {
		set[name] = true
	}

	return set
}
