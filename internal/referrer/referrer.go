// Package referrer pivots top-referrer snapshots into per-referrer time
// series and selects the top-N referrers for joint plotting.
package referrer

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Victor-Haefner/github-repo-stats/internal/snapshot"
)

// ColumnCountUnique is the ranking column for top-N selection.
const ColumnCountUnique = "count_unique"

// ErrMissingRankColumn indicates the snapshots lack the count_unique column
// needed for ranking.
var ErrMissingRankColumn = errors.New("referrer snapshots lack ranking column")

// Observation is one referrer's values at one snapshot time.
type Observation struct {
	Time   time.Time
	Values map[string]int64
}

// SeriesSet holds a raw time series per referrer name. Unlike the scalar
// views/clones counters, referrer values are not corrected across
// snapshots: distinct snapshot times stay distinct observations even when
// the value did not change.
type SeriesSet struct {
	Columns []string
	ByName  map[string][]Observation
}

// Names returns all referrer names, sorted ascending.
func (s SeriesSet) Names() []string {
	names := make([]string, 0, len(s.ByName))
	for name := range s.ByName {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// BuildSeries pivots the snapshot collection by referrer name. Every row of
// every snapshot is tagged with that snapshot's time; each referrer's
// observations are sorted ascending by time.
func BuildSeries(snapshots []snapshot.ReferrerSnapshot) SeriesSet {
	set := SeriesSet{ByName: make(map[string][]Observation)}

	if len(snapshots) > 0 {
		set.Columns = make([]string, len(snapshots[0].Columns))
		copy(set.Columns, snapshots[0].Columns)
	}

	for _, snap := range snapshots {
		for _, row := range snap.Rows {
			values := make(map[string]int64, len(row.Values))
			for name, v := range row.Values {
				values[name] = v
			}

			set.ByName[row.Referrer] = append(set.ByName[row.Referrer], Observation{
				Time:   snap.TakenAt,
				Values: values,
			})
		}
	}

	for name := range set.ByName {
		observations := set.ByName[name]

		sort.SliceStable(observations, func(i, j int) bool {
			return observations[i].Time.Before(observations[j].Time)
		})
	}

	return set
}

// Selection is the aligned top-N referrer table. Rows are indexed by the
// union of times at which any selected referrer was observed; a nil cell
// means no observation at that time, which is distinct from a zero count.
type Selection struct {
	Names     []string  // rank order, highest max count_unique first
	MaxUnique []int64   // ranking statistic per name, aligned with Names
	Rows      []AlignedRow
}

// AlignedRow is one time slot of the aligned table. Cells align with
// Selection.Names; nil marks a missing observation.
type AlignedRow struct {
	Time  time.Time
	Cells []*int64
}

// TopN ranks referrers by their maximum observed count_unique and returns
// the aligned table for the n highest.
//
// Tie-break: candidates are pre-sorted ascending by name, then stable-sorted
// by maximum descending, so referrers with equal maxima rank in
// lexicographic name order. This makes tie outcomes identical across runs
// and platforms instead of depending on map iteration order.
func TopN(set SeriesSet, n int) (Selection, error) {
	if n <= 0 {
		return Selection{}, nil
	}

	hasRankColumn := false

	for _, name := range set.Columns {
		if name == ColumnCountUnique {
			hasRankColumn = true

			break
		}
	}

	if len(set.ByName) > 0 && !hasRankColumn {
		return Selection{}, fmt.Errorf("%w: %s not in %v", ErrMissingRankColumn, ColumnCountUnique, set.Columns)
	}

	names := set.Names()

	maxima := make(map[string]int64, len(names))
	for _, name := range names {
		maxima[name] = maxUnique(set.ByName[name])
	}

	sort.SliceStable(names, func(i, j int) bool {
		return maxima[names[i]] > maxima[names[j]]
	})

	if len(names) > n {
		names = names[:n]
	}

	selection := Selection{
		Names:     names,
		MaxUnique: make([]int64, len(names)),
	}

	for i, name := range names {
		selection.MaxUnique[i] = maxima[name]
	}

	selection.Rows = alignRows(set, names)

	return selection, nil
}

// alignRows builds the joint table over the union of observation times of
// the selected referrers. Missing (time, referrer) combinations stay nil.
func alignRows(set SeriesSet, names []string) []AlignedRow {
	timeKeys := make(map[int64]time.Time)

	for _, name := range names {
		for _, obs := range set.ByName[name] {
			timeKeys[obs.Time.UTC().UnixNano()] = obs.Time
		}
	}

	times := make([]time.Time, 0, len(timeKeys))
	for _, t := range timeKeys {
		times = append(times, t)
	}

	sort.Slice(times, func(i, j int) bool {
		return times[i].Before(times[j])
	})

	rowIndex := make(map[int64]int, len(times))
	rows := make([]AlignedRow, len(times))

	for i, t := range times {
		rowIndex[t.UTC().UnixNano()] = i
		rows[i] = AlignedRow{Time: t, Cells: make([]*int64, len(names))}
	}

	for col, name := range names {
		for _, obs := range set.ByName[name] {
			value := obs.Values[ColumnCountUnique]
			rows[rowIndex[obs.Time.UTC().UnixNano()]].Cells[col] = &value
		}
	}

	return rows
}

func maxUnique(observations []Observation) int64 {
	var maxValue int64

	for i, obs := range observations {
		if v := obs.Values[ColumnCountUnique]; i == 0 || v > maxValue {
			maxValue = v
		}
	}

	return maxValue
}
