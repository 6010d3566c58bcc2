// Package timeseries reconciles overlapping scalar snapshot fragments into
// a single chronological series.
package timeseries

import (
	"time"
)

// Point is one reconciled observation: a timestamp with its counter values.
type Point struct {
	Time   time.Time
	Counts map[string]int64
}

// Series is a reconciled time series: points sorted ascending by time with
// no duplicate timestamps.
type Series struct {
	Columns []string
	Points  []Point
}

// Empty reports whether the series has no points.
func (s Series) Empty() bool {
	return len(s.Points) == 0
}

// Select returns a new series restricted to the given counter columns, in
// the given order. Columns absent from the series are skipped.
func (s Series) Select(columns ...string) Series {
	present := make(map[string]bool, len(s.Columns))
	for _, name := range s.Columns {
		present[name] = true
	}

	kept := make([]string, 0, len(columns))

	for _, name := range columns {
		if present[name] {
			kept = append(kept, name)
		}
	}

	points := make([]Point, len(s.Points))

	for i, p := range s.Points {
		counts := make(map[string]int64, len(kept))

		for _, name := range kept {
			counts[name] = p.Counts[name]
		}

		points[i] = Point{Time: p.Time, Counts: counts}
	}

	return Series{Columns: kept, Points: points}
}

// Totals sums every counter column over all points.
func (s Series) Totals() map[string]int64 {
	totals := make(map[string]int64, len(s.Columns))

	for _, p := range s.Points {
		for _, name := range s.Columns {
			totals[name] += p.Counts[name]
		}
	}

	return totals
}

// TimeRange returns the first and last timestamps of the series. The zero
// time is returned for an empty series.
func (s Series) TimeRange() (time.Time, time.Time) {
	if len(s.Points) == 0 {
		return time.Time{}, time.Time{}
	}

	return s.Points[0].Time, s.Points[len(s.Points)-1].Time
}

// Column extracts one counter column as a value slice aligned with Points.
func (s Series) Column(name string) []int64 {
	values := make([]int64, len(s.Points))

	for i, p := range s.Points {
		values[i] = p.Counts[name]
	}

	return values
}
