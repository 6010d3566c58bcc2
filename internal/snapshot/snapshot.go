// Package snapshot discovers and parses repository traffic snapshot files.
//
// Two kinds of snapshots exist: scalar views/clones time series fragments
// (one row per day, each row carrying its own timestamp) and top-referrer
// snapshots (one row per referrer, the observation time encoded in the file
// name). All files of a kind must expose an identical column set.
package snapshot

import (
	"time"
)

// Column names with fixed meaning in the input schema.
const (
	// TimeColumn is the per-row timestamp column of scalar fragments.
	TimeColumn = "time_iso8601"

	// ReferrerColumn names the referrer in referrer snapshot rows.
	ReferrerColumn = "referrer"

	// legacyReferrerColumn is an old header spelling still found in
	// snapshots written by early collector versions.
	legacyReferrerColumn = "referrers"
)

// SnapshotTimeLayout is the file name prefix layout encoding the snapshot
// time of a referrer snapshot, interpreted as UTC.
const SnapshotTimeLayout = "2006-01-02_150405"

// Sample is one timestamped row of a scalar fragment.
type Sample struct {
	Time   time.Time
	Counts map[string]int64
}

// Fragment is one snapshot file's worth of scalar samples, covering a
// trailing time window. Fragments from different files may overlap.
type Fragment struct {
	Path    string
	Columns []string // counter columns in header order, without TimeColumn
	Samples []Sample
}

// ReferrerRow is a single referrer's values in one snapshot.
type ReferrerRow struct {
	Referrer string
	Values   map[string]int64
}

// ReferrerSnapshot is the full referrer table observed at one instant.
type ReferrerSnapshot struct {
	Path    string
	TakenAt time.Time
	Columns []string // value columns in header order, without ReferrerColumn
	Rows    []ReferrerRow
}
