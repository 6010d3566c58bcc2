package snapshot

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Default discovery patterns for the two snapshot kinds.
const (
	DefaultViewsClonesGlob = "*views_clones*.csv"
	DefaultReferrerSuffix  = "_top_referrers_snapshot.csv"
)

// Loader discovers snapshot files in a directory and parses them into
// fragments and referrer snapshots. The zero patterns fall back to the
// defaults.
type Loader struct {
	Dir             string
	ViewsClonesGlob string
	ReferrerSuffix  string

	log *slog.Logger
}

// NewLoader creates a Loader for the given directory with default patterns.
func NewLoader(dir string) *Loader {
	return &Loader{
		Dir:             dir,
		ViewsClonesGlob: DefaultViewsClonesGlob,
		ReferrerSuffix:  DefaultReferrerSuffix,
		log:             slog.Default(),
	}
}

// LoadFragments parses all scalar views/clones fragment files.
// Returns ErrNoSnapshots when no file matches the pattern, and fails on the
// first schema or timestamp error encountered.
func (l *Loader) LoadFragments() ([]Fragment, error) {
	pattern := l.ViewsClonesGlob
	if pattern == "" {
		pattern = DefaultViewsClonesGlob
	}

	paths, err := filepath.Glob(filepath.Join(l.Dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", pattern, err)
	}

	l.logger().Info("discovered views/clones fragment files", "count", len(paths), "dir", l.Dir)

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s in %s", ErrNoSnapshots, pattern, l.Dir)
	}

	fragments := make([]Fragment, 0, len(paths))

	var schema []string

	for _, path := range paths {
		fragment, parseErr := parseFragmentFile(path)
		if parseErr != nil {
			return nil, parseErr
		}

		if schema == nil {
			schema = canonicalColumns(fragment.Columns)
		} else if mismatchErr := checkSchema(schema, fragment.Columns, path); mismatchErr != nil {
			return nil, mismatchErr
		}

		fragments = append(fragments, fragment)
	}

	return fragments, nil
}

// LoadReferrerSnapshots parses all top-referrer snapshot files, ordered by
// snapshot time ascending. Returns ErrNoSnapshots when no file matches.
func (l *Loader) LoadReferrerSnapshots() ([]ReferrerSnapshot, error) {
	suffix := l.ReferrerSuffix
	if suffix == "" {
		suffix = DefaultReferrerSuffix
	}

	paths, err := filepath.Glob(filepath.Join(l.Dir, "*"+suffix))
	if err != nil {
		return nil, fmt.Errorf("globbing *%s: %w", suffix, err)
	}

	l.logger().Info("discovered referrer snapshot files", "count", len(paths), "dir", l.Dir)

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: *%s in %s", ErrNoSnapshots, suffix, l.Dir)
	}

	snapshots := make([]ReferrerSnapshot, 0, len(paths))

	var schema []string

	for _, path := range paths {
		snap, parseErr := parseReferrerFile(path, suffix)
		if parseErr != nil {
			return nil, parseErr
		}

		if schema == nil {
			schema = canonicalColumns(snap.Columns)
		} else if mismatchErr := checkSchema(schema, snap.Columns, path); mismatchErr != nil {
			return nil, mismatchErr
		}

		snapshots = append(snapshots, snap)
	}

	// Glob order is lexical; snapshot-time order is what downstream
	// aggregation keys on.
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].TakenAt.Before(snapshots[j].TakenAt)
	})

	return snapshots, nil
}

func (l *Loader) logger() *slog.Logger {
	if l.log == nil {
		return slog.Default()
	}

	return l.log
}

func parseFragmentFile(path string) (Fragment, error) {
	header, records, err := readCSV(path)
	if err != nil {
		return Fragment{}, err
	}

	timeIdx := -1

	for i, name := range header {
		if name == TimeColumn {
			timeIdx = i

			break
		}
	}

	if timeIdx == -1 {
		return Fragment{}, fmt.Errorf("%w: %s has no %s column", ErrSchemaMismatch, path, TimeColumn)
	}

	columns := make([]string, 0, len(header)-1)

	for i, name := range header {
		if i != timeIdx {
			columns = append(columns, name)
		}
	}

	samples := make([]Sample, 0, len(records))

	for _, record := range records {
		ts, parseErr := time.Parse(time.RFC3339, record[timeIdx])
		if parseErr != nil {
			return Fragment{}, fmt.Errorf("%w: %s row value %q: %v", ErrTimestampParse, path, record[timeIdx], parseErr)
		}

		counts := make(map[string]int64, len(columns))

		for i, name := range header {
			if i == timeIdx {
				continue
			}

			value, valueErr := parseCount(record[i])
			if valueErr != nil {
				return Fragment{}, fmt.Errorf("parsing %s column %s: %w", path, name, valueErr)
			}

			counts[name] = value
		}

		samples = append(samples, Sample{Time: ts.UTC(), Counts: counts})
	}

	return Fragment{Path: path, Columns: columns, Samples: samples}, nil
}

func parseReferrerFile(path, suffix string) (ReferrerSnapshot, error) {
	base := filepath.Base(path)
	prefix := strings.TrimSuffix(base, suffix)

	takenAt, err := time.Parse(SnapshotTimeLayout, prefix)
	if err != nil {
		return ReferrerSnapshot{}, fmt.Errorf("%w: file name prefix %q: %v", ErrTimestampParse, prefix, err)
	}

	header, records, err := readCSV(path)
	if err != nil {
		return ReferrerSnapshot{}, err
	}

	refIdx := -1

	for i, name := range header {
		// Early collector versions wrote "referrers"; treat it as the
		// canonical referrer column.
		if name == ReferrerColumn || name == legacyReferrerColumn {
			refIdx = i
			header[i] = ReferrerColumn

			break
		}
	}

	if refIdx == -1 {
		return ReferrerSnapshot{}, fmt.Errorf("%w: %s has no %s column", ErrSchemaMismatch, path, ReferrerColumn)
	}

	columns := make([]string, 0, len(header)-1)

	for i, name := range header {
		if i != refIdx {
			columns = append(columns, name)
		}
	}

	rows := make([]ReferrerRow, 0, len(records))

	for _, record := range records {
		values := make(map[string]int64, len(columns))

		for i, name := range header {
			if i == refIdx {
				continue
			}

			value, valueErr := parseCount(record[i])
			if valueErr != nil {
				return ReferrerSnapshot{}, fmt.Errorf("parsing %s column %s: %w", path, name, valueErr)
			}

			values[name] = value
		}

		rows = append(rows, ReferrerRow{Referrer: record[refIdx], Values: values})
	}

	return ReferrerSnapshot{
		Path:    path,
		TakenAt: takenAt,
		Columns: columns,
		Rows:    rows,
	}, nil
}

// readCSV reads a whole CSV file, returning the header and the data records.
func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	// A zero-byte file has no header and therefore no column set. This is
	// a defect of that file, not an absence of input: it must abort the
	// load rather than let the caller omit the whole section.
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("%w: %s has no header row", ErrSchemaMismatch, path)
	}

	return all[0], all[1:], nil
}

func parseCount(raw string) (int64, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing count %q: %w", raw, err)
	}

	return value, nil
}

// canonicalColumns returns a sorted copy for order-insensitive comparison.
func canonicalColumns(columns []string) []string {
	canonical := make([]string, len(columns))
	copy(canonical, columns)
	sort.Strings(canonical)

	return canonical
}

func checkSchema(expected, got []string, path string) error {
	canonical := canonicalColumns(got)

	if len(canonical) != len(expected) {
		return fmt.Errorf("%w: %s has columns %v, expected %v", ErrSchemaMismatch, path, canonical, expected)
	}

	for i, name := range canonical {
		if name != expected[i] {
			return fmt.Errorf("%w: %s has columns %v, expected %v", ErrSchemaMismatch, path, canonical, expected)
		}
	}

	return nil
}
