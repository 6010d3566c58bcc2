package snapshot

import "errors"

// Sentinel errors for the loader. Schema and timestamp failures are fatal
// for the whole run; ErrNoSnapshots is reported to the caller, which decides
// whether to omit the affected report section or abort.
var (
	// ErrSchemaMismatch indicates two files of the same kind expose
	// differing column sets.
	ErrSchemaMismatch = errors.New("snapshot schema mismatch")

	// ErrTimestampParse indicates a file name or row timestamp does not
	// parse in the expected UTC format.
	ErrTimestampParse = errors.New("cannot parse snapshot timestamp")

	// ErrNoSnapshots indicates zero files were discovered for a kind.
	ErrNoSnapshots = errors.New("no snapshot files found")
)
