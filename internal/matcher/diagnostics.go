package matcher

import "fmt"

// Diagnostics collects counts and reasons for rows the matching pass had to
// skip or adjust. The core never fails a run over bad rows; everything it
// could not use ends up here instead.
type Diagnostics struct {
	InvalidTimestamps int      // rows dropped before matching for missing/unparsable times
	IgnoredFlatSells  int      // sells observed while flat, ignored entirely
	SkippedSells      int      // sells skipped for a zero or missing avg cost
	ClampedOversells  int      // sells whose quantity exceeded the open position
	MissingDurations  int      // exits whose duration defaulted to 0 for lack of a timestamp
	Notes             []string // human-readable reasons, one per incident
}

// Note records a formatted diagnostic reason.
func (d *Diagnostics) Note(format string, args ...interface{}) {
	d.Notes = append(d.Notes, fmt.Sprintf(format, args...))
}

// Merge folds another collector into this one. Used by the driver to combine
// per-symbol results after the parallel matching pass.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}
	d.InvalidTimestamps += other.InvalidTimestamps
	d.IgnoredFlatSells += other.IgnoredFlatSells
	d.SkippedSells += other.SkippedSells
	d.ClampedOversells += other.ClampedOversells
	d.MissingDurations += other.MissingDurations
	d.Notes = append(d.Notes, other.Notes...)
}

// Total returns the number of recorded incidents.
func (d *Diagnostics) Total() int {
	return d.InvalidTimestamps + d.IgnoredFlatSells + d.SkippedSells + d.ClampedOversells + d.MissingDurations
}
