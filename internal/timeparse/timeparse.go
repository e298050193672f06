// Package timeparse normalizes free-text broker timestamps into
// timezone-aware instants in the exchange's local zone (US Eastern).
package timeparse

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

var (
	// ErrMissing marks an empty timestamp field.
	ErrMissing = errors.New("missing timestamp")
	// ErrUnparsable marks a timestamp that matched no known format.
	ErrUnparsable = errors.New("unparsable timestamp")
)

// webullLayout is the numeric part of Webull's "09/15/2025 08:27:26 EDT" format.
const webullLayout = "01/02/2006 15:04:05"

// zoneSuffixes are the abbreviations the broker appends. They only select
// "apply Eastern-zone rules"; the daylight-saving offset comes from the
// zone's own calendar, not from the abbreviation.
var zoneSuffixes = []string{" EDT", " EST"}

// fallbackLayouts are tried, in order, when no recognized zone suffix is present.
var fallbackLayouts = []string{
	webullLayout,
	"01/02/2006 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

var (
	easternOnce sync.Once
	easternLoc  *time.Location
)

func eastern() *time.Location {
	easternOnce.Do(func() {
		loc, err := time.LoadLocation("America/New_York")
		if err != nil {
			// No tz database on this host; standard Eastern offset is the
			// closest available approximation.
			loc = time.FixedZone("EST", -5*60*60)
		}
		easternLoc = loc
	})
	return easternLoc
}

// Parse converts a raw broker timestamp string into an Eastern-zone instant.
// An empty input returns ErrMissing, anything unrecognizable returns
// ErrUnparsable; the zero time stands in as the missing-value marker either
// way. Parse never panics.
func Parse(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, ErrMissing
	}

	for _, suffix := range zoneSuffixes {
		if strings.HasSuffix(s, strings.TrimSpace(suffix)) {
			numeric := strings.TrimSpace(strings.TrimSuffix(s, strings.TrimSpace(suffix)))
			t, err := time.ParseInLocation(webullLayout, numeric, eastern())
			if err != nil {
				return time.Time{}, fmt.Errorf("%w: %q: %v", ErrUnparsable, raw, err)
			}
			return t, nil
		}
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.ParseInLocation(layout, s, eastern()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparsable, raw)
}
