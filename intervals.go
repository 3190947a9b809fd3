package main

import (
	"fmt"
	"sort"
)

// DefaultLeadingExclusion is the stretch at the start of every recording
// that is discarded unconditionally, in seconds. Clinical recordings begin
// with electrode hookup and calibration; the first seven minutes are not
// usable signal.
const DefaultLeadingExclusion = 420.0

// Interval is a time window in a recording, in seconds from its start.
// Detectors produce Intervals for stretches that must be excluded.
type Interval struct {
	Start float64
	End   float64
}

// Duration returns the interval length in seconds.
func (iv Interval) Duration() float64 {
	return iv.End - iv.Start
}

// String returns a human-readable representation for logging.
func (iv Interval) String() string {
	return fmt.Sprintf("[%.1fs-%.1fs]", iv.Start, iv.End)
}

// CleanSpan is a contiguous artifact-free region derived from the merged
// bad intervals. Start is the merged high-water mark of all bad intervals
// seen so far, End is the start of the next bad interval, and Length is
// their difference. A span with Length <= 0 carries no usable signal and
// is kept only so spans stay positionally aligned with the sorted bad
// list; SelectSegments filters them.
type CleanSpan struct {
	Start  float64
	End    float64
	Length float64
}

// MergeBadIntervals resolves an unsorted, possibly overlapping set of bad
// intervals into the ordered list of clean spans between them.
//
// A leading exclusion interval (0, leadingExclusion) and a degenerate
// sentinel (totalDuration, totalDuration) are appended before merging, so
// the result is never empty: an empty bad list yields one span covering
// everything after the leading exclusion, plus the sentinel's zero-length
// span. A recording shorter than the leading exclusion yields only
// non-positive spans, which is a capacity-zero result, not an error.
//
// Overlaps are resolved with a running maximum over the end times of the
// intervals sorted by start: the emitted span starts are non-decreasing
// regardless of nesting or input order.
func MergeBadIntervals(bad []Interval, totalDuration, leadingExclusion float64) ([]CleanSpan, error) {
	if totalDuration < 0 {
		return nil, fmt.Errorf("total duration %.3fs: %w", totalDuration, ErrNegativeDuration)
	}
	for _, iv := range bad {
		if iv.Start > iv.End {
			return nil, fmt.Errorf("interval %s has start after end: %w", iv, ErrMalformedInterval)
		}
	}

	all := make([]Interval, 0, len(bad)+2)
	all = append(all, Interval{Start: 0, End: leadingExclusion})
	all = append(all, bad...)
	all = append(all, Interval{Start: totalDuration, End: totalDuration})

	// Stable keeps the leading exclusion ahead of other start-0 intervals;
	// order among equal starts does not matter otherwise since only end
	// times feed the high-water mark.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Start < all[j].Start
	})

	spans := make([]CleanSpan, len(all))
	high := 0.0
	for i, iv := range all {
		next := totalDuration
		if i+1 < len(all) {
			next = all[i+1].Start
		}
		if iv.End > high {
			high = iv.End
		}
		spans[i] = CleanSpan{Start: high, End: next, Length: next - high}
	}

	return spans, nil
}
