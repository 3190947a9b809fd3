package main

import "fmt"

// Segment is a selected extraction window, in whole seconds from the
// start of the recording. End - Start always equals the requested target
// length, and selected segments never overlap.
type Segment struct {
	Start int
	End   int
}

// String returns a human-readable representation for logging.
func (s Segment) String() string {
	return fmt.Sprintf("%ds-%ds", s.Start, s.End)
}

// ReasonInsufficientCleanDuration marks a selection where no clean span
// was long enough to hold a single segment. This is an expected terminal
// state for recordings with only short clean stretches, not an error.
const ReasonInsufficientCleanDuration = "insufficient_clean_duration"

// Selection is the result of picking segments from a recording's clean
// spans. When no segment fits anywhere, Segments is empty and Reason is
// set; callers must check Insufficient rather than assume a non-empty
// list.
type Selection struct {
	Segments       []Segment
	TotalAvailable int
	Reason         string
}

// Insufficient reports whether the recording had no clean span of
// sufficient length.
func (s Selection) Insufficient() bool {
	return s.Reason == ReasonInsufficientCleanDuration
}

// SelectSegments picks up to targetSegments non-overlapping segments of
// targetLength seconds from the clean spans, walking spans in time order
// and packing each from its earliest edge. Returned segments are in
// non-decreasing start order and each lies inside the span it was cut
// from. The count returned is exactly min(targetSegments, total capacity).
//
// Segment starts are truncated to whole seconds, so a span starting on a
// fractional second contributes segments aligned to the second below it.
func SelectSegments(spans []CleanSpan, targetLength, targetSegments int) (Selection, error) {
	if targetLength <= 0 {
		return Selection{}, fmt.Errorf("target length %d: %w", targetLength, ErrInvalidTargetLength)
	}
	if targetSegments < 0 {
		return Selection{}, fmt.Errorf("target segment count %d: %w", targetSegments, ErrInvalidSegmentCount)
	}

	total := 0
	for _, sp := range spans {
		if sp.Length > 0 {
			total += int(sp.Length / float64(targetLength))
		}
	}
	if total == 0 {
		return Selection{Reason: ReasonInsufficientCleanDuration}, nil
	}

	n := min(targetSegments, total)
	segments := make([]Segment, 0, n)
	for _, sp := range spans {
		if len(segments) == n {
			break
		}
		if sp.Length <= 0 {
			continue
		}
		capacity := int(sp.Length / float64(targetLength))
		start := int(sp.Start)
		for slot := 0; slot < capacity && len(segments) < n; slot++ {
			segments = append(segments, Segment{Start: start, End: start + targetLength})
			start += targetLength
		}
	}

	return Selection{Segments: segments, TotalAvailable: total}, nil
}
