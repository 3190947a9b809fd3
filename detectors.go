package main

import "strings"

// Annotation is one entry from a recording's annotation track: a marker
// placed by the acquisition system or the technician, with its onset and
// duration in seconds.
type Annotation struct {
	Onset       float64 `json:"onset"`
	Duration    float64 `json:"duration"`
	Description string  `json:"description"`
}

// DetectFlat returns the intervals the upstream amplitude annotator
// marked as flat or clipped signal. Those annotations carry a BAD_
// description prefix (BAD_flat, BAD_amplitude, ...); their onset and
// duration delimit stretches of disconnected electrodes or powered-off
// equipment.
func DetectFlat(annotations []Annotation) []Interval {
	var intervals []Interval
	for _, a := range annotations {
		if strings.HasPrefix(a.Description, "BAD_") {
			intervals = append(intervals, Interval{Start: a.Onset, End: a.Onset + a.Duration})
		}
	}
	return intervals
}

// Hyperventilation marker vocabularies seen across acquisition systems.
// The timed markers are preferred; Begin/End markers are fallbacks placed
// with less precision, hence the wider margins applied to them.
var (
	hvStartMarkers         = []string{"HV 1Min", "HV 1 Min"}
	hvEndMarkers           = []string{"Post HV 30 Sec", "Post HV 60 Sec", "Post HV 90 Sec"}
	hvStartFallbackMarkers = []string{"HV Begin", "Begin HV"}
	hvEndFallbackMarkers   = []string{"HV End", "End HV"}
)

// DetectHyperventilation locates the deep-breathing protocol window from
// annotation markers. The "HV 1Min" marker is placed one minute into the
// procedure, so the start is backed off 90 seconds; "Post HV N Sec"
// markers are placed N seconds after it ended, so the end is pushed out
// by the remainder of the 90 second recovery window.
//
// The interval is reported only when both endpoints were resolved. A
// recording with a stray begin marker and no matching end (or vice versa)
// yields nothing rather than a window with a fabricated edge.
func DetectHyperventilation(annotations []Annotation) []Interval {
	var start, end float64
	var haveStart, haveEnd bool

	for _, a := range annotations {
		if matchesAny(a.Description, hvStartMarkers) {
			start = a.Onset - 90
			haveStart = true
		}
		if matchesAny(a.Description, hvEndMarkers) {
			fields := strings.Fields(a.Description)
			offset := 0.0
			switch fields[2] {
			case "30":
				offset = 60
			case "60":
				offset = 30
			case "90":
				offset = 0
			}
			end = a.Onset + offset
			haveEnd = true
		}
	}

	if !haveStart {
		for _, a := range annotations {
			if matchesAny(a.Description, hvStartFallbackMarkers) {
				start = a.Onset - 30
				haveStart = true
			}
		}
	}
	if !haveEnd {
		for _, a := range annotations {
			if matchesAny(a.Description, hvEndFallbackMarkers) {
				end = a.Onset + 90
				haveEnd = true
			}
		}
	}

	if !haveStart || !haveEnd {
		return nil
	}
	return []Interval{{Start: start, End: end}}
}

// DetectPhotic locates the flashing-light stimulation window. Stimulation
// runs are annotated with their flash frequency ("5 Hz", "10 Hz", ...);
// the window spans from the first such marker to the end of the last one.
// A single marker is not treated as a stimulation run.
func DetectPhotic(annotations []Annotation) []Interval {
	var hits []Annotation
	for _, a := range annotations {
		if strings.Contains(a.Description, "Hz") {
			hits = append(hits, a)
		}
	}
	if len(hits) < 2 {
		return nil
	}

	first := hits[0]
	last := hits[len(hits)-1]
	return []Interval{{Start: first.Onset, End: last.Onset + last.Duration}}
}

// DetectBadIntervals runs all detectors over a recording's annotations
// and returns the combined exclusion list, unsorted and possibly
// overlapping; MergeBadIntervals resolves that.
func DetectBadIntervals(annotations []Annotation) []Interval {
	var bad []Interval
	bad = append(bad, DetectFlat(annotations)...)
	bad = append(bad, DetectHyperventilation(annotations)...)
	bad = append(bad, DetectPhotic(annotations)...)
	return bad
}

// matchesAny reports whether s equals one of the candidates.
func matchesAny(s string, candidates []string) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}
