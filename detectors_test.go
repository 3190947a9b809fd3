package main

import (
	"testing"
)

func TestDetectFlat(t *testing.T) {
	t.Parallel()

	annotations := []Annotation{
		{Onset: 100, Duration: 20, Description: "BAD_flat"},
		{Onset: 500, Duration: 0.5, Description: "BAD_amplitude"},
		{Onset: 900, Duration: 10, Description: "Eyes closed"},
	}

	got := DetectFlat(annotations)
	assertEqual(t, len(got), 2)
	assertEqual(t, got[0], Interval{Start: 100, End: 120})
	assertEqual(t, got[1], Interval{Start: 500, End: 500.5})
}

func TestDetectFlat_NoAnnotations(t *testing.T) {
	t.Parallel()

	assertEqual(t, len(DetectFlat(nil)), 0)
}

func TestDetectHyperventilation_TimedMarkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		endMarker string
		endOnset  float64
		wantEnd   float64
	}{
		{"post 30s marker", "Post HV 30 Sec", 1500, 1560},
		{"post 60s marker", "Post HV 60 Sec", 1500, 1530},
		{"post 90s marker", "Post HV 90 Sec", 1500, 1500},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			annotations := []Annotation{
				{Onset: 1290, Description: "HV 1Min"},
				{Onset: tt.endOnset, Description: tt.endMarker},
			}

			got := DetectHyperventilation(annotations)
			assertEqual(t, len(got), 1)
			assertEqual(t, got[0], Interval{Start: 1200, End: tt.wantEnd})
		})
	}
}

func TestDetectHyperventilation_SpacedStartMarker(t *testing.T) {
	t.Parallel()

	annotations := []Annotation{
		{Onset: 1290, Description: "HV 1 Min"},
		{Onset: 1500, Description: "Post HV 90 Sec"},
	}

	got := DetectHyperventilation(annotations)
	assertEqual(t, len(got), 1)
	assertEqual(t, got[0].Start, 1200.0)
}

func TestDetectHyperventilation_FallbackMarkers(t *testing.T) {
	t.Parallel()

	annotations := []Annotation{
		{Onset: 1000, Description: "HV Begin"},
		{Onset: 1200, Description: "HV End"},
	}

	got := DetectHyperventilation(annotations)
	assertEqual(t, len(got), 1)
	assertEqual(t, got[0], Interval{Start: 970, End: 1290})
}

func TestDetectHyperventilation_TimedMarkerBeatsFallback(t *testing.T) {
	t.Parallel()

	// Timed markers carry tighter placement; fallbacks apply only when
	// the timed vocabulary is absent.
	annotations := []Annotation{
		{Onset: 1000, Description: "Begin HV"},
		{Onset: 1290, Description: "HV 1Min"},
		{Onset: 1500, Description: "Post HV 90 Sec"},
	}

	got := DetectHyperventilation(annotations)
	assertEqual(t, len(got), 1)
	assertEqual(t, got[0], Interval{Start: 1200, End: 1500})
}

func TestDetectHyperventilation_UnresolvedEndpointSuppressed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		annotations []Annotation
	}{
		{"start only", []Annotation{{Onset: 1290, Description: "HV 1Min"}}},
		{"end only", []Annotation{{Onset: 1500, Description: "Post HV 30 Sec"}}},
		{"fallback start only", []Annotation{{Onset: 1000, Description: "HV Begin"}}},
		{"no markers", []Annotation{{Onset: 100, Description: "Eyes open"}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := DetectHyperventilation(tt.annotations)
			assertEqual(t, len(got), 0)
		})
	}
}

func TestDetectPhotic(t *testing.T) {
	t.Parallel()

	annotations := []Annotation{
		{Onset: 2000, Duration: 10, Description: "5 Hz"},
		{Onset: 2030, Duration: 10, Description: "10 Hz"},
		{Onset: 2060, Duration: 10, Description: "15 Hz"},
	}

	got := DetectPhotic(annotations)
	assertEqual(t, len(got), 1)
	assertEqual(t, got[0], Interval{Start: 2000, End: 2070})
}

func TestDetectPhotic_SingleMarkerIgnored(t *testing.T) {
	t.Parallel()

	annotations := []Annotation{
		{Onset: 2000, Duration: 10, Description: "5 Hz"},
	}

	assertEqual(t, len(DetectPhotic(annotations)), 0)
}

func TestDetectBadIntervals_CombinesDetectors(t *testing.T) {
	t.Parallel()

	annotations := []Annotation{
		{Onset: 100, Duration: 20, Description: "BAD_flat"},
		{Onset: 1290, Description: "HV 1Min"},
		{Onset: 1500, Description: "Post HV 90 Sec"},
		{Onset: 2000, Duration: 10, Description: "5 Hz"},
		{Onset: 2030, Duration: 10, Description: "10 Hz"},
	}

	got := DetectBadIntervals(annotations)
	assertEqual(t, len(got), 3)
	assertEqual(t, got[0], Interval{Start: 100, End: 120})
	assertEqual(t, got[1], Interval{Start: 1200, End: 1500})
	assertEqual(t, got[2], Interval{Start: 2000, End: 2040})
}

func TestDetectBadIntervals_CleanRecording(t *testing.T) {
	t.Parallel()

	annotations := []Annotation{
		{Onset: 100, Description: "Eyes open"},
		{Onset: 200, Description: "Eyes closed"},
	}

	assertEqual(t, len(DetectBadIntervals(annotations)), 0)
}
