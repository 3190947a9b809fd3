package main

import (
	"testing"
)

func TestMergeBadIntervals_NoBadIntervals(t *testing.T) {
	t.Parallel()

	spans, err := MergeBadIntervals(nil, 3600, DefaultLeadingExclusion)
	assertNoError(t, err)

	assertEqual(t, len(spans), 2)
	assertSpan(t, spans[0], 420, 3600)
	assertSpan(t, spans[1], 3600, 3600)
}

func TestMergeBadIntervals_OverlappingIntervals(t *testing.T) {
	t.Parallel()

	bad := []Interval{
		{Start: 1000, End: 1100},
		{Start: 1050, End: 1200},
	}

	spans, err := MergeBadIntervals(bad, 3600, DefaultLeadingExclusion)
	assertNoError(t, err)
	assertEqual(t, len(spans), 4)

	assertSpan(t, spans[0], 420, 1000)
	assertSpan(t, spans[2], 1200, 3600)

	// The span between the two overlapping intervals is negative-length
	// and carries no usable signal.
	if spans[1].Length > 0 {
		t.Errorf("span between overlapping intervals has positive length %.1f", spans[1].Length)
	}
}

func TestMergeBadIntervals_NestedInterval(t *testing.T) {
	t.Parallel()

	bad := []Interval{
		{Start: 1000, End: 2000},
		{Start: 1200, End: 1300},
	}

	spans, err := MergeBadIntervals(bad, 3600, DefaultLeadingExclusion)
	assertNoError(t, err)

	// The nested interval must not pull the high-water mark back: the
	// only usable spans are before the outer interval and after it.
	var usable []CleanSpan
	for _, sp := range spans {
		if sp.Length > 0 {
			usable = append(usable, sp)
		}
	}
	assertEqual(t, len(usable), 2)
	assertSpan(t, usable[0], 420, 1000)
	assertSpan(t, usable[1], 2000, 3600)
}

func TestMergeBadIntervals_InputOrderIrrelevant(t *testing.T) {
	t.Parallel()

	forward := []Interval{
		{Start: 800, End: 900},
		{Start: 1500, End: 1700},
		{Start: 2500, End: 2600},
	}
	reversed := []Interval{
		{Start: 2500, End: 2600},
		{Start: 1500, End: 1700},
		{Start: 800, End: 900},
	}

	a, err := MergeBadIntervals(forward, 3600, DefaultLeadingExclusion)
	assertNoError(t, err)
	b, err := MergeBadIntervals(reversed, 3600, DefaultLeadingExclusion)
	assertNoError(t, err)

	assertEqual(t, len(a), len(b))
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("span %d differs by input order: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestMergeBadIntervals_SpanStartsNonDecreasing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		bad  []Interval
	}{
		{"disjoint", []Interval{{600, 700}, {1000, 1100}, {2000, 2200}}},
		{"overlapping", []Interval{{500, 1500}, {600, 800}, {1400, 1600}}},
		{"inside leading exclusion", []Interval{{10, 50}, {100, 200}}},
		{"touching end", []Interval{{3000, 3600}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			spans, err := MergeBadIntervals(tt.bad, 3600, DefaultLeadingExclusion)
			assertNoError(t, err)
			for i := 1; i < len(spans); i++ {
				if spans[i].Start < spans[i-1].Start {
					t.Errorf("span starts decrease at %d: %.1f after %.1f",
						i, spans[i].Start, spans[i-1].Start)
				}
			}
		})
	}
}

func TestMergeBadIntervals_RecordingShorterThanLeadingExclusion(t *testing.T) {
	t.Parallel()

	spans, err := MergeBadIntervals(nil, 300, DefaultLeadingExclusion)
	assertNoError(t, err)

	// Every span is non-positive; selection will find zero capacity.
	for i, sp := range spans {
		if sp.Length > 0 {
			t.Errorf("span %d has positive length %.1f on a 300s recording", i, sp.Length)
		}
	}
}

func TestMergeBadIntervals_ZeroDuration(t *testing.T) {
	t.Parallel()

	spans, err := MergeBadIntervals(nil, 0, DefaultLeadingExclusion)
	assertNoError(t, err)
	for i, sp := range spans {
		if sp.Length > 0 {
			t.Errorf("span %d has positive length %.1f on an empty recording", i, sp.Length)
		}
	}
}

func TestMergeBadIntervals_NegativeDuration(t *testing.T) {
	t.Parallel()

	_, err := MergeBadIntervals(nil, -1, DefaultLeadingExclusion)
	assertError(t, err, ErrNegativeDuration)
}

func TestMergeBadIntervals_MalformedInterval(t *testing.T) {
	t.Parallel()

	_, err := MergeBadIntervals([]Interval{{Start: 200, End: 100}}, 3600, DefaultLeadingExclusion)
	assertError(t, err, ErrMalformedInterval)
}

func TestMergeBadIntervals_CustomLeadingExclusion(t *testing.T) {
	t.Parallel()

	spans, err := MergeBadIntervals(nil, 3600, 60)
	assertNoError(t, err)
	assertSpan(t, spans[0], 60, 3600)
}

func TestInterval_Duration(t *testing.T) {
	t.Parallel()

	iv := Interval{Start: 100, End: 160.5}
	assertEqual(t, iv.Duration(), 60.5)
}
