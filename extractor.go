package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExtractOptions configures a single-recording extraction.
type ExtractOptions struct {
	// TargetLength is the length of each extracted segment in seconds.
	TargetLength int

	// TargetSegments is the number of segments to extract. Fewer are
	// extracted when the recording has less clean capacity.
	TargetSegments int

	// LeadingExclusion is the unconditionally excluded stretch at the
	// start of the recording, in seconds. Zero means the default.
	LeadingExclusion float64

	// ResampleHz resamples extracted segments to this rate. Zero keeps
	// the source rate.
	ResampleHz int

	// OutputDir receives the extracted EDF files.
	OutputDir string

	// Overwrite allows replacing existing output files.
	Overwrite bool
}

// ExtractResult describes what an extraction produced for one recording.
type ExtractResult struct {
	Source      string
	Segments    []Segment
	OutputPaths []string

	// Skipped is set when the recording was structurally fine but yielded
	// nothing: missing required channels, or no clean span long enough.
	Skipped bool
	Reason  string
}

// Extractor runs the full per-recording pipeline: probe the file, detect
// bad intervals, merge them into clean spans, select segments, and crop
// each one to its own EDF file.
type Extractor struct {
	toolPath string
}

// NewExtractor creates an Extractor driving the EDF tool at toolPath.
func NewExtractor(toolPath string) (*Extractor, error) {
	if toolPath == "" {
		return nil, fmt.Errorf("tool path cannot be empty: %w", ErrEDFToolNotFound)
	}
	return &Extractor{toolPath: toolPath}, nil
}

// Extract processes one recording. A result with Skipped set is not an
// error: short recordings and recordings without the required channels
// are expected in clinical archives, and the batch driver reports them
// separately from failures.
func (e *Extractor) Extract(ctx context.Context, edfPath string, opts ExtractOptions) (ExtractResult, error) {
	result := ExtractResult{Source: edfPath}

	info, err := probeRecording(ctx, e.toolPath, edfPath)
	if err != nil {
		return result, err
	}

	if err := info.ValidateChannels(); err != nil {
		result.Skipped = true
		result.Reason = err.Error()
		return result, nil
	}

	leading := opts.LeadingExclusion
	if leading == 0 {
		leading = DefaultLeadingExclusion
	}

	bad := DetectBadIntervals(info.Annotations)
	spans, err := MergeBadIntervals(bad, info.DurationSeconds, leading)
	if err != nil {
		return result, err
	}

	selection, err := SelectSegments(spans, opts.TargetLength, opts.TargetSegments)
	if err != nil {
		return result, err
	}
	if selection.Insufficient() {
		result.Skipped = true
		result.Reason = selection.Reason
		return result, nil
	}

	result.Segments = selection.Segments
	result.OutputPaths = make([]string, 0, len(selection.Segments))

	overrides := info.ChannelTypeOverrides()
	for i, seg := range selection.Segments {
		outPath := segmentOutputPath(edfPath, opts.OutputDir, i+1)

		if !opts.Overwrite {
			if _, err := os.Stat(outPath); err == nil {
				return result, fmt.Errorf("%s: %w", outPath, ErrOutputExists)
			}
		}

		if err := cropSegment(ctx, e.toolPath, seg, edfPath, outPath, opts.ResampleHz, overrides); err != nil {
			// Remove outputs already written so a failed recording leaves
			// no partial segment set behind.
			for _, written := range result.OutputPaths {
				_ = os.Remove(written)
			}
			result.OutputPaths = nil
			return result, err
		}
		result.OutputPaths = append(result.OutputPaths, outPath)
	}

	return result, nil
}

// segmentOutputPath derives the output file name for the index-th segment
// (1-based) of a source recording: <base>_<index>.edf in outputDir.
func segmentOutputPath(sourcePath, outputDir string, index int) string {
	base := filepath.Base(sourcePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	name := fmt.Sprintf("%s_%d.edf", base, index)
	if outputDir == "" {
		return filepath.Join(filepath.Dir(sourcePath), name)
	}
	return filepath.Join(outputDir, name)
}
