package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Outcome status values for one recording in a batch.
const (
	StatusOK      = "ok"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// Outcome records what happened to one recording. Failures are captured
// here instead of aborting the batch: one corrupt file in a clinical
// archive must not cost the other thousand.
type Outcome struct {
	File     string   `json:"file"`
	Status   string   `json:"status"`
	Reason   string   `json:"reason,omitempty"`
	Segments []string `json:"segments,omitempty"`
}

// Report aggregates a batch run.
type Report struct {
	Succeeded int       `json:"succeeded"`
	Skipped   int       `json:"skipped"`
	Failed    int       `json:"failed"`
	Outcomes  []Outcome `json:"outcomes"`
}

// Total returns the number of recordings the batch attempted.
func (r Report) Total() int {
	return r.Succeeded + r.Skipped + r.Failed
}

// Summary renders the one-line run summary printed after a batch.
func (r Report) Summary() string {
	return fmt.Sprintf("%d recordings: %d extracted, %d skipped, %d failed",
		r.Total(), r.Succeeded, r.Skipped, r.Failed)
}

// BatchOptions configures a directory batch run.
type BatchOptions struct {
	SourceDir string
	Extract   ExtractOptions

	// MaxFiles caps how many recordings are processed. Zero means no limit.
	MaxFiles int

	// Parallel is the number of recordings processed concurrently,
	// clamped to [1, 8]. Extraction is I/O bound on the external tool, so
	// modest parallelism is enough.
	Parallel int
}

// recordingExtractor lets tests drive RunBatch without the external tool.
// *Extractor implements it.
type recordingExtractor interface {
	Extract(ctx context.Context, edfPath string, opts ExtractOptions) (ExtractResult, error)
}

// clampParallel constrains batch concurrency to valid range [1, 8].
func clampParallel(n int) int {
	if n < 1 {
		return 1
	}
	if n > 8 {
		return 8
	}
	return n
}

// listRecordings returns the .edf files directly under dir, sorted by
// name, capped at maxFiles when positive.
func listRecordings(dir string, maxFiles int) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, dir)
		}
		return nil, fmt.Errorf("cannot read source directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".edf") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)

	if maxFiles > 0 && len(files) > maxFiles {
		files = files[:maxFiles]
	}
	return files, nil
}

// RunBatch extracts segments from every recording in the source
// directory with bounded parallelism. Per-recording failures become
// failed Outcomes; RunBatch itself errors only on setup problems
// (unreadable directory) or context cancellation, in which case the
// report still covers the recordings finished so far.
func RunBatch(ctx context.Context, extractor recordingExtractor, opts BatchOptions) (Report, error) {
	files, err := listRecordings(opts.SourceDir, opts.MaxFiles)
	if err != nil {
		return Report{}, err
	}

	outcomes := make([]Outcome, len(files))
	parallel := clampParallel(opts.Parallel)
	sem := make(chan struct{}, parallel)

	var mu sync.Mutex
	done := 0

	// The group context is deliberately not used to stop workers on a
	// recording failure; only parent cancellation stops the batch.
	g := new(errgroup.Group)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			defer func() { <-sem }()

			outcomes[i] = extractOne(ctx, extractor, file, opts.Extract)

			mu.Lock()
			done++
			if done%100 == 0 {
				fmt.Fprintf(os.Stderr, "%d recordings processed\n", done)
			}
			mu.Unlock()
			return nil
		})
	}

	waitErr := g.Wait()

	report := Report{}
	for _, outcome := range outcomes {
		if outcome.Status == "" {
			// Never scheduled before cancellation.
			continue
		}
		report.Outcomes = append(report.Outcomes, outcome)
		switch outcome.Status {
		case StatusOK:
			report.Succeeded++
		case StatusSkipped:
			report.Skipped++
		case StatusFailed:
			report.Failed++
		}
	}

	return report, waitErr
}

// extractOne runs one extraction and folds the result into an Outcome.
func extractOne(ctx context.Context, extractor recordingExtractor, file string, opts ExtractOptions) Outcome {
	outcome := Outcome{File: filepath.Base(file)}

	result, err := extractor.Extract(ctx, file, opts)
	switch {
	case errors.Is(err, context.Canceled):
		outcome.Status = StatusFailed
		outcome.Reason = "canceled"
	case err != nil:
		outcome.Status = StatusFailed
		outcome.Reason = err.Error()
		fmt.Fprintf(os.Stderr, "Warning: %s: extraction failed: %v\n", outcome.File, err)
	case result.Skipped:
		outcome.Status = StatusSkipped
		outcome.Reason = result.Reason
	default:
		outcome.Status = StatusOK
		outcome.Segments = make([]string, len(result.OutputPaths))
		for i, p := range result.OutputPaths {
			outcome.Segments[i] = filepath.Base(p)
		}
	}
	return outcome
}
