package main

import "errors"

// Sentinel errors for eegslice.
//
// Usage pattern: wrap sentinels with context at call site using fmt.Errorf:
//
//	return fmt.Errorf("interval %s: %w", iv, ErrMalformedInterval)
//
// This preserves errors.Is() compatibility while adding context.
// The exitCode() function in main.go maps these to exit codes.

// --- Setup errors (ExitSetup = 3) ---
// Environment and dependency errors that prevent the tool from running.

var (
	// ErrEDFToolNotFound indicates no EDF export tool could be resolved
	// from EDFTOOL_PATH, the config file, or the system PATH.
	ErrEDFToolNotFound = errors.New("edf tool not found")
)

// --- Validation errors (ExitValidation = 4) ---
// Caller bugs and incorrect usage; fail fast, never retried.

var (
	// ErrInvalidTargetLength indicates a segment length <= 0 seconds.
	ErrInvalidTargetLength = errors.New("target length must be positive")

	// ErrInvalidSegmentCount indicates a negative requested segment count.
	ErrInvalidSegmentCount = errors.New("target segment count must not be negative")

	// ErrNegativeDuration indicates a recording duration below zero.
	ErrNegativeDuration = errors.New("recording duration must not be negative")

	// ErrMalformedInterval indicates a bad interval with start > end.
	ErrMalformedInterval = errors.New("malformed interval")

	// ErrFileNotFound indicates the specified input file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrUnsupportedFormat indicates an input file without an .edf extension.
	ErrUnsupportedFormat = errors.New("unsupported recording format")

	// ErrOutputExists indicates an output file already exists and
	// --overwrite was not given.
	ErrOutputExists = errors.New("output file already exists")
)

// --- Extraction errors (ExitExtraction = 5) ---
// Per-recording data conditions and external tool failures.

var (
	// ErrMissingChannels indicates a recording without the required
	// EOG/ECG channel set. Such recordings are skipped, not failed.
	ErrMissingChannels = errors.New("recording lacks required channels")

	// ErrProbeFailed indicates the EDF tool could not describe a recording.
	ErrProbeFailed = errors.New("recording probe failed")

	// ErrCropFailed indicates the EDF tool could not write a segment.
	ErrCropFailed = errors.New("segment crop failed")
)
