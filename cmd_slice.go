package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// Default extraction parameters, matching the archive-wide protocol:
// five one-minute segments per recording.
const (
	defaultTargetLength   = 60
	defaultTargetSegments = 5
)

// sliceCmd creates the slice command.
func sliceCmd() *cobra.Command {
	var (
		outputDir string
		length    int
		segments  int
		leading   float64
		frequency int
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "slice <recording.edf>",
		Short: "Extract clean segments from one recording",
		Long: `Extract artifact-free fixed-length segments from one EDF recording.

The recording's annotations are scanned for flat signal, hyperventilation,
and photic stimulation windows; those intervals and the first seven
minutes are excluded, and up to the requested number of segments is cut
from the remaining clean stretches, earliest first. Each segment is
written as <name>_<n>.edf.`,
		Example: `  eegslice slice patient042.edf
  eegslice slice patient042.edf -n 3 -l 120 -o ~/clean-eeg
  eegslice slice patient042.edf --frequency 500 --overwrite`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSlice(cmd, args[0], outputDir, length, segments, leading, frequency, overwrite)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for extracted segments (default: recording's directory)")
	cmd.Flags().IntVarP(&length, "length", "l", defaultTargetLength, "Segment length in seconds")
	cmd.Flags().IntVarP(&segments, "segments", "n", defaultTargetSegments, "Number of segments to extract")
	cmd.Flags().Float64Var(&leading, "leading-exclusion", DefaultLeadingExclusion, "Seconds discarded at the start of the recording")
	cmd.Flags().IntVar(&frequency, "frequency", 0, "Resample segments to this rate in Hz (0 keeps the source rate)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing output files")

	return cmd
}

// runSlice executes the single-recording extraction pipeline.
// Validation order: file exists -> format -> parameters -> output dir -> tool
func runSlice(cmd *cobra.Command, inputPath, outputDir string, length, segments int, leading float64, frequency int, overwrite bool) error {
	ctx := cmd.Context()

	// === VALIDATION (fail-fast) ===

	if _, err := os.Stat(inputPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, inputPath)
		}
		return fmt.Errorf("cannot access input file: %w", err)
	}

	if !strings.EqualFold(filepath.Ext(inputPath), ".edf") {
		return fmt.Errorf("%s is not an EDF file: %w", inputPath, ErrUnsupportedFormat)
	}

	if length <= 0 {
		return fmt.Errorf("--length %d: %w", length, ErrInvalidTargetLength)
	}
	if segments < 0 {
		return fmt.Errorf("--segments %d: %w", segments, ErrInvalidSegmentCount)
	}

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	outputDir = ResolveOutputDir(outputDir, cfg)
	if outputDir != "" {
		if err := ValidOutputDir(outputDir); err != nil {
			return fmt.Errorf("invalid output-dir: %w", err)
		}
	}

	// === SETUP ===

	toolPath, err := resolveEDFTool()
	if err != nil {
		return err
	}
	checkEDFToolVersion(ctx, toolPath)

	extractor, err := NewExtractor(toolPath)
	if err != nil {
		return err
	}

	// === EXTRACTION ===

	result, err := extractor.Extract(ctx, inputPath, ExtractOptions{
		TargetLength:     length,
		TargetSegments:   segments,
		LeadingExclusion: leading,
		ResampleHz:       frequency,
		OutputDir:        outputDir,
		Overwrite:        overwrite,
	})
	if err != nil {
		return err
	}

	if result.Skipped {
		fmt.Fprintf(os.Stderr, "No segments extracted: %s\n", result.Reason)
		return nil
	}

	for i, path := range result.OutputPaths {
		fmt.Fprintf(os.Stderr, "Wrote %s (%s)\n", path, result.Segments[i])
	}
	fmt.Fprintf(os.Stderr, "Done: %d segments from %s\n", len(result.OutputPaths), inputPath)
	return nil
}
