package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// batchCmd creates the batch command.
func batchCmd() *cobra.Command {
	var (
		configPath string
		sourceDir  string
		outputDir  string
		length     int
		segments   int
		leading    float64
		frequency  int
		maxFiles   int
		parallel   int
		overwrite  bool
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Extract clean segments from every recording in a directory",
		Long: `Extract segments from all EDF recordings in a source directory.

Recordings are processed independently with bounded parallelism; a
failure on one recording never aborts the rest. Each recording ends up
extracted, skipped (missing channels or no clean stretch long enough),
or failed, and the per-file outcomes are written as a JSON report next
to the extracted segments.

Parameters may come from flags or from a YAML manifest (--config); flags
win when both are given.

Press Ctrl+C once to stop and keep the report for finished recordings;
press it twice within 2 seconds to abort.`,
		Example: `  eegslice batch --source /data/raw-eeg --output-dir /data/clean-eeg
  eegslice batch --config archive.yaml
  eegslice batch --source ./edf --max-files 100 --parallel 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, batchFlags{
				configPath: configPath,
				sourceDir:  sourceDir,
				outputDir:  outputDir,
				length:     length,
				segments:   segments,
				leading:    leading,
				frequency:  frequency,
				maxFiles:   maxFiles,
				parallel:   parallel,
				overwrite:  overwrite,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML batch manifest")
	cmd.Flags().StringVarP(&sourceDir, "source", "s", "", "Directory with source EDF recordings")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for extracted segments and the report")
	cmd.Flags().IntVarP(&length, "length", "l", defaultTargetLength, "Segment length in seconds")
	cmd.Flags().IntVarP(&segments, "segments", "n", defaultTargetSegments, "Number of segments per recording")
	cmd.Flags().Float64Var(&leading, "leading-exclusion", DefaultLeadingExclusion, "Seconds discarded at the start of every recording")
	cmd.Flags().IntVar(&frequency, "frequency", 0, "Resample segments to this rate in Hz (0 keeps the source rate)")
	cmd.Flags().IntVar(&maxFiles, "max-files", 0, "Process at most this many recordings (0 = no limit)")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 2, "Recordings processed concurrently (1-8)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing output files")

	return cmd
}

// batchFlags carries the raw flag values into runBatch.
type batchFlags struct {
	configPath string
	sourceDir  string
	outputDir  string
	length     int
	segments   int
	leading    float64
	frequency  int
	maxFiles   int
	parallel   int
	overwrite  bool
}

// mergeBatchFlags folds a manifest under the flags: a flag the user set
// explicitly wins, otherwise a non-zero manifest value is taken.
func mergeBatchFlags(cmd *cobra.Command, flags batchFlags, manifest BatchFile) batchFlags {
	merged := flags
	if flags.sourceDir == "" {
		merged.sourceDir = manifest.Source
	}
	if flags.outputDir == "" {
		merged.outputDir = manifest.OutputDir
	}
	if !cmd.Flags().Changed("length") && manifest.TargetLengthSeconds != 0 {
		merged.length = manifest.TargetLengthSeconds
	}
	if !cmd.Flags().Changed("segments") && manifest.TargetSegments != 0 {
		merged.segments = manifest.TargetSegments
	}
	if !cmd.Flags().Changed("leading-exclusion") && manifest.LeadingExclusionSeconds != 0 {
		merged.leading = manifest.LeadingExclusionSeconds
	}
	if !cmd.Flags().Changed("frequency") && manifest.TargetFrequency != 0 {
		merged.frequency = manifest.TargetFrequency
	}
	if !cmd.Flags().Changed("max-files") && manifest.MaxFiles != 0 {
		merged.maxFiles = manifest.MaxFiles
	}
	if !cmd.Flags().Changed("parallel") && manifest.Parallel != 0 {
		merged.parallel = manifest.Parallel
	}
	if !cmd.Flags().Changed("overwrite") && manifest.Overwrite {
		merged.overwrite = true
	}
	return merged
}

// runBatch executes the directory batch pipeline.
func runBatch(cmd *cobra.Command, flags batchFlags) error {
	if flags.configPath != "" {
		manifest, err := LoadBatchFile(flags.configPath)
		if err != nil {
			return err
		}
		flags = mergeBatchFlags(cmd, flags, manifest)
	}

	// === VALIDATION (fail-fast) ===

	if flags.sourceDir == "" {
		return fmt.Errorf("no source directory (use --source or a manifest)")
	}
	if flags.length <= 0 {
		return fmt.Errorf("--length %d: %w", flags.length, ErrInvalidTargetLength)
	}
	if flags.segments < 0 {
		return fmt.Errorf("--segments %d: %w", flags.segments, ErrInvalidSegmentCount)
	}

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	outputDir := ResolveOutputDir(flags.outputDir, cfg)
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
	checkEDFToolVersion(cmd.Context(), toolPath)

	extractor, err := NewExtractor(toolPath)
	if err != nil {
		return err
	}

	// First Ctrl+C cancels the batch context; a second within the window
	// aborts without writing the report.
	handler, ctx := NewInterruptHandler(cmd.Context())
	defer handler.Stop()

	// === BATCH ===

	sourceDir := ExpandPath(flags.sourceDir)
	fmt.Fprintf(os.Stderr, "Scanning %s...\n", sourceDir)

	report, batchErr := RunBatch(ctx, extractor, BatchOptions{
		SourceDir: sourceDir,
		MaxFiles:  flags.maxFiles,
		Parallel:  flags.parallel,
		Extract: ExtractOptions{
			TargetLength:     flags.length,
			TargetSegments:   flags.segments,
			LeadingExclusion: flags.leading,
			ResampleHz:       flags.frequency,
			OutputDir:        outputDir,
			Overwrite:        flags.overwrite,
		},
	})

	interrupted := handler.WasInterrupted()
	if batchErr != nil && !errors.Is(batchErr, context.Canceled) {
		return batchErr
	}
	if interrupted {
		if handler.WaitForDecision("Interrupted. Press Ctrl+C again to abort without a report...") == InterruptAbort {
			return context.Canceled
		}
		fmt.Fprintf(os.Stderr, "Interrupted after %d recordings; writing partial report\n", report.Total())
	}

	// === REPORT ===

	reportPath, err := WriteReport(outputDir, sourceDir, report)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, report.Summary())
	fmt.Fprintf(os.Stderr, "Report: %s\n", reportPath)

	if interrupted {
		return context.Canceled
	}
	return nil
}
