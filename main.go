package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Injected at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitGeneral    = 1
	ExitUsage      = 2
	ExitSetup      = 3
	ExitValidation = 4
	ExitExtraction = 5
	ExitInterrupt  = 130
)

func main() {
	// Load .env file if present (ignore error if missing).
	_ = godotenv.Load()

	// Context with signal cancellation.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Root command.
	rootCmd := &cobra.Command{
		Use:     "eegslice",
		Short:   "Extract artifact-free segments from clinical EEG recordings",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		// Silence Cobra's default error/usage printing; we handle it ourselves.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(sliceCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps errors to exit codes.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	// Check for context cancellation (interrupt).
	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}

	if errors.Is(err, ErrEDFToolNotFound) {
		return ExitSetup
	}
	if errors.Is(err, ErrInvalidTargetLength) ||
		errors.Is(err, ErrInvalidSegmentCount) ||
		errors.Is(err, ErrNegativeDuration) ||
		errors.Is(err, ErrMalformedInterval) ||
		errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrOutputExists) {
		return ExitValidation
	}
	if errors.Is(err, ErrMissingChannels) ||
		errors.Is(err, ErrProbeFailed) ||
		errors.Is(err, ErrCropFailed) {
		return ExitExtraction
	}

	return ExitGeneral
}
