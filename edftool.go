package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sort"
	"strconv"
	"strings"
)

// The EDF container format is handled by an external exporter binary with
// an edf2json-compatible command line:
//
//	edf2json probe --json <file.edf>
//	edf2json crop --start <s> --end <s> [--resample <hz>] <in.edf> <out.edf>
//	edf2json --version
//
// eegslice only consumes the JSON probe output and drives the crop
// command; it never parses EDF itself.
const (
	// defaultToolName is looked up on PATH when no explicit path is set.
	defaultToolName = "edf2json"

	// minToolMajorVersion is the minimum supported exporter version.
	// Earlier releases did not emit the annotation track in probe output.
	minToolMajorVersion = 2
)

// Environment variable for a custom EDF tool path.
const envEDFToolPath = "EDFTOOL_PATH"

// edfToolRunFunc is the function signature for running the EDF tool and
// capturing its combined output. Replaced in tests to mock the tool.
var runEDFToolFunc = runEDFToolImpl

// runEDFTool executes the EDF tool and captures stdout and stderr
// together; probe JSON comes on stdout, diagnostics on stderr.
func runEDFTool(ctx context.Context, toolPath string, args []string) (string, error) {
	return runEDFToolFunc(ctx, toolPath, args)
}

// runEDFToolImpl is the real implementation of runEDFTool.
func runEDFToolImpl(ctx context.Context, toolPath string, args []string) (string, error) {
	// #nosec G204 -- toolPath is resolved internally via resolveEDFTool, not user input
	cmd := exec.CommandContext(ctx, toolPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("%s %s: %v", toolPath, strings.Join(args, " "), err)
	}
	return string(output), nil
}

// resolveEDFTool finds the EDF exporter using the following precedence:
//  1. EDFTOOL_PATH environment variable (error if set but invalid)
//  2. edftool key in the user config file
//  3. System PATH
//
// Returns the path to the binary.
func resolveEDFTool() (string, error) {
	if envPath := os.Getenv(envEDFToolPath); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("%w: %s is set to %q but binary not found",
				ErrEDFToolNotFound, envEDFToolPath, envPath)
		}
		return envPath, nil
	}

	if configured, err := GetConfigValue(ConfigKeyEDFTool); err == nil && configured != "" {
		expanded := ExpandPath(configured)
		if _, err := os.Stat(expanded); err != nil {
			return "", fmt.Errorf("%w: config edftool is set to %q but binary not found",
				ErrEDFToolNotFound, configured)
		}
		return expanded, nil
	}

	if path, err := exec.LookPath(defaultToolName); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("%w\n\n%s", ErrEDFToolNotFound, toolInstallInstructions())
}

// checkEDFToolVersion verifies that the exporter meets the minimum
// version requirement. Prints a warning to stderr if it is too old or
// unparseable but never fails; the probe step will surface real problems.
func checkEDFToolVersion(ctx context.Context, toolPath string) {
	output, err := runEDFTool(ctx, toolPath, []string{"--version"})
	if err != nil {
		return
	}

	// Parse version from output like "edf2json version 2.4.0".
	var major int
	_, err = fmt.Sscanf(strings.TrimSpace(output), defaultToolName+" version %d", &major)
	if err != nil {
		_, err = fmt.Sscanf(strings.TrimSpace(output), "version %d", &major)
		if err != nil {
			return
		}
	}

	if major < minToolMajorVersion {
		fmt.Fprintf(os.Stderr, "Warning: %s version %d detected, version %d+ recommended\n",
			defaultToolName, major, minToolMajorVersion)
	}
}

// probeRecording asks the EDF tool to describe a recording: duration,
// sample rate, channel layout, and the annotation track.
func probeRecording(ctx context.Context, toolPath, edfPath string) (RecordingInfo, error) {
	output, err := runEDFTool(ctx, toolPath, []string{"probe", "--json", edfPath})
	if err != nil {
		return RecordingInfo{}, fmt.Errorf("%w: %s: %v", ErrProbeFailed, edfPath, err)
	}

	return parseProbeOutput(output)
}

// parseProbeOutput decodes the probe JSON. Diagnostics the tool may print
// before the JSON document are skipped.
func parseProbeOutput(output string) (RecordingInfo, error) {
	start := strings.IndexByte(output, '{')
	if start < 0 {
		return RecordingInfo{}, fmt.Errorf("%w: no JSON in probe output", ErrProbeFailed)
	}

	var info RecordingInfo
	if err := json.Unmarshal([]byte(output[start:]), &info); err != nil {
		return RecordingInfo{}, fmt.Errorf("%w: invalid probe output: %v", ErrProbeFailed, err)
	}
	if info.DurationSeconds < 0 {
		return RecordingInfo{}, fmt.Errorf("probe reported duration %.3fs: %w",
			info.DurationSeconds, ErrNegativeDuration)
	}
	return info, nil
}

// cropArgs builds the crop command line for one segment. Channel type
// overrides are passed as repeated --set-type flags in sorted label order
// so invocations are deterministic.
func cropArgs(seg Segment, inPath, outPath string, resampleHz int, typeOverrides map[string]string) []string {
	args := []string{
		"crop",
		"--start", strconv.Itoa(seg.Start),
		"--end", strconv.Itoa(seg.End),
	}
	if resampleHz > 0 {
		args = append(args, "--resample", strconv.Itoa(resampleHz))
	}

	labels := make([]string, 0, len(typeOverrides))
	for label := range typeOverrides {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		args = append(args, "--set-type", label+"="+typeOverrides[label])
	}

	args = append(args, "--exclude", excludedChannelList())
	args = append(args, inPath, outPath)
	return args
}

// excludedChannelList renders the channel exclusion list as a sorted
// comma-separated value for the crop tool.
func excludedChannelList() string {
	labels := make([]string, 0, len(excludedChannels))
	for label := range excludedChannels {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return strings.Join(labels, ",")
}

// cropSegment extracts one segment from a recording into its own EDF
// file via the external tool.
func cropSegment(ctx context.Context, toolPath string, seg Segment, inPath, outPath string, resampleHz int, typeOverrides map[string]string) error {
	args := cropArgs(seg, inPath, outPath, resampleHz, typeOverrides)
	output, err := runEDFTool(ctx, toolPath, args)
	if err != nil {
		return fmt.Errorf("%w: %s (%s): %v\nOutput: %s",
			ErrCropFailed, outPath, seg, err, output)
	}
	return nil
}

// toolInstallInstructions returns guidance for installing the EDF
// exporter manually.
func toolInstallInstructions() string {
	base := `eegslice drives an external EDF exporter (edf2json-compatible).

Install it and either put it on your PATH, or point eegslice at it:
  eegslice config set edftool /path/to/edf2json
  export ` + envEDFToolPath + `=/path/to/edf2json`
	if runtime.GOOS == "windows" {
		return base + "\n\nOn Windows, use the path to edf2json.exe."
	}
	return base
}
