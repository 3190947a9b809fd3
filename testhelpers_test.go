package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// =============================================================================
// Mock EDF Tool Runner
// =============================================================================

// mockToolResponse holds the result of one mocked EDF tool invocation.
type mockToolResponse struct {
	output string
	err    error
}

// mockToolRunner replaces the external EDF exporter in tests. Responses
// are routed by subcommand (probe, crop, --version) and returned in
// sequence per subcommand, repeating the last one when exhausted.
type mockToolRunner struct {
	mu        sync.Mutex
	responses map[string][]mockToolResponse
	callIndex map[string]int
	calls     []toolCall
}

// toolCall records a single tool invocation for verification.
type toolCall struct {
	toolPath string
	args     []string
}

func newMockToolRunner() *mockToolRunner {
	return &mockToolRunner{
		responses: make(map[string][]mockToolResponse),
		callIndex: make(map[string]int),
	}
}

// On configures the mock to return the given output when the subcommand
// is invoked. Call multiple times to set up sequences.
func (m *mockToolRunner) On(subcommand, output string, err error) *mockToolRunner {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[subcommand] = append(m.responses[subcommand], mockToolResponse{output: output, err: err})
	return m
}

// Run implements the mock tool execution.
func (m *mockToolRunner) Run(_ context.Context, toolPath string, args []string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, toolCall{toolPath: toolPath, args: args})

	sub := ""
	if len(args) > 0 {
		sub = args[0]
	}
	responses, ok := m.responses[sub]
	if !ok || len(responses) == 0 {
		return "", errors.New("unexpected tool invocation: " + strings.Join(args, " "))
	}

	idx := m.callIndex[sub]
	if idx >= len(responses) {
		idx = len(responses) - 1 // Repeat last response
	}
	m.callIndex[sub]++

	resp := responses[idx]
	return resp.output, resp.err
}

// CallCount returns the number of invocations of a subcommand.
func (m *mockToolRunner) CallCount(subcommand string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, c := range m.calls {
		if len(c.args) > 0 && c.args[0] == subcommand {
			count++
		}
	}
	return count
}

// Calls returns the argument lists of every invocation of a subcommand.
func (m *mockToolRunner) Calls(subcommand string) [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out [][]string
	for _, c := range m.calls {
		if len(c.args) > 0 && c.args[0] == subcommand {
			out = append(out, c.args)
		}
	}
	return out
}

// installToolMock replaces the global runEDFToolFunc for testing.
// Returns a cleanup function that restores the original.
// Use with t.Cleanup: t.Cleanup(installToolMock(t, mock))
func installToolMock(t *testing.T, mock *mockToolRunner) func() {
	t.Helper()
	original := runEDFToolFunc
	runEDFToolFunc = mock.Run
	return func() {
		runEDFToolFunc = original
	}
}

// =============================================================================
// Mock Recording Extractor
// =============================================================================

// mockExtractResponse holds the result of one mocked extraction.
type mockExtractResponse struct {
	result ExtractResult
	err    error
}

// mockExtractor implements recordingExtractor for batch tests. Responses
// are routed by the base name of the recording.
type mockExtractor struct {
	mu        sync.Mutex
	responses map[string]mockExtractResponse
	calls     []string
}

func newMockExtractor() *mockExtractor {
	return &mockExtractor{responses: make(map[string]mockExtractResponse)}
}

// OnFile configures the response for a recording by base name.
func (m *mockExtractor) OnFile(base string, result ExtractResult, err error) *mockExtractor {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[base] = mockExtractResponse{result: result, err: err}
	return m
}

func (m *mockExtractor) Extract(ctx context.Context, edfPath string, _ ExtractOptions) (ExtractResult, error) {
	if err := ctx.Err(); err != nil {
		return ExtractResult{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	base := filepath.Base(edfPath)
	m.calls = append(m.calls, base)

	resp, ok := m.responses[base]
	if !ok {
		return ExtractResult{Source: edfPath}, nil
	}
	return resp.result, resp.err
}

// CallCount returns the number of extractions attempted.
func (m *mockExtractor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// =============================================================================
// Filesystem Helpers
// =============================================================================

// tempRecordingDir creates a directory holding placeholder .edf files
// with the given names. The directory is cleaned up with the test.
func tempRecordingDir(t *testing.T, names ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("EDF placeholder"), 0o644); err != nil {
			t.Fatalf("failed to create placeholder %s: %v", name, err)
		}
	}
	return dir
}

// =============================================================================
// Assertion Helpers
// =============================================================================

// assertError checks that err wraps target using errors.Is.
func assertError(t *testing.T, err, target error) {
	t.Helper()

	if err == nil {
		t.Errorf("expected error wrapping %v, got nil", target)
		return
	}
	if target == nil {
		t.Errorf("target error is nil, use assertNoError instead")
		return
	}
	if !errors.Is(err, target) {
		t.Errorf("expected error wrapping %v, got %v", target, err)
	}
}

// assertNoError fails if err is not nil.
func assertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// assertEqual checks that got equals want.
func assertEqual[T comparable](t *testing.T, got, want T) {
	t.Helper()

	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

// assertContains checks that haystack contains needle.
func assertContains(t *testing.T, haystack, needle string) {
	t.Helper()

	if !strings.Contains(haystack, needle) {
		t.Errorf("expected %q to contain %q", haystack, needle)
	}
}

// assertFileExists checks that the file at path exists.
func assertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("expected file to exist: %s", path)
	}
}

// assertSpan checks one clean span's start, end, and length.
func assertSpan(t *testing.T, got CleanSpan, start, end float64) {
	t.Helper()

	if got.Start != start || got.End != end || got.Length != end-start {
		t.Errorf("got span (%.1f, %.1f, %.1f), want (%.1f, %.1f, %.1f)",
			got.Start, got.End, got.Length, start, end, end-start)
	}
}

// assertSegments compares a segment list element by element.
func assertSegments(t *testing.T, got, want []Segment) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("got %d segments %v, want %d segments %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("segment %d: got %v, want %v", i, got[i], want[i])
		}
	}
}
