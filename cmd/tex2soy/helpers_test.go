package main

// Notes:
// - This file contains test helpers used across CLI tests.
// - testEnv replaces the process environment with a map so tests can run in
//   parallel without t.Setenv.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-tex2soy"
)

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

var conceptSource = strings.Join([]string{
	`\documentclass{article}`,
	`\begin{document}`,
	`\section{Energy}`,
	`Energy is conserved.`,
	`\end{document}`,
}, "\n") + "\n"

var questionSource = strings.Join([]string{
	`\begin{problem}`,
	`\begin{enumerate}`,
	`\item Yes`,
	`\item No`,
	`\end{enumerate}`,
	`Think about it.`,
	`It depends.`,
	`\end{problem}`,
}, "\n") + "\n"

// ---------------------------------------------------------------------------
// Environment
// ---------------------------------------------------------------------------

// syncBuffer is a bytes.Buffer safe for concurrent writes.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// testEnv returns an Environment with captured output, the given variables
// as its process environment and a clock advancing one millisecond per call.
func testEnv(vars map[string]string) (*Environment, *syncBuffer, *syncBuffer) {
	stdout, stderr := &syncBuffer{}, &syncBuffer{}

	var mu sync.Mutex
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	env := &Environment{
		Now: func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			now = now.Add(time.Millisecond)
			return now
		},
		Stdout: stdout,
		Stderr: stderr,
		Getenv: func(key string) string { return vars[key] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
		NewConverter: newLibraryConverter,
	}
	return env, stdout, stderr
}

// writeFile writes content under dir, creating parents, and returns the path.
func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

// staticMockConverter returns a fixed result and records the inputs it saw.
type staticMockConverter struct {
	mu     sync.Mutex
	result *tex2soy.Result
	err    error
	inputs []tex2soy.Input
}

func (m *staticMockConverter) Convert(_ context.Context, input tex2soy.Input) (*tex2soy.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// withConverter returns a NewConverter hook that always yields conv.
func withConverter(conv CLIConverter) func(...tex2soy.Option) (CLIConverter, error) {
	return func(...tex2soy.Option) (CLIConverter, error) { return conv, nil }
}
