package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/alnah/go-tex2soy"
	"github.com/alnah/go-tex2soy/internal/fileutil"
	"github.com/alnah/go-tex2soy/internal/hints"
)

// Sentinel errors for batch operations.
var (
	ErrReadInput   = errors.New("failed to read input file")
	ErrWriteOutput = errors.New("failed to write output file")
)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	encoding     string
	mode         tex2soy.Mode
	intermediate bool
	logger       *slog.Logger
	now          func() time.Time
}

// BatchError reports the documents of a run that failed.
// It unwraps to every per-document error so exit codes can inspect them.
type BatchError struct {
	Failed int
	Total  int
	Errs   []error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%d of %d conversion(s) failed", e.Failed, e.Total)
}

func (e *BatchError) Unwrap() []error { return e.Errs }

// convertBatch converts files one after another. Once ctx is canceled the
// remaining files are reported with the context error.
func convertBatch(ctx context.Context, conv CLIConverter, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]ConversionResult, len(files))
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			results[i] = ConversionResult{InputPath: f.InputPath, Err: err}
			continue
		}
		results[i] = convertFile(ctx, conv, f, params)
	}
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := params.now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	done := func(err error) ConversionResult {
		result.Err = err
		result.Duration = params.now().Sub(start)
		return result
	}

	lines, err := fileutil.ReadLines(f.InputPath, params.encoding)
	if err != nil {
		return done(readError(err))
	}

	res, err := conv.Convert(ctx, tex2soy.Input{
		Lines:      lines,
		SourcePath: f.InputPath,
		Mode:       params.mode,
	})
	if err != nil {
		return done(err)
	}

	if len(res.Stripped) == 0 {
		params.logger.Warn("document produced no content"+hints.ForMissingMarker(params.mode == tex2soy.ModeQuestion),
			"source", f.InputPath)
	}

	if err := fileutil.WriteLines(f.OutputPath, res.Lines); err != nil {
		return done(fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory()))
	}

	if params.intermediate {
		path := intermediatePath(f.OutputPath)
		if err := fileutil.WriteLines(path, res.Stripped); err != nil {
			return done(fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory()))
		}
		params.logger.Debug("wrote intermediate document", "path", path)
	}

	return done(nil)
}

// readError wraps a read failure. Decoding failures get an encoding hint.
func readError(err error) error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return fmt.Errorf("%w: %v%s", ErrReadInput, err, hints.ForEncoding(fileutil.Encodings()))
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// batchError returns a *BatchError for the failed results, or nil.
func batchError(results []ConversionResult) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &BatchError{Failed: len(errs), Total: len(results), Errs: errs}
}

// printResultsWithWriter outputs conversion results using the provided writers.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
