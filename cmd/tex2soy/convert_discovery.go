package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-tex2soy/internal/fileutil"
	"github.com/alnah/go-tex2soy/internal/hints"
)

// Source and intermediate file suffixes.
const (
	texExtension     = ".tex"
	strippedSuffix   = ".stripped"
	intermediateSuffix = strippedSuffix + texExtension
)

// Sentinel errors for file discovery.
var (
	ErrNotTexFile       = errors.New("file must have .tex extension")
	ErrInputIsDirectory = errors.New("input is a directory")
	ErrNoTexFiles       = errors.New("no .tex files found")
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds the .tex files to convert. A directory input requires
// traverse; intermediate files written by earlier runs are skipped.
func discoverFiles(inputPath, outputDir, extension string, traverse bool) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !fileutil.HasExtension(inputPath, texExtension) {
			return nil, fmt.Errorf("%w: got %q", ErrNotTexFile, filepath.Ext(inputPath))
		}
		outPath := resolveOutputPath(inputPath, outputDir, "", extension)
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	if !traverse {
		return nil, fmt.Errorf("%w: %s%s", ErrInputIsDirectory, inputPath, hints.ForNoInput(false))
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !isSourceFile(path) {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath, extension)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s%s", ErrNoTexFiles, inputPath, hints.ForNoInput(true))
	}
	return files, nil
}

// isSourceFile reports whether path is a .tex source rather than an
// intermediate file.
func isSourceFile(path string) bool {
	return fileutil.HasExtension(path, texExtension) &&
		!strings.HasSuffix(strings.ToLower(path), intermediateSuffix)
}

// resolveOutputPath determines the template path for a source file.
// Without an output directory the template sits next to its source. Under
// traversal, the tree below baseInputDir is mirrored into outputDir. A single
// file may name its output file directly.
func resolveOutputPath(inputPath, outputDir, baseInputDir, extension string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+extension)
	}

	if baseInputDir == "" && fileutil.HasExtension(outputDir, extension) {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), base+extension)
		}
	}

	return filepath.Join(outputDir, base+extension)
}

// intermediatePath returns the path of the stripped document written next to
// an output template.
func intermediatePath(outputPath string) string {
	return fileutil.SwapExtension(outputPath, intermediateSuffix)
}
