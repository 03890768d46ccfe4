package main

import (
	"errors"
	"os"

	"github.com/alnah/go-tex2soy"
	"github.com/alnah/go-tex2soy/internal/config"
	"github.com/alnah/go-tex2soy/internal/fileutil"
)

// Exit codes for tex2soy CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoTexFiles) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidEncoding) ||
		errors.Is(err, config.ErrInvalidMode) ||
		errors.Is(err, config.ErrInvalidExtension) ||
		errors.Is(err, config.ErrInvalidRule) ||
		errors.Is(err, fileutil.ErrUnknownEncoding) ||
		errors.Is(err, tex2soy.ErrInvalidMode) ||
		errors.Is(err, tex2soy.ErrInvalidRules) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrInputIsDirectory) ||
		errors.Is(err, ErrNotTexFile) ||
		errors.Is(err, ErrConflictingModes) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
