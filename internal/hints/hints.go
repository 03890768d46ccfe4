// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// userConfigMarker identifies the per-user config directory in searched paths.
const userConfigMarker = "go-tex2soy"

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(strings.ReplaceAll(p, `\`, "/"), "/"+userConfigMarker+"/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForEncoding returns hints for unreadable or unknown input encodings.
func ForEncoding(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("use --encoding with one of: " + strings.Join(available, ", "))
}

// ForNoInput returns hints when no .tex file was found.
func ForNoInput(traverse bool) string {
	if traverse {
		return format("only files ending in .tex are converted")
	}
	return format("pass a file with --input, or a directory with --traverse")
}

// ForMissingMarker returns hints when a document produced no content because
// its start marker was never reached.
func ForMissingMarker(questionMode bool) string {
	if questionMode {
		return format(`problem sheets must contain a line starting with \begin{problem}`)
	}
	return formatHints([]string{
		`concept pages must contain a line starting with \begin{document}`,
		"use --questions for problem sheets",
	})
}

// ForNamespace returns hints when the source path lacks the namespace anchor.
func ForNamespace(anchor string) string {
	return format("place sources under a directory named " + anchor + " to derive the namespace")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
