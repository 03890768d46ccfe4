package pipeline

import (
	"log/slog"
	"strings"
)

// Brace placeholders use Unicode Private Use Area characters so they cannot
// collide with document text while braces are being swapped.
const (
	leftBracePlaceholder  = "\uE000"
	rightBracePlaceholder = "\uE001"
)

// Escaped brace tokens understood by the template engine.
const (
	EscapedLeftBrace  = "{lb}"
	EscapedRightBrace = "{rb}"
)

// directiveMarkers identify lines that already carry template syntax.
var directiveMarkers = []string{
	"{namespace",
	"{template",
	"{/template",
	"{call",
	"{/call",
	"{param",
	"{/param",
	"/}",
	"{literal",
	"{/literal",
	"$ij.",
}

// HasDirective reports whether line contains a template directive.
func HasDirective(line string) bool {
	for _, m := range directiveMarkers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

// EscapeBraces replaces literal braces with {lb}/{rb} unless the line holds a
// directive. Existing escape tokens are left alone, so the function is
// idempotent.
func EscapeBraces(line string) string {
	if HasDirective(line) {
		return line
	}
	line = strings.ReplaceAll(line, EscapedLeftBrace, leftBracePlaceholder)
	line = strings.ReplaceAll(line, EscapedRightBrace, rightBracePlaceholder)
	line = strings.ReplaceAll(line, "{", leftBracePlaceholder)
	line = strings.ReplaceAll(line, "}", rightBracePlaceholder)
	line = strings.ReplaceAll(line, leftBracePlaceholder, EscapedLeftBrace)
	return strings.ReplaceAll(line, rightBracePlaceholder, EscapedRightBrace)
}

// StripBraces removes every brace from s.
func StripBraces(s string) string {
	return strings.NewReplacer("{", "", "}", "").Replace(s)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
