package pipeline

import (
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"github.com/alnah/go-tex2soy/internal/rules"
)

// ErrMalformedTitle is logged when the title indicator is not followed by a
// line with a brace argument.
var ErrMalformedTitle = errors.New("title indicator not followed by a braced title")

// firstBraceArgument captures the content of the first {...} on a line.
var firstBraceArgument = regexp.MustCompile(`\{(.*?)\}`)

// boldOpener is removed from extracted titles.
const boldOpener = `\textbf{`

// braceArgument returns the first brace argument of line.
func braceArgument(line string) (string, bool) {
	m := firstBraceArgument.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// extractTitle replaces the first usable title indicator with the title tag
// built from the following line, and drops that line. An indicator without a
// usable title line is logged and left in place.
func extractTitle(lines []string, logger *slog.Logger) []string {
	for i, line := range lines {
		if !strings.HasPrefix(line, rules.TitleIndicator) {
			continue
		}

		var title string
		ok := false
		if i+1 < len(lines) {
			title, ok = braceArgument(lines[i+1])
		}
		if !ok {
			logger.Error("unable to find main title",
				"line", i+1,
				"indicator", rules.TitleIndicator,
				"error", ErrMalformedTitle)
			continue
		}

		title = strings.TrimSpace(strings.ReplaceAll(title, boldOpener, ""))
		out := make([]string, 0, len(lines)-1)
		out = append(out, lines[:i]...)
		out = append(out, "<"+rules.TitleTag+">"+title+"</"+rules.TitleTag+">")
		return append(out, lines[i+2:]...)
	}
	return lines
}
