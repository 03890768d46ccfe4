package pipeline

import (
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"github.com/alnah/go-tex2soy/internal/rules"
)

// ErrMissingStartMarker is logged when a document never reaches its start marker.
var ErrMissingStartMarker = errors.New("start marker not found")

var (
	// \Name[opt]...{arg}, one level of nested braces, single line only.
	commandWithArgument = regexp.MustCompile(`\\[A-Za-z]+(?:\[[^\]]*\])*\{[^{}]*(?:\{[^{}]*\}[^{}]*)*\}`)

	// \Name at the very start of the line.
	bareCommand = regexp.MustCompile(`^\\[A-Za-z]+`)
)

// LineRewriter removes commands from a single line.
type LineRewriter interface {
	StripLine(line string) string
}

// RegexRewriter is the regular-expression LineRewriter.
type RegexRewriter struct {
	rules *rules.Rules
}

// NewRegexRewriter returns a RegexRewriter over r.
func NewRegexRewriter(r *rules.Rules) *RegexRewriter {
	return &RegexRewriter{rules: r}
}

// StripLine deletes non-allow-listed commands and deny-listed fragments.
func (w *RegexRewriter) StripLine(line string) string {
	line = w.deleteCommands(line)
	if loc := bareCommand.FindStringIndex(line); loc != nil && !w.rules.Allowed(line) {
		line = line[loc[1]:]
	}
	return w.rules.RemoveDenied(line)
}

// deleteCommands removes every command-with-argument match that does not
// begin with an allow-listed opener. An allow-listed match is skipped one
// byte at a time so commands nested inside it are still examined.
func (w *RegexRewriter) deleteCommands(line string) string {
	var b strings.Builder
	pos := 0
	for pos < len(line) {
		loc := commandWithArgument.FindStringIndex(line[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if w.rules.Allowed(line[start:]) {
			b.WriteString(line[pos : start+1])
			pos = start + 1
			continue
		}
		b.WriteString(line[pos:start])
		pos = end
	}
	b.WriteString(line[pos:])
	return b.String()
}

// Stripper runs the command-stripping pass over a whole document.
type Stripper struct {
	startMarker string
	rewriter    LineRewriter
	logger      *slog.Logger
}

// NewStripper returns a Stripper that starts at startMarker and rewrites
// lines with rw.
func NewStripper(startMarker string, rw LineRewriter, logger *slog.Logger) *Stripper {
	if logger == nil {
		logger = discardLogger()
	}
	return &Stripper{startMarker: startMarker, rewriter: rw, logger: logger}
}

// Strip returns the stripped document. lines is not modified.
func (s *Stripper) Strip(lines []string) []string {
	out := make([]string, 0, len(lines))
	started := false

	for _, line := range lines {
		if !started {
			if !strings.HasPrefix(line, s.startMarker) {
				continue
			}
			started = true
		}

		isTitle := strings.HasPrefix(line, rules.TitleIndicator)
		commentOnly := strings.HasPrefix(line, string(rules.CommentChar))

		if !strings.Contains(line, rules.TitleIndicator) {
			line = truncateComment(line)
		}
		line = s.rewriter.StripLine(line)

		if !commentOnly || isTitle {
			out = append(out, line)
		}
	}

	if !started {
		s.logger.Warn("document skipped", "marker", s.startMarker, "error", ErrMissingStartMarker)
	}
	return out
}

// truncateComment cuts line at the first '%' not preceded by a backslash.
func truncateComment(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] == rules.CommentChar && (i == 0 || line[i-1] != '\\') {
			return line[:i]
		}
	}
	return line
}
