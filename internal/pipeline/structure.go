package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"github.com/alnah/go-tex2soy/internal/rules"
)

// Markup emitted by the structural pass.
const (
	paragraphOpen  = "<p>"
	paragraphClose = "</p>"
	tableOpen      = "<table>"
	tableClose     = "</table>"
	rowOpen        = "<tr>"
	rowCellOpen    = "<tr><td>"
	cellBoundary   = "</td> <td>"
	rowClose       = "</td></tr>"
	templateClose  = "{/template}"
	lineBreak      = `\\`
	mathDelimiter  = "$$"
)

var (
	equationOpeners = []string{`\begin{equation*}`, `\begin{equation}`, `\begin{eqnarray*}`, `\begin{eqnarray}`}
	equationClosers = []string{`\end{equation*}`, `\end{equation}`, `\end{eqnarray*}`, `\end{eqnarray}`}

	headingTags = []string{
		"<" + rules.TitleTag + ">",
		"<" + rules.SectionTag + ">",
		"<" + rules.SubsectionTag + ">",
	}

	// HTML entities are not column separators.
	htmlEntity = regexp.MustCompile(`^&(?:[A-Za-z]+|#[0-9]+);`)
)

// converterState tracks the structure around the current line.
type converterState struct {
	inParagraph bool
	inEquation  bool
	inTable     bool
	inTableRow  bool // opened by a separator line, closed by the row terminator
}

// StructureConverter turns stripped LaTeX lines into template markup.
type StructureConverter struct {
	rules  *rules.Rules
	logger *slog.Logger
}

// NewStructureConverter returns a StructureConverter using r.
func NewStructureConverter(r *rules.Rules, logger *slog.Logger) *StructureConverter {
	if logger == nil {
		logger = discardLogger()
	}
	return &StructureConverter{rules: r, logger: logger}
}

// Convert returns the final template lines for a stripped document read
// from sourcePath. In question mode paragraph structuring is skipped.
func (c *StructureConverter) Convert(lines []string, sourcePath string, questionMode bool) []string {
	lines = extractTitle(lines, c.logger)

	header, err := Header(sourcePath)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, ErrAnchorNotFound) {
			level = slog.LevelError
		}
		c.logger.Log(context.Background(), level, "namespace fallback", "source", sourcePath, "error", err)
	}

	out := make([]string, 0, len(header)+len(lines)+len(lines)/4)
	out = append(out, header...)

	st := &converterState{}
	var pending []string
	for i := 0; i < len(lines) || len(pending) > 0; {
		var line string
		if len(pending) > 0 {
			line, pending = pending[0], pending[1:]
		} else {
			line = lines[i]
			i++
		}

		produced, scheduled := c.rewrite(line, st, questionMode)
		out = append(out, produced...)
		pending = append(scheduled, pending...)
	}
	return out
}

// rewrite applies the per-line rules in order. It returns the lines to emit
// and the lines to visit next.
func (c *StructureConverter) rewrite(line string, st *converterState, questionMode bool) (produced, scheduled []string) {
	line = c.applyConversions(line)
	line = c.rules.ReplaceLiterals(line)
	line = st.fenceEquation(line)

	var trailing []string
	opened := strings.Contains(line, tableOpen)
	if opened {
		st.inTable = true
		st.inTableRow = false
		trailing = append(trailing, rowOpen)
	}
	if strings.Contains(line, tableClose) {
		st.inTable = false
		st.inTableRow = false
	}
	if st.inTable && !opened {
		line = st.convertRow(line)
	}

	pieces := []string{line}
	if !st.inEquation && !st.inTable && !questionMode {
		pieces, scheduled = st.structureParagraph(line)
	}
	pieces = append(pieces, trailing...)

	produced = make([]string, len(pieces))
	for i, p := range pieces {
		produced[i] = strings.ReplaceAll(EscapeBraces(p), ".eps", ".svg")
	}
	return produced, scheduled
}

// applyConversions replaces the line with the template of every matching
// conversion, in table priority order.
func (c *StructureConverter) applyConversions(line string) string {
	for conv := range c.rules.EachConversion() {
		if !conv.Match(line) {
			continue
		}
		if !strings.Contains(conv.Template, rules.Placeholder) {
			line = conv.Template
			continue
		}
		arg, ok := braceArgument(line)
		if !ok {
			c.logger.Warn("conversion skipped: no brace argument", "pattern", conv.Pattern, "line", line)
			continue
		}
		line = strings.ReplaceAll(conv.Template, rules.Placeholder, arg)
	}
	return line
}

// fenceEquation rewrites equation openers and closers to display math.
func (st *converterState) fenceEquation(line string) string {
	if strings.Contains(line, `\begin{equation`) || strings.Contains(line, `\begin{eqnarray`) {
		for _, o := range equationOpeners {
			line = strings.ReplaceAll(line, o, mathDelimiter)
		}
		st.inEquation = true
	}
	if strings.Contains(line, `\end{equation`) || strings.Contains(line, `\end{eqnarray`) {
		for _, cl := range equationClosers {
			line = strings.ReplaceAll(line, cl, mathDelimiter)
		}
		st.inEquation = false
	}
	return line
}

// convertRow opens a row on the first line with a column separator and
// converts separators until the row terminator closes it. A row may span
// several lines.
func (st *converterState) convertRow(line string) string {
	prefix := ""
	if !st.inTableRow {
		if !hasColumnSeparator(line) {
			return line
		}
		prefix = rowCellOpen
		st.inTableRow = true
	}

	body, rest, terminated := strings.Cut(line, lineBreak)
	cells := splitCells(body)
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	converted := strings.Join(cells, cellBoundary)
	if terminated {
		converted += rowClose + strings.TrimSpace(strings.ReplaceAll(rest, lineBreak, ""))
		st.inTableRow = false
	}
	return prefix + converted
}

// structureParagraph handles headings, paragraph markers, line breaks and
// the document end.
func (st *converterState) structureParagraph(line string) (pieces, scheduled []string) {
	if hasHeading(line) {
		if st.inParagraph {
			pieces = append(pieces, paragraphClose)
		}
		scheduled = []string{paragraphOpen}
		st.inParagraph = true
	}
	if strings.Contains(line, "<p") {
		st.inParagraph = true
	}
	if strings.HasSuffix(line, paragraphClose) {
		st.inParagraph = false
	}

	switch {
	case strings.Contains(line, lineBreak) && st.inParagraph:
		line = strings.ReplaceAll(line, lineBreak, paragraphClose+"\n"+paragraphOpen)
	case strings.Contains(line, lineBreak):
		st.inParagraph = true
		line = strings.ReplaceAll(line, lineBreak, "\n"+paragraphOpen)
	case strings.Contains(line, rules.DocumentEnd):
		st.inParagraph = false
		line = paragraphClose + "\n" + templateClose
	}

	return append(pieces, strings.Split(line, "\n")...), scheduled
}

func hasHeading(line string) bool {
	for _, tag := range headingTags {
		if strings.Contains(line, tag) {
			return true
		}
	}
	return false
}

func hasColumnSeparator(line string) bool {
	return len(splitCells(line)) > 1
}

// splitCells splits line on '&' separators, skipping HTML entities.
func splitCells(line string) []string {
	var cells []string
	start := 0
	for i := 0; i < len(line); i++ {
		if line[i] != '&' {
			continue
		}
		if htmlEntity.MatchString(line[i:]) {
			continue
		}
		cells = append(cells, line[start:i])
		start = i + 1
	}
	return append(cells, line[start:])
}
