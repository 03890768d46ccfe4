package pipeline

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/alnah/go-tex2soy/internal/rules"
)

// ErrMissingFooter is logged when a choice list is not followed by both a
// footer and an explanation line.
var ErrMissingFooter = errors.New("footer or explanation missing after choice list")

// Template calls emitted for multiple-choice problems.
const (
	MultipleChoiceCall = "{call rutherford.questions.multipleChoice}"
	FooterCall         = "{call rutherford.questions.footer}"
	ExplanationCall    = "{call rutherford.questions.explanation}"

	widgetParam   = "{param widget: 'checkbox' /}"
	choicesOpen   = "{param choices: ["
	choicesClose  = "] /}"
	callClose     = "{/call}"
	textParamOpen = "{param text}"
	paramClose    = "{/param}"

	itemMarker     = `\item`
	enumerateOpen  = `\begin{enumerate}`
	enumerateClose = `\end{enumerate}`
)

// blockState is the position of the question scanner.
type blockState int

const (
	stateBody blockState = iota
	stateAnswers
	stateFooter
	stateExplanation
	stateDone
)

// QuestionConverter converts multiple-choice problem documents.
type QuestionConverter struct {
	stripper  *Stripper
	structure *StructureConverter
	logger    *slog.Logger
}

// NewQuestionConverter returns a QuestionConverter using r.
func NewQuestionConverter(r *rules.Rules, logger *slog.Logger) *QuestionConverter {
	if logger == nil {
		logger = discardLogger()
	}
	return &QuestionConverter{
		stripper:  NewStripper(rules.ProblemStart, NewRegexRewriter(r), logger),
		structure: NewStructureConverter(r, logger),
		logger:    logger,
	}
}

// Convert returns the template lines for a problem document read from
// sourcePath, along with the intermediate stripped lines.
func (q *QuestionConverter) Convert(lines []string, sourcePath string) (final, stripped []string) {
	stripped = q.stripper.Strip(rewriteItems(lines))
	blocks := q.convertBlocks(stripped)
	blocks = append(blocks, templateClose)
	return q.structure.Convert(blocks, sourcePath, true), stripped
}

// rewriteItems turns every \item line into a choice record. The first item
// opens the choices parameter; every record except the last of a run ends
// with a comma.
func rewriteItems(lines []string) []string {
	out := make([]string, 0, len(lines)+2)
	first := true
	for i, line := range lines {
		if !strings.Contains(line, itemMarker) {
			out = append(out, line)
			continue
		}
		if first {
			out = append(out, widgetParam, choicesOpen)
			first = false
		}
		record := choiceRecord(line)
		if i+1 < len(lines) && strings.Contains(lines[i+1], itemMarker) {
			record += ","
		}
		out = append(out, record)
	}
	return out
}

// choiceRecord builds the record literal for an item line.
func choiceRecord(line string) string {
	_, text, _ := strings.Cut(line, itemMarker)
	text = strings.TrimSpace(StripBraces(text))
	text = strings.ReplaceAll(text, "'", `\'`)
	return "['text': '" + text + "']"
}

// convertBlocks rewrites problem and enumerate markers and captures the
// footer and explanation as the first two content lines after the choice
// list closes. The scan for them stops at the end of the problem.
func (q *QuestionConverter) convertBlocks(lines []string) []string {
	out := make([]string, 0, len(lines)+4)
	state := stateBody
	closeAt := -1

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, rules.ProblemEnd):
			if state == stateFooter || state == stateExplanation {
				q.logger.Warn("incomplete problem", "line", i+1, "error", ErrMissingFooter)
				state = stateDone
			}
			out = append(out, "")

		case strings.HasPrefix(trimmed, rules.ProblemStart), strings.HasPrefix(trimmed, rules.DocumentEnd):
			out = append(out, "")

		case strings.Contains(line, enumerateOpen):
			out = append(out, MultipleChoiceCall)
			state = stateAnswers

		case strings.Contains(line, enumerateClose):
			if state != stateAnswers {
				q.logger.Warn("choice list closed without being opened", "line", i+1)
			}
			out = append(out, choicesClose, callClose)
			state = stateFooter
			closeAt = i

		case state == stateFooter && trimmed != "":
			q.warnOffset("footer", i, closeAt+1)
			out = append(out, wrapCall(FooterCall, trimmed))
			state = stateExplanation

		case state == stateExplanation && trimmed != "":
			q.warnOffset("explanation", i, closeAt+2)
			out = append(out, wrapCall(ExplanationCall, trimmed))
			state = stateDone

		default:
			out = append(out, line)
		}
	}

	if state == stateFooter || state == stateExplanation {
		q.logger.Warn("incomplete problem", "error", ErrMissingFooter)
	}
	return out
}

// warnOffset reports a block found away from its conventional position.
func (q *QuestionConverter) warnOffset(block string, got, want int) {
	if got != want {
		q.logger.Warn("block not directly after choice list",
			"block", block, "line", got+1, "expected", want+1)
	}
}

func wrapCall(call, text string) string {
	return call + textParamOpen + StripBraces(text) + paramClose + callClose
}
