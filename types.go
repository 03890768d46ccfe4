package tex2soy

import (
	"fmt"
	"strings"
)

// Mode selects the conversion pipeline.
type Mode int

// Conversion modes.
const (
	ModeConcept  Mode = iota // lecture notes and concept pages
	ModeQuestion             // multiple-choice problem sheets
)

// Mode names accepted by ParseMode.
const (
	ModeNameConcepts  = "concepts"
	ModeNameQuestions = "questions"
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeConcept:
		return ModeNameConcepts
	case ModeQuestion:
		return ModeNameQuestions
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a mode name to a Mode. Matching is case-insensitive.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ModeNameConcepts, "concept":
		return ModeConcept, nil
	case ModeNameQuestions, "question":
		return ModeQuestion, nil
	default:
		return ModeConcept, fmt.Errorf("%w: %q", ErrInvalidMode, name)
	}
}

// Input is a single document to convert.
type Input struct {
	Lines      []string // document lines without terminators
	SourcePath string   // used for the namespace and template name
	Mode       Mode
}

// Validate checks that the input can be converted.
func (in Input) Validate() error {
	if strings.TrimSpace(in.SourcePath) == "" {
		return ErrEmptySourcePath
	}
	if in.Mode != ModeConcept && in.Mode != ModeQuestion {
		return fmt.Errorf("%w: %d", ErrInvalidMode, int(in.Mode))
	}
	return nil
}

// Result is the outcome of a conversion.
type Result struct {
	Lines    []string // final template lines
	Stripped []string // output of the command-stripping pass
}

// ExtraRules holds entries appended to the built-in rule tables.
type ExtraRules struct {
	Allow    []string          // openers preserved by the stripping pass
	Deny     []string          // fragments deleted after stripping
	Literals map[string]string // exact replacements applied before markup
}
