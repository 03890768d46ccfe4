// Package rules holds the static tables that drive the LaTeX-to-soy rewrite.
//
// A Rules value is built once and never mutated afterwards, so it can be
// shared by every document of a batch.
package rules

import (
	"errors"
	"fmt"
	"iter"
	"regexp"
	"sort"
	"strings"
)

// Fixed markers and markup parameters.
const (
	TitleIndicator  = `%\maketitle`
	TitleTag        = "h3"
	SectionTag      = "h4"
	SubsectionTag   = "h5"
	ImageBasePath   = "{$ij.proxyPath}/static/images/"
	NamespaceAnchor = "rutherford"

	DocumentStart = `\begin{document}`
	DocumentEnd   = `\end{document}`
	ProblemStart  = `\begin{problem}`
	ProblemEnd    = `\end{problem}`

	// Placeholder is the substitution slot in conversion templates.
	Placeholder = "{arg}"

	// CommentChar starts a LaTeX comment unless escaped.
	CommentChar = '%'
)

// ErrEmptyLiteral reports a literal table entry with an empty key.
var ErrEmptyLiteral = errors.New("literal table: empty key")

// Conversion maps a command pattern to a markup template.
type Conversion struct {
	Pattern  string // regular expression matched against the line
	Template string // replacement line; Placeholder receives the first brace argument

	re *regexp.Regexp
}

// Match reports whether the conversion applies to line.
func (c Conversion) Match(line string) bool {
	return c.re.MatchString(line)
}

// Literal is an exact find/replace pair.
type Literal struct {
	From string
	To   string
}

// Extra holds additional entries appended to the built-in tables.
type Extra struct {
	Allow    []string
	Deny     []string
	Literals map[string]string
}

// Rules is the immutable set of tables used by the pipeline.
type Rules struct {
	allow       []string
	deny        []string
	conversions []Conversion
	literals    []Literal
	allowPrefix *regexp.Regexp
}

// Default returns the built-in tables.
func Default() *Rules {
	r, err := New(Extra{})
	if err != nil {
		// Built-in patterns are constants; failing here is a programming error.
		panic(err)
	}
	return r
}

// New builds the tables, appending the entries in extra.
func New(extra Extra) (*Rules, error) {
	allow := dedupe(append(defaultAllow(), extra.Allow...))
	deny := dedupe(append(defaultDeny(), extra.Deny...))
	sortLongestFirst(deny)

	literalMap := defaultLiterals()
	for from, to := range extra.Literals {
		literalMap[from] = to
	}
	literals := make([]Literal, 0, len(literalMap))
	for from, to := range literalMap {
		if from == "" {
			return nil, fmt.Errorf("%w (replacement %q)", ErrEmptyLiteral, to)
		}
		literals = append(literals, Literal{From: from, To: to})
	}
	sort.Slice(literals, func(i, j int) bool {
		return longerFirst(literals[i].From, literals[j].From)
	})

	conversions := defaultConversions()
	for i := range conversions {
		re, err := regexp.Compile(conversions[i].Pattern)
		if err != nil {
			return nil, fmt.Errorf("conversion %q: %w", conversions[i].Pattern, err)
		}
		conversions[i].re = re
	}
	sort.SliceStable(conversions, func(i, j int) bool {
		return longerFirst(conversions[i].Pattern, conversions[j].Pattern)
	})

	quoted := make([]string, len(allow))
	for i, a := range allow {
		quoted[i] = regexp.QuoteMeta(a)
	}
	allowPrefix, err := regexp.Compile(`^(?:` + strings.Join(quoted, "|") + `)`)
	if err != nil {
		return nil, fmt.Errorf("allow-list: %w", err)
	}

	return &Rules{
		allow:       allow,
		deny:        deny,
		conversions: conversions,
		literals:    literals,
		allowPrefix: allowPrefix,
	}, nil
}

// Allowed reports whether s begins with an allow-listed opener.
func (r *Rules) Allowed(s string) bool {
	return r.allowPrefix.MatchString(s)
}

// Allow returns a copy of the allow-list.
func (r *Rules) Allow() []string {
	return append([]string(nil), r.allow...)
}

// Deny returns a copy of the deny-list in application order.
func (r *Rules) Deny() []string {
	return append([]string(nil), r.deny...)
}

// Conversions returns the conversion table in priority order.
func (r *Rules) Conversions() []Conversion {
	return append([]Conversion(nil), r.conversions...)
}

// EachConversion yields the conversion table in priority order without
// copying it.
func (r *Rules) EachConversion() iter.Seq[Conversion] {
	return func(yield func(Conversion) bool) {
		for _, c := range r.conversions {
			if !yield(c) {
				return
			}
		}
	}
}

// Literals returns the literal table in application order.
func (r *Rules) Literals() []Literal {
	return append([]Literal(nil), r.literals...)
}

// RemoveDenied deletes every deny-list literal from line.
func (r *Rules) RemoveDenied(line string) string {
	for _, d := range r.deny {
		line = strings.ReplaceAll(line, d, "")
	}
	return line
}

// ReplaceLiterals applies the literal table to line.
func (r *Rules) ReplaceLiterals(line string) string {
	for _, l := range r.literals {
		line = strings.ReplaceAll(line, l.From, l.To)
	}
	return line
}

// longerFirst orders by descending length, then lexically for stability.
func longerFirst(a, b string) bool {
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	return a < b
}

func sortLongestFirst(s []string) {
	sort.Slice(s, func(i, j int) bool { return longerFirst(s[i], s[j]) })
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
