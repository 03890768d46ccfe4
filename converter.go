package tex2soy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alnah/go-tex2soy/internal/pipeline"
	"github.com/alnah/go-tex2soy/internal/rules"
)

// Compile-time interface implementation checks.
var (
	_ documentStripper  = (*pipeline.Stripper)(nil)
	_ structureRenderer = (*pipeline.StructureConverter)(nil)
	_ questionRenderer  = (*pipeline.QuestionConverter)(nil)
)

type documentStripper interface {
	Strip(lines []string) []string
}

type structureRenderer interface {
	Convert(lines []string, sourcePath string, questionMode bool) []string
}

type questionRenderer interface {
	Convert(lines []string, sourcePath string) (final, stripped []string)
}

// Converter runs the LaTeX-to-template pipeline.
// It holds no per-document state and is safe for concurrent use.
type Converter struct {
	extra     ExtraRules
	rules     *rules.Rules
	logger    *slog.Logger
	stripper  documentStripper
	structure structureRenderer
	questions questionRenderer
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger receiving conversion diagnostics.
// A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithExtraRules appends entries to the built-in rule tables.
// Repeated calls accumulate.
func WithExtraRules(extra ExtraRules) Option {
	return func(c *Converter) {
		c.extra.Allow = append(c.extra.Allow, extra.Allow...)
		c.extra.Deny = append(c.extra.Deny, extra.Deny...)
		for from, to := range extra.Literals {
			if c.extra.Literals == nil {
				c.extra.Literals = make(map[string]string, len(extra.Literals))
			}
			c.extra.Literals[from] = to
		}
	}
}

// NewConverter creates a Converter with the built-in rule tables plus any
// entries given with WithExtraRules.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}

	r, err := rules.New(rules.Extra{
		Allow:    c.extra.Allow,
		Deny:     c.extra.Deny,
		Literals: c.extra.Literals,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRules, err)
	}
	c.rules = r

	if c.stripper == nil {
		c.stripper = pipeline.NewStripper(rules.DocumentStart, pipeline.NewRegexRewriter(c.rules), c.logger)
	}
	if c.structure == nil {
		c.structure = pipeline.NewStructureConverter(c.rules, c.logger)
	}
	if c.questions == nil {
		c.questions = pipeline.NewQuestionConverter(c.rules, c.logger)
	}
	return c, nil
}

// Convert converts one document. The context is checked between passes.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := c.logger.With("source", input.SourcePath, "mode", input.Mode.String())
	log.Debug("converting", "lines", len(input.Lines))

	if input.Mode == ModeQuestion {
		final, stripped := c.questions.Convert(input.Lines, input.SourcePath)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return &Result{Lines: final, Stripped: stripped}, nil
	}

	stripped := c.stripper.Strip(input.Lines)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	final := c.structure.Convert(stripped, input.SourcePath, false)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Debug("converted", "stripped", len(stripped), "output", len(final))
	return &Result{Lines: final, Stripped: stripped}, nil
}
