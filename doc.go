// Package tex2soy converts LaTeX course material to Closure Templates.
//
// # Quick Start
//
// Create a converter and convert the lines of a document:
//
//	conv, err := tex2soy.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, tex2soy.Input{
//	    Lines:      lines,
//	    SourcePath: "/srv/content/rutherford/physics/forces.tex",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(strings.Join(result.Lines, "\n"))
//
// The result holds the final template lines (result.Lines) and the
// intermediate stripped document (result.Stripped) for debugging.
//
// # Conversion Pipeline
//
// Concept pages go through two passes:
//
//  1. Command stripping (preamble, comments, unknown commands, deny-list)
//  2. Structural conversion (title, header, headings, paragraphs, tables,
//     equations, lists, brace escaping)
//
// Problem sheets (ModeQuestion) first rewrite \item lines into choice
// records, then strip, then convert the enumerate block into a
// multiple-choice call followed by footer and explanation calls.
//
// # Rules
//
// The allow-list, deny-list, conversion table and literal table are built
// once per Converter and shared read-only. Extra entries can be supplied
// with WithExtraRules:
//
//	conv, err := tex2soy.NewConverter(tex2soy.WithExtraRules(tex2soy.ExtraRules{
//	    Deny: []string{`\small`},
//	}))
//
// # Diagnostics
//
// Conversion is best-effort. A malformed title or an incomplete problem is
// reported through the logger given to WithLogger and never fails the call.
package tex2soy
