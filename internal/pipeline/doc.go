// Package pipeline implements the LaTeX-to-soy rewrite.
//
// Conversion runs in two line-oriented passes:
//   - Command stripping: drops the preamble, comments and any LaTeX command
//     not on the allow-list, then deletes deny-listed fragments
//   - Structural conversion: rebuilds headings, paragraphs, tables, equations
//     and lists as Closure Template markup, prepends the namespace/template
//     header and escapes stray braces
//
// Multiple-choice problem sheets go through QuestionConverter, which wraps
// both passes with item rewriting and footer/explanation extraction.
//
// Every stage works on []string without line terminators and never shares
// state between documents.
package pipeline
