package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/alnah/go-tex2soy/internal/rules"
)

// ErrAnchorNotFound is returned when the source path has no anchor segment.
var ErrAnchorNotFound = errors.New("namespace anchor not found in path")

var lowerCaser = cases.Lower(language.Und)

// Namespace builds the dotted namespace for sourcePath: the anchor segment
// followed by every directory below it, lower-cased. When the path has no
// anchor segment the anchor alone is returned together with ErrAnchorNotFound.
func Namespace(sourcePath string) (string, error) {
	abs, err := filepath.Abs(sourcePath)
	if err != nil {
		return rules.NamespaceAnchor, fmt.Errorf("resolving %s: %w", sourcePath, err)
	}

	segments := strings.Split(filepath.ToSlash(abs), "/")
	dirs := segments[:len(segments)-1]

	anchor := -1
	for i, seg := range dirs {
		if strings.EqualFold(seg, rules.NamespaceAnchor) {
			anchor = i
		}
	}
	if anchor < 0 {
		return rules.NamespaceAnchor, fmt.Errorf("%w: %s", ErrAnchorNotFound, abs)
	}

	parts := append([]string{rules.NamespaceAnchor}, dirs[anchor+1:]...)
	return lowerCaser.String(strings.Join(parts, ".")), nil
}

// TemplateName returns the base name of sourcePath up to its first dot.
func TemplateName(sourcePath string) string {
	base := filepath.Base(sourcePath)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		return base[:i]
	}
	return base
}

// Header returns the namespace declaration, doc comment and template opener
// for sourcePath. The returned lines are always usable; err only reports a
// missing anchor.
func Header(sourcePath string) ([]string, error) {
	ns, err := Namespace(sourcePath)
	name := TemplateName(sourcePath)
	return []string{
		"{namespace " + ns + "}",
		"",
		"/**",
		" * " + name,
		" */",
		"{template ." + name + "}",
	}, err
}
