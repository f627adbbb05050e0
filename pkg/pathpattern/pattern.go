// Package pathpattern matches import source paths.
//
// A Pattern pairs a regular expression over module paths with a canonical
// path. The expression decides which existing import declarations a
// migration may read and modify; the canonical path is what a newly
// synthesised declaration imports from.
package pathpattern

import (
	"errors"
	"fmt"
	"regexp"
	"regexp/syntax"
	"strings"
)

// ErrEmptyPattern is returned when compiling an empty expression.
var ErrEmptyPattern = errors.New("empty path pattern")

// Pattern is a compiled path pattern. The zero value matches nothing.
type Pattern struct {
	re        *regexp.Regexp
	canonical string
}

// Compile parses expr as a regular expression. canonical may be empty, in
// which case Literal-style expressions ("^path(/.*)?$") recover it from
// the expression itself.
func Compile(expr, canonical string) (Pattern, error) {
	if strings.TrimSpace(expr) == "" {
		return Pattern{}, ErrEmptyPattern
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, fmt.Errorf("compile path pattern %q: %w", expr, err)
	}

	if canonical == "" {
		canonical = literalPrefix(expr)
	}

	return Pattern{re: re, canonical: canonical}, nil
}

// MustCompile is like Compile but panics on error.
// Use only for built-in patterns.
func MustCompile(expr, canonical string) Pattern {
	p, err := Compile(expr, canonical)
	if err != nil {
		panic(err)
	}
	return p
}

// Literal returns a pattern matching path itself and any sub-path of it
// ("@shopify/polaris" matches "@shopify/polaris/build/esm").
func Literal(path string) Pattern {
	return Pattern{
		re:        regexp.MustCompile("^" + regexp.QuoteMeta(path) + "(/.*)?$"),
		canonical: path,
	}
}

// Match reports whether source matches the pattern.
func (p Pattern) Match(source string) bool {
	return p.re != nil && p.re.MatchString(source)
}

// Canonical returns the source path used for synthesised declarations.
func (p Pattern) Canonical() string {
	return p.canonical
}

// String returns the expression the pattern was compiled from.
func (p Pattern) String() string {
	if p.re == nil {
		return ""
	}
	return p.re.String()
}

// IsZero reports whether the pattern is the zero value.
func (p Pattern) IsZero() bool {
	return p.re == nil
}

// literalPrefix extracts the literal path of an anchored expression such as
// "^@shopify/polaris(/.*)?$". It returns "" when the expression does not
// start with a literal.
func literalPrefix(expr string) string {
	re, err := syntax.Parse(expr, syntax.Perl)
	if err != nil {
		return ""
	}

	parts := []*syntax.Regexp{re}
	if re.Op == syntax.OpConcat {
		parts = re.Sub
	}

	var prefix strings.Builder
	for _, part := range parts {
		if part.Op == syntax.OpBeginText || part.Op == syntax.OpBeginLine {
			continue
		}
		if part.Op != syntax.OpLiteral || part.Flags&syntax.FoldCase != 0 {
			break
		}
		prefix.WriteString(string(part.Rune))
	}

	return strings.TrimSuffix(prefix.String(), "/")
}
