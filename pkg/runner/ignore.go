package runner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// IgnoreSet matches slash-separated relative paths against ignore globs.
// A pattern without a slash matches at any depth ("*.test.tsx"), a leading
// "**/" also matches at the top level, and a trailing "/**" also matches the
// directory itself so that the walk can prune it.
type IgnoreSet struct {
	patterns []string
	globs    []glob.Glob
}

// CompileIgnore compiles patterns into an IgnoreSet.
func CompileIgnore(patterns []string) (*IgnoreSet, error) {
	set := &IgnoreSet{patterns: patterns}
	for _, pattern := range patterns {
		for _, variant := range ignoreVariants(filepath.ToSlash(pattern)) {
			g, err := glob.Compile(variant, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
			}
			set.globs = append(set.globs, g)
		}
	}
	return set, nil
}

func ignoreVariants(pattern string) []string {
	variants := []string{pattern}
	if !strings.Contains(pattern, "/") {
		variants = append(variants, "**/"+pattern)
	}
	if rest, ok := strings.CutPrefix(pattern, "**/"); ok && rest != "" {
		variants = append(variants, rest)
	}
	if dir, ok := strings.CutSuffix(pattern, "/**"); ok && dir != "" {
		variants = append(variants, dir)
	}
	return variants
}

// Match reports whether relPath is ignored.
func (s *IgnoreSet) Match(relPath string) bool {
	if s == nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)
	for _, g := range s.globs {
		if g.Match(relPath) {
			return true
		}
	}
	return false
}

// Patterns returns the source patterns.
func (s *IgnoreSet) Patterns() []string {
	if s == nil {
		return nil
	}
	return s.patterns
}
