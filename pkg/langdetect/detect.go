// Package langdetect selects the tree-sitter grammar for a JavaScript-family
// source file. It uses go-enry for interpreter and vendored-path detection
// and a fixed extension table for the grammars the parser ships.
package langdetect

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Grammar names understood by the tree-sitter parser.
const (
	GrammarTSX        = "tsx"
	GrammarTypeScript = "typescript"
	GrammarJavaScript = "javascript"
	GrammarNone       = ""
)

// extensionGrammars is authoritative for known extensions. Linguist maps
// several of these to more than one language (".ts" is also Qt XML), so
// enry is only consulted when the extension is unknown.
//
//nolint:gochecknoglobals // Static lookup table.
var extensionGrammars = map[string]string{
	".tsx": GrammarTSX,
	".ts":  GrammarTypeScript,
	".mts": GrammarTypeScript,
	".cts": GrammarTypeScript,
	".jsx": GrammarJavaScript,
	".js":  GrammarJavaScript,
	".mjs": GrammarJavaScript,
	".cjs": GrammarJavaScript,
}

// DefaultExtensions are the file extensions processed when none are configured.
//
//nolint:gochecknoglobals // Default configuration value.
var DefaultExtensions = []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs"}

// Grammar returns the grammar to parse a file with, or GrammarNone when the
// file is not JavaScript-family source.
//
// Detection order:
//  1. Known extension.
//  2. Shebang line (e.g. "#!/usr/bin/env node").
//  3. go-enry's language list for the extension.
func Grammar(path string, content []byte) string {
	ext := strings.ToLower(filepath.Ext(path))
	if grammar, ok := extensionGrammars[ext]; ok {
		return grammar
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		if grammar := fromLanguage(lang); grammar != GrammarNone {
			return grammar
		}
	}

	for _, lang := range enry.GetLanguagesByExtension(path, content, nil) {
		if grammar := fromLanguage(lang); grammar != GrammarNone {
			return grammar
		}
	}

	return GrammarNone
}

// Supported reports whether path has one of the given extensions.
// An empty extension list means DefaultExtensions.
func Supported(path string, extensions []string) bool {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	ext := strings.ToLower(filepath.Ext(path))
	return slices.ContainsFunc(extensions, func(e string) bool {
		return strings.EqualFold(normalizeExt(e), ext)
	})
}

// IsVendored reports whether path lies in a vendored or dependency
// directory (node_modules, bower_components, vendor, ...).
func IsVendored(path string) bool {
	return enry.IsVendor(filepath.ToSlash(path))
}

// IsGenerated reports whether the file looks machine generated
// (minified bundles, source maps, generated headers).
func IsGenerated(path string, content []byte) bool {
	return enry.IsGenerated(filepath.ToSlash(path), content)
}

// fromLanguage maps a linguist language name to a grammar.
func fromLanguage(lang string) string {
	switch strings.ToLower(lang) {
	case "tsx":
		return GrammarTSX
	case "typescript":
		return GrammarTypeScript
	case "javascript", "jsx":
		return GrammarJavaScript
	default:
		return GrammarNone
	}
}

func normalizeExt(ext string) string {
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}
