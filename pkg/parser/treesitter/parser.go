// Package treesitter provides a Parser implementation backed by tree-sitter
// grammars for TSX, TypeScript, and JavaScript (with JSX).
package treesitter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"unsafe"

	sitter "github.com/alexaandru/go-tree-sitter-bare"
	"github.com/alexaandru/go-sitter-forest/javascript"
	"github.com/alexaandru/go-sitter-forest/tsx"
	"github.com/alexaandru/go-sitter-forest/typescript"

	"github.com/yaklabco/jsxmigrate/pkg/jsast"
	"github.com/yaklabco/jsxmigrate/pkg/langdetect"
)

var (
	// ErrSyntax is returned when the source contains syntax errors.
	// Files that do not parse cleanly are never rewritten.
	ErrSyntax = errors.New("syntax error")

	// ErrUnsupportedGrammar is returned when no grammar matches the file.
	ErrUnsupportedGrammar = errors.New("unsupported grammar")

	errPoolType   = errors.New("parser pool returned unexpected type")
	errNoRootNode = errors.New("parser produced no root node")
)

// Parser implements migrate.Parser using tree-sitter.
// It is safe for concurrent use: tree-sitter parsers are pooled per grammar.
type Parser struct {
	fallback string
	pools    map[string]*sync.Pool
}

// Option configures a Parser.
type Option func(*Parser)

// WithFallbackGrammar sets the grammar used when a path has no recognised
// extension (in-memory content, stdin). Defaults to tsx.
func WithFallbackGrammar(grammar string) Option {
	return func(p *Parser) {
		p.fallback = grammar
	}
}

// New creates a tree-sitter parser for the JavaScript family of grammars.
func New(opts ...Option) *Parser {
	p := &Parser{
		fallback: langdetect.GrammarTSX,
		pools:    make(map[string]*sync.Pool, 3), //nolint:mnd // one pool per grammar
	}
	for _, opt := range opts {
		opt(p)
	}

	for name, fn := range languageFuncs {
		lang := sitter.NewLanguage(fn())
		p.pools[name] = &sync.Pool{
			New: func() any {
				tsParser := sitter.NewParser()
				tsParser.SetLanguage(lang)

				return tsParser
			},
		}
	}

	return p
}

//nolint:gochecknoglobals // Static grammar table.
var languageFuncs = map[string]func() unsafe.Pointer{
	langdetect.GrammarTSX:        tsx.GetLanguage,
	langdetect.GrammarTypeScript: typescript.GetLanguage,
	langdetect.GrammarJavaScript: javascript.GetLanguage,
}

// Grammars returns the grammar names this parser can handle.
func (p *Parser) Grammars() []string {
	return []string{langdetect.GrammarTSX, langdetect.GrammarTypeScript, langdetect.GrammarJavaScript}
}

// Parse converts source bytes into a jsast.File.
//
// The method:
//  1. Checks for context cancellation.
//  2. Selects a grammar from the path (and shebang).
//  3. Parses with a pooled tree-sitter parser.
//  4. Rejects trees containing ERROR nodes.
//  5. Lowers import declarations and JSX elements into the arena.
//
// Returns nil and an error if parsing fails or the context is cancelled.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*jsast.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	grammar := langdetect.Grammar(path, content)
	if grammar == langdetect.GrammarNone {
		grammar = p.fallback
	}

	pool, ok := p.pools[grammar]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedGrammar, grammar)
	}

	tsParser, ok := pool.Get().(*sitter.Parser)
	if !ok {
		return nil, errPoolType
	}
	defer pool.Put(tsParser)

	tree, err := tsParser.ParseString(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return nil, errNoRootNode
	}

	if errNode, found := findError(root); found {
		line, col := lineCol(content, int(errNode.StartByte()))
		return nil, fmt.Errorf("%w at %d:%d", ErrSyntax, line, col)
	}

	file := jsast.NewFile(path, copyContent(content))
	file.Language = grammar

	l := &lowerer{file: file, content: file.Content}
	l.lowerChildren(root, file.Root)

	return file, nil
}

// findError returns the first ERROR node in document order.
func findError(n sitter.Node) (sitter.Node, bool) {
	if n.Type() == "ERROR" {
		return n, true
	}
	for idx := range n.NamedChildCount() {
		if found, ok := findError(n.NamedChild(idx)); ok {
			return found, true
		}
	}
	return sitter.Node{}, false
}

func lineCol(content []byte, offset int) (int, int) {
	line, col := 1, 1
	for i := 0; i < offset && i < len(content); i++ {
		if content[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

// copyContent creates a copy of the content slice to ensure immutability.
func copyContent(content []byte) []byte {
	if content == nil {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
