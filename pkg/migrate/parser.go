package migrate

import (
	"context"

	"github.com/yaklabco/jsxmigrate/pkg/jsast"
)

// Parser parses JS/TS/JSX/TSX content into a jsast.File.
//
// The migrate package defines this interface in the consumer package.
// Implementations (e.g., parser/treesitter) provide the concrete parsing.
//
// Implementations must be:
//   - deterministic for a given (path, content) pair,
//   - safe for concurrent use by multiple goroutines,
//   - side-effect free (no I/O, no global state mutation).
type Parser interface {
	// Parse converts raw source bytes into a fully-populated File.
	//
	// The returned File must satisfy:
	//   - file.Path == path
	//   - bytes.Equal(file.Content, content)
	//   - file.Root is a KindProgram node spanning the whole content
	//
	// Content with syntax errors is rejected; no partial tree is returned.
	Parse(ctx context.Context, path string, content []byte) (*jsast.File, error)
}
