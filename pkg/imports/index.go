// Package imports reads and rewrites the import declarations of a file.
//
// The Index answers binding questions ("is Card imported from Polaris, and
// under which local name?") and the mutators add, remove, and rename named
// specifiers. Both operate only on declarations whose source matches a
// path pattern; declarations from other modules are never read or touched.
//
// Type-only declarations and specifiers (import type { X }) bind no runtime
// value and are ignored.
package imports

import (
	"slices"

	"github.com/yaklabco/jsxmigrate/pkg/jsast"
	"github.com/yaklabco/jsxmigrate/pkg/pathpattern"
)

// Binding is one named specifier of a matching declaration.
type Binding struct {
	Imported    string
	Local       string
	Aliased     bool
	Declaration jsast.NodeID
	Specifier   jsast.NodeID
}

// Ambiguity reports an imported name bound under more than one local name
// across matching declarations.
type Ambiguity struct {
	Imported string
	Locals   []string
}

// Index is a read-only view of a file's matching import declarations.
// It holds no cache: every query scans the current tree, so results always
// reflect mutations made since the Index was created.
type Index struct {
	file    *jsast.File
	pattern pathpattern.Pattern
}

// NewIndex creates an index over file for declarations matching pattern.
func NewIndex(file *jsast.File, pattern pathpattern.Pattern) *Index {
	return &Index{file: file, pattern: pattern}
}

// Declarations returns the matching import declarations in document order.
func (ix *Index) Declarations() []jsast.NodeID {
	return declarations(ix.file, ix.pattern)
}

// Bindings returns every value binding of the matching declarations in
// document order.
func (ix *Index) Bindings() []Binding {
	var out []Binding
	for _, decl := range ix.Declarations() {
		for _, spec := range ix.file.Node(decl).Children {
			n := ix.file.Node(spec)
			if n.Kind != jsast.KindSpecifier || n.TypeOnly {
				continue
			}
			out = append(out, Binding{
				Imported:    n.Imported,
				Local:       n.LocalName(),
				Aliased:     n.IsAliased(),
				Declaration: decl,
				Specifier:   spec,
			})
		}
	}
	return out
}

// HasSpecifier reports whether any matching declaration imports name.
// All declarations are considered, not only the first.
func (ix *Index) HasSpecifier(name string) bool {
	_, ok := ix.Binding(name)
	return ok
}

// Binding returns the first binding of name in document order.
func (ix *Index) Binding(name string) (Binding, bool) {
	for _, b := range ix.Bindings() {
		if b.Imported == name {
			return b, true
		}
	}
	return Binding{}, false
}

// BindingsOf returns every binding of name in document order.
func (ix *Index) BindingsOf(name string) []Binding {
	var out []Binding
	for _, b := range ix.Bindings() {
		if b.Imported == name {
			out = append(out, b)
		}
	}
	return out
}

// Specifier returns the handle of the first specifier importing name.
func (ix *Index) Specifier(name string) (jsast.NodeID, bool) {
	b, ok := ix.Binding(name)
	return b.Specifier, ok
}

// LocalNameOf returns the local binding name for the imported name.
// When several declarations import it, the first in document order wins;
// Ambiguities reports such cases.
func (ix *Index) LocalNameOf(name string) (string, bool) {
	b, ok := ix.Binding(name)
	return b.Local, ok
}

// Ambiguities returns imported names bound under different local names.
func (ix *Index) Ambiguities() []Ambiguity {
	var (
		order  []string
		locals = make(map[string][]string)
	)

	for _, b := range ix.Bindings() {
		seen := locals[b.Imported]
		if len(seen) == 0 {
			order = append(order, b.Imported)
		}
		if !slices.Contains(seen, b.Local) {
			locals[b.Imported] = append(seen, b.Local)
		}
	}

	var out []Ambiguity
	for _, name := range order {
		if len(locals[name]) > 1 {
			out = append(out, Ambiguity{Imported: name, Locals: locals[name]})
		}
	}
	return out
}

// declarations lists the program-level value imports whose source matches.
func declarations(file *jsast.File, pattern pathpattern.Pattern) []jsast.NodeID {
	root := file.Node(file.Root)
	if root == nil {
		return nil
	}

	var out []jsast.NodeID
	for _, id := range root.Children {
		n := file.Node(id)
		if n.Kind != jsast.KindImport || n.TypeOnly {
			continue
		}
		if pattern.Match(n.Source) {
			out = append(out, id)
		}
	}
	return out
}

// allImports lists every program-level import declaration.
func allImports(file *jsast.File) []jsast.NodeID {
	root := file.Node(file.Root)
	if root == nil {
		return nil
	}

	var out []jsast.NodeID
	for _, id := range root.Children {
		if file.Kind(id) == jsast.KindImport {
			out = append(out, id)
		}
	}
	return out
}
