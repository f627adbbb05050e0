package imports

import (
	"errors"
	"fmt"

	"github.com/yaklabco/jsxmigrate/pkg/jsast"
	"github.com/yaklabco/jsxmigrate/pkg/pathpattern"
)

var (
	// ErrDuplicateSpecifier is returned by RenameSpecifier when the new
	// name is already imported under the pattern. Callers merge instead:
	// remove the old specifier and keep the existing one.
	ErrDuplicateSpecifier = errors.New("specifier already imported")

	// ErrNoCanonicalPath is returned when a declaration must be
	// synthesised but the pattern has no canonical source path.
	ErrNoCanonicalPath = errors.New("pattern has no canonical path")
)

// Style fallbacks for synthesised declarations when the file has no imports.
const (
	defaultQuote     = '\''
	defaultSemicolon = true
)

// AddSpecifier ensures name is imported under pattern.
//
// It is a no-op when any matching declaration already imports name.
// Otherwise the specifier is appended to the first matching declaration
// that has (or can grow) a named list; failing that, a new declaration
// importing from the pattern's canonical path is inserted after the last
// import of the file, or at the top when there is none.
func AddSpecifier(file *jsast.File, name string, pattern pathpattern.Pattern) (bool, error) {
	if NewIndex(file, pattern).HasSpecifier(name) {
		return false, nil
	}

	spec := file.NewNode(jsast.KindSpecifier)
	file.Node(spec).Imported = name

	if decl, ok := growableDeclaration(file, pattern); ok {
		file.InsertChild(decl, len(file.Node(decl).Children), spec)
		return true, nil
	}

	if pattern.Canonical() == "" {
		return false, fmt.Errorf("add %q: %w", name, ErrNoCanonicalPath)
	}

	decl := newDeclaration(file, pattern.Canonical())
	file.AppendChild(decl, spec)

	index := 0
	if all := allImports(file); len(all) > 0 {
		index = file.IndexOf(file.Root, all[len(all)-1]) + 1
	}
	file.InsertChild(file.Root, index, decl)

	return true, nil
}

// RemoveSpecifier removes the first specifier importing name from a
// matching declaration. A declaration left with no bindings at all is
// deleted. Returns false when name is not imported.
func RemoveSpecifier(file *jsast.File, name string, pattern pathpattern.Pattern) bool {
	b, ok := NewIndex(file, pattern).Binding(name)
	if !ok {
		return false
	}

	file.RemoveChild(b.Specifier)

	decl := file.Node(b.Declaration)
	if len(decl.Children) == 0 && decl.Default == "" && decl.Namespace == "" {
		file.RemoveChild(b.Declaration)
	}

	return true
}

// RenameSpecifier changes the imported name of the first specifier
// importing oldName. An alias is preserved ({ Card as MyCard } becomes
// { AlphaCard as MyCard }); an unaliased specifier stays unaliased.
//
// Returns ErrDuplicateSpecifier without changing anything when newName is
// already imported, and false when oldName is not imported.
func RenameSpecifier(file *jsast.File, oldName, newName string, pattern pathpattern.Pattern) (bool, error) {
	ix := NewIndex(file, pattern)

	b, ok := ix.Binding(oldName)
	if !ok || oldName == newName {
		return false, nil
	}
	if ix.HasSpecifier(newName) {
		return false, fmt.Errorf("rename %q to %q: %w", oldName, newName, ErrDuplicateSpecifier)
	}

	spec := file.Node(b.Specifier)
	spec.Imported = newName
	if spec.Local == newName {
		spec.Local = ""
	}
	file.Touch(b.Specifier)

	return true, nil
}

// growableDeclaration returns the first matching declaration that has a
// named list, or else the first that can take one (default import without
// a namespace binding).
func growableDeclaration(file *jsast.File, pattern pathpattern.Pattern) (jsast.NodeID, bool) {
	decls := declarations(file, pattern)

	for _, id := range decls {
		n := file.Node(id)
		if n.NamedSpan.IsValid() || (n.IsSynthetic() && n.Namespace == "") {
			return id, true
		}
	}
	for _, id := range decls {
		n := file.Node(id)
		if n.Default != "" && n.Namespace == "" {
			return id, true
		}
	}

	return jsast.NoNode, false
}

// newDeclaration builds a detached import declaration styled after the
// first import of the file.
func newDeclaration(file *jsast.File, source string) jsast.NodeID {
	quote, semicolon, pad := byte(defaultQuote), defaultSemicolon, false
	if all := allImports(file); len(all) > 0 {
		first := file.Node(all[0])
		if first.Quote != 0 {
			quote = first.Quote
		}
		semicolon = first.Semicolon
		pad = first.BracePad
	}

	id := file.NewNode(jsast.KindImport)
	decl := file.Node(id)
	decl.Source = source
	decl.Quote = quote
	decl.Semicolon = semicolon
	decl.BracePad = pad

	return id
}
