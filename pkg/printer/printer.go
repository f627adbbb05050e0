// Package printer turns a mutated jsast.File back into source text.
//
// Output is produced as text edits against the original content: every
// region whose nodes were not touched is copied byte for byte, renamed
// elements keep their original attribute and whitespace layout, and
// import declarations keep their quote, brace and line style.
package printer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/jsxmigrate/pkg/fix"
	"github.com/yaklabco/jsxmigrate/pkg/jsast"
)

// Edits returns the text edits that turn file.Content into the printed
// form of the current tree. An unchanged tree yields no edits.
func Edits(file *jsast.File) ([]fix.TextEdit, error) {
	p := &printer{file: file, content: file.Content}
	b := fix.NewEditBuilder()

	if err := p.collect(file.Root, b); err != nil {
		return nil, err
	}
	p.removals(b)

	return b.Edits, nil
}

// Print returns the source text of the current tree.
// An unchanged tree returns the original content.
func Print(file *jsast.File) ([]byte, error) {
	edits, err := Edits(file)
	if err != nil {
		return nil, err
	}
	out, err := fix.Apply(file.Content, edits)
	if err != nil {
		return nil, fmt.Errorf("apply edits to %s: %w", file.Path, err)
	}
	return out, nil
}

type printer struct {
	file    *jsast.File
	content []byte
}

// collect walks untouched original nodes and emits one edit per top-most
// dirty region below them.
func (p *printer) collect(id jsast.NodeID, b *fix.EditBuilder) error {
	n := p.file.Node(id)

	var pending []jsast.NodeID
	anchor, hasAnchor := n.Span.Start, false

	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		err := p.insertSynthetic(b, n, pending, anchor, hasAnchor)
		pending = nil
		return err
	}

	for _, sub := range p.subnodes(n) {
		c := p.file.Node(sub)
		if c.IsSynthetic() {
			pending = append(pending, sub)
			continue
		}
		if err := flush(); err != nil {
			return err
		}
		anchor, hasAnchor = c.Span.End, true

		switch {
		case c.Touched:
			text, err := p.render(sub)
			if err != nil {
				return err
			}
			b.ReplaceRange(c.Span.Start, c.Span.End, text)
		case p.dirty(sub):
			if err := p.collect(sub, b); err != nil {
				return err
			}
		}
	}
	return flush()
}

// insertSynthetic emits the text of synthetic children of an untouched
// parent. Only the program root can have such children: every other
// parent is touched when a child is inserted.
func (p *printer) insertSynthetic(
	b *fix.EditBuilder, parent *jsast.Node, ids []jsast.NodeID, anchor int, afterSibling bool,
) error {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		text, err := p.render(id)
		if err != nil {
			return err
		}
		parts = append(parts, text)
	}
	joined := strings.Join(parts, "\n")

	switch {
	case afterSibling:
		b.Insert(anchor, "\n"+joined)
	case parent.Kind == jsast.KindProgram:
		b.Insert(anchor, joined+"\n")
	default:
		b.Insert(anchor, joined)
	}
	return nil
}

// removals emits deletions for detached original nodes whose parent is
// still printed from original text.
func (p *printer) removals(b *fix.EditBuilder) {
	for _, r := range p.file.Removed {
		if !p.printedVerbatim(r.Parent) {
			continue
		}
		n := p.file.Node(r.Node)
		start, end := n.Span.Start, n.Span.End
		if r.Parent == p.file.Root {
			end = p.swallowLineBreak(end)
		}
		b.Delete(start, end)
	}
}

// printedVerbatim reports whether id is attached to the tree and neither it
// nor any ancestor is re-rendered.
func (p *printer) printedVerbatim(id jsast.NodeID) bool {
	for cur := id; cur != jsast.NoNode; cur = p.file.Node(cur).Parent {
		n := p.file.Node(cur)
		if n.Touched || n.IsSynthetic() {
			return false
		}
		if n.Parent == jsast.NoNode && cur != p.file.Root {
			return false
		}
	}
	return true
}

// swallowLineBreak extends a deletion ending at end over trailing blanks
// and one line break.
func (p *printer) swallowLineBreak(end int) int {
	i := end
	for i < len(p.content) && (p.content[i] == ' ' || p.content[i] == '\t') {
		i++
	}
	if i < len(p.content) && p.content[i] == '\r' {
		i++
	}
	if i < len(p.content) && p.content[i] == '\n' {
		return i + 1
	}
	return end
}

// subnodes returns attributes then children, which is document order.
func (p *printer) subnodes(n *jsast.Node) []jsast.NodeID {
	if len(n.Attrs) == 0 {
		return n.Children
	}
	return slices.Concat(n.Attrs, n.Children)
}

// dirty reports whether the subtree rooted at id prints differently from
// its original text.
func (p *printer) dirty(id jsast.NodeID) bool {
	n := p.file.Node(id)
	if n.Touched || n.IsSynthetic() {
		return true
	}
	for _, sub := range p.subnodes(n) {
		if p.dirty(sub) {
			return true
		}
	}
	return false
}

// render returns the printed text of a node.
func (p *printer) render(id jsast.NodeID) (string, error) {
	n := p.file.Node(id)
	if !n.IsSynthetic() && !n.Touched {
		return p.splice(n.Span, p.subnodes(n))
	}

	switch n.Kind {
	case jsast.KindElement:
		return p.renderElement(id)
	case jsast.KindImport:
		return p.renderImport(id)
	case jsast.KindSpecifier:
		return renderSpecifier(n), nil
	default:
		if n.IsSynthetic() {
			return "", fmt.Errorf("cannot print synthetic %s node", n.Kind)
		}
		return p.splice(n.Span, p.subnodes(n))
	}
}

// splice copies span from the original content, replacing the text of
// every dirty node in subs with its rendering. Subs must be original
// nodes inside span, in document order.
func (p *printer) splice(span jsast.Span, subs []jsast.NodeID) (string, error) {
	var out strings.Builder
	cursor := span.Start

	for _, sub := range subs {
		c := p.file.Node(sub)
		if c.IsSynthetic() {
			return "", fmt.Errorf("synthetic %s node inside original region [%d:%d]", c.Kind, span.Start, span.End)
		}
		if !p.dirty(sub) {
			continue
		}
		out.Write(p.content[cursor:c.Span.Start])
		text, err := p.render(sub)
		if err != nil {
			return "", err
		}
		out.WriteString(text)
		cursor = c.Span.End
	}
	out.Write(p.content[cursor:span.End])

	return out.String(), nil
}

// verbatim returns the printed text of an original node (its rendering
// when dirty, else its original text).
func (p *printer) verbatim(id jsast.NodeID) (string, error) {
	if p.dirty(id) {
		return p.render(id)
	}
	return string(p.file.Text(id)), nil
}
