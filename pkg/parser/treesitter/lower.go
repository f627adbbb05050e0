package treesitter

import (
	"bytes"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/yaklabco/jsxmigrate/pkg/jsast"
)

// Tree-sitter node types the lowerer models.
const (
	typeImportStatement   = "import_statement"
	typeImportClause      = "import_clause"
	typeNamedImports      = "named_imports"
	typeNamespaceImport   = "namespace_import"
	typeImportSpecifier   = "import_specifier"
	typeIdentifier        = "identifier"
	typeShorthandProperty = "shorthand_property_identifier"
	typeJSXElement        = "jsx_element"
	typeJSXSelfClosing    = "jsx_self_closing_element"
	typeJSXOpening        = "jsx_opening_element"
	typeJSXClosing        = "jsx_closing_element"
	typeJSXAttribute      = "jsx_attribute"
	typeJSXExpression     = "jsx_expression"
	typeJSXText           = "jsx_text"
	fieldName             = "name"
	fieldAlias            = "alias"
	fieldSource           = "source"
	fieldOpenTag          = "open_tag"
	fieldCloseTag         = "close_tag"
	keywordType           = "type"
	minQuotedStringLength = 2
)

// lowerer converts a tree-sitter syntax tree into the jsast arena.
// Only imports and JSX are modelled; every other node is transparent and
// its modelled descendants attach to the nearest modelled ancestor.
// Identifiers met on the way are recorded as refs.
type lowerer struct {
	file    *jsast.File
	content []byte
}

func (l *lowerer) span(n sitter.Node) jsast.Span {
	return jsast.Span{Start: int(n.StartByte()), End: int(n.EndByte())}
}

func (l *lowerer) text(n sitter.Node) string {
	s := l.span(n)
	if s.End > len(l.content) {
		return ""
	}
	return string(l.content[s.Start:s.End])
}

func (l *lowerer) lowerChildren(n sitter.Node, parent jsast.NodeID) {
	for idx := range n.NamedChildCount() {
		l.lower(n.NamedChild(idx), parent)
	}
}

func (l *lowerer) lower(n sitter.Node, parent jsast.NodeID) {
	switch n.Type() {
	case typeImportStatement:
		l.lowerImport(n, parent)
	case typeJSXElement, typeJSXSelfClosing:
		l.lowerElement(n, parent)
	case typeIdentifier, typeShorthandProperty:
		l.file.Refs = append(l.file.Refs, jsast.Ref{Name: l.text(n), Span: l.span(n)})
	default:
		l.lowerChildren(n, parent)
	}
}

func (l *lowerer) lowerImport(n sitter.Node, parent jsast.NodeID) {
	id := l.file.NewNode(jsast.KindImport)
	imp := l.file.Node(id)
	imp.Span = l.span(n)

	text := l.content[imp.Span.Start:imp.Span.End]
	imp.Semicolon = bytes.HasSuffix(bytes.TrimSpace(text), []byte(";"))

	if src := n.ChildByFieldName(fieldSource); !src.IsNull() {
		raw := l.text(src)
		if len(raw) >= minQuotedStringLength {
			imp.Quote = raw[0]
			imp.Source = raw[1 : len(raw)-1]
		}
	}

	var specs []jsast.NodeID

	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)
		if child.Type() != typeImportClause {
			continue
		}

		// "import type { A }": the keyword sits between "import" and the clause.
		lead := bytes.TrimSpace(l.content[imp.Span.Start+len("import") : int(child.StartByte())])
		imp.TypeOnly = bytes.Equal(lead, []byte(keywordType))

		specs = l.lowerClause(child, id)
	}

	l.file.AppendChild(parent, id)
	for _, spec := range specs {
		l.file.AppendChild(id, spec)
	}
}

// lowerClause fills the import's binding fields and returns its specifiers.
func (l *lowerer) lowerClause(clause sitter.Node, imp jsast.NodeID) []jsast.NodeID {
	var specs []jsast.NodeID

	for idx := range clause.NamedChildCount() {
		child := clause.NamedChild(idx)

		switch child.Type() {
		case typeIdentifier:
			decl := l.file.Node(imp)
			decl.Default = l.text(child)
			decl.DefaultAt = l.span(child)

		case typeNamespaceImport:
			for j := range child.NamedChildCount() {
				if ident := child.NamedChild(j); ident.Type() == typeIdentifier {
					l.file.Node(imp).Namespace = l.text(ident)
				}
			}

		case typeNamedImports:
			named := l.span(child)
			decl := l.file.Node(imp)
			decl.NamedSpan = named
			decl.BracePad = named.Len() > 1 && l.content[named.Start+1] == ' '

			for j := range child.NamedChildCount() {
				spec := child.NamedChild(j)
				if spec.Type() != typeImportSpecifier {
					continue
				}
				specs = append(specs, l.lowerSpecifier(spec))
			}
		}
	}

	return specs
}

func (l *lowerer) lowerSpecifier(n sitter.Node) jsast.NodeID {
	id := l.file.NewNode(jsast.KindSpecifier)
	spec := l.file.Node(id)
	spec.Span = l.span(n)

	name := n.ChildByFieldName(fieldName)
	if !name.IsNull() {
		spec.Imported = unquote(l.text(name))
		lead := bytes.TrimSpace(l.content[spec.Span.Start:int(name.StartByte())])
		spec.TypeOnly = bytes.Equal(lead, []byte(keywordType))
	}
	if alias := n.ChildByFieldName(fieldAlias); !alias.IsNull() {
		spec.Local = l.text(alias)
	}

	return id
}

func (l *lowerer) lowerElement(n sitter.Node, parent jsast.NodeID) {
	id := l.file.NewNode(jsast.KindElement)
	el := l.file.Node(id)
	el.Span = l.span(n)
	el.SelfClosing = n.Type() == typeJSXSelfClosing
	l.file.AppendChild(parent, id)

	open := n
	if !el.SelfClosing {
		open = n.ChildByFieldName(fieldOpenTag)
		if open.IsNull() {
			open = firstNamedOfType(n, typeJSXOpening)
		}
	}
	openSpan := l.span(open)

	name, nameSpan := l.tagName(open, openSpan.Start)
	el = l.file.Node(id)
	el.Name = name
	el.NameSpan = nameSpan
	el.OpenEnd = openSpan.End
	el.AttrsEnd = nameSpan.End

	l.lowerAttributes(open, id, nameSpan)

	if el := l.file.Node(id); el.SelfClosing {
		return
	}

	closeTag := n.ChildByFieldName(fieldCloseTag)
	if closeTag.IsNull() {
		closeTag = firstNamedOfType(n, typeJSXClosing)
	}
	if closeTag.IsNull() {
		// Leave CloseStart at -1; the rewriter reports the mismatch.
		return
	}
	closeSpan := l.span(closeTag)
	_, closeNameSpan := l.tagName(closeTag, closeSpan.Start+1)

	el = l.file.Node(id)
	el.CloseStart = closeSpan.Start
	el.CloseNameSpan = closeNameSpan
	el.InnerSpan = jsast.Span{Start: openSpan.End, End: closeSpan.Start}

	for idx := range n.NamedChildCount() {
		child := n.NamedChild(idx)
		childStart := int(child.StartByte())
		if childStart < openSpan.End || childStart >= closeSpan.Start {
			continue
		}
		l.lowerJSXChild(child, id)
	}
}

// tagName returns the element's reference name and its span. Fragments have
// no name; their name span is empty and sits right after the '<' (or '</').
func (l *lowerer) tagName(tag sitter.Node, ltOffset int) (string, jsast.Span) {
	if name := tag.ChildByFieldName(fieldName); !name.IsNull() {
		return l.text(name), l.span(name)
	}
	at := ltOffset + 1
	return "", jsast.Span{Start: at, End: at}
}

func (l *lowerer) lowerAttributes(open sitter.Node, element jsast.NodeID, nameSpan jsast.Span) {
	for idx := range open.NamedChildCount() {
		child := open.NamedChild(idx)
		kind := child.Type()
		if kind != typeJSXAttribute && kind != typeJSXExpression {
			continue
		}
		if int(child.StartByte()) < nameSpan.End {
			continue
		}

		id := l.file.NewNode(jsast.KindAttribute)
		attr := l.file.Node(id)
		attr.Span = l.span(child)
		if kind == typeJSXAttribute && child.NamedChildCount() > 0 {
			attr.AttrName = l.text(child.NamedChild(0))
		}
		l.file.AppendAttr(element, id)
		l.file.Node(element).AttrsEnd = attr.Span.End

		// Elements inside attribute values (icon={<Icon />}) are usages too.
		l.lowerChildren(child, id)
	}
}

func (l *lowerer) lowerJSXChild(n sitter.Node, parent jsast.NodeID) {
	var kind jsast.NodeKind

	switch n.Type() {
	case typeJSXElement, typeJSXSelfClosing:
		l.lowerElement(n, parent)
		return
	case typeJSXText:
		kind = jsast.KindText
	case typeJSXExpression:
		kind = jsast.KindExpression
	default:
		kind = jsast.KindRaw
	}

	id := l.file.NewNode(kind)
	l.file.Node(id).Span = l.span(n)
	l.file.AppendChild(parent, id)

	if kind == jsast.KindExpression {
		l.lowerChildren(n, id)
	}
}

func firstNamedOfType(n sitter.Node, typ string) sitter.Node {
	for idx := range n.NamedChildCount() {
		if child := n.NamedChild(idx); child.Type() == typ {
			return child
		}
	}
	return sitter.Node{}
}

// unquote strips the quotes of a string-literal import name
// (import { "a-b" as ab }).
func unquote(s string) string {
	if len(s) >= minQuotedStringLength && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
