package printer

import (
	"strings"

	"github.com/yaklabco/jsxmigrate/pkg/jsast"
)

const defaultIndent = "  "

// renderElement prints a touched or synthetic element.
func (p *printer) renderElement(id jsast.NodeID) (string, error) {
	n := p.file.Node(id)
	if n.IsSynthetic() {
		return p.renderSyntheticElement(n)
	}

	var out strings.Builder

	out.Write(p.content[n.Span.Start:n.NameSpan.Start])
	out.WriteString(n.Name)

	attrs, err := p.splice(jsast.Span{Start: n.NameSpan.End, End: n.AttrsEnd}, n.Attrs)
	if err != nil {
		return "", err
	}
	out.WriteString(attrs)

	tail := string(p.content[n.AttrsEnd:n.OpenEnd])

	if n.CloseStart < 0 {
		if n.SelfClosing {
			out.WriteString(tail)
			return out.String(), nil
		}

		// A self-closing usage that gained children becomes a pair. A line
		// break before "/>" stays before ">".
		body := strings.TrimSuffix(tail, "/>")
		tail = strings.TrimRight(body, " \t\r\n")
		if strings.Contains(body[len(tail):], "\n") {
			tail = body
		}
		out.WriteString(tail + ">")

		inner, err := p.renderInner(n)
		if err != nil {
			return "", err
		}
		out.WriteString(inner)
		out.WriteString("</" + n.Name + ">")

		return out.String(), nil
	}

	out.WriteString(tail)

	inner, err := p.renderInner(n)
	if err != nil {
		return "", err
	}
	out.WriteString(inner)

	out.Write(p.content[n.CloseStart:n.CloseNameSpan.Start])
	out.WriteString(n.Name)
	out.Write(p.content[n.CloseNameSpan.End:n.Span.End])

	return out.String(), nil
}

func (p *printer) renderSyntheticElement(n *jsast.Node) (string, error) {
	if len(n.Children) == 0 && !n.InnerSpan.IsValid() {
		return "<" + n.Name + "/>", nil
	}

	inner, err := p.renderInner(n)
	if err != nil {
		return "", err
	}
	return "<" + n.Name + ">" + inner + "</" + n.Name + ">", nil
}

// renderInner prints an element's children. When the element still owns
// an original children region holding only original nodes, the region is
// spliced so whitespace between children survives.
func (p *printer) renderInner(n *jsast.Node) (string, error) {
	if n.InnerSpan.IsValid() && p.allOriginal(n.Children) {
		return p.splice(n.InnerSpan, n.Children)
	}

	var out strings.Builder
	for _, child := range n.Children {
		text, err := p.verbatim(child)
		if err != nil {
			return "", err
		}
		out.WriteString(text)
	}
	return out.String(), nil
}

func (p *printer) allOriginal(ids []jsast.NodeID) bool {
	for _, id := range ids {
		if p.file.Node(id).IsSynthetic() {
			return false
		}
	}
	return true
}

// renderImport prints a touched or synthetic import declaration.
func (p *printer) renderImport(id jsast.NodeID) (string, error) {
	n := p.file.Node(id)

	if n.IsSynthetic() {
		named, err := p.renderNamed(n, n.BracePad)
		if err != nil {
			return "", err
		}
		var out strings.Builder
		out.WriteString("import ")
		if n.TypeOnly {
			out.WriteString("type ")
		}
		out.WriteString(named)
		out.WriteString(" from ")
		out.WriteByte(quoteOf(n))
		out.WriteString(n.Source)
		out.WriteByte(quoteOf(n))
		if n.Semicolon {
			out.WriteByte(';')
		}
		return out.String(), nil
	}

	hasNames := len(n.Children) > 0

	if !n.NamedSpan.IsValid() {
		if !hasNames || !n.DefaultAt.IsValid() {
			return string(p.file.Text(id)), nil
		}

		// Default-only declaration growing a named list.
		named, err := p.renderNamed(n, n.BracePad)
		if err != nil {
			return "", err
		}
		return string(p.content[n.Span.Start:n.DefaultAt.End]) + ", " + named +
			string(p.content[n.DefaultAt.End:n.Span.End]), nil
	}

	prefix := string(p.content[n.Span.Start:n.NamedSpan.Start])
	suffix := string(p.content[n.NamedSpan.End:n.Span.End])

	if !hasNames && (n.Default != "" || n.Namespace != "") {
		return strings.TrimRight(prefix, " \t,") + suffix, nil
	}

	named, err := p.renderNamed(n, n.BracePad)
	if err != nil {
		return "", err
	}
	return prefix + named + suffix, nil
}

// renderNamed prints the "{ ... }" list of a declaration, keeping the
// layout of the original list when there is one.
func (p *printer) renderNamed(n *jsast.Node, pad bool) (string, error) {
	items := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		text, err := p.verbatim(child)
		if err != nil {
			return "", err
		}
		items = append(items, text)
	}

	layout := p.namedLayout(n, pad)

	if !layout.multiline {
		var out strings.Builder
		out.WriteByte('{')
		if layout.pad && len(items) > 0 {
			out.WriteByte(' ')
		}
		out.WriteString(strings.Join(items, ", "))
		if layout.trailingComma && len(items) > 0 {
			out.WriteByte(',')
		}
		if layout.pad && len(items) > 0 {
			out.WriteByte(' ')
		}
		out.WriteByte('}')
		return out.String(), nil
	}

	var out strings.Builder
	out.WriteString("{\n")
	for i, item := range items {
		out.WriteString(layout.indent)
		out.WriteString(item)
		if i < len(items)-1 || layout.trailingComma {
			out.WriteByte(',')
		}
		out.WriteByte('\n')
	}
	out.WriteString(layout.closeIndent)
	out.WriteByte('}')
	return out.String(), nil
}

type namedLayout struct {
	multiline     bool
	pad           bool
	trailingComma bool
	indent        string
	closeIndent   string
}

func (p *printer) namedLayout(n *jsast.Node, pad bool) namedLayout {
	layout := namedLayout{pad: pad, indent: defaultIndent}
	if !n.NamedSpan.IsValid() {
		return layout
	}

	original := p.file.Slice(n.NamedSpan)
	body := strings.TrimSuffix(strings.TrimPrefix(original, "{"), "}")

	layout.multiline = strings.Contains(body, "\n")
	layout.pad = strings.HasPrefix(body, " ")
	layout.trailingComma = strings.HasSuffix(strings.TrimRight(body, " \t\r\n"), ",")

	if layout.multiline {
		layout.closeIndent = p.file.LineIndent(n.NamedSpan.End - 1)
		layout.indent = layout.closeIndent + defaultIndent
		for _, child := range n.Children {
			if c := p.file.Node(child); !c.IsSynthetic() {
				layout.indent = p.file.LineIndent(c.Span.Start)
				break
			}
		}
	}

	return layout
}

func renderSpecifier(n *jsast.Node) string {
	var out strings.Builder
	if n.TypeOnly {
		out.WriteString("type ")
	}
	out.WriteString(n.Imported)
	if n.IsAliased() {
		out.WriteString(" as ")
		out.WriteString(n.Local)
	}
	return out.String()
}

func quoteOf(n *jsast.Node) byte {
	if n.Quote == 0 {
		return '\''
	}
	return n.Quote
}
