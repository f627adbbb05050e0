package jsast

// Span is a half-open byte range [Start, End) in the original content.
type Span struct {
	Start int
	End   int
}

// NoSpan marks a node or region that has no original text.
//
//nolint:gochecknoglobals // Sentinel value.
var NoSpan = Span{Start: -1, End: -1}

// IsValid reports whether the span refers to original content.
func (s Span) IsValid() bool {
	return s.Start >= 0 && s.End >= s.Start
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	if !s.IsValid() {
		return 0
	}
	return s.End - s.Start
}

// Contains returns true if the given offset is within this span.
func (s Span) Contains(offset int) bool {
	return s.IsValid() && offset >= s.Start && offset < s.End
}

// Position represents a 1-based line and column in a file.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// Position returns the start position of a node, or the zero Position
// for synthetic nodes.
func (f *File) Position(id NodeID) Position {
	n := f.Node(id)
	if n == nil || n.IsSynthetic() {
		return Position{}
	}
	line, col := f.LineAt(n.Span.Start)
	return Position{Line: line, Column: col}
}

// Text returns the original source text of a node.
// Returns nil for synthetic nodes.
func (f *File) Text(id NodeID) []byte {
	n := f.Node(id)
	if n == nil || n.IsSynthetic() || n.Span.End > len(f.Content) {
		return nil
	}
	return f.Content[n.Span.Start:n.Span.End]
}

// Slice returns the original content covered by span, or "" when the span
// is invalid or out of range.
func (f *File) Slice(span Span) string {
	if !span.IsValid() || span.End > len(f.Content) {
		return ""
	}
	return string(f.Content[span.Start:span.End])
}
