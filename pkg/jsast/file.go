// Package jsast provides the in-memory source tree for one JS/TS file.
//
// A File owns an arena of nodes addressed by NodeID handles. The tree models
// only what codemods act on (import declarations, specifiers, and JSX
// elements with their attributes and children); every other construct is
// carried as original text between modelled nodes, which is what lets the
// printer reproduce untouched regions byte for byte.
//
// A File is owned by a single transformation run and must not be shared
// between goroutines.
package jsast

import "sort"

// File is the lossless view of one source file plus its node arena.
type File struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the original file bytes. It is never mutated.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// Language is the grammar the file was parsed with.
	Language string

	// Root is the program node.
	Root NodeID

	// Removed lists original nodes detached during the run.
	Removed []Removal

	// Refs lists identifiers outside import declarations and JSX tag
	// names, in document order.
	Refs []Ref

	nodes []Node
}

// Removal records an original node detached from its parent.
type Removal struct {
	Node   NodeID
	Parent NodeID
}

// Ref is an identifier the tree carries as original text, such as a value
// reference (const c = Card) or the object of a member expression.
type Ref struct {
	Name string
	Span Span
}

// RefsTo returns the references named name in document order.
func (f *File) RefsTo(name string) []Ref {
	var out []Ref
	for _, r := range f.Refs {
		if r.Name == name {
			out = append(out, r)
		}
	}
	return out
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewFile creates a File with a program root spanning the whole content.
// Parsers populate the rest of the tree.
func NewFile(path string, content []byte) *File {
	f := &File{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
		nodes:   make([]Node, 0, 64), //nolint:mnd // initial arena capacity
	}
	f.Root = f.NewNode(KindProgram)
	f.nodes[f.Root-1].Span = Span{Start: 0, End: len(content)}
	return f
}

// Node returns the node for a handle, or nil for NoNode and out-of-range handles.
// The pointer is only valid until the next NewNode call.
func (f *File) Node(id NodeID) *Node {
	if id == NoNode || int(id) > len(f.nodes) {
		return nil
	}
	return &f.nodes[id-1]
}

// NewNode allocates a detached node of the given kind with no original text.
func (f *File) NewNode(kind NodeKind) NodeID {
	f.nodes = append(f.nodes, Node{
		Kind:          kind,
		Span:          NoSpan,
		NamedSpan:     NoSpan,
		DefaultAt:     NoSpan,
		NameSpan:      NoSpan,
		CloseNameSpan: NoSpan,
		InnerSpan:     NoSpan,
		AttrsEnd:      -1,
		OpenEnd:       -1,
		CloseStart:    -1,
	})
	return NodeID(len(f.nodes))
}

// Len returns the number of nodes ever allocated in the arena.
func (f *File) Len() int {
	return len(f.nodes)
}

// Kind returns the kind of a node, or KindInvalid for bad handles.
func (f *File) Kind(id NodeID) NodeKind {
	if n := f.Node(id); n != nil {
		return n.Kind
	}
	return KindInvalid
}

// Changed reports whether any node was touched, added, or removed.
func (f *File) Changed() bool {
	if len(f.Removed) > 0 {
		return true
	}
	for i := range f.nodes {
		n := &f.nodes[i]
		if n.Touched {
			return true
		}
		if n.IsSynthetic() && n.Parent != NoNode {
			return true
		}
	}
	return false
}

// BuildLines constructs line metadata from file content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}
		newlineStart := idx
		if idx > 0 && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes.
// Returns (0, 0) if the offset is out of range.
func (f *File) LineAt(offset int) (int, int) {
	if offset < 0 || len(f.Lines) == 0 {
		return 0, 0
	}

	if offset >= len(f.Content) {
		lastLine := f.Lines[len(f.Lines)-1]
		return len(f.Lines), offset - lastLine.StartOffset + 1
	}

	lineIdx := sort.Search(len(f.Lines), func(i int) bool {
		return f.Lines[i].EndOffset > offset
	})
	if lineIdx >= len(f.Lines) {
		lineIdx = len(f.Lines) - 1
	}

	lineInfo := f.Lines[lineIdx]
	if offset < lineInfo.StartOffset {
		return 0, 0
	}

	return lineIdx + 1, offset - lineInfo.StartOffset + 1
}

// LineIndent returns the leading whitespace of the line containing offset.
func (f *File) LineIndent(offset int) string {
	line, _ := f.LineAt(offset)
	if line == 0 {
		return ""
	}
	info := f.Lines[line-1]
	end := info.StartOffset
	for end < info.NewlineStart && (f.Content[end] == ' ' || f.Content[end] == '\t') {
		end++
	}
	return string(f.Content[info.StartOffset:end])
}
