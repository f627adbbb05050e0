package jsast

// NodeKind classifies the type of a tree node.
type NodeKind uint8

// Node kinds. The set is closed: parser node shapes outside it are not
// modelled and stay inside the original text of their nearest modelled
// ancestor.
const (
	KindInvalid NodeKind = iota

	// KindProgram is the file root.
	KindProgram

	// KindImport is an import declaration; its children are specifiers.
	KindImport

	// KindSpecifier is one named binding inside an import declaration.
	KindSpecifier

	// KindElement is a JSX element usage (paired or self-closing).
	KindElement

	// KindAttribute is a JSX attribute or spread attribute.
	KindAttribute

	// KindText is literal JSX text.
	KindText

	// KindExpression is a JSX expression container ({...}).
	KindExpression

	// KindRaw is any other JSX child the tree keeps only as text.
	KindRaw
)

var kindNames = [...]string{
	KindInvalid:    "Invalid",
	KindProgram:    "Program",
	KindImport:     "Import",
	KindSpecifier:  "Specifier",
	KindElement:    "Element",
	KindAttribute:  "Attribute",
	KindText:       "Text",
	KindExpression: "Expression",
	KindRaw:        "Raw",
}

func (k NodeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// NodeID is a stable handle to a node in a File arena.
// Handles are 1-based; NoNode is the zero value and means "absent".
type NodeID uint32

// NoNode is the absent handle.
const NoNode NodeID = 0

// IsValid reports whether the handle refers to a node.
func (id NodeID) IsValid() bool {
	return id != NoNode
}

// Node is a single arena entry. Edges are handles, never pointers, so
// re-parenting only rewrites child slices.
type Node struct {
	// Kind identifies which payload fields are meaningful.
	Kind NodeKind

	// Parent is NoNode for the root and for detached nodes.
	Parent NodeID

	// Children holds child handles in document order.
	// For elements these are the JSX children; attributes live in Attrs.
	Children []NodeID

	// Span is the byte range in the original content.
	// Synthetic nodes carry NoSpan.
	Span Span

	// Touched marks a node whose printed form no longer matches its
	// original text.
	Touched bool

	// Import payload.
	Source    string // unquoted module path
	Quote     byte   // quote character used for Source
	TypeOnly  bool   // "import type" or "type X" specifier
	Default   string // default binding, if any
	Namespace string // namespace binding (* as ns), if any
	NamedSpan Span   // the "{ ... }" region
	DefaultAt Span   // the default binding identifier
	Semicolon bool   // synthetic declarations: print a trailing ';'
	BracePad  bool   // synthetic declarations: print "{ a }" rather than "{a}"

	// Specifier payload.
	Imported string
	Local    string // empty when the specifier is not aliased

	// Element payload.
	Name          string
	NameSpan      Span
	CloseNameSpan Span
	SelfClosing   bool
	Attrs         []NodeID
	AttrsEnd      int  // end of the last attribute, or of the name
	OpenEnd       int  // end of the opening tag
	CloseStart    int  // start of the closing tag
	InnerSpan     Span // original children region; NoSpan once moved

	// Attribute payload; empty for spread attributes.
	AttrName string
}

// IsSynthetic reports whether the node was created during a run.
func (n *Node) IsSynthetic() bool {
	return !n.Span.IsValid()
}

// LocalName returns the binding name a specifier introduces into the file.
func (n *Node) LocalName() string {
	if n.Local != "" {
		return n.Local
	}
	return n.Imported
}

// IsAliased reports whether a specifier binds a name other than its imported name.
func (n *Node) IsAliased() bool {
	return n.Local != "" && n.Local != n.Imported
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return len(n.Children) > 0
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	return len(n.Children)
}
