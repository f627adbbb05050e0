package migrate

import "github.com/yaklabco/jsxmigrate/pkg/jsast"

// EditKind classifies a single rewrite performed by a step.
type EditKind string

const (
	EditImportRenamed   EditKind = "import-renamed"
	EditImportRemoved   EditKind = "import-removed"
	EditImportAdded     EditKind = "import-added"
	EditTagRenamed      EditKind = "tag-renamed"
	EditChildrenWrapped EditKind = "children-wrapped"
)

// Edit records one rewrite a step applied to the tree.
type Edit struct {
	// Kind is the kind of rewrite.
	Kind EditKind `json:"kind"`

	// Node is the handle of the rewritten node.
	Node jsast.NodeID `json:"-"`

	// Line is the 1-based line of the node in the original content,
	// or 0 for synthesised nodes.
	Line int `json:"line,omitempty"`

	// Detail is a short human-readable description ("Card -> AlphaCard").
	Detail string `json:"detail"`
}

// Change describes what a step did to a file. An empty Change is a no-op.
type Change struct {
	// StepID is the step that produced the change.
	StepID string `json:"step"`

	// Edits are the rewrites in the order they were applied.
	Edits []Edit `json:"edits,omitempty"`

	// Warnings are soft problems (e.g., ambiguous bindings) that did not
	// stop the step.
	Warnings []string `json:"warnings,omitempty"`
}

// Empty reports whether the step changed nothing.
func (c *Change) Empty() bool {
	return c == nil || len(c.Edits) == 0
}

// Count returns the number of edits of the given kind.
func (c *Change) Count(kind EditKind) int {
	if c == nil {
		return 0
	}
	n := 0
	for _, e := range c.Edits {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Record appends an edit for node. The line is resolved from file.
func (c *Change) Record(file *jsast.File, kind EditKind, node jsast.NodeID, detail string) {
	line := 0
	if pos := file.Position(node); pos.IsValid() {
		line = pos.Line
	}
	c.Edits = append(c.Edits, Edit{Kind: kind, Node: node, Line: line, Detail: detail})
}

// Warn appends a warning.
func (c *Change) Warn(msg string) {
	c.Warnings = append(c.Warnings, msg)
}
