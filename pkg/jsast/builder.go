package jsast

import "slices"

// AppendChild appends child to parent while building a tree.
// It does not mark anything as touched; use InsertChild for edits.
func (f *File) AppendChild(parent, child NodeID) {
	p, c := f.Node(parent), f.Node(child)
	if p == nil || c == nil {
		return
	}
	c.Parent = parent
	p.Children = append(p.Children, child)
}

// AppendAttr appends an attribute node to an element while building a tree.
func (f *File) AppendAttr(element, attr NodeID) {
	el, a := f.Node(element), f.Node(attr)
	if el == nil || a == nil {
		return
	}
	a.Parent = element
	el.Attrs = append(el.Attrs, attr)
}

// Touch marks a node for re-rendering. The program root is never touched:
// its changes are expressed as insertions and deletions around its children.
func (f *File) Touch(id NodeID) {
	n := f.Node(id)
	if n == nil || n.Kind == KindProgram {
		return
	}
	n.Touched = true
}

// IndexOf returns the position of child in parent's children, or -1.
func (f *File) IndexOf(parent, child NodeID) int {
	p := f.Node(parent)
	if p == nil {
		return -1
	}
	return slices.Index(p.Children, child)
}

// InsertChild inserts child into parent's children at index (clamped to
// the valid range) and touches the parent.
func (f *File) InsertChild(parent NodeID, index int, child NodeID) {
	p, c := f.Node(parent), f.Node(child)
	if p == nil || c == nil {
		return
	}
	if c.Parent != NoNode {
		f.detach(child)
		p = f.Node(parent)
	}
	index = max(0, min(index, len(p.Children)))
	p.Children = slices.Insert(p.Children, index, child)
	f.Node(child).Parent = parent
	f.Touch(parent)
}

// RemoveChild detaches a node from its parent and touches the parent.
// Removing an original node records it in Removed so the printer can
// delete its text.
func (f *File) RemoveChild(child NodeID) {
	c := f.Node(child)
	if c == nil || c.Parent == NoNode {
		return
	}
	parent := c.Parent
	f.detach(child)
	if !f.Node(child).IsSynthetic() {
		f.Removed = append(f.Removed, Removal{Node: child, Parent: parent})
	}
	f.Touch(parent)
}

// MoveChildren transfers every child of from to to, appending after any
// children to already has. The original children region travels with them.
// Both nodes are touched.
func (f *File) MoveChildren(from, to NodeID) {
	src, dst := f.Node(from), f.Node(to)
	if src == nil || dst == nil || from == to {
		return
	}
	moved := src.Children
	src.Children = nil
	if len(dst.Children) == 0 && src.InnerSpan.IsValid() {
		dst.InnerSpan = src.InnerSpan
	}
	src.InnerSpan = NoSpan
	for _, id := range moved {
		if n := f.Node(id); n != nil {
			n.Parent = to
		}
	}
	dst.Children = append(dst.Children, moved...)
	f.Touch(from)
	f.Touch(to)
}

// detach removes child from its parent's children without recording it.
func (f *File) detach(child NodeID) {
	c := f.Node(child)
	p := f.Node(c.Parent)
	if p != nil {
		if idx := slices.Index(p.Children, child); idx >= 0 {
			p.Children = slices.Delete(p.Children, idx, idx+1)
		} else if idx := slices.Index(p.Attrs, child); idx >= 0 {
			p.Attrs = slices.Delete(p.Attrs, idx, idx+1)
		}
	}
	c.Parent = NoNode
}

// Ancestors returns the chain of parents from id's parent up to the root.
func (f *File) Ancestors(id NodeID) []NodeID {
	var out []NodeID
	n := f.Node(id)
	for n != nil && n.Parent != NoNode {
		out = append(out, n.Parent)
		n = f.Node(n.Parent)
	}
	return out
}
