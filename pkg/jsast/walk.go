package jsast

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(id NodeID, n *Node) error

// Walk performs a pre-order traversal starting at root. An element's
// attributes are visited before its children, which is document order.
// The callback must not add nodes to the arena.
func (f *File) Walk(root NodeID, walkFunc WalkFunc) error {
	n := f.Node(root)
	if n == nil {
		return nil
	}

	if err := walkFunc(root, n); err != nil {
		return err
	}

	for _, attr := range n.Attrs {
		if err := f.Walk(attr, walkFunc); err != nil {
			return err
		}
	}
	for _, child := range n.Children {
		if err := f.Walk(child, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// FindAll returns a freshly built slice of every node under root (inclusive)
// matching the predicate, in document order.
func (f *File) FindAll(root NodeID, predicate func(n *Node) bool) []NodeID {
	var result []NodeID

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	f.Walk(root, func(id NodeID, n *Node) error {
		if predicate(n) {
			result = append(result, id)
		}
		return nil
	})

	return result
}

// FindByKind returns all nodes of the specified kind under root.
func (f *File) FindByKind(root NodeID, kind NodeKind) []NodeID {
	return f.FindAll(root, func(n *Node) bool {
		return n.Kind == kind
	})
}
