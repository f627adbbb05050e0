// Package jsx locates and rewrites JSX element usages.
package jsx

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/yaklabco/jsxmigrate/pkg/jsast"
)

var (
	// ErrStructuralMismatch is returned when a usage does not have the
	// shape an operation expects (not an element, or a paired element
	// without a closing tag).
	ErrStructuralMismatch = errors.New("structural mismatch")

	// ErrAlreadyWrapped is returned by WrapChildren when the usage's only
	// child is already the wrapper.
	ErrAlreadyWrapped = errors.New("children already wrapped")
)

// FindUsages returns every element whose reference name is exactly
// localName, in document order. Member expressions (Card.Section) do not
// match their object (Card). The result is built fresh on every call.
func FindUsages(file *jsast.File, localName string) []jsast.NodeID {
	if localName == "" {
		return nil
	}
	return file.FindAll(file.Root, func(n *jsast.Node) bool {
		return n.Kind == jsast.KindElement && n.Name == localName
	})
}

// RenameTag replaces the reference name at the opening and, if present,
// closing tag of usage. Attributes and children are untouched.
func RenameTag(file *jsast.File, usage jsast.NodeID, newName string) error {
	n, err := element(file, usage)
	if err != nil {
		return err
	}
	if n.Name == newName {
		return nil
	}

	n.Name = newName
	file.Touch(usage)

	return nil
}

// WrapChildren moves every child of usage into a new wrapper element and
// makes the wrapper the usage's only child. A self-closing usage becomes
// an open/close pair holding an empty wrapper.
//
// Returns the wrapper handle, or ErrAlreadyWrapped when the usage's only
// non-blank child is already an element named wrapperName.
func WrapChildren(file *jsast.File, usage jsast.NodeID, wrapperName string) (jsast.NodeID, error) {
	n, err := element(file, usage)
	if err != nil {
		return jsast.NoNode, err
	}
	if wrapperName == "" {
		return jsast.NoNode, fmt.Errorf("%w: empty wrapper name", ErrStructuralMismatch)
	}
	if isWrapped(file, n, wrapperName) {
		return jsast.NoNode, ErrAlreadyWrapped
	}

	wrapper := NewElement(file, wrapperName)
	file.MoveChildren(usage, wrapper)
	file.InsertChild(usage, 0, wrapper)
	file.Node(usage).SelfClosing = false

	return wrapper, nil
}

// NewElement builds a detached synthetic element with the given children.
func NewElement(file *jsast.File, name string, children ...jsast.NodeID) jsast.NodeID {
	id := file.NewNode(jsast.KindElement)
	file.Node(id).Name = name
	for _, child := range children {
		file.InsertChild(id, len(file.Node(id).Children), child)
	}
	return id
}

func element(file *jsast.File, usage jsast.NodeID) (*jsast.Node, error) {
	n := file.Node(usage)
	if n == nil || n.Kind != jsast.KindElement {
		return nil, fmt.Errorf("%w: node %d is not an element", ErrStructuralMismatch, usage)
	}
	if !n.IsSynthetic() && !n.SelfClosing && n.CloseStart < 0 {
		return nil, fmt.Errorf("%w: <%s> has no closing tag", ErrStructuralMismatch, n.Name)
	}
	return n, nil
}

func isWrapped(file *jsast.File, n *jsast.Node, wrapperName string) bool {
	var sole jsast.NodeID
	for _, child := range n.Children {
		if isBlank(file, child) {
			continue
		}
		if sole != jsast.NoNode {
			return false
		}
		sole = child
	}
	c := file.Node(sole)
	return c != nil && c.Kind == jsast.KindElement && c.Name == wrapperName
}

func isBlank(file *jsast.File, id jsast.NodeID) bool {
	n := file.Node(id)
	if n.Kind != jsast.KindText {
		return false
	}
	return len(bytes.TrimSpace(file.Text(id))) == 0
}
