package tsparse

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// nodeText extracts the source text covered by a tree-sitter node.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// lineOf returns the 1-based source line a node starts on.
func lineOf(node *sitter.Node) int {
	return int(node.StartPosition().Row) + 1
}

// namedChildren returns all named children of a node.
func namedChildren(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	count := int(node.NamedChildCount())
	children := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		children = append(children, node.NamedChild(uint(i)))
	}
	return children
}

// findChildByKind finds the first child node (named or anonymous) with the
// given kind.
func findChildByKind(node *sitter.Node, kind string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

// hasChildOfKind reports whether the node has a direct child of the given
// kind. Used for anonymous tokens such as "?" and "readonly".
func hasChildOfKind(node *sitter.Node, kind string) bool {
	return findChildByKind(node, kind) != nil
}

// findChildrenByKind finds all direct children with the given kind.
func findChildrenByKind(node *sitter.Node, kind string) []*sitter.Node {
	var results []*sitter.Node
	if node == nil {
		return results
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == kind {
			results = append(results, child)
		}
	}
	return results
}

// annotationType unwraps a type_annotation (or return-type) node to the type
// it carries, returning the simplified type text. The annotation node itself
// includes the leading ":" token.
func annotationType(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	if node.NamedChildCount() > 0 {
		return simplifyTypeText(nodeText(node.NamedChild(0), source))
	}
	return simplifyTypeText(nodeText(node, source))
}
