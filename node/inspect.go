package node

import "strings"

// AnyUnions reports whether the node or any of its descendants has a
// union list type.
func AnyUnions(n *Node) bool {
	if n.Kind() == KindList && strings.Contains(n.Type(), "Union[") {
		return true
	}

	for _, child := range n.Children {
		if AnyUnions(child) {
			return true
		}
	}

	return false
}

// AnyUntyped reports whether the node or any of its descendants
// carries the untyped placeholder.
func AnyUntyped(n *Node) bool {
	if n.Type() == "any" {
		return true
	}

	for _, child := range n.Children {
		if AnyUntyped(child) {
			return true
		}
	}

	return false
}

// AnyAliases reports whether the node or any of its descendants
// recorded an original source key.
func AnyAliases(n *Node) bool {
	if n.OriginalName != "" {
		return true
	}

	for _, child := range n.Children {
		if AnyAliases(child) {
			return true
		}
	}

	return false
}
