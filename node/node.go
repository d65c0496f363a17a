// Package node defines the schema tree built by the parser and
// consumed by the code emitter.
//
// A Node represents one field or object level inferred from the input
// data. Child order is the source declaration order and is preserved
// exactly; structural equality deliberately ignores it. Nodes are
// created once during a single parse pass and mutated afterwards only
// by the deduplication step (type name, duplicate and adjustment
// flags).
package node

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"schema-generator/primitive"
	"schema-generator/utils"
)

// ErrInvalidIdentifier is returned when a sanitized name is empty or
// not usable as an identifier. It aborts the whole parse.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// Node is one field or object level of the schema tree.
type Node struct {
	// Name is the sanitized field identifier, unique among siblings.
	Name string
	// Children holds the child nodes in source order; empty means a
	// scalar leaf.
	Children []*Node
	// Default is the scalar value observed in the source file, nil
	// for composite nodes and null values. The emitter turns it into
	// a pre-populated default in the generated Load function.
	Default any
	// OriginalName is the raw source key, set only when it differs
	// from Name. It drives the alias tags in generated code.
	OriginalName string
	// IsDuplicate marks a node whose shape matches a previously seen
	// class; the emitter skips re-declaring it.
	IsDuplicate bool
	// NeedsAdjustment marks a node whose type name needed a
	// counter-based disambiguation and should be reviewed manually.
	NeedsAdjustment bool

	kind      KindEnum
	classType string
	// baseType is the originally inferred type name, recorded at
	// construction and never changed by renames. Structural equality
	// compares base types so disambiguated siblings still match their
	// registered shape.
	baseType string
}

// New creates a value node and validates both names.
func New(name, classType string, children []*Node, originalName string) (*Node, error) {
	if !isIdentifier(name) {
		return nil, errors.Wrapf(ErrInvalidIdentifier, "%q is not a valid field name (source key %q)", name, originalName)
	}

	if !isIdentifier(classType) && !isListExpr(classType) {
		return nil, errors.Wrapf(ErrInvalidIdentifier, "%q is not a valid class name", classType)
	}

	return &Node{
		Name:         name,
		Children:     children,
		OriginalName: originalName,
		kind:         KindValue,
		classType:    classType,
		baseType:     classType,
	}, nil
}

// NewList creates a list node. Its type expression is computed from
// the children, so no class type is stored.
func NewList(name string, children []*Node, originalName string) (*Node, error) {
	if !isIdentifier(name) {
		return nil, errors.Wrapf(ErrInvalidIdentifier, "%q is not a valid field name (source key %q)", name, originalName)
	}

	return &Node{
		Name:         name,
		Children:     children,
		OriginalName: originalName,
		kind:         KindList,
	}, nil
}

// Kind returns the node kind.
func (n *Node) Kind() KindEnum {
	return n.kind
}

// Type returns the type expression of the node.
//
// For value nodes this is the stored (possibly renamed) class type.
// For list nodes it is computed: "list" when empty, "list<T>" when all
// children share one type, and "list<Union[T1, T2, ...]>" for mixed
// element types, de-duplicated in insertion order.
func (n *Node) Type() string {
	if n.kind != KindList {
		return n.classType
	}

	if utils.IsEmpty(n.Children) {
		return "list"
	}

	types := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		types = append(types, child.Type())
	}

	types = utils.Dedupe(types)
	if single, ok := utils.First(types); ok && len(types) == 1 {
		return "list<" + single + ">"
	}

	return "list<Union[" + strings.Join(types, ", ") + "]>"
}

// Rename replaces the class type after a collision. The base type is
// kept so the node still compares equal to its registered shape.
func (n *Node) Rename(classType string) {
	n.classType = classType
}

// AdoptTypeOf marks the node as a duplicate of an existing node and
// takes over its (possibly already renamed) class type.
func (n *Node) AdoptTypeOf(existing *Node) {
	n.classType = existing.Type()
	n.IsDuplicate = true
}

// SameShape reports structural equality: same inferred base type, same
// field name, and pairwise equal children when both sides are sorted
// by child name. Field order never affects the result.
//
// Sibling duplicates of the same field name at one level are undefined
// input; the sort order between them is unspecified.
func (n *Node) SameShape(other *Node) bool {
	if other == nil {
		return false
	}

	if n.equalityType() != other.equalityType() || n.Name != other.Name || len(n.Children) != len(other.Children) {
		return false
	}

	left := sortedByName(n.Children)
	right := sortedByName(other.Children)

	for i := range left {
		if !left[i].SameShape(right[i]) {
			return false
		}
	}

	return true
}

// equalityType is the type name used for structural comparison. Value
// nodes compare on the pre-rename base type; list nodes compare on
// their computed expression.
func (n *Node) equalityType() string {
	if n.kind == KindList {
		return n.Type()
	}

	return n.baseType
}

// IsComposite returns true when the node declares its own class, i.e.
// it is a value node with at least one child.
func (n *Node) IsComposite() bool {
	return n.kind == KindValue && len(n.Children) > 0
}

// IsPrimitiveType returns true when the node's current type is a
// primitive name or list expression, which is never registered for
// deduplication.
func (n *Node) IsPrimitiveType() bool {
	return primitive.IsTypeName(n.Type())
}

func sortedByName(children []*Node) []*Node {
	out := make([]*Node, len(children))
	copy(out, children)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_':
		case 'a' <= r && r <= 'z':
		case 'A' <= r && r <= 'Z':
		case '0' <= r && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}

	return true
}

func isListExpr(s string) bool {
	return s == "list" || (strings.HasPrefix(s, "list<") && strings.HasSuffix(s, ">"))
}
