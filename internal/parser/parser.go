// Package parser builds the schema node tree from the generic value
// tree produced by the format adapters.
//
// Parsing is a single recursive descent pass with no backtracking. The
// only carried state is the dedup registry, one per top-level parse
// call, threaded by reference down the recursion; parallel parses of
// different files therefore share nothing.
package parser

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"schema-generator/adapter"
	"schema-generator/internal/ident"
	"schema-generator/node"
	"schema-generator/primitive"
)

// Parse builds the root schema node for one config source. The root
// name and class type derive from name, usually the input's base
// filename.
func Parse(name string, data adapter.Map) (*node.Node, error) {
	rootName := ident.FieldName(name)
	rootType := ident.ClassName(name)

	reg := registry{}

	children, err := childrenFromMap(data, reg, rootType)
	if err != nil {
		return nil, err
	}

	return node.New(rootName, rootType, children, originalIfDiffers(name, rootName))
}

// ParseFile loads the file at path with the matching format adapter
// and parses it into a schema tree. The root name seed is the base
// filename up to the first dot.
func ParseFile(path string) (*node.Node, error) {
	if err := adapter.CheckFile(path); err != nil {
		return nil, err
	}

	a := adapter.ForPath(path)
	if a == nil {
		return nil, errors.Wrapf(adapter.ErrUnsupportedFormat, "%s: supported extensions are .ini, .json, .yaml", path)
	}

	data, err := a.Load(path)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}

	root, err := Parse(RootName(path), data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}

	return root, nil
}

// RootName returns the schema name seed for an input path: the base
// filename truncated at the first dot.
func RootName(path string) string {
	base := filepath.Base(path)
	if idx := strings.IndexByte(base, '.'); idx >= 0 {
		base = base[:idx]
	}

	return base
}

// childrenFromMap creates one node per key of a mapping level. Every
// newly built node is run through the dedup registry; parentType is
// the class type of the enclosing object and becomes the rename prefix
// on a collision.
func childrenFromMap(data adapter.Map, reg registry, parentType string) ([]*node.Node, error) {
	var children []*node.Node

	for _, pair := range data {
		fieldName := ident.FieldName(pair.Key)
		originalName := originalIfDiffers(pair.Key, fieldName)

		switch value := pair.Value.(type) {
		case []any:
			babies, err := childrenFromList(value, reg, fieldName)
			if err != nil {
				return nil, err
			}

			child, err := node.NewList(fieldName, babies, originalName)
			if err != nil {
				return nil, err
			}

			children = append(children, child)

		case adapter.Map:
			// another mapping level below this field
			fieldType := ident.ClassName(pair.Key)

			babies, err := childrenFromMap(value, reg, fieldType)
			if err != nil {
				return nil, err
			}

			child, err := node.New(fieldName, fieldType, babies, originalName)
			if err != nil {
				return nil, err
			}

			reg.checkAndAdjust(child, parentType)
			children = append(children, child)

		default:
			child, err := node.New(fieldName, primitive.TypeName(value), nil, originalName)
			if err != nil {
				return nil, err
			}

			child.Default = value
			reg.checkAndAdjust(child, parentType)
			children = append(children, child)
		}
	}

	return children, nil
}

// childrenFromList creates one sibling node per list element, all
// named "<field>_item". Mapping elements have no owning field to name
// their type after, so the seed is "<Field>ListItem" and their dedup
// check runs with an empty parent prefix.
func childrenFromList(items []any, reg registry, fieldName string) ([]*node.Node, error) {
	elementName := ident.FieldName(fieldName + "_item")

	var children []*node.Node

	for _, element := range items {
		switch value := element.(type) {
		case []any:
			babies, err := childrenFromList(value, reg, fieldName)
			if err != nil {
				return nil, err
			}

			child, err := node.NewList(elementName, babies, "")
			if err != nil {
				return nil, err
			}

			children = append(children, child)

		case adapter.Map:
			elementType := ident.ClassName(fieldName + "ListItem")

			babies, err := childrenFromMap(value, reg, elementType)
			if err != nil {
				return nil, err
			}

			child, err := node.New(elementName, elementType, babies, "")
			if err != nil {
				return nil, err
			}

			reg.checkAndAdjust(child, "")
			children = append(children, child)

		default:
			child, err := node.New(elementName, primitive.TypeName(value), nil, "")
			if err != nil {
				return nil, err
			}

			child.Default = value
			children = append(children, child)
		}
	}

	return children, nil
}

func originalIfDiffers(raw, sanitized string) string {
	if raw == sanitized {
		return ""
	}

	return raw
}
