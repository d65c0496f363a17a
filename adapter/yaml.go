package adapter

import (
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// YAML loads .yaml files. Decoding goes through yaml.Node rather than
// a plain map so the source key order survives.
type YAML struct{}

func (YAML) Parsable(path string) bool {
	return hasExt(path, ".yaml")
}

func (YAML) Load(path string) (Map, error) {
	if err := CheckFile(path); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}

	// an empty file is an empty schema, not a failure
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return Map{}, nil
	}

	v, err := convertYAMLNode(doc.Content[0])
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}

	if v == nil {
		return Map{}, nil
	}

	m, ok := v.(Map)
	if !ok {
		return nil, errors.Newf("decoding %s: top-level YAML value must be a mapping", path)
	}

	return m, nil
}

func convertYAMLNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	default:
		return nil, errors.Newf("unsupported YAML node kind %d at line %d", n.Kind, n.Line)

	case yaml.AliasNode:
		return convertYAMLNode(n.Alias)

	case yaml.MappingNode:
		out := make(Map, 0, len(n.Content)/2)

		for i := 0; i+1 < len(n.Content); i += 2 {
			val, err := convertYAMLNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}

			out = append(out, Pair{Key: n.Content[i].Value, Value: val})
		}

		return out, nil

	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))

		for _, item := range n.Content {
			val, err := convertYAMLNode(item)
			if err != nil {
				return nil, err
			}

			out = append(out, val)
		}

		return out, nil

	case yaml.ScalarNode:
		return convertYAMLScalar(n)
	}
}

func convertYAMLScalar(n *yaml.Node) (any, error) {
	switch n.Tag {
	default:
		return n.Value, nil

	case "!!null":
		return nil, nil

	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "bad bool %q at line %d", n.Value, n.Line)
		}

		return b, nil

	case "!!int":
		// base 0 accepts the 0x/0o forms YAML allows
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "bad integer %q at line %d", n.Value, n.Line)
		}

		return i, nil

	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "bad float %q at line %d", n.Value, n.Line)
		}

		return f, nil
	}
}
