// Package adapter converts native configuration files (INI, JSON,
// YAML) into a generic ordered key/value tree and back.
//
// The ordered Map type exists because schema inference is
// order-significant: field declaration order in the generated code is
// the key order of the source file. Generated code also imports this
// package at runtime, through FileToMap and Save, so it lives outside
// internal/.
package adapter

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

// Error taxonomy for the input boundary.
var (
	// ErrNotFound means the input path does not exist.
	ErrNotFound = errors.New("path does not exist")
	// ErrWrongPathKind means a file was expected but a directory was
	// found, or vice versa.
	ErrWrongPathKind = errors.New("wrong path kind")
	// ErrUnsupportedFormat means no adapter recognizes the extension.
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// Pair is one key/value entry of a mapping level.
type Pair struct {
	Key   string
	Value any
}

// Map is an ordered mapping; the pair order is the source order.
// Values are Map, []any, or one of the scalar types bool, int64,
// float64, string, or nil for explicit nulls.
type Map []Pair

// Adapter loads one native config format into the generic tree.
type Adapter interface {
	// Parsable reports whether the file at path is handled by this
	// adapter, by exact extension match.
	Parsable(path string) bool
	// Load reads the file into the generic ordered tree. It fails
	// with ErrNotFound when the path is missing.
	Load(path string) (Map, error)
}

// adapters is the fixed-priority list tried in order.
var adapters = []Adapter{INI{}, JSON{}, YAML{}}

// ForPath returns the adapter handling the file at path, or nil when
// the extension is not recognized.
func ForPath(path string) Adapter {
	for _, a := range adapters {
		if a.Parsable(path) {
			return a
		}
	}

	return nil
}

// Recognized reports whether any adapter handles the file at path.
func Recognized(path string) bool {
	return ForPath(path) != nil
}

// Load dispatches on the extension and loads the file into the
// generic ordered tree.
func Load(path string) (Map, error) {
	a := ForPath(path)
	if a == nil {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%s: supported extensions are .ini, .json, .yaml", path)
	}

	return a.Load(path)
}

// FileToMap reads a config file into a plain mapping, dispatching on
// the extension. Generated Load<Root>FromFile functions delegate here.
func FileToMap(path string) (map[string]any, error) {
	data, err := Load(path)
	if err != nil {
		return nil, err
	}

	plain, _ := toPlain(data).(map[string]any)
	if plain == nil {
		plain = map[string]any{}
	}

	return plain, nil
}

// CheckFile validates that path exists and is a regular file.
func CheckFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrNotFound, "file %s", path)
		}

		return errors.Wrapf(err, "stat %s", path)
	}

	if info.IsDir() {
		return errors.Wrapf(ErrWrongPathKind, "%s is a directory, not a file", path)
	}

	return nil
}

// CheckDir validates that path exists and is a directory.
func CheckDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrNotFound, "directory %s", path)
		}

		return errors.Wrapf(err, "stat %s", path)
	}

	if !info.IsDir() {
		return errors.Wrapf(ErrWrongPathKind, "%s is a file, not a directory", path)
	}

	return nil
}

// toPlain strips the ordering from the generic tree, producing plain
// maps and slices for consumption by generated loaders.
func toPlain(v any) any {
	switch val := v.(type) {
	default:
		return val
	case Map:
		out := make(map[string]any, len(val))
		for _, p := range val {
			out[p.Key] = toPlain(p.Value)
		}

		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = toPlain(e)
		}

		return out
	}
}

func hasExt(path, ext string) bool {
	return strings.HasSuffix(path, ext)
}
