package adapter

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Save serializes a populated instance of a generated schema type back
// to disk, dispatching on the target extension. The struct tags on
// generated types carry the original raw keys, so fields round-trip
// under the same spelling they were read from.
func Save(v any, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return errors.Wrapf(err, "creating parent directory of %s", path)
	}

	switch {
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "cannot save %s: supported extensions are .ini, .json, .yaml", path)
	case hasExt(path, ".ini"):
		return saveINI(v, path)
	case hasExt(path, ".json"):
		return saveJSON(v, path)
	case hasExt(path, ".yaml"):
		return saveYAML(v, path)
	}
}

func saveJSON(v any, path string) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encoding %s", path)
	}

	return writeOut(append(raw, '\n'), path)
}

func saveYAML(v any, path string) error {
	raw, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", path)
	}

	return writeOut(raw, path)
}

// saveINI dumps the instance by alias into a generic mapping first;
// only one nesting level (sections holding scalar fields) can be
// represented.
func saveINI(v any, path string) error {
	dump, err := aliasDump(v)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", path)
	}

	file := ini.Empty()

	for _, sectionName := range sortedKeys(dump) {
		fields, ok := dump[sectionName].(map[string]any)
		if !ok {
			return errors.Newf("encoding %s: top-level field %q is not a section", path, sectionName)
		}

		section, err := file.NewSection(sectionName)
		if err != nil {
			return errors.Wrapf(err, "encoding %s", path)
		}

		for _, key := range sortedKeys(fields) {
			if _, err := section.NewKey(key, formatINIValue(fields[key])); err != nil {
				return errors.Wrapf(err, "encoding %s", path)
			}
		}
	}

	if err := file.SaveTo(path); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}

	return nil
}

// aliasDump converts a generated struct into a plain mapping keyed by
// the tag names, i.e. the original raw keys.
func aliasDump(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var dump map[string]any
	if err := json.Unmarshal(raw, &dump); err != nil {
		return nil, err
	}

	return dump, nil
}

func formatINIValue(v any) string {
	switch val := v.(type) {
	default:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		// integers survive the alias dump as floats without a
		// fractional part; -1 precision renders them back bare
		return strconv.FormatFloat(val, 'f', -1, 64)
	case nil:
		return ""
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

func writeOut(raw []byte, path string) error {
	if err := os.WriteFile(path, raw, filePerm); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}

	return nil
}
