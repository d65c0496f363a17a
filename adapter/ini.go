package adapter

import (
	"github.com/cockroachdb/errors"
	"gopkg.in/ini.v1"

	"schema-generator/primitive"
)

// INI loads .ini files. INI has exactly one nesting level (sections
// holding fields) and every raw value is textually a string, so scalar
// types are inferred lexically via primitive.InferValue.
type INI struct{}

func (INI) Parsable(path string) bool {
	return hasExt(path, ".ini")
}

func (INI) Load(path string) (Map, error) {
	if err := CheckFile(path); err != nil {
		return nil, err
	}

	file, err := ini.Load(path)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}

	var out Map

	for _, section := range file.Sections() {
		// the DEFAULT section is always skipped
		if section.Name() == ini.DefaultSection {
			continue
		}

		fields := make(Map, 0, len(section.Keys()))
		for _, key := range section.Keys() {
			fields = append(fields, Pair{Key: key.Name(), Value: primitive.InferValue(key.Value())})
		}

		out = append(out, Pair{Key: section.Name(), Value: fields})
	}

	return out, nil
}
