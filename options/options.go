// Package options holds the run settings of the schema generator and their
// optional YAML settings file.
package options

import (
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidOptions reports a settings value outside its allowed range.
var ErrInvalidOptions = errors.New("invalid options")

// Options configures a generation run.
type Options struct {
	// PackageName names the package of generated files at the output root.
	PackageName string `yaml:"package"`
	// Workers caps concurrent file generation in directory mode.
	Workers int `yaml:"workers"`
	// DumpTree prints the inferred schema tree instead of nothing on success.
	DumpTree bool `yaml:"dump_tree"`
}

// Defaults returns the options used when no settings file is given.
func Defaults() Options {
	return Options{
		PackageName: "config",
		Workers:     4,
	}
}

// Load reads a YAML settings file on top of the defaults. Keys absent from
// the file keep their default values.
func Load(path string) (Options, error) {
	opts := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, errors.Wrapf(err, "reading settings %s", path)
	}

	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, errors.Wrapf(err, "parsing settings %s", path)
	}

	return opts, opts.Validate()
}

// Validate checks the options for impossible values.
func (o Options) Validate() error {
	if o.PackageName == "" {
		return errors.Wrap(ErrInvalidOptions, "package name must not be empty")
	}

	if o.Workers < 1 {
		return errors.Wrap(ErrInvalidOptions, "workers must be at least 1")
	}

	return nil
}
