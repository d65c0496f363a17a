// Package main provides the CLI entrypoint for schema-generator.
//
// schema-generator infers typed schemas from INI, JSON, and YAML
// configuration files and emits Go struct declarations with Load accessors
// for them. It handles single files as well as whole directory trees.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
