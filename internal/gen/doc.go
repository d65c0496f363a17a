// Package gen renders inferred schema trees as Go source files.
//
// Generation approach uses text/template + go/format for readable,
// deterministic Go code. Each configuration file produces one source file
// holding the struct declarations plus Load accessors that decode a raw
// mapping or a file into the root struct.
//
// Batch mode mirrors a directory tree of configuration files, generating
// files concurrently and collecting per-file failures instead of stopping
// at the first one.
package gen
