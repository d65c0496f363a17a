package gen

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"schema-generator/adapter"
	"schema-generator/internal/diagnostic"
	"schema-generator/internal/ident"
	"schema-generator/internal/parser"
	"schema-generator/node"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// DefaultWorkers bounds batch parallelism when no worker count is given.
const DefaultWorkers = 4

// GenerateFile infers the schema of a single configuration file and writes
// the generated source to output. The inferred tree is returned so callers
// can inspect or dump it. Unsupported input formats fail with
// adapter.ErrUnsupportedFormat.
func GenerateFile(input, output, pkg string) (*node.Node, error) {
	root, err := parser.ParseFile(input)
	if err != nil {
		return nil, err
	}

	src, err := Generate(root, pkg, filepath.Base(input))
	if err != nil {
		return nil, errors.Wrapf(err, "generating %s", input)
	}

	if err := os.MkdirAll(filepath.Dir(output), dirPerm); err != nil {
		return nil, errors.Wrap(err, "creating output directory")
	}

	if err := os.WriteFile(output, src, filePerm); err != nil {
		return nil, errors.Wrapf(err, "writing %s", output)
	}

	return root, nil
}

// Batch generates schemas for every recognized configuration file under a
// directory tree, mirroring its layout in the output directory.
type Batch struct {
	// Workers caps how many files are generated concurrently.
	Workers int
	Log     *zap.SugaredLogger
}

func (b Batch) workers() int {
	if b.Workers > 0 {
		return b.Workers
	}

	return DefaultWorkers
}

func (b Batch) log() *zap.SugaredLogger {
	if b.Log != nil {
		return b.Log
	}

	return zap.NewNop().Sugar()
}

// GenerateDir walks inputDir, generates source for every file with a
// recognized extension, and writes the results under outputDir with the
// same directory structure. Files that fail are reported and do not stop
// the rest of the batch. The returned report is valid even when the error
// is non-nil.
func (b Batch) GenerateDir(inputDir, outputDir, pkg string) (*diagnostic.Report, error) {
	report := &diagnostic.Report{}

	if err := adapter.CheckDir(inputDir); err != nil {
		return report, err
	}

	inputs, err := b.prepareTree(inputDir, outputDir, pkg, report)
	if err != nil {
		return report, err
	}

	grp := errgroup.Group{}
	grp.SetLimit(b.workers())

	for _, in := range inputs {
		in := in
		grp.Go(func() error {
			out := b.outputPath(inputDir, outputDir, in)
			filePkg := b.packageFor(inputDir, pkg, in)

			if _, err := GenerateFile(in, out, filePkg); err != nil {
				report.AddFailure(in, err)
				b.log().Errorw("generation failed", "input", in, "error", err)

				return nil
			}

			report.AddGenerated()
			b.log().Infow("generated", "input", in, "output", out)

			return nil
		})
	}

	// Workers never return errors; failures are collected in the report.
	_ = grp.Wait()

	return report, report.Err()
}

// prepareTree creates the mirrored output directories with their package
// marker files and returns the recognized input files. Directory setup is
// serial so the concurrent workers never race on os.MkdirAll.
func (b Batch) prepareTree(inputDir, outputDir, pkg string, report *diagnostic.Report) ([]string, error) {
	var inputs []string

	err := filepath.WalkDir(inputDir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			return b.prepareDir(inputDir, outputDir, pkg, path)
		}

		if !adapter.Recognized(path) {
			report.AddSkipped()
			b.log().Debugw("skipping unrecognized file", "input", path)

			return nil
		}

		inputs = append(inputs, path)

		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking %s", inputDir)
	}

	return inputs, nil
}

func (b Batch) prepareDir(inputDir, outputDir, pkg, path string) error {
	rel, err := filepath.Rel(inputDir, path)
	if err != nil {
		return err
	}

	dir := filepath.Join(outputDir, rel)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return errors.Wrapf(err, "creating %s", dir)
	}

	dirPkg := packageName(pkg, rel)
	marker := "// Package " + dirPkg + " contains generated configuration schemas.\npackage " + dirPkg + "\n"

	return os.WriteFile(filepath.Join(dir, "doc.go"), []byte(marker), filePerm)
}

func (b Batch) outputPath(inputDir, outputDir, input string) string {
	rel, err := filepath.Rel(inputDir, input)
	if err != nil {
		rel = filepath.Base(input)
	}

	return filepath.Join(outputDir, filepath.Dir(rel), parser.RootName(input)+".go")
}

func (b Batch) packageFor(inputDir, pkg, input string) string {
	rel, err := filepath.Rel(inputDir, input)
	if err != nil {
		return pkg
	}

	return packageName(pkg, filepath.Dir(rel))
}

// packageName resolves the package of a mirrored directory. The tree root
// uses the configured package; subdirectories take their own name.
func packageName(pkg, rel string) string {
	if rel == "." || rel == "" {
		return pkg
	}

	name := ident.FieldName(filepath.Base(rel))
	if name == "" {
		return pkg
	}

	return strings.ReplaceAll(name, "_", "")
}
