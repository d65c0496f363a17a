package main

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"schema-generator/internal/gen"
	"schema-generator/internal/parser"
	"schema-generator/node"
	"schema-generator/options"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "schema-generator",
		Short: "Generate typed Go schemas from configuration files",
		Long: `schema-generator infers a typed schema from INI, JSON, and YAML
configuration files and emits Go struct declarations with Load accessors.`,
		SilenceUsage: true,
	}

	root.AddCommand(newGenCmd())

	return root
}

func newGenCmd() *cobra.Command {
	var (
		settingsPath string
		outputDir    string
		packageName  string
		workers      int
		dumpTree     bool
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "gen <input>",
		Short: "Generate schemas for a configuration file or directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveOptions(cmd, settingsPath, packageName, workers, dumpTree)
			if err != nil {
				return err
			}

			log, err := newLogger(verbose)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			return runGen(args[0], outputDir, opts, log.Sugar())
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "./generated", "output directory for generated files")
	cmd.Flags().StringVarP(&packageName, "package", "p", "", "package name of generated files")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent workers in directory mode")
	cmd.Flags().BoolVar(&dumpTree, "dump-tree", false, "print the inferred schema tree")
	cmd.Flags().StringVarP(&settingsPath, "settings", "s", "", "YAML settings file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	return cmd
}

// resolveOptions layers settings: defaults, then the settings file, then
// any flag the user set explicitly.
func resolveOptions(cmd *cobra.Command, settingsPath, packageName string, workers int, dumpTree bool) (options.Options, error) {
	opts := options.Defaults()

	if settingsPath != "" {
		loaded, err := options.Load(settingsPath)
		if err != nil {
			return opts, err
		}

		opts = loaded
	}

	if cmd.Flags().Changed("package") {
		opts.PackageName = packageName
	}

	if cmd.Flags().Changed("workers") {
		opts.Workers = workers
	}

	if cmd.Flags().Changed("dump-tree") {
		opts.DumpTree = dumpTree
	}

	return opts, opts.Validate()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "initializing logger")
	}

	return log, nil
}

func runGen(input, outputDir string, opts options.Options, log *zap.SugaredLogger) error {
	info, err := os.Stat(input)
	if err != nil {
		return errors.Wrapf(err, "inspecting %s", input)
	}

	if info.IsDir() {
		return runGenDir(input, outputDir, opts, log)
	}

	return runGenFile(input, outputDir, opts, log)
}

func runGenFile(input, outputDir string, opts options.Options, log *zap.SugaredLogger) error {
	output := filepath.Join(outputDir, parser.RootName(input)+".go")

	root, err := gen.GenerateFile(input, output, opts.PackageName)
	if err != nil {
		return err
	}

	if opts.DumpTree {
		spew.Dump(root)
	}

	if node.AnyUntyped(root) {
		log.Warnw("some fields have no inferable type, check the TODO markers", "input", input)
	}

	if node.AnyUnions(root) {
		log.Warnw("some lists mix element types and were generated as []any", "input", input)
	}

	if node.AnyAliases(root) {
		log.Infow("some keys were renamed, originals are kept in struct tags", "input", input)
	}

	log.Infow("generated", "input", input, "output", output)

	return nil
}

func runGenDir(input, outputDir string, opts options.Options, log *zap.SugaredLogger) error {
	if opts.DumpTree {
		log.Warnw("tree dump is only available for single files", "input", input)
	}

	batch := gen.Batch{Workers: opts.Workers, Log: log}

	report, err := batch.GenerateDir(input, outputDir, opts.PackageName)
	log.Infow("batch complete",
		"generated", report.Generated(),
		"skipped", report.Skipped(),
		"failed", len(report.Failures()))

	for _, failure := range report.Failures() {
		log.Errorw("file failed", "input", failure.Path, "error", failure.Err)
	}

	return err
}
