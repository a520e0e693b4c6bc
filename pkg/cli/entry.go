// Package cli implements the kindgen command line: expand kind
// definition files into generated source, with an optional sqlite
// expansion cache and colored diagnostics on terminals.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/funvibe/kindgen/internal/cache"
	"github.com/funvibe/kindgen/internal/codegen"
	"github.com/funvibe/kindgen/internal/config"
	"github.com/funvibe/kindgen/internal/lexer"
	"github.com/funvibe/kindgen/internal/parser"
	"github.com/funvibe/kindgen/internal/pipeline"
	"github.com/funvibe/kindgen/internal/prettyprinter"
)

// GeneratedFileSuffix replaces the source extension on output files.
const GeneratedFileSuffix = ".gen.rs"

// options collects the command-line flags.
type options struct {
	outDir     string
	configPath string
	toStdout   bool
	printAst   bool
	noCache    bool
	cleanCache bool
	paths      []string
}

// isSourceFile checks if a file has a recognized source extension
func isSourceFile(path string) bool {
	return config.HasSourceExt(path)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: kindgen [options] [files...]

Expands kind definition files (%s) into generated source.
With no files, the sources listed in kindgen.yaml are processed.

Options:
  -o <dir>        write generated files to <dir>
  -config <path>  use an explicit kindgen.yaml
  -stdout         print expansions to stdout instead of writing files
  -ast            print the parsed tree instead of expanding
  -no-cache       bypass the expansion cache
  -clean-cache    drop all cached expansions and exit
  -help           show this help
`, config.SourceFileExt)
}

func parseArgs() (*options, bool) {
	opts := &options{}
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-help", "--help", "help":
			printUsage()
			return nil, false
		case "-o":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "Error: -o requires a directory")
				return nil, false
			}
			i++
			opts.outDir = args[i]
		case "-config":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "Error: -config requires a path")
				return nil, false
			}
			i++
			opts.configPath = args[i]
		case "-stdout":
			opts.toStdout = true
		case "-ast":
			opts.printAst = true
		case "-no-cache":
			opts.noCache = true
		case "-clean-cache":
			opts.cleanCache = true
		default:
			if strings.HasPrefix(args[i], "-") {
				fmt.Fprintf(os.Stderr, "Error: unknown flag %q\n", args[i])
				return nil, false
			}
			if !isSourceFile(args[i]) {
				fmt.Fprintf(os.Stderr, "Warning: skipping %q — not a recognized source file\n", args[i])
				continue
			}
			opts.paths = append(opts.paths, args[i])
		}
	}
	return opts, true
}

// Run is the kindgen entry point. It exits the process on failure.
func Run() {
	opts, ok := parseArgs()
	if !ok {
		os.Exit(1)
	}

	cfg, cfgDir, err := loadProjectConfig(opts.configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, colorize("Error: "+err.Error(), colorRed))
		os.Exit(1)
	}

	var store *cache.Cache
	if !cfg.Cache.Disabled && !opts.noCache || opts.cleanCache {
		store, err = cache.Open(filepath.Join(cfgDir, cfg.Cache.Path))
		if err != nil {
			// The cache is a speed layer; run without it.
			fmt.Fprintln(os.Stderr, colorize("Warning: "+err.Error(), colorYellow))
			store = nil
		} else {
			defer store.Close()
		}
	}

	if opts.cleanCache {
		if store != nil {
			if err := store.Clean(); err != nil {
				fmt.Fprintln(os.Stderr, colorize("Error: "+err.Error(), colorRed))
				os.Exit(1)
			}
		}
		return
	}

	paths := opts.paths
	if len(paths) == 0 {
		paths, err = resolveConfigSources(cfg, cfgDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, colorize("Error: "+err.Error(), colorRed))
			os.Exit(1)
		}
	}
	if len(paths) == 0 {
		printUsage()
		os.Exit(1)
	}

	outDir := opts.outDir
	if outDir == "" && cfg.OutDir != "" {
		outDir = filepath.Join(cfgDir, cfg.OutDir)
	}

	failed := false
	for _, path := range paths {
		if err := processFile(path, outDir, opts, store); err != nil {
			fmt.Fprintln(os.Stderr, colorize(err.Error(), colorRed))
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// loadProjectConfig resolves the effective configuration and the
// directory it is anchored to.
func loadProjectConfig(explicit string) (*config.Config, string, error) {
	if explicit != "" {
		cfg, err := config.LoadConfig(explicit)
		if err != nil {
			return nil, "", err
		}
		return cfg, filepath.Dir(explicit), nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("resolving working directory: %w", err)
	}
	found, err := config.FindConfig(wd)
	if err != nil {
		return nil, "", err
	}
	if found == "" {
		return config.Default(), wd, nil
	}
	cfg, err := config.LoadConfig(found)
	if err != nil {
		return nil, "", err
	}
	return cfg, filepath.Dir(found), nil
}

// resolveConfigSources expands the config's source globs.
func resolveConfigSources(cfg *config.Config, cfgDir string) ([]string, error) {
	var paths []string
	for _, pattern := range cfg.Sources {
		matches, err := filepath.Glob(filepath.Join(cfgDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("bad source pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if isSourceFile(m) {
				paths = append(paths, m)
			}
		}
	}
	return paths, nil
}

// processFile expands one source file. Cache hits skip the pipeline
// entirely; hit and miss produce identical output text.
func processFile(path string, outDir string, opts *options, store *cache.Cache) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("Error reading %s: %v", path, err)
	}

	var key string
	if store != nil && !opts.printAst {
		key = cache.Key(source)
		if output, ok, err := store.Lookup(key); err == nil && ok {
			return emit(path, outDir, output, opts)
		}
	}

	if opts.printAst {
		ctx := runPipeline(path, source, false)
		if err := contextError(ctx); err != nil {
			return err
		}
		printer := prettyprinter.NewTreePrinter()
		printer.PrintProgram(ctx.AstRoot)
		fmt.Print(printer.String())
		return nil
	}

	output, err := expandSource(path, source)
	if err != nil {
		return err
	}
	if store != nil {
		if err := store.Store(key, output); err != nil {
			fmt.Fprintln(os.Stderr, colorize("Warning: "+err.Error(), colorYellow))
		}
	}
	return emit(path, outDir, output, opts)
}

// runPipeline lexes and parses one source file, expanding it too when
// expand is set.
func runPipeline(path string, source []byte, expand bool) *pipeline.Context {
	ctx := &pipeline.Context{FilePath: path, SourceCode: string(source)}
	stages := []pipeline.Processor{
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
	}
	if expand {
		stages = append(stages, &codegen.ExpanderProcessor{})
	}
	return pipeline.New(stages...).Run(ctx)
}

func contextError(ctx *pipeline.Context) error {
	if len(ctx.Errors) == 0 {
		return nil
	}
	var msgs []string
	for _, e := range ctx.Errors {
		msgs = append(msgs, e.Error())
	}
	return fmt.Errorf("%s", strings.Join(msgs, "\n"))
}

// expandSource runs the full pipeline over one file's content and
// returns the generated output text.
func expandSource(path string, source []byte) (string, error) {
	ctx := runPipeline(path, source, true)
	if err := contextError(ctx); err != nil {
		return "", err
	}
	return strings.Join(ctx.Expansions, "\n\n") + "\n", nil
}

// emit delivers the expanded output: stdout, or a generated file next
// to the source (or under outDir when set).
func emit(path, outDir, output string, opts *options) error {
	if opts.toStdout {
		fmt.Print(output)
		return nil
	}

	base := config.TrimSourceExt(filepath.Base(path))
	dir := filepath.Dir(path)
	if outDir != "" {
		dir = outDir
	}
	target := filepath.Join(dir, base+GeneratedFileSuffix)
	if err := writeFileAtomic(target, []byte(output)); err != nil {
		return fmt.Errorf("Error writing %s: %v", target, err)
	}
	return nil
}
