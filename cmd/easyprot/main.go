// Command easyprot parses, checks and formats easyprot schema files.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/encoding/prototext"

	"github.com/tallhamn/easyprot"
)

// Exit codes.
const (
	exitOK          = 0 // success
	exitWouldChange = 1 // -check found a file that is not in canonical form
	exitVerify      = 2 // -verify failed
	exitParse       = 3 // syntax error or document not representable
	exitUsage       = 4 // bad flags or I/O failure
)

// Output formats.
const (
	outputCanonical      = "canonical"
	outputYAML           = "yaml"
	outputJSON           = "json"
	outputDescriptor     = "descriptor"
	outputDescriptorJSON = "descriptor-json"
)

var outputFormats = []string{outputCanonical, outputYAML, outputJSON, outputDescriptor, outputDescriptorJSON}

// Options holds the command line configuration.
type Options struct {
	Write         bool
	Check         bool
	Diff          bool
	Verify        bool
	AllowTrailing bool
	Output        string
	Indent        int
	Jobs          int
	Include       []string
	Recursive     bool
	Verbose       bool
	Quiet         bool
	ConfigFile    string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts := Options{Jobs: 4, Output: outputCanonical, Include: []string{"*.proto"}}
	var include multiFlag

	fs := flag.NewFlagSet("easyprot", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.Recursive, "r", false, "Recursively process all matching files in directories")
	fs.BoolVar(&opts.Recursive, "recursive", false, "Recursively process all matching files in directories")
	fs.BoolVar(&opts.Write, "w", false, "Write canonical form in-place")
	fs.BoolVar(&opts.Write, "write", false, "Write canonical form in-place")
	fs.BoolVar(&opts.Check, "c", false, "Exit non-zero if a file is not in canonical form (for CI)")
	fs.BoolVar(&opts.Check, "check", false, "Exit non-zero if a file is not in canonical form (for CI)")
	fs.BoolVar(&opts.Diff, "d", false, "Print unified diff against the canonical form")
	fs.BoolVar(&opts.Diff, "diff", false, "Print unified diff against the canonical form")
	fs.BoolVar(&opts.Verify, "verify", false, "Check that formatting preserves the document and its descriptor")
	fs.BoolVar(&opts.AllowTrailing, "allow-trailing", false, "Accept files with unparsed input after the last declaration")
	fs.StringVar(&opts.Output, "o", opts.Output, "Output: "+strings.Join(outputFormats, ", "))
	fs.StringVar(&opts.Output, "output", opts.Output, "Output: "+strings.Join(outputFormats, ", "))
	fs.IntVar(&opts.Indent, "indent", 0, "Spaces per indentation level in canonical output")
	fs.IntVar(&opts.Jobs, "j", opts.Jobs, "Number of files processed in parallel")
	fs.IntVar(&opts.Jobs, "jobs", opts.Jobs, "Number of files processed in parallel")
	fs.Var(&include, "include", "File name pattern to process in directories (repeatable)")
	fs.BoolVar(&opts.Verbose, "v", false, "Print a declaration summary and debug logs")
	fs.BoolVar(&opts.Verbose, "verbose", false, "Print a declaration summary and debug logs")
	fs.BoolVar(&opts.Quiet, "q", false, "Suppress warnings")
	fs.BoolVar(&opts.Quiet, "quiet", false, "Suppress warnings")
	fs.StringVar(&opts.ConfigFile, "config", "", "Path to "+configName+" config file")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: easyprot [OPTIONS] <FILE|DIR>...\n\n")
		fmt.Fprintf(stderr, "Parse schema files and print them in canonical form.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if len(include) > 0 {
		opts.Include = []string(include)
	}

	setFlags := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	configPath := opts.ConfigFile
	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath != "" {
		cfg, err := LoadConfig(configPath)
		if err != nil {
			fmt.Fprintf(stderr, "warning: failed to load config %s: %v\n", configPath, err)
		} else {
			MergeConfig(&opts, cfg, setFlags)
		}
	}

	logger := setupLogger(opts.Verbose, stderr)

	if !slices.Contains(outputFormats, opts.Output) {
		fmt.Fprintf(stderr, "error: --output must be one of %s, got %q\n", strings.Join(outputFormats, ", "), opts.Output)
		return exitUsage
	}
	if opts.Output != outputCanonical && (opts.Write || opts.Check || opts.Diff) {
		fmt.Fprintf(stderr, "error: --write, --check and --diff require --output=%s\n", outputCanonical)
		return exitUsage
	}
	for _, p := range opts.Include {
		if !doublestar.ValidatePattern(p) {
			fmt.Fprintf(stderr, "error: invalid include pattern %q\n", p)
			return exitUsage
		}
	}
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	files, err := collectFiles(fs.Args(), opts.Recursive, opts.Include)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}
	if len(files) == 0 {
		fmt.Fprintf(stderr, "error: no matching files found\n")
		return exitUsage
	}
	logger.Debug("collected files", slog.Int("count", len(files)), slog.Int("jobs", opts.Jobs))

	results := make([]result, len(files))
	var g errgroup.Group
	g.SetLimit(opts.Jobs)
	for i, file := range files {
		g.Go(func() error {
			results[i] = processFile(file, opts, logger.With(slog.String("file", file)))
			return nil
		})
	}
	_ = g.Wait()

	exitCode := exitOK
	for _, r := range results {
		_, _ = stdout.Write(r.stdout.Bytes())
		_, _ = stderr.Write(r.stderr.Bytes())
		exitCode = max(exitCode, r.code)
	}
	return exitCode
}

func setupLogger(verbose bool, w io.Writer) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// result buffers one file's output so that parallel runs print in order.
type result struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
	code   int
}

func (r *result) fail(code int, format string, args ...any) result {
	fmt.Fprintf(&r.stderr, format+"\n", args...)
	r.code = code
	return *r
}

func processFile(file string, opts Options, logger *slog.Logger) result {
	var r result

	info, err := os.Stat(file)
	if err != nil {
		return r.fail(exitUsage, "error reading %s: %v", file, err)
	}
	fileMode := info.Mode()

	content, err := os.ReadFile(file)
	if err != nil {
		return r.fail(exitUsage, "error reading %s: %v", file, err)
	}
	original := string(content)

	prefix := easyprot.ParsePrefix(original)
	if prefix.Stop != nil {
		if !opts.AllowTrailing {
			return r.fail(exitParse, "error: %s:%v", file, prefix.Stop)
		}
		if !opts.Quiet {
			fmt.Fprintf(&r.stderr, "%s: ignoring unparsed input: %v\n", file, prefix.Stop)
		}
	}
	doc := prefix.Document
	parsed := original[:prefix.Offset]
	logger.Debug("parsed", slog.Int("bytes", prefix.Offset), slog.Int("declarations", len(doc.Declarations)))

	if opts.Verbose {
		fmt.Fprint(&r.stderr, easyprot.Summarize(doc))
	}

	if opts.Verify {
		if err := easyprot.Verify(parsed); err != nil {
			return r.fail(exitVerify, "error: %s: verification failed: %v", file, err)
		}
		logger.Debug("verified")
	}

	if opts.Output != outputCanonical {
		out, err := render(doc, file, opts.Output)
		if err != nil {
			code := exitUsage
			var derr *easyprot.DescriptorError
			if errors.As(err, &derr) {
				code = exitParse
			}
			return r.fail(code, "error: %s: %v", file, err)
		}
		r.stdout.Write(out)
		return r
	}

	formatted := easyprot.FormatOptions{Indent: opts.Indent}.Format(doc)

	if original == formatted {
		if opts.Check && !opts.Quiet {
			fmt.Fprintf(&r.stderr, "%s: already canonical\n", file)
		}
		if !opts.Check && !opts.Write && !opts.Diff {
			r.stdout.WriteString(formatted)
		}
		return r
	}

	diff := func() {
		r.stdout.WriteString(easyprot.DiffStrings(original, formatted, file+" (original)", file+" (canonical)"))
	}

	if opts.Check {
		fmt.Fprintf(&r.stderr, "%s: not canonical\n", file)
		if opts.Diff {
			diff()
		}
		r.code = exitWouldChange
		return r
	}

	if opts.Write {
		if len(parsed) < len(original) {
			return r.fail(exitUsage, "error: %s: refusing to write, input after offset %d was not parsed", file, prefix.Offset)
		}
		if err := os.WriteFile(file, []byte(formatted), fileMode.Perm()); err != nil {
			return r.fail(exitUsage, "error writing %s: %v", file, err)
		}
		if opts.Diff {
			diff()
		}
		if !opts.Quiet {
			fmt.Fprintf(&r.stderr, "%s: formatted\n", file)
		}
		return r
	}

	if opts.Diff {
		diff()
		return r
	}

	r.stdout.WriteString(formatted)
	return r
}

// render produces one of the non-canonical outputs.
func render(doc *easyprot.Document, file, output string) ([]byte, error) {
	switch output {
	case outputYAML:
		return easyprot.DumpYAML(doc)
	case outputJSON:
		return easyprot.DumpJSON(doc)
	case outputDescriptor:
		fd, err := easyprot.Descriptor(doc, filepath.ToSlash(file))
		if err != nil {
			return nil, err
		}
		return []byte(prototext.MarshalOptions{Multiline: true}.Format(fd)), nil
	case outputDescriptorJSON:
		fd, err := easyprot.Descriptor(doc, filepath.ToSlash(file))
		if err != nil {
			return nil, err
		}
		out, err := protojson.MarshalOptions{Multiline: true}.Marshal(fd)
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	default:
		return nil, fmt.Errorf("unknown output %q", output)
	}
}

// collectFiles expands directory arguments into the files matching include.
// Explicit file arguments must match one of the patterns by base name.
func collectFiles(args []string, recursive bool, include []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if !info.IsDir() {
			if !matchesAny(include, filepath.Base(arg)) {
				return nil, fmt.Errorf("%s does not match %s", arg, strings.Join(include, ", "))
			}
			add(arg)
			continue
		}

		var found []string
		for _, pattern := range include {
			if recursive {
				pattern = "**/" + pattern
			}
			matches, err := doublestar.Glob(os.DirFS(arg), pattern, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("walking directory %s: %w", arg, err)
			}
			for _, m := range matches {
				found = append(found, filepath.Join(arg, filepath.FromSlash(m)))
			}
		}
		slices.Sort(found)
		for _, f := range found {
			add(f)
		}
	}

	return files, nil
}

func matchesAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

// multiFlag implements flag.Value for repeatable string flags.
type multiFlag []string

func (f *multiFlag) String() string {
	return strings.Join(*f, ", ")
}

func (f *multiFlag) Set(value string) error {
	*f = append(*f, value)
	return nil
}
