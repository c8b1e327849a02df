package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/erraggy/tsreqgen"
	"github.com/erraggy/tsreqgen/extractor"
	"github.com/erraggy/tsreqgen/generator"
	"github.com/erraggy/tsreqgen/internal/cliutil"
	"github.com/erraggy/tsreqgen/internal/mcpserver"
	"github.com/erraggy/tsreqgen/normalizer"
	"github.com/erraggy/tsreqgen/parser"
)

// stdinFilePath is the conventional argument for reading the spec from stdin.
const stdinFilePath = "-"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("tsreqgen v%s\n", tsreqgen.Version())
	case "help", "-h", "--help":
		printUsage()
	case "generate":
		if err := handleGenerate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "inspect":
		if err := handleInspect(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := handleMCP(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

// generateFlags contains flags for the generate command
type generateFlags struct {
	output     string
	baseType   string
	configPath string
	lazyRefs   bool
	strictRefs bool
	strict     bool
	noInfo     bool
	quiet      bool
}

func setupGenerateFlags() (*flag.FlagSet, *generateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &generateFlags{}

	fs.StringVar(&flags.output, "o", "", "output directory for the generated module (default: module to stdout)")
	fs.StringVar(&flags.output, "output", "", "output directory for the generated module (default: module to stdout)")
	fs.StringVar(&flags.baseType, "base-type", "", "name of the request-options interface in the generated module (default \"RequestOptions\")")
	fs.StringVar(&flags.configPath, "c", "", "path to a config file (default \"tsreqgen.yaml\" if present)")
	fs.StringVar(&flags.configPath, "config", "", "path to a config file (default \"tsreqgen.yaml\" if present)")
	fs.BoolVar(&flags.lazyRefs, "lazy-refs", false, "resolve references on demand instead of dereferencing up front")
	fs.BoolVar(&flags.strictRefs, "strict-refs", false, "fail on unresolvable references instead of dropping the parameter")
	fs.BoolVar(&flags.strict, "strict", false, "fail on any generation issues, even warnings")
	fs.BoolVar(&flags.noInfo, "no-info", false, "suppress informational messages")
	fs.BoolVar(&flags.quiet, "q", false, "suppress the generation report")
	fs.BoolVar(&flags.quiet, "quiet", false, "suppress the generation report")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: tsreqgen generate [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Generate a typed TypeScript request module from an OpenAPI specification.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  tsreqgen generate -o ./src/api openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  tsreqgen generate --base-type AxiosRequestConfig -o ./src/api openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  tsreqgen generate --strict --no-info -o ./src/api swagger.json\n")
		cliutil.Writef(fs.Output(), "  tsreqgen generate openapi.yaml > client.ts\n")
		cliutil.Writef(fs.Output(), "  cat openapi.yaml | tsreqgen generate -o ./src/api -\n")
		cliutil.Writef(fs.Output(), "\nConfig file:\n")
		cliutil.Writef(fs.Output(), "  Flags fall back to values from tsreqgen.yaml in the working directory\n")
		cliutil.Writef(fs.Output(), "  (or the file named by --config). Explicit flags always win.\n")
		cliutil.Writef(fs.Output(), "\nPipelining:\n")
		cliutil.Writef(fs.Output(), "  Use '-' as the file path to read the specification from stdin.\n")
		cliutil.Writef(fs.Output(), "  Without -o the module is written to stdout and the report to stderr.\n")
	}

	return fs, flags
}

// applyFileConfig fills flags the user did not set from the config file.
// fs.Visit only sees flags given on the command line, so explicit flags win.
func applyFileConfig(fs *flag.FlagSet, flags *generateFlags, cfg *fileConfig) {
	if cfg == nil {
		return
	}
	seen := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { seen[f.Name] = true })

	if !seen["o"] && !seen["output"] && cfg.Output != "" {
		flags.output = cfg.Output
	}
	if !seen["base-type"] && cfg.BaseType != "" {
		flags.baseType = cfg.BaseType
	}
	if !seen["lazy-refs"] && cfg.LazyRefs {
		flags.lazyRefs = true
	}
	if !seen["strict-refs"] && cfg.StrictRefs {
		flags.strictRefs = true
	}
	if !seen["strict"] && cfg.Strict {
		flags.strict = true
	}
	if !seen["no-info"] && cfg.NoInfo {
		flags.noInfo = true
	}
}

// handleGenerate executes the generate command
func handleGenerate(args []string) error {
	fs, flags := setupGenerateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	fileCfg, err := resolveFileConfig(flags.configPath)
	if err != nil {
		return err
	}
	applyFileConfig(fs, flags, fileCfg)

	var specPath string
	switch fs.NArg() {
	case 0:
		if fileCfg == nil || fileCfg.Spec == "" {
			fs.Usage()
			return fmt.Errorf("generate command requires exactly one file path or '-' for stdin")
		}
		specPath = fileCfg.Spec
	case 1:
		specPath = fs.Arg(0)
	default:
		fs.Usage()
		return fmt.Errorf("generate command requires exactly one file path or '-' for stdin")
	}

	// Generate the module with timing
	startTime := time.Now()
	genOpts := []generator.Option{
		generator.WithLazyRefs(flags.lazyRefs),
		generator.WithStrictRefs(flags.strictRefs),
		generator.WithStrictMode(flags.strict),
		generator.WithIncludeInfo(!flags.noInfo),
	}
	if flags.baseType != "" {
		genOpts = append(genOpts, generator.WithBaseRequestType(flags.baseType))
	}
	if fileCfg != nil && len(fileCfg.Formats) > 0 {
		genOpts = append(genOpts, generator.WithFormats(fileCfg.formatMap()))
	}

	if specPath == stdinFilePath {
		parseResult, parseErr := parser.New().ParseReader(os.Stdin)
		if parseErr != nil {
			return fmt.Errorf("parsing stdin: %w", parseErr)
		}
		genOpts = append(genOpts, generator.WithParsed(*parseResult))
	} else {
		genOpts = append(genOpts, generator.WithFilePath(specPath))
	}

	result, err := generator.GenerateWithOptions(genOpts...)
	totalTime := time.Since(startTime)
	if err != nil {
		return fmt.Errorf("generating module: %w", err)
	}

	if flags.output == "" {
		// No output directory: module to stdout, report to stderr so the
		// module itself stays pipeable.
		if !flags.quiet {
			printGenerateReport(os.Stderr, specPath, result, totalTime)
		}
		file := result.GetFile("client.ts")
		if file == nil {
			return fmt.Errorf("generation produced no module file")
		}
		if _, err := os.Stdout.Write(file.Content); err != nil {
			return fmt.Errorf("writing module to stdout: %w", err)
		}
		return printGenerateSummary(os.Stderr, result, flags.quiet)
	}

	if err := result.WriteFiles(flags.output); err != nil {
		return fmt.Errorf("writing files: %w", err)
	}

	if !flags.quiet {
		printGenerateReport(os.Stdout, specPath, result, totalTime)
		fmt.Printf("Generated Files (%d):\n", len(result.Files))
		for _, file := range result.Files {
			fmt.Printf("  - %s/%s (%d bytes)\n", flags.output, file.Name, len(file.Content))
		}
		fmt.Println()
	}
	return printGenerateSummary(os.Stdout, result, flags.quiet)
}

func printGenerateReport(w io.Writer, specPath string, result *generator.GenerateResult, totalTime time.Duration) {
	cliutil.Writef(w, "TypeScript Request Module Generator\n")
	cliutil.Writef(w, "===================================\n\n")
	cliutil.Writef(w, "tsreqgen version: %s\n", tsreqgen.Version())
	if specPath == stdinFilePath {
		cliutil.Writef(w, "Specification: <stdin>\n")
	} else {
		cliutil.Writef(w, "Specification: %s\n", specPath)
	}
	cliutil.Writef(w, "OAS Version: %s\n", result.SourceVersion)
	if result.Converted {
		cliutil.Writef(w, "Converted: Swagger 2.0 -> OpenAPI 3.x\n")
	}
	cliutil.Writef(w, "Source Size: %s\n", parser.FormatBytes(result.SourceSize))
	cliutil.Writef(w, "Operations: %d\n", result.GeneratedOperations)
	cliutil.Writef(w, "Total Time: %v\n\n", totalTime)

	if len(result.Issues) > 0 {
		cliutil.Writef(w, "Generation Issues (%d):\n", len(result.Issues))
		for _, issue := range result.Issues {
			cliutil.Writef(w, "  %s\n", issue.String())
		}
		cliutil.Writef(w, "\n")
	}
}

// printGenerateSummary prints the final verdict line and converts a
// non-success result into a command error.
func printGenerateSummary(w io.Writer, result *generator.GenerateResult, quiet bool) error {
	if result.Success {
		if !quiet {
			cliutil.Writef(w, "✓ Generation successful")
			if result.InfoCount > 0 || result.WarningCount > 0 {
				cliutil.Writef(w, " (%d info, %d warnings)", result.InfoCount, result.WarningCount)
			}
			cliutil.Writef(w, "\n")
		}
		return nil
	}
	if !quiet {
		cliutil.Writef(w, "✗ Generation completed with %d critical issue(s)", result.CriticalCount)
		if result.WarningCount > 0 {
			cliutil.Writef(w, ", %d warning(s)", result.WarningCount)
		}
		cliutil.Writef(w, "\n")
	}
	return fmt.Errorf("generation failed with %d critical issue(s)", result.CriticalCount)
}

// inspectFlags contains flags for the inspect command
type inspectFlags struct {
	jsonOut  bool
	lazyRefs bool
}

func setupInspectFlags() (*flag.FlagSet, *inspectFlags) {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	flags := &inspectFlags{}

	fs.BoolVar(&flags.jsonOut, "json", false, "emit the inspection report as JSON")
	fs.BoolVar(&flags.lazyRefs, "lazy-refs", false, "resolve references on demand instead of dereferencing up front")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: tsreqgen inspect [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Summarize the operations a specification would generate, without generating.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  tsreqgen inspect openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  tsreqgen inspect --json petstore.yaml\n")
		cliutil.Writef(fs.Output(), "  cat swagger.json | tsreqgen inspect -\n")
	}

	return fs, flags
}

// inspectReport is the structured inspection output.
type inspectReport struct {
	Specification  string             `json:"specification"`
	Title          string             `json:"title,omitempty"`
	APIVersion     string             `json:"api_version,omitempty"`
	OASVersion     string             `json:"oas_version"`
	SourceFormat   string             `json:"source_format"`
	SourceSize     int64              `json:"source_size"`
	Converted      bool               `json:"converted,omitempty"`
	OperationCount int                `json:"operation_count"`
	Operations     []inspectOperation `json:"operations"`
	Issues         []inspectIssue     `json:"issues,omitempty"`
}

type inspectOperation struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	OperationID string `json:"operation_id,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty"`
}

type inspectIssue struct {
	Severity string `json:"severity"`
	Path     string `json:"path"`
	Message  string `json:"message"`
}

// handleInspect executes the inspect command
func handleInspect(args []string) error {
	fs, flags := setupInspectFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("inspect command requires exactly one file path or '-' for stdin")
	}

	specPath := fs.Arg(0)

	var parseResult *parser.ParseResult
	var err error
	if specPath == stdinFilePath {
		parseResult, err = parser.New().ParseReader(os.Stdin)
	} else {
		parseResult, err = parser.New().Parse(specPath)
	}
	if err != nil {
		return fmt.Errorf("parsing specification: %w", err)
	}

	n := normalizer.New()
	n.LazyRefs = flags.lazyRefs
	normResult, err := n.Normalize(parseResult)
	if err != nil {
		return fmt.Errorf("normalizing document: %w", err)
	}

	extResult, err := extractor.New().Extract(normResult.Document)
	if err != nil {
		return fmt.Errorf("extracting operations: %w", err)
	}

	report := inspectReport{
		Specification: specPath,
		OASVersion:    parseResult.Version,
		SourceFormat:  string(parseResult.SourceFormat),
		SourceSize:    parseResult.SourceSize,
		Converted:     normResult.Converted,
	}
	if specPath == stdinFilePath {
		report.Specification = "<stdin>"
	}
	if info, ok := normResult.Document.Obj("info"); ok {
		report.Title, _ = info.Str("title")
		report.APIVersion, _ = info.Str("version")
	}

	report.OperationCount = len(extResult.Operations)
	report.Operations = make([]inspectOperation, 0, len(extResult.Operations))
	for _, op := range extResult.Operations {
		report.Operations = append(report.Operations, inspectOperation{
			Method:      strings.ToUpper(op.Method),
			Path:        op.URL,
			OperationID: op.OperationID,
			Summary:     op.Summary,
			Deprecated:  op.Deprecated,
		})
	}

	for _, set := range [][]normalizer.Issue{normResult.Issues, extResult.Issues} {
		for _, issue := range set {
			report.Issues = append(report.Issues, inspectIssue{
				Severity: issue.Severity.String(),
				Path:     issue.Path,
				Message:  issue.Message,
			})
		}
	}

	if flags.jsonOut {
		return outputJSON(report)
	}
	printInspectReport(os.Stdout, &report)
	return nil
}

func outputJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printInspectReport(w io.Writer, report *inspectReport) {
	cliutil.Writef(w, "OpenAPI Specification Inspector\n")
	cliutil.Writef(w, "===============================\n\n")
	cliutil.Writef(w, "tsreqgen version: %s\n", tsreqgen.Version())
	cliutil.Writef(w, "Specification: %s\n", report.Specification)
	if report.Title != "" {
		cliutil.Writef(w, "Title: %s\n", report.Title)
	}
	if report.APIVersion != "" {
		cliutil.Writef(w, "API Version: %s\n", report.APIVersion)
	}
	cliutil.Writef(w, "OAS Version: %s\n", report.OASVersion)
	cliutil.Writef(w, "Source Format: %s\n", report.SourceFormat)
	cliutil.Writef(w, "Source Size: %s\n", parser.FormatBytes(report.SourceSize))
	if report.Converted {
		cliutil.Writef(w, "Converted: Swagger 2.0 -> OpenAPI 3.x\n")
	}
	cliutil.Writef(w, "\n")

	cliutil.Writef(w, "Operations (%d):\n", report.OperationCount)
	rows := make([][]string, 0, len(report.Operations))
	for _, op := range report.Operations {
		summary := op.Summary
		if op.Deprecated {
			summary = strings.TrimSpace("[deprecated] " + summary)
		}
		rows = append(rows, []string{op.Method, op.Path, op.OperationID, summary})
	}
	cliutil.RenderTable(w, []string{"METHOD", "PATH", "OPERATION", "SUMMARY"}, rows)

	if len(report.Issues) > 0 {
		cliutil.Writef(w, "\nIssues (%d):\n", len(report.Issues))
		for _, issue := range report.Issues {
			cliutil.Writef(w, "  [%s] %s: %s\n", issue.Severity, issue.Path, issue.Message)
		}
	}
}

// handleMCP executes the mcp command
func handleMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: tsreqgen mcp\n\n")
		cliutil.Writef(fs.Output(), "Run the MCP server on stdio.\n\n")
		cliutil.Writef(fs.Output(), "The server exposes generate and inspect tools to MCP clients.\n")
		cliutil.Writef(fs.Output(), "Configuration is read from TSREQGEN_* environment variables.\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}

// commandNames are the suggestion candidates for unknown commands.
var commandNames = []string{"generate", "inspect", "mcp", "version", "help"}

// suggestCommand returns the closest known command within edit distance 2,
// or "" when nothing is close enough to be a plausible typo.
func suggestCommand(input string) string {
	const maxDistance = 2
	best := ""
	bestDistance := maxDistance + 1
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDistance {
			best = name
			bestDistance = d
		}
	}
	if bestDistance > maxDistance {
		return ""
	}
	return best
}

// editDistance computes the Levenshtein distance between two strings
// using two rolling rows.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Println(`tsreqgen - TypeScript Request Module Generator for OpenAPI

Usage:
  tsreqgen <command> [options]

Commands:
  generate    Generate a typed TypeScript request module from an OAS document
  inspect     Summarize the operations a document would generate
  mcp         Run the MCP server on stdio
  version     Show version information
  help        Show this help message

Examples:
  tsreqgen generate -o ./src/api openapi.yaml
  tsreqgen generate --base-type AxiosRequestConfig openapi.yaml > client.ts
  tsreqgen inspect --json petstore.yaml
  cat swagger.json | tsreqgen generate -o ./src/api -

Run 'tsreqgen <command> --help' for more information on a command.`)
}
