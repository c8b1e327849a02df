package generator

import (
	"errors"
	"fmt"
	"time"

	"github.com/erraggy/tsreqgen/document"
	"github.com/erraggy/tsreqgen/extractor"
	"github.com/erraggy/tsreqgen/generrors"
	"github.com/erraggy/tsreqgen/internal/issues"
	"github.com/erraggy/tsreqgen/internal/severity"
	"github.com/erraggy/tsreqgen/internal/tsformat"
	"github.com/erraggy/tsreqgen/normalizer"
	"github.com/erraggy/tsreqgen/parser"
	"github.com/erraggy/tsreqgen/shaper"
	"github.com/erraggy/tsreqgen/typegen"
)

// Severity indicates the severity level of a generation issue
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about generation choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates lossy recoveries that should be reviewed
	SeverityWarning = severity.SeverityWarning
	// SeverityError indicates problems that invalidate part of the output
	SeverityError = severity.SeverityError
	// SeverityCritical indicates features that cannot be generated
	SeverityCritical = severity.SeverityCritical
)

// GenerateIssue represents a single generation issue or limitation
type GenerateIssue = issues.Issue

// TypeCompiler compiles one helper schema into type declaration text.
// The default is typegen.Compiler.
type TypeCompiler interface {
	Compile(schema *document.Object, name string, opts typegen.Options) (string, error)
}

// Formatter renders assembled module text into canonical form. A format
// failure aborts the run. The default is tsformat.Formatter.
type Formatter interface {
	Format(src string) (string, error)
}

// Default collaborator implementations.
var (
	_ TypeCompiler = (*typegen.Compiler)(nil)
	_ Formatter    = (*tsformat.Formatter)(nil)
)

// GeneratedFile represents a single generated file
type GeneratedFile struct {
	// Name is the file name (e.g., "client.ts")
	Name string
	// Content is the generated TypeScript source
	Content []byte
}

// GenerateResult contains the results of generating a client module from
// an OpenAPI specification
type GenerateResult struct {
	// Files contains all generated files
	Files []GeneratedFile
	// SourceVersion is the raw version string declared at the document root
	SourceVersion string
	// SourceOASVersion is the classified source OAS version
	SourceOASVersion parser.OASVersion
	// SourceFormat is the format of the source document (JSON or YAML)
	SourceFormat parser.SourceFormat
	// Converted reports whether a Swagger 2.0 input was converted to 3.x
	Converted bool
	// Issues contains all generation issues across pipeline stages
	Issues []GenerateIssue
	// InfoCount is the total number of info messages
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// ErrorCount is the total number of errors
	ErrorCount int
	// CriticalCount is the total number of critical issues
	CriticalCount int
	// Success is true if generation completed without errors or critical
	// issues
	Success bool
	// LoadTime is the time taken to load and parse the source
	LoadTime time.Duration
	// GenerateTime is the time taken to generate the module
	GenerateTime time.Duration
	// SourceSize is the size of the source document in bytes
	SourceSize int64
	// GeneratedOperations is the count of operations generated
	GeneratedOperations int
}

// HasCriticalIssues returns true if there are any critical issues
func (r *GenerateResult) HasCriticalIssues() bool {
	return r.CriticalCount > 0
}

// HasWarnings returns true if there are any warnings
func (r *GenerateResult) HasWarnings() bool {
	return r.WarningCount > 0
}

// GetFile returns the generated file with the given name, or nil if not found
func (r *GenerateResult) GetFile(name string) *GeneratedFile {
	for i := range r.Files {
		if r.Files[i].Name == name {
			return &r.Files[i]
		}
	}
	return nil
}

// Generator runs the full pipeline from a parsed document to a typed
// TypeScript client module
type Generator struct {
	// BaseRequestType names the request-options type declared in the
	// module prelude and narrowed by per-operation Config types.
	// Default: "RequestOptions"
	BaseRequestType string

	// LazyRefs keeps document references lazily resolvable instead of
	// dereferencing the whole tree up front. Downstream stages resolve
	// them on demand.
	LazyRefs bool

	// StrictRefs turns silently-dropped unresolvable references into
	// generation errors
	StrictRefs bool

	// StrictMode causes generation to fail on any issues (even warnings)
	StrictMode bool

	// IncludeInfo determines whether to include informational messages
	IncludeInfo bool

	// Formats overrides the primitive type/format mapping table.
	// Defaults to typegen.DefaultFormats().
	Formats typegen.FormatMap

	// TypeCompiler compiles helper schemas. Defaults to typegen.New().
	TypeCompiler TypeCompiler

	// Formatter formats the assembled module. Defaults to tsformat.New().
	Formatter Formatter

	// Logger receives structured debug output. When nil, no logging is
	// performed.
	Logger parser.Logger
}

// New creates a new Generator instance with default settings
func New() *Generator {
	return &Generator{
		BaseRequestType: defaultBaseRequestType,
		IncludeInfo:     true,
	}
}

const defaultBaseRequestType = "RequestOptions"

func (g *Generator) baseRequestType() string {
	if g.BaseRequestType != "" {
		return g.BaseRequestType
	}
	return defaultBaseRequestType
}

func (g *Generator) formats() typegen.FormatMap {
	if g.Formats != nil {
		return g.Formats
	}
	return typegen.DefaultFormats()
}

func (g *Generator) compiler() TypeCompiler {
	if g.TypeCompiler != nil {
		return g.TypeCompiler
	}
	return typegen.New()
}

func (g *Generator) formatter() Formatter {
	if g.Formatter != nil {
		return g.Formatter
	}
	return tsformat.New()
}

func (g *Generator) log() parser.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return parser.NopLogger{}
}

// Generate generates a client module from an OpenAPI specification file.
// The path "-" reads the document from stdin.
func (g *Generator) Generate(specPath string) (*GenerateResult, error) {
	p := parser.New()
	p.Logger = g.Logger

	parseResult, err := p.Parse(specPath)
	if err != nil {
		return nil, fmt.Errorf("generator: failed to parse specification: %w", err)
	}
	return g.GenerateParsed(*parseResult)
}

// GenerateBytes generates a client module from raw specification bytes.
func (g *Generator) GenerateBytes(data []byte) (*GenerateResult, error) {
	p := parser.New()
	p.Logger = g.Logger

	parseResult, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("generator: failed to parse specification: %w", err)
	}
	return g.GenerateParsed(*parseResult)
}

// GenerateParsed generates a client module from an already-parsed
// specification. The parsed document tree is consumed: normalization
// rewrites it in place.
func (g *Generator) GenerateParsed(parseResult parser.ParseResult) (*GenerateResult, error) {
	startTime := time.Now()

	result := &GenerateResult{
		Files:            make([]GeneratedFile, 0, 1),
		SourceVersion:    parseResult.Version,
		SourceOASVersion: parseResult.OASVersion,
		SourceFormat:     parseResult.SourceFormat,
		Issues:           make([]GenerateIssue, 0),
		LoadTime:         parseResult.LoadTime,
		SourceSize:       parseResult.SourceSize,
	}

	norm := &normalizer.Normalizer{LazyRefs: g.LazyRefs, Logger: g.Logger}
	normalized, err := norm.Normalize(&parseResult)
	if err != nil {
		return nil, fmt.Errorf("generator: normalization failed: %w", err)
	}
	result.Issues = append(result.Issues, normalized.Issues...)
	result.Converted = normalized.Converted

	ext := &extractor.Extractor{StrictRefs: g.StrictRefs, Logger: g.Logger}
	extracted, err := ext.Extract(normalized.Document)
	if err != nil {
		return nil, fmt.Errorf("generator: operation extraction failed: %w", err)
	}
	result.Issues = append(result.Issues, extracted.Issues...)

	content, err := g.generateModule(normalized.Document, extracted.Operations, result)
	if err != nil {
		return nil, err
	}

	result.Files = append(result.Files, GeneratedFile{
		Name:    moduleFileName,
		Content: []byte(content),
	})
	result.GeneratedOperations = len(extracted.Operations)
	result.GenerateTime = time.Since(startTime)
	g.updateCounts(result)
	result.Success = result.ErrorCount == 0 && result.CriticalCount == 0

	g.log().Debug("generated module",
		"operations", result.GeneratedOperations,
		"bytes", len(content),
		"issues", len(result.Issues))

	// In strict mode, fail on any issues
	if g.StrictMode && (result.CriticalCount > 0 || result.ErrorCount > 0 || result.WarningCount > 0) {
		return result, fmt.Errorf("generator: generation failed in strict mode: %d critical issue(s), %d error(s), %d warning(s)",
			result.CriticalCount, result.ErrorCount, result.WarningCount)
	}

	// Filter info messages if not included
	if !g.IncludeInfo {
		filtered := make([]GenerateIssue, 0, len(result.Issues))
		for _, issue := range result.Issues {
			if issue.Severity != SeverityInfo {
				filtered = append(filtered, issue)
			}
		}
		result.Issues = filtered
		result.InfoCount = 0
	}

	return result, nil
}

// moduleFileName is the single file the assembler produces.
const moduleFileName = "client.ts"

// generateModule synthesizes every operation block and assembles the
// final module text. An operation without an operationId is fatal here:
// nothing can name its factory.
func (g *Generator) generateModule(doc *document.Object, ops []extractor.Operation, result *GenerateResult) (string, error) {
	sh := &shaper.Shaper{Formats: g.formats(), Logger: g.Logger}
	syn := &synthesizer{
		compiler: g.compiler(),
		baseType: g.baseRequestType(),
	}

	blocks := make([]opBlock, 0, len(ops))
	for _, op := range ops {
		if op.OperationID == "" {
			return "", fmt.Errorf("generator: operation %s has no operationId to name its factory", operationKey(op))
		}
		shape, shapeIssues := sh.Shape(op, doc)
		result.Issues = append(result.Issues, shapeIssues...)

		block, err := syn.operationBlock(op, shape)
		if err != nil {
			var ce *generrors.CompileError
			if errors.As(err, &ce) && ce.OperationID == "" {
				ce.OperationID = op.OperationID
			}
			return "", fmt.Errorf("generator: type compilation for operation %q failed: %w", op.OperationID, err)
		}
		blocks = append(blocks, block)
	}

	assembled := assembleModule(doc, g.baseRequestType(), blocks)
	formatted, err := g.formatter().Format(assembled)
	if err != nil {
		return "", fmt.Errorf("generator: assembled module failed to format: %w", err)
	}
	return formatted, nil
}

// updateCounts updates the issue counts in the result
func (g *Generator) updateCounts(result *GenerateResult) {
	result.InfoCount = 0
	result.WarningCount = 0
	result.ErrorCount = 0
	result.CriticalCount = 0

	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityInfo:
			result.InfoCount++
		case SeverityWarning:
			result.WarningCount++
		case SeverityError:
			result.ErrorCount++
		case SeverityCritical:
			result.CriticalCount++
		}
	}
}
