package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/tsreqgen/document"
	"github.com/erraggy/tsreqgen/generrors"
)

// SourceFormat indicates the serialization format of the source document
type SourceFormat string

const (
	// SourceFormatUnknown indicates the format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
	// SourceFormatYAML indicates a YAML source document
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates a JSON source document
	SourceFormatJSON SourceFormat = "json"
)

// Parser parses OpenAPI specification documents into ordered document trees.
// The zero value is ready to use; New() is provided for symmetry with the
// rest of the pipeline.
type Parser struct {
	// Logger receives structured debug output during parsing.
	// When nil, no logging is performed.
	Logger Logger
}

// New creates a new Parser with default settings
func New() *Parser {
	return &Parser{}
}

// log returns the configured logger, or a no-op logger if none is set
func (p *Parser) log() Logger {
	if p.Logger == nil {
		return NopLogger{}
	}
	return p.Logger
}

// ParseResult contains the parsed document tree and metadata about the parse
type ParseResult struct {
	// SourcePath is the path the document was loaded from. For byte and
	// reader input this is a synthetic name ("ParseBytes.yaml" etc.);
	// for stdin it is "-".
	SourcePath string
	// SourceFormat is the detected serialization format
	SourceFormat SourceFormat
	// Version is the raw version string declared at the document root
	// (the value of the "swagger" or "openapi" key)
	Version string
	// OASVersion is the classified specification series
	OASVersion OASVersion
	// Document is the parsed document tree with key order preserved
	Document *document.Object
	// LoadTime is the time spent reading and parsing the source
	LoadTime time.Duration
	// SourceSize is the size of the source document in bytes
	SourceSize int64
}

// IsOAS2 returns true if the document declared a Swagger 2.0 root
func (pr *ParseResult) IsOAS2() bool {
	return pr.OASVersion == OASVersion20
}

// IsOAS3 returns true if the document declared an OpenAPI 3.x root
func (pr *ParseResult) IsOAS3() bool {
	return pr.OASVersion >= OASVersion30
}

// Parse parses an OpenAPI specification from a file path.
// The path "-" reads the document from stdin.
func (p *Parser) Parse(specPath string) (*ParseResult, error) {
	if specPath == "-" {
		res, err := p.ParseReader(os.Stdin)
		if err != nil {
			return nil, err
		}
		res.SourcePath = "-"
		return res, nil
	}

	loadStart := time.Now()
	data, err := os.ReadFile(specPath)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read file: %w", err)
	}

	res, err := p.parseBytes(data, specPath)
	if err != nil {
		return nil, err
	}
	res.LoadTime = time.Since(loadStart)

	// Prefer the file extension over content sniffing when it is conclusive
	if format := detectFormatFromPath(specPath); format != SourceFormatUnknown {
		res.SourceFormat = format
	}
	return res, nil
}

// ParseReader parses an OpenAPI specification from an io.Reader.
// Since there is no actual file path, SourcePath is set to
// ParseReader.yaml or ParseReader.json.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read data: %w", err)
	}

	res, err := p.parseBytes(data, "ParseReader.yaml")
	if err != nil {
		return nil, err
	}
	res.LoadTime = time.Since(loadStart)
	if res.SourceFormat == SourceFormatJSON {
		res.SourcePath = "ParseReader.json"
	}
	return res, nil
}

// ParseBytes parses an OpenAPI specification from a byte slice.
// Since there is no actual file path, SourcePath is set to
// ParseBytes.yaml or ParseBytes.json.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	res, err := p.parseBytes(data, "ParseBytes.yaml")
	if err != nil {
		return nil, err
	}
	if res.SourceFormat == SourceFormatJSON {
		res.SourcePath = "ParseBytes.json"
	}
	return res, nil
}

// parseBytes builds the document tree and detects the declared version
func (p *Parser) parseBytes(data []byte, sourcePath string) (*ParseResult, error) {
	parseStart := time.Now()

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &generrors.ParseError{Path: sourcePath, Message: "document is empty"}
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &generrors.ParseError{
			Path:    sourcePath,
			Message: "invalid YAML or JSON syntax",
			Cause:   err,
		}
	}

	built, err := document.Build(&root)
	if err != nil {
		return nil, &generrors.ParseError{
			Path:    sourcePath,
			Message: "failed to build document tree",
			Cause:   err,
		}
	}
	doc, ok := built.(*document.Object)
	if !ok {
		return nil, &generrors.ParseError{
			Path:    sourcePath,
			Message: fmt.Sprintf("document root must be an object, got %T", built),
		}
	}

	version, oasVersion, err := detectVersion(doc, sourcePath)
	if err != nil {
		return nil, err
	}

	res := &ParseResult{
		SourcePath:   sourcePath,
		SourceFormat: detectFormatFromContent(data),
		Version:      version,
		OASVersion:   oasVersion,
		Document:     doc,
		LoadTime:     time.Since(parseStart),
		SourceSize:   int64(len(data)),
	}
	p.log().Debug("parsed document",
		"version", version,
		"series", oasVersion.String(),
		"format", string(res.SourceFormat),
		"bytes", res.SourceSize)
	return res, nil
}

// detectVersion reads the version declaration from the document root.
// A "swagger" key marks the 2.0 branch; an "openapi" key marks 3.x even
// when its value does not classify cleanly.
func detectVersion(doc *document.Object, sourcePath string) (string, OASVersion, error) {
	if raw, ok := doc.Str("swagger"); ok {
		return raw, OASVersion20, nil
	}
	if raw, ok := doc.Str("openapi"); ok {
		v, valid := ParseVersion(raw)
		if !valid || v == OASVersion20 {
			v = OASVersion30
		}
		return raw, v, nil
	}
	return "", Unknown, &generrors.ParseError{
		Path: sourcePath,
		Message: "unable to detect OpenAPI version: document must contain either " +
			"'swagger: \"2.0\"' (for OAS 2.0) or 'openapi: \"3.x.x\"' (for OAS 3.x) at the root level",
	}
}

// detectFormatFromPath detects the format from the file extension
func detectFormatFromPath(path string) SourceFormat {
	switch filepath.Ext(path) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent detects the format from the content bytes.
// JSON documents start with '{' or '['; anything else is treated as YAML.
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// FormatBytes formats a byte count into a human-readable string using binary units (KiB, MiB, etc.)
func FormatBytes(size int64) string {
	if size < 0 {
		return fmt.Sprintf("%d B", size)
	}

	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
