package generator

import (
	"fmt"

	"github.com/erraggy/tsreqgen/parser"
	"github.com/erraggy/tsreqgen/typegen"
)

// Option is a function that configures a generate operation
type Option func(*generateConfig) error

// generateConfig holds configuration for a generate operation
type generateConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	data     []byte
	parsed   *parser.ParseResult

	// Configuration options
	baseRequestType string
	lazyRefs        bool
	strictRefs      bool
	strictMode      bool
	includeInfo     bool
	formats         typegen.FormatMap
	typeCompiler    TypeCompiler
	formatter       Formatter
	logger          parser.Logger
}

// GenerateWithOptions generates a client module from an OpenAPI
// specification using functional options. This combines input source
// selection and configuration in a single call.
//
// Example:
//
//	result, err := generator.GenerateWithOptions(
//	    generator.WithFilePath("openapi.yaml"),
//	    generator.WithBaseRequestType("AxiosRequestConfig"),
//	    generator.WithStrictMode(true),
//	)
func GenerateWithOptions(opts ...Option) (*GenerateResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("generator: invalid options: %w", err)
	}

	g := &Generator{
		BaseRequestType: cfg.baseRequestType,
		LazyRefs:        cfg.lazyRefs,
		StrictRefs:      cfg.strictRefs,
		StrictMode:      cfg.strictMode,
		IncludeInfo:     cfg.includeInfo,
		Formats:         cfg.formats,
		TypeCompiler:    cfg.typeCompiler,
		Formatter:       cfg.formatter,
		Logger:          cfg.logger,
	}

	// Route to the generation method matching the input source
	if cfg.filePath != nil {
		return g.Generate(*cfg.filePath)
	}
	if cfg.data != nil {
		return g.GenerateBytes(cfg.data)
	}
	if cfg.parsed != nil {
		return g.GenerateParsed(*cfg.parsed)
	}

	// Should never reach here due to validation in applyOptions
	return nil, fmt.Errorf("generator: no input source specified")
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*generateConfig, error) {
	cfg := &generateConfig{
		// Set defaults
		baseRequestType: defaultBaseRequestType,
		includeInfo:     true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	// Validate exactly one input source is specified
	sourceCount := 0
	if cfg.filePath != nil {
		sourceCount++
	}
	if cfg.data != nil {
		sourceCount++
	}
	if cfg.parsed != nil {
		sourceCount++
	}

	if sourceCount == 0 {
		return nil, fmt.Errorf("generator: must specify an input source (use WithFilePath, WithBytes, or WithParsed)")
	}
	if sourceCount > 1 {
		return nil, fmt.Errorf("generator: must specify exactly one input source")
	}

	return cfg, nil
}

// WithFilePath specifies a file path as the input source. The path "-"
// reads the document from stdin.
func WithFilePath(path string) Option {
	return func(cfg *generateConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithBytes specifies raw specification bytes as the input source
func WithBytes(data []byte) Option {
	return func(cfg *generateConfig) error {
		if len(data) == 0 {
			return fmt.Errorf("generator: input bytes cannot be empty")
		}
		cfg.data = data
		return nil
	}
}

// WithParsed specifies a parsed ParseResult as the input source
func WithParsed(result parser.ParseResult) Option {
	return func(cfg *generateConfig) error {
		cfg.parsed = &result
		return nil
	}
}

// WithBaseRequestType names the request-options type declared in the
// module prelude and narrowed by per-operation Config types
// Default: "RequestOptions"
func WithBaseRequestType(name string) Option {
	return func(cfg *generateConfig) error {
		if name == "" {
			return fmt.Errorf("generator: base request type cannot be empty")
		}
		cfg.baseRequestType = name
		return nil
	}
}

// WithLazyRefs keeps document references lazily resolvable instead of
// dereferencing the whole tree up front
// Default: false
func WithLazyRefs(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.lazyRefs = enabled
		return nil
	}
}

// WithStrictRefs turns silently-dropped unresolvable references into
// generation errors
// Default: false
func WithStrictRefs(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.strictRefs = enabled
		return nil
	}
}

// WithStrictMode enables or disables strict mode (fail on any issues)
// Default: false
func WithStrictMode(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.strictMode = enabled
		return nil
	}
}

// WithIncludeInfo enables or disables informational messages
// Default: true
func WithIncludeInfo(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.includeInfo = enabled
		return nil
	}
}

// WithFormats overrides the primitive type/format mapping table
// Default: typegen.DefaultFormats()
func WithFormats(formats typegen.FormatMap) Option {
	return func(cfg *generateConfig) error {
		if formats == nil {
			return fmt.Errorf("generator: formats cannot be nil")
		}
		cfg.formats = formats
		return nil
	}
}

// WithTypeCompiler replaces the helper schema compiler
// Default: typegen.New()
func WithTypeCompiler(c TypeCompiler) Option {
	return func(cfg *generateConfig) error {
		if c == nil {
			return fmt.Errorf("generator: type compiler cannot be nil")
		}
		cfg.typeCompiler = c
		return nil
	}
}

// WithFormatter replaces the module formatter
// Default: tsformat.New()
func WithFormatter(f Formatter) Option {
	return func(cfg *generateConfig) error {
		if f == nil {
			return fmt.Errorf("generator: formatter cannot be nil")
		}
		cfg.formatter = f
		return nil
	}
}

// WithLogger sets the logger for structured debug output
// Default: none
func WithLogger(logger parser.Logger) Option {
	return func(cfg *generateConfig) error {
		cfg.logger = logger
		return nil
	}
}
