// Package generrors provides structured error types for the tsreqgen library.
//
// Import path: github.com/erraggy/tsreqgen/generrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between different categories of errors and implement
// appropriate recovery strategies.
//
// # Error Types
//
// The package provides five core error types:
//
//   - [ParseError]: YAML/JSON parsing failures and structural issues
//   - [ReferenceError]: $ref resolution failures and circular references
//   - [ConversionError]: Swagger 2.0 to OpenAPI 3.x conversion failures
//   - [CompileError]: schema to TypeScript type compilation failures
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrCircularReference]: Matches [ReferenceError] with IsCircular=true
//   - [ErrConversion]: Matches any [ConversionError]
//   - [ErrCompile]: Matches any [CompileError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// [ErrFormat] has no dedicated type; formatter failures wrap it directly
// together with the formatter's own error.
//
// # Usage Examples
//
// Check error category with errors.Is():
//
//	result, err := generator.Generate(generator.WithInputPath("api.yaml"))
//	if errors.Is(err, generrors.ErrParse) {
//	    // Handle parse error
//	}
//
// Extract error details with errors.As():
//
//	var refErr *generrors.ReferenceError
//	if errors.As(err, &refErr) {
//	    fmt.Printf("failed to resolve ref: %s\n", refErr.Ref)
//	}
//
// # Error Chaining
//
// All error types support error chaining via the Cause field and Unwrap()
// method, so root causes remain reachable through the standard error chain.
package generrors
