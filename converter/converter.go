package converter

import (
	"fmt"

	"github.com/erraggy/tsreqgen/document"
	"github.com/erraggy/tsreqgen/generrors"
	"github.com/erraggy/tsreqgen/internal/issues"
	"github.com/erraggy/tsreqgen/internal/severity"
	"github.com/erraggy/tsreqgen/parser"
)

// Severity indicates the severity level of a conversion issue
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about conversion choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates lossy conversions or best-effort transformations
	SeverityWarning = severity.SeverityWarning
	// SeverityCritical indicates features that cannot be converted (data loss)
	SeverityCritical = severity.SeverityCritical
)

// ConversionIssue represents a single conversion issue or limitation
type ConversionIssue = issues.Issue

// DefaultTargetVersion is the OpenAPI version written to converted documents
const DefaultTargetVersion = "3.0.3"

// ConversionResult contains the results of converting a Swagger 2.0 document
type ConversionResult struct {
	// Document is the converted OpenAPI 3.x document tree
	Document *document.Object
	// SourceVersion is the version string the source document declared
	SourceVersion string
	// TargetVersion is the version string written to the converted document
	TargetVersion string
	// Issues contains all conversion issues
	Issues []ConversionIssue
	// InfoCount is the total number of info messages
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// CriticalCount is the total number of critical issues
	CriticalCount int
	// Success is true if conversion completed without critical issues
	Success bool
}

// HasCriticalIssues returns true if there are any critical issues
func (r *ConversionResult) HasCriticalIssues() bool {
	return r.CriticalCount > 0
}

// HasWarnings returns true if there are any warnings
func (r *ConversionResult) HasWarnings() bool {
	return r.WarningCount > 0
}

// Converter converts Swagger 2.0 document trees to OpenAPI 3.x.
// The conversion is structural: definitions move under components.schemas,
// body and formData parameters become a requestBody, response schemas and
// produces become content maps, and every local $ref is rewritten to its
// components-prefixed form. Declaration order of paths, methods, and
// properties is preserved throughout.
type Converter struct {
	// TargetVersion is the version string written to the converted
	// document. Defaults to DefaultTargetVersion when empty.
	TargetVersion string
	// StrictMode causes conversion to fail on warnings and critical issues
	StrictMode bool
	// IncludeInfo determines whether informational messages are kept in
	// the result
	IncludeInfo bool
}

// New creates a new Converter instance with default settings
func New() *Converter {
	return &Converter{
		TargetVersion: DefaultTargetVersion,
		IncludeInfo:   true,
	}
}

// Convert converts a Swagger 2.0 document tree to OpenAPI 3.x and returns
// the converted tree plus any conversion issues. It is the method the
// pipeline's document-converter contract names; ConvertParsed exposes the
// full result.
func (c *Converter) Convert(doc *document.Object) (*document.Object, []ConversionIssue, error) {
	result, err := c.ConvertParsed(doc)
	if err != nil {
		return nil, nil, err
	}
	return result.Document, result.Issues, nil
}

// ConvertParsed converts a Swagger 2.0 document tree to OpenAPI 3.x.
// Subtrees are moved from the source into the converted document and
// rewritten in place, so the source must be discarded after conversion.
func (c *Converter) ConvertParsed(doc *document.Object) (*ConversionResult, error) {
	targetVersion := c.TargetVersion
	if targetVersion == "" {
		targetVersion = DefaultTargetVersion
	}
	if v, ok := parser.ParseVersion(targetVersion); !ok || v == parser.OASVersion20 {
		return nil, &generrors.ConfigError{
			Option:  "TargetVersion",
			Value:   targetVersion,
			Message: "target version must be an OpenAPI 3.x version",
		}
	}

	sourceVersion, ok := doc.Str("swagger")
	if !ok {
		return nil, &generrors.ConversionError{
			TargetVersion: targetVersion,
			Message:       "document is not a Swagger 2.0 document (missing swagger key)",
		}
	}

	result := &ConversionResult{
		SourceVersion: sourceVersion,
		TargetVersion: targetVersion,
		Issues:        make([]ConversionIssue, 0),
	}

	result.Document = c.convertDocument(doc, result)
	c.updateCounts(result)
	result.Success = result.CriticalCount == 0

	if c.StrictMode && (result.CriticalCount > 0 || result.WarningCount > 0) {
		return result, &generrors.ConversionError{
			SourceVersion: sourceVersion,
			TargetVersion: targetVersion,
			Message: fmt.Sprintf("conversion failed in strict mode: %d critical issue(s), %d warning(s)",
				result.CriticalCount, result.WarningCount),
		}
	}

	if !c.IncludeInfo {
		filtered := make([]ConversionIssue, 0, len(result.Issues))
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

// updateCounts updates the issue counts in the result
func (c *Converter) updateCounts(result *ConversionResult) {
	result.InfoCount = 0
	result.WarningCount = 0
	result.CriticalCount = 0

	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityInfo:
			result.InfoCount++
		case SeverityWarning:
			result.WarningCount++
		case SeverityCritical:
			result.CriticalCount++
		}
	}
}

// addIssue is a helper to add a conversion issue to the result
func (c *Converter) addIssue(result *ConversionResult, path, message string, sev Severity) {
	result.Issues = append(result.Issues, ConversionIssue{
		Path:     path,
		Message:  message,
		Severity: sev,
	})
}

// addIssueWithContext is a helper to add a warning issue with context
func (c *Converter) addIssueWithContext(result *ConversionResult, path, message, context string) {
	result.Issues = append(result.Issues, ConversionIssue{
		Path:     path,
		Message:  message,
		Severity: SeverityWarning,
		Context:  context,
	})
}
