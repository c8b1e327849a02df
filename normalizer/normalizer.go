package normalizer

import (
	"fmt"

	"github.com/erraggy/tsreqgen/converter"
	"github.com/erraggy/tsreqgen/document"
	"github.com/erraggy/tsreqgen/generrors"
	"github.com/erraggy/tsreqgen/internal/issues"
	"github.com/erraggy/tsreqgen/internal/severity"
	"github.com/erraggy/tsreqgen/parser"
)

// Severity re-exports the severity level type for normalization issues.
type Severity = severity.Severity

// Severity levels for normalization issues.
const (
	SeverityInfo     = severity.SeverityInfo
	SeverityWarning  = severity.SeverityWarning
	SeverityCritical = severity.SeverityCritical
)

// Issue re-exports the issue type carried on normalization results.
type Issue = issues.Issue

// Resolver resolves document-local references. Dereference rewrites the
// tree in place for the full-resolution mode; Has and Get serve lazy
// lookups when the tree keeps its references.
type Resolver interface {
	Dereference(doc *document.Object) error
	Has(doc *document.Object, ref string) bool
	Get(doc *document.Object, ref string) (any, error)
}

// DocumentConverter converts a Swagger 2.0 document tree to OpenAPI 3.x.
type DocumentConverter interface {
	Convert(doc *document.Object) (*document.Object, []Issue, error)
}

// Default collaborator implementations.
var (
	_ Resolver          = (*parser.RefResolver)(nil)
	_ DocumentConverter = (*converter.Converter)(nil)
)

// Normalizer prepares a parsed document for operation extraction. Swagger
// 2.0 input is pruned of dangling references and converted to OpenAPI
// 3.x; references are resolved in place unless LazyRefs is set; schema
// reference cycles are broken with untyped marker leaves so the result is
// safe for direct traversal.
type Normalizer struct {
	// Resolver resolves document-local references. Defaults to
	// parser.NewRefResolver().
	Resolver Resolver
	// Converter converts Swagger 2.0 input. Defaults to converter.New().
	Converter DocumentConverter
	// LazyRefs keeps references in the tree instead of dereferencing;
	// downstream stages resolve them through the Resolver as needed.
	LazyRefs bool
	// Logger receives debug output when set
	Logger parser.Logger
}

// New creates a Normalizer with default collaborators.
func New() *Normalizer {
	return &Normalizer{}
}

// Result carries the normalized document and what normalization did to it.
type Result struct {
	// Document is the normalized OpenAPI 3.x tree
	Document *document.Object
	// SourceOASVersion is the version series of the input document
	SourceOASVersion parser.OASVersion
	// Converted reports whether a Swagger 2.0 input was converted
	Converted bool
	// Issues records pruned references, conversion notes, and broken cycles
	Issues []Issue
	// PrunedRefs counts dangling references removed from Swagger 2.0 input
	PrunedRefs int
	// BrokenCycles counts cyclic edges replaced with markers
	BrokenCycles int
}

func (n *Normalizer) resolver() Resolver {
	if n.Resolver != nil {
		return n.Resolver
	}
	return parser.NewRefResolver()
}

func (n *Normalizer) docConverter() DocumentConverter {
	if n.Converter != nil {
		return n.Converter
	}
	return converter.New()
}

func (n *Normalizer) log() parser.Logger {
	if n.Logger != nil {
		return n.Logger
	}
	return parser.NopLogger{}
}

// Normalize runs the normalization pipeline over a parsed document. The
// input tree is mutated and owned by the result afterwards. Resolution
// and conversion failures are fatal; dangling Swagger 2.0 references and
// schema cycles are repaired and reported as issues instead.
func (n *Normalizer) Normalize(parsed *parser.ParseResult) (*Result, error) {
	if parsed == nil || parsed.Document == nil {
		return nil, &generrors.ConfigError{
			Option:  "parsed",
			Message: "normalization requires a parsed document",
		}
	}

	doc := parsed.Document
	result := &Result{SourceOASVersion: parsed.OASVersion}

	if parsed.IsOAS2() {
		// Pruning must run before conversion; the converter does not
		// tolerate dangling references.
		pruned := pruneDanglingRefs(doc, n.resolver())
		for _, pr := range pruned {
			result.Issues = append(result.Issues, Issue{
				Path:     pr.path,
				Message:  fmt.Sprintf("Pruned dangling reference %q", pr.ref),
				Severity: SeverityWarning,
				Context:  "the reference target does not exist in the document",
			})
		}
		result.PrunedRefs = len(pruned)

		converted, convIssues, err := n.docConverter().Convert(doc)
		if err != nil {
			return nil, fmt.Errorf("normalizer: conversion to OpenAPI 3.x failed: %w", err)
		}
		result.Issues = append(result.Issues, convIssues...)
		doc = converted
		result.Converted = true
	}

	if !n.LazyRefs {
		if err := n.resolver().Dereference(doc); err != nil {
			return nil, fmt.Errorf("normalizer: reference resolution failed: %w", err)
		}
	}

	broken := breakCycles(doc)
	for _, bc := range broken {
		result.Issues = append(result.Issues, Issue{
			Path:     bc.path,
			Message:  bc.message,
			Severity: SeverityInfo,
			Context:  "recursive schemas cannot be typed statically",
		})
	}
	result.BrokenCycles = len(broken)
	result.Document = doc

	n.log().Debug("normalized document",
		"oasVersion", result.SourceOASVersion.String(),
		"converted", result.Converted,
		"prunedRefs", result.PrunedRefs,
		"brokenCycles", result.BrokenCycles)
	return result, nil
}
