// Package severity provides severity level constants and utilities
// for issues reported by the converter, normalizer, extractor, and
// generator packages.
//
// All four severity levels are exported by each public package that uses them:
//   - SeverityInfo: Informational messages about choices made
//   - SeverityWarning: Lossy recoveries or recommendations
//   - SeverityError: Problems that invalidate part of the output
//   - SeverityCritical: Features that cannot be processed (data loss)
//
// The numeric values are ordered from least to most severe, so direct
// comparison works: Info < Warning < Error < Critical.
package severity

// Severity indicates the severity level of an issue during conversion,
// normalization, extraction, or code generation.
type Severity int

const (
	// SeverityInfo indicates informational messages about processing choices.
	// These are non-actionable notices that may be useful for debugging.
	SeverityInfo Severity = iota

	// SeverityWarning indicates lossy recoveries, such as a pruned dangling
	// reference or a broken reference cycle, that don't prevent generation
	// but should be reviewed.
	SeverityWarning

	// SeverityError indicates a problem that invalidates part of the output,
	// such as an operation whose schema could not be compiled.
	SeverityError

	// SeverityCritical indicates features that cannot be processed without
	// data loss. Used when generation must skip or alter functionality.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Max returns the more severe of a and b.
func Max(a, b Severity) Severity {
	if a > b {
		return a
	}
	return b
}
