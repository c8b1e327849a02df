package severity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityString(t *testing.T) {
	tests := []struct {
		name     string
		severity Severity
		expected string
	}{
		// Valid severity levels
		{"info level", SeverityInfo, "info"},
		{"warning level", SeverityWarning, "warning"},
		{"error level", SeverityError, "error"},
		{"critical level", SeverityCritical, "critical"},

		// Edge cases: Invalid severity values
		{"unknown negative", Severity(-1), "unknown"},
		{"unknown large value", Severity(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.severity.String()
			assert.Equal(t, tt.expected, result, "Severity(%d).String() = %q, want %q", tt.severity, result, tt.expected)
		})
	}
}

// TestSeverityOrdering verifies the numeric values order from least to
// most severe so callers can compare directly.
func TestSeverityOrdering(t *testing.T) {
	assert.Less(t, SeverityInfo, SeverityWarning)
	assert.Less(t, SeverityWarning, SeverityError)
	assert.Less(t, SeverityError, SeverityCritical)
}

func TestMax(t *testing.T) {
	assert.Equal(t, SeverityWarning, Max(SeverityInfo, SeverityWarning))
	assert.Equal(t, SeverityWarning, Max(SeverityWarning, SeverityInfo))
	assert.Equal(t, SeverityCritical, Max(SeverityCritical, SeverityError))
	assert.Equal(t, SeverityError, Max(SeverityError, SeverityError))
}

// TestSeverityStringConsistency verifies that all defined severity levels
// return non-empty, lowercase strings without whitespace.
func TestSeverityStringConsistency(t *testing.T) {
	severities := []Severity{
		SeverityInfo,
		SeverityWarning,
		SeverityError,
		SeverityCritical,
	}

	for _, sev := range severities {
		str := sev.String()

		// Should not be empty
		assert.NotEmpty(t, str, "Severity(%d).String() should not be empty", sev)

		// Should not contain whitespace
		assert.NotContains(t, str, " ", "Severity string should not contain spaces: %q", str)
		assert.NotContains(t, str, "\t", "Severity string should not contain tabs: %q", str)
		assert.NotContains(t, str, "\n", "Severity string should not contain newlines: %q", str)
	}
}
