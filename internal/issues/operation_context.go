package issues

import "fmt"

// OperationContext provides API operation context for issues.
// For issues under paths.*, it identifies the specific operation.
// For issues inside components or definitions, it marks the issue as
// belonging to a reusable component.
type OperationContext struct {
	// Method is the HTTP method (get, post, etc.) - empty for path-level issues
	Method string
	// Path is the API path pattern (e.g., "/users/{id}")
	Path string
	// OperationID is the operationId if defined (may be empty)
	OperationID string
	// IsReusableComponent is true when the issue is in components/definitions
	IsReusableComponent bool
}

// String returns a formatted string representation of the operation context.
// Returns empty string if the context is empty.
func (c OperationContext) String() string {
	if c.IsEmpty() {
		return ""
	}

	if c.IsReusableComponent && c.Method == "" && c.OperationID == "" {
		return "(component)"
	}

	var primary string
	if c.OperationID != "" {
		primary = fmt.Sprintf("operationId: %s", c.OperationID)
	} else if c.Method != "" {
		primary = fmt.Sprintf("%s %s", c.Method, c.Path)
	} else if c.Path != "" {
		// Path-level (no method)
		return fmt.Sprintf("(path: %s)", c.Path)
	}

	return fmt.Sprintf("(%s)", primary)
}

// IsEmpty returns true if the context has no meaningful information.
func (c OperationContext) IsEmpty() bool {
	return c.Method == "" && c.Path == "" && c.OperationID == "" && !c.IsReusableComponent
}
