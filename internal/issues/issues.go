// Package issues provides a unified issue type for validation violations
// and resolution diagnostics.
package issues

import (
	"fmt"

	"github.com/upsight/schematools/internal/severity"
)

// Violation kinds reported by the validator and composer.
const (
	KindMissingRequiredProperty = "missing_required_property"
	KindUnexpectedProperty      = "unexpected_property"
	KindTypeMismatch            = "type_mismatch"
	KindFormatMismatch          = "format_mismatch"
	KindUnresolvableReference   = "unresolvable_reference"
	KindCircularReference       = "circular_reference"
)

// Issue represents a single problem found during validation or resolution.
type Issue struct {
	// Path is the instance path to the offending value (e.g. "url" or
	// "items[2].name"). Empty for issues about the instance root.
	Path string
	// Kind is one of the Kind* constants above.
	Kind string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Field is the specific property name that has the issue, when applicable
	Field string
	// Value is the problematic value (optional)
	Value any
	// Ref is the reference string involved, for resolution issues
	Ref string
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	path := i.Path
	if path == "" {
		path = "(root)"
	}

	result := fmt.Sprintf("%s %s: %s", symbol, path, i.Message)
	if i.Ref != "" {
		result += fmt.Sprintf("\n    Ref: %s", i.Ref)
	}
	return result
}
