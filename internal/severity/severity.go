// Package severity provides severity level constants and utilities
// for issues reported by the validator, composer, and walker packages.
//
// The severity levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

// Severity indicates the severity level of an issue found during
// validation, composition, or reference walking.
type Severity int

const (
	// SeverityError indicates a violation that makes the instance invalid
	// or a reference that cannot be resolved.
	SeverityError Severity = iota

	// SeverityWarning indicates a recommendation that does not prevent
	// processing but should be addressed.
	SeverityWarning

	// SeverityInfo indicates informational messages about processing choices.
	SeverityInfo

	// SeverityCritical indicates a branch that could not be processed at all,
	// such as a property subtree behind a circular reference.
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
