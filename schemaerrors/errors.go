// Package schemaerrors provides structured error types for schematools.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of failures and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - LoadError: document loading and YAML/JSON parsing failures
//   - ReferenceError: $ref resolution failures and circular references
//   - CompositionError: allOf merge conflicts
//
// # Usage with errors.As
//
//	node, err := r.ResolveFully("#/circular_ref_chain_1", ctx)
//	if err != nil {
//	    var refErr *schemaerrors.ReferenceError
//	    if errors.As(err, &refErr) {
//	        if refErr.IsCircular {
//	            // Handle circular reference specifically
//	        }
//	    }
//	}
package schemaerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrLoad indicates a document could not be loaded or parsed.
	ErrLoad = errors.New("load error")

	// ErrReference indicates a reference resolution failure.
	ErrReference = errors.New("reference error")

	// ErrCircularReference indicates a circular $ref was detected.
	ErrCircularReference = errors.New("circular reference")

	// ErrComposition indicates an allOf composition conflict.
	ErrComposition = errors.New("composition error")
)

// LoadError represents a failure to load a schema document.
// This includes missing files and YAML/JSON deserialization errors.
type LoadError struct {
	// Identity is the logical document identity that failed to load
	Identity string
	// Message describes the loading failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *LoadError) Error() string {
	msg := "load error"
	if e.Identity != "" {
		msg += " for " + e.Identity
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// ReferenceError represents a failure to resolve a $ref.
// This includes references to missing files, keys, or sequence indexes,
// and reference chains that revisit a (document, pointer) pair.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// RefType indicates the reference type: "local" or "file"
	RefType string
	// IsCircular is true if this error is due to a circular reference
	IsCircular bool
	// Chain is the ordered list of (document#pointer) keys traversed before
	// the failure. For circular references it names the full cycle, ending
	// with the key that was revisited.
	Chain []string
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "unresolvable reference"
	if e.IsCircular {
		msg = "circular reference"
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if len(e.Chain) > 0 {
		msg += " (chain: " + strings.Join(e.Chain, " -> ") + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrReference, and also ErrCircularReference when IsCircular is set.
func (e *ReferenceError) Is(target error) bool {
	if target == ErrReference {
		return true
	}
	if target == ErrCircularReference && e.IsCircular {
		return true
	}
	return false
}

// CompositionError represents an allOf merge conflict that the defined
// last-write-wins policy cannot resolve deterministically. It is not
// expected to trigger under the default merge rules, but the type exists
// for stricter composition modes.
type CompositionError struct {
	// Pointer is the document#pointer key of the schema being composed
	Pointer string
	// Keyword is the schema keyword that conflicted (e.g. "properties")
	Keyword string
	// Message describes the conflict
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *CompositionError) Error() string {
	msg := "composition error"
	if e.Pointer != "" {
		msg += " at " + e.Pointer
	}
	if e.Keyword != "" {
		msg += fmt.Sprintf(" (keyword: %s)", e.Keyword)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *CompositionError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *CompositionError) Is(target error) bool {
	return target == ErrComposition
}
