package validator

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/upsight/schematools/composer"
	"github.com/upsight/schematools/internal/issues"
	"github.com/upsight/schematools/internal/severity"
	"github.com/upsight/schematools/loader"
)

// Violation represents a single validation issue.
type Violation = issues.Issue

// Violation kinds, re-exported for callers matching on Result contents.
const (
	KindMissingRequiredProperty = issues.KindMissingRequiredProperty
	KindUnexpectedProperty      = issues.KindUnexpectedProperty
	KindTypeMismatch            = issues.KindTypeMismatch
	KindFormatMismatch          = issues.KindFormatMismatch
)

// Result contains the results of validating an instance against an
// effective schema.
type Result struct {
	// Valid is true when no violations were found. Unvalidatable branches
	// do not make the instance invalid by themselves.
	Valid bool
	// Violations contains all collected violations in encounter order.
	Violations []Violation
	// Unvalidatable lists instance branches that could not be checked
	// because their schema failed to compose.
	Unvalidatable []Violation
}

// Validator validates instance values against effective schemas.
// The zero value is ready to use; a Validator is safe for concurrent use.
type Validator struct {
	// Logger is the structured logger for validation diagnostics.
	// If nil, logging is disabled.
	Logger loader.Logger
}

// New creates a new Validator with default settings.
func New() *Validator {
	return &Validator{}
}

func (v *Validator) log() loader.Logger {
	if v.Logger != nil {
		return v.Logger
	}
	return loader.NopLogger{}
}

// Validate walks schema against instance and returns all violations found.
// It is shorthand for ValidateResult(schema, instance).Violations.
func (v *Validator) Validate(schema *composer.Schema, instance any) []Violation {
	return v.ValidateResult(schema, instance).Violations
}

// ValidateResult walks schema against instance, collecting every violation
// and every unvalidatable branch.
func (v *Validator) ValidateResult(schema *composer.Schema, instance any) *Result {
	result := &Result{}
	v.walk(schema, instance, "", result)
	result.Valid = len(result.Violations) == 0
	v.log().Debug("instance validated",
		"violations", len(result.Violations), "unvalidatable", len(result.Unvalidatable))
	return result
}

// ValidateBytes decodes a JSON instance and validates it against schema.
// Numbers are decoded as json.Number so integer types survive the decode.
// A malformed instance is an error, not a violation.
func (v *Validator) ValidateBytes(schema *composer.Schema, data []byte) (*Result, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var instance any
	if err := dec.Decode(&instance); err != nil {
		return nil, fmt.Errorf("decoding instance: %w", err)
	}
	return v.ValidateResult(schema, instance), nil
}

func (v *Validator) walk(schema *composer.Schema, instance any, path string, result *Result) {
	if schema == nil {
		result.Unvalidatable = append(result.Unvalidatable, Violation{
			Path:     path,
			Kind:     issues.KindUnresolvableReference,
			Message:  "no schema available for this branch",
			Severity: severity.SeverityCritical,
		})
		return
	}

	// Surface composition diagnostics once per schema location so callers
	// see why a declared property went unchecked.
	for _, diag := range schema.Diagnostics {
		diag.Path = joinPath(path, diag.Path)
		result.Unvalidatable = append(result.Unvalidatable, diag)
	}

	if !typeAllowed(schema, instance) {
		result.Violations = append(result.Violations, Violation{
			Path:     path,
			Kind:     KindTypeMismatch,
			Message:  fmt.Sprintf("value of kind %s is not allowed by type %v", instanceKind(instance), schema.Types),
			Severity: severity.SeverityError,
			Value:    instance,
		})
		// A value of the wrong kind cannot be checked further.
		return
	}

	if s, ok := instance.(string); ok && schema.Format == "uri" {
		if !isValidURI(s) {
			result.Violations = append(result.Violations, Violation{
				Path:     path,
				Kind:     KindFormatMismatch,
				Message:  fmt.Sprintf("%q is not a valid uri", s),
				Severity: severity.SeverityError,
				Value:    s,
			})
		}
	}

	if obj, ok := instance.(map[string]any); ok {
		v.walkObject(schema, obj, path, result)
	}

	if arr, ok := instance.([]any); ok && schema.Items != nil {
		for i, item := range arr {
			v.walk(schema.Items, item, fmt.Sprintf("%s[%d]", path, i), result)
		}
	}
}

func (v *Validator) walkObject(schema *composer.Schema, obj map[string]any, path string, result *Result) {
	for _, name := range schema.Required {
		if _, present := obj[name]; !present {
			result.Violations = append(result.Violations, Violation{
				Path:     joinPath(path, name),
				Kind:     KindMissingRequiredProperty,
				Message:  fmt.Sprintf("required property %q is missing", name),
				Severity: severity.SeverityError,
				Field:    name,
			})
		}
	}

	if !schema.AdditionalProperties {
		// Map iteration order is random; sort so reports are reproducible.
		var unexpected []string
		for key := range obj {
			if !schema.HasProperty(key) {
				unexpected = append(unexpected, key)
			}
		}
		sort.Strings(unexpected)
		for _, key := range unexpected {
			result.Violations = append(result.Violations, Violation{
				Path:     joinPath(path, key),
				Kind:     KindUnexpectedProperty,
				Message:  fmt.Sprintf("property %q is not allowed", key),
				Severity: severity.SeverityError,
				Field:    key,
			})
		}
	}

	for _, name := range schema.PropertyOrder {
		value, present := obj[name]
		if !present {
			continue
		}
		prop := schema.Properties[name]
		if prop == nil {
			// Branch already surfaced via schema.Diagnostics.
			continue
		}
		v.walk(prop, value, joinPath(path, name), result)
	}
}

// typeAllowed reports whether the instance's runtime kind is a member of
// the schema's declared type set. An empty set allows everything.
func typeAllowed(schema *composer.Schema, instance any) bool {
	if len(schema.Types) == 0 {
		return true
	}
	for _, t := range schema.Types {
		if matchesType(instance, t) {
			return true
		}
	}
	return false
}

// matchesType reports whether value's runtime kind satisfies the named
// schema type.
func matchesType(value any, t string) bool {
	switch t {
	case "null":
		return value == nil
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "string":
		_, ok := value.(string)
		return ok
	case "integer":
		return isNumber(value) && isIntegral(value)
	case "number":
		return isNumber(value)
	case "object":
		_, ok := value.(map[string]any)
		return ok
	case "array":
		_, ok := value.([]any)
		return ok
	default:
		return false
	}
}

// instanceKind names the runtime kind of an instance value for messages.
func instanceKind(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		if isNumber(value) {
			if isIntegral(value) {
				return "integer"
			}
			return "number"
		}
		return fmt.Sprintf("%T", value)
	}
}

func isNumber(value any) bool {
	switch value.(type) {
	case int, int32, int64, float32, float64, json.Number:
		return true
	default:
		return false
	}
}

func isIntegral(value any) bool {
	switch n := value.(type) {
	case int, int32, int64:
		return true
	case float32:
		return n == float32(int64(n))
	case float64:
		return n == float64(int64(n))
	case json.Number:
		_, err := strconv.ParseInt(n.String(), 10, 64)
		return err == nil
	default:
		return false
	}
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	if name == "" {
		return parent
	}
	return parent + "." + name
}
