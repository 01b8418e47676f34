package composer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/upsight/schematools/internal/issues"
)

// Schema is an effective schema: the flat, acyclic-by-construction result
// of dereferencing and composing a schema node. It is an owned value,
// never a view into the document store.
type Schema struct {
	// Key is the (document#pointer) of the node this schema was composed
	// from. Synthetic schemas (e.g. request schemas) have an empty Key.
	Key string `json:"key,omitempty"`
	// Description is the merged description (last non-empty contributor).
	Description string `json:"description,omitempty"`
	// Types is the declared type set. A schema may declare a single type or
	// a list such as ["null", "string"]; empty means any type.
	Types []string `json:"type,omitempty"`
	// Format is the declared format constraint (e.g. "uri").
	Format string `json:"format,omitempty"`
	// Properties maps property names to their effective schemas. A nil
	// value marks a property whose schema could not be resolved; the
	// corresponding diagnostic explains why.
	Properties map[string]*Schema `json:"properties,omitempty"`
	// PropertyOrder records merged property keys in first-seen order.
	PropertyOrder []string `json:"-"`
	// Required lists required property names (order-preserving union).
	Required []string `json:"required,omitempty"`
	// AdditionalProperties is false when any contributor restricts
	// properties to the declared set (most restrictive wins).
	AdditionalProperties bool `json:"additionalProperties"`
	// Items is the effective schema for array elements, when declared.
	Items *Schema `json:"items,omitempty"`
	// Example is an informational example value; it is not validated.
	Example any `json:"example,omitempty"`
	// Diagnostics records property branches that could not be composed
	// (unresolvable or circular reference chains). The rest of the schema
	// remains usable.
	Diagnostics []issues.Issue `json:"diagnostics,omitempty"`
}

// newSchema returns an empty effective schema. additionalProperties
// defaults to permissive until a contributor restricts it.
func newSchema(key string) *Schema {
	return &Schema{Key: key, AdditionalProperties: true}
}

// HasProperty reports whether name is a declared property, including
// properties whose schemas failed to compose.
func (s *Schema) HasProperty(name string) bool {
	_, ok := s.Properties[name]
	return ok
}

// AllowsType reports whether the instance kind named by t is permitted by
// the declared type set. An empty set permits everything.
func (s *Schema) AllowsType(t string) bool {
	if len(s.Types) == 0 {
		return true
	}
	for _, declared := range s.Types {
		if declared == t {
			return true
		}
	}
	return false
}

var titleCaser = cases.Title(language.English)

// Title derives a short human-readable title for the schema, for use in
// documentation and reports. The description's first sentence wins when
// present; otherwise the title is derived from the definition name in the
// schema's key ("annotation_id" becomes "Annotation Id").
func (s *Schema) Title() string {
	if s.Description != "" {
		if i := strings.IndexByte(s.Description, '.'); i > 0 {
			return s.Description[:i]
		}
		return s.Description
	}
	if s.Key == "" {
		return ""
	}
	_, pointer, _ := strings.Cut(s.Key, "#")
	name := pointer[strings.LastIndexByte(pointer, '/')+1:]
	if name == "" {
		return ""
	}
	return titleCaser.String(strings.ReplaceAll(name, "_", " "))
}

// setProperty records a property's effective schema, tracking first-seen
// order. Later writes for the same name replace the schema wholesale.
func (s *Schema) setProperty(name string, prop *Schema) {
	if s.Properties == nil {
		s.Properties = make(map[string]*Schema)
	}
	if _, seen := s.Properties[name]; !seen {
		s.PropertyOrder = append(s.PropertyOrder, name)
	}
	s.Properties[name] = prop
}

// addRequired appends names to the required union, skipping duplicates.
func (s *Schema) addRequired(names []string) {
	for _, name := range names {
		seen := false
		for _, have := range s.Required {
			if have == name {
				seen = true
				break
			}
		}
		if !seen {
			s.Required = append(s.Required, name)
		}
	}
}
