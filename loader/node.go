package loader

import (
	"go.yaml.in/yaml/v4"
)

// RefKey is the mapping key that marks a node as a reference object.
const RefKey = "$ref"

// Unalias follows YAML alias nodes to their anchored target. All node
// helpers below unalias their input first, so anchors behave like any
// other node in the tree.
func Unalias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

// IsMapping reports whether node is a mapping.
func IsMapping(node *yaml.Node) bool {
	node = Unalias(node)
	return node != nil && node.Kind == yaml.MappingNode
}

// IsSequence reports whether node is a sequence.
func IsSequence(node *yaml.Node) bool {
	node = Unalias(node)
	return node != nil && node.Kind == yaml.SequenceNode
}

// IsScalar reports whether node is a scalar.
func IsScalar(node *yaml.Node) bool {
	node = Unalias(node)
	return node != nil && node.Kind == yaml.ScalarNode
}

// MappingGet looks up key in a mapping node, preserving the document's key
// order semantics (first match wins). Returns false when node is not a
// mapping or the key is absent.
func MappingGet(node *yaml.Node, key string) (*yaml.Node, bool) {
	node = Unalias(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, false
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k := Unalias(node.Content[i])
		if k.Kind == yaml.ScalarNode && k.Value == key {
			return node.Content[i+1], true
		}
	}
	return nil, false
}

// MappingKeys returns the scalar keys of a mapping node in document order.
func MappingKeys(node *yaml.Node) []string {
	node = Unalias(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k := Unalias(node.Content[i])
		if k.Kind == yaml.ScalarNode {
			keys = append(keys, k.Value)
		}
	}
	return keys
}

// SequenceItems returns the items of a sequence node, or nil when node is
// not a sequence.
func SequenceItems(node *yaml.Node) []*yaml.Node {
	node = Unalias(node)
	if node == nil || node.Kind != yaml.SequenceNode {
		return nil
	}
	return node.Content
}

// RefTarget returns the reference string when node is a reference object:
// a mapping containing a scalar $ref key. Sibling keys beside $ref are
// ignored per Draft-04 semantics.
func RefTarget(node *yaml.Node) (string, bool) {
	v, ok := MappingGet(node, RefKey)
	if !ok {
		return "", false
	}
	v = Unalias(v)
	if v == nil || v.Kind != yaml.ScalarNode {
		return "", false
	}
	return v.Value, true
}

// ScalarString returns the string value of a scalar node, or "" when node
// is not a scalar.
func ScalarString(node *yaml.Node) string {
	node = Unalias(node)
	if node == nil || node.Kind != yaml.ScalarNode {
		return ""
	}
	return node.Value
}

// ScalarBool decodes a scalar boolean node. Returns ok=false when node is
// not a boolean scalar.
func ScalarBool(node *yaml.Node) (value, ok bool) {
	node = Unalias(node)
	if node == nil || node.Kind != yaml.ScalarNode {
		return false, false
	}
	var b bool
	if err := node.Decode(&b); err != nil {
		return false, false
	}
	return b, true
}

// StringList decodes a node that may be either a single scalar string or a
// sequence of scalar strings (the shape of the JSON-Schema "type" and
// "required" keywords). Returns nil for any other shape.
func StringList(node *yaml.Node) []string {
	node = Unalias(node)
	if node == nil {
		return nil
	}
	switch node.Kind {
	case yaml.ScalarNode:
		return []string{node.Value}
	case yaml.SequenceNode:
		out := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			item = Unalias(item)
			if item != nil && item.Kind == yaml.ScalarNode {
				out = append(out, item.Value)
			}
		}
		return out
	default:
		return nil
	}
}

// DecodeValue decodes an arbitrary node into a plain Go value
// (map[string]any, []any, or scalar). Used for informational keywords like
// "example" that are carried but not validated.
func DecodeValue(node *yaml.Node) (any, error) {
	node = Unalias(node)
	if node == nil {
		return nil, nil
	}
	var v any
	if err := node.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
