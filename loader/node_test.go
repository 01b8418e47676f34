package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func parseNode(t *testing.T, src string) *yaml.Node {
	t.Helper()
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &node))
	return unwrapDocument(&node)
}

func TestMappingGet(t *testing.T) {
	root := parseNode(t, `
description: top
definitions:
  annotation_id:
    type: integer
`)

	defs, ok := MappingGet(root, "definitions")
	require.True(t, ok)
	assert.True(t, IsMapping(defs))

	_, ok = MappingGet(root, "missing")
	assert.False(t, ok)

	// Non-mapping inputs miss rather than panic.
	scalar := parseNode(t, `just a string`)
	_, ok = MappingGet(scalar, "anything")
	assert.False(t, ok)
}

func TestMappingKeysOrder(t *testing.T) {
	root := parseNode(t, `
b: 1
a: 2
c: 3
`)
	assert.Equal(t, []string{"b", "a", "c"}, MappingKeys(root))
}

func TestRefTarget(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantRef string
		wantOK  bool
	}{
		{
			name:    "plain ref object",
			src:     `{$ref: '#/definitions/annotation_id'}`,
			wantRef: "#/definitions/annotation_id",
			wantOK:  true,
		},
		{
			name:    "ref with ignored siblings",
			src:     `{$ref: 'common.yaml#/definitions/auth', description: ignored}`,
			wantRef: "common.yaml#/definitions/auth",
			wantOK:  true,
		},
		{
			name:   "mapping without ref",
			src:    `{type: integer}`,
			wantOK: false,
		},
		{
			name:   "ref key with non-scalar value",
			src:    `{$ref: [not, a, string]}`,
			wantOK: false,
		},
		{
			name:   "scalar node",
			src:    `plain`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, ok := RefTarget(parseNode(t, tt.src))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantRef, ref)
		})
	}
}

func TestStringList(t *testing.T) {
	assert.Equal(t, []string{"integer"}, StringList(parseNode(t, `integer`)))
	assert.Equal(t, []string{"null", "string"}, StringList(parseNode(t, `['null', string]`)))
	assert.Nil(t, StringList(parseNode(t, `{a: 1}`)))
}

func TestScalarBool(t *testing.T) {
	v, ok := ScalarBool(parseNode(t, `false`))
	require.True(t, ok)
	assert.False(t, v)

	_, ok = ScalarBool(parseNode(t, `not-a-bool`))
	assert.False(t, ok)

	_, ok = ScalarBool(parseNode(t, `[true]`))
	assert.False(t, ok)
}

func TestUnaliasFollowsAnchors(t *testing.T) {
	root := parseNode(t, `
base: &base
  type: integer
alias: *base
`)
	alias, ok := MappingGet(root, "alias")
	require.True(t, ok)

	typ, ok := MappingGet(alias, "type")
	require.True(t, ok)
	assert.Equal(t, "integer", ScalarString(typ))
}

func TestDecodeValue(t *testing.T) {
	v, err := DecodeValue(parseNode(t, `{a: [1, two]}`))
	require.NoError(t, err)
	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Len(t, m, 1)
}
