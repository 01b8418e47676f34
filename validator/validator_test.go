package validator

import (
	"os"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/upsight/schematools/composer"
	"github.com/upsight/schematools/loader"
)

func fixtureSchema(t *testing.T) *composer.Schema {
	t.Helper()
	store := loader.NewStore(loader.FileLoader("../testdata/schemas"))
	doc, err := store.Load("annotation.yaml")
	require.NoError(t, err)
	s, err := composer.New(store).ComposeDocument(doc)
	require.NoError(t, err)
	return s
}

func readInstance(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("../testdata/instances/" + name)
	require.NoError(t, err)
	return data
}

func TestValidateFixtureInstance(t *testing.T) {
	schema := fixtureSchema(t)

	result, err := New().ValidateBytes(schema, readInstance(t, "annotation.json"))
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Violations)
	assert.Empty(t, result.Unvalidatable)
}

func TestValidateMissingRequiredName(t *testing.T) {
	schema := fixtureSchema(t)

	result, err := New().ValidateBytes(schema, readInstance(t, "annotation-missing-name.json"))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, KindMissingRequiredProperty, result.Violations[0].Kind)
	assert.Equal(t, "name", result.Violations[0].Field)
	assert.Equal(t, "name", result.Violations[0].Path)
}

func TestValidateUnexpectedProperty(t *testing.T) {
	schema := fixtureSchema(t)

	result := New().ValidateResult(schema, map[string]any{
		"annotation_id": 1,
		"name":          "Annotation",
		"intruder":      true,
	})
	assert.False(t, result.Valid)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, KindUnexpectedProperty, result.Violations[0].Kind)
	assert.Equal(t, "intruder", result.Violations[0].Field)
}

func TestValidateUnexpectedPropertyOrder(t *testing.T) {
	schema := fixtureSchema(t)

	instance := map[string]any{
		"annotation_id": 1,
		"name":          "Annotation",
		"zulu":          1,
		"alpha":         2,
		"mike":          3,
		"echo":          4,
		"tango":         5,
	}

	// Map iteration order varies run to run, so repeat enough times that a
	// range-over-map implementation would be caught out.
	for i := 0; i < 20; i++ {
		result := New().ValidateResult(schema, instance)
		require.Len(t, result.Violations, 5)

		var fields []string
		for _, violation := range result.Violations {
			assert.Equal(t, KindUnexpectedProperty, violation.Kind)
			fields = append(fields, violation.Field)
		}
		assert.Equal(t, []string{"alpha", "echo", "mike", "tango", "zulu"}, fields)
	}
}

func TestValidateTypeSet(t *testing.T) {
	schema := fixtureSchema(t)

	t.Run("null accepted where type includes null", func(t *testing.T) {
		result := New().ValidateResult(schema, map[string]any{
			"annotation_id": 1,
			"name":          nil,
		})
		assert.True(t, result.Valid)
	})

	t.Run("wrong kind rejected", func(t *testing.T) {
		result := New().ValidateResult(schema, map[string]any{
			"annotation_id": "not-an-integer",
			"name":          "Annotation",
		})
		assert.False(t, result.Valid)
		require.Len(t, result.Violations, 1)
		assert.Equal(t, KindTypeMismatch, result.Violations[0].Kind)
		assert.Equal(t, "annotation_id", result.Violations[0].Path)
	})

	t.Run("fractional number is not an integer", func(t *testing.T) {
		result := New().ValidateResult(schema, map[string]any{
			"annotation_id": 1.5,
			"name":          "Annotation",
		})
		assert.False(t, result.Valid)
	})

	t.Run("json.Number integral is an integer", func(t *testing.T) {
		result := New().ValidateResult(schema, map[string]any{
			"annotation_id": json.Number("42"),
			"name":          "Annotation",
		})
		assert.True(t, result.Valid)
	})
}

func TestValidateFormatURI(t *testing.T) {
	schema := fixtureSchema(t)

	result := New().ValidateResult(schema, map[string]any{
		"annotation_id": 1,
		"name":          "Annotation",
		"url":           "not a uri at all",
	})
	assert.False(t, result.Valid)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, KindFormatMismatch, result.Violations[0].Kind)
	assert.Equal(t, "url", result.Violations[0].Path)
}

func TestValidateItemsRecursion(t *testing.T) {
	schema := fixtureSchema(t)

	result := New().ValidateResult(schema, map[string]any{
		"annotation_id": 1,
		"name":          "Annotation",
		"urls":          []any{"https://upsight.com", 7, "also not a uri"},
	})
	assert.False(t, result.Valid)
	require.Len(t, result.Violations, 2)
	assert.Equal(t, KindTypeMismatch, result.Violations[0].Kind)
	assert.Equal(t, "urls[1]", result.Violations[0].Path)
	assert.Equal(t, KindFormatMismatch, result.Violations[1].Kind)
	assert.Equal(t, "urls[2]", result.Violations[1].Path)
}

func TestValidateCollectsAllViolations(t *testing.T) {
	schema := fixtureSchema(t)

	result := New().ValidateResult(schema, map[string]any{
		"url":      "no scheme here",
		"intruder": 1,
	})
	assert.False(t, result.Valid)

	kinds := make(map[string]int)
	for _, violation := range result.Violations {
		kinds[violation.Kind]++
	}
	// Missing annotation_id and name, one unexpected key, one bad format:
	// everything is reported in a single run.
	assert.Equal(t, 2, kinds[KindMissingRequiredProperty])
	assert.Equal(t, 1, kinds[KindUnexpectedProperty])
	assert.Equal(t, 1, kinds[KindFormatMismatch])
}

func TestValidateRootTypeMismatch(t *testing.T) {
	schema := fixtureSchema(t)

	result := New().ValidateResult(schema, "not an object")
	assert.False(t, result.Valid)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, KindTypeMismatch, result.Violations[0].Kind)
	assert.Equal(t, "", result.Violations[0].Path)
}

func TestValidateUnvalidatableBranch(t *testing.T) {
	load := func(identity string) (*yaml.Node, error) {
		var node yaml.Node
		err := yaml.Unmarshal([]byte(`
type: object
properties:
  good:
    type: integer
  broken:
    $ref: '#/definitions/missing'
`), &node)
		if err != nil {
			return nil, err
		}
		return &node, nil
	}
	store := loader.NewStore(load)
	doc, err := store.Load("s.yaml")
	require.NoError(t, err)
	schema, err := composer.New(store).ComposeDocument(doc)
	require.NoError(t, err)

	result := New().ValidateResult(schema, map[string]any{
		"good":   "wrong kind",
		"broken": 123,
	})

	// The broken branch is skipped, not fatal; the rest still validates.
	require.Len(t, result.Violations, 1)
	assert.Equal(t, KindTypeMismatch, result.Violations[0].Kind)
	assert.Equal(t, "good", result.Violations[0].Path)

	require.Len(t, result.Unvalidatable, 1)
	assert.Equal(t, "broken", result.Unvalidatable[0].Path)
}

func TestValidateBytesMalformedInstance(t *testing.T) {
	schema := fixtureSchema(t)

	_, err := New().ValidateBytes(schema, []byte("{not json"))
	require.Error(t, err)
}
