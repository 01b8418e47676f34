package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTool_ValidInstance(t *testing.T) {
	input := validateInput{
		Doc:          docInput{Root: "../../testdata", File: "schemas/annotation.yaml"},
		InstanceFile: "instances/annotation.json",
	}
	result, output, err := handleValidate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)
	assert.True(t, output.Valid)
	assert.Empty(t, output.Violations)
	assert.Zero(t, output.UnvalidatableCount)
}

func TestValidateTool_MissingRequired(t *testing.T) {
	input := validateInput{
		Doc:      docInput{Root: fixtureRoot, File: "annotation.yaml"},
		Instance: `{"annotation_id": 1}`,
	}
	_, output, err := handleValidate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.False(t, output.Valid)
	assert.Equal(t, 1, output.ViolationCount)
	require.Len(t, output.Violations, 1)
	assert.Equal(t, "missing_required_property", output.Violations[0].Kind)
	assert.Equal(t, "name", output.Violations[0].Field)
}

func TestValidateTool_AgainstRef(t *testing.T) {
	input := validateInput{
		Doc:      docInput{Root: fixtureRoot, File: "annotation.yaml"},
		Ref:      "#/definitions/annotation_id",
		Instance: `"not an integer"`,
	}
	_, output, err := handleValidate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.False(t, output.Valid)
	require.Len(t, output.Violations, 1)
	assert.Equal(t, "type_mismatch", output.Violations[0].Kind)
}

func TestValidateTool_MalformedInstance(t *testing.T) {
	input := validateInput{
		Doc:      docInput{Root: fixtureRoot, File: "annotation.yaml"},
		Instance: "{not json",
	}
	result, _, err := handleValidate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestValidateTool_NoInstance(t *testing.T) {
	input := validateInput{
		Doc: docInput{Root: fixtureRoot, File: "annotation.yaml"},
	}
	result, _, err := handleValidate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestValidateTool_Pagination(t *testing.T) {
	input := validateInput{
		Doc:      docInput{Root: fixtureRoot, File: "annotation.yaml"},
		Instance: `{"a": 1, "b": 2, "c": 3}`,
		Limit:    2,
	}
	_, output, err := handleValidate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	// Two missing required plus three unexpected properties.
	assert.Equal(t, 5, output.ViolationCount)
	assert.Equal(t, 2, output.Returned)
	assert.Len(t, output.Violations, 2)
}
