package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureRoot = "../../testdata/schemas"

func TestResolveTool_Resolved(t *testing.T) {
	input := resolveInput{
		Doc: docInput{Root: fixtureRoot, File: "annotation.yaml"},
		Ref: "#/test_ref",
	}
	result, output, err := handleResolve(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)
	assert.True(t, output.Resolved)
	assert.Equal(t, "resolved", output.Status)
	assert.Equal(t, "annotation.yaml#/definitions/annotation_id", output.Target)
	assert.Equal(t, "mapping", output.Kind)
}

func TestResolveTool_Circular(t *testing.T) {
	input := resolveInput{
		Doc: docInput{Root: fixtureRoot, File: "annotation.yaml"},
		Ref: "#/circular_ref_chain_1",
	}
	_, output, err := handleResolve(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.False(t, output.Resolved)
	assert.Equal(t, "circular", output.Status)
	assert.Equal(t, []string{
		"annotation.yaml#/circular_ref_chain_1",
		"annotation.yaml#/circular_ref_chain_2",
		"annotation.yaml#/circular_ref_chain_3",
		"annotation.yaml#/circular_ref_chain_1",
	}, output.Chain)
}

func TestResolveTool_Unresolvable(t *testing.T) {
	input := resolveInput{
		Doc: docInput{Root: fixtureRoot, File: "annotation.yaml"},
		Ref: "#/bad_ref",
	}
	_, output, err := handleResolve(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.False(t, output.Resolved)
	assert.Equal(t, "unresolvable", output.Status)
	assert.NotEmpty(t, output.Error)
}

func TestResolveTool_InlineContent(t *testing.T) {
	input := resolveInput{
		Doc: docInput{
			Root:    fixtureRoot,
			Content: "local:\n  $ref: 'common.yaml#/definitions/auth'\n",
		},
		Ref: "#/local",
	}
	_, output, err := handleResolve(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.True(t, output.Resolved)
	assert.Equal(t, "common.yaml#/definitions/auth", output.Target)
}

func TestResolveTool_MissingDocument(t *testing.T) {
	input := resolveInput{
		Doc: docInput{Root: fixtureRoot, File: "no_such.yaml"},
		Ref: "#/x",
	}
	result, _, err := handleResolve(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
