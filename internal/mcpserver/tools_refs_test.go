package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefsTool_Inventory(t *testing.T) {
	input := refsInput{
		Root:  fixtureRoot,
		Files: []string{"annotation.yaml"},
	}
	result, output, err := handleRefs(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, 19, output.Total)
	assert.Equal(t, 12, output.ResolvedCount)
	assert.Equal(t, 7, output.BrokenCount)
	assert.False(t, output.OK)
	assert.Equal(t, 19, output.Returned)
}

func TestRefsTool_BrokenOnly(t *testing.T) {
	input := refsInput{
		Root:       fixtureRoot,
		Files:      []string{"annotation.yaml"},
		BrokenOnly: true,
	}
	_, output, err := handleRefs(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, 7, output.Returned)
	for _, report := range output.Refs {
		assert.NotEqual(t, "resolved", report.Status)
		assert.NotEmpty(t, report.Error)
	}
}

func TestRefsTool_Pagination(t *testing.T) {
	input := refsInput{
		Root:   fixtureRoot,
		Files:  []string{"annotation.yaml"},
		Offset: 18,
		Limit:  5,
	}
	_, output, err := handleRefs(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, 19, output.Total)
	require.Len(t, output.Refs, 1)
	assert.Equal(t, "/missing_file_ref", output.Refs[0].SourcePath)
}

func TestRefsTool_MultipleDocuments(t *testing.T) {
	input := refsInput{
		Root:  fixtureRoot,
		Files: []string{"common.yaml", "subdir/more.yaml"},
	}
	_, output, err := handleRefs(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.True(t, output.OK)
	assert.Equal(t, 2, output.Total)
}

func TestRefsTool_NoFiles(t *testing.T) {
	input := refsInput{Root: fixtureRoot}
	result, _, err := handleRefs(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
