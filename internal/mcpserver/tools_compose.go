package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/upsight/schematools/composer"
)

type composeInput struct {
	Doc docInput `json:"doc"           jsonschema:"The schema document to compose"`
	Ref string   `json:"ref,omitempty" jsonschema:"Compose the target of this reference instead of the document root"`
}

type composeOutput struct {
	Title           string           `json:"title"`
	Schema          *composer.Schema `json:"schema"`
	DiagnosticCount int              `json:"diagnostic_count"`
}

func handleCompose(_ context.Context, _ *mcp.CallToolRequest, input composeInput) (*mcp.CallToolResult, composeOutput, error) {
	store, doc, err := input.Doc.resolve()
	if err != nil {
		return errResult(err), composeOutput{}, nil
	}

	c := composer.New(store)
	var schema *composer.Schema
	if input.Ref == "" {
		schema, err = c.ComposeDocument(doc)
	} else {
		schema, err = c.ComposeRef(input.Ref, doc)
	}
	if err != nil {
		return errResult(err), composeOutput{}, nil
	}

	return nil, composeOutput{
		Title:           schema.Title(),
		Schema:          schema,
		DiagnosticCount: len(schema.Diagnostics),
	}, nil
}
