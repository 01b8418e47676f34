package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.yaml.in/yaml/v4"

	"github.com/upsight/schematools/loader"
	"github.com/upsight/schematools/resolver"
	"github.com/upsight/schematools/schemaerrors"
)

type resolveInput struct {
	Doc docInput `json:"doc" jsonschema:"The schema document the reference is resolved against"`
	Ref string   `json:"ref" jsonschema:"The reference to resolve, e.g. '#/definitions/name' or 'common.yaml#/definitions/auth'"`
}

type resolveOutput struct {
	Resolved bool     `json:"resolved"`
	Status   string   `json:"status"`
	Target   string   `json:"target,omitempty"`
	Kind     string   `json:"kind,omitempty"`
	Chain    []string `json:"chain,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func handleResolve(_ context.Context, _ *mcp.CallToolRequest, input resolveInput) (*mcp.CallToolResult, resolveOutput, error) {
	store, doc, err := input.Doc.resolve()
	if err != nil {
		return errResult(err), resolveOutput{}, nil
	}

	target, err := resolver.New(store).ResolveFully(input.Ref, resolver.NewContext(doc))
	if err != nil {
		output := resolveOutput{
			Status: "unresolvable",
			Error:  sanitizeError(err),
		}
		var refErr *schemaerrors.ReferenceError
		if errors.As(err, &refErr) {
			output.Chain = refErr.Chain
			if refErr.IsCircular {
				output.Status = "circular"
			}
		}
		return nil, output, nil
	}

	return nil, resolveOutput{
		Resolved: true,
		Status:   "resolved",
		Target:   target.Key(),
		Kind:     nodeKind(target.Node),
	}, nil
}

func nodeKind(node *yaml.Node) string {
	switch {
	case loader.IsMapping(node):
		return "mapping"
	case loader.IsSequence(node):
		return "sequence"
	case loader.IsScalar(node):
		return "scalar"
	default:
		return "unknown"
	}
}
