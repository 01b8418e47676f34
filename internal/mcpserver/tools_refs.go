package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/upsight/schematools/resolver"
	"github.com/upsight/schematools/walker"
)

type refsInput struct {
	Root       string   `json:"root,omitempty"        jsonschema:"Directory containing the schema documents (default: server root)"`
	Files      []string `json:"files"                 jsonschema:"Schema document paths relative to root"`
	BrokenOnly bool     `json:"broken_only,omitempty" jsonschema:"Return only unresolvable and circular references"`
	Offset     int      `json:"offset,omitempty"      jsonschema:"Skip the first N references (for pagination)"`
	Limit      int      `json:"limit,omitempty"       jsonschema:"Maximum number of references to return (default 100)"`
}

type refReport struct {
	Ref        string `json:"ref"`
	Document   string `json:"document"`
	SourcePath string `json:"source_path"`
	Status     string `json:"status"`
	Target     string `json:"target,omitempty"`
	Error      string `json:"error,omitempty"`
}

type refsOutput struct {
	Total         int         `json:"total"`
	ResolvedCount int         `json:"resolved_count"`
	BrokenCount   int         `json:"broken_count"`
	Returned      int         `json:"returned"`
	OK            bool        `json:"ok"`
	Refs          []refReport `json:"refs,omitempty"`
}

func handleRefs(_ context.Context, _ *mcp.CallToolRequest, input refsInput) (*mcp.CallToolResult, refsOutput, error) {
	if len(input.Files) == 0 {
		return errResult(fmt.Errorf("files must name at least one document")), refsOutput{}, nil
	}

	root := input.Root
	if root == "" {
		root = cfg.Root
	}

	inventory, err := walker.CollectRefs(resolver.New(stores.forRoot(root)), input.Files...)
	if err != nil {
		return errResult(err), refsOutput{}, nil
	}

	reports := inventory.All
	if input.BrokenOnly {
		reports = inventory.Broken
	}

	output := refsOutput{
		Total:         len(inventory.All),
		ResolvedCount: len(inventory.Resolved),
		BrokenCount:   len(inventory.Broken),
		OK:            inventory.OK(),
	}
	output.Refs = makeSlice[refReport](len(reports))
	for _, report := range reports {
		out := refReport{
			Ref:        report.Ref,
			Document:   report.Document,
			SourcePath: report.SourcePath,
			Status:     report.Status.String(),
			Target:     report.Target,
		}
		if report.Err != nil {
			out.Error = sanitizeError(report.Err)
		}
		output.Refs = append(output.Refs, out)
	}

	output.Refs = paginate(output.Refs, input.Offset, input.Limit)
	output.Returned = len(output.Refs)

	return nil, output, nil
}
