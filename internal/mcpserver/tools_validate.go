package mcpserver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/upsight/schematools/composer"
	"github.com/upsight/schematools/validator"
)

type validateInput struct {
	Doc          docInput `json:"doc"                     jsonschema:"The schema document to validate against"`
	Ref          string   `json:"ref,omitempty"           jsonschema:"Validate against the target of this reference instead of the document root"`
	Instance     string   `json:"instance,omitempty"      jsonschema:"Inline JSON instance to validate"`
	InstanceFile string   `json:"instance_file,omitempty" jsonschema:"Path to a JSON instance file, relative to the document root"`
	Offset       int      `json:"offset,omitempty"        jsonschema:"Skip the first N violations (for pagination)"`
	Limit        int      `json:"limit,omitempty"         jsonschema:"Maximum number of violations to return (default 100)"`
}

type validateIssue struct {
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type validateOutput struct {
	Valid              bool            `json:"valid"`
	ViolationCount     int             `json:"violation_count"`
	UnvalidatableCount int             `json:"unvalidatable_count"`
	Returned           int             `json:"returned"`
	Violations         []validateIssue `json:"violations,omitempty"`
	Unvalidatable      []validateIssue `json:"unvalidatable,omitempty"`
}

func handleValidate(_ context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	store, doc, err := input.Doc.resolve()
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	data, err := instanceBytes(input)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	c := composer.New(store)
	var schema *composer.Schema
	if input.Ref == "" {
		schema, err = c.ComposeDocument(doc)
	} else {
		schema, err = c.ComposeRef(input.Ref, doc)
	}
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	result, err := validator.New().ValidateBytes(schema, data)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	output := validateOutput{
		Valid:              result.Valid,
		ViolationCount:     len(result.Violations),
		UnvalidatableCount: len(result.Unvalidatable),
	}
	output.Violations = makeSlice[validateIssue](len(result.Violations))
	for _, v := range result.Violations {
		output.Violations = append(output.Violations, validateIssue{
			Path:    v.Path,
			Kind:    v.Kind,
			Message: v.Message,
			Field:   v.Field,
		})
	}
	output.Unvalidatable = makeSlice[validateIssue](len(result.Unvalidatable))
	for _, v := range result.Unvalidatable {
		output.Unvalidatable = append(output.Unvalidatable, validateIssue{
			Path:    v.Path,
			Kind:    v.Kind,
			Message: v.Message,
			Field:   v.Field,
		})
	}

	output.Violations = paginate(output.Violations, input.Offset, input.Limit)
	output.Returned = len(output.Violations)

	return nil, output, nil
}

func instanceBytes(input validateInput) ([]byte, error) {
	switch {
	case input.Instance != "" && input.InstanceFile != "":
		return nil, fmt.Errorf("instance and instance_file are mutually exclusive")
	case input.Instance != "":
		return []byte(input.Instance), nil
	case input.InstanceFile != "":
		root := input.Doc.Root
		if root == "" {
			root = cfg.Root
		}
		return os.ReadFile(filepath.Join(root, input.InstanceFile))
	default:
		return nil, fmt.Errorf("one of instance or instance_file must be set")
	}
}
