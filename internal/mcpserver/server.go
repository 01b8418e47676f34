// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes schematools capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/upsight/schematools"
)

const serverInstructions = `schematools MCP server — resolves, composes, and validates JSON-Schema-style documents with cross-file $ref support.

Configuration: All defaults are configurable via SCHEMATOOLS_* environment variables set in your MCP client config.

Key settings:
- SCHEMATOOLS_ROOT (default: .) — default directory schema documents are loaded from
- SCHEMATOOLS_RESULT_LIMIT (default: 100) — default page size for list output
- SCHEMATOOLS_MAX_LIMIT (default: 1000) — cap on client-requested page sizes

Documents are parsed once per session and cached per root directory; repeated tool calls over the same document set reuse the parsed trees.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "schematools", Version: schematools.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve",
		Description: "Resolve a reference against a schema document, following chains of $ref links across files to the terminal node. Returns the terminal location and node kind, or the failure status (unresolvable or circular) with the visited chain.",
	}, handleResolve)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "compose",
		Description: "Compose the effective schema for a document or a reference within it: every $ref dereferenced and every allOf merged into a single flat schema. Broken property branches are reported as diagnostics rather than failing the whole composition.",
	}, handleCompose)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate a JSON instance against a document's effective schema. Checks required properties, additionalProperties, type sets, and the uri format, collecting every violation in a single run. Use offset/limit to paginate through results.",
	}, handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "refs",
		Description: "Inventory every $ref across a set of schema documents with its resolution status (resolved, unresolvable, or circular) and terminal target. Use broken_only=true to focus on failures. Use offset/limit to paginate through results.",
	}, handleRefs)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ResultLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ResultLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
