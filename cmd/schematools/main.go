package main

import (
	"fmt"
	"os"

	"github.com/upsight/schematools"
	"github.com/upsight/schematools/cmd/schematools/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("schematools v%s\n", schematools.Version())
	case "help", "-h", "--help":
		printUsage()
	case "resolve":
		if err := commands.HandleResolve(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "compose":
		if err := commands.HandleCompose(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "validate":
		if err := commands.HandleValidate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "refs":
		if err := commands.HandleRefs(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := commands.HandleMCP(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`schematools - JSON Schema reference and validation tools

Usage:
  schematools <command> [options]

Commands:
  resolve     Resolve a reference chain to its terminal node
  compose     Compose the effective schema for a document or reference
  validate    Validate a JSON instance against an effective schema
  refs        Inventory every $ref across a set of schema documents
  mcp         Run the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  schematools resolve -root ./schemas 'annotation.yaml#/test_ref'
  schematools compose -root ./schemas -format json annotation.yaml
  schematools validate -root ./schemas -instance item.json annotation.yaml
  schematools refs -root ./schemas -broken-only annotation.yaml common.yaml

Run 'schematools <command> --help' for more information on a command.`)
}
