package commands

import (
	"context"
	"errors"
	"flag"

	"github.com/upsight/schematools/internal/mcpserver"
)

// SetupMCPFlags creates and configures a FlagSet for the mcp command.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: schematools mcp\n\n")
		Writef(fs.Output(), "Run the MCP server over stdio, exposing the resolve, compose,\n")
		Writef(fs.Output(), "validate, and refs tools to MCP clients.\n\n")
		Writef(fs.Output(), "Configuration is read from SCHEMATOOLS_* environment variables;\n")
		Writef(fs.Output(), "see the server instructions for the full list.\n")
	}

	return fs
}

// HandleMCP executes the mcp command
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	return mcpserver.Run(context.Background())
}
