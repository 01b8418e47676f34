package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/upsight/schematools/composer"
)

// ComposeFlags contains flags for the compose command
type ComposeFlags struct {
	Root   string
	Ref    string
	Format string
}

// SetupComposeFlags creates and configures a FlagSet for the compose command.
// Returns the FlagSet and a ComposeFlags struct with bound flag variables.
func SetupComposeFlags() (*flag.FlagSet, *ComposeFlags) {
	fs := flag.NewFlagSet("compose", flag.ContinueOnError)
	flags := &ComposeFlags{}

	fs.StringVar(&flags.Root, "root", ".", "directory containing the schema documents")
	fs.StringVar(&flags.Ref, "ref", "", "compose the target of this reference instead of the document root")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: schematools compose [flags] <file>\n\n")
		Writef(fs.Output(), "Compose the effective schema for a document: every $ref dereferenced\n")
		Writef(fs.Output(), "and every allOf merged into a single flat schema.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  schematools compose annotation.yaml\n")
		Writef(fs.Output(), "  schematools compose -root ./schemas -format json annotation.yaml\n")
		Writef(fs.Output(), "  schematools compose -ref '#/definitions/url' annotation.yaml\n")
	}

	return fs, flags
}

// HandleCompose executes the compose command
func HandleCompose(args []string) error {
	fs, flags := SetupComposeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("compose command requires exactly one file path")
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	store := newStore(flags.Root)
	doc, err := store.Load(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("loading document: %w", err)
	}

	c := composer.New(store)
	var schema *composer.Schema
	if flags.Ref == "" {
		schema, err = c.ComposeDocument(doc)
	} else {
		schema, err = c.ComposeRef(flags.Ref, doc)
	}
	if err != nil {
		return fmt.Errorf("composing schema: %w", err)
	}

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		return OutputStructured(schema, flags.Format)
	}

	printSchema(schema)
	return nil
}

func printSchema(schema *composer.Schema) {
	Writef(os.Stdout, "%s\n", schema.Title())
	if schema.Description != "" {
		Writef(os.Stdout, "  %s\n", schema.Description)
	}
	if len(schema.Types) > 0 {
		Writef(os.Stdout, "  type: %s\n", strings.Join(schema.Types, " | "))
	}
	if schema.Format != "" {
		Writef(os.Stdout, "  format: %s\n", schema.Format)
	}
	if len(schema.Required) > 0 {
		Writef(os.Stdout, "  required: %s\n", strings.Join(schema.Required, ", "))
	}
	if !schema.AdditionalProperties {
		Writef(os.Stdout, "  additionalProperties: false\n")
	}
	for _, name := range schema.PropertyOrder {
		prop := schema.Properties[name]
		if prop == nil {
			Writef(os.Stdout, "  %s: (unvalidatable)\n", name)
			continue
		}
		Writef(os.Stdout, "  %s: %s", name, strings.Join(prop.Types, " | "))
		if prop.Format != "" {
			Writef(os.Stdout, " (%s)", prop.Format)
		}
		Writef(os.Stdout, "\n")
	}
	for _, diag := range schema.Diagnostics {
		Writef(os.Stderr, "%s\n", diag.String())
	}
}
