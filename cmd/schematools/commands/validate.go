package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/upsight/schematools/composer"
	"github.com/upsight/schematools/validator"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	Root     string
	Ref      string
	Instance string
	Quiet    bool
	Format   string
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	fs.StringVar(&flags.Root, "root", ".", "directory containing the schema documents")
	fs.StringVar(&flags.Ref, "ref", "", "validate against the target of this reference instead of the document root")
	fs.StringVar(&flags.Instance, "instance", "", "path to the JSON instance to validate")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output validation result, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output validation result, no diagnostic messages")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: schematools validate [flags] <schema-file>\n\n")
		Writef(fs.Output(), "Validate a JSON instance against a document's effective schema.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  schematools validate -instance item.json annotation.yaml\n")
		Writef(fs.Output(), "  schematools validate -root ./schemas -instance item.json -format json annotation.yaml\n")
		Writef(fs.Output(), "  schematools validate -ref '#/definitions/url' -instance value.json annotation.yaml\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Validation successful\n")
		Writef(fs.Output(), "  1    Validation failed with violations\n")
	}

	return fs, flags
}

// validateReport is the structured output of the validate command.
type validateReport struct {
	Valid         bool                  `json:"valid"`
	Violations    []validator.Violation `json:"violations,omitempty"`
	Unvalidatable []validator.Violation `json:"unvalidatable,omitempty"`
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	fs, flags := SetupValidateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("validate command requires exactly one schema file path")
	}
	if flags.Instance == "" {
		fs.Usage()
		return fmt.Errorf("validate command requires -instance")
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

	data, err := os.ReadFile(flags.Instance)
	if err != nil {
		return fmt.Errorf("reading instance: %w", err)
	}

	result, err := validator.New().ValidateBytes(schema, data)
	if err != nil {
		return fmt.Errorf("validating instance: %w", err)
	}

	report := validateReport{
		Valid:         result.Valid,
		Violations:    result.Violations,
		Unvalidatable: result.Unvalidatable,
	}

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		if err := OutputStructured(report, flags.Format); err != nil {
			return err
		}
		if !result.Valid {
			os.Exit(1)
		}
		return nil
	}

	if !flags.Quiet {
		Writef(os.Stderr, "Schema Instance Validator\n")
		Writef(os.Stderr, "Schema:   %s\n", fs.Arg(0))
		Writef(os.Stderr, "Instance: %s\n\n", flags.Instance)
	}

	for _, violation := range result.Violations {
		Writef(os.Stdout, "%s\n", violation.String())
	}
	for _, issue := range result.Unvalidatable {
		Writef(os.Stderr, "unvalidatable: %s\n", issue.String())
	}

	if !result.Valid {
		return fmt.Errorf("validation failed with %d violation(s)", len(result.Violations))
	}
	if !flags.Quiet {
		Writef(os.Stderr, "Validation successful\n")
	}
	return nil
}
