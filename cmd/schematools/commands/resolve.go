package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/upsight/schematools/loader"
	"github.com/upsight/schematools/resolver"
	"github.com/upsight/schematools/schemaerrors"
)

// ResolveFlags contains flags for the resolve command
type ResolveFlags struct {
	Root   string
	Format string
}

// SetupResolveFlags creates and configures a FlagSet for the resolve command.
// Returns the FlagSet and a ResolveFlags struct with bound flag variables.
func SetupResolveFlags() (*flag.FlagSet, *ResolveFlags) {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	flags := &ResolveFlags{}

	fs.StringVar(&flags.Root, "root", ".", "directory containing the schema documents")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: schematools resolve [flags] <file#pointer>\n\n")
		Writef(fs.Output(), "Resolve a reference chain to its terminal node.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  schematools resolve 'annotation.yaml#/definitions/name'\n")
		Writef(fs.Output(), "  schematools resolve -root ./schemas 'annotation.yaml#/test_ref'\n")
		Writef(fs.Output(), "  schematools resolve -format json 'common.yaml#/definitions/auth'\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Reference resolved\n")
		Writef(fs.Output(), "  1    Reference unresolvable or circular\n")
	}

	return fs, flags
}

// resolveReport is the structured output of the resolve command.
type resolveReport struct {
	Resolved bool     `json:"resolved"`
	Status   string   `json:"status"`
	Target   string   `json:"target,omitempty"`
	Value    any      `json:"value,omitempty"`
	Chain    []string `json:"chain,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// HandleResolve executes the resolve command
func HandleResolve(args []string) error {
	fs, flags := SetupResolveFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("resolve command requires exactly one file#pointer argument")
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	file, ref, err := splitLocation(fs.Arg(0))
	if err != nil {
		return err
	}

	store := newStore(flags.Root)
	doc, err := store.Load(file)
	if err != nil {
		return fmt.Errorf("loading document: %w", err)
	}

	report := resolveReport{Status: "resolved", Resolved: true}
	target, err := resolver.New(store).ResolveFully(ref, resolver.NewContext(doc))
	if err != nil {
		report.Resolved = false
		report.Status = "unresolvable"
		report.Error = err.Error()
		var refErr *schemaerrors.ReferenceError
		if errors.As(err, &refErr) {
			report.Chain = refErr.Chain
			if refErr.IsCircular {
				report.Status = "circular"
			}
		}
	} else {
		report.Target = target.Key()
		if value, decodeErr := loader.DecodeValue(target.Node); decodeErr == nil {
			report.Value = value
		}
	}

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		if err := OutputStructured(report, flags.Format); err != nil {
			return err
		}
		if !report.Resolved {
			os.Exit(1)
		}
		return nil
	}

	if !report.Resolved {
		Writef(os.Stderr, "✗ %s reference: %s\n", report.Status, fs.Arg(0))
		for _, link := range report.Chain {
			Writef(os.Stderr, "    %s\n", link)
		}
		return fmt.Errorf("%s", report.Error)
	}

	Writef(os.Stdout, "%s\n", report.Target)
	return nil
}

// splitLocation splits a FILE#POINTER argument into its document path and
// an in-document reference.
func splitLocation(arg string) (file, ref string, err error) {
	file, fragment, found := strings.Cut(arg, "#")
	if file == "" {
		return "", "", fmt.Errorf("missing document path in %q", arg)
	}
	if !found {
		return file, "#", nil
	}
	return file, "#" + fragment, nil
}
