package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/upsight/schematools/resolver"
	"github.com/upsight/schematools/walker"
)

// RefsFlags contains flags for the refs command
type RefsFlags struct {
	Root       string
	BrokenOnly bool
	Format     string
}

// SetupRefsFlags creates and configures a FlagSet for the refs command.
// Returns the FlagSet and a RefsFlags struct with bound flag variables.
func SetupRefsFlags() (*flag.FlagSet, *RefsFlags) {
	fs := flag.NewFlagSet("refs", flag.ContinueOnError)
	flags := &RefsFlags{}

	fs.StringVar(&flags.Root, "root", ".", "directory containing the schema documents")
	fs.BoolVar(&flags.BrokenOnly, "broken-only", false, "report only unresolvable and circular references")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: schematools refs [flags] <file>...\n\n")
		Writef(fs.Output(), "Inventory every $ref across a set of schema documents with its\n")
		Writef(fs.Output(), "resolution status and terminal target.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  schematools refs annotation.yaml\n")
		Writef(fs.Output(), "  schematools refs -root ./schemas annotation.yaml common.yaml\n")
		Writef(fs.Output(), "  schematools refs -broken-only -format json annotation.yaml\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Every reference resolved\n")
		Writef(fs.Output(), "  1    One or more references are broken\n")
	}

	return fs, flags
}

// refsReport is the structured output of the refs command.
type refsReport struct {
	Total    int         `json:"total"`
	Resolved int         `json:"resolved"`
	Broken   int         `json:"broken"`
	OK       bool        `json:"ok"`
	Refs     []refRecord `json:"refs,omitempty"`
}

type refRecord struct {
	Ref        string `json:"ref"`
	Document   string `json:"document"`
	SourcePath string `json:"source_path"`
	Status     string `json:"status"`
	Target     string `json:"target,omitempty"`
	Error      string `json:"error,omitempty"`
}

// HandleRefs executes the refs command
func HandleRefs(args []string) error {
	fs, flags := SetupRefsFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("refs command requires at least one file path")
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	inventory, err := walker.CollectRefs(resolver.New(newStore(flags.Root)), fs.Args()...)
	if err != nil {
		return fmt.Errorf("collecting refs: %w", err)
	}

	reports := inventory.All
	if flags.BrokenOnly {
		reports = inventory.Broken
	}

	report := refsReport{
		Total:    len(inventory.All),
		Resolved: len(inventory.Resolved),
		Broken:   len(inventory.Broken),
		OK:       inventory.OK(),
	}
	for _, r := range reports {
		record := refRecord{
			Ref:        r.Ref,
			Document:   r.Document,
			SourcePath: r.SourcePath,
			Status:     r.Status.String(),
			Target:     r.Target,
		}
		if r.Err != nil {
			record.Error = r.Err.Error()
		}
		report.Refs = append(report.Refs, record)
	}

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		if err := OutputStructured(report, flags.Format); err != nil {
			return err
		}
		if !report.OK {
			os.Exit(1)
		}
		return nil
	}

	for _, record := range report.Refs {
		switch record.Status {
		case "resolved":
			Writef(os.Stdout, "✓ %s#%s -> %s\n", record.Document, record.SourcePath, record.Target)
		default:
			Writef(os.Stdout, "✗ %s#%s (%s): %s\n", record.Document, record.SourcePath, record.Status, record.Ref)
		}
	}
	Writef(os.Stderr, "\n%d refs: %d resolved, %d broken\n", report.Total, report.Resolved, report.Broken)

	if !report.OK {
		return fmt.Errorf("%d broken reference(s)", report.Broken)
	}
	return nil
}
