// Package commands provides CLI command handlers for schematools.
package commands

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/upsight/schematools/loader"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured outputs data in the specified format (json or yaml) to stdout.
// YAML output goes through a JSON round trip so both formats use the same
// field names.
func OutputStructured(data any, format string) error {
	var out []byte
	var err error

	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		var encoded []byte
		encoded, err = json.Marshal(data)
		if err != nil {
			break
		}
		var plain any
		if err = json.Unmarshal(encoded, &plain); err != nil {
			break
		}
		out, err = yaml.Marshal(plain)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	fmt.Println(string(out))
	return nil
}

// Writef writes formatted output, reporting write failures to stderr.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// newStore creates a document store rooted at dir.
func newStore(dir string) *loader.Store {
	return loader.NewStore(loader.FileLoader(dir))
}
