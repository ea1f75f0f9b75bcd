package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// OutputFormat selects how command results are rendered.
type OutputFormat string

const (
	// FormatText is human-readable columnar output (default).
	FormatText OutputFormat = "text"
	// FormatJSON is JSON output.
	FormatJSON OutputFormat = "json"
	// FormatCSV is CSV output.
	FormatCSV OutputFormat = "csv"
)

// ParseFormat converts a --output flag value into an OutputFormat.
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatText, FormatJSON, FormatCSV:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("unsupported output format: %q (must be text, json, or csv)", s)
	}
}

// Table is tabular command output: one header row plus data rows, every
// cell already rendered as a string.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Formatter renders command output.
type Formatter interface {
	FormatTo(w io.Writer, data interface{}) error
}

// TextFormatter renders output as aligned plain-text columns.
type TextFormatter struct{}

// FormatTo writes a Table as tab-aligned columns. Non-table data falls
// back to fmt formatting.
func (f *TextFormatter) FormatTo(w io.Writer, data interface{}) error {
	table, ok := data.(*Table)
	if !ok {
		_, err := fmt.Fprintf(w, "%v\n", data)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if len(table.Headers) > 0 {
		if err := writeTabRow(tw, table.Headers); err != nil {
			return err
		}
	}
	for _, row := range table.Rows {
		if err := writeTabRow(tw, row); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func writeTabRow(w io.Writer, cells []string) error {
	for i, cell := range cells {
		if i > 0 {
			if _, err := fmt.Fprint(w, "\t"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, cell); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// JSONFormatter renders output as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatTo writes data to the writer as JSON. Tables marshal as an array
// of objects keyed by header.
func (f *JSONFormatter) FormatTo(w io.Writer, data interface{}) error {
	if table, ok := data.(*Table); ok {
		data = table.toObjects()
	}

	encoder := json.NewEncoder(w)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// toObjects converts rows into header-keyed maps so JSON consumers see
// field names instead of positional arrays.
func (t *Table) toObjects() []map[string]string {
	objects := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		obj := make(map[string]string, len(t.Headers))
		for i, header := range t.Headers {
			if i < len(row) {
				obj[header] = row[i]
			}
		}
		objects = append(objects, obj)
	}
	return objects
}

// CSVFormatter renders output as CSV.
type CSVFormatter struct{}

// FormatTo writes a Table as CSV, header row first. CSV output is only
// defined for tabular data.
func (f *CSVFormatter) FormatTo(w io.Writer, data interface{}) error {
	table, ok := data.(*Table)
	if !ok {
		return fmt.Errorf("csv output requires tabular data, got %T", data)
	}

	csvWriter := csv.NewWriter(w)

	if len(table.Headers) > 0 {
		if err := csvWriter.Write(table.Headers); err != nil {
			return err
		}
	}
	for _, row := range table.Rows {
		if err := csvWriter.Write(row); err != nil {
			return err
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// NewFormatter creates a formatter for the specified format. Unknown
// formats fall back to text.
func NewFormatter(format OutputFormat) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatCSV:
		return &CSVFormatter{}
	default:
		return &TextFormatter{}
	}
}
