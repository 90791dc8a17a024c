package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatText   OutputFormat = "text"
	FormatJSON   OutputFormat = "json"
	FormatYAML   OutputFormat = "yaml"
	FormatNDJSON OutputFormat = "ndjson"
)

// Completion statuses of the NDJSON done marker
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// TableFormatter helps format tabular output
type TableFormatter struct {
	writer *tabwriter.Writer
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	return &TableFormatter{writer: tw}
}

// Header writes the table header
func (t *TableFormatter) Header(columns ...string) {
	fmt.Fprintln(t.writer, strings.Join(columns, "\t"))
	fmt.Fprintln(t.writer, strings.Repeat("-", 80))
}

// Row writes a table row
func (t *TableFormatter) Row(values ...string) {
	fmt.Fprintln(t.writer, strings.Join(values, "\t"))
}

// Flush writes the buffered table to output
func (t *TableFormatter) Flush() error {
	return t.writer.Flush()
}

// OutputResults formats and outputs results based on the specified format
func OutputResults(w io.Writer, format string, data interface{}) error {
	switch OutputFormat(format) {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)

	case FormatYAML:
		yamlData, err := yaml.Marshal(data)
		if err != nil {
			return err
		}
		_, err = w.Write(yamlData)
		return err

	case FormatText:
		// callers normally format text themselves; this is a fallback
		_, err := fmt.Fprintf(w, "%v\n", data)
		return err

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// DoneMarker terminates an NDJSON result stream
type DoneMarker struct {
	Type   string `json:"type"`
	Status string `json:"status"`
	Count  int    `json:"count"`
	Error  string `json:"error,omitempty"`
}

// NDJSONWriter streams one JSON object per line and finishes with a
// DoneMarker
type NDJSONWriter struct {
	encoder *json.Encoder
	count   int
}

// NewNDJSONWriter creates a writer streaming to w
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	return &NDJSONWriter{encoder: encoder}
}

// Write emits v as a single line
func (n *NDJSONWriter) Write(v interface{}) error {
	if err := n.encoder.Encode(v); err != nil {
		return err
	}
	n.count++
	return nil
}

// Count is the number of lines written so far, excluding the marker
func (n *NDJSONWriter) Count() int {
	return n.count
}

// Done writes the completion marker. A non-nil cause marks the stream as
// failed.
func (n *NDJSONWriter) Done(cause error) error {
	marker := DoneMarker{Type: "done", Status: StatusOK, Count: n.count}
	if cause != nil {
		marker.Status = StatusError
		marker.Error = cause.Error()
	}
	return n.encoder.Encode(marker)
}

// TruncateString truncates a string to the specified length in runes
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
