package export

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"datawarden-hq/vigil/pkg/journal"
)

// CSVExporter exports journal entries to CSV format.
type CSVExporter struct {
	// IncludeHeader includes a header row with column names.
	IncludeHeader bool
}

// NewCSVExporter creates a new CSV exporter.
func NewCSVExporter(includeHeader bool) *CSVExporter {
	return &CSVExporter{
		IncludeHeader: includeHeader,
	}
}

// Export writes journal entries to the provided writer in CSV format.
func (e *CSVExporter) Export(ctx context.Context, entries []*journal.Entry, w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if e.IncludeHeader {
		if err := writer.Write(headerRow()); err != nil {
			return journal.NewExportError("csv", len(entries), err)
		}
	}

	for _, entry := range entries {
		if err := writer.Write(entryToRow(entry)); err != nil {
			return journal.NewExportError("csv", len(entries), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return journal.NewExportError("csv", len(entries), err)
	}

	return nil
}

// headerRow returns the CSV header row.
func headerRow() []string {
	return []string{
		"id", "time", "app", "usage_bytes", "limit_bytes",
		"notifier", "outcome", "error",
	}
}

// entryToRow converts a journal entry to a CSV row.
func entryToRow(entry *journal.Entry) []string {
	return []string{
		entry.ID,
		entry.Time.Format(time.RFC3339),
		entry.App,
		strconv.FormatUint(entry.UsageBytes, 10),
		strconv.FormatUint(entry.LimitBytes, 10),
		entry.Notifier,
		entry.Outcome,
		entry.Error,
	}
}
