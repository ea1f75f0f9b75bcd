package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func sampleTable() *Table {
	return &Table{
		Headers: []string{"APP", "USAGE"},
		Rows: [][]string{
			{"browser", "1.2 GiB"},
			{"editor", "300 MiB"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"csv", FormatCSV, false},
		{"junit", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTextFormatter_Table(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextFormatter{}).FormatTo(&buf, sampleTable()); err != nil {
		t.Fatalf("FormatTo: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "APP") {
		t.Errorf("expected header line first, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "browser") || !strings.Contains(lines[1], "1.2 GiB") {
		t.Errorf("unexpected data line: %q", lines[1])
	}
}

func TestTextFormatter_NonTable(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextFormatter{}).FormatTo(&buf, "plain message"); err != nil {
		t.Fatalf("FormatTo: %v", err)
	}
	if buf.String() != "plain message\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestJSONFormatter_Table(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{Indent: true}).FormatTo(&buf, sampleTable()); err != nil {
		t.Fatalf("FormatTo: %v", err)
	}

	var decoded []map[string]string
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(decoded))
	}
	if decoded[0]["APP"] != "browser" || decoded[0]["USAGE"] != "1.2 GiB" {
		t.Errorf("unexpected first object: %v", decoded[0])
	}
}

func TestJSONFormatter_ArbitraryData(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]int{"entries": 42}
	if err := (&JSONFormatter{}).FormatTo(&buf, data); err != nil {
		t.Fatalf("FormatTo: %v", err)
	}
	if strings.TrimSpace(buf.String()) != `{"entries":42}` {
		t.Errorf("got %q", buf.String())
	}
}

func TestCSVFormatter_Table(t *testing.T) {
	var buf bytes.Buffer
	if err := (&CSVFormatter{}).FormatTo(&buf, sampleTable()); err != nil {
		t.Fatalf("FormatTo: %v", err)
	}

	want := "APP,USAGE\nbrowser,1.2 GiB\neditor,300 MiB\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestCSVFormatter_RejectsNonTable(t *testing.T) {
	var buf bytes.Buffer
	if err := (&CSVFormatter{}).FormatTo(&buf, "not a table"); err == nil {
		t.Error("expected error for non-tabular data")
	}
}

func TestCSVFormatter_QuotesCells(t *testing.T) {
	var buf bytes.Buffer
	table := &Table{
		Headers: []string{"APP", "ERROR"},
		Rows:    [][]string{{"my,app", `said "no"`}},
	}
	if err := (&CSVFormatter{}).FormatTo(&buf, table); err != nil {
		t.Fatalf("FormatTo: %v", err)
	}
	if !strings.Contains(buf.String(), `"my,app"`) {
		t.Errorf("expected comma cell quoted, got %q", buf.String())
	}
}

func TestNewFormatter(t *testing.T) {
	if _, ok := NewFormatter(FormatJSON).(*JSONFormatter); !ok {
		t.Error("expected JSONFormatter for json")
	}
	if _, ok := NewFormatter(FormatCSV).(*CSVFormatter); !ok {
		t.Error("expected CSVFormatter for csv")
	}
	if _, ok := NewFormatter(FormatText).(*TextFormatter); !ok {
		t.Error("expected TextFormatter for text")
	}
	if _, ok := NewFormatter("bogus").(*TextFormatter); !ok {
		t.Error("expected text fallback for unknown format")
	}
}
