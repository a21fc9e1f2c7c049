package dataset_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"hubstat/internal/dataset"
	"hubstat/internal/feed"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"RNAseq", dataset.Primary},
		{"RNAseq[processed]", dataset.Derived},
		{"]weird[order", dataset.Derived},
		{"only[open", dataset.Primary},
		{"only]close", dataset.Primary},
		{"", dataset.Primary},
		{"[]", dataset.Derived},
	}
	for _, tt := range tests {
		if got := dataset.Classify(tt.in); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractEndToEnd(t *testing.T) {
	body := `{"data":[{"status":"Published","dataset_type":"X[1]"},{"status":"QA","dataset_type":"Y"},{"status":"Published","dataset_type":"Z"}]}`
	table, warnings, err := dataset.ExtractJSON([]byte(body))
	if err != nil {
		t.Fatalf("ExtractJSON returned error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	want := &dataset.Table{
		Columns: []string{"status", "dataset_type", "dataset_status"},
		Rows: []dataset.Record{
			{"status": "Published", "dataset_type": "X[1]", "dataset_status": "Derived"},
			{"status": "Published", "dataset_type": "Z", "dataset_status": "Primary"},
		},
	}
	if diff := cmp.Diff(want, table); diff != "" {
		t.Fatalf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractStatusMustMatchExactly(t *testing.T) {
	body := `{"data":[
		{"status":"published","dataset_type":"A"},
		{"status":"Published ","dataset_type":"B"},
		{"status":" Published","dataset_type":"C"},
		{"status":"PUBLISHED","dataset_type":"D"},
		{"status":null,"dataset_type":"E"},
		{"dataset_type":"F"},
		{"status":"Published","dataset_type":"G"}
	]}`
	table, _, err := dataset.ExtractJSON([]byte(body))
	if err != nil {
		t.Fatalf("ExtractJSON returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"G"}, table.Strings("dataset_type")); diff != "" {
		t.Fatalf("unexpected survivors (-want +got):\n%s", diff)
	}
}

func TestExtractColumnUnionAndNullCells(t *testing.T) {
	body := `{"data":[
		{"status":"Published","dataset_type":"A","group_name":"Stanford"},
		{"status":"QA","organ":"Kidney"},
		{"status":"Published","has_data":true,"dataset_type":"B"}
	]}`
	table, _, err := dataset.ExtractJSON([]byte(body))
	if err != nil {
		t.Fatalf("ExtractJSON returned error: %v", err)
	}
	wantColumns := []string{"status", "dataset_type", "group_name", "organ", "has_data", "dataset_status"}
	if diff := cmp.Diff(wantColumns, table.Columns); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	if got := table.Value(1, "group_name"); got != nil {
		t.Fatalf("expected null cell, got %v", got)
	}
	if got := table.Value(1, "has_data"); got != true {
		t.Fatalf("expected has_data true, got %v", got)
	}
	if got := table.Value(5, "status"); got != nil {
		t.Fatalf("expected nil for out-of-range row, got %v", got)
	}
}

func TestExtractPreservesNestedValues(t *testing.T) {
	body := `{"data":[{"status":"Published","dataset_type":"A","counts":[1,2.5],"meta":{"k":"v","n":null}}]}`
	table, _, err := dataset.ExtractJSON([]byte(body))
	if err != nil {
		t.Fatalf("ExtractJSON returned error: %v", err)
	}
	want := dataset.Record{
		"status":         "Published",
		"dataset_type":   "A",
		"dataset_status": "Primary",
		"counts":         []any{1.0, 2.5},
		"meta":           map[string]any{"k": "v", "n": nil},
	}
	if diff := cmp.Diff(want, table.Rows[0]); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractSchemaErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing data", `{"items":[]}`, "missing 'data' key"},
		{"top-level array", `[{"status":"Published"}]`, "missing 'data' key"},
		{"top-level string", `"data"`, "missing 'data' key"},
		{"data not array", `{"data":{"status":"Published"}}`, "not an array"},
		{"row not object", `{"data":[{"status":"Published"},42]}`, "data[1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, _, err := dataset.ExtractJSON([]byte(tt.body))
			if !errors.Is(err, dataset.ErrSchema) {
				t.Fatalf("expected ErrSchema, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Fatalf("expected %q in %q", tt.message, err.Error())
			}
			if table != nil {
				t.Fatalf("expected nil table on error, got %+v", table)
			}
		})
	}
}

func TestExtractJSONParseError(t *testing.T) {
	if _, _, err := dataset.ExtractJSON([]byte(`{"data":[`)); !errors.Is(err, feed.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestExtractEmptyDataKeepsDerivedColumn(t *testing.T) {
	table, _, err := dataset.ExtractJSON([]byte(`{"data":[]}`))
	if err != nil {
		t.Fatalf("ExtractJSON returned error: %v", err)
	}
	if !table.Empty() {
		t.Fatalf("expected no rows, got %d", table.Len())
	}
	if !table.HasColumn(dataset.ColumnDatasetStatus) {
		t.Fatalf("expected dataset_status column, got %v", table.Columns)
	}
}

func TestExtractUnclassifiableTypeDefaultsToPrimary(t *testing.T) {
	body := `{"data":[
		{"status":"Published"},
		{"status":"Published","dataset_type":null},
		{"status":"QA","dataset_type":7},
		{"status":"Published","dataset_type":["a[b]"]},
		{"status":"Published","dataset_type":"ok[1]"}
	]}`
	table, warnings, err := dataset.ExtractJSON([]byte(body))
	if err != nil {
		t.Fatalf("ExtractJSON returned error: %v", err)
	}
	want := []string{"Primary", "Primary", "Primary", "Derived"}
	if diff := cmp.Diff(want, table.Strings(dataset.ColumnDatasetStatus)); diff != "" {
		t.Fatalf("dataset_status mismatch (-want +got):\n%s", diff)
	}
	rows := make([]int, len(warnings))
	for i, w := range warnings {
		rows[i] = w.Row
	}
	if diff := cmp.Diff([]int{0, 1, 2}, rows); diff != "" {
		t.Fatalf("warning rows mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(warnings[0].Message, "missing") || !strings.Contains(warnings[1].Message, "null") {
		t.Fatalf("unexpected warning messages: %v", warnings)
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	body := []byte(`{"data":[{"status":"Published","dataset_type":"A[x]","b":1,"a":2},{"status":"Published","z":true,"dataset_type":"B"}]}`)
	first, _, err := dataset.ExtractJSON(body)
	if err != nil {
		t.Fatalf("first extract: %v", err)
	}
	second, _, err := dataset.ExtractJSON(body)
	if err != nil {
		t.Fatalf("second extract: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("extract not deterministic (-first +second):\n%s", diff)
	}
}

func TestTableHelpersOnNil(t *testing.T) {
	var table *dataset.Table
	if table.Len() != 0 || !table.Empty() || table.HasColumn("status") {
		t.Fatal("expected nil table to behave as empty")
	}
	if got := table.Column("status"); len(got) != 0 {
		t.Fatalf("expected empty column, got %v", got)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   dataset.Value
		want string
	}{
		{nil, ""},
		{"text", "text"},
		{true, "true"},
		{3.0, "3"},
		{2.5, "2.5"},
		{[]any{"a"}, "[a]"},
	}
	for _, tt := range tests {
		if got := dataset.FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
