package dataset

import (
	"fmt"
	"strconv"
)

// Column names with meaning to the classifier and the presentation layer.
const (
	ColumnStatus          = "status"
	ColumnDatasetType     = "dataset_type"
	ColumnDatasetStatus   = "dataset_status"
	ColumnGroupName       = "group_name"
	ColumnHasData         = "has_data"
	ColumnHasContributors = "has_contributors"
	ColumnAccessLevel     = "data_access_level"
	ColumnOrgan           = "organ"
)

// Value holds one JSON cell: nil, string, float64, bool, []any or map[string]any.
type Value = any

// Record is one dataset row. A missing key reads as a null cell.
type Record map[string]Value

// Get returns the cell for column, nil when absent.
func (r Record) Get(column string) Value {
	if r == nil {
		return nil
	}
	return r[column]
}

// Table is the published, classified view of the feed.
type Table struct {
	Columns []string
	Rows    []Record
}

// Empty returns a table with no columns and no rows.
func Empty() *Table {
	return &Table{Columns: []string{}, Rows: []Record{}}
}

// Len reports the number of rows. A nil table has zero rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// HasColumn reports whether name is part of the column set.
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	for _, column := range t.Columns {
		if column == name {
			return true
		}
	}
	return false
}

// Column returns every cell of the named column in row order.
func (t *Table) Column(name string) []Value {
	values := make([]Value, t.Len())
	for i := range values {
		values[i] = t.Rows[i].Get(name)
	}
	return values
}

// Strings renders the named column as display strings.
func (t *Table) Strings(name string) []string {
	values := make([]string, t.Len())
	for i := range values {
		values[i] = FormatValue(t.Rows[i].Get(name))
	}
	return values
}

// Value returns the cell at row and column, nil when out of range.
func (t *Table) Value(row int, column string) Value {
	if row < 0 || row >= t.Len() {
		return nil
	}
	return t.Rows[row].Get(column)
}

// FormatValue renders a cell for terminal tables and HTML.
func FormatValue(v Value) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return fmt.Sprint(typed)
	}
}
