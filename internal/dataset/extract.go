package dataset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/valyala/fastjson"

	"hubstat/internal/feed"
)

// ErrSchema marks payloads that are valid JSON but not shaped like the feed.
var ErrSchema = errors.New("schema error")

const (
	// StatusPublished is the only status value that survives filtering.
	StatusPublished = "Published"

	Derived = "Derived"
	Primary = "Primary"
)

// Warning flags a surviving row whose dataset_type could not be classified
// as a string and was defaulted to Primary.
type Warning struct {
	Row     int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("row %d: %s", w.Row, w.Message)
}

// Classify returns Derived when datasetType contains both '[' and ']' in any
// order, Primary otherwise.
func Classify(datasetType string) string {
	if strings.ContainsRune(datasetType, '[') && strings.ContainsRune(datasetType, ']') {
		return Derived
	}
	return Primary
}

// ExtractJSON parses body and extracts the published table from it.
// Invalid JSON yields an error wrapping feed.ErrParse.
func ExtractJSON(body []byte) (*Table, []Warning, error) {
	value, err := feed.ParsePayload(body)
	if err != nil {
		return nil, nil, err
	}
	return Extract(value)
}

// Extract validates the payload shape, keeps rows whose status is exactly
// "Published" in their original order, and appends dataset_status.
func Extract(payload *fastjson.Value) (*Table, []Warning, error) {
	items, err := dataItems(payload)
	if err != nil {
		return nil, nil, err
	}

	columns := newColumnSet()
	records := make([]Record, 0, len(items))
	for i, item := range items {
		obj, err := item.Object()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: data[%d] is %s, not an object", ErrSchema, i, item.Type())
		}
		record := make(Record, obj.Len())
		obj.Visit(func(key []byte, v *fastjson.Value) {
			name := string(key)
			columns.add(name)
			record[name] = toValue(v)
		})
		records = append(records, record)
	}

	table := &Table{Rows: make([]Record, 0, len(records))}
	var warnings []Warning
	for _, record := range records {
		if status, ok := record[ColumnStatus].(string); !ok || status != StatusPublished {
			continue
		}
		row := len(table.Rows)
		datasetType, ok := record[ColumnDatasetType].(string)
		if !ok {
			warnings = append(warnings, Warning{
				Row:     row,
				Message: describeUnclassified(record),
			})
		}
		record[ColumnDatasetStatus] = Classify(datasetType)
		table.Rows = append(table.Rows, record)
	}

	columns.add(ColumnDatasetStatus)
	table.Columns = columns.names
	return table, warnings, nil
}

func dataItems(payload *fastjson.Value) ([]*fastjson.Value, error) {
	if payload == nil || payload.Type() != fastjson.TypeObject {
		return nil, fmt.Errorf("%w: missing 'data' key", ErrSchema)
	}
	data := payload.Get("data")
	if data == nil {
		return nil, fmt.Errorf("%w: missing 'data' key", ErrSchema)
	}
	items, err := data.Array()
	if err != nil {
		return nil, fmt.Errorf("%w: 'data' is %s, not an array", ErrSchema, data.Type())
	}
	return items, nil
}

func describeUnclassified(record Record) string {
	value, present := record[ColumnDatasetType]
	switch {
	case !present:
		return "dataset_type missing; classified as Primary"
	case value == nil:
		return "dataset_type is null; classified as Primary"
	default:
		return fmt.Sprintf("dataset_type is %T, not a string; classified as Primary", value)
	}
}

type columnSet struct {
	names []string
	seen  map[string]struct{}
}

func newColumnSet() *columnSet {
	return &columnSet{names: []string{}, seen: make(map[string]struct{})}
}

func (c *columnSet) add(name string) {
	if _, ok := c.seen[name]; ok {
		return
	}
	c.seen[name] = struct{}{}
	c.names = append(c.names, name)
}

func toValue(v *fastjson.Value) Value {
	switch v.Type() {
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	case fastjson.TypeNumber:
		return v.GetFloat64()
	case fastjson.TypeTrue:
		return true
	case fastjson.TypeFalse:
		return false
	case fastjson.TypeArray:
		items := v.GetArray()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = toValue(item)
		}
		return out
	case fastjson.TypeObject:
		obj := v.GetObject()
		out := make(map[string]any, obj.Len())
		obj.Visit(func(key []byte, item *fastjson.Value) {
			out[string(key)] = toValue(item)
		})
		return out
	default:
		return nil
	}
}
