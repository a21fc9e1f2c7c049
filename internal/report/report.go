package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"hubstat/internal/config"
	"hubstat/internal/dataset"
	"hubstat/internal/pipeline"
	"hubstat/internal/summary"
)

//go:embed report.html.tmpl
var pageTemplate string

var tmpl = template.Must(template.New("report").Parse(pageTemplate))

// Page is everything the report renders.
type Page struct {
	Title        string
	Authors      string
	Introduction string
	Date         time.Time
	Result       pipeline.Result
	Summary      summary.Summary
}

// NewPage assembles a page from report settings and a pipeline result.
func NewPage(cfg config.Report, result pipeline.Result, now time.Time) Page {
	return Page{
		Title:        cfg.Title,
		Authors:      cfg.Authors,
		Introduction: cfg.Introduction,
		Date:         now,
		Result:       result,
		Summary: summary.Build(result.Table, summary.Options{
			TitleCaseLabels: cfg.TitleCaseLabels,
			WordCloudLimit:  cfg.WordCloudLimit,
		}),
	}
}

type view struct {
	Title        string
	Authors      string
	Date         string
	Generated    string
	RunID        string
	Introduction []string
	Failure      string
	Empty        bool
	Summary      summary.Summary
	Pies         []Pie
	Words        []Word
	Columns      []string
	Rows         [][]string
}

func newView(page Page) view {
	v := view{
		Title:        page.Title,
		Authors:      page.Authors,
		Date:         page.Date.Format("January 2, 2006"),
		Generated:    page.Date.UTC().Format(time.RFC3339),
		RunID:        page.Result.RunID,
		Introduction: paragraphs(page.Introduction),
		Empty:        page.Result.Table.Empty(),
		Summary:      page.Summary,
		Words:        NewWords(page.Summary.WordCloud),
	}
	if !page.Result.OK() {
		v.Failure = string(page.Result.Kind)
		if v.Failure == "" {
			v.Failure = string(pipeline.KindUnknown)
		}
	}
	for _, chart := range summary.Charts {
		if chart.Column == dataset.ColumnDatasetType {
			continue
		}
		if dist, ok := page.Summary.Distribution(chart.Column); ok {
			v.Pies = append(v.Pies, NewPie(dist))
		}
	}
	if table := page.Result.Table; table.Len() > 0 {
		v.Columns = table.Columns
		v.Rows = make([][]string, 0, table.Len())
		for _, record := range table.Rows {
			cells := make([]string, len(table.Columns))
			for i, column := range table.Columns {
				cells[i] = dataset.FormatValue(record.Get(column))
			}
			v.Rows = append(v.Rows, cells)
		}
	}
	return v
}

func paragraphs(text string) []string {
	var out []string
	for _, block := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(block); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Render writes the HTML page to w.
func Render(w io.Writer, page Page) error {
	if page.Result.Table == nil {
		page.Result.Table = dataset.Empty()
	}
	if err := tmpl.Execute(w, newView(page)); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// Bytes renders the page into memory.
func Bytes(page Page) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, page); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
