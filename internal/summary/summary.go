package summary

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"hubstat/internal/dataset"
)

// UnknownLabel stands in for null or blank cells.
const UnknownLabel = "Unknown"

// Count is one slice of a distribution.
type Count struct {
	Label string
	Value int
	Share float64
}

// Distribution counts the labels of one column.
type Distribution struct {
	Column string
	Title  string
	Total  int
	Counts []Count
}

// Summary holds every aggregate the report and CLI render.
type Summary struct {
	Published     int
	Organs        int
	Derived       int
	Primary       int
	Distributions []Distribution
	WordCloud     []Term
}

// Options tunes label rendering and the word cloud.
type Options struct {
	TitleCaseLabels bool
	WordCloudLimit  int
}

// Chart describes one distribution shown in the report.
type Chart struct {
	Column string
	Title  string
}

// Charts lists the distributions in display order.
var Charts = []Chart{
	{Column: dataset.ColumnGroupName, Title: "Datasets by group"},
	{Column: dataset.ColumnAccessLevel, Title: "Data access level"},
	{Column: dataset.ColumnDatasetStatus, Title: "Dataset types"},
	{Column: dataset.ColumnHasContributors, Title: "Contributor attribution"},
	{Column: dataset.ColumnHasData, Title: "Data completeness"},
	{Column: dataset.ColumnDatasetType, Title: "Dataset type detail"},
}

// Build aggregates table. A nil or empty table yields zero counts and empty
// distributions.
func Build(table *dataset.Table, opts Options) Summary {
	s := Summary{
		Published:     table.Len(),
		Organs:        distinct(table, dataset.ColumnOrgan),
		Distributions: make([]Distribution, 0, len(Charts)),
		WordCloud:     WordCloud(table, opts.WordCloudLimit),
	}
	for _, status := range table.Column(dataset.ColumnDatasetStatus) {
		switch status {
		case dataset.Derived:
			s.Derived++
		case dataset.Primary:
			s.Primary++
		}
	}
	for _, chart := range Charts {
		dist := Distribute(table, chart.Column, opts.TitleCaseLabels)
		dist.Title = chart.Title
		s.Distributions = append(s.Distributions, dist)
	}
	return s
}

// Distribution returns the distribution for column.
func (s Summary) Distribution(column string) (Distribution, bool) {
	for _, dist := range s.Distributions {
		if dist.Column == column {
			return dist, true
		}
	}
	return Distribution{}, false
}

// Distribute counts labels in column, sorted by count descending then label.
func Distribute(table *dataset.Table, column string, titleCase bool) Distribution {
	dist := Distribution{Column: column, Counts: []Count{}}
	if table.Len() == 0 {
		return dist
	}

	counts := make(map[string]int)
	for _, value := range table.Column(column) {
		counts[Label(value, titleCase)]++
	}
	dist.Total = table.Len()
	for label, n := range counts {
		dist.Counts = append(dist.Counts, Count{
			Label: label,
			Value: n,
			Share: float64(n) / float64(dist.Total),
		})
	}
	sort.Slice(dist.Counts, func(i, j int) bool {
		if dist.Counts[i].Value != dist.Counts[j].Value {
			return dist.Counts[i].Value > dist.Counts[j].Value
		}
		return dist.Counts[i].Label < dist.Counts[j].Label
	})
	return dist
}

// Label renders a cell as a chart label: null and blank become Unknown and
// booleans become Yes or No.
func Label(value dataset.Value, titleCase bool) string {
	switch typed := value.(type) {
	case nil:
		return UnknownLabel
	case bool:
		if typed {
			return "Yes"
		}
		return "No"
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			return UnknownLabel
		}
		if titleCase {
			return cases.Title(language.English, cases.NoLower).String(trimmed)
		}
		return trimmed
	default:
		return dataset.FormatValue(typed)
	}
}

func distinct(table *dataset.Table, column string) int {
	if !table.HasColumn(column) {
		return 0
	}
	seen := make(map[string]struct{})
	for _, value := range table.Column(column) {
		if value == nil {
			continue
		}
		label := strings.TrimSpace(dataset.FormatValue(value))
		if label == "" {
			continue
		}
		seen[strings.ToLower(label)] = struct{}{}
	}
	return len(seen)
}
