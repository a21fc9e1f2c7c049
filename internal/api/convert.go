package api

import (
	"hubstat/internal/pipeline"
	"hubstat/internal/summary"
)

// FromResult converts a pipeline result into its run status.
func FromResult(result pipeline.Result, cached bool) RunStatus {
	status := RunStatus{
		OK:         result.OK(),
		Status:     result.Status(),
		ErrorKind:  string(result.Kind),
		Source:     result.Source,
		StatusCode: result.StatusCode,
		RunID:      result.RunID,
		DurationMS: result.Duration.Milliseconds(),
		Cached:     cached,
	}
	if result.Err != nil {
		status.Error = result.Err.Error()
	}
	if !result.FetchedAt.IsZero() {
		status.FetchedAt = result.FetchedAt.UTC().Format(dateTimeFormat)
	}
	for _, w := range result.Warnings {
		status.Warnings = append(status.Warnings, Warning{Row: w.Row, Message: w.Message})
	}
	return status
}

// FromTable converts the result table. Rows keep their original JSON values;
// columns missing from a row are emitted as null.
func FromTable(result pipeline.Result, cached bool) DatasetsResponse {
	resp := DatasetsResponse{
		Run:     FromResult(result, cached),
		Count:   result.Table.Len(),
		Columns: []string{},
		Rows:    make([]map[string]any, 0, result.Table.Len()),
	}
	if result.Table == nil {
		return resp
	}
	resp.Columns = append(resp.Columns, result.Table.Columns...)
	for _, record := range result.Table.Rows {
		row := make(map[string]any, len(result.Table.Columns))
		for _, column := range result.Table.Columns {
			row[column] = record.Get(column)
		}
		resp.Rows = append(resp.Rows, row)
	}
	return resp
}

// FromSummary converts a summary computed from result.
func FromSummary(result pipeline.Result, s summary.Summary, cached bool) SummaryResponse {
	resp := SummaryResponse{
		Run:           FromResult(result, cached),
		Published:     s.Published,
		Organs:        s.Organs,
		Primary:       s.Primary,
		Derived:       s.Derived,
		Distributions: make([]Distribution, 0, len(s.Distributions)),
		WordCloud:     make([]Term, 0, len(s.WordCloud)),
	}
	for _, dist := range s.Distributions {
		out := Distribution{
			Column: dist.Column,
			Title:  dist.Title,
			Total:  dist.Total,
			Counts: make([]Count, 0, len(dist.Counts)),
		}
		for _, c := range dist.Counts {
			out.Counts = append(out.Counts, Count{Label: c.Label, Value: c.Value, Share: c.Share})
		}
		resp.Distributions = append(resp.Distributions, out)
	}
	for _, term := range s.WordCloud {
		resp.WordCloud = append(resp.WordCloud, Term{Text: term.Text, Weight: term.Weight})
	}
	return resp
}
