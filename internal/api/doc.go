// Package api defines wire-format types and converters shared by the HTTP
// server and the CLI's --json output. It translates pipeline results and
// summaries into transport-friendly DTOs so consumers never couple to
// internal types.
//
// # Key Types
//
// RunStatus: outcome of the pipeline run behind a response (ok flag, failure
// kind and message, source, run ID, cache flag, classification warnings).
//
// DatasetsResponse: the published table as columns plus row objects.
//
// SummaryResponse: At a Glance counts, distributions and word cloud terms.
//
// # Design Notes
//
// DTOs use camelCase JSON tags. Timestamps use RFC3339 with milliseconds.
// Every response embeds RunStatus so clients can tell an empty feed from a
// failed fetch.
package api
