// Package pipeline runs the fetch and classify stages as one unit.
//
// Run returns a tagged Result that either carries the published table or
// the failure and its ErrorKind (network, http, parse, schema, unknown).
// Table offers the fail-open view: any failure becomes an empty, non-nil
// table so presentation code never has to handle an error. Each run gets a
// uuid run ID that is attached to every log line as correlation_id.
package pipeline
