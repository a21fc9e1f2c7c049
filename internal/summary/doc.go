// Package summary computes the counts, distributions and word cloud shown
// by the report page and the summary command.
package summary
