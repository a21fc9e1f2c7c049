// Package report renders the self-contained HTML report page.
//
// The page carries the At a Glance counts, one inline SVG pie per
// distribution, a word cloud of dataset types and the full published table.
// When the pipeline failed the page says so and names the failure kind, so
// "fetch failed" is never confused with "zero published datasets".
//
// WriteFile replaces the output atomically while holding a gofrs/flock lock
// beside the target, and ETag derives an xxhash entity tag for the server.
package report
