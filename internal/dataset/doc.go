// Package dataset turns a parsed data-status payload into the published
// dataset table.
//
// Extract validates that the payload is an object with a "data" array of
// objects, keeps rows whose status is exactly "Published" (preserving their
// order), and derives the dataset_status column with Classify. The column
// set is the union of keys seen across every row in first-seen order, and
// rows missing a key read as null cells.
package dataset
