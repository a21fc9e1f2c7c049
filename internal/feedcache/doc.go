// Package feedcache memoizes pipeline results keyed by feed endpoint.
//
// Entries live for a configured TTL measured against an injectable
// clockwork clock and can be dropped early with Invalidate, Clear, or by
// touching the refresh trigger file registered with Watch. Only successful
// results are stored.
package feedcache
