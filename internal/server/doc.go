// Package server is the serve-mode HTTP surface.
//
// Routes (go-chi/chi/v5):
//
//	GET  /              HTML report with ETag and If-None-Match support
//	GET  /api/datasets  published table as JSON
//	GET  /api/summary   counts and distributions as JSON
//	POST /api/refresh   drop the cached feed result
//	GET  /healthz       liveness
//	GET  /metrics       Prometheus exposition
//
// Every read goes through the feed cache when one is configured, so repeated
// page loads within the TTL cost no network calls.
package server
