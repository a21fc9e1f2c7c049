// Package metrics exposes Prometheus collectors for pipeline runs and feed
// cache events. The Recorder satisfies both pipeline.Recorder and
// feedcache.EventRecorder.
package metrics
