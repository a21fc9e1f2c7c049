// Package config loads, normalizes, and validates hubstat configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// HUBSTAT_FEED_URL. The Config type centralizes every knob the CLI and the
// report server need, so the feed endpoint, cache lifetime, and report text
// are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
