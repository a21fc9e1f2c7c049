package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/hashicorp/go-multierror"
)

// Validate ensures the configuration is usable. Every problem found is
// reported, not just the first.
func (c *Config) Validate() error {
	var result *multierror.Error
	for _, check := range []func() error{
		c.validateFeed,
		c.validateCache,
		c.validateReport,
		c.validateLogging,
	} {
		if err := check(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func (c *Config) validateFeed() error {
	parsed, err := url.Parse(c.Feed.URL)
	if err != nil {
		return fmt.Errorf("feed.url: %w", err)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return fmt.Errorf("feed.url must be an absolute URL, got %q", c.Feed.URL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("feed.url scheme must be http or https, got %q", parsed.Scheme)
	}
	if c.Feed.TimeoutSeconds < 0 {
		return errors.New("feed.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.TTLSeconds < 0 {
		return errors.New("cache.ttl_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validateReport() error {
	if c.Report.WordCloudLimit < 0 {
		return errors.New("report.word_cloud_limit must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json", "color":
	default:
		return fmt.Errorf("logging.format must be one of console, json, color; got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}
