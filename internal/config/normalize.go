package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeFeed()
	if err := c.normalizeCache(); err != nil {
		return err
	}
	if err := c.normalizeReport(); err != nil {
		return err
	}
	c.normalizeServer()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeFeed() {
	if value, ok := os.LookupEnv("HUBSTAT_FEED_URL"); ok && strings.TrimSpace(value) != "" {
		c.Feed.URL = value
	}
	c.Feed.URL = strings.TrimSpace(c.Feed.URL)
	if c.Feed.URL == "" {
		c.Feed.URL = defaultFeedURL
	}
	if c.Feed.TimeoutSeconds == 0 {
		c.Feed.TimeoutSeconds = defaultFeedTimeout
	}
	c.Feed.UserAgent = strings.TrimSpace(c.Feed.UserAgent)
	if c.Feed.UserAgent == "" {
		c.Feed.UserAgent = defaultUserAgent
	}
}

func (c *Config) normalizeCache() error {
	if c.Cache.MaxEntries <= 0 {
		c.Cache.MaxEntries = defaultCacheMaxEntries
	}
	trigger := strings.TrimSpace(c.Cache.RefreshTrigger)
	if trigger == "" {
		c.Cache.RefreshTrigger = ""
		return nil
	}
	var err error
	if c.Cache.RefreshTrigger, err = expandPath(trigger); err != nil {
		return fmt.Errorf("cache.refresh_trigger: %w", err)
	}
	return nil
}

func (c *Config) normalizeReport() error {
	var err error
	if strings.TrimSpace(c.Report.OutputPath) == "" {
		c.Report.OutputPath = defaultReportOutput
	}
	if c.Report.OutputPath, err = expandPath(strings.TrimSpace(c.Report.OutputPath)); err != nil {
		return fmt.Errorf("report.output_path: %w", err)
	}
	c.Report.Title = strings.TrimSpace(c.Report.Title)
	if c.Report.Title == "" {
		c.Report.Title = defaultReportTitle
	}
	c.Report.Authors = strings.TrimSpace(c.Report.Authors)
	c.Report.Introduction = strings.TrimSpace(c.Report.Introduction)
	if c.Report.WordCloudLimit == 0 {
		c.Report.WordCloudLimit = defaultWordCloudLimit
	}
	return nil
}

func (c *Config) normalizeServer() {
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	if c.Server.Bind == "" {
		c.Server.Bind = defaultServerBind
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if value, ok := os.LookupEnv("HUBSTAT_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) == "" {
		c.Logging.Dir = ""
		return nil
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}
