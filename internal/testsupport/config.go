package testsupport

import (
	"path/filepath"
	"testing"

	"hubstat/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp paths per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Feed.URL = "http://127.0.0.1:1/datasets/data-status"
	cfgVal.Feed.TimeoutSeconds = 5
	cfgVal.Feed.UserAgent = "hubstat/test"
	cfgVal.Report.OutputPath = filepath.Join(base, "report", "hubstat-report.html")
	cfgVal.Logging.Dir = filepath.Join(base, "logs")
	cfgVal.Server.Bind = "127.0.0.1:0"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithFeedURL points the test config at a fixture endpoint.
func WithFeedURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Feed.URL = url
	}
}

// WithCacheTTL overrides the cache TTL in seconds.
func WithCacheTTL(seconds int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Cache.TTLSeconds = seconds
	}
}

// WithRefreshTrigger enables the refresh trigger file under the temp root.
func WithRefreshTrigger() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Cache.RefreshTrigger = filepath.Join(b.baseDir, "refresh")
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Logging.Dir)
}
