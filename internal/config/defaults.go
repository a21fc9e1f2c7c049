package config

const (
	defaultConfigPath      = "~/.config/hubstat/config.toml"
	defaultFeedURL         = "https://ingest.api.hubmapconsortium.org/datasets/data-status"
	defaultFeedTimeout     = 30
	defaultUserAgent       = "hubstat/dev"
	defaultCacheTTL        = 300
	defaultCacheMaxEntries = 16
	defaultReportOutput    = "hubstat-report.html"
	defaultReportTitle     = "HuBMAP Data Publication Report"
	defaultWordCloudLimit  = 50
	defaultServerBind      = "127.0.0.1:8787"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"

	defaultIntroduction = `The Human BioMolecular Atlas Program (HuBMAP) aims to create an immersive 3D map of the human body, improving access to data and developing methods for tissue interrogation applicable to other research areas. This report assesses the health of published HuBMAP datasets: how many are published, who contributed them, which access levels they carry, and how primary and derived datasets are distributed.`
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Feed: Feed{
			URL:            defaultFeedURL,
			TimeoutSeconds: defaultFeedTimeout,
			UserAgent:      defaultUserAgent,
		},
		Cache: Cache{
			TTLSeconds: defaultCacheTTL,
			MaxEntries: defaultCacheMaxEntries,
		},
		Report: Report{
			OutputPath:      defaultReportOutput,
			Title:           defaultReportTitle,
			Introduction:    defaultIntroduction,
			WordCloudLimit:  defaultWordCloudLimit,
			TitleCaseLabels: true,
		},
		Server: Server{
			Bind: defaultServerBind,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
