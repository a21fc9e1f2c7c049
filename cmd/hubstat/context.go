package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"hubstat/internal/config"
	"hubstat/internal/feed"
	"hubstat/internal/logging"
	"hubstat/internal/pipeline"
)

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(flagValue(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		if level := flagValue(c.logLevelFlag); level != "" {
			cfg.Logging.Level = strings.ToLower(level)
		}
		if format := flagValue(c.logFormatFlag); format != "" {
			cfg.Logging.Format = strings.ToLower(format)
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// newPipeline builds a pipeline over the configured feed, or over inputPath
// when it is set.
func (c *commandContext) newPipeline(inputPath string, opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}

	var source pipeline.Source
	if input := strings.TrimSpace(inputPath); input != "" {
		expanded, err := config.ExpandPath(input)
		if err != nil {
			return nil, fmt.Errorf("resolve input path: %w", err)
		}
		source = pipeline.NewFileSource(expanded)
	} else {
		client, err := feed.New(cfg.Feed.URL,
			feed.WithTimeout(cfg.FeedTimeout()),
			feed.WithUserAgent(cfg.Feed.UserAgent),
		)
		if err != nil {
			return nil, err
		}
		source = client
	}

	return pipeline.New(source, append([]pipeline.Option{pipeline.WithLogger(logger)}, opts...)...)
}

func flagValue(flag *string) string {
	if flag == nil {
		return ""
	}
	return strings.TrimSpace(*flag)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// printFailureNotice writes the one-line notice shown when the pipeline
// degraded to an empty table.
func printFailureNotice(out io.Writer, result pipeline.Result) {
	if result.OK() {
		return
	}
	fmt.Fprintf(out, "Feed unavailable (%s failure); showing no data. %s\n", result.Kind, result.Kind.Hint())
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
