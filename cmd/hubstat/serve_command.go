package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hubstat/internal/feedcache"
	"hubstat/internal/logging"
	"hubstat/internal/metrics"
	"hubstat/internal/pipeline"
	"hubstat/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the report and JSON API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			recorder := metrics.New()
			p, err := ctx.newPipeline("", pipeline.WithRecorder(recorder))
			if err != nil {
				return err
			}
			cache := feedcache.New(cfg.CacheTTL(), cfg.Cache.MaxEntries,
				feedcache.WithLogger(logger),
				feedcache.WithRecorder(recorder),
			)
			defer cache.Close()

			runCtx := cmd.Context()
			if trigger := cfg.Cache.RefreshTrigger; trigger != "" {
				if err := cache.Watch(runCtx, trigger, nil); err != nil {
					logging.WarnWithContext(logger, "refresh trigger unavailable", "refresh_watch_failed",
						logging.Error(err),
						logging.String(logging.FieldImpact, "cache clears only on TTL expiry or POST /api/refresh"),
					)
				}
			}

			addr := cfg.Server.Bind
			if trimmed := strings.TrimSpace(bind); trimmed != "" {
				addr = trimmed
			}
			srv, err := server.New(server.Options{
				Bind:     addr,
				Report:   cfg.Report,
				Pipeline: p,
				Cache:    cache,
				Metrics:  recorder,
				Logger:   logger,
			})
			if err != nil {
				return err
			}
			if err := srv.Start(runCtx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Serving report on http://%s (cache ttl %s)\n", srv.Addr(), cfg.CacheTTL())
			<-runCtx.Done()
			srv.Stop()
			return nil
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (defaults to server.bind)")
	return cmd
}
