package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"hubstat/internal/config"
	"hubstat/internal/report"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var inputPath string
	var outputPath string
	var toStdout bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the HTML report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			p, err := ctx.newPipeline(inputPath)
			if err != nil {
				return err
			}
			result := p.Run(cmd.Context())
			page := report.NewPage(cfg.Report, result, time.Now())

			if toStdout {
				return report.Render(cmd.OutOrStdout(), page)
			}

			target := cfg.Report.OutputPath
			if trimmed := strings.TrimSpace(outputPath); trimmed != "" {
				if target, err = config.ExpandPath(trimmed); err != nil {
					return fmt.Errorf("resolve output path: %w", err)
				}
			}
			if err := report.WriteFile(target, page); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printFailureNotice(out, result)
			fmt.Fprintf(out, "Wrote report for %d published datasets to %s\n", result.Table.Len(), target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Read a saved feed response instead of fetching")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Report destination (defaults to report.output_path)")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Write the HTML to stdout instead of a file")
	return cmd
}
