package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"hubstat/internal/api"
	"hubstat/internal/summary"
)

func newSummaryCommand(ctx *commandContext) *cobra.Command {
	var inputPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print published dataset counts and distributions",
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
			s := summary.Build(result.Table, summary.Options{
				TitleCaseLabels: cfg.Report.TitleCaseLabels,
				WordCloudLimit:  cfg.Report.WordCloudLimit,
			})

			if jsonOutput {
				return writeJSON(cmd, api.FromSummary(result, s, false))
			}

			out := cmd.OutOrStdout()
			printFailureNotice(out, result)
			fmt.Fprintln(out, "At a Glance")
			fmt.Fprintln(out, renderTable(out,
				[]string{"Metric", "Value"},
				[][]string{
					{"Published datasets", strconv.Itoa(s.Published)},
					{"Organs", strconv.Itoa(s.Organs)},
					{"Primary", strconv.Itoa(s.Primary)},
					{"Derived", strconv.Itoa(s.Derived)},
				},
				[]columnAlignment{alignLeft, alignRight},
			))

			for _, dist := range s.Distributions {
				if len(dist.Counts) == 0 {
					continue
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, dist.Title)
				rows := make([][]string, 0, len(dist.Counts))
				for _, count := range dist.Counts {
					rows = append(rows, []string{
						count.Label,
						strconv.Itoa(count.Value),
						strconv.FormatFloat(count.Share*100, 'f', 1, 64) + "%",
					})
				}
				fmt.Fprintln(out, renderTable(out,
					[]string{"Label", "Count", "Share"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignRight},
				))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Read a saved feed response instead of fetching")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
