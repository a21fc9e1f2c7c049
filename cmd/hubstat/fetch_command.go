package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hubstat/internal/api"
	"hubstat/internal/dataset"
	"hubstat/internal/summary"
)

var defaultFetchColumns = []string{
	"hubmap_id",
	dataset.ColumnGroupName,
	dataset.ColumnDatasetType,
	dataset.ColumnDatasetStatus,
	dataset.ColumnAccessLevel,
	dataset.ColumnHasData,
	dataset.ColumnHasContributors,
}

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var inputPath string
	var jsonOutput bool
	var allColumns bool
	var limit int

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the feed and print published datasets",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must be >= 0, got %d", limit)
			}
			p, err := ctx.newPipeline(inputPath)
			if err != nil {
				return err
			}
			result := p.Run(cmd.Context())

			if jsonOutput {
				resp := api.FromTable(result, false)
				if limit > 0 && len(resp.Rows) > limit {
					resp.Rows = resp.Rows[:limit]
				}
				return writeJSON(cmd, resp)
			}

			out := cmd.OutOrStdout()
			printFailureNotice(out, result)
			table := result.Table
			if table.Empty() {
				if result.OK() {
					fmt.Fprintln(out, "No published datasets.")
				}
				return nil
			}

			columns := table.Columns
			if !allColumns {
				columns = presentColumns(table, defaultFetchColumns)
			}
			rows := make([][]string, 0, table.Len())
			for i, record := range table.Rows {
				if limit > 0 && i >= limit {
					break
				}
				row := make([]string, len(columns))
				for j, column := range columns {
					row[j] = dataset.FormatValue(record.Get(column))
				}
				rows = append(rows, row)
			}
			fmt.Fprintln(out, renderTable(out, columns, rows, nil))

			s := summary.Build(table, summary.Options{})
			fmt.Fprintf(out, "%d published datasets (%d primary, %d derived)", s.Published, s.Primary, s.Derived)
			if limit > 0 && table.Len() > limit {
				fmt.Fprintf(out, "; showing first %d", limit)
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Read a saved feed response instead of fetching")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&allColumns, "all", false, "Show every column instead of the overview set")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most N rows (0 for all)")
	return cmd
}

// presentColumns keeps the wanted columns that exist in table, falling back
// to every column when none do.
func presentColumns(table *dataset.Table, wanted []string) []string {
	var columns []string
	for _, column := range wanted {
		if table.HasColumn(column) {
			columns = append(columns, column)
		}
	}
	if len(columns) == 0 {
		return table.Columns
	}
	return columns
}
