package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/GreatValueCreamSoda/gossimu2/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent comparison runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := ctx.setup()
			if err != nil {
				return err
			}
			if cfg.History.Path == "" {
				return errors.New("no history database path is configured")
			}

			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}
			fmt.Fprintln(out, renderRuns(runs))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs to list")
	return cmd
}

func renderRuns(runs []history.Run) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{
		"When", "Source", "Distorted", "Frames",
		"Mean", "Median", "Std Dev", "P5", "P95",
	})
	for _, run := range runs {
		tw.AppendRow(table.Row{
			humanize.Time(run.CreatedAt),
			run.Source,
			run.Distorted,
			run.Frames,
			fmt.Sprintf("%.2f", run.Mean),
			fmt.Sprintf("%.2f", run.Median),
			fmt.Sprintf("%.2f", run.StdDev),
			fmt.Sprintf("%.2f", run.P5),
			fmt.Sprintf("%.2f", run.P95),
		})
	}

	// Columns 4 through 9 hold numbers.
	configs := make([]table.ColumnConfig, 0, 6)
	for col := 4; col <= 9; col++ {
		configs = append(configs, table.ColumnConfig{
			Number:      col,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
