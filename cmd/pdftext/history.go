package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdftext/internal/history"
	"github.com/pdiddy/pdftext/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history [RUN_ID]",
	Short: "List recorded runs, or the job results of one run",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.OpenExisting(types.HistoryConfig{Dir: viper.GetString("history.dir")})
		if errors.Is(err, history.ErrNoHistory) {
			fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded")
			return nil
		}
		if err != nil {
			return err
		}
		defer store.Close()

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		defer tw.Flush()

		if len(args) == 1 {
			rows, err := store.Results(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				return fmt.Errorf("no results recorded for run %s", args[0])
			}
			fmt.Fprintln(tw, "#\tSTATUS\tPAGES\tINPUT\tDETAIL")
			for _, r := range rows {
				detail := r.Output
				if r.Status == types.StatusFailed {
					detail = fmt.Sprintf("%s: %s", r.Kind, r.Message)
				}
				fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", r.Seq+1, r.Status, r.Pages, r.Input, detail)
			}
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := store.Recent(cmd.Context(), limit)
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "RUN\tSTARTED\tPROVIDER\tEXTRACTED\tMISSING\tFAILED")
		for _, r := range runs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\n",
				r.ID, r.StartedAt.Local().Format(time.DateTime), r.Provider, r.Extracted, r.Missing, r.Failed)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	rootCmd.AddCommand(historyCmd)
}
