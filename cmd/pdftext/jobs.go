package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdftext/internal/jobs"
	"github.com/pdiddy/pdftext/pkg/types"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Show the resolved job list, or write it as a manifest",
	Long: `Jobs prints the jobs a run would process, with every path resolved against
the base directory. With --dump the list is written as a YAML manifest that
can be edited and passed back with --jobs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		list, err := resolveJobs(cfg)
		if err != nil {
			return err
		}
		dump, _ := cmd.Flags().GetString("dump")
		return showJobs(cmd.OutOrStdout(), list, dump)
	},
}

func init() {
	jobsCmd.Flags().String("dump", "", "write the resolved jobs to this YAML manifest")
	rootCmd.AddCommand(jobsCmd)
}

// showJobs writes list to the manifest at dump, or prints it when dump is empty.
func showJobs(w io.Writer, list []types.Job, dump string) error {
	if dump != "" {
		if err := jobs.Save(dump, list); err != nil {
			return fmt.Errorf("writing jobs file %s: %w", dump, err)
		}
		fmt.Fprintf(w, "Wrote %d jobs to %s\n", len(list), dump)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tINPUT\tOUTPUT")
	for i, j := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, j.Input, j.Output)
	}
	return tw.Flush()
}
