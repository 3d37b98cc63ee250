package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdftext/internal/provider"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List PDF text providers and which one a run would use",
	RunE: func(cmd *cobra.Command, args []string) error {
		order := viper.GetStringSlice("providers")
		if len(order) == 0 {
			order = provider.DefaultOrder
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tSTATUS")
		for _, name := range registry.Names() {
			p, _ := registry.Lookup(name)
			status := "available"
			if err := p.Available(); err != nil {
				status = err.Error()
			}
			fmt.Fprintf(tw, "%s\t%s\n", name, status)
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		p, err := registry.Resolve(order)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "\nselected: none (%v)\n", err)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nselected: %s (order: %v)\n", p.Name(), order)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}
