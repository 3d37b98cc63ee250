package main

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/pdftext/internal/extract"
	"github.com/pdiddy/pdftext/internal/provider"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE...",
	Short: "Report page counts for PDFs as seen by pdfcpu and the text provider",
	Long: `Inspect compares the page count reported by pdfcpu's structural parser with
the number of pages and characters the selected text provider extracts. A
mismatch usually points at a damaged page tree or a scanned document without
a text layer.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := registry.Resolve(viper.GetStringSlice("providers"))
		if err != nil {
			return err
		}
		for _, path := range args {
			inspectFile(cmd.OutOrStdout(), p, path)
		}
		return nil
	},
}

func init() {
	// Keep pdfcpu from creating its user configuration directory.
	model.ConfigPath = "disable"

	rootCmd.AddCommand(inspectCmd)
}

func inspectFile(w io.Writer, p provider.Provider, path string) {
	structural, err := api.PageCountFile(path)
	if err != nil {
		logger.Debug("pdfcpu page count failed", zap.String("path", path), zap.Error(err))
		fmt.Fprintf(w, "%s: pdfcpu: %v\n", path, err)
		structural = -1
	}

	text, pages, err := extract.Text(p, path)
	if err != nil {
		fmt.Fprintf(w, "%s: %s: %v\n", path, p.Name(), err)
		return
	}

	fmt.Fprintf(w, "%s: %d pages (%s), %d chars extracted", path, pages, p.Name(), len([]rune(text)))
	if structural >= 0 {
		fmt.Fprintf(w, ", %d pages (pdfcpu)", structural)
		if structural != pages {
			fmt.Fprint(w, " MISMATCH")
		}
	}
	fmt.Fprintln(w)
}
