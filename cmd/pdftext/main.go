// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdftext CLI. Running it with no
// subcommand extracts the text of every configured PDF job.
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/pdftext/internal/provider"
)

// version is set at build time via ldflags.
var version = "dev"

// logger carries diagnostics; console results go to stdout separately.
var logger = zap.NewNop()

// registry holds the PDF text providers compiled into the binary.
var registry = provider.DefaultRegistry()

// rootCmd is the base command for the pdftext CLI.
var rootCmd = &cobra.Command{
	Use:   "pdftext",
	Short: "Extract plain text from PDF files into Markdown files",
	Long: `pdftext reads a fixed list of PDF files and writes the text of every page,
in page order, to a matching Markdown file. Jobs whose PDF is missing are
reported and skipped; extraction failures are reported and never stop the batch.

With no subcommand pdftext runs the batch, exactly like "pdftext run".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(viper.GetBool("verbose"))
		if err != nil {
			return err
		}
		logger = l
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug("using config file", zap.String("path", f))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runBatchCmd,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./pdftext.yaml or ~/.config/pdftext/pdftext.yaml)")
	flags.Bool("verbose", false, "emit development diagnostics on stderr")
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
}

// newLogger returns a development logger when verbose is set, and a
// production logger at warn level otherwise so routine runs print only
// the per-job lines.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdftext")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdftext"))
		}
	}

	viper.SetEnvPrefix("PDFTEXT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
