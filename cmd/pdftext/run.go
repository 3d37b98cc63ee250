package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/pdftext/internal/extract"
	"github.com/pdiddy/pdftext/internal/history"
	"github.com/pdiddy/pdftext/internal/jobs"
	"github.com/pdiddy/pdftext/internal/provider"
	"github.com/pdiddy/pdftext/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Extract text from every configured PDF job",
	Long: `Run processes the job list in order. For each job whose PDF exists, the text
of every page is written to the output file, creating parent directories and
overwriting any previous output. One line per job is printed to stdout.

The job list is, in order of precedence: --jobs manifest, "jobs" in the config
file, or the built-in list anchored at the base directory.`,
	Args: cobra.NoArgs,
	RunE: runBatchCmd,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("base-dir", "", "directory that anchors default and relative job paths (default: parent of the binary's directory)")
	flags.String("jobs", "", "YAML manifest listing jobs to run instead of the defaults")
	flags.StringSlice("provider", nil, "PDF text provider resolution order (ledongthuc, dslipak, pdftotext)")
	flags.Bool("history", false, "record the run in the history database")
	flags.String("history-dir", "", "directory holding history.db (default: .pdftext)")

	_ = viper.BindPFlag("base_dir", flags.Lookup("base-dir"))
	_ = viper.BindPFlag("jobs_file", flags.Lookup("jobs"))
	_ = viper.BindPFlag("providers", flags.Lookup("provider"))
	_ = viper.BindPFlag("history.enabled", flags.Lookup("history"))
	_ = viper.BindPFlag("history.dir", flags.Lookup("history-dir"))

	rootCmd.AddCommand(runCmd)
}

func runBatchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	_, err = runExtraction(cmd.Context(), cfg, registry, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
	return err
}

// loadConfig reads the extraction settings from viper.
func loadConfig() (types.ExtractionConfig, error) {
	var cfg types.ExtractionConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	return cfg, nil
}

// runExtraction resolves a provider and the job list, then runs the batch.
// The only errors returned are startup failures; per-job failures are
// reported on stdout and reflected in the summary.
func runExtraction(ctx context.Context, cfg types.ExtractionConfig, reg *provider.Registry, stdout, stderr io.Writer, log *zap.Logger) (extract.BatchResult, error) {
	p, err := reg.Resolve(cfg.Providers)
	if err != nil {
		var ue *provider.UnavailableError
		if errors.As(err, &ue) {
			fmt.Fprintln(stderr, ue.Hint())
		}
		return extract.BatchResult{}, err
	}
	log.Debug("resolved provider", zap.String("provider", p.Name()))

	list, err := resolveJobs(cfg)
	if err != nil {
		return extract.BatchResult{}, err
	}

	run := history.NewRun(p.Name())
	run.Results = extract.RunBatch(p, list, stdout)
	summary := extract.Summarize(run.Results)
	log.Info("batch finished",
		zap.String("run_id", run.ID),
		zap.Int("extracted", summary.Extracted),
		zap.Int("missing", summary.Missing),
		zap.Int("failed", summary.Failed),
	)

	if cfg.History.Enabled {
		if err := recordRun(ctx, cfg.History, run); err != nil {
			log.Warn("history not recorded", zap.String("run_id", run.ID), zap.Error(err))
		}
	}
	return summary, nil
}

// resolveJobs picks the job list: manifest, inline config, then defaults.
func resolveJobs(cfg types.ExtractionConfig) ([]types.Job, error) {
	base := cfg.BaseDir
	if base == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("locating executable: %w", err)
		}
		if base, err = jobs.BaseDir(exe); err != nil {
			return nil, err
		}
	}

	switch {
	case cfg.JobsFile != "":
		return jobs.Load(cfg.JobsFile, base)
	case len(cfg.Jobs) > 0:
		return jobs.Resolve(cfg.Jobs, base)
	default:
		return jobs.Default(base), nil
	}
}

func recordRun(ctx context.Context, cfg types.HistoryConfig, run *history.Run) error {
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := history.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(ctx, run)
}
