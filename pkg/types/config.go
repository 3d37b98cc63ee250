package types

// HistoryConfig controls the run history store.
type HistoryConfig struct {
	// Enabled turns on recording of each batch run.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Dir is the directory holding history.db (default ".pdftext").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// ExtractionConfig holds settings for a batch run.
type ExtractionConfig struct {
	// BaseDir anchors the default job set and relative job paths.
	// Empty means the parent of the directory containing the executable.
	BaseDir string `json:"base_dir" yaml:"base_dir" mapstructure:"base_dir"`

	// JobsFile is an optional YAML manifest replacing the default jobs.
	JobsFile string `json:"jobs_file,omitempty" yaml:"jobs_file,omitempty" mapstructure:"jobs_file"`

	// Jobs lists jobs inline; used when JobsFile is empty.
	Jobs []Job `json:"jobs,omitempty" yaml:"jobs,omitempty" mapstructure:"jobs"`

	// Providers is the resolution order for PDF text providers.
	Providers []string `json:"providers" yaml:"providers" mapstructure:"providers"`

	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`

	// Verbose switches diagnostics to the development logger.
	Verbose bool `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
}
