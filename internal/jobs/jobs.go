// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package jobs builds the list of extraction jobs for a batch run: the
// built-in default set, inline configuration, or a YAML manifest.
package jobs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdftext/pkg/types"
)

// defaults are the built-in jobs, relative to the base directory.
var defaults = []types.Job{
	{Input: filepath.Join("public", "resume", "Resume.pdf"), Output: filepath.Join("docs", "resume-summary.md")},
	{Input: "Jan25 Audit.pdf", Output: filepath.Join("docs", "coursework-audit-summary.md")},
	{Input: "Kiefer-Aiden-SF_TOP_5.pdf", Output: filepath.Join("docs", "strengths-summary.md")},
}

// ErrNoJobs is returned for a manifest that lists no jobs.
var ErrNoJobs = errors.New("no jobs defined")

// Manifest is the on-disk YAML job list.
type Manifest struct {
	Jobs []types.Job `yaml:"jobs"`
}

// BaseDir returns the directory two levels up from the program file, i.e.
// the parent of the directory that contains it. A binary at
// <repo>/bin/pdftext yields <repo>.
func BaseDir(executable string) (string, error) {
	abs, err := filepath.Abs(executable)
	if err != nil {
		return "", fmt.Errorf("resolving executable path %s: %w", executable, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	return filepath.Dir(filepath.Dir(abs)), nil
}

// Default returns the built-in job set anchored at base.
func Default(base string) []types.Job {
	out, _ := Resolve(defaults, base)
	return out
}

// Resolve returns a copy of specs with relative paths joined to base and
// all paths cleaned. Both paths of every job must be non-empty.
func Resolve(specs []types.Job, base string) ([]types.Job, error) {
	out := make([]types.Job, len(specs))
	for i, s := range specs {
		if s.Input == "" || s.Output == "" {
			return nil, fmt.Errorf("job %d: input and output paths are required", i+1)
		}
		out[i] = types.Job{
			Input:  anchor(s.Input, base),
			Output: anchor(s.Output, base),
		}
	}
	return out, nil
}

// Load reads a YAML manifest from path and resolves its jobs against base.
func Load(path, base string) ([]types.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading jobs file %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing jobs file %s: %w", path, err)
	}
	if len(m.Jobs) == 0 {
		return nil, fmt.Errorf("jobs file %s: %w", path, ErrNoJobs)
	}

	jobs, err := Resolve(m.Jobs, base)
	if err != nil {
		return nil, fmt.Errorf("jobs file %s: %w", path, err)
	}
	return jobs, nil
}

// Save writes jobs to path as a YAML manifest, creating parent directories.
func Save(path string, jobs []types.Job) error {
	data, err := yaml.Marshal(Manifest{Jobs: jobs})
	if err != nil {
		return fmt.Errorf("encoding jobs: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}

func anchor(p, base string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
