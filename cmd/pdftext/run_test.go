package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pdiddy/pdftext/internal/history"
	"github.com/pdiddy/pdftext/internal/pdftest"
	"github.com/pdiddy/pdftext/internal/provider"
	"github.com/pdiddy/pdftext/pkg/types"
)

// absentProvider is never available.
type absentProvider struct{ name string }

func (a absentProvider) Name() string     { return a.name }
func (a absentProvider) Available() error { return errors.New("not installed") }

func (a absentProvider) Open(string) (provider.Document, error) {
	return nil, errors.New("open on unavailable provider")
}

// defaultLayout writes the three default PDFs under base and returns it.
func defaultLayout(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	pdftest.Write(t, base, filepath.Join("public", "resume", "Resume.pdf"), "Resume page")
	pdftest.Write(t, base, "Jan25 Audit.pdf", "Audit page one", "Audit page two")
	pdftest.Write(t, base, "Kiefer-Aiden-SF_TOP_5.pdf", "Strengths")
	return base
}

func TestRunExtractionDefaultJobs(t *testing.T) {
	base := defaultLayout(t)
	cfg := types.ExtractionConfig{BaseDir: base, Providers: []string{provider.NameLedongthuc}}

	var stdout, stderr bytes.Buffer
	sum, err := runExtraction(context.Background(), cfg, provider.DefaultRegistry(), &stdout, &stderr, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Extracted)
	assert.Empty(t, stderr.String())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "Extracted text from "), line)
	}

	for _, name := range []string{"resume-summary.md", "coursework-audit-summary.md", "strengths-summary.md"} {
		assert.FileExists(t, filepath.Join(base, "docs", name))
	}
	data, err := os.ReadFile(filepath.Join(base, "docs", "coursework-audit-summary.md"))
	require.NoError(t, err)
	assert.Less(t, strings.Index(string(data), "Audit page one"), strings.Index(string(data), "Audit page two"))
}

func TestRunExtractionMissingInputs(t *testing.T) {
	base := t.TempDir()
	cfg := types.ExtractionConfig{BaseDir: base}

	var stdout bytes.Buffer
	sum, err := runExtraction(context.Background(), cfg, provider.DefaultRegistry(), &stdout, &bytes.Buffer{}, zaptest.NewLogger(t))
	require.NoError(t, err, "missing inputs never fail the run")
	assert.Equal(t, 3, sum.Missing)
	assert.Contains(t, stdout.String(), "File not found: "+filepath.Join(base, "Jan25 Audit.pdf"))
	assert.NoDirExists(t, filepath.Join(base, "docs"))
}

func TestRunExtractionNoProvider(t *testing.T) {
	base := defaultLayout(t)
	reg := provider.NewRegistry(absentProvider{name: "primary"}, absentProvider{name: "secondary"})
	cfg := types.ExtractionConfig{BaseDir: base, Providers: []string{"primary", "secondary"}}

	var stdout, stderr bytes.Buffer
	_, err := runExtraction(context.Background(), cfg, reg, &stdout, &stderr, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, provider.ErrNoProvider))

	assert.Empty(t, stdout.String(), "no job may be attempted")
	assert.Contains(t, stderr.String(), "Please install")
	assert.NoDirExists(t, filepath.Join(base, "docs"))
}

func TestRunExtractionInlineJobsAndHistory(t *testing.T) {
	base := t.TempDir()
	pdftest.Write(t, base, "in.pdf", "inline")
	histDir := filepath.Join(base, "state")

	cfg := types.ExtractionConfig{
		BaseDir:   base,
		Jobs:      []types.Job{{Input: "in.pdf", Output: "out/in.md"}, {Input: "gone.pdf", Output: "out/gone.md"}},
		Providers: []string{provider.NameDslipak},
		History:   types.HistoryConfig{Enabled: true, Dir: histDir},
	}

	var stdout bytes.Buffer
	sum, err := runExtraction(context.Background(), cfg, provider.DefaultRegistry(), &stdout, &bytes.Buffer{}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Extracted)
	assert.Equal(t, 1, sum.Missing)
	assert.FileExists(t, filepath.Join(base, "out", "in.md"))

	store, err := history.Open(types.HistoryConfig{Dir: histDir})
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.Recent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, provider.NameDslipak, runs[0].Provider)
	assert.Equal(t, 1, runs[0].Extracted)
	assert.Equal(t, 1, runs[0].Missing)
}

func TestResolveJobsPrecedence(t *testing.T) {
	base := t.TempDir()
	manifest := filepath.Join(base, "jobs.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte("jobs:\n  - input: m.pdf\n    output: m.md\n"), 0o644))

	got, err := resolveJobs(types.ExtractionConfig{
		BaseDir:  base,
		JobsFile: manifest,
		Jobs:     []types.Job{{Input: "inline.pdf", Output: "inline.md"}},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, filepath.Join(base, "m.pdf"), got[0].Input)

	got, err = resolveJobs(types.ExtractionConfig{
		BaseDir: base,
		Jobs:    []types.Job{{Input: "inline.pdf", Output: "inline.md"}},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, filepath.Join(base, "inline.pdf"), got[0].Input)

	got, err = resolveJobs(types.ExtractionConfig{BaseDir: base})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
