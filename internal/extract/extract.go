// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract implements batch PDF-to-text extraction. Each job reads
// every page of one PDF through a provider, joins the page text in order,
// and writes it to the job's output file.
package extract

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdftext/internal/provider"
	"github.com/pdiddy/pdftext/pkg/types"
)

// pageSeparator follows every page's text, including the last.
const pageSeparator = "\n"

// BatchResult holds the outcome counts of a batch run.
type BatchResult struct {
	Extracted int
	Missing   int
	Failed    int
}

// Total returns the number of jobs attempted.
func (r BatchResult) Total() int {
	return r.Extracted + r.Missing + r.Failed
}

// HasFailures reports whether any job failed extraction.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Summarize counts results by status.
func Summarize(results []types.Result) BatchResult {
	var r BatchResult
	for _, res := range results {
		switch res.Status {
		case types.StatusExtracted:
			r.Extracted++
		case types.StatusMissing:
			r.Missing++
		case types.StatusFailed:
			r.Failed++
		}
	}
	return r
}

// Text reads every page of the PDF at path and returns the page texts
// joined in page order, each followed by a newline.
func Text(p provider.Provider, path string) (text string, pages int, err error) {
	doc, err := p.Open(path)
	if err != nil {
		return "", 0, &stepError{kind: types.FailureOpen, err: err}
	}
	defer func() {
		if cerr := doc.Close(); cerr != nil && err == nil {
			err = &stepError{kind: types.FailureParse, err: fmt.Errorf("closing %s: %w", path, cerr)}
		}
	}()

	var b strings.Builder
	n := doc.NumPages()
	if n < 1 {
		return "", 0, &stepError{kind: types.FailureParse, err: fmt.Errorf("parsing PDF %s: %w", path, provider.ErrNoPages)}
	}
	for i := 1; i <= n; i++ {
		pt, perr := doc.PageText(i)
		if perr != nil {
			return "", 0, &stepError{kind: types.FailureParse, err: fmt.Errorf("page %d: %w", i, perr)}
		}
		b.WriteString(pt)
		b.WriteString(pageSeparator)
	}
	return b.String(), n, nil
}

// Extract runs one job: it extracts the text of job.Input and writes it to
// job.Output, creating missing parent directories and overwriting any
// existing file. Failures are reported on w and in the returned Result,
// never propagated. The caller guarantees job.Input exists.
func Extract(p provider.Provider, job types.Job, w io.Writer) types.Result {
	res := extract(p, job)
	fmt.Fprintln(w, res.String())
	return res
}

func extract(p provider.Provider, job types.Job) types.Result {
	res := types.Result{Job: job}

	text, pages, err := Text(p, job.Input)
	if err != nil {
		return failed(res, err)
	}
	res.Pages = pages

	if err := writeText(job.Output, text); err != nil {
		return failed(res, &stepError{kind: types.FailureWrite, err: err})
	}

	res.Status = types.StatusExtracted
	res.Bytes = len(text)
	return res
}

// RunBatch processes jobs in order. A job whose input is absent is reported
// as missing and its output is left untouched; no outcome stops the batch.
func RunBatch(p provider.Provider, jobs []types.Job, w io.Writer) []types.Result {
	results := make([]types.Result, 0, len(jobs))
	for _, job := range jobs {
		if !exists(job.Input) {
			res := types.Result{Job: job, Status: types.StatusMissing}
			fmt.Fprintln(w, res.String())
			results = append(results, res)
			continue
		}
		results = append(results, Extract(p, job, w))
	}
	return results
}

func writeText(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// stepError tags an error with the step of the job that produced it.
type stepError struct {
	kind types.FailureKind
	err  error
}

func (e *stepError) Error() string { return e.err.Error() }
func (e *stepError) Unwrap() error { return e.err }

func failed(res types.Result, err error) types.Result {
	res.Status = types.StatusFailed
	res.Kind = types.FailureParse
	var se *stepError
	if errors.As(err, &se) {
		res.Kind = se.kind
		err = se.err
	}
	res.Err = err
	return res
}
