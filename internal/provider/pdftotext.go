// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

const binPdftotext = "pdftotext"

// formFeed separates pages in pdftotext output.
const formFeed = "\f"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunCapture(name string, args []string, stdout io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunCapture(name string, args []string, stdout io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

var defaultExec = &osExecutor{}

// Pdftotext shells out to poppler's pdftotext binary. The whole document is
// converted once on Open and split into pages on form feeds.
type Pdftotext struct {
	bin  string
	exec executor
}

// NewPdftotext creates a provider that runs pdftotext from PATH.
func NewPdftotext() *Pdftotext {
	return newPdftotext(defaultExec)
}

func newPdftotext(exec executor) *Pdftotext {
	return &Pdftotext{bin: binPdftotext, exec: exec}
}

func (p *Pdftotext) Name() string { return NamePdftotext }

// Available reports whether the binary exists on PATH and responds to -v.
func (p *Pdftotext) Available() error {
	if _, err := p.exec.LookPath(p.bin); err != nil {
		return fmt.Errorf("%s not found on PATH: %w", p.bin, err)
	}
	if err := p.exec.RunSilent(p.bin, "-v"); err != nil {
		return fmt.Errorf("%s not operational: %w", p.bin, err)
	}
	return nil
}

// Open runs pdftotext on the PDF and captures the text from stdout. No file
// handle outlives the call.
func (p *Pdftotext) Open(path string) (Document, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}

	var out bytes.Buffer
	args := []string{"-enc", "UTF-8", path, "-"}
	if err := p.exec.RunCapture(p.bin, args, &out); err != nil {
		return nil, fmt.Errorf("running %s on %s: %w", p.bin, path, err)
	}
	return &textDocument{pages: splitPages(out.String())}, nil
}

// splitPages splits pdftotext output into pages. pdftotext terminates every
// page, including the last, with a form feed.
func splitPages(out string) []string {
	if out == "" {
		return nil
	}
	pages := strings.Split(out, formFeed)
	if pages[len(pages)-1] == "" {
		pages = pages[:len(pages)-1]
	}
	for i, pg := range pages {
		pages[i] = strings.TrimSuffix(pg, "\n")
	}
	return pages
}

// textDocument is a Document whose pages are already decoded.
type textDocument struct {
	pages []string
}

func (d *textDocument) NumPages() int { return len(d.pages) }

func (d *textDocument) PageText(n int) (string, error) {
	if n < 1 || n > len(d.pages) {
		return "", fmt.Errorf("page %d out of range [1, %d]", n, len(d.pages))
	}
	return d.pages[n-1], nil
}

func (d *textDocument) Close() error { return nil }
