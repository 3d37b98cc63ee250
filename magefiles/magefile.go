//go:build mage

// Package main contains Mage build targets for pdftext developer tooling.
package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// projectDirs lists the directories a batch run reads from and writes to.
var projectDirs = []string{
	"docs",
	"public/resume",
	".pdftext",
}

// Init creates the directory structure the default job list expects.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "pdftext"
	cmdPkg  = "./cmd/pdftext"
)

// Build compiles the CLI binary into bin/. The default jobs are anchored at
// the parent of the binary's directory, which is the repository root.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	cmd := exec.Command("go", "build", "-o", out, cmdPkg)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// outputDir holds the text files written by the default jobs.
const outputDir = "docs"

// Stats prints line and word counts for every extracted text file under docs/.
func Stats() error {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No extracted files yet; run mage extract.")
			return nil
		}
		return fmt.Errorf("reading %s: %w", outputDir, err)
	}

	var files, lines, words int
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		path := filepath.Join(outputDir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		l := bytes.Count(data, []byte("\n"))
		w := len(bytes.Fields(data))
		fmt.Printf("  %-40s %6d lines %8d words\n", e.Name(), l, w)
		files++
		lines += l
		words += w
	}
	fmt.Printf("Extracted files: %d, lines: %d, words: %d\n", files, lines, words)
	return nil
}
