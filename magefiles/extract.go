//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// Extract builds the CLI and runs the default extraction batch.
func Extract() error {
	mg.Deps(Build)

	bin := filepath.Join(binDir, binName)
	cmd := exec.Command(bin, "run")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s run: %w", bin, err)
	}
	return nil
}

// Providers builds the CLI and lists the available PDF text providers.
func Providers() error {
	mg.Deps(Build)

	cmd := exec.Command(filepath.Join(binDir, binName), "providers")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
