// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins  map[string]bool // binary -> whether LookPath succeeds
	runnableCmds   map[string]bool // "bin arg1 arg2" -> whether RunSilent succeeds
	runCaptureFunc func(name string, args []string, stdout io.Writer) error
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunSilent(name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	if m.runnableCmds[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (m *mockExecutor) RunCapture(name string, args []string, stdout io.Writer) error {
	if m.runCaptureFunc != nil {
		return m.runCaptureFunc(name, args, stdout)
	}
	return nil
}

func TestPdftotextAvailable(t *testing.T) {
	tests := []struct {
		name    string
		exec    *mockExecutor
		wantErr string
	}{
		{
			name: "binary present and operational",
			exec: &mockExecutor{
				availableBins: map[string]bool{"pdftotext": true},
				runnableCmds:  map[string]bool{"pdftotext -v": true},
			},
		},
		{
			name:    "binary missing",
			exec:    &mockExecutor{},
			wantErr: "not found on PATH",
		},
		{
			name: "binary present but broken",
			exec: &mockExecutor{
				availableBins: map[string]bool{"pdftotext": true},
			},
			wantErr: "not operational",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newPdftotext(tt.exec).Available()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got error %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestPdftotextOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 fake"), 0o644); err != nil {
		t.Fatal(err)
	}

	exec := &mockExecutor{
		runCaptureFunc: func(name string, args []string, stdout io.Writer) error {
			if name != "pdftotext" {
				return errors.New("expected pdftotext binary")
			}
			if len(args) != 4 || args[2] != path || args[3] != "-" {
				return errors.New("unexpected arguments: " + strings.Join(args, " "))
			}
			_, _ = io.WriteString(stdout, "first\n\f\fthird\n\f")
			return nil
		},
	}

	doc, err := newPdftotext(exec).Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer doc.Close()

	want := []string{"first", "", "third"}
	if doc.NumPages() != len(want) {
		t.Fatalf("NumPages = %d, want %d", doc.NumPages(), len(want))
	}
	for i, w := range want {
		got, err := doc.PageText(i + 1)
		if err != nil {
			t.Fatalf("page %d: %v", i+1, err)
		}
		if got != w {
			t.Errorf("page %d = %q, want %q", i+1, got, w)
		}
	}
}

func TestPdftotextOpenFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}
	exec := &mockExecutor{
		runCaptureFunc: func(string, []string, io.Writer) error {
			return errors.New("Syntax Error: Couldn't find trailer dictionary")
		},
	}
	_, err := newPdftotext(exec).Open(path)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error should mention input path, got: %v", err)
	}
}

func TestSplitPages(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty output", in: "", want: nil},
		{name: "single page", in: "hello\n\f", want: []string{"hello"}},
		{name: "no trailing form feed", in: "a\fb", want: []string{"a", "b"}},
		{name: "blank middle page", in: "a\f\fc\f", want: []string{"a", "", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitPages(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d pages %q, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("page %d = %q, want %q", i+1, got[i], tt.want[i])
				}
			}
		})
	}
}
