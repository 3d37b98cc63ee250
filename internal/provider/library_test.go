// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdftext/internal/pdftest"
)

func libraryProviders() []Provider {
	return []Provider{NewLedongthuc(), NewDslipak()}
}

func TestLibraryProvidersReadPagesInOrder(t *testing.T) {
	for _, p := range libraryProviders() {
		t.Run(p.Name(), func(t *testing.T) {
			require.NoError(t, p.Available())

			path := pdftest.Write(t, t.TempDir(), "doc.pdf", "Alpha page", "", "Gamma page")
			doc, err := p.Open(path)
			require.NoError(t, err)
			defer doc.Close()

			require.Equal(t, 3, doc.NumPages())

			first, err := doc.PageText(1)
			require.NoError(t, err)
			assert.Contains(t, first, "Alpha page")

			blank, err := doc.PageText(2)
			require.NoError(t, err)
			assert.Empty(t, blank)

			last, err := doc.PageText(3)
			require.NoError(t, err)
			assert.Contains(t, last, "Gamma page")
		})
	}
}

func TestLibraryProvidersRejectCorruptInput(t *testing.T) {
	for _, p := range libraryProviders() {
		t.Run(p.Name(), func(t *testing.T) {
			path := pdftest.WriteCorrupt(t, t.TempDir(), "bad.pdf")
			_, err := p.Open(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestLibraryProvidersMissingFile(t *testing.T) {
	for _, p := range libraryProviders() {
		t.Run(p.Name(), func(t *testing.T) {
			_, err := p.Open(filepath.Join(t.TempDir(), "absent.pdf"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "opening PDF")
		})
	}
}

func TestPageTextOutOfRange(t *testing.T) {
	path := pdftest.Write(t, t.TempDir(), "one.pdf", "only page")
	doc, err := NewLedongthuc().Open(path)
	require.NoError(t, err)
	defer doc.Close()

	_, err = doc.PageText(0)
	assert.Error(t, err)
	_, err = doc.PageText(2)
	assert.Error(t, err)
}

func TestPagedDocumentRecoversPanics(t *testing.T) {
	doc := &pagedDocument{
		pages: 1,
		text:  func(int) (string, error) { panic("malformed stream") },
	}
	_, err := doc.PageText(1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed stream")
	assert.NoError(t, doc.Close())
}

func TestLedongthucReadsXRefStream(t *testing.T) {
	path := pdftest.WriteWith(t, pdftest.Options{XRefStream: true}, t.TempDir(), "xref.pdf", "North page", "South page")
	doc, err := NewLedongthuc().Open(path)
	require.NoError(t, err)
	defer doc.Close()

	require.Equal(t, 2, doc.NumPages())
	for i, want := range []string{"North page", "South page"} {
		got, err := doc.PageText(i + 1)
		require.NoError(t, err)
		assert.Contains(t, got, want)
	}
}

func TestLibraryProvidersNeverOpenWithoutPages(t *testing.T) {
	path := pdftest.WriteWith(t, pdftest.Options{XRefStream: true}, t.TempDir(), "xref.pdf", "North page", "South page")
	for _, p := range libraryProviders() {
		t.Run(p.Name(), func(t *testing.T) {
			doc, err := p.Open(path)
			if err != nil {
				assert.Contains(t, err.Error(), path)
				return
			}
			defer doc.Close()
			assert.Equal(t, 2, doc.NumPages())
		})
	}
}

func TestLedongthucReadsContentsArray(t *testing.T) {
	path := pdftest.WriteWith(t, pdftest.Options{SplitContents: true}, t.TempDir(), "split.pdf",
		"Left half Right half", "", "Second page text")
	doc, err := NewLedongthuc().Open(path)
	require.NoError(t, err)
	defer doc.Close()

	require.Equal(t, 3, doc.NumPages())

	first, err := doc.PageText(1)
	require.NoError(t, err)
	assert.Contains(t, first, "Left half Right half")

	blank, err := doc.PageText(2)
	require.NoError(t, err)
	assert.Empty(t, blank)

	last, err := doc.PageText(3)
	require.NoError(t, err)
	assert.Contains(t, last, "Second page text")
}

func TestOpenPagedRejectsEmptyPageTree(t *testing.T) {
	path := pdftest.Write(t, t.TempDir(), "doc.pdf", "text")
	_, err := openPaged(path, func(*os.File, int64) (int, func(int) (string, error), error) {
		return 0, func(int) (string, error) { return "", nil }, nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoPages)
	assert.Contains(t, err.Error(), path)
}
