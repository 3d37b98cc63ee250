// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"errors"
	"fmt"
	"os"
)

// ErrNoPages is returned when a parser finds no pages in the page tree. A
// reader that cannot follow the tree reports zero pages instead of failing.
var ErrNoPages = errors.New("page tree has no pages")

// pagedDocument adapts a library reader to Document. The library-specific
// page decoding is captured in text; the file is owned by the document.
type pagedDocument struct {
	file  *os.File
	pages int
	text  func(n int) (string, error)
}

func (d *pagedDocument) NumPages() int { return d.pages }

func (d *pagedDocument) PageText(n int) (text string, err error) {
	if n < 1 || n > d.pages {
		return "", fmt.Errorf("page %d out of range [1, %d]", n, d.pages)
	}
	// The pure-Go parsers panic on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("decoding page %d: %v", n, r)
		}
	}()
	return d.text(n)
}

func (d *pagedDocument) Close() error {
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

// openFile opens path and returns the file with its size, which both
// pure-Go readers need to locate the trailer.
func openFile(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("stat PDF %s: %w", path, err)
	}
	return f, fi.Size(), nil
}

// pageLoader parses an opened PDF and returns its page count and a
// decoder for the text of page n.
type pageLoader func(f *os.File, size int64) (pages int, text func(n int) (string, error), err error)

// openPaged opens path and builds a document from load. The file is closed
// when load fails.
func openPaged(path string, load pageLoader) (Document, error) {
	f, size, err := openFile(path)
	if err != nil {
		return nil, err
	}

	doc := &pagedDocument{file: f}
	err = guard(path, func() error {
		var lerr error
		doc.pages, doc.text, lerr = load(f, size)
		return lerr
	})
	if err == nil && doc.pages < 1 {
		err = fmt.Errorf("parsing PDF %s: %w", path, ErrNoPages)
	}
	if err != nil {
		f.Close()
		return nil, err
	}
	return doc, nil
}

// guard converts a panic raised while building a reader into an error.
func guard(path string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parsing PDF %s: %v", path, r)
		}
	}()
	return fn()
}
