// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftest builds small, well-formed PDF files for tests.
package pdftest

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Options selects optional PDF structures.
type Options struct {
	// XRefStream writes a PDF 1.5 cross-reference stream instead of a
	// classic xref table and trailer.
	XRefStream bool

	// SplitContents gives every text page a /Contents array of two streams,
	// each drawing one half of the page text.
	SplitContents bool
}

// Build returns a PDF with one page per element of pages. Each non-empty
// element is drawn as a single Helvetica text run; an empty element yields a
// page with no text operators.
func Build(pages ...string) []byte {
	return BuildWith(Options{}, pages...)
}

// BuildWith is Build with optional structures enabled.
func BuildWith(opts Options, pages ...string) []byte {
	var b bytes.Buffer
	offsets := []int{0} // object 0 is the free-list head

	alloc := func() int {
		offsets = append(offsets, 0)
		return len(offsets) - 1
	}
	obj := func(num int, body string) {
		offsets[num] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", num, body)
	}
	stream := func(num int, content string) {
		obj(num, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	if opts.XRefStream {
		b.WriteString("%PDF-1.5\n")
	} else {
		b.WriteString("%PDF-1.4\n")
	}

	catalog, tree, font := alloc(), alloc(), alloc()
	pageNums := make([]int, len(pages))
	for i := range pages {
		pageNums[i] = alloc()
	}

	obj(catalog, fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", tree))
	kids := make([]string, len(pages))
	for i, n := range pageNums {
		kids[i] = fmt.Sprintf("%d 0 R", n)
	}
	obj(tree, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	obj(font, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	for i, text := range pages {
		var contents string
		switch {
		case text == "":
			n := alloc()
			stream(n, "q Q")
			contents = fmt.Sprintf("%d 0 R", n)
		case opts.SplitContents:
			half := len(text) / 2
			a, c := alloc(), alloc()
			stream(a, textRun(text[:half], 720))
			stream(c, textRun(text[half:], 700))
			contents = fmt.Sprintf("[%d 0 R %d 0 R]", a, c)
		default:
			n := alloc()
			stream(n, textRun(text, 720))
			contents = fmt.Sprintf("%d 0 R", n)
		}
		obj(pageNums[i], fmt.Sprintf(
			"<< /Type /Page /Parent %d 0 R /MediaBox [0 0 612 792] "+
				"/Resources << /Font << /F1 %d 0 R >> >> /Contents %s >>", tree, font, contents))
	}

	if opts.XRefStream {
		writeXRefStream(&b, offsets, catalog)
	} else {
		writeXRefTable(&b, offsets, catalog)
	}
	return b.Bytes()
}

func textRun(text string, y int) string {
	return fmt.Sprintf("BT /F1 12 Tf 72 %d Td (%s) Tj ET", y, escape(text))
}

func writeXRefTable(b *bytes.Buffer, offsets []int, root int) {
	xref := b.Len()
	fmt.Fprintf(b, "xref\n0 %d\n", len(offsets))
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets[1:] {
		fmt.Fprintf(b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(b, "trailer\n<< /Size %d /Root %d 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets), root, xref)
}

// writeXRefStream appends an uncompressed cross-reference stream with field
// widths [1 4 2]. The stream object lists itself.
func writeXRefStream(b *bytes.Buffer, offsets []int, root int) {
	self := len(offsets)
	xref := b.Len()
	all := append(append([]int(nil), offsets...), xref)

	var data bytes.Buffer
	for i, off := range all {
		entry := make([]byte, 7)
		if i == 0 {
			binary.BigEndian.PutUint16(entry[5:], 0xffff)
		} else {
			entry[0] = 1
			binary.BigEndian.PutUint32(entry[1:5], uint32(off))
		}
		data.Write(entry)
	}

	fmt.Fprintf(b, "%d 0 obj\n<< /Type /XRef /Size %d /W [1 4 2] /Root %d 0 R /Length %d >>\nstream\n",
		self, len(all), root, data.Len())
	b.Write(data.Bytes())
	fmt.Fprintf(b, "\nendstream\nendobj\nstartxref\n%d\n%%%%EOF\n", xref)
}

// Write builds a PDF from pages and writes it to dir/name, returning the path.
func Write(t testing.TB, dir, name string, pages ...string) string {
	t.Helper()
	return WriteWith(t, Options{}, dir, name, pages...)
}

// WriteWith is Write with optional structures enabled.
func WriteWith(t testing.TB, opts Options, dir, name string, pages ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, BuildWith(opts, pages...), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// WriteCorrupt writes bytes that no PDF parser accepts to dir/name.
func WriteCorrupt(t testing.TB, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("this is not a pdf document\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
