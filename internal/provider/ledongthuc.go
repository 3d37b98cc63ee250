// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Ledongthuc extracts text with github.com/ledongthuc/pdf. It is compiled
// into the binary and therefore always available.
type Ledongthuc struct{}

// NewLedongthuc creates the primary pure-Go provider.
func NewLedongthuc() *Ledongthuc { return &Ledongthuc{} }

func (l *Ledongthuc) Name() string { return NameLedongthuc }

func (l *Ledongthuc) Available() error { return nil }

// Open parses the PDF trailer and page tree. The returned document keeps the
// file open until Close.
func (l *Ledongthuc) Open(path string) (Document, error) {
	return openPaged(path, func(f *os.File, size int64) (int, func(int) (string, error), error) {
		r, err := pdf.NewReader(f, size)
		if err != nil {
			return 0, nil, fmt.Errorf("parsing PDF %s: %w", path, err)
		}
		return r.NumPage(), func(n int) (string, error) {
			p := r.Page(n)
			if p.V.IsNull() {
				return "", nil
			}
			// GetPlainText only reads a single content stream.
			if contents := p.V.Key("Contents"); contents.Kind() == pdf.Array {
				return contentsText(p, contents), nil
			}
			return p.GetPlainText(nil)
		}, nil
	})
}

// contentsText decodes a page whose /Contents is an array of streams. The
// streams form one logical content stream, so the font selected in one
// stream stays in effect for the next.
func contentsText(p pdf.Page, contents pdf.Value) string {
	fonts := make(map[string]pdf.Font)
	for _, name := range p.Fonts() {
		fonts[name] = p.Font(name)
	}

	var b strings.Builder
	var enc pdf.TextEncoding
	show := func(raw string) {
		if enc == nil {
			b.WriteString(raw)
			return
		}
		b.WriteString(enc.Decode(raw))
	}

	for i := 0; i < contents.Len(); i++ {
		pdf.Interpret(contents.Index(i), func(stk *pdf.Stack, op string) {
			n := stk.Len()
			args := make([]pdf.Value, n)
			for j := n - 1; j >= 0; j-- {
				args[j] = stk.Pop()
			}

			switch op {
			case "T*":
				b.WriteString("\n")
			case "Tf":
				if n != 2 {
					return
				}
				if font, ok := fonts[args[0].Name()]; ok {
					enc = font.Encoder()
				} else {
					enc = nil
				}
			case "Tj", "'":
				if n >= 1 {
					show(args[n-1].RawString())
				}
			case "\"":
				if n == 3 {
					show(args[2].RawString())
				}
			case "TJ":
				if n != 1 {
					return
				}
				for k := 0; k < args[0].Len(); k++ {
					if x := args[0].Index(k); x.Kind() == pdf.String {
						show(x.RawString())
					}
				}
			}
		})
	}
	return b.String()
}
