// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"fmt"
	"os"

	"github.com/dslipak/pdf"
)

// Dslipak extracts text with github.com/dslipak/pdf, a fork of the primary
// parser. It is tried when configuration puts it first or excludes the primary.
type Dslipak struct{}

// NewDslipak creates the fallback pure-Go provider.
func NewDslipak() *Dslipak { return &Dslipak{} }

func (d *Dslipak) Name() string { return NameDslipak }

func (d *Dslipak) Available() error { return nil }

// Open parses the PDF trailer and page tree. The returned document keeps the
// file open until Close.
func (d *Dslipak) Open(path string) (Document, error) {
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
			return p.GetPlainText(nil)
		}, nil
	})
}
