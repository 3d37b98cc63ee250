// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider abstracts the PDF text-extraction capability. A provider
// opens a document by path and exposes its pages in order; the CLI resolves
// one provider at startup from a configured preference list.
package provider

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Provider names for the built-in implementations.
const (
	NameLedongthuc = "ledongthuc"
	NameDslipak    = "dslipak"
	NamePdftotext  = "pdftotext"
)

// DefaultOrder is the resolution order used when none is configured.
var DefaultOrder = []string{NameLedongthuc, NameDslipak, NamePdftotext}

// InstallHint is printed when no provider can be resolved.
const InstallHint = "Please install a PDF text provider: build with github.com/ledongthuc/pdf " +
	"or github.com/dslipak/pdf, or install poppler-utils for pdftotext"

// ErrNoProvider is matched by errors.Is for every UnavailableError.
var ErrNoProvider = errors.New("no PDF text provider available")

// Document is an opened PDF. Pages are numbered from 1.
type Document interface {
	// NumPages returns the number of pages in the document.
	NumPages() int

	// PageText returns the plain text of page n. A page with no text
	// layer yields "" and no error.
	PageText(n int) (string, error)

	// Close releases the underlying file.
	Close() error
}

// Provider opens PDF documents for text extraction.
type Provider interface {
	// Name returns the registry name of the provider.
	Name() string

	// Available returns nil when the provider can be used in this process.
	Available() error

	// Open opens the PDF at path.
	Open(path string) (Document, error)
}

// UnavailableError reports that no provider in the requested order could be used.
type UnavailableError struct {
	// Tried lists provider names in the order they were attempted.
	Tried []string

	// Reasons maps a provider name to why it was rejected.
	Reasons map[string]error
}

func (e *UnavailableError) Error() string {
	if len(e.Tried) == 0 {
		return ErrNoProvider.Error() + ": no providers requested"
	}
	parts := make([]string, 0, len(e.Tried))
	for _, name := range e.Tried {
		if reason, ok := e.Reasons[name]; ok && reason != nil {
			parts = append(parts, fmt.Sprintf("%s (%v)", name, reason))
		} else {
			parts = append(parts, name)
		}
	}
	return fmt.Sprintf("%s: tried %s", ErrNoProvider.Error(), strings.Join(parts, ", "))
}

func (e *UnavailableError) Is(target error) bool {
	return target == ErrNoProvider
}

// Hint returns installation guidance for the user.
func (e *UnavailableError) Hint() string {
	return InstallHint
}

// Registry holds the providers known to the process, keyed by name.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry creates a registry containing the given providers.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

// DefaultRegistry returns a registry with every built-in provider.
func DefaultRegistry() *Registry {
	return NewRegistry(NewLedongthuc(), NewDslipak(), NewPdftotext())
}

// Register adds p, replacing any provider with the same name.
func (r *Registry) Register(p Provider) {
	r.providers[p.Name()] = p
}

// Names returns the registered provider names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the provider registered under name.
func (r *Registry) Lookup(name string) (Provider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// Resolve returns the first provider in order that is registered and
// available. An empty order falls back to DefaultOrder. When nothing can be
// used it returns an *UnavailableError.
func (r *Registry) Resolve(order []string) (Provider, error) {
	if len(order) == 0 {
		order = DefaultOrder
	}

	unavailable := &UnavailableError{Reasons: make(map[string]error)}
	for _, name := range order {
		name = strings.TrimSpace(strings.ToLower(name))
		unavailable.Tried = append(unavailable.Tried, name)

		p, ok := r.providers[name]
		if !ok {
			unavailable.Reasons[name] = errors.New("unknown provider")
			continue
		}
		if err := p.Available(); err != nil {
			unavailable.Reasons[name] = err
			continue
		}
		return p, nil
	}
	return nil, unavailable
}
