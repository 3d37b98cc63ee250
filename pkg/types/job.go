// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Job is one extraction unit: a source PDF and the text file written from it.
// Both paths are absolute once a job set has been resolved.
type Job struct {
	// Input is the path of the PDF to read.
	Input string `json:"input" yaml:"input" mapstructure:"input"`

	// Output is the path of the text file to create or overwrite.
	Output string `json:"output" yaml:"output" mapstructure:"output"`
}

// Status is the outcome of one attempted job.
type Status string

const (
	StatusExtracted Status = "extracted"
	StatusMissing   Status = "missing"
	StatusFailed    Status = "failed"
)

// FailureKind narrows a StatusFailed result to the step that failed.
type FailureKind string

const (
	FailureNone  FailureKind = ""
	FailureOpen  FailureKind = "open"
	FailureParse FailureKind = "parse"
	FailureWrite FailureKind = "write"
)

// Result records what happened to a single job.
type Result struct {
	Job    Job
	Status Status

	// Kind is set only when Status is StatusFailed.
	Kind FailureKind

	// Err carries the underlying failure for StatusFailed.
	Err error

	// Pages is the number of pages read from the input.
	Pages int

	// Bytes is the size of the text written to the output.
	Bytes int
}

// OK reports whether the job produced its output file.
func (r Result) OK() bool {
	return r.Status == StatusExtracted
}

// Message returns the failure detail, or "" for non-failed results.
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// String renders the console line for the result.
func (r Result) String() string {
	switch r.Status {
	case StatusExtracted:
		return fmt.Sprintf("Extracted text from %s to %s", r.Job.Input, r.Job.Output)
	case StatusMissing:
		return fmt.Sprintf("File not found: %s", r.Job.Input)
	default:
		return fmt.Sprintf("Error extracting %s: %v", r.Job.Input, r.Err)
	}
}
