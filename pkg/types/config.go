// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Backend identifies the PDF text extraction tool.
type Backend string

const (
	BackendLedongthuc Backend = "ledongthuc"
	BackendPdftotext  Backend = "pdftotext"
)

// ParseBackend validates a backend name from flags or configuration.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(s); b {
	case BackendLedongthuc, BackendPdftotext:
		return b, nil
	case "":
		return BackendLedongthuc, nil
	default:
		return "", fmt.Errorf("unknown backend %q (want %s or %s)", s, BackendLedongthuc, BackendPdftotext)
	}
}

// OutputFormat selects how an extracted document is written to stdout.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// ParseOutputFormat validates an output format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case OutputText, OutputJSON, OutputYAML:
		return f, nil
	case "":
		return OutputText, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json, or yaml)", s)
	}
}

// ExtractConfig holds settings for the extract and batch commands.
type ExtractConfig struct {
	// Input is the PDF path used when no positional argument is given.
	Input string `json:"input" yaml:"input"`

	// Backend selects the extraction tool: ledongthuc or pdftotext.
	Backend Backend `json:"backend" yaml:"backend"`

	// Format selects the stdout rendering: text, json, or yaml.
	Format OutputFormat `json:"format" yaml:"format"`

	// ContainerRuntime pins the runtime used by the pdftotext backend
	// ("docker" or "podman"). Empty means detect.
	ContainerRuntime string `json:"container_runtime,omitempty" yaml:"container_runtime,omitempty"`

	// Strict makes a single unextractable page fail the whole run instead of
	// yielding an empty page.
	Strict bool `json:"strict" yaml:"strict"`

	// Validate runs a structural validation pass before extraction.
	Validate bool `json:"validate" yaml:"validate"`

	// CacheDir enables the extraction cache when non-empty.
	CacheDir string `json:"cache_dir,omitempty" yaml:"cache_dir,omitempty"`

	// OutDir is the destination directory for batch output.
	OutDir string `json:"out_dir" yaml:"out_dir"`
}
