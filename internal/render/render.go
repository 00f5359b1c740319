// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render writes an extracted document to an output stream in the
// selected format.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf-extract/internal/extract"
	"github.com/pdiddy/pdf-extract/pkg/types"
)

// Write renders doc to w. The text format is the labelled page layout
// followed by a single newline.
func Write(w io.Writer, doc types.Document, format types.OutputFormat) error {
	switch format {
	case types.OutputText, "":
		_, err := fmt.Fprintln(w, extract.Render(doc))
		return err
	case types.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(withPages(doc))
	case types.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(withPages(doc)); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteInfo renders a DocumentInfo. Text output is one "key: value" line
// per field.
func WriteInfo(w io.Writer, info types.DocumentInfo, format types.OutputFormat) error {
	switch format {
	case types.OutputText, "":
		fmt.Fprintf(w, "path:  %s\n", info.Path)
		fmt.Fprintf(w, "size:  %d bytes\n", info.Size)
		if info.PageCount != nil {
			fmt.Fprintf(w, "pages: %d\n", *info.PageCount)
		} else {
			fmt.Fprintln(w, "pages: unknown")
		}
		if info.Valid {
			fmt.Fprintln(w, "valid: yes")
		} else {
			fmt.Fprintf(w, "valid: no (%s)\n", info.ValidationError)
		}
		return nil
	case types.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case types.OutputYAML:
		return yaml.NewEncoder(w).Encode(info)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// withPages ensures a zero-page document encodes as an empty list rather
// than null.
func withPages(doc types.Document) types.Document {
	if doc.Pages == nil {
		doc.Pages = []types.Page{}
	}
	return doc
}
