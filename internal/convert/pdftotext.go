// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/pdf-extract/internal/container"
	"github.com/pdiddy/pdf-extract/internal/extract"
	"github.com/pdiddy/pdf-extract/pkg/types"
)

const imagePdftotext = "pdftotext:latest"

// pdftotextArgs reads the PDF from stdin and writes text to stdout.
var pdftotextArgs = []string{"pdftotext", "-layout", "-enc", "UTF-8", "-", "-"}

// PdftotextSource extracts text by piping the PDF through poppler's
// pdftotext inside a container. It depends on a container.Runtime (docker
// or podman) injected at construction time.
type PdftotextSource struct {
	runtime container.Runtime
}

// NewPdftotextSource verifies that the pdftotext image exists locally before
// returning.
func NewPdftotextSource(rt container.Runtime) (*PdftotextSource, error) {
	if err := rt.ImageExists(imagePdftotext); err != nil {
		return nil, fmt.Errorf("pdftotext image not available in %s: %w", rt.Name(), err)
	}
	return &PdftotextSource{runtime: rt}, nil
}

// Name implements extract.PageSource.
func (s *PdftotextSource) Name() types.Backend {
	return types.BackendPdftotext
}

// Pages runs pdftotext over the whole document and splits the result into
// pages at form feeds.
func (s *PdftotextSource) Pages(ctx context.Context, path string) ([]extract.PageText, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := s.runtime.Run(imagePdftotext, pdftotextArgs, f, &out); err != nil {
		return nil, fmt.Errorf("extracting %s with pdftotext: %w", path, err)
	}

	return splitPages(out.String()), nil
}

// splitPages breaks pdftotext output into pages. pdftotext ends every page,
// including the last, with a form feed.
func splitPages(s string) []extract.PageText {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "\f")
	if strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}

	pages := make([]extract.PageText, len(parts))
	for i, p := range parts {
		pages[i] = extract.PageText{Text: strings.TrimRight(p, "\n")}
	}
	return pages
}
