// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/pdiddy/pdf-extract/pkg/types"
)

var (
	okColor   = color.New(color.FgGreen)
	skipColor = color.New(color.FgYellow)
	failColor = color.New(color.FgRed)
)

// BatchResult holds the outcome of a batch extraction run.
type BatchResult struct {
	Extracted int
	Skipped   int
	Failed    int
}

// Total returns the total number of PDFs processed.
func (r BatchResult) Total() int {
	return r.Extracted + r.Skipped + r.Failed
}

// HasFailures reports whether any PDF failed extraction.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// OutputPath returns the text file that ExtractFile writes for pdfPath.
func OutputPath(pdfPath, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	return filepath.Join(outDir, base+".txt")
}

// ExtractFile extracts one PDF and writes the rendered text to
// outDir/<base>.txt. Existing output is left alone and reported as skipped.
func ExtractFile(ctx context.Context, src PageSource, pdfPath, outDir string, opts Options, w io.Writer) types.ExtractionStatus {
	txtPath := OutputPath(pdfPath, outDir)
	base := filepath.Base(txtPath)

	if _, err := os.Stat(txtPath); err == nil {
		skipColor.Fprintf(w, "skipped:   %s (already exists)\n", base)
		return types.ExtractionSkipped
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		failColor.Fprintf(w, "failed:    %s (%v)\n", base, err)
		return types.ExtractionFailed
	}

	doc, err := Extract(ctx, src, pdfPath, opts)
	if err != nil {
		failColor.Fprintf(w, "failed:    %s (%v)\n", base, err)
		return types.ExtractionFailed
	}

	if err := os.WriteFile(txtPath, []byte(Render(doc)+"\n"), 0o644); err != nil {
		failColor.Fprintf(w, "failed:    %s (%v)\n", base, err)
		return types.ExtractionFailed
	}

	okColor.Fprintf(w, "extracted: %s (%d pages)\n", base, doc.PageCount())
	return types.ExtractionDone
}

// ExtractBatch runs ExtractFile over every path, printing per-file status
// to w followed by a summary line. Processing stops early only when ctx is
// cancelled. A PDF whose output file was already claimed by an earlier PDF
// in the same run (same base name) fails instead of being skipped.
func ExtractBatch(ctx context.Context, src PageSource, pdfPaths []string, outDir string, opts Options, w io.Writer) BatchResult {
	var result BatchResult
	claimed := make(map[string]string) // output path -> PDF that owns it
	for _, p := range pdfPaths {
		if ctx.Err() != nil {
			break
		}

		txtPath := OutputPath(p, outDir)
		if owner, ok := claimed[txtPath]; ok {
			failColor.Fprintf(w, "failed:    %s (name collision with %s)\n", filepath.Base(txtPath), owner)
			result.Failed++
			continue
		}

		switch ExtractFile(ctx, src, p, outDir, opts, w) {
		case types.ExtractionDone:
			claimed[txtPath] = p
			result.Extracted++
		case types.ExtractionSkipped:
			claimed[txtPath] = p
			result.Skipped++
		case types.ExtractionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d skipped, %d failed (total: %d)\n",
		result.Extracted, result.Skipped, result.Failed, result.Total())
	return result
}
