// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns a PDF into an ordered list of labelled page texts.
// The PDF parsing itself is delegated to a PageSource so that backends can
// be swapped without touching page numbering or output layout.
package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/pdf-extract/pkg/types"
)

// pageHeader labels each page block. The page number is 1-based.
const pageHeader = "--- PAGE %d ---"

// blockSeparator sits between consecutive page blocks.
const blockSeparator = "\n\n"

// PageText is the raw result of extracting a single page. Err is set when
// the backend could not extract that page; Text is then ignored.
type PageText struct {
	Text string
	Err  error
}

// PageSource opens a PDF and yields its pages in document order. An error
// return means the document as a whole could not be read; failures limited
// to one page are reported through PageText.Err.
type PageSource interface {
	// Name identifies the backend (e.g. "ledongthuc").
	Name() types.Backend

	// Pages returns one entry per page, in document order.
	Pages(ctx context.Context, path string) ([]PageText, error)
}

// MissingFileError reports that the input PDF does not exist.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("PDF not found at %s", e.Path)
}

// IsMissingFile reports whether err (or anything it wraps) is a
// MissingFileError.
func IsMissingFile(err error) bool {
	var mfe *MissingFileError
	return errors.As(err, &mfe)
}

// CheckExists returns *MissingFileError when path does not exist.
func CheckExists(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &MissingFileError{Path: path}
		}
		return fmt.Errorf("checking %s: %w", path, err)
	}
	return nil
}

// Options control per-run extraction behaviour.
type Options struct {
	// Strict turns a per-page extraction failure into a run failure.
	// By default such pages are kept with empty text.
	Strict bool

	// Logger receives per-page diagnostics. A nil Logger discards them.
	Logger *zap.Logger
}

// Extract reads the PDF at path through src and returns one Page per
// document page, numbered from 1. The existence check happens before the
// backend is touched: a missing file yields *MissingFileError and nothing
// else is attempted.
func Extract(ctx context.Context, src PageSource, path string, opts Options) (types.Document, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := CheckExists(path); err != nil {
		return types.Document{}, err
	}

	raw, err := src.Pages(ctx, path)
	if err != nil {
		return types.Document{}, fmt.Errorf("reading %s with %s: %w", path, src.Name(), err)
	}

	doc := types.Document{
		Path:    path,
		Backend: src.Name(),
		Pages:   make([]types.Page, 0, len(raw)),
	}

	for i, pt := range raw {
		if err := ctx.Err(); err != nil {
			return types.Document{}, err
		}

		num := i + 1
		text := pt.Text
		if pt.Err != nil {
			if opts.Strict {
				return types.Document{}, fmt.Errorf("extracting page %d of %s: %w", num, path, pt.Err)
			}
			logger.Warn("page text unavailable, using empty text",
				zap.String("file", path),
				zap.Int("page", num),
				zap.Error(pt.Err))
			text = ""
		} else if text == "" {
			logger.Debug("page has no extractable text",
				zap.String("file", path),
				zap.Int("page", num))
		}

		doc.Pages = append(doc.Pages, types.Page{Number: num, Text: text})
	}

	logger.Info("extracted document",
		zap.String("file", path),
		zap.String("backend", string(doc.Backend)),
		zap.Int("pages", doc.PageCount()))

	return doc, nil
}

// Render lays out the document as labelled page blocks joined by a blank
// line. The result has no trailing newline.
func Render(doc types.Document) string {
	blocks := make([]string, len(doc.Pages))
	for i, p := range doc.Pages {
		blocks[i] = fmt.Sprintf(pageHeader, p.Number) + "\n" + p.Text
	}
	return strings.Join(blocks, blockSeparator)
}
