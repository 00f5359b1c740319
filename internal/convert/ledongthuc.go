// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/pdf-extract/internal/extract"
	"github.com/pdiddy/pdf-extract/pkg/types"
)

var errNullPage = errors.New("page object is missing")

// LedongthucSource extracts text with github.com/ledongthuc/pdf.
type LedongthucSource struct{}

// NewLedongthucSource creates the pure-Go backend.
func NewLedongthucSource() *LedongthucSource {
	return &LedongthucSource{}
}

// Name implements extract.PageSource.
func (s *LedongthucSource) Name() types.Backend {
	return types.BackendLedongthuc
}

// Pages opens the PDF and returns the plain text of every page. Pages the
// library cannot decode are reported individually so the caller can decide
// whether to keep going.
func (s *LedongthucSource) Pages(ctx context.Context, path string) ([]extract.PageText, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	n := r.NumPage()
	pages := make([]extract.PageText, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pages = append(pages, plainText(r, i))
	}
	return pages, nil
}

// plainText extracts one page. The library panics on some malformed
// content streams; that is converted into a page-level error.
func plainText(r *pdf.Reader, num int) (pt extract.PageText) {
	defer func() {
		if rec := recover(); rec != nil {
			pt = extract.PageText{Err: fmt.Errorf("page %d: %v", num, rec)}
		}
	}()

	p := r.Page(num)
	if p.V.IsNull() {
		return extract.PageText{Err: errNullPage}
	}

	text, err := p.GetPlainText(nil)
	if err != nil {
		return extract.PageText{Err: err}
	}
	// GetPlainText emits a newline at every BT operator, so text that
	// starts a page arrives with newlines in front of it.
	return extract.PageText{Text: strings.TrimLeft(text, "\n")}
}
