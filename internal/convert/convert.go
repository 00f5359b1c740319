// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert provides the PDF text backends behind extract.PageSource.
// The ledongthuc backend is pure Go and always available; the pdftotext
// backend runs poppler inside a container and is probed at construction.
package convert

import (
	"fmt"

	"github.com/pdiddy/pdf-extract/internal/container"
	"github.com/pdiddy/pdf-extract/internal/extract"
	"github.com/pdiddy/pdf-extract/pkg/types"
)

// detectRuntime is swapped in tests.
var detectRuntime = container.DetectRuntime

// NewSource returns the PageSource for backend. Backends that depend on
// external tooling are checked once here; if the tooling is missing the
// error is returned and no extraction is attempted. runtime pins the
// container runtime for the pdftotext backend; empty means detect.
func NewSource(backend types.Backend, runtime string) (extract.PageSource, error) {
	switch backend {
	case types.BackendLedongthuc, "":
		return NewLedongthucSource(), nil
	case types.BackendPdftotext:
		rt, err := detectRuntime(runtime)
		if err != nil {
			return nil, fmt.Errorf("%s backend: %w", backend, err)
		}
		src, err := NewPdftotextSource(rt)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}
