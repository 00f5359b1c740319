// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inspect reports PDF structure (page count, validity) without
// extracting text. It backs the info command and the --validate preflight.
package inspect

import (
	"errors"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/pdf-extract/pkg/types"
)

func init() {
	// Keep pdfcpu from creating ~/.config/pdfcpu on first use.
	api.DisableConfigDir()
}

// ErrInvalid wraps validation failures reported by Validate.
var ErrInvalid = errors.New("invalid PDF")

func configuration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Validate checks the structure of the PDF at path.
func Validate(path string) error {
	if err := api.ValidateFile(path, configuration()); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	return nil
}

// Inspect gathers size, page count, and validation status for the PDF at
// path. A file that fails validation is not an error; it is reported in
// the returned DocumentInfo, and its pages are still counted when
// possible. An unreadable file is an error.
func Inspect(path string) (types.DocumentInfo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return types.DocumentInfo{}, fmt.Errorf("checking %s: %w", path, err)
	}

	info := types.DocumentInfo{
		Path: path,
		Size: fi.Size(),
	}

	if err := Validate(path); err != nil {
		info.ValidationError = err.Error()
	} else {
		info.Valid = true
	}

	n, err := api.PageCountFile(path)
	switch {
	case err == nil:
		info.PageCount = &n
	case info.Valid:
		return info, fmt.Errorf("counting pages in %s: %w", path, err)
	}

	return info, nil
}
