// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-extract/internal/cache"
	"github.com/pdiddy/pdf-extract/internal/convert"
	"github.com/pdiddy/pdf-extract/internal/extract"
	"github.com/pdiddy/pdf-extract/internal/inspect"
	"github.com/pdiddy/pdf-extract/internal/render"
	"github.com/pdiddy/pdf-extract/pkg/types"
)

// newSource is swapped in tests.
var newSource = convert.NewSource

func newExtractCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [pdf]",
		Short: "Print the text of every page of a PDF",
		Long: `Extract reads the PDF at the given path (or the configured input) and
writes each page's text to stdout, preceded by a "--- PAGE n ---" label.
Blocks are separated by a blank line.

A page whose text cannot be extracted is printed with an empty body unless
--strict is set, in which case the run fails.`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return a.bindFlags(cmd, map[string]string{
				"backend":   "backend",
				"format":    "format",
				"strict":    "strict",
				"validate":  "validate",
				"cache_dir": "cache-dir",
				"runtime":   "runtime",
			})
		},
		RunE: a.runExtract,
	}

	cmd.Flags().String("backend", string(types.BackendLedongthuc), "extraction backend: ledongthuc or pdftotext")
	cmd.Flags().String("format", string(types.OutputText), "output format: text, json, or yaml")
	cmd.Flags().Bool("strict", false, "fail when any page cannot be extracted")
	cmd.Flags().Bool("validate", false, "validate the PDF structure before extracting")
	cmd.Flags().String("cache-dir", "", "cache extracted pages in this directory")
	cmd.Flags().String("runtime", "", "container runtime for pdftotext: docker or podman (default: detect)")

	return cmd
}

func (a *app) runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := a.extractConfig()
	if err != nil {
		return err
	}

	path, err := a.inputPath(args)
	if err != nil {
		return err
	}

	// Nothing else is attempted for a missing file, not even backend setup.
	if err := extract.CheckExists(path); err != nil {
		return err
	}

	if cfg.Validate {
		if err := inspect.Validate(path); err != nil {
			return err
		}
	}

	src, closeSrc, err := a.openSource(cfg)
	if err != nil {
		return err
	}
	defer closeSrc()

	doc, err := extract.Extract(cmd.Context(), src, path, extract.Options{
		Strict: cfg.Strict,
		Logger: a.logger,
	})
	if err != nil {
		return err
	}

	return render.Write(cmd.OutOrStdout(), doc, cfg.Format)
}

func (a *app) extractConfig() (types.ExtractConfig, error) {
	backend, err := types.ParseBackend(a.v.GetString("backend"))
	if err != nil {
		return types.ExtractConfig{}, err
	}
	format, err := types.ParseOutputFormat(a.v.GetString("format"))
	if err != nil {
		return types.ExtractConfig{}, err
	}

	return types.ExtractConfig{
		Input:            a.v.GetString("input"),
		Backend:          backend,
		Format:           format,
		ContainerRuntime: a.v.GetString("runtime"),
		Strict:           a.v.GetBool("strict"),
		Validate:         a.v.GetBool("validate"),
		CacheDir:         a.v.GetString("cache_dir"),
		OutDir:           a.v.GetString("out_dir"),
	}, nil
}

// openSource builds the configured backend, wrapped in the cache when a
// cache directory is set. The returned func releases the cache.
func (a *app) openSource(cfg types.ExtractConfig) (extract.PageSource, func(), error) {
	src, err := newSource(cfg.Backend, cfg.ContainerRuntime)
	if err != nil {
		return nil, nil, err
	}
	if cfg.CacheDir == "" {
		return src, func() {}, nil
	}

	c, err := cache.Open(cfg.CacheDir)
	if err != nil {
		return nil, nil, err
	}
	return c.Wrap(src, a.logger), func() { c.Close() }, nil
}
