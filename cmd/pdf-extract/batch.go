package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-extract/internal/extract"
	"github.com/pdiddy/pdf-extract/pkg/types"
)

func newBatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [pdfs...]",
		Short: "Extract several PDFs into text files",
		Long: `Batch extracts each PDF into <out-dir>/<name>.txt using the same page
layout as extract. Existing text files are skipped. A summary is printed at
the end and the command fails if any PDF could not be extracted.`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return a.bindFlags(cmd, map[string]string{
				"backend":   "backend",
				"strict":    "strict",
				"cache_dir": "cache-dir",
				"out_dir":   "out-dir",
				"runtime":   "runtime",
			})
		},
		RunE: a.runBatch,
	}

	cmd.Flags().String("backend", string(types.BackendLedongthuc), "extraction backend: ledongthuc or pdftotext")
	cmd.Flags().Bool("strict", false, "fail a PDF when any of its pages cannot be extracted")
	cmd.Flags().String("cache-dir", "", "cache extracted pages in this directory")
	cmd.Flags().String("out-dir", "text", "directory for extracted text files")
	cmd.Flags().String("runtime", "", "container runtime for pdftotext: docker or podman (default: detect)")

	return cmd
}

func (a *app) runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := a.extractConfig()
	if err != nil {
		return err
	}

	src, closeSrc, err := a.openSource(cfg)
	if err != nil {
		return err
	}
	defer closeSrc()

	opts := extract.Options{Strict: cfg.Strict, Logger: a.logger}
	result := extract.ExtractBatch(cmd.Context(), src, args, cfg.OutDir, opts, cmd.OutOrStdout())
	if err := cmd.Context().Err(); err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d PDF(s) failed extraction", result.Failed)
	}
	return nil
}
