package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-extract/internal/extract"
	"github.com/pdiddy/pdf-extract/internal/inspect"
	"github.com/pdiddy/pdf-extract/internal/render"
	"github.com/pdiddy/pdf-extract/pkg/types"
)

func newInfoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info [pdf]",
		Short: "Show page count and validation status of a PDF",
		Long: `Info reports the size, page count, and structural validity of a PDF
without extracting any text.`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return a.bindFlags(cmd, map[string]string{"format": "format"})
		},
		RunE: a.runInfo,
	}

	cmd.Flags().String("format", string(types.OutputText), "output format: text, json, or yaml")

	return cmd
}

func (a *app) runInfo(cmd *cobra.Command, args []string) error {
	format, err := types.ParseOutputFormat(a.v.GetString("format"))
	if err != nil {
		return err
	}
	path, err := a.inputPath(args)
	if err != nil {
		return err
	}
	if err := extract.CheckExists(path); err != nil {
		return err
	}

	info, err := inspect.Inspect(path)
	if err != nil {
		return err
	}
	return render.WriteInfo(cmd.OutOrStdout(), info, format)
}
