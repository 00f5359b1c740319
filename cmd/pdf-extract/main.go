// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf-extract CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/pdf-extract/internal/extract"
	"github.com/pdiddy/pdf-extract/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// exitMissingFile is the process status when the input PDF does not exist.
const exitMissingFile = 2

var errorColor = color.New(color.FgRed, color.Bold)

// app carries per-invocation state shared by subcommands.
type app struct {
	v      *viper.Viper
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "pdf-extract",
		Short: "Extract page-labelled text from PDF documents",
		Long: `pdf-extract opens a PDF, extracts the text of every page in order, and
prints it with a "--- PAGE n ---" label before each page. Pages with no
extractable text are kept with an empty body.

The input path is given as an argument or through the "input" key of
pdf-extract.yaml (or PDF_EXTRACT_INPUT). A missing input file exits with
status 2.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfgFile, _ := cmd.Flags().GetString("config")
			if err := a.initConfig(cfgFile); err != nil {
				return err
			}
			logger, err := logging.NewWithWriter(a.v.GetString("log_level"), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a.logger = logger
			if used := a.v.ConfigFileUsed(); used != "" {
				logger.Info("using config file", zap.String("path", used))
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().String("config", "", "config file (default: ./pdf-extract.yaml or ~/.config/pdf-extract/pdf-extract.yaml)")
	root.PersistentFlags().String("log-level", logging.DefaultLevel, "log level: debug, info, warn, or error")
	_ = a.v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(
		newExtractCmd(a),
		newBatchCmd(a),
		newInfoCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) initConfig(cfgFile string) error {
	if cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
	} else {
		a.v.SetConfigName("pdf-extract")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			a.v.AddConfigPath(filepath.Join(home, ".config", "pdf-extract"))
		}
	}

	a.v.SetEnvPrefix("PDF_EXTRACT")
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// bindFlags maps command flags onto config keys. It runs when the command
// executes so that commands sharing a key each bind their own flag.
func (a *app) bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for key, flag := range keys {
		if err := a.v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	return nil
}

// inputPath picks the positional argument, falling back to the input key.
func (a *app) inputPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if p := a.v.GetString("input"); p != "" {
		return p, nil
	}
	return "", errors.New("provide a PDF path as an argument or set input in the config file")
}

// execute runs the CLI and maps the outcome to a process exit status.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case extract.IsMissingFile(err):
		errorColor.Fprintf(stdout, "ERROR: %v\n", err)
		return exitMissingFile
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
