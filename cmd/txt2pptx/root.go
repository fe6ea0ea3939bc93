package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agbru/txt2pptx/internal/app"
	"github.com/agbru/txt2pptx/internal/config"
	apperrors "github.com/agbru/txt2pptx/internal/errors"
)

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	code := apperrors.ExitSuccess
	root := newRootCmd(stdin, stdout, stderr, &code)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return apperrors.ExitCode(err)
	}
	return code
}

// newRootCmd builds the command tree. Every command shares the flags of
// config.BindFlags; the code of the selected mode is stored in code.
func newRootCmd(stdin io.Reader, stdout, stderr io.Writer, code *int) *cobra.Command {
	cfg := config.Default()

	// build resolves the configuration and creates the application.
	build := func(cmd *cobra.Command) (*app.Application, error) {
		if err := config.Resolve(&cfg, cmd.Flags()); err != nil {
			return nil, err
		}
		return app.New(cmd.Context(), cfg, stderr, app.WithInput(stdin))
	}

	generate := func(cmd *cobra.Command, _ []string) error {
		application, err := build(cmd)
		if err != nil {
			return err
		}
		*code = application.Run(cmd.Context(), stdout)
		return nil
	}

	root := &cobra.Command{
		Use:   "txt2pptx",
		Short: "Turn plain text into a PowerPoint deck",
		Long: `txt2pptx sends text to a txt2pptx service, shows an estimated progress
while the deck is generated and prints the resulting outline.

Examples:
  txt2pptx --text "Quarterly results" --slides 8 --lang en
  txt2pptx -f notes.txt --style minimal --download -o ./decks
  cat notes.txt | txt2pptx -f - --quiet
  txt2pptx --interactive
  txt2pptx batch chapter1.txt chapter2.txt --concurrency 2 --rate 0.5`,
		Args:          cobra.NoArgs,
		RunE:          generate,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apperrors.NewConfigError("%v", err)
	})
	config.BindFlags(root.PersistentFlags(), &cfg)

	root.AddCommand(
		&cobra.Command{
			Use:   "generate",
			Short: "Generate one deck (default command)",
			Args:  cobra.NoArgs,
			RunE:  generate,
		},
		&cobra.Command{
			Use:   "batch FILE...",
			Short: "Generate one deck per input file",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				application, err := build(cmd)
				if err != nil {
					return err
				}
				*code = application.RunBatch(cmd.Context(), stdout, args)
				return nil
			},
		},
		&cobra.Command{
			Use:   "health",
			Short: "Check that the service is up",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				application, err := build(cmd)
				if err != nil {
					return err
				}
				*code = application.RunHealth(cmd.Context(), stdout)
				return nil
			},
		},
		&cobra.Command{
			Use:   "download FILENAME",
			Short: "Download a generated deck",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				application, err := build(cmd)
				if err != nil {
					return err
				}
				*code = application.RunDownload(cmd.Context(), stdout, args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Args:  cobra.NoArgs,
			Run: func(*cobra.Command, []string) {
				app.PrintVersion(stdout)
			},
		},
	)
	return root
}
