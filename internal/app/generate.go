package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/agbru/txt2pptx/internal/cli"
	apperrors "github.com/agbru/txt2pptx/internal/errors"
	"github.com/agbru/txt2pptx/internal/generation"
	"github.com/agbru/txt2pptx/internal/logging"
	"github.com/agbru/txt2pptx/internal/orchestration"
	"github.com/agbru/txt2pptx/internal/report"
	"github.com/agbru/txt2pptx/internal/tui"
	"github.com/agbru/txt2pptx/internal/ui"
)

// runGenerate performs one generation with the spinner presenter, or with
// no presenter at all in quiet mode.
func (a *Application) runGenerate(ctx context.Context, out io.Writer) error {
	text, err := a.readText()
	if err != nil {
		return err
	}

	var presenter orchestration.Presenter = cli.NewPresenter(out, a.labels(), a.client.DownloadURL)
	if a.Config.Quiet {
		presenter = orchestration.NullPresenter{}
	}
	orch := a.newOrchestrator(presenter, !a.Config.Quiet)

	outcome, err := orch.Run(ctx, a.Config.Request(text))
	if err != nil {
		if a.Config.Quiet && !apperrors.IsContextError(err) {
			fmt.Fprintln(a.ErrWriter, apperrors.UserMessage(err, a.labels().ErrorMessages()))
		}
		return err
	}

	deck, err := a.finish(ctx, out, outcome)
	if err != nil {
		a.printError(err)
		return err
	}
	if a.Config.Quiet {
		cli.DisplayQuietResult(out, outcome, deck.Location)
	}
	return a.writeReport([]report.Deck{deck})
}

// runInteractive loops over prompted requests until the user stops.
func (a *Application) runInteractive(ctx context.Context, out io.Writer) error {
	// A missing text source is fine here: the prompt asks for it.
	text, _ := a.readText()

	orch := a.newOrchestrator(cli.NewPresenter(out, a.labels(), a.client.DownloadURL), true)
	var decks []report.Deck
	session := cli.NewSession(orch, a.prompter, out, func(ctx context.Context, o generation.Outcome) error {
		deck, err := a.finish(ctx, out, o)
		decks = append(decks, deck)
		return err
	})

	err := session.Run(ctx, a.Config.Request(text))
	if rerr := a.writeReport(decks); rerr != nil && err == nil {
		err = rerr
	}
	return err
}

// runTUI runs the dashboard. Successful outcomes are collected while it
// runs and post-processed once the alternate screen is closed.
func (a *Application) runTUI(ctx context.Context, out io.Writer) error {
	text, err := a.readText()
	if err != nil {
		return err
	}

	var (
		mu       sync.Mutex
		outcomes []generation.Outcome
	)
	collect := orchestration.PresenterFuncs{
		Success: func(o generation.Outcome) {
			mu.Lock()
			outcomes = append(outcomes, o)
			mu.Unlock()
		},
	}
	build := func(p orchestration.Presenter) *orchestration.Orchestrator {
		return a.newOrchestrator(orchestration.MultiPresenter{p, collect}, true)
	}

	runErr := tui.Run(ctx, build, a.Config.Request(text), a.labels(), a.client.DownloadURL, Version)

	mu.Lock()
	settled := append([]generation.Outcome(nil), outcomes...)
	mu.Unlock()

	decks := make([]report.Deck, 0, len(settled))
	for _, o := range settled {
		deck, err := a.finish(ctx, out, o)
		if err != nil {
			a.printError(err)
			if runErr == nil {
				runErr = err
			}
		}
		decks = append(decks, deck)
	}
	if err := a.writeReport(decks); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// readText returns the source text from --text, --file or stdin.
func (a *Application) readText() (string, error) {
	switch {
	case a.Config.Text != "":
		return a.Config.Text, nil
	case a.Config.InputFile == "-":
		data, err := io.ReadAll(a.In)
		if err != nil {
			return "", apperrors.WrapError(err, "read standard input")
		}
		return string(data), nil
	case a.Config.InputFile != "":
		data, err := os.ReadFile(a.Config.InputFile)
		if err != nil {
			return "", apperrors.NewConfigError("cannot read %s: %v", a.Config.InputFile, err)
		}
		return string(data), nil
	}
	return "", apperrors.NewConfigError("no source text: use --text, --file or --interactive")
}

// finish turns an outcome into a report entry, downloading the deck first
// when --download is set.
func (a *Application) finish(ctx context.Context, out io.Writer, o generation.Outcome) (report.Deck, error) {
	deck := report.Deck{Outcome: o}
	if o.Filename == "" {
		return deck, nil
	}
	deck.DownloadURL = a.client.DownloadURL(o.Filename)
	if !a.Config.Download {
		return deck, nil
	}

	location, size, err := a.store(ctx, o.Filename)
	if err != nil {
		return deck, err
	}
	deck.Location = location
	if !a.Config.Quiet {
		cli.DisplayStored(out, location, size)
	}
	return deck, nil
}

// writeReport writes the HTML report when --report is set.
func (a *Application) writeReport(decks []report.Deck) error {
	if a.Config.ReportFile == "" || len(decks) == 0 {
		return nil
	}
	if err := report.WriteFile(a.Config.ReportFile, decks, a.labels()); err != nil {
		a.printError(err)
		return err
	}
	a.Logger.Info("report written", logging.String("path", a.Config.ReportFile), logging.Int("decks", len(decks)))
	return nil
}

// printError reports a failure that no presenter has shown.
func (a *Application) printError(err error) {
	fmt.Fprintf(a.ErrWriter, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
}
