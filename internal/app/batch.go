package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/time/rate"

	"github.com/agbru/txt2pptx/internal/cli"
	apperrors "github.com/agbru/txt2pptx/internal/errors"
	"github.com/agbru/txt2pptx/internal/logging"
	"github.com/agbru/txt2pptx/internal/orchestration"
	"github.com/agbru/txt2pptx/internal/report"
)

// RunBatch generates one deck per input file, with bounded concurrency.
func (a *Application) RunBatch(ctx context.Context, out io.Writer, paths []string) int {
	ctx, stop := a.lifecycle(ctx)
	defer stop()
	defer a.flushMetrics()
	return a.exit(a.runBatch(ctx, out, paths))
}

func (a *Application) runBatch(ctx context.Context, out io.Writer, paths []string) error {
	jobs, err := a.loadJobs(paths)
	if err != nil {
		return err
	}
	if !a.Config.Quiet {
		fmt.Fprintf(out, "Generating %d decks (%d at a time)...\n", len(jobs), a.Config.Concurrency)
	}

	factory := func(orchestration.Job) *orchestration.Orchestrator {
		return a.newOrchestrator(orchestration.NullPresenter{}, false)
	}
	results, err := orchestration.RunBatch(ctx, jobs, factory, orchestration.BatchOptions{
		Concurrency: a.Config.Concurrency,
		Rate:        rate.Limit(a.Config.RatePerSec),
	})
	if err != nil {
		return err
	}

	var (
		failed int
		decks  []report.Deck
	)
	for _, res := range results {
		if res.Err != nil {
			failed++
			a.Logger.Debug("batch job failed", logging.String("job", res.Job.Name), logging.Err(res.Err))
			if a.Config.Quiet {
				fmt.Fprintf(a.ErrWriter, "%s: %s\n", res.Job.Name, apperrors.UserMessage(res.Err, a.labels().ErrorMessages()))
			}
			continue
		}
		deck, err := a.finish(ctx, out, res.Outcome)
		if err != nil {
			a.printError(err)
			failed++
		}
		decks = append(decks, deck)
		if a.Config.Quiet {
			cli.DisplayQuietResult(out, res.Outcome, deck.Location)
		}
	}
	if !a.Config.Quiet {
		cli.DisplayBatchSummary(out, results, a.labels())
	}
	a.Logger.Info("batch finished",
		logging.Int("jobs", len(jobs)),
		logging.Int("failed", failed),
		logging.Float64("rate", a.Config.RatePerSec),
	)
	if err := a.writeReport(decks); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d generations failed", failed, len(jobs))
	}
	return nil
}

// loadJobs reads every input file into a job named after the file.
func (a *Application) loadJobs(paths []string) ([]orchestration.Job, error) {
	if len(paths) == 0 {
		return nil, apperrors.NewConfigError("batch needs at least one input file")
	}
	jobs := make([]orchestration.Job, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, apperrors.NewConfigError("cannot read %s: %v", path, err)
		}
		jobs = append(jobs, orchestration.Job{
			Name:    filepath.Base(path),
			Request: a.Config.Request(string(data)),
		})
	}
	return jobs, nil
}
