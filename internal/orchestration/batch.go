package orchestration

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	apperrors "github.com/agbru/txt2pptx/internal/errors"
	"github.com/agbru/txt2pptx/internal/generation"
)

// DefaultBatchConcurrency bounds concurrent generations when BatchOptions
// leaves Concurrency unset.
const DefaultBatchConcurrency = 2

// Job is one entry of a batch.
type Job struct {
	// Name identifies the job in reports, typically the source file name.
	Name    string
	Request generation.Request
}

// JobResult is the settled result of a Job.
type JobResult struct {
	Job      Job
	Outcome  generation.Outcome
	Err      error
	Duration time.Duration
}

// BatchOptions configures RunBatch.
type BatchOptions struct {
	// Concurrency is the maximum number of jobs in flight.
	Concurrency int
	// Rate limits how often a job may start. Zero means unlimited.
	Rate rate.Limit
	// Burst is the limiter burst; it defaults to 1.
	Burst int
}

// Factory builds the orchestrator for one job, typically wiring a
// presenter dedicated to that job.
type Factory func(job Job) *Orchestrator

// RunBatch runs every job on its own orchestrator, at most
// opts.Concurrency at a time. Job failures are recorded in the results and
// do not stop the batch; only cancellation of ctx does. Results are
// returned in job order.
func RunBatch(ctx context.Context, jobs []Job, factory Factory, opts BatchOptions) ([]JobResult, error) {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}
	var limiter *rate.Limiter
	if opts.Rate > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(opts.Rate, burst)
	}

	results := make([]JobResult, len(jobs))
	for i, job := range jobs {
		results[i].Job = job
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, job := range jobs {
		if limiter != nil {
			if err := limiter.Wait(gctx); err != nil {
				markCanceled(results[i:], err)
				break
			}
		}
		if gctx.Err() != nil {
			markCanceled(results[i:], gctx.Err())
			break
		}
		g.Go(func() error {
			start := time.Now()
			outcome, err := factory(job).Run(gctx, job.Request)
			results[i] = JobResult{Job: job, Outcome: outcome, Err: err, Duration: time.Since(start)}
			if apperrors.IsContextError(err) && ctx.Err() != nil {
				return ctx.Err()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

func markCanceled(results []JobResult, err error) {
	for i := range results {
		if results[i].Err == nil {
			results[i].Err = err
		}
	}
}
