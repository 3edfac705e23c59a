// Package batch generates many independent fields concurrently.
package batch

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"heightgen/internal/heightfield"
	"heightgen/internal/terrain"
	"heightgen/internal/timing"
)

// Job is one generator run.
type Job struct {
	Algorithm terrain.Algorithm
	Size      int
	Step      float64
	Seed      int64
	Options   terrain.Options // Seed is applied on top
}

// Result pairs a job with its field and timing.
type Result struct {
	Job    Job
	Field  *heightfield.Field
	Sample timing.Sample
}

// Seeds returns count jobs cloned from base with seeds first, first+1, ...
func Seeds(base Job, first int64, count int) []Job {
	jobs := make([]Job, count)
	for i := range jobs {
		jobs[i] = base
		jobs[i].Seed = first + int64(i)
	}
	return jobs
}

// Run executes jobs on up to workers goroutines (GOMAXPROCS when workers
// < 1). Results are in job order. The first failure cancels the rest.
// rec may be nil; it must be safe for concurrent use.
func Run(ctx context.Context, jobs []Job, workers int, rec timing.Recorder) ([]Result, error) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Validate everything up front so a bad job fails before any work starts.
	gens := make([]terrain.Generator, len(jobs))
	for i, job := range jobs {
		g, err := terrain.New(job.Algorithm, job.Size, job.Step, job.Options.WithSeed(job.Seed))
		if err != nil {
			return nil, err
		}
		gens[i] = g
	}

	results := make([]Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range jobs {
		g.Go(func() error {
			job := jobs[i]
			var field *heightfield.Field
			sample, err := timing.Measure(ctx, rec, timing.Sample{
				Algorithm: string(job.Algorithm),
				Size:      job.Size,
				Seed:      job.Seed,
			}, func(ctx context.Context) error {
				var err error
				field, err = gens[i].Generate(ctx)
				return err
			})
			if err != nil {
				return err
			}
			results[i] = Result{Job: job, Field: field, Sample: sample}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
