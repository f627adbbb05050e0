package runner

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/jsxmigrate/pkg/migrate"
)

// Runner orchestrates multi-file migration using a migrate.Pipeline.
type Runner struct {
	// Pipeline handles per-file processing with safety guarantees.
	Pipeline *migrate.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *migrate.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and processes them concurrently.
// Outcomes are reported in discovery order regardless of completion order.
//
// Files are independent: a failure in one file is recorded on its outcome
// and never stops the others. Cancellation stops scheduling new files; the
// partial result is returned together with the context error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		result.Stats.Duration = time.Since(start)
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	pipelineOpts := migrate.PipelineOptionsFromConfig(opts.Config)

	// Each worker owns one slot, so no locking is needed.
	outcomes := make([]*FileOutcome, len(files))

	group := new(errgroup.Group)
	group.SetLimit(jobs)

	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			outcome := FileOutcome{Path: path}
			pr, err := r.Pipeline.ProcessFile(ctx, path, opts.Config, pipelineOpts)
			if err != nil {
				outcome.Error = err
			} else {
				outcome.Result = pr
			}
			outcomes[i] = &outcome
			return nil
		})
	}
	_ = group.Wait()

	for _, outcome := range outcomes {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}
	result.Stats.Duration = time.Since(start)

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}
