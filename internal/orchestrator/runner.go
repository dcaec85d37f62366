package orchestrator

import (
	"context"

	"github.com/fenilsonani/smartcare/internal/scan"
)

// CategoryJob is one independent scan job for the bounded runner
type CategoryJob struct {
	Category scan.Category
	Run      func(ctx context.Context) (scan.CategoryJobResult, error)
}

// JobCompletion is called as each job finishes, in completion order.
// completed counts finished jobs including this one; totalBytes is the
// running byte total across all finished jobs.
type JobCompletion func(result scan.CategoryJobResult, completed, total int, totalBytes int64)

// CategoryRunner runs independent scan jobs with a fixed concurrency
// ceiling, streaming each completion to the caller as it lands.
type CategoryRunner struct {
	limit int
}

// NewCategoryRunner creates a runner with the given concurrency ceiling
func NewCategoryRunner(limit int) *CategoryRunner {
	if limit < 1 {
		limit = 1
	}
	return &CategoryRunner{limit: limit}
}

// Run executes all jobs with at most limit in flight, refilling the
// window as completions arrive. A failed job contributes a zero-size
// result and still counts toward completion. Completion order is
// non-deterministic. Returns results keyed by category; on context
// cancellation the partial map collected so far is returned with the
// context error.
func (r *CategoryRunner) Run(ctx context.Context, jobs []CategoryJob, onComplete JobCompletion) (map[scan.Category]scan.CategoryJobResult, error) {
	results := make(map[scan.Category]scan.CategoryJobResult, len(jobs))
	if len(jobs) == 0 {
		return results, nil
	}

	// Buffered so a finishing job never blocks after cancellation
	completions := make(chan scan.CategoryJobResult, len(jobs))

	launch := func(job CategoryJob) {
		go func() {
			result, err := job.Run(ctx)
			if err != nil {
				// Degrade to an empty result; the batch continues
				result = scan.CategoryJobResult{Category: job.Category}
			}
			if result.Category == "" {
				result.Category = job.Category
			}
			completions <- result
		}()
	}

	// Fill the initial window
	cursor := 0
	for cursor < len(jobs) && cursor < r.limit {
		launch(jobs[cursor])
		cursor++
	}

	var totalBytes int64
	completed := 0
	for completed < len(jobs) {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		case result := <-completions:
			completed++
			totalBytes += result.TotalBytes
			results[result.Category] = result

			if onComplete != nil {
				onComplete(result, completed, len(jobs), totalBytes)
			}

			// Refill the window
			if cursor < len(jobs) {
				launch(jobs[cursor])
				cursor++
			}
		}
	}

	return results, nil
}
