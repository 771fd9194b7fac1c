package match

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-matcher/internal/types"
)

// MatchJobs scores one resume against many jobs with bounded parallelism.
// Failures are isolated per job: a job that cannot be scored is logged and
// skipped, and the rest of the batch still completes. Results keep the
// input order.
func (e *Engine) MatchJobs(ctx context.Context, resume *types.ResumeRecord, jobs []*types.JobPosting) ([]*types.MatchResult, error) {
	if resume == nil {
		return nil, ErrEmptyResume
	}

	results := make([]*types.MatchResult, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if job == nil {
				return nil
			}
			result, err := e.ComputeMatch(gctx, resume, job)
			if err != nil {
				e.logger.Warn("skipping job in batch match",
					zap.String("job_id", job.ID.String()),
					zap.Error(err))
				return nil
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*types.MatchResult, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, r)
		}
	}
	return out, nil
}
