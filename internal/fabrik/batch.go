package fabrik

import (
	"context"

	"github.com/piwi3910/GraphiDesk/internal/model"
)

// JobResult is the outcome of one job in a batch.
type JobResult struct {
	Job     model.Job
	Message string
	Err     error
}

// RunJobs runs jobs one after another, never concurrently, and reports each
// outcome through progress (which may be nil). A failed job does not stop
// the batch; cancellation of ctx does.
func (r *Runner) RunJobs(ctx context.Context, editorPath string, jobs []model.Job, progress func(done int, res JobResult)) []JobResult {
	results := make([]JobResult, 0, len(jobs))
	for i, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		res := JobResult{Job: job}
		req, err := job.Request(editorPath)
		if err != nil {
			res.Err = err
		} else {
			res.Message, res.Err = r.RunScript(ctx, req)
		}
		results = append(results, res)
		if progress != nil {
			progress(i+1, res)
		}
	}
	return results
}
