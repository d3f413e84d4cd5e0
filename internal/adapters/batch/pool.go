// Package batch runs independent jobs on a bounded set of workers.
package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/blackjack/pkg/logger"
	"github.com/okian/blackjack/pkg/metrics"
)

// Job statuses reported to metrics.
const (
	statusOK        = "ok"
	statusFailed    = "failed"
	statusCancelled = "cancelled"
)

// Job is one unit of work. Name identifies it in results and logs.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Result is the outcome of one Job.
type Result struct {
	Name string
	Err  error
	Took time.Duration
}

// Pool runs jobs with at most a fixed number in flight. A Pool holds no
// goroutines between calls to Run and may be reused.
type Pool struct {
	workers int
	name    string
	logger  logger.Logger
}

// NewPool creates a pool sized to the number of CPUs unless WithWorkers is given.
func NewPool(opts ...Option) *Pool {
	p := &Pool{
		workers: runtime.NumCPU(),
		name:    "batch",
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Get().Named(p.name)
	}
	return p
}

// Workers returns the concurrency limit.
func (p *Pool) Workers() int { return p.workers }

// Run executes every job and returns one Result per job in submission
// order. A failing job does not stop the others. Jobs not yet started when
// ctx is cancelled report the context error.
func (p *Pool) Run(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return results
	}

	n := p.workers
	if n > len(jobs) {
		n = len(jobs)
	}

	next := make(chan int)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		log := p.logger.Named("worker-" + strconv.Itoa(i))
		go func() {
			defer wg.Done()
			for idx := range next {
				results[idx] = p.runJob(ctx, log, jobs[idx])
			}
		}()
	}

	for idx := range jobs {
		next <- idx
	}
	close(next)
	wg.Wait()

	return results
}

func (p *Pool) runJob(ctx context.Context, log logger.Logger, job Job) (res Result) {
	res.Name = job.Name
	if err := ctx.Err(); err != nil {
		res.Err = err
		metrics.RecordJob(statusCancelled)
		return res
	}

	start := time.Now()
	metrics.AddWorkerActive(1)
	defer func() {
		metrics.AddWorkerActive(-1)
		res.Took = time.Since(start)
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("%w: %s: %v", ErrJobPanicked, job.Name, r)
		}
		switch {
		case res.Err == nil:
			metrics.RecordJob(statusOK)
			log.Debug(ctx, "job finished", logger.String("job", job.Name), logger.Duration("took", res.Took))
		case errors.Is(res.Err, context.Canceled), errors.Is(res.Err, context.DeadlineExceeded):
			metrics.RecordJob(statusCancelled)
			log.Warn(ctx, "job cancelled", logger.String("job", job.Name))
		default:
			metrics.RecordJob(statusFailed)
			log.Error(ctx, "job failed", logger.String("job", job.Name), logger.Error(res.Err))
		}
	}()

	res.Err = job.Run(ctx)
	return res
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// Join combines the errors of all failed results, or returns nil.
func Join(results []Result) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Name, r.Err))
		}
	}
	return errors.Join(errs...)
}
