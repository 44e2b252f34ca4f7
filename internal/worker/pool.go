package worker

import (
	"context"
	"sync"
	"time"

	"github.com/mvales/lingolog/internal/logger"
)

// Job is a unit of background work.
type Job interface {
	Run(context.Context) error
	Name() string
}

// Pool runs jobs on a fixed set of workers behind a bounded queue. It
// backs the best-effort attempt persistence path: submission never
// blocks, and a full queue drops the job rather than stalling a session
// transition.
type Pool struct {
	jobs    chan Job
	wg      sync.WaitGroup
	workers int
	cancel  context.CancelFunc
	log     *logger.Logger
}

func NewPool(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	log := logger.Default().WithPrefix("worker-pool")
	log.Debug("creating worker pool with %d workers and queue size %d", workers, queueSize)
	return &Pool{
		jobs:    make(chan Job, queueSize),
		workers: workers,
		log:     log,
	}
}

func (p *Pool) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.log.Info("starting worker pool with %d workers", p.workers)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run(ctx, i+1)
	}
}

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	log := p.log.WithField("worker_id", id)
	log.Debug("worker started")

	for job := range p.jobs {
		jobLog := log.WithField("job", job.Name())
		start := time.Now()

		jobCtx := logger.NewContext(ctx, jobLog)
		if err := job.Run(jobCtx); err != nil {
			jobLog.Error("job failed after %v: %v", time.Since(start), err)
		} else {
			jobLog.Debug("job completed in %v", time.Since(start))
		}
	}
	log.Debug("worker shutting down")
}

// Stop drains the queue and waits for in-flight jobs to finish.
func (p *Pool) Stop() {
	p.log.Info("stopping worker pool")
	close(p.jobs)
	p.wg.Wait()
	if p.cancel != nil {
		p.cancel()
	}
	p.log.Info("worker pool stopped")
}

// TrySubmit enqueues the job without blocking. Returns false when the
// queue is full; the caller decides whether losing the job matters.
func (p *Pool) TrySubmit(job Job) bool {
	select {
	case p.jobs <- job:
		return true
	default:
		p.log.Warn("queue full, dropping job: %s", job.Name())
		return false
	}
}

// Pending returns the current number of queued jobs.
func (p *Pool) Pending() int {
	return len(p.jobs)
}
