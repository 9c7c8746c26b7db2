// Package background runs short jobs outside the request that triggered them.
package background

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"landing-builder-backend/internal/metrics"
	"landing-builder-backend/pkg/logger"
)

var (
	ErrPoolNotStarted = errors.New("worker pool not started")
	ErrQueueFull      = errors.New("worker pool queue is full")
	ErrJobPending     = errors.New("job with this key is already queued")
)

// Job is a unit of background work. Name labels metrics and logs; Key, when
// set, coalesces submissions: a job is dropped while another with the same
// key waits in the queue.
type Job struct {
	Name    string
	Key     string
	Run     func(ctx context.Context) error
	Timeout time.Duration
	Retries int
	Backoff time.Duration
}

// Pool executes jobs on a fixed set of workers. With one worker jobs run in
// submission order.
type Pool struct {
	workers int
	queue   chan Job

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	pending map[string]struct{}

	wg sync.WaitGroup
}

func NewPool(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Pool{
		workers: workers,
		queue:   make(chan Job, queueSize),
		pending: make(map[string]struct{}),
	}
}

func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}

	p.ctx, p.cancel = context.WithCancel(ctx)
	p.started = true
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// Submit queues job without blocking.
func (p *Pool) Submit(job Job) error {
	if job.Name == "" {
		return errors.New("job name is required")
	}
	if job.Run == nil {
		return errors.New("job runner is required")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started || p.ctx.Err() != nil {
		return ErrPoolNotStarted
	}
	if job.Key != "" {
		if _, queued := p.pending[job.Key]; queued {
			return ErrJobPending
		}
	}

	select {
	case p.queue <- job:
	default:
		return ErrQueueFull
	}
	if job.Key != "" {
		p.pending[job.Key] = struct{}{}
	}
	return nil
}

// Shutdown stops the workers and waits for running jobs. Queued jobs are
// discarded.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return nil
	}
	p.cancel()
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job := <-p.queue:
			p.release(job)
			p.execute(job)
		}
	}
}

// release lets a new job with the same key be queued once this one starts,
// so changes made while it runs are picked up by the next run.
func (p *Pool) release(job Job) {
	if job.Key == "" {
		return
	}
	p.mu.Lock()
	delete(p.pending, job.Key)
	p.mu.Unlock()
}

func (p *Pool) execute(job Job) {
	fields := map[string]interface{}{"job": job.Name}
	if job.Key != "" {
		fields["key"] = job.Key
	}

	for attempt := 1; ; attempt++ {
		err := p.runOnce(job)
		if err == nil {
			logger.Debug("Background job completed", fields)
			return
		}
		fields["attempt"] = attempt
		if errors.Is(err, context.Canceled) || p.ctx.Err() != nil {
			logger.Warn("Background job canceled", fields)
			return
		}
		if attempt > job.Retries {
			logger.Error(err, "Background job failed", fields)
			return
		}
		if !p.sleep(job.Backoff) {
			return
		}
	}
}

func (p *Pool) runOnce(job Job) (err error) {
	start := time.Now()
	ctx := p.ctx
	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		status := metrics.JobSuccess
		switch {
		case errors.Is(err, context.Canceled):
			status = metrics.JobCanceled
		case err != nil:
			status = metrics.JobFailure
		}
		metrics.ObserveJob(job.Name, status, time.Since(start))
	}()

	return job.Run(ctx)
}

func (p *Pool) sleep(d time.Duration) bool {
	if d <= 0 {
		return p.ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-p.ctx.Done():
		return false
	}
}
