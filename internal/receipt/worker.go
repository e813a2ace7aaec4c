package receipt

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

var (
	ErrQueueFull   = errors.New("receipt queue full")
	ErrPoolStopped = errors.New("receipt pool stopped")
)

type Job struct {
	ExtraID string
}

type ProcessFunc func(ctx context.Context, job Job) error

type Worker struct {
	ID         int
	WorkerPool chan chan Job
	JobChannel chan Job
	Logger     *slog.Logger
}

func NewWorker(id int, workerPool chan chan Job, logger *slog.Logger) *Worker {
	return &Worker{
		ID:         id,
		WorkerPool: workerPool,
		JobChannel: make(chan Job),
		Logger:     logger,
	}
}

// Start registers the worker as idle, runs the job it is handed and
// repeats until the dispatcher closes its channel.
func (w *Worker) Start(ctx context.Context, wg *sync.WaitGroup, process ProcessFunc) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			w.WorkerPool <- w.JobChannel

			job, ok := <-w.JobChannel
			if !ok {
				w.Logger.Debug("receipt worker shutting down", "worker_id", w.ID)
				return
			}
			w.Logger.Debug("receipt worker processing job", "worker_id", w.ID, "extra_id", job.ExtraID)
			if err := process(ctx, job); err != nil {
				w.Logger.Error("receipt job failed", "worker_id", w.ID, "extra_id", job.ExtraID, "error", err)
			}
		}
	}()
}

// Pool is a fixed set of workers fed by a bounded queue.
type Pool struct {
	logger     *slog.Logger
	process    ProcessFunc
	jobQueue   chan Job
	workerPool chan chan Job
	maxWorkers int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once

	mu      sync.RWMutex
	stopped bool
}

// PoolStats is a point-in-time view of the queue used by health checks.
type PoolStats struct {
	Workers  int  `json:"workers"`
	Queued   int  `json:"queued"`
	Capacity int  `json:"capacity"`
	Stopped  bool `json:"stopped"`
}

func NewPool(process ProcessFunc, workers, queueSize int, logger *slog.Logger) *Pool {
	if workers <= 0 {
		workers = 4
	}
	if queueSize <= 0 {
		queueSize = 100
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		logger:     logger,
		process:    process,
		jobQueue:   make(chan Job, queueSize),
		workerPool: make(chan chan Job, workers),
		maxWorkers: workers,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (p *Pool) Start() {
	p.once.Do(func() {
		for i := 0; i < p.maxWorkers; i++ {
			NewWorker(i, p.workerPool, p.logger).Start(p.ctx, &p.wg, p.process)
		}

		p.wg.Add(1)
		go p.dispatch()

		p.logger.Info("receipt worker pool started",
			"max_workers", p.maxWorkers,
			"queue_size", cap(p.jobQueue))
	})
}

func (p *Pool) dispatch() {
	defer p.wg.Done()

	for job := range p.jobQueue {
		jobChannel := <-p.workerPool
		jobChannel <- job
	}

	// queue closed and drained: release every worker once it goes idle
	for i := 0; i < p.maxWorkers; i++ {
		close(<-p.workerPool)
	}
	p.logger.Info("receipt dispatcher drained")
}

// Enqueue never blocks. A full queue is reported so the caller can rely on
// on-demand generation instead.
func (p *Pool) Enqueue(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrPoolStopped
	}

	select {
	case p.jobQueue <- job:
		p.logger.Debug("receipt job queued", "extra_id", job.ExtraID, "queue_length", len(p.jobQueue))
		return nil
	default:
		p.logger.Warn("receipt queue full, rejecting job",
			"extra_id", job.ExtraID,
			"queue_capacity", cap(p.jobQueue))
		return ErrQueueFull
	}
}

// Submit waits for queue space, for callers that must not drop jobs.
func (p *Pool) Submit(ctx context.Context, job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrPoolStopped
	}

	select {
	case p.jobQueue <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop refuses new jobs, drains the queue and waits for the workers. When
// ctx expires first the running jobs are cancelled.
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return nil
	}
	p.stopped = true
	close(p.jobQueue)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		p.logger.Info("receipt worker pool stopped")
		return nil
	case <-ctx.Done():
		p.cancel()
		p.logger.Warn("receipt worker pool stop timed out")
		return ctx.Err()
	}
}

func (p *Pool) Stats() PoolStats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return PoolStats{
		Workers:  p.maxWorkers,
		Queued:   len(p.jobQueue),
		Capacity: cap(p.jobQueue),
		Stopped:  p.stopped,
	}
}
