// ABOUTME: Render worker pool runs card renders on a bounded set of goroutines
// ABOUTME: Used for batch conversions where page and image fetches dominate latency

package workers

import (
	"context"
	"sync"
	"time"

	"newscard-api/core/domain"
	"newscard-api/core/interfaces"
)

// Renderer renders a single card
type Renderer interface {
	Render(ctx context.Context, req interfaces.CardRequest) (*domain.Card, error)
}

// RenderJob represents one card to render
type RenderJob struct {
	Index    int
	Request  interfaces.CardRequest
	Context  context.Context
	ResultCh chan<- RenderResult
}

// RenderResult carries the outcome of a job back to the submitter
type RenderResult struct {
	Index  int
	Result interfaces.BatchResult
}

// RenderWorker manages the render goroutines
type RenderWorker struct {
	renderer   Renderer
	jobQueue   chan *RenderJob
	maxWorkers int
	queueSize  int
	workers    []*worker
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	mu         sync.Mutex
	sendMu     sync.RWMutex // held for reading while a job is being queued
	running    bool
}

// worker represents an individual worker goroutine
type worker struct {
	id       int
	jobQueue <-chan *RenderJob
	renderer Renderer
	ctx      context.Context
	wg       *sync.WaitGroup
}

// WorkerConfig holds configuration for the render worker
type WorkerConfig struct {
	MaxWorkers int
	QueueSize  int
}

// DefaultWorkerConfig returns the default worker configuration
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		MaxWorkers: 4,
		QueueSize:  100,
	}
}

// NewRenderWorker creates a new render worker pool
func NewRenderWorker(renderer Renderer, config WorkerConfig) *RenderWorker {
	ctx, cancel := context.WithCancel(context.Background())

	if config.MaxWorkers <= 0 {
		config.MaxWorkers = DefaultWorkerConfig().MaxWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultWorkerConfig().QueueSize
	}

	return &RenderWorker{
		renderer:   renderer,
		jobQueue:   make(chan *RenderJob, config.QueueSize),
		maxWorkers: config.MaxWorkers,
		queueSize:  config.QueueSize,
		workers:    make([]*worker, 0, config.MaxWorkers),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start starts the worker pool
func (rw *RenderWorker) Start() error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.running {
		return nil
	}
	if rw.ctx.Err() != nil {
		rw.ctx, rw.cancel = context.WithCancel(context.Background())
		rw.jobQueue = make(chan *RenderJob, rw.queueSize)
		rw.workers = rw.workers[:0]
	}

	for i := 0; i < rw.maxWorkers; i++ {
		w := &worker{
			id:       i,
			jobQueue: rw.jobQueue,
			renderer: rw.renderer,
			ctx:      rw.ctx,
			wg:       &rw.wg,
		}
		rw.workers = append(rw.workers, w)
		rw.wg.Add(1)
		go w.run()
	}

	rw.running = true
	return nil
}

// Stop stops the worker pool. Jobs still queued fail with ErrWorkerNotRunning.
func (rw *RenderWorker) Stop() error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if !rw.running {
		return nil
	}
	rw.running = false
	rw.cancel()

	// Wait out in-flight submitters before closing the queue
	rw.sendMu.Lock()
	close(rw.jobQueue)
	rw.sendMu.Unlock()
	rw.wg.Wait()

	for job := range rw.jobQueue {
		if job.ResultCh != nil {
			job.ResultCh <- RenderResult{
				Index:  job.Index,
				Result: interfaces.BatchResult{URL: job.Request.URL, Err: ErrWorkerNotRunning},
			}
		}
	}
	return nil
}

// SubmitJob submits a job to the worker pool
func (rw *RenderWorker) SubmitJob(job *RenderJob) error {
	rw.mu.Lock()
	running, ctx, queue := rw.running, rw.ctx, rw.jobQueue
	rw.mu.Unlock()
	if !running {
		return ErrWorkerNotRunning
	}

	rw.sendMu.RLock()
	defer rw.sendMu.RUnlock()
	if ctx.Err() != nil {
		return ErrWorkerNotRunning
	}

	timer := time.NewTimer(5 * time.Second)
	defer timer.Stop()

	select {
	case queue <- job:
		return nil
	case <-ctx.Done():
		return ErrWorkerNotRunning
	case <-timer.C:
		return ErrQueueFull
	}
}

// RenderAll renders every request and returns the results in request order
func (rw *RenderWorker) RenderAll(ctx context.Context, reqs []interfaces.CardRequest) []interfaces.BatchResult {
	results := make([]interfaces.BatchResult, len(reqs))
	resultCh := make(chan RenderResult, len(reqs))

	pending := 0
	for i, req := range reqs {
		job := &RenderJob{Index: i, Request: req, Context: ctx, ResultCh: resultCh}
		if err := rw.SubmitJob(job); err != nil {
			results[i] = interfaces.BatchResult{URL: req.URL, Err: err}
			continue
		}
		pending++
	}

	for ; pending > 0; pending-- {
		res := <-resultCh
		results[res.Index] = res.Result
	}
	return results
}

// run is the main loop for each worker
func (w *worker) run() {
	defer w.wg.Done()

	for {
		select {
		case job, ok := <-w.jobQueue:
			if !ok {
				return
			}
			w.processJob(job)
		case <-w.ctx.Done():
			return
		}
	}
}

// processJob renders one card and reports back; ResultCh must be buffered
func (w *worker) processJob(job *RenderJob) {
	result := interfaces.BatchResult{URL: job.Request.URL}
	if err := job.Context.Err(); err != nil {
		result.Err = err
	} else {
		result.Card, result.Err = w.renderer.Render(job.Context, job.Request)
	}

	if job.ResultCh != nil {
		job.ResultCh <- RenderResult{Index: job.Index, Result: result}
	}
}

// Error definitions
var (
	ErrWorkerNotRunning = &WorkerError{Message: "worker pool is not running"}
	ErrQueueFull        = &WorkerError{Message: "job queue is full"}
)

// WorkerError represents a worker-specific error
type WorkerError struct {
	Message string
}

func (e *WorkerError) Error() string {
	return e.Message
}
