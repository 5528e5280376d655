package concurrent

import (
	"context"
	"runtime"
	"sync"
)

type JobFunc[T any, G any] func(ctx context.Context, job T) G

// indexedJob. position of the job in submission order, so results can be put back in order.
type indexedJob[T any] struct {
	idx int
	job T
}

type Result[G any] struct {
	Idx   int
	Value G
}

// WorkerPool. fixed number of goroutines pulling jobs from a buffered queue. workers stop taking new jobs once the
// context passed to Start is cancelled; jobs still queued at that point are dropped.
type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan indexedJob[T]
	results    chan Result[G]
	wg         sync.WaitGroup
	submitted  int
}

// NewWorkerPool. numWorkers <= 0 means one worker per cpu.
func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan indexedJob[T], jobQueueSize),
		results:    make(chan Result[G], jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(ctx context.Context, jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		if ctx.Err() != nil {
			continue
		}
		wp.results <- Result[G]{Idx: job.idx, Value: jobFunc(ctx, job.job)}
	}
}

func (wp *WorkerPool[T, G]) Start(ctx context.Context, jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, jobFunc)
	}
}

// AddJob. blocks while the queue is full. must not be called after Close.
func (wp *WorkerPool[T, G]) AddJob(job T) {
	wp.jobQueue <- indexedJob[T]{idx: wp.submitted, job: job}
	wp.submitted++
}

func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

// Wait. wait for the workers to drain the queue, then close the results channel.
func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) CollectResults() <-chan Result[G] {
	return wp.results
}

// Map. run jobFunc on every job with numWorkers goroutines and return the results in job order.
// results of jobs skipped because ctx was cancelled keep the zero value of G.
func Map[T any, G any](ctx context.Context, numWorkers int, jobs []T, jobFunc JobFunc[T, G]) []G {
	wp := NewWorkerPool[T, G](numWorkers, len(jobs))
	wp.Start(ctx, jobFunc)

	for _, job := range jobs {
		wp.AddJob(job)
	}
	wp.Close()
	wp.Wait()

	out := make([]G, len(jobs))
	for res := range wp.CollectResults() {
		out[res.Idx] = res.Value
	}
	return out
}
