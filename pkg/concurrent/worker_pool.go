package concurrent

import "sync"

type Job[T any] struct {
	ID      int
	JobItem T
}

func NewJob[T any](id int, item T) Job[T] {
	return Job[T]{ID: id, JobItem: item}
}

type JobFunc[T any, G any] func(job T) G

// WorkerPool fans Jobs out to numWorkers goroutines and collects one result
// per job. Wait must be called after the final AddJob and before
// CollectResults.
type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan Job[T]
	results    chan G
	wg         sync.WaitGroup
}

func NewWorkerPool[T any, G any](numWorkers, queueSize int) *WorkerPool[T, G] {
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan Job[T], queueSize),
		results:    make(chan G, queueSize),
	}
}

func (wp *WorkerPool[T, G]) AddJob(job Job[T]) {
	wp.jobQueue <- job
}

func (wp *WorkerPool[T, G]) Start(f JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go func() {
			defer wp.wg.Done()
			for job := range wp.jobQueue {
				wp.results <- f(job.JobItem)
			}
		}()
	}
}

func (wp *WorkerPool[T, G]) Wait() {
	close(wp.jobQueue)
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) CollectResults() []G {
	collected := make([]G, 0)
	for result := range wp.results {
		collected = append(collected, result)
	}
	return collected
}
