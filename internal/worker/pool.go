// Package worker runs independent enrichment jobs concurrently. Each job is
// one complete Enrich call; jobs share no mutable state, so the pool needs no
// coordination beyond collecting results.
package worker

import (
	"context"
	"sync"

	"github.com/ubmlab/kgenrich/internal/model"
)

// Enricher is the pipeline surface a job needs
type Enricher interface {
	Enrich(ctx context.Context, text string) ([]model.Result, error)
}

// Job is one input name to enrich
type Job struct {
	Name     string
	Enricher Enricher
}

// JobResult carries the enrichment output for one input name
type JobResult struct {
	Name    string
	Results []model.Result
	Err     error
}

// Pool runs enrichment jobs across a fixed number of workers
type Pool struct {
	workers   int
	jobQueue  chan Job
	results   chan JobResult
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewPool creates a pool with the specified number of workers
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, workers*2), // Buffered to prevent blocking
		results:  make(chan JobResult, workers*2),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			results, err := job.Enricher.Enrich(p.ctx, job.Name)
			result := JobResult{Name: job.Name, Results: results, Err: err}
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job for execution
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
		return
	case p.jobQueue <- job:
	}
}

// Wait waits for all submitted jobs to complete and returns their results
func (p *Pool) Wait() []JobResult {
	close(p.jobQueue)

	go func() {
		p.wg.Wait()
		p.closeResults()
	}()

	var results []JobResult
	for result := range p.results {
		results = append(results, result)
	}

	return results
}

// Shutdown stops the pool immediately
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
