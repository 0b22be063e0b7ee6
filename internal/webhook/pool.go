package webhook

import (
	"context"
	"log"
	"sync"
)

// Task is one unit of event-processing work.
type Task func()

// Pool runs tasks on a fixed set of workers fed from a bounded queue, so a
// burst of webhook deliveries cannot spawn unbounded goroutines. Once
// submitted, a task runs to completion; there is no per-task cancellation.
type Pool struct {
	queue chan Task
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewPool(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	p := &Pool{queue: make(chan Task, queueSize)}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.queue {
		run(task)
	}
}

func run(task Task) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("event task panic recovered: %v", r)
		}
	}()
	task()
}

// Submit enqueues a task without blocking. It returns false when the queue
// is saturated or the pool is shut down; the caller decides what dropping
// means.
func (p *Pool) Submit(task Task) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	select {
	case p.queue <- task:
		return true
	default:
		return false
	}
}

// Shutdown stops intake and waits for already-queued tasks to drain, or
// until ctx expires.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
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
