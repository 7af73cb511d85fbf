package parallel

import (
	"runtime"
	"sync"
)

// Pool runs submitted jobs on a fixed set of goroutines. With a single
// worker, jobs run inline on the submitting goroutine.
type Pool struct {
	wg      sync.WaitGroup
	pending sync.WaitGroup
	work    chan func()
	close   func()
	workers int
}

// Start launches numWorkers workers; values below 1 mean GOMAXPROCS.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		workers: numWorkers,
		close:   func() {},
	}
	if numWorkers == 1 {
		return pool
	}

	pool.work = make(chan func(), numWorkers)
	for range numWorkers {
		pool.wg.Go(func() {
			for f := range pool.work {
				f()
				pool.pending.Done()
			}
		})
	}
	pool.close = sync.OnceFunc(func() { close(pool.work) })

	return pool
}

func (p *Pool) Workers() int {
	return p.workers
}

// Do queues f, blocking while all workers are busy and the queue is full.
// It must not be called after Close.
func (p *Pool) Do(f func()) {
	if p.work == nil {
		f()
		return
	}
	p.pending.Add(1)
	p.work <- f
}

// Wait blocks until every job queued so far has finished. The pool keeps
// accepting jobs afterwards.
func (p *Pool) Wait() {
	p.pending.Wait()
}

// Close stops accepting jobs and waits for the queued ones to finish.
// It is safe to call more than once.
func (p *Pool) Close() {
	p.close()
	p.wg.Wait()
}
