// Package workerpool runs batches of independent tasks on a fixed set of
// goroutines that live for as long as the pool does.
package workerpool

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

var (
	// ErrClosed is returned by Run once the pool has been closed.
	ErrClosed = errors.New("workerpool: pool is closed")

	// ErrStop may be returned by a task to end its batch early. Run then
	// returns nil.
	ErrStop = errors.New("workerpool: stop")
)

// Task is one unit of work in a batch; i is its index in [0, n).
type Task func(ctx context.Context, i int) error

// Pool is a fixed-size set of workers.
type Pool struct {
	size   int
	jobs   chan func()
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// New starts a pool of size workers. A size of zero or less uses one worker
// per CPU.
func New(size int) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}

	p := &Pool{
		size: size,
		jobs: make(chan func(), size*10),
	}
	p.wg.Add(size)
	for w := 0; w < size; w++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job()
			}
		}()
	}
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return p.size
}

// Run submits n tasks and waits for all of them to finish. Results are not
// ordered. The first task error cancels the context handed to the remaining
// tasks, stops submission, and is returned; ErrStop ends the batch the same
// way but Run returns nil. If ctx is cancelled first, its error is returned.
func (p *Pool) Run(ctx context.Context, n int, task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}

	batchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

submit:
	for i := 0; i < n; i++ {
		if batchCtx.Err() != nil {
			break
		}
		i := i
		wg.Add(1)
		job := func() {
			defer wg.Done()
			if batchCtx.Err() != nil {
				return
			}
			if err := task(batchCtx, i); err != nil {
				fail(err)
			}
		}

		select {
		case p.jobs <- job:
		case <-batchCtx.Done():
			wg.Done()
			break submit
		}
	}
	wg.Wait()

	if firstErr != nil {
		if errors.Is(firstErr, ErrStop) {
			return nil
		}
		return firstErr
	}
	return ctx.Err()
}

// Close stops the workers after queued work drains. It is safe to call more
// than once.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
}
