// Package pool provides a reusable worker pool for the embarrassingly
// parallel parts of address handling, wallet scanning above all.
package pool

import (
	"io"
	"runtime"
	"sync"
	"sync/atomic"
)

// task tells an idle worker what to compute.
//
// A worker either evaluates f at a fixed index, or keeps evaluating f until it
// returns a non nil result, depending on the hunt flag.
type task struct {
	hunt bool
	// remaining counts the results still owed across all workers.
	remaining *int64
	// i is the evaluation index when not hunting.
	i       int
	f       func(int) interface{}
	results []interface{}
}

// hunt keeps querying f until *remaining hits zero, claiming a result slot
// for every success.
func hunt(results []interface{}, done chan<- struct{}, f func(int) interface{}, remaining *int64) {
	for atomic.LoadInt64(remaining) > 0 {
		res := f(0)
		if res == nil {
			continue
		}
		i := atomic.AddInt64(remaining, -1)
		done <- struct{}{}
		if i < 0 {
			break
		}
		results[i] = res
	}
}

func worker(tasks <-chan task, done chan<- struct{}) {
	for t := range tasks {
		if t.hunt {
			hunt(t.results, done, t.f, t.remaining)
		} else {
			t.results[t.i] = t.f(t.i)
			atomic.AddInt64(t.remaining, -1)
			done <- struct{}{}
		}
	}
}

// Pool is a fixed set of workers sharing a single task channel, which makes
// it a work stealing pool.
//
// A nil *Pool is valid everywhere one is accepted, and runs the work on the
// calling goroutine instead.
type Pool struct {
	tasks       chan task
	done        chan struct{}
	workerCount int
}

// NewPool creates a pool with the given number of workers.
//
// If count <= 0, the number of available CPUs is used instead.
func NewPool(count int) *Pool {
	if count <= 0 {
		count = runtime.NumCPU()
	}
	p := &Pool{
		tasks:       make(chan task),
		done:        make(chan struct{}),
		workerCount: count,
	}
	for i := 0; i < count; i++ {
		go worker(p.tasks, p.done)
	}
	return p
}

// TearDown stops the workers. The pool must not be used afterwards.
func (p *Pool) TearDown() {
	close(p.tasks)
}

// Search queries f until count successes are found, and returns them.
//
// f tries a single candidate, returning nil when the candidate fails.
func (p *Pool) Search(count int, f func() interface{}) []interface{} {
	if p == nil {
		results := make([]interface{}, count)
		for i := range results {
			for results[i] = f(); results[i] == nil; results[i] = f() {
			}
		}
		return results
	}

	results := make([]interface{}, count)
	remaining := int64(count)
	t := task{
		hunt:      true,
		remaining: &remaining,
		f:         func(int) interface{} { return f() },
		results:   results,
	}
	for i := 0; i < p.workerCount; i++ {
		p.tasks <- t
	}
	for atomic.LoadInt64(&remaining) > 0 {
		<-p.done
	}
	return results
}

// Parallelize returns [f(0), f(1), ..., f(count-1)], splitting the calls
// across the pool's workers.
func (p *Pool) Parallelize(count int, f func(int) interface{}) []interface{} {
	if p == nil {
		results := make([]interface{}, count)
		for i := range results {
			results[i] = f(i)
		}
		return results
	}

	results := make([]interface{}, count)
	remaining := int64(count)
	next := 0
	for next < count {
		t := task{
			i:         next,
			remaining: &remaining,
			f:         f,
			results:   results,
		}
		// Busy workers cannot accept a task until their result is drained,
		// so sending and draining have to interleave.
		select {
		case p.tasks <- t:
			next++
		case <-p.done:
		}
	}
	for atomic.LoadInt64(&remaining) > 0 {
		<-p.done
	}
	return results
}

// LockedReader makes an io.Reader safe for concurrent reads by serializing
// them behind a mutex.
type LockedReader struct {
	reader io.Reader
	mu     sync.Mutex
}

// NewLockedReader wraps r. Useful for sharing an entropy source between
// workers sampling keys in parallel.
func NewLockedReader(r io.Reader) *LockedReader {
	return &LockedReader{reader: r}
}

func (r *LockedReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reader.Read(p)
}
