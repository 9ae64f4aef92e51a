// Package parallel runs independent bands of bitmap rows on a fixed set of
// goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed-size set of worker goroutines.
//
// Each worker owns a queue and steals from the others when its own queue is
// empty, so uneven bands still keep every worker busy.
//
// Pool is safe for concurrent use.
type Pool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewPool starts a pool with the given number of workers. If workers is 0
// or negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), max(workers*4, 8))
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			drain(own)
			return
		case task := <-own:
			task()
		default:
			if task := p.steal(id); task != nil {
				task()
				continue
			}
			select {
			case <-p.done:
				drain(own)
				return
			case task := <-own:
				task()
			}
		}
	}
}

func drain(queue chan func()) {
	for {
		select {
		case task := <-queue:
			task()
		default:
			return
		}
	}
}

func (p *Pool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case task := <-p.queues[i]:
			return task
		default:
		}
	}
	return nil
}

// Run executes every task and returns once all of them have finished. Tasks
// that cannot be queued because the pool is closed run on the calling
// goroutine. Run must not be called concurrently with Close.
func (p *Pool) Run(tasks []func()) {
	if len(tasks) == 0 {
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for i, task := range tasks {
		wrapped := func() {
			defer wg.Done()
			task()
		}
		if !p.running.Load() {
			wrapped()
			continue
		}
		select {
		case p.queues[i%p.workers] <- wrapped:
		case <-p.done:
			wrapped()
		}
	}
	wg.Wait()
}

// Rows splits the rows [0, n) into bands of at least minRows rows, one band
// per worker at most, and calls fn(lo, hi) for each band in parallel. It
// returns after every band is done.
func (p *Pool) Rows(n, minRows int, fn func(lo, hi int)) {
	bands := Bands(n, p.workers, minRows)
	tasks := make([]func(), len(bands))
	for i, b := range bands {
		tasks[i] = func() { fn(b[0], b[1]) }
	}
	p.Run(tasks)
}

// Bands splits [0, n) into at most parts contiguous half-open ranges of at
// least minRows each (the last may be longer). It returns nil for n <= 0.
func Bands(n, parts, minRows int) [][2]int {
	if n <= 0 {
		return nil
	}
	minRows = max(minRows, 1)
	parts = max(min(parts, n/minRows), 1)

	bands := make([][2]int, 0, parts)
	size, extra := n/parts, n%parts
	lo := 0
	for i := range parts {
		hi := lo + size
		if i < extra {
			hi++
		}
		bands = append(bands, [2]int{lo, hi})
		lo = hi
	}
	return bands
}

// Close stops the workers after they finish the queued tasks. Close is safe
// to call more than once.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers.
func (p *Pool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts tasks.
func (p *Pool) IsRunning() bool {
	return p.running.Load()
}
