package core

import (
	"sync"
	"sync/atomic"
	"time"
)

const (
	// IdleBackoff is how long a worker sleeps after finding the queue empty
	IdleBackoff = 20 * time.Microsecond
	// DrainBackoff is how long Run sleeps between checks for busy workers
	DrainBackoff = 2 * time.Microsecond
)

// Observer is notified around every work item a pool executes. Calls come
// from several goroutines at once.
type Observer interface {
	ChunkStarted()
	ChunkFinished(d time.Duration)
}

type observerBox struct {
	obs Observer
}

// Stats is a snapshot of the pool's shared state
type Stats struct {
	Queued    int    // Items waiting in the queue
	Busy      int    // Workers currently executing an item
	Completed uint64 // Items executed since the pool was created
}

// Pool is a fork-join pool of long-lived workers. Work items of type W are
// pushed onto one mutex-guarded queue, and every worker owns a scratch value
// of type S that it passes to run with each item it pops.
//
// Idle workers poll the queue with a short sleep rather than waiting on a
// condition variable. The mutex is held only while pushing, popping or
// updating the busy count, never while an item runs.
type Pool[W, S any] struct {
	mu    sync.Mutex
	busy  uint32
	queue []W

	running    atomic.Bool
	wg         sync.WaitGroup
	numWorkers int
	newScratch func() *S
	run        func(W, *S)
	completed  SafeCounter
	observer   atomic.Pointer[observerBox]
}

// NewPool starts numWorkers workers. Each calls newScratch once for its own
// scratch value. A pool with zero workers runs everything on the caller of Run.
func NewPool[W, S any](numWorkers int, newScratch func() *S, run func(W, *S)) *Pool[W, S] {
	if numWorkers < 0 {
		numWorkers = 0
	}
	p := &Pool[W, S]{
		numWorkers: numWorkers,
		newScratch: newScratch,
		run:        run,
	}
	p.running.Store(true)

	p.wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go p.worker()
	}
	return p
}

// worker is the goroutine that processes items from the queue
func (p *Pool[W, S]) worker() {
	defer p.wg.Done()
	scratch := p.newScratch()

	for p.running.Load() {
		item, ok := p.pop(true)
		if !ok {
			time.Sleep(IdleBackoff)
			continue
		}

		p.execute(item, scratch)

		p.mu.Lock()
		p.busy--
		p.mu.Unlock()
	}
}

// pop takes the most recently pushed item. Workers mark themselves busy in
// the same critical section, so an item is never in flight unaccounted for.
func (p *Pool[W, S]) pop(markBusy bool) (W, bool) {
	var zero W

	p.mu.Lock()
	defer p.mu.Unlock()

	last := len(p.queue) - 1
	if last < 0 {
		return zero, false
	}
	item := p.queue[last]
	p.queue[last] = zero
	p.queue = p.queue[:last]
	if markBusy {
		p.busy++
	}
	return item, true
}

func (p *Pool[W, S]) execute(item W, scratch *S) {
	box := p.observer.Load()
	if box == nil {
		p.run(item, scratch)
		p.completed.Increment()
		return
	}

	box.obs.ChunkStarted()
	start := time.Now()
	p.run(item, scratch)
	p.completed.Increment()
	box.obs.ChunkFinished(time.Since(start))
}

// Run enqueues items, executes items on the calling goroutine until the queue
// is empty, and then waits until no worker is busy. When Run returns every
// item has finished. Run must not be called from several goroutines at once.
func (p *Pool[W, S]) Run(items []W, scratch *S) {
	if len(items) == 0 {
		return
	}

	p.mu.Lock()
	p.queue = append(p.queue, items...)
	p.mu.Unlock()

	for {
		item, ok := p.pop(false)
		if !ok {
			break
		}
		p.execute(item, scratch)
	}

	for {
		p.mu.Lock()
		busy := p.busy
		p.mu.Unlock()
		if busy == 0 {
			return
		}
		time.Sleep(DrainBackoff)
	}
}

// SetObserver installs obs for all following items. Nil removes it.
func (p *Pool[W, S]) SetObserver(obs Observer) {
	if obs == nil {
		p.observer.Store(nil)
		return
	}
	p.observer.Store(&observerBox{obs: obs})
}

// Stats returns a snapshot of the queue length, busy count and completions
func (p *Pool[W, S]) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{
		Queued:    len(p.queue),
		Busy:      int(p.busy),
		Completed: uint64(p.completed.Get()),
	}
}

// Join stops the workers and waits for them to exit. Items a worker already
// popped finish first. Join is safe to call more than once.
func (p *Pool[W, S]) Join() {
	p.running.Store(false)
	p.wg.Wait()
}

// GetNumWorkers returns the number of workers in the pool, not counting the
// caller of Run
func (p *Pool[W, S]) GetNumWorkers() int {
	return p.numWorkers
}

// SafeCounter provides thread-safe counter operations using lock-free atomics.
type SafeCounter struct {
	value atomic.Int64
}

// Increment atomically increments the counter and returns the new value
func (c *SafeCounter) Increment() int64 {
	return c.value.Add(1)
}

// Decrement atomically decrements the counter and returns the new value
func (c *SafeCounter) Decrement() int64 {
	return c.value.Add(-1)
}

// Get atomically gets the counter value
func (c *SafeCounter) Get() int64 {
	return c.value.Load()
}
