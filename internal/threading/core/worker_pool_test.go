package core

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type countingObserver struct {
	started  atomic.Int32
	finished atomic.Int32
}

func (o *countingObserver) ChunkStarted()               { o.started.Add(1) }
func (o *countingObserver) ChunkFinished(time.Duration) { o.finished.Add(1) }

func TestWorkerPoolCreation(t *testing.T) {
	wp := NewPool(4, func() *int { return new(int) }, func(int, *int) {})
	defer wp.Join()
	if wp.GetNumWorkers() != 4 {
		t.Errorf("Expected 4 workers, got %d", wp.GetNumWorkers())
	}

	wp2 := NewPool(-3, func() *int { return new(int) }, func(int, *int) {})
	defer wp2.Join()
	if wp2.GetNumWorkers() != 0 {
		t.Errorf("Expected negative worker count to become 0, got %d", wp2.GetNumWorkers())
	}
}

func TestWorkerPoolRunsEveryItemOnce(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 8} {
		var counts [200]atomic.Int32
		wp := NewPool(workers, func() *int { return new(int) }, func(i int, _ *int) {
			counts[i].Add(1)
		})

		items := make([]int, len(counts))
		for i := range items {
			items[i] = i
		}
		wp.Run(items, new(int))

		for i := range counts {
			if n := counts[i].Load(); n != 1 {
				t.Errorf("%d workers: item %d ran %d times", workers, i, n)
			}
		}
		wp.Join()
	}
}

func TestWorkerPoolDrainsBeforeReturn(t *testing.T) {
	var done atomic.Int32
	wp := NewPool(4, func() *int { return new(int) }, func(_ int, _ *int) {
		time.Sleep(500 * time.Microsecond) // Simulate work
		done.Add(1)
	})
	defer wp.Join()

	for frame := 0; frame < 5; frame++ {
		done.Store(0)
		wp.Run(make([]int, 16), new(int))

		if done.Load() != 16 {
			t.Fatalf("Frame %d: expected 16 finished items when Run returns, got %d", frame, done.Load())
		}
		stats := wp.Stats()
		if stats.Queued != 0 || stats.Busy != 0 {
			t.Fatalf("Frame %d: expected drained pool, got %+v", frame, stats)
		}
	}

	if got := wp.Stats().Completed; got != 80 {
		t.Errorf("Expected 80 completed items, got %d", got)
	}
}

func TestWorkerPoolEmptyRun(t *testing.T) {
	called := false
	wp := NewPool(2, func() *int { return new(int) }, func(int, *int) { called = true })
	defer wp.Join()

	wp.Run(nil, new(int))
	if called {
		t.Error("Expected no calls for an empty run")
	}
}

func TestWorkerPoolScratchPerWorker(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[*int]bool)
	var created atomic.Int32

	wp := NewPool(3, func() *int {
		created.Add(1)
		return new(int)
	}, func(_ int, s *int) {
		*s++ // each scratch is only touched by its owner
		mu.Lock()
		seen[s] = true
		mu.Unlock()
	})

	caller := new(int)
	wp.Run(make([]int, 300), caller)
	wp.Join()

	if created.Load() != 3 {
		t.Errorf("Expected one scratch per worker, got %d", created.Load())
	}
	if len(seen) > 4 {
		t.Errorf("Expected at most 4 distinct scratch values, got %d", len(seen))
	}

	total := *caller
	for s := range seen {
		if s != caller {
			total += *s
		}
	}
	if total != 300 {
		t.Errorf("Expected scratch counts to sum to 300, got %d", total)
	}
}

func TestWorkerPoolObserver(t *testing.T) {
	obs := &countingObserver{}
	wp := NewPool(2, func() *int { return new(int) }, func(int, *int) {})
	defer wp.Join()

	wp.SetObserver(obs)
	wp.Run(make([]int, 10), new(int))
	if obs.started.Load() != 10 || obs.finished.Load() != 10 {
		t.Errorf("Expected 10 started and finished, got %d and %d", obs.started.Load(), obs.finished.Load())
	}

	wp.SetObserver(nil)
	wp.Run(make([]int, 5), new(int))
	if obs.started.Load() != 10 {
		t.Errorf("Expected removed observer to see nothing, got %d", obs.started.Load())
	}
}

func TestWorkerPoolJoinTwice(t *testing.T) {
	wp := NewPool(2, func() *int { return new(int) }, func(int, *int) {})
	wp.Join()
	wp.Join()

	// With every worker stopped, Run still completes on the caller
	var n int
	wp2 := NewPool(2, func() *int { return new(int) }, func(_ int, s *int) { *s++ })
	wp2.Join()
	wp2.Run(make([]int, 7), &n)
	if n != 7 {
		t.Errorf("Expected caller to run all 7 items, got %d", n)
	}
}

func TestSafeCounter(t *testing.T) {
	var counter SafeCounter

	counter.Increment()
	counter.Increment()
	if counter.Get() != 2 {
		t.Errorf("Expected counter to be 2, got %d", counter.Get())
	}

	counter.Decrement()
	if counter.Get() != 1 {
		t.Errorf("Expected counter to be 1, got %d", counter.Get())
	}

	var wg sync.WaitGroup
	numGoroutines := 20
	incrementsPerGoroutine := 100
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < incrementsPerGoroutine; j++ {
				counter.Increment()
			}
		}()
	}
	wg.Wait()

	expected := int64(1 + numGoroutines*incrementsPerGoroutine)
	if counter.Get() != expected {
		t.Errorf("Expected counter to be %d, got %d", expected, counter.Get())
	}
}
