// Package batch runs index-parallel work on a fixed pool of goroutines.
package batch

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultBatchSize is the number of consecutive indices one task claims.
const DefaultBatchSize = 64

// Config sizes the worker pool.
type Config struct {
	Workers   int
	BatchSize int
}

// Resolve fills unset fields with defaults.
func (c Config) Resolve() Config {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	return c
}

// Handle tracks one Run. All methods are safe for concurrent use.
type Handle struct {
	total     int
	processed atomic.Int64
	start     time.Time
	elapsed   atomic.Int64
	done      chan struct{}
}

// Done is closed once every index has been processed.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// IsCompleted reports completion without blocking.
func (h *Handle) IsCompleted() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Wait blocks until every index has been processed.
func (h *Handle) Wait() {
	<-h.done
}

// Total returns the number of indices scheduled.
func (h *Handle) Total() int {
	return h.total
}

// Processed returns how many indices have finished so far.
func (h *Handle) Processed() int {
	return int(h.processed.Load())
}

// Elapsed returns the wall time of a completed run, or the time so far.
func (h *Handle) Elapsed() time.Duration {
	if h.IsCompleted() {
		return time.Duration(h.elapsed.Load())
	}
	return time.Since(h.start)
}

// Run calls fn(i) for every i in [0, n) across the pool and returns immediately.
// fn must only write state owned by index i; calls for different indices run
// concurrently in no particular order.
func Run(cfg Config, n int, fn func(i int)) *Handle {
	cfg = cfg.Resolve()
	h := &Handle{total: n, start: time.Now(), done: make(chan struct{})}
	if n <= 0 {
		close(h.done)
		return h
	}

	workers := cfg.Workers
	chunks := (n + cfg.BatchSize - 1) / cfg.BatchSize
	if workers > chunks {
		workers = chunks
	}

	chunkChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for lo := range chunkChan {
				hi := lo + cfg.BatchSize
				if hi > n {
					hi = n
				}
				for i := lo; i < hi; i++ {
					fn(i)
				}
				h.processed.Add(int64(hi - lo))
			}
		}()
	}

	go func() {
		for lo := 0; lo < n; lo += cfg.BatchSize {
			chunkChan <- lo
		}
		close(chunkChan)
		wg.Wait()
		h.elapsed.Store(int64(time.Since(h.start)))
		close(h.done)
	}()

	return h
}

// Do is Run followed by Wait.
func Do(cfg Config, n int, fn func(i int)) {
	Run(cfg, n, fn).Wait()
}
