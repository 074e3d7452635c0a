package utils

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestURLSetNoDuplicates(t *testing.T) {
	s := NewURLSet()

	added := s.Add("https://example.com/1")
	if !added {
		t.Error("first Add should return true")
	}

	added = s.Add("https://example.com/1")
	if added {
		t.Error("second Add of same URL should return false")
	}

	if s.Size() != 1 {
		t.Errorf("size: got %d, want 1", s.Size())
	}
}

func TestURLSetConcurrency(t *testing.T) {
	s := NewURLSet()
	var added int64

	pool := NewWorkerPool(10, 0)
	for i := 0; i < 100; i++ {
		url := "https://example.com/same"
		pool.Submit(context.Background(), func() {
			if s.Add(url) {
				atomic.AddInt64(&added, 1)
			}
		})
	}
	pool.Wait()

	if added != 1 {
		t.Errorf("expected exactly 1 successful add, got %d", added)
	}
}

func TestWorkerPoolBoundsConcurrency(t *testing.T) {
	pool := NewWorkerPool(3, 0)

	var running, peak int64
	for i := 0; i < 12; i++ {
		pool.Submit(context.Background(), func() {
			n := atomic.AddInt64(&running, 1)
			for {
				p := atomic.LoadInt64(&peak)
				if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt64(&running, -1)
		})
	}
	pool.Wait()

	if peak > 3 {
		t.Errorf("peak concurrency: got %d, want <= 3", peak)
	}
}

func TestWorkerPoolRateLimit(t *testing.T) {
	rateLimitMs := 100
	pool := NewWorkerPool(1, rateLimitMs)

	var mu sync.Mutex
	var timestamps []time.Time

	for i := 0; i < 3; i++ {
		pool.Submit(context.Background(), func() {
			mu.Lock()
			timestamps = append(timestamps, time.Now())
			mu.Unlock()
		})
	}
	pool.Wait()

	// The limiter schedules starts on a fixed grid, so allow a little jitter.
	min := time.Duration(rateLimitMs)*time.Millisecond - 15*time.Millisecond
	for i := 1; i < len(timestamps); i++ {
		gap := timestamps[i].Sub(timestamps[i-1])
		if gap < min {
			t.Errorf("gap between job %d and %d: %v < minimum %v", i-1, i, gap, min)
		}
	}
}

func TestWorkerPoolSkipsCancelledJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, rateLimitMs := range []int{0, 100} {
		pool := NewWorkerPool(2, rateLimitMs)
		var ran int64
		for i := 0; i < 4; i++ {
			pool.Submit(ctx, func() {
				atomic.AddInt64(&ran, 1)
			})
		}
		pool.Wait()

		if ran != 0 {
			t.Errorf("rateLimitMs=%d: %d jobs ran after cancellation; want 0", rateLimitMs, ran)
		}
	}
}

func TestWorkerPoolCancelWhileWaitingForRate(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	pool := NewWorkerPool(1, 10000)
	var ran int64
	start := time.Now()
	for i := 0; i < 3; i++ {
		pool.Submit(ctx, func() {
			atomic.AddInt64(&ran, 1)
		})
	}
	pool.Wait()

	if ran != 1 {
		t.Errorf("ran %d jobs; want only the first before the limiter blocks", ran)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Wait returned after %v; cancellation should release waiting jobs", elapsed)
	}
}
