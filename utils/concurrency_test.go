package utils

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPoolRunsAllJobs(t *testing.T) {
	pool := NewWorkerPool(4)

	var counter int64
	for i := 0; i < 20; i++ {
		pool.Submit(func() {
			atomic.AddInt64(&counter, 1)
		})
	}
	pool.Wait()

	if counter != 20 {
		t.Errorf("ran %d jobs, want 20", counter)
	}
}

func TestWorkerPoolBoundsConcurrency(t *testing.T) {
	pool := NewWorkerPool(2)

	var active, peak int64
	var mu sync.Mutex

	for i := 0; i < 10; i++ {
		pool.Submit(func() {
			n := atomic.AddInt64(&active, 1)
			mu.Lock()
			if n > peak {
				peak = n
			}
			mu.Unlock()
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt64(&active, -1)
		})
	}
	pool.Wait()

	if peak > 2 {
		t.Errorf("observed %d concurrent jobs, want at most 2", peak)
	}
}

func TestURLSet(t *testing.T) {
	set := NewURLSet()

	if !set.Add("https://example.com/a") {
		t.Error("first Add returned false, want true")
	}
	if set.Add("https://example.com/a") {
		t.Error("duplicate Add returned true, want false")
	}
	if !set.Contains("https://example.com/a") {
		t.Error("Contains = false for an added URL")
	}
	if set.Contains("https://example.com/b") {
		t.Error("Contains = true for a URL never added")
	}

	set.Add("https://example.com/b")
	if got := set.Size(); got != 2 {
		t.Errorf("Size = %d, want 2", got)
	}
}

func TestURLSetConcurrentAdds(t *testing.T) {
	set := NewURLSet()

	var wg sync.WaitGroup
	var added int64
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if set.Add("https://example.com/shared") {
				atomic.AddInt64(&added, 1)
			}
		}()
	}
	wg.Wait()

	if added != 1 {
		t.Errorf("%d goroutines won the Add race, want exactly 1", added)
	}
	if set.Size() != 1 {
		t.Errorf("Size = %d, want 1", set.Size())
	}
}
