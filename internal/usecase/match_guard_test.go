package usecase

import (
	"sync"
	"testing"
	"time"
)

func TestMatchGuard_SerializesPerMatch(t *testing.T) {
	t.Parallel()

	g := NewMatchGuard()
	var (
		wg      sync.WaitGroup
		counter int
	)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := g.Lock("match-1")
			defer release()
			counter++
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Fatalf("expected 50 increments, got %d", counter)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.locks) != 0 {
		t.Fatalf("released entries should be dropped, %d left", len(g.locks))
	}
}

func TestMatchGuard_LockAllOrdersKeys(t *testing.T) {
	t.Parallel()

	g := NewMatchGuard()
	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		for i := range 40 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				keys := []string{"match-a", "match-b", "match-c", "match-a"}
				if i%2 == 1 {
					keys = []string{"match-c", "match-b", "match-a"}
				}
				release := g.LockAll(keys...)
				release()
			}()
		}
		wg.Wait()
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("LockAll callers deadlocked")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.locks) != 0 {
		t.Fatalf("released entries should be dropped, %d left", len(g.locks))
	}
}

func TestMatchGuard_LockAllWaitsForHolder(t *testing.T) {
	t.Parallel()

	g := NewMatchGuard()
	release := g.Lock("match-b")

	acquired := make(chan struct{})
	go func() {
		unlock := g.LockAll("match-a", "match-b")
		close(acquired)
		unlock()
	}()

	select {
	case <-acquired:
		t.Fatalf("LockAll acquired a key that is still held")
	case <-time.After(50 * time.Millisecond):
	}
	release()
	select {
	case <-acquired:
	case <-time.After(2 * time.Second):
		t.Fatalf("LockAll never acquired after release")
	}
}
