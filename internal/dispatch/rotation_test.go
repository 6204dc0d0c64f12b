package dispatch

import (
	"sync"
	"testing"
)

func TestRotatorCyclicOrder(t *testing.T) {
	pool := []string{"A1", "A2", "A3"}
	r := NewRotator(pool)

	// Call N (1-indexed) must return pool[(N-1) mod len(pool)].
	for n := 1; n <= 10; n++ {
		advisor, ok := r.Next()
		if !ok {
			t.Fatalf("call %d: expected an advisor", n)
		}
		want := pool[(n-1)%len(pool)]
		if advisor != want {
			t.Errorf("call %d: expected %q, got %q", n, want, advisor)
		}
	}
}

func TestRotatorEmptyPool(t *testing.T) {
	for _, pool := range [][]string{nil, {}} {
		r := NewRotator(pool)
		for i := 0; i < 3; i++ {
			if advisor, ok := r.Next(); ok {
				t.Errorf("empty pool returned advisor %q", advisor)
			}
		}
	}
}

func TestRotatorSingleAdvisor(t *testing.T) {
	r := NewRotator([]string{"A1"})
	for i := 0; i < 5; i++ {
		advisor, ok := r.Next()
		if !ok || advisor != "A1" {
			t.Fatalf("call %d: expected A1, got %q (ok=%v)", i+1, advisor, ok)
		}
	}
}

func TestRotatorCopiesPool(t *testing.T) {
	pool := []string{"A1", "A2"}
	r := NewRotator(pool)
	pool[0] = "mutated"

	advisor, _ := r.Next()
	if advisor != "A1" {
		t.Errorf("expected rotator to own a copy of the pool, got %q", advisor)
	}
}

// TestRotatorConcurrentNext verifies the read-then-advance is atomic: K
// goroutines each drawing M times must produce exactly K*M/len(pool)
// occurrences of every advisor, with no duplicates from a shared cursor value.
func TestRotatorConcurrentNext(t *testing.T) {
	pool := []string{"A1", "A2", "A3", "A4"}
	r := NewRotator(pool)

	const goroutines = 8
	const perGoroutine = 100 // total 800, divisible by 4

	counts := make([]map[string]int, goroutines)
	var wg sync.WaitGroup
	wg.Add(goroutines)

	for g := 0; g < goroutines; g++ {
		g := g
		counts[g] = make(map[string]int)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				advisor, ok := r.Next()
				if !ok {
					t.Error("unexpected empty result")
					return
				}
				counts[g][advisor]++
			}
		}()
	}
	wg.Wait()

	total := make(map[string]int)
	for _, m := range counts {
		for advisor, n := range m {
			total[advisor] += n
		}
	}

	want := goroutines * perGoroutine / len(pool)
	for _, advisor := range pool {
		if total[advisor] != want {
			t.Errorf("advisor %s drawn %d times, expected %d", advisor, total[advisor], want)
		}
	}
}
