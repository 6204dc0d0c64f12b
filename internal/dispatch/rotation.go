package dispatch

import "sync"

// Rotator assigns inbound conversations to advisors in fixed cyclic order.
// The pool is immutable after construction; the cursor is the only mutable
// state and is guarded so concurrent webhook deliveries never observe the
// same position twice or skip one.
type Rotator struct {
	mu     sync.Mutex
	pool   []string
	cursor int
}

// NewRotator creates a Rotator over the given advisor PSIDs. The slice is
// copied; an empty pool disables assignment.
func NewRotator(pool []string) *Rotator {
	r := &Rotator{}
	if len(pool) > 0 {
		r.pool = make([]string, len(pool))
		copy(r.pool, pool)
	}
	return r
}

// Next returns the advisor at the current cursor position and advances the
// cursor, wrapping at the end of the pool. The second return is false when
// the pool is empty. Read-then-advance is atomic with respect to concurrent
// callers.
func (r *Rotator) Next() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.pool) == 0 {
		return "", false
	}

	advisor := r.pool[r.cursor]
	r.cursor = (r.cursor + 1) % len(r.pool)
	return advisor, true
}

// PoolSize returns the number of advisors in the pool.
func (r *Rotator) PoolSize() int {
	return len(r.pool)
}
