package vdom

import "sync"

// Scratch retention limits. A keyed reconcile of a very large list would
// otherwise pin its working memory in the pool forever.
const (
	maxPooledScratch    = 8
	maxRetainedCapacity = 4096
)

// scratch holds the per-invocation working state of one keyed reconcile:
// the key->index maps and the LIS work arrays. Scratches are checked out of
// an explicit pool and fully cleared on check-in, so no state ever leaks
// between unrelated Diff calls.
type scratch struct {
	prevIdx   map[string]int
	nextIdx   map[string]int
	matchOf   []int
	matchedBy []int
	oldPos    []int
	seqNext   []int
	tails     []int
	links     []int
	stable    []bool
	keep      []bool
}

// grow returns *s sized to n, reusing capacity when possible.
func (s *scratch) grow(field *[]int, n int) []int {
	if cap(*field) < n {
		*field = make([]int, n)
	}
	*field = (*field)[:n]
	return *field
}

// growBool is grow for bool slices.
func (s *scratch) growBool(field *[]bool, n int) []bool {
	if cap(*field) < n {
		*field = make([]bool, n)
	}
	*field = (*field)[:n]
	return *field
}

// clear resets every map and slice so a later checkout observes no state
// from a previous reconcile.
func (s *scratch) clear() {
	clear(s.prevIdx)
	clear(s.nextIdx)
	s.matchOf = s.matchOf[:0]
	s.matchedBy = s.matchedBy[:0]
	s.oldPos = s.oldPos[:0]
	s.seqNext = s.seqNext[:0]
	s.tails = s.tails[:0]
	s.links = s.links[:0]
	s.stable = s.stable[:0]
	s.keep = s.keep[:0]
}

// oversized reports whether the scratch grew past the retention cap.
func (s *scratch) oversized() bool {
	return cap(s.matchOf) > maxRetainedCapacity ||
		cap(s.matchedBy) > maxRetainedCapacity ||
		cap(s.oldPos) > maxRetainedCapacity
}

// scratchPool is an explicit checkout/checkin pool with a retained-size
// cap. Unlike sync.Pool it never retains more than maxPooledScratch
// scratches and drops any that grew past maxRetainedCapacity.
type scratchPool struct {
	mu   sync.Mutex
	free []*scratch
}

var pool scratchPool

// checkoutScratch returns a cleared scratch, drawing from the pool when one
// is available.
func checkoutScratch() *scratch {
	pool.mu.Lock()
	defer pool.mu.Unlock()
	if n := len(pool.free); n > 0 {
		s := pool.free[n-1]
		pool.free = pool.free[:n-1]
		return s
	}
	return &scratch{
		prevIdx: make(map[string]int),
		nextIdx: make(map[string]int),
	}
}

// checkinScratch clears the scratch and returns it to the pool, unless the
// pool is full or the scratch outgrew the retention cap.
func checkinScratch(s *scratch) {
	if s.oversized() {
		return
	}
	s.clear()
	pool.mu.Lock()
	defer pool.mu.Unlock()
	if len(pool.free) < maxPooledScratch {
		pool.free = append(pool.free, s)
	}
}
