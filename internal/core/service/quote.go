package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultQuoteDebounce = 500 * time.Millisecond

// quoteScheduler coalesces rapid successive cart mutations into a single
// bill request per session. Every schedule call cancels the session's
// pending timer, so only the most recently scheduled one fires.
type quoteScheduler struct {
	delay  time.Duration
	mu     sync.Mutex
	timers map[uuid.UUID]*time.Timer
}

func newQuoteScheduler(delay time.Duration) *quoteScheduler {
	if delay <= 0 {
		delay = defaultQuoteDebounce
	}
	return &quoteScheduler{
		delay:  delay,
		timers: make(map[uuid.UUID]*time.Timer),
	}
}

// schedule arms (or re-arms) the debounce timer for a session. Returns true
// when a pending timer was replaced.
func (q *quoteScheduler) schedule(id uuid.UUID, fn func()) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	coalesced := false
	if t, ok := q.timers[id]; ok {
		t.Stop()
		coalesced = true
	}

	var t *time.Timer
	t = time.AfterFunc(q.delay, func() {
		q.mu.Lock()
		if q.timers[id] == t {
			delete(q.timers, id)
		}
		q.mu.Unlock()
		fn()
	})
	q.timers[id] = t
	return coalesced
}

// cancel drops the session's pending timer, if any.
func (q *quoteScheduler) cancel(id uuid.UUID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if t, ok := q.timers[id]; ok {
		t.Stop()
		delete(q.timers, id)
	}
}
