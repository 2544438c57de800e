// Package queue buffers trades between producers and the single processor.
package queue

import (
	"sync"
	"time"

	"github.com/rustyeddy/tradegate/pkg/id"
	"github.com/rustyeddy/tradegate/trade"
)

// Entry is one pending trade. Seq and ID both follow submission order as the
// queue observed it.
type Entry struct {
	ID          string
	Seq         uint64
	AccountID   string
	Trade       trade.Trade
	SubmittedAt time.Time
}

// Queue is an unbounded FIFO. Submit never blocks and never drops; any
// number of goroutines may submit while exactly one goroutine dequeues.
type Queue struct {
	mu    sync.Mutex
	items []Entry
	seq   uint64
	ids   *id.Generator
	ready chan struct{}
	now   func() time.Time
}

func New() *Queue {
	return &Queue{
		ids:   id.NewGenerator(),
		ready: make(chan struct{}, 1),
		now:   time.Now,
	}
}

// Submit appends a trade for accountID to the tail.
func (q *Queue) Submit(t trade.Trade, accountID string) Entry {
	q.mu.Lock()
	q.seq++
	e := Entry{
		ID:          q.ids.New(),
		Seq:         q.seq,
		AccountID:   accountID,
		Trade:       t,
		SubmittedAt: q.now(),
	}
	q.items = append(q.items, e)
	q.mu.Unlock()

	q.signal()
	return e
}

// signal raises the ready flag. The channel holds at most one token, so a
// burst of submits costs one wake-up.
func (q *Queue) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// TryDequeue removes the head. ok is false when nothing is pending.
func (q *Queue) TryDequeue() (e Entry, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return Entry{}, false
	}
	e = q.items[0]
	q.items[0] = Entry{}
	q.items = q.items[1:]
	if len(q.items) == 0 {
		// drop the drained backing array
		q.items = nil
	}
	return e, true
}

// Ready fires after a submit. A receive is a hint, not a promise: the
// consumer must still call TryDequeue and cope with an empty queue.
func (q *Queue) Ready() <-chan struct{} {
	return q.ready
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Submitted is the number of entries ever submitted.
func (q *Queue) Submitted() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.seq
}
