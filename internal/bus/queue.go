package bus

import (
	"sync"
	"time"
)

// Queue is a FIFO queue safe for concurrent producers and consumers.
// Push never blocks and never rejects; Pop waits a bounded time. Items
// are never dropped once enqueued. Capacity is unbounded: producers are
// trusted not to outrun consumers for long stretches.
type Queue[T any] struct {
	mu    sync.Mutex
	items []T
	wake  chan struct{}
}

// NewQueue allocates an empty queue.
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{wake: make(chan struct{}, 1)}
}

// Push appends an item to the tail.
func (q *Queue[T]) Push(item T) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()
	q.signal()
}

// Pop removes the head item, waiting up to timeout when the queue is
// empty. The second result is false when the wait expired.
func (q *Queue[T]) Pop(timeout time.Duration) (T, bool) {
	if item, ok := q.take(); ok {
		return item, true
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case <-q.wake:
			if item, ok := q.take(); ok {
				return item, true
			}
		case <-timer.C:
			var zero T
			return zero, false
		}
	}
}

// TryPop removes the head item without waiting.
func (q *Queue[T]) TryPop() (T, bool) {
	return q.take()
}

// Len returns a momentary snapshot of the queue depth.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Empty reports whether the queue was empty at the moment of the call.
func (q *Queue[T]) Empty() bool {
	return q.Len() == 0
}

func (q *Queue[T]) take() (T, bool) {
	q.mu.Lock()
	if len(q.items) == 0 {
		q.mu.Unlock()
		var zero T
		return zero, false
	}
	item := q.items[0]
	q.items = q.items[1:]
	rest := len(q.items)
	q.mu.Unlock()

	// Hand the wake token on so another waiting consumer sees the
	// remaining items.
	if rest > 0 {
		q.signal()
	}
	return item, true
}

func (q *Queue[T]) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}
