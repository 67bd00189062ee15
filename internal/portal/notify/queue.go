package notify

import (
	"sync"
	"sync/atomic"
)

// DefaultQueueSize is used when NewQueue receives a non-positive size.
const DefaultQueueSize = 64

// Queue decouples producers from a slow sink. Notify never blocks: when the buffer is full
// or the queue is closed the notification is dropped and counted.
type Queue struct {
	sink    Notifier
	ch      chan Notification
	mu      sync.RWMutex
	closed  bool
	done    chan struct{}
	dropped atomic.Uint64
}

// NewQueue starts the goroutine draining into sink.
func NewQueue(sink Notifier, size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	q := &Queue{
		sink: sink,
		ch:   make(chan Notification, size),
		done: make(chan struct{}),
	}
	go q.drain()
	return q
}

func (q *Queue) Notify(n Notification) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		q.dropped.Add(1)
		return
	}
	select {
	case q.ch <- n:
	default:
		q.dropped.Add(1)
	}
}

// Dropped reports how many notifications were discarded.
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}

// Close stops accepting notifications and waits until the buffered ones reach the sink.
func (q *Queue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.ch)
	}
	q.mu.Unlock()
	<-q.done
}

func (q *Queue) drain() {
	defer close(q.done)
	for n := range q.ch {
		if q.sink != nil {
			q.sink.Notify(n)
		}
	}
}
